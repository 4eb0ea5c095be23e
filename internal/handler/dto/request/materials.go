package request

import (
	"strconv"
	"strings"
	"time"

	"saulstari/internal/domain/material"
)

// SaveMaterialsRequest is one batched save from an admin client: the entire
// table, every row. Materials is a pointer so a missing array and an empty
// one can be told apart; an admin may legitimately save an empty table.
type SaveMaterialsRequest struct {
	Materials  *[]MaterialRecord `json:"materials"`
	LastUpdate string            `json:"lastUpdate"`
}

// MaterialRecord accepts every historical alias the admin clients have sent
// for the same logical field. Coalescing to canonical names happens here,
// once, and nowhere else.
type MaterialRecord struct {
	ID       string   `json:"id"`
	Slug     string   `json:"slug"`
	Name     string   `json:"name"`
	Category string   `json:"category"`
	Price    *float64 `json:"price"`

	Unit       string `json:"unit"`
	Mervieniba string `json:"mervienība"`
	Measure    string `json:"measure"`

	Available    *bool  `json:"available"`
	Status       string `json:"status"`
	Availability string `json:"availability"`

	Note    string `json:"note"`
	Notes   string `json:"notes"`
	Comment string `json:"comment"`
	Piezime string `json:"piezime"`
}

// ToDomain coalesces aliases into the canonical fields. position is the
// record's index in the batch, used both as the display order and as the
// slug of last resort.
func (r MaterialRecord) ToDomain(position int) material.Material {
	status := strings.TrimSpace(coalesce(r.Status, r.Availability))

	return material.Material{
		Slug:       coalesce(r.Slug, r.ID, strconv.Itoa(position+1)),
		Name:       r.Name,
		Category:   r.Category,
		Price:      r.Price,
		Unit:       coalesce(r.Unit, r.Mervieniba, r.Measure),
		Available:  material.DeriveAvailable(r.Available, status),
		Status:     status,
		Note:       coalesce(r.Note, r.Notes, r.Comment, r.Piezime),
		OrderIndex: position,
	}
}

func (r *SaveMaterialsRequest) ToDomain() []material.Material {
	records := *r.Materials
	materials := make([]material.Material, 0, len(records))
	for i, rec := range records {
		materials = append(materials, rec.ToDomain(i))
	}
	return materials
}

// lastUpdateLayouts covers the formats the admin clients have sent over time.
var lastUpdateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// ParseLastUpdate returns the client-supplied save timestamp, or nil when
// absent or unparseable (the repository then stamps the marker itself).
func (r *SaveMaterialsRequest) ParseLastUpdate() *time.Time {
	s := strings.TrimSpace(r.LastUpdate)
	if s == "" {
		return nil
	}
	for _, layout := range lastUpdateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

func coalesce(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
