package response

import (
	"time"

	"saulstari/internal/domain/material"
)

type MaterialResponse struct {
	ID         string   `json:"id"` // same as slug; the clients correlate rows by it
	Slug       string   `json:"slug"`
	Name       string   `json:"name"`
	Category   string   `json:"category,omitempty"`
	Price      *float64 `json:"price"`
	Unit       string   `json:"unit"`
	Available  bool     `json:"available"`
	Status     string   `json:"status"`
	Note       string   `json:"note"`
	OrderIndex int      `json:"order_index"`
}

type ListMaterialsResponse struct {
	Materials  []MaterialResponse `json:"materials"`
	LastUpdate *time.Time         `json:"lastUpdate"`
}

type SaveMaterialsResponse struct {
	OK   bool   `json:"ok"`
	Role string `json:"role"`
}

func NewListMaterialsResponse(materials []material.Material, lastUpdate *time.Time) ListMaterialsResponse {
	out := make([]MaterialResponse, 0, len(materials))
	for _, m := range materials {
		out = append(out, MaterialResponse{
			ID:         m.Slug,
			Slug:       m.Slug,
			Name:       m.Name,
			Category:   m.Category,
			Price:      m.Price,
			Unit:       m.Unit,
			Available:  m.Available,
			Status:     m.Status,
			Note:       m.Note,
			OrderIndex: m.OrderIndex,
		})
	}
	return ListMaterialsResponse{Materials: out, LastUpdate: lastUpdate}
}
