package bootstrap

import (
	"context"
	"encoding/json"
	"log/slog"

	"saulstari/internal/domain/material"
	"saulstari/internal/handler/dto/request"
	"saulstari/internal/infra/repository"
	"saulstari/internal/pkg/errs"
	"saulstari/web"

	"go.uber.org/fx"
)

var SeedModule = fx.Module("seed",
	fx.Invoke(SeedMaterials),
)

// SeedMaterials loads the bundled price list into an empty database so a
// fresh deployment serves real content before anyone logs in.
func SeedMaterials(repo *repository.MaterialsRepository, logger *slog.Logger) error {
	materials, err := decodeSeedMaterials(web.SeedMaterials)
	if err != nil {
		return err
	}

	imported, err := repo.ImportIfEmpty(context.Background(), materials)
	if err != nil {
		return errs.Wrap(err, "failed to seed materials")
	}
	if imported {
		logger.Info("seeded materials table", "count", len(materials))
	}
	return nil
}

// decodeSeedMaterials accepts the shapes seed files have carried over time:
// a bare array, or an object wrapping it under "materials" or "items".
// Records go through the same alias coalescing as a client payload.
func decodeSeedMaterials(data []byte) ([]material.Material, error) {
	var records []request.MaterialRecord
	if err := json.Unmarshal(data, &records); err != nil {
		var wrapper struct {
			Materials []request.MaterialRecord `json:"materials"`
			Items     []request.MaterialRecord `json:"items"`
		}
		if err := json.Unmarshal(data, &wrapper); err != nil {
			return nil, errs.Wrap(err, "failed to decode bundled materials")
		}
		records = wrapper.Materials
		if len(records) == 0 {
			records = wrapper.Items
		}
	}

	materials := make([]material.Material, 0, len(records))
	for i, rec := range records {
		materials = append(materials, rec.ToDomain(i))
	}
	return materials, nil
}
