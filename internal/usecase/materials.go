package usecase

import (
	"context"
	"errors"
	"time"

	"saulstari/internal/domain/auth"
	"saulstari/internal/domain/material"
)

// ErrForbidden is only reachable by a coding error: routes already reject
// unauthenticated callers before reaching the save path.
var ErrForbidden = errors.New("role has no write permission")

type MaterialsRepository interface {
	ListAll(ctx context.Context) ([]material.Material, *time.Time, error)
	ReplaceAll(ctx context.Context, materials []material.Material, updatedAt *time.Time) error
	ApplyPartial(ctx context.Context, updates []material.PartialUpdate, updatedAt *time.Time) error
}

type MaterialsUseCase interface {
	List(ctx context.Context) ([]material.Material, *time.Time, error)
	// Save routes one batched save by role: admins replace the whole table,
	// staff edits are narrowed to status and note before they reach storage.
	Save(ctx context.Context, role auth.Role, materials []material.Material, updatedAt *time.Time) error
}

type materialsUseCaseImpl struct {
	repo MaterialsRepository
}

func NewMaterialsUseCase(repo MaterialsRepository) MaterialsUseCase {
	return &materialsUseCaseImpl{repo: repo}
}

func (u *materialsUseCaseImpl) List(ctx context.Context) ([]material.Material, *time.Time, error) {
	return u.repo.ListAll(ctx)
}

func (u *materialsUseCaseImpl) Save(ctx context.Context, role auth.Role, materials []material.Material, updatedAt *time.Time) error {
	caps := role.Capabilities()

	switch {
	case caps.CanEditAll:
		return u.repo.ReplaceAll(ctx, materials, updatedAt)
	case caps.CanEditStatusNote:
		return u.repo.ApplyPartial(ctx, narrowToStatusNote(materials), updatedAt)
	default:
		return ErrForbidden
	}
}

// narrowToStatusNote drops every field the staff role may not change. Rows
// without a slug cannot be correlated and are dropped here rather than in SQL.
func narrowToStatusNote(materials []material.Material) []material.PartialUpdate {
	updates := make([]material.PartialUpdate, 0, len(materials))
	for _, m := range materials {
		if m.Slug == "" {
			continue
		}
		updates = append(updates, material.PartialUpdate{
			Slug:   m.Slug,
			Status: m.Status,
			Note:   m.Note,
		})
	}
	return updates
}
