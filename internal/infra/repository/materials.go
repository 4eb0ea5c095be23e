package repository

import (
	"context"
	"errors"
	"time"

	"saulstari/internal/domain/material"
	"saulstari/internal/infra"
	"saulstari/internal/pkg/clock"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// MaterialsRepository owns the materials table and its append-only update
// marker log. Every write path inserts exactly one marker per batch.
type MaterialsRepository struct {
	pool  *pgxpool.Pool
	clock clock.Clock
}

func NewMaterialsRepository(pool *pgxpool.Pool, clk clock.Clock) *MaterialsRepository {
	return &MaterialsRepository{
		pool:  pool,
		clock: clk,
	}
}

const selectMaterials = `
	SELECT slug, name, COALESCE(category, ''), price, COALESCE(unit, ''),
	       available, COALESCE(status, ''), COALESCE(note, ''), order_index
	FROM materials
	ORDER BY order_index, slug
`

const selectLastUpdate = `
	SELECT updated_at FROM materials_updates ORDER BY id DESC LIMIT 1
`

const insertMaterial = `
	INSERT INTO materials (slug, name, category, price, unit, available, status, note, order_index)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
`

const updateStatusNote = `
	UPDATE materials SET status = $2, note = $3, available = $4 WHERE slug = $1
`

const insertUpdateMarker = `
	INSERT INTO materials_updates (updated_at) VALUES ($1)
`

// ListAll returns every material ordered by (order_index, slug) plus the most
// recent update marker, or nil when no marker exists yet.
func (r *MaterialsRepository) ListAll(ctx context.Context) ([]material.Material, *time.Time, error) {
	rows, err := r.pool.Query(ctx, selectMaterials)
	if err != nil {
		return nil, nil, infra.WrapRepoErr("failed to query materials", err)
	}
	defer rows.Close()

	materials := []material.Material{}
	for rows.Next() {
		var m material.Material
		err := rows.Scan(&m.Slug, &m.Name, &m.Category, &m.Price, &m.Unit,
			&m.Available, &m.Status, &m.Note, &m.OrderIndex)
		if err != nil {
			return nil, nil, infra.WrapRepoErr("failed to scan material row", err)
		}
		materials = append(materials, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, infra.WrapRepoErr("error iterating material rows", err)
	}

	lastUpdate, err := r.latestMarker(ctx)
	if err != nil {
		return nil, nil, err
	}

	return materials, lastUpdate, nil
}

// ReplaceAll atomically discards every row and inserts the given sequence in
// order, with order_index assigned from position. One marker is appended with
// the provided timestamp, or now.
func (r *MaterialsRepository) ReplaceAll(ctx context.Context, materials []material.Material, updatedAt *time.Time) error {
	marker := r.markerTime(updatedAt)

	err := runInTx(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM materials`); err != nil {
			return err
		}

		for i, m := range materials {
			_, err := tx.Exec(ctx, insertMaterial,
				m.Slug, m.Name, m.Category, m.Price, m.Unit, m.Available, m.Status, m.Note, i)
			if err != nil {
				return err
			}
		}

		_, err := tx.Exec(ctx, insertUpdateMarker, marker)
		return err
	})
	if err != nil {
		if isUniqueViolation(err) {
			return infra.WrapRepoErr("duplicate material slug in batch", err, infra.KindDuplicateKey)
		}
		return infra.WrapRepoErr("failed to replace materials", err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgErrCodeUniqueViolation
}

// ApplyPartial sets status, note and the derived available flag on each row
// whose slug exists; unknown slugs are silently skipped. The whole batch gets
// a single marker and commits or rolls back as a unit.
func (r *MaterialsRepository) ApplyPartial(ctx context.Context, updates []material.PartialUpdate, updatedAt *time.Time) error {
	marker := r.markerTime(updatedAt)

	err := runInTx(ctx, r.pool, func(tx pgx.Tx) error {
		for _, u := range updates {
			if u.Slug == "" {
				continue
			}
			_, err := tx.Exec(ctx, updateStatusNote, u.Slug, u.Status, u.Note, u.Available())
			if err != nil {
				return err
			}
		}

		_, err := tx.Exec(ctx, insertUpdateMarker, marker)
		return err
	})
	if err != nil {
		return infra.WrapRepoErr("failed to apply partial updates", err)
	}
	return nil
}

// ImportIfEmpty seeds the table from an initial data set when it holds no
// rows. Returns true when the import ran.
func (r *MaterialsRepository) ImportIfEmpty(ctx context.Context, materials []material.Material) (bool, error) {
	imported := false

	err := runInTx(ctx, r.pool, func(tx pgx.Tx) error {
		var count int
		if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM materials`).Scan(&count); err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		for i, m := range materials {
			_, err := tx.Exec(ctx, insertMaterial,
				m.Slug, m.Name, m.Category, m.Price, m.Unit, m.Available, m.Status, m.Note, i)
			if err != nil {
				return err
			}
		}

		if _, err := tx.Exec(ctx, insertUpdateMarker, r.clock.Now()); err != nil {
			return err
		}

		imported = true
		return nil
	})
	if err != nil {
		return false, infra.WrapRepoErr("failed to import initial materials", err)
	}
	return imported, nil
}

func (r *MaterialsRepository) latestMarker(ctx context.Context) (*time.Time, error) {
	var updatedAt time.Time
	err := r.pool.QueryRow(ctx, selectLastUpdate).Scan(&updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, infra.WrapRepoErr("failed to query last update marker", err)
	}
	return &updatedAt, nil
}

func (r *MaterialsRepository) markerTime(updatedAt *time.Time) time.Time {
	if updatedAt != nil {
		return *updatedAt
	}
	return r.clock.Now()
}
