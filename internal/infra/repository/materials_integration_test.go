//go:build integration

package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"saulstari/internal/domain/material"
	"saulstari/internal/infra"
	"saulstari/internal/pkg/clock"
	"saulstari/migrations"

	"github.com/docker/go-connections/nat"
	"github.com/google/go-cmp/cmp"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("saulstari_test"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgContainer.Terminate(ctx) })

	host, err := pgContainer.Host(ctx)
	require.NoError(t, err)
	port, err := pgContainer.MappedPort(ctx, nat.Port("5432/tcp"))
	require.NoError(t, err)

	dsn := fmt.Sprintf("postgres://postgres:postgres@%s:%s/saulstari_test?sslmode=disable",
		host, port.Port())
	applyMigrations(t, dsn)

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	return pool
}

func applyMigrations(t *testing.T, dsn string) {
	t.Helper()

	sqlDB, err := goose.OpenDBWithDriver("postgres", dsn)
	require.NoError(t, err)
	defer func() { _ = sqlDB.Close() }()

	goose.SetBaseFS(migrations.FS)
	require.NoError(t, goose.Up(sqlDB, "."))
}

func testMaterials() []material.Material {
	p1, p2 := 12.5, 18.0
	return []material.Material{
		{Slug: "smilts", Name: "Smilts", Price: &p1, Unit: "m3", Available: true, Status: "pieejams"},
		{Slug: "grants", Name: "Grants", Price: &p2, Unit: "m3", Available: true},
		{Slug: "melnzeme", Name: "Melnzeme", Price: nil, Unit: "m3", Available: false, Status: "nav pieejams", Note: "no pavasara"},
	}
}

func TestMaterialsRepository_ReplaceAllAndList(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()

	t0 := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	clk := clock.NewMockClock(t0)
	repo := NewMaterialsRepository(pool, clk)

	input := testMaterials()
	require.NoError(t, repo.ReplaceAll(ctx, input, nil))

	got, lastUpdate, err := repo.ListAll(ctx)
	require.NoError(t, err)

	want := testMaterials()
	for i := range want {
		want[i].OrderIndex = i
	}
	assert.Empty(t, cmp.Diff(want, got))

	require.NotNil(t, lastUpdate)
	assert.True(t, lastUpdate.Equal(t0), "marker should carry the clock time")
}

func TestMaterialsRepository_ReplaceAllKeepsClientOrder(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	repo := NewMaterialsRepository(pool, clock.NewMockClock(time.Now()))

	// slugs deliberately out of alphabetical order
	input := []material.Material{
		{Slug: "zeme", Name: "Zeme", Available: true},
		{Slug: "akmens", Name: "Akmens", Available: true},
		{Slug: "malka", Name: "Malka", Available: true},
	}
	require.NoError(t, repo.ReplaceAll(ctx, input, nil))

	got, _, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "zeme", got[0].Slug)
	assert.Equal(t, "akmens", got[1].Slug)
	assert.Equal(t, "malka", got[2].Slug)
}

func TestMaterialsRepository_ExplicitMarkerTimestamp(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()

	clk := clock.NewMockClock(time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC))
	repo := NewMaterialsRepository(pool, clk)

	explicit := time.Date(2026, 8, 29, 9, 30, 0, 0, time.UTC)
	require.NoError(t, repo.ReplaceAll(ctx, testMaterials(), &explicit))

	_, lastUpdate, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.NotNil(t, lastUpdate)
	assert.True(t, lastUpdate.Equal(explicit), "explicit timestamp should win over the clock")
}

func TestMaterialsRepository_MarkerPerBatch(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()

	clk := clock.NewMockClock(time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC))
	repo := NewMaterialsRepository(pool, clk)

	require.NoError(t, repo.ReplaceAll(ctx, testMaterials(), nil))

	t1 := time.Date(2026, 8, 30, 13, 0, 0, 0, time.UTC)
	clk.Set(t1)
	require.NoError(t, repo.ApplyPartial(ctx, []material.PartialUpdate{
		{Slug: "smilts", Status: "nav pieejams"},
	}, nil))

	_, lastUpdate, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.NotNil(t, lastUpdate)
	assert.True(t, lastUpdate.Equal(t1), "latest marker should come from the latest batch")

	var markerCount int
	require.NoError(t, pool.QueryRow(ctx, `SELECT COUNT(*) FROM materials_updates`).Scan(&markerCount))
	assert.Equal(t, 2, markerCount, "each batch appends exactly one marker")
}

func TestMaterialsRepository_ApplyPartial(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	repo := NewMaterialsRepository(pool, clock.NewMockClock(time.Now()))

	require.NoError(t, repo.ReplaceAll(ctx, testMaterials(), nil))

	err := repo.ApplyPartial(ctx, []material.PartialUpdate{
		{Slug: "smilts", Status: "nav pieejams", Note: "beidzies krājums"},
		{Slug: "melnzeme", Status: "pieejams"},
		{Slug: "does-not-exist", Status: "whatever"},
		{Slug: "", Status: "rowless"},
	}, nil)
	require.NoError(t, err)

	got, _, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, 3, "unknown and empty slugs must not create rows")

	bySlug := map[string]material.Material{}
	for _, m := range got {
		bySlug[m.Slug] = m
	}

	smilts := bySlug["smilts"]
	assert.False(t, smilts.Available, "available is re-derived from the status text")
	assert.Equal(t, "nav pieejams", smilts.Status)
	assert.Equal(t, "beidzies krājums", smilts.Note)
	assert.Equal(t, "Smilts", smilts.Name, "name survives a partial update")
	require.NotNil(t, smilts.Price)
	assert.Equal(t, 12.5, *smilts.Price, "price survives a partial update")

	melnzeme := bySlug["melnzeme"]
	assert.True(t, melnzeme.Available, "clearing the label flips the row back to available")
	assert.Equal(t, "", melnzeme.Note, "note is overwritten, not merged")

	grants := bySlug["grants"]
	assert.True(t, grants.Available, "untouched rows keep their state")
}

func TestMaterialsRepository_ReplaceAllRollsBackOnFailure(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	repo := NewMaterialsRepository(pool, clock.NewMockClock(time.Now()))

	require.NoError(t, repo.ReplaceAll(ctx, testMaterials(), nil))

	// duplicate slug violates the primary key mid-batch
	bad := []material.Material{
		{Slug: "a", Name: "A", Available: true},
		{Slug: "a", Name: "A again", Available: true},
	}
	err := repo.ReplaceAll(ctx, bad, nil)
	require.Error(t, err)
	assert.True(t, infra.IsKind(err, infra.KindDuplicateKey))

	got, _, listErr := repo.ListAll(ctx)
	require.NoError(t, listErr)
	require.Len(t, got, 3, "failed batch must leave the previous table intact")
	assert.Equal(t, "smilts", got[0].Slug)

	var markerCount int
	require.NoError(t, pool.QueryRow(ctx, `SELECT COUNT(*) FROM materials_updates`).Scan(&markerCount))
	assert.Equal(t, 1, markerCount, "failed batch must not append a marker")
}

func TestMaterialsRepository_ImportIfEmpty(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	repo := NewMaterialsRepository(pool, clock.NewMockClock(time.Now()))

	imported, err := repo.ImportIfEmpty(ctx, testMaterials())
	require.NoError(t, err)
	assert.True(t, imported)

	got, lastUpdate, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 3)
	assert.NotNil(t, lastUpdate)

	// second call is a no-op against a populated table
	changed := []material.Material{{Slug: "other", Name: "Other", Available: true}}
	imported, err = repo.ImportIfEmpty(ctx, changed)
	require.NoError(t, err)
	assert.False(t, imported)

	got, _, err = repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 3, "populated table is left alone")
}

func TestMaterialsRepository_EmptyDatabase(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	repo := NewMaterialsRepository(pool, clock.NewMockClock(time.Now()))

	got, lastUpdate, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.Nil(t, lastUpdate, "no marker before the first write")
}
