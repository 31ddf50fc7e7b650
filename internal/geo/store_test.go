package geo

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
)

func TestStore_ListCities(t *testing.T) {
	dsn := os.Getenv("FIELDOPS_TEST_DSN")
	if dsn == "" {
		t.Skip("FIELDOPS_TEST_DSN not set")
	}
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer pool.Close()

	if _, err := pool.Exec(ctx, `
		INSERT INTO major_cities (id, name, country_code, country_name, population, latitude, longitude)
		VALUES ('test-big', 'Bigtown', 'US', 'United States', 900000, 10, 10),
		       ('test-small', 'Smallville', 'US', 'United States', 1200, 10.1, 10.1)
		ON CONFLICT (id) DO NOTHING`); err != nil {
		t.Fatalf("seed: %v", err)
	}
	t.Cleanup(func() {
		_, _ = pool.Exec(ctx, `DELETE FROM major_cities WHERE id IN ('test-big', 'test-small')`)
	})

	cities, err := NewStore(pool).ListCities(ctx, 250000)
	if err != nil {
		t.Fatalf("ListCities() error = %v", err)
	}
	var sawBig bool
	for _, c := range cities {
		if c.ID == "test-small" {
			t.Error("city below threshold returned")
		}
		if c.ID == "test-big" {
			sawBig = true
		}
	}
	if !sawBig {
		t.Error("expected Bigtown in catalog")
	}
}
