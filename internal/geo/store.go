// README: Major city catalog backed by PostgreSQL.
package geo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// ListCities returns catalog cities with at least minPopulation inhabitants.
func (s *Store) ListCities(ctx context.Context, minPopulation int64) ([]City, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, name, country_code, country_name, population, latitude, longitude
		FROM major_cities
		WHERE population >= $1`, minPopulation)
	if err != nil {
		return nil, fmt.Errorf("query major cities: %w", err)
	}
	defer rows.Close()

	var cities []City
	for rows.Next() {
		var c City
		if err := rows.Scan(&c.ID, &c.Name, &c.CountryCode, &c.CountryName, &c.Population, &c.Lat, &c.Lng); err != nil {
			return nil, fmt.Errorf("scan major city: %w", err)
		}
		cities = append(cities, c)
	}
	return cities, rows.Err()
}

type CitySource interface {
	ListCities(ctx context.Context, minPopulation int64) ([]City, error)
}

type Replacer interface {
	Replace(ctx context.Context, cities []City) error
}

// Sync copies the catalog from source into index and returns the city count.
func Sync(ctx context.Context, source CitySource, index Replacer, minPopulation int64) (int, error) {
	cities, err := source.ListCities(ctx, minPopulation)
	if err != nil {
		return 0, err
	}
	if err := index.Replace(ctx, cities); err != nil {
		return 0, fmt.Errorf("load city index: %w", err)
	}
	return len(cities), nil
}
