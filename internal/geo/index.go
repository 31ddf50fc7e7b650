// README: City indexes and the nearest-major-city finder built on them.
package geo

import (
	"context"
	"fmt"
	"sync"
)

// Index answers "which catalog cities lie within radiusKm of a point",
// closest first.
type Index interface {
	Within(ctx context.Context, lat, lng, radiusKm float64) ([]Candidate, error)
}

// MemoryIndex keeps the catalog in process. Used by the CLI and tests.
type MemoryIndex struct {
	mu     sync.RWMutex
	cities []City
}

func NewMemoryIndex(cities []City) *MemoryIndex {
	idx := &MemoryIndex{}
	_ = idx.Replace(context.Background(), cities)
	return idx
}

func (m *MemoryIndex) Replace(_ context.Context, cities []City) error {
	cp := make([]City, len(cities))
	copy(cp, cities)
	m.mu.Lock()
	m.cities = cp
	m.mu.Unlock()
	return nil
}

func (m *MemoryIndex) Within(_ context.Context, lat, lng, radiusKm float64) ([]Candidate, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []Candidate
	for _, c := range m.cities {
		d := haversineKm(lat, lng, c.Lat, c.Lng)
		if d <= radiusKm {
			out = append(out, Candidate{City: c, DistanceKm: d})
		}
	}
	sortByDistance(out, func(c Candidate) float64 { return c.DistanceKm })
	return out, nil
}

// Finder resolves the nearest city above a population threshold within a
// search radius.
type Finder struct {
	index         Index
	radiusKm      float64
	minPopulation int64
}

func NewFinder(index Index, radiusKm float64, minPopulation int64) *Finder {
	return &Finder{index: index, radiusKm: radiusKm, minPopulation: minPopulation}
}

// FindNearestMajorCity returns nil, nil when no qualifying city is in range.
func (f *Finder) FindNearestMajorCity(ctx context.Context, lat, lng float64) (*NearestCity, error) {
	candidates, err := f.index.Within(ctx, lat, lng, f.radiusKm)
	if err != nil {
		return nil, fmt.Errorf("search city index: %w", err)
	}
	for _, c := range candidates {
		if c.City.Population < f.minPopulation {
			continue
		}
		return &NearestCity{
			CityName:    c.City.Name,
			DistanceKm:  c.DistanceKm,
			CountryCode: c.City.CountryCode,
			CountryName: c.City.CountryName,
		}, nil
	}
	return nil, nil
}
