// README: City index backed by Redis GEO with a hash of city metadata.
package geo

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const (
	cityGeoKey  = "geo:major_cities"
	cityMetaKey = "geo:major_cities:meta"
)

type RedisIndex struct {
	redis *redis.Client
}

func NewRedisIndex(redis *redis.Client) *RedisIndex {
	return &RedisIndex{redis: redis}
}

// Replace swaps the indexed catalog for cities in one transaction.
func (r *RedisIndex) Replace(ctx context.Context, cities []City) error {
	locs := make([]*redis.GeoLocation, 0, len(cities))
	meta := make(map[string]any, len(cities))
	for _, c := range cities {
		raw, err := json.Marshal(c)
		if err != nil {
			return fmt.Errorf("encode city %s: %w", c.ID, err)
		}
		locs = append(locs, &redis.GeoLocation{Name: c.ID, Longitude: c.Lng, Latitude: c.Lat})
		meta[c.ID] = string(raw)
	}

	_, err := r.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, cityGeoKey, cityMetaKey)
		if len(locs) > 0 {
			pipe.GeoAdd(ctx, cityGeoKey, locs...)
			pipe.HSet(ctx, cityMetaKey, meta)
		}
		return nil
	})
	return err
}

func (r *RedisIndex) Within(ctx context.Context, lat, lng, radiusKm float64) ([]Candidate, error) {
	locs, err := r.redis.GeoRadius(ctx, cityGeoKey, lng, lat, &redis.GeoRadiusQuery{
		Radius:   radiusKm,
		Unit:     "km",
		WithDist: true,
		Sort:     "ASC",
	}).Result()
	if err != nil {
		return nil, err
	}
	if len(locs) == 0 {
		return nil, nil
	}

	ids := make([]string, len(locs))
	for i, l := range locs {
		ids[i] = l.Name
	}
	raws, err := r.redis.HMGet(ctx, cityMetaKey, ids...).Result()
	if err != nil {
		return nil, err
	}

	out := make([]Candidate, 0, len(locs))
	for i, l := range locs {
		s, ok := raws[i].(string)
		if !ok {
			continue // metadata missing for this member
		}
		var c City
		if err := json.Unmarshal([]byte(s), &c); err != nil {
			return nil, fmt.Errorf("decode city %s: %w", l.Name, err)
		}
		out = append(out, Candidate{City: c, DistanceKm: l.Dist})
	}
	return out, nil
}
