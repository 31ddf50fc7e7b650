// README: Major city catalog types and pure geographic helpers.
package geo

import "math"

const earthRadiusKm = 6371.0

type City struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	CountryCode string  `json:"country_code"`
	CountryName string  `json:"country_name"`
	Population  int64   `json:"population"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
}

// Candidate is a catalog city with its distance from a queried point.
type Candidate struct {
	City       City
	DistanceKm float64
}

// NearestCity is what the geocoding collaborator hands to fee calculation.
type NearestCity struct {
	CityName    string  `json:"city_name"`
	DistanceKm  float64 `json:"distance_km"`
	CountryCode string  `json:"country_code"`
	CountryName string  `json:"country_name"`
}

// haversineKm returns the great-circle distance in kilometres between two
// points specified in decimal degrees.
func haversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := degreesToRadians(lat2 - lat1)
	dLng := degreesToRadians(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(degreesToRadians(lat1))*math.Cos(degreesToRadians(lat2))*math.Sin(dLng/2)*math.Sin(dLng/2)
	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}

// sortByDistance is an insertion sort, stable for equal distances.
func sortByDistance[T any](items []T, dist func(T) float64) {
	for i := 1; i < len(items); i++ {
		key := items[i]
		j := i - 1
		for j >= 0 && dist(items[j]) > dist(key) {
			items[j+1] = items[j]
			j--
		}
		items[j+1] = key
	}
}
