// README: Remote site fee model: constants, result shape and pure fee math.
package remotesite

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"fieldops/internal/geo"
	"fieldops/internal/modules/pricing"
)

const (
	FreeZoneKm                   = 50
	CustomerRatePerKmCents       = 100
	SupplierRatePerKmCents       = 50
	PlatformRatePerKmCents       = 50
	SearchRadiusKm               = 300
	MajorCityPopulationThreshold = 250000
)

var (
	ErrBadRequest = errors.New("bad request")
	ErrNoGeocoder = errors.New("address lookup not configured")
	// ErrUnserviceable is for callers that must refuse a job at an
	// unserviceable site. Calculate itself never returns it.
	ErrUnserviceable = errors.New("location is not serviceable")
)

// CityFinder returns nil, nil when no major city is within range.
type CityFinder interface {
	FindNearestMajorCity(ctx context.Context, lat, lng float64) (*geo.NearestCity, error)
}

// Result is unserviceable when IsServiceable is false; all fee fields are
// then zero and NearestMajorCity is nil.
type Result struct {
	IsServiceable      bool    `json:"is_serviceable"`
	IsRemoteSite       bool    `json:"is_remote_site"`
	NearestMajorCity   *string `json:"nearest_major_city"`
	CountryCode        string  `json:"country_code,omitempty"`
	CountryName        string  `json:"country_name,omitempty"`
	DistanceKm         float64 `json:"distance_km"`
	BillableDistanceKm float64 `json:"billable_distance_km"`
	CustomerFeeCents   int64   `json:"customer_fee_cents"`
	SupplierFeeCents   int64   `json:"supplier_fee_cents"`
	PlatformFeeCents   int64   `json:"platform_fee_cents"`
}

func Unserviceable() Result {
	return Result{}
}

// Fee is the per-distance part of a Result.
type Fee struct {
	BillableDistanceKm float64 `json:"billable_distance_km"`
	CustomerFeeCents   int64   `json:"customer_fee_cents"`
	SupplierFeeCents   int64   `json:"supplier_fee_cents"`
	PlatformFeeCents   int64   `json:"platform_fee_cents"`
}

// FeeForDistance bills the distance beyond the free zone. The customer fee
// is twice the rounded supplier share, so the platform half always equals
// the supplier half and the customer fee is within a cent of the per-km rate.
func FeeForDistance(distanceKm float64) Fee {
	billable := decimal.NewFromFloat(distanceKm).Sub(decimal.NewFromInt(FreeZoneKm))
	if !billable.IsPositive() {
		return Fee{}
	}
	supplier := billable.Mul(decimal.NewFromInt(SupplierRatePerKmCents)).Round(0).IntPart()
	customer := 2 * supplier
	return Fee{
		BillableDistanceKm: billable.InexactFloat64(),
		CustomerFeeCents:   customer,
		SupplierFeeCents:   supplier,
		PlatformFeeCents:   customer - supplier,
	}
}

// Contribution converts a serviceable result into the value the pricing
// calculator accepts. Unserviceable and in-zone results yield nil.
func (r Result) Contribution() *pricing.RemoteSiteFeeContribution {
	if !r.IsServiceable || !r.IsRemoteSite {
		return nil
	}
	c := &pricing.RemoteSiteFeeContribution{
		CustomerFeeCents:   r.CustomerFeeCents,
		SupplierFeeCents:   r.SupplierFeeCents,
		PlatformFeeCents:   r.PlatformFeeCents,
		DistanceKm:         r.DistanceKm,
		BillableDistanceKm: r.BillableDistanceKm,
	}
	if r.NearestMajorCity != nil {
		c.NearestMajorCity = *r.NearestMajorCity
	}
	return c
}

func validCoordinates(lat, lng float64) bool {
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}
