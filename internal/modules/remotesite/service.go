// README: Remote site service: nearest-city lookup with a fail-safe to unserviceable.
package remotesite

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// AddressResolver turns a street address into coordinates.
type AddressResolver interface {
	Geocode(ctx context.Context, address string) (lat, lng float64, err error)
}

type Service struct {
	cities  CityFinder
	address AddressResolver
	log     *zap.Logger
}

// NewService accepts a nil address resolver; CalculateForAddress then
// returns ErrNoGeocoder.
func NewService(cities CityFinder, address AddressResolver, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{cities: cities, address: address, log: log.Named("remotesite")}
}

// Calculate never returns a lookup failure to the caller. A failed or
// empty lookup is an unserviceable location.
func (s *Service) Calculate(ctx context.Context, lat, lng float64) (Result, error) {
	if !validCoordinates(lat, lng) {
		return Result{}, fmt.Errorf("%w: coordinates out of range (%f, %f)", ErrBadRequest, lat, lng)
	}

	city, err := s.cities.FindNearestMajorCity(ctx, lat, lng)
	if err != nil {
		s.log.Warn("nearest city lookup failed, treating site as unserviceable",
			zap.Float64("lat", lat), zap.Float64("lng", lng), zap.Error(err))
		return Unserviceable(), nil
	}
	if city == nil {
		s.log.Info("no major city in range", zap.Float64("lat", lat), zap.Float64("lng", lng))
		return Unserviceable(), nil
	}

	fee := FeeForDistance(city.DistanceKm)
	name := city.CityName
	return Result{
		IsServiceable:      true,
		IsRemoteSite:       fee.BillableDistanceKm > 0,
		NearestMajorCity:   &name,
		CountryCode:        city.CountryCode,
		CountryName:        city.CountryName,
		DistanceKm:         city.DistanceKm,
		BillableDistanceKm: fee.BillableDistanceKm,
		CustomerFeeCents:   fee.CustomerFeeCents,
		SupplierFeeCents:   fee.SupplierFeeCents,
		PlatformFeeCents:   fee.PlatformFeeCents,
	}, nil
}

// CalculateForAddress geocodes address first. An address that cannot be
// resolved is unserviceable.
func (s *Service) CalculateForAddress(ctx context.Context, address string) (Result, error) {
	if address == "" {
		return Result{}, fmt.Errorf("%w: address is required", ErrBadRequest)
	}
	if s.address == nil {
		return Result{}, ErrNoGeocoder
	}
	lat, lng, err := s.address.Geocode(ctx, address)
	if err != nil {
		s.log.Warn("geocode failed, treating site as unserviceable", zap.String("address", address), zap.Error(err))
		return Unserviceable(), nil
	}
	return s.Calculate(ctx, lat, lng)
}
