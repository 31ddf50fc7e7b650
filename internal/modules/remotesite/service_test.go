package remotesite

import (
	"context"
	"errors"
	"testing"

	"fieldops/internal/geo"
	"fieldops/internal/modules/pricing"
)

type stubFinder struct {
	city *geo.NearestCity
	err  error
}

func (s stubFinder) FindNearestMajorCity(context.Context, float64, float64) (*geo.NearestCity, error) {
	return s.city, s.err
}

type stubResolver struct {
	lat, lng float64
	err      error
}

func (s stubResolver) Geocode(context.Context, string) (float64, float64, error) {
	return s.lat, s.lng, s.err
}

func TestService_Calculate_RemoteSite(t *testing.T) {
	svc := NewService(stubFinder{city: &geo.NearestCity{
		CityName: "Denver", DistanceKm: 75, CountryCode: "US", CountryName: "United States",
	}}, nil, nil)

	got, err := svc.Calculate(context.Background(), 40.3, -104.1)
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}
	if !got.IsServiceable || !got.IsRemoteSite {
		t.Fatalf("got %+v, want serviceable remote site", got)
	}
	if got.NearestMajorCity == nil || *got.NearestMajorCity != "Denver" || got.CountryCode != "US" {
		t.Errorf("city = %v %s", got.NearestMajorCity, got.CountryCode)
	}
	if got.BillableDistanceKm != 25 || got.CustomerFeeCents != 2500 || got.SupplierFeeCents != 1250 || got.PlatformFeeCents != 1250 {
		t.Errorf("fees = %+v", got)
	}
}

func TestService_Calculate_InsideFreeZone(t *testing.T) {
	svc := NewService(stubFinder{city: &geo.NearestCity{CityName: "Denver", DistanceKm: 30}}, nil, nil)

	got, err := svc.Calculate(context.Background(), 39.9, -105.0)
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}
	if !got.IsServiceable || got.IsRemoteSite {
		t.Fatalf("got %+v, want serviceable non-remote", got)
	}
	if got.CustomerFeeCents != 0 || got.BillableDistanceKm != 0 {
		t.Errorf("expected no fee, got %+v", got)
	}
}

func TestService_Calculate_JustPastFreeZone(t *testing.T) {
	svc := NewService(stubFinder{city: &geo.NearestCity{CityName: "Denver", DistanceKm: 50.04}}, nil, nil)

	got, err := svc.Calculate(context.Background(), 39.9, -104.5)
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}
	if !got.IsRemoteSite {
		t.Fatalf("got %+v, want remote site", got)
	}
	if got.CustomerFeeCents != 4 || got.SupplierFeeCents != 2 || got.PlatformFeeCents != 2 {
		t.Errorf("fees = %d/%d/%d, want 4/2/2", got.CustomerFeeCents, got.SupplierFeeCents, got.PlatformFeeCents)
	}
	if got.BillableDistanceKm < 0.0399 || got.BillableDistanceKm > 0.0401 {
		t.Errorf("BillableDistanceKm = %v, want 0.04", got.BillableDistanceKm)
	}
}

func TestService_Calculate_Unserviceable(t *testing.T) {
	tests := []struct {
		name   string
		finder stubFinder
	}{
		{"no city in range", stubFinder{}},
		{"lookup failure", stubFinder{err: errors.New("timeout")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewService(tt.finder, nil, nil).Calculate(context.Background(), 38.8, -116.4)
			if err != nil {
				t.Fatalf("Calculate() error = %v", err)
			}
			if got.IsServiceable || got.IsRemoteSite || got.NearestMajorCity != nil {
				t.Errorf("got %+v, want unserviceable", got)
			}
			if got.CustomerFeeCents != 0 || got.SupplierFeeCents != 0 || got.PlatformFeeCents != 0 {
				t.Errorf("fees should be zero, got %+v", got)
			}
		})
	}
}

func TestService_Calculate_BadCoordinates(t *testing.T) {
	svc := NewService(stubFinder{}, nil, nil)
	_, err := svc.Calculate(context.Background(), 91, 0)
	if !errors.Is(err, ErrBadRequest) {
		t.Fatalf("err = %v, want ErrBadRequest", err)
	}
}

func TestService_CalculateForAddress(t *testing.T) {
	finder := stubFinder{city: &geo.NearestCity{CityName: "Denver", DistanceKm: 75}}

	t.Run("resolved", func(t *testing.T) {
		svc := NewService(finder, stubResolver{lat: 40.3, lng: -104.1}, nil)
		got, err := svc.CalculateForAddress(context.Background(), "1 Main St, Fort Morgan, CO")
		if err != nil {
			t.Fatalf("CalculateForAddress() error = %v", err)
		}
		if got.CustomerFeeCents != 2500 {
			t.Errorf("CustomerFeeCents = %d, want 2500", got.CustomerFeeCents)
		}
	})

	t.Run("geocode failure is unserviceable", func(t *testing.T) {
		svc := NewService(finder, stubResolver{err: errors.New("ZERO_RESULTS")}, nil)
		got, err := svc.CalculateForAddress(context.Background(), "nowhere")
		if err != nil {
			t.Fatalf("CalculateForAddress() error = %v", err)
		}
		if got.IsServiceable {
			t.Errorf("got %+v, want unserviceable", got)
		}
	})

	t.Run("empty address", func(t *testing.T) {
		svc := NewService(finder, stubResolver{}, nil)
		if _, err := svc.CalculateForAddress(context.Background(), ""); !errors.Is(err, ErrBadRequest) {
			t.Fatalf("err = %v, want ErrBadRequest", err)
		}
	})

	t.Run("no resolver", func(t *testing.T) {
		svc := NewService(finder, nil, nil)
		if _, err := svc.CalculateForAddress(context.Background(), "x"); !errors.Is(err, ErrNoGeocoder) {
			t.Fatalf("err = %v, want ErrNoGeocoder", err)
		}
	})
}

func TestRemoteFeeFeedsJobPricing(t *testing.T) {
	svc := NewService(stubFinder{city: &geo.NearestCity{CityName: "Denver", DistanceKm: 75}}, nil, nil)
	site, err := svc.Calculate(context.Background(), 40.3, -104.1)
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}

	res, err := pricing.CalculateJobPricing(pricing.PricingInput{
		SupplierHourlyRateCents: 10000,
		DurationMinutes:         120,
		OOH:                     pricing.NotOOH{},
		RemoteSiteFee:           site.Contribution(),
	})
	if err != nil {
		t.Fatalf("CalculateJobPricing() error = %v", err)
	}
	if res.CustomerPriceCents != 25500 || res.SupplierPayoutCents != 21250 || res.PlatformRevenueCents != 4250 {
		t.Errorf("got %d/%d/%d, want 25500/21250/4250",
			res.CustomerPriceCents, res.SupplierPayoutCents, res.PlatformRevenueCents)
	}
	if res.Breakdown.NearestMajorCity != "Denver" {
		t.Errorf("NearestMajorCity = %q", res.Breakdown.NearestMajorCity)
	}
}
