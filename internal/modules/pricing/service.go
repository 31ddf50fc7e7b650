// README: Pricing service wires the pure calculators to supplier rate records and logging.
package pricing

import (
	"context"

	"go.uber.org/zap"
)

type RateReader interface {
	ActiveRates(ctx context.Context, category string) ([]int64, error)
}

type Service struct {
	rates RateReader
	log   *zap.Logger
}

func NewService(rates RateReader, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{rates: rates, log: log.Named("pricing")}
}

func (s *Service) Quote(ctx context.Context, in PricingInput) (PricingResult, error) {
	res, err := CalculateJobPricing(in)
	if err != nil {
		s.log.Debug("quote rejected", zap.Int("duration_minutes", in.DurationMinutes), zap.Error(err))
		return PricingResult{}, err
	}
	s.log.Debug("quote computed",
		zap.Int64("customer_cents", res.CustomerPriceCents),
		zap.Int64("supplier_cents", res.SupplierPayoutCents),
		zap.Int64("platform_cents", res.PlatformRevenueCents),
		zap.Bool("ooh", res.Breakdown.IsOOH),
	)
	return res, nil
}

func (s *Service) Range(ctx context.Context, in PriceRangeInput) (PriceRangeResult, error) {
	return CalculatePriceRange(in)
}

// RangeForCategory loads active supplier rates for a category and aggregates them.
// An empty category yields ErrNoSupplierRates.
func (s *Service) RangeForCategory(ctx context.Context, category string, in PriceRangeInput) (PriceRangeResult, error) {
	rates, err := s.rates.ActiveRates(ctx, category)
	if err != nil {
		s.log.Error("load supplier rates", zap.String("category", category), zap.Error(err))
		return PriceRangeResult{}, err
	}
	in.SupplierRatesCents = rates
	res, err := CalculatePriceRange(in)
	if err != nil {
		return PriceRangeResult{}, err
	}
	s.log.Debug("price range computed", zap.String("category", category), zap.Int("suppliers", res.SupplierCount))
	return res, nil
}

func (s *Service) Detect(ctx context.Context, sched Schedule, durationMinutes int, level ServiceLevel) (OOHDetectionResult, HourSplit) {
	d := DetectOOH(sched, durationMinutes, level)
	split := CalculateOOHHours(sched.StartHour, sched.StartMinute, durationMinutes)
	return d, split
}
