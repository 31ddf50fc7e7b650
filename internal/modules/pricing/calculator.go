// README: Core job pricing; turns rate, duration, OOH mode and remote fee into three reconciled figures.
package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	sixty   = decimal.NewFromInt(60)
	hundred = decimal.NewFromInt(100)
)

// ValidateDuration rejects durations outside [MinDurationHours, MaxDurationHours].
func ValidateDuration(durationMinutes int) error {
	if durationMinutes < MinDurationHours*60 || durationMinutes > MaxDurationHours*60 {
		return fmt.Errorf("%w: got %d minutes", ErrDurationOutOfRange, durationMinutes)
	}
	return nil
}

// CalculateJobPricing prices one job. Every sub-component is rounded to the
// cent before summing, and platform revenue is customer price minus supplier
// payout, so the three figures always reconcile.
func CalculateJobPricing(in PricingInput) (PricingResult, error) {
	if err := ValidateDuration(in.DurationMinutes); err != nil {
		return PricingResult{}, err
	}

	split, isOOH := splitFor(in.OOH, in.DurationMinutes)
	rate := in.SupplierHourlyRateCents

	var b PricingBreakdown
	b.IsOOH = isOOH
	b.DurationHours = minutesToHours(in.DurationMinutes)
	b.RegularHours = split.RegularHours
	b.OOHHours = split.OOHHours
	b.RegularMinutes = split.RegularMinutes
	b.OOHMinutes = split.OOHMinutes

	b.SupplierBaseCents = centsForMinutes(rate, split.RegularMinutes)
	b.SupplierOOHBaseCents = centsForMinutes(rate, split.OOHMinutes)
	b.SupplierOOHPremiumCents = percentOf(b.SupplierOOHBaseCents, OOHSupplierPremiumPercent)

	b.CustomerBaseCents = percentOf(b.SupplierBaseCents, 100+PlatformFeePercent)
	b.CustomerOOHBaseCents = percentOf(b.SupplierOOHBaseCents, 100+PlatformFeePercent)
	b.CustomerOOHSurchargeCents = percentOf(b.SupplierOOHBaseCents, OOHCustomerSurchargePercent)

	b.PlatformFeeCents = b.CustomerBaseCents + b.CustomerOOHBaseCents - b.SupplierBaseCents - b.SupplierOOHBaseCents
	b.PlatformOOHMarginCents = b.CustomerOOHSurchargeCents - b.SupplierOOHPremiumCents

	customer := b.CustomerBaseCents + b.CustomerOOHBaseCents + b.CustomerOOHSurchargeCents
	supplier := b.SupplierBaseCents + b.SupplierOOHBaseCents + b.SupplierOOHPremiumCents

	if fee := in.RemoteSiteFee; fee != nil {
		b.RemoteSiteCustomerFeeCents = fee.CustomerFeeCents
		b.RemoteSiteSupplierFeeCents = fee.SupplierFeeCents
		b.RemoteSitePlatformFeeCents = fee.PlatformFeeCents
		b.NearestMajorCity = fee.NearestMajorCity
		b.DistanceKm = fee.DistanceKm
		b.BillableDistanceKm = fee.BillableDistanceKm
		customer += fee.CustomerFeeCents
		supplier += fee.SupplierFeeCents
	}

	return PricingResult{
		CustomerPriceCents:   customer,
		SupplierPayoutCents:  supplier,
		PlatformRevenueCents: customer - supplier,
		Breakdown:            b,
	}, nil
}

func splitFor(mode OOHMode, durationMinutes int) (HourSplit, bool) {
	switch m := mode.(type) {
	case nil, NotOOH:
		return HourSplit{
			RegularHours:   minutesToHours(durationMinutes),
			RegularMinutes: durationMinutes,
		}, false
	case EntireJobOOH:
		return HourSplit{
			OOHHours:   minutesToHours(durationMinutes),
			OOHMinutes: durationMinutes,
		}, true
	case ProportionalOOH:
		return CalculateOOHHours(m.StartHour, m.StartMinute, durationMinutes), true
	default:
		panic(fmt.Sprintf("pricing: unhandled OOH mode %T", mode))
	}
}

// centsForMinutes is round(rate * minutes / 60).
func centsForMinutes(rateCents int64, minutes int) int64 {
	v := decimal.NewFromInt(rateCents).Mul(decimal.NewFromInt(int64(minutes))).Div(sixty)
	return roundCents(v)
}

// percentOf is round(cents * percent / 100).
func percentOf(cents int64, percent int64) int64 {
	return roundCents(decimal.NewFromInt(cents).Mul(decimal.NewFromInt(percent)).Div(hundred))
}

// roundCents rounds half away from zero, matching the per-line rounding of quotes.
func roundCents(v decimal.Decimal) int64 {
	return v.Round(0).IntPart()
}
