// README: Price range aggregation over candidate supplier rates.
package pricing

import "github.com/shopspring/decimal"

type PriceRangeInput struct {
	SupplierRatesCents []int64
	DurationMinutes    int
	OOH                OOHMode
	RemoteSiteFee      *RemoteSiteFeeContribution
}

// Band is the min/avg/max of one figure across suppliers.
type Band struct {
	MinCents int64 `json:"min_cents"`
	AvgCents int64 `json:"avg_cents"`
	MaxCents int64 `json:"max_cents"`
}

type PriceRangeBreakdown struct {
	// BaseCost is the fee-inclusive labour price before OOH surcharge.
	BaseCost           Band  `json:"base_cost"`
	OOHSurcharge       Band  `json:"ooh_surcharge"`
	RemoteSiteFeeCents int64 `json:"remote_site_fee_cents"`
	IsOOH              bool  `json:"is_ooh"`
}

type PriceRangeResult struct {
	MinPriceCents int64               `json:"min_price_cents"`
	MaxPriceCents int64               `json:"max_price_cents"`
	AvgPriceCents int64               `json:"avg_price_cents"`
	SupplierCount int                 `json:"supplier_count"`
	Breakdown     PriceRangeBreakdown `json:"breakdown"`
}

// CalculatePriceRange runs CalculateJobPricing once per rate and reports
// customer-facing price bands.
func CalculatePriceRange(in PriceRangeInput) (PriceRangeResult, error) {
	if len(in.SupplierRatesCents) == 0 {
		return PriceRangeResult{}, ErrNoSupplierRates
	}

	totals := make([]int64, 0, len(in.SupplierRatesCents))
	bases := make([]int64, 0, len(in.SupplierRatesCents))
	surcharges := make([]int64, 0, len(in.SupplierRatesCents))
	var isOOH bool
	for _, rate := range in.SupplierRatesCents {
		res, err := CalculateJobPricing(PricingInput{
			SupplierHourlyRateCents: rate,
			DurationMinutes:         in.DurationMinutes,
			OOH:                     in.OOH,
			RemoteSiteFee:           in.RemoteSiteFee,
		})
		if err != nil {
			return PriceRangeResult{}, err
		}
		totals = append(totals, res.CustomerPriceCents)
		bases = append(bases, res.Breakdown.CustomerBaseCents+res.Breakdown.CustomerOOHBaseCents)
		surcharges = append(surcharges, res.Breakdown.CustomerOOHSurchargeCents)
		isOOH = res.Breakdown.IsOOH
	}

	total := bandOf(totals)
	out := PriceRangeResult{
		MinPriceCents: total.MinCents,
		MaxPriceCents: total.MaxCents,
		AvgPriceCents: total.AvgCents,
		SupplierCount: len(totals),
		Breakdown: PriceRangeBreakdown{
			BaseCost:     bandOf(bases),
			OOHSurcharge: bandOf(surcharges),
			IsOOH:        isOOH,
		},
	}
	if in.RemoteSiteFee != nil {
		out.Breakdown.RemoteSiteFeeCents = in.RemoteSiteFee.CustomerFeeCents
	}
	return out, nil
}

func bandOf(values []int64) Band {
	b := Band{MinCents: values[0], MaxCents: values[0]}
	sum := decimal.Zero
	for _, v := range values {
		b.MinCents = min(b.MinCents, v)
		b.MaxCents = max(b.MaxCents, v)
		sum = sum.Add(decimal.NewFromInt(v))
	}
	b.AvgCents = roundCents(sum.Div(decimal.NewFromInt(int64(len(values)))))
	return b
}
