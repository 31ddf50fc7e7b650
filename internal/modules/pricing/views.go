// README: Audience-scoped projections of a job price (customer, supplier, admin).
package pricing

// CustomerView never carries supplier payout, platform revenue or the
// platform fee percentage.
type CustomerView struct {
	TotalPriceCents int64             `json:"total_price_cents"`
	Breakdown       CustomerBreakdown `json:"breakdown"`
}

type CustomerBreakdown struct {
	IsOOH bool `json:"is_ooh"`
	// BasePriceCents already includes the platform fee.
	BasePriceCents     int64    `json:"base_price_cents"`
	OOHSurchargeCents  int64    `json:"ooh_surcharge_cents"`
	RemoteSiteFeeCents int64    `json:"remote_site_fee_cents"`
	NearestMajorCity   string   `json:"nearest_major_city,omitempty"`
	DurationHours      float64  `json:"duration_hours"`
	OOHHours           *float64 `json:"ooh_hours,omitempty"`
	RegularHours       *float64 `json:"regular_hours,omitempty"`
}

// SupplierView never carries the customer price or platform revenue.
type SupplierView struct {
	TotalPayoutCents   int64   `json:"total_payout_cents"`
	BasePayoutCents    int64   `json:"base_payout_cents"`
	OOHPremiumCents    int64   `json:"ooh_premium_cents"`
	RemoteSiteFeeCents int64   `json:"remote_site_fee_cents"`
	DurationHours      float64 `json:"duration_hours"`
	RegularHours       float64 `json:"regular_hours"`
	OOHHours           float64 `json:"ooh_hours"`
}

type AdminView struct {
	CustomerPays     int64            `json:"customer_pays"`
	SupplierReceives int64            `json:"supplier_receives"`
	PlatformEarns    int64            `json:"platform_earns"`
	Breakdown        PricingBreakdown `json:"breakdown"`
}

func CustomerViewOf(r PricingResult) CustomerView {
	b := r.Breakdown
	v := CustomerView{
		TotalPriceCents: r.CustomerPriceCents,
		Breakdown: CustomerBreakdown{
			IsOOH:              b.IsOOH,
			BasePriceCents:     b.CustomerBaseCents + b.CustomerOOHBaseCents,
			OOHSurchargeCents:  b.CustomerOOHSurchargeCents,
			RemoteSiteFeeCents: b.RemoteSiteCustomerFeeCents,
			NearestMajorCity:   b.NearestMajorCity,
			DurationHours:      b.DurationHours,
		},
	}
	if b.IsOOH {
		ooh, regular := b.OOHHours, b.RegularHours
		v.Breakdown.OOHHours = &ooh
		v.Breakdown.RegularHours = &regular
	}
	return v
}

func SupplierViewOf(r PricingResult) SupplierView {
	b := r.Breakdown
	return SupplierView{
		TotalPayoutCents:   r.SupplierPayoutCents,
		BasePayoutCents:    b.SupplierBaseCents + b.SupplierOOHBaseCents,
		OOHPremiumCents:    b.SupplierOOHPremiumCents,
		RemoteSiteFeeCents: b.RemoteSiteSupplierFeeCents,
		DurationHours:      b.DurationHours,
		RegularHours:       b.RegularHours,
		OOHHours:           b.OOHHours,
	}
}

func AdminViewOf(r PricingResult) AdminView {
	return AdminView{
		CustomerPays:     r.CustomerPriceCents,
		SupplierReceives: r.SupplierPayoutCents,
		PlatformEarns:    r.PlatformRevenueCents,
		Breakdown:        r.Breakdown,
	}
}
