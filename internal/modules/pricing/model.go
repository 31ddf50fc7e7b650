// README: Pricing inputs, results and the fixed business-rule constants.
package pricing

import "errors"

const (
	PlatformFeePercent          = 15
	OOHCustomerSurchargePercent = 50
	OOHSupplierPremiumPercent   = 25
	MinDurationHours            = 2
	MaxDurationHours            = 16

	// LegacyOOHPremiumPercent is the flat figure reported by the detector.
	// Billing uses the surcharge/premium percentages above instead.
	LegacyOOHPremiumPercent = 50

	BusinessDayStartHour = 9
	BusinessDayEndHour   = 17
)

var (
	ErrDurationOutOfRange = errors.New("duration must be between 2 and 16 hours")
	ErrNoSupplierRates    = errors.New("at least one supplier rate is required")
	ErrInvalidSchedule    = errors.New("invalid schedule")
)

// OOHMode tells the calculator how much of a job is billed out of hours.
// The set of variants is closed: NotOOH, EntireJobOOH and ProportionalOOH.
type OOHMode interface {
	oohMode()
}

// NotOOH bills the whole duration at regular rates. A nil OOHMode means the same.
type NotOOH struct{}

// EntireJobOOH bills the whole duration out of hours.
type EntireJobOOH struct{}

// ProportionalOOH bills only the part of the job outside 09:00-17:00.
type ProportionalOOH struct {
	StartHour   int
	StartMinute int
}

func (NotOOH) oohMode()          {}
func (EntireJobOOH) oohMode()    {}
func (ProportionalOOH) oohMode() {}

// ModeFromFlags maps the flat request shape (isOOH plus optional start time)
// onto an OOHMode. A missing start time selects EntireJobOOH.
func ModeFromFlags(isOOH bool, startHour, startMinute *int) OOHMode {
	if !isOOH {
		return NotOOH{}
	}
	if startHour == nil {
		return EntireJobOOH{}
	}
	m := 0
	if startMinute != nil {
		m = *startMinute
	}
	return ProportionalOOH{StartHour: *startHour, StartMinute: m}
}

// RemoteSiteFeeContribution is the travel surcharge folded into a job price.
// SupplierFeeCents + PlatformFeeCents always equals CustomerFeeCents.
type RemoteSiteFeeContribution struct {
	CustomerFeeCents   int64   `json:"customer_fee_cents"`
	SupplierFeeCents   int64   `json:"supplier_fee_cents"`
	PlatformFeeCents   int64   `json:"platform_fee_cents"`
	NearestMajorCity   string  `json:"nearest_major_city"`
	DistanceKm         float64 `json:"distance_km"`
	BillableDistanceKm float64 `json:"billable_distance_km"`
}

type PricingInput struct {
	SupplierHourlyRateCents int64
	DurationMinutes         int
	OOH                     OOHMode
	RemoteSiteFee           *RemoteSiteFeeContribution
}

type PricingBreakdown struct {
	SupplierBaseCents       int64 `json:"supplier_base_cents"`
	SupplierOOHBaseCents    int64 `json:"supplier_ooh_base_cents"`
	SupplierOOHPremiumCents int64 `json:"supplier_ooh_premium_cents"`

	CustomerBaseCents         int64 `json:"customer_base_cents"`
	CustomerOOHBaseCents      int64 `json:"customer_ooh_base_cents"`
	CustomerOOHSurchargeCents int64 `json:"customer_ooh_surcharge_cents"`

	PlatformFeeCents       int64 `json:"platform_fee_cents"`
	PlatformOOHMarginCents int64 `json:"platform_ooh_margin_cents"`

	RemoteSiteCustomerFeeCents int64   `json:"remote_site_customer_fee_cents"`
	RemoteSiteSupplierFeeCents int64   `json:"remote_site_supplier_fee_cents"`
	RemoteSitePlatformFeeCents int64   `json:"remote_site_platform_fee_cents"`
	NearestMajorCity           string  `json:"nearest_major_city,omitempty"`
	DistanceKm                 float64 `json:"distance_km,omitempty"`
	BillableDistanceKm         float64 `json:"billable_distance_km,omitempty"`

	IsOOH          bool    `json:"is_ooh"`
	DurationHours  float64 `json:"duration_hours"`
	RegularHours   float64 `json:"regular_hours"`
	OOHHours       float64 `json:"ooh_hours"`
	RegularMinutes int     `json:"regular_minutes"`
	OOHMinutes     int     `json:"ooh_minutes"`
}

// PricingResult holds the three reconciled figures of a job price.
// SupplierPayoutCents + PlatformRevenueCents == CustomerPriceCents.
type PricingResult struct {
	CustomerPriceCents   int64            `json:"customer_price_cents"`
	SupplierPayoutCents  int64            `json:"supplier_payout_cents"`
	PlatformRevenueCents int64            `json:"platform_revenue_cents"`
	Breakdown            PricingBreakdown `json:"breakdown"`
}

type ServiceLevel string

const (
	ServiceLevelStandard  ServiceLevel = "standard"
	ServiceLevelPriority  ServiceLevel = "priority"
	ServiceLevelEmergency ServiceLevel = "emergency"
)

type OOHDetectionResult struct {
	IsOOH bool `json:"is_ooh"`
	// PremiumPercent is nil when IsOOH is false.
	PremiumPercent *int     `json:"premium_percent"`
	Reasons        []string `json:"reasons"`
	IsWeekend      bool     `json:"is_weekend"`
}

// HourSplit partitions a job duration into business and out-of-hours time.
// RegularMinutes + OOHMinutes equals the job duration exactly.
type HourSplit struct {
	RegularHours   float64 `json:"regular_hours"`
	OOHHours       float64 `json:"ooh_hours"`
	RegularMinutes int     `json:"regular_minutes"`
	OOHMinutes     int     `json:"ooh_minutes"`
}
