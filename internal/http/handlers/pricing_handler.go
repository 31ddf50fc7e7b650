// README: Pricing handlers for quotes, price ranges and OOH detection.
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"fieldops/internal/http/middleware"
	"fieldops/internal/infra"
	"fieldops/internal/modules/pricing"
	"fieldops/internal/modules/remotesite"
)

type PricingHandler struct {
	pricing *pricing.Service
	sites   *remotesite.Service
}

func NewPricingHandler(pricingSvc *pricing.Service, sites *remotesite.Service) *PricingHandler {
	return &PricingHandler{pricing: pricingSvc, sites: sites}
}

// jobReq carries the scheduling fields shared by quote and range requests.
// When scheduled_date is given the OOH mode is detected from the schedule
// and is_ooh/start_hour/start_minute are ignored.
type jobReq struct {
	DurationMinutes int      `json:"duration_minutes" binding:"required,gt=0"`
	IsOOH           bool     `json:"is_ooh"`
	StartHour       *int     `json:"start_hour" binding:"omitempty,gte=0,lte=23"`
	StartMinute     *int     `json:"start_minute" binding:"omitempty,gte=0,lte=59"`
	ScheduledDate   string   `json:"scheduled_date" binding:"omitempty,isodate"`
	ScheduledTime   string   `json:"scheduled_time" binding:"required_with=ScheduledDate,omitempty,hhmm"`
	SiteLat         *float64 `json:"site_lat" binding:"required_with=SiteLng"`
	SiteLng         *float64 `json:"site_lng" binding:"required_with=SiteLat"`
}

type quoteReq struct {
	jobReq
	SupplierHourlyRateCents *int64 `json:"supplier_hourly_rate_cents" binding:"required,gte=0"`
}

type rangeReq struct {
	jobReq
	SupplierRatesCents []int64 `json:"supplier_rates_cents" binding:"required_without=ServiceCategory,omitempty,dive,gte=0"`
	ServiceCategory    string  `json:"service_category"`
}

type oohReq struct {
	ScheduledDate   string `json:"scheduled_date" binding:"required,isodate"`
	ScheduledTime   string `json:"scheduled_time" binding:"required,hhmm"`
	DurationMinutes int    `json:"duration_minutes" binding:"required,gt=0"`
	ServiceLevel    string `json:"service_level" binding:"omitempty,oneof=standard priority emergency"`
}

type oohResp struct {
	Detection pricing.OOHDetectionResult `json:"detection"`
	HourSplit pricing.HourSplit          `json:"hour_split"`
}

func (r jobReq) mode() (pricing.OOHMode, error) {
	if r.ScheduledDate == "" {
		return pricing.ModeFromFlags(r.IsOOH, r.StartHour, r.StartMinute), nil
	}
	sched, err := pricing.ParseSchedule(r.ScheduledDate, r.ScheduledTime)
	if err != nil {
		return nil, err
	}
	return pricing.ModeFor(sched, pricing.DetectOOH(sched, r.DurationMinutes, pricing.ServiceLevelStandard)), nil
}

// remoteFee looks up the site fee when coordinates were sent. An
// unserviceable site refuses the request.
func (h *PricingHandler) remoteFee(ctx context.Context, r jobReq) (*pricing.RemoteSiteFeeContribution, error) {
	if r.SiteLat == nil || r.SiteLng == nil {
		return nil, nil
	}
	site, err := h.sites.Calculate(ctx, *r.SiteLat, *r.SiteLng)
	if err != nil {
		return nil, err
	}
	if !site.IsServiceable {
		return nil, remotesite.ErrUnserviceable
	}
	return site.Contribution(), nil
}

// Quote prices one job and answers with the view for the caller's role.
func (h *PricingHandler) Quote(c *gin.Context) {
	var req quoteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	mode, err := req.mode()
	if err != nil {
		writeServiceError(c, err)
		return
	}
	fee, err := h.remoteFee(c.Request.Context(), req.jobReq)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	res, err := h.pricing.Quote(c.Request.Context(), pricing.PricingInput{
		SupplierHourlyRateCents: *req.SupplierHourlyRateCents,
		DurationMinutes:         req.DurationMinutes,
		OOH:                     mode,
		RemoteSiteFee:           fee,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}

	switch middleware.CallerRole(c) {
	case infra.RoleAdmin:
		writeJSON(c, http.StatusOK, pricing.AdminViewOf(res))
	case infra.RoleSupplier:
		writeJSON(c, http.StatusOK, pricing.SupplierViewOf(res))
	default:
		writeJSON(c, http.StatusOK, pricing.CustomerViewOf(res))
	}
}

// Range aggregates customer prices across supplier rates.
func (h *PricingHandler) Range(c *gin.Context) {
	var req rangeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	mode, err := req.mode()
	if err != nil {
		writeServiceError(c, err)
		return
	}
	fee, err := h.remoteFee(c.Request.Context(), req.jobReq)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	in := pricing.PriceRangeInput{
		SupplierRatesCents: req.SupplierRatesCents,
		DurationMinutes:    req.DurationMinutes,
		OOH:                mode,
		RemoteSiteFee:      fee,
	}
	var res pricing.PriceRangeResult
	if req.ServiceCategory != "" && len(req.SupplierRatesCents) == 0 {
		res, err = h.pricing.RangeForCategory(c.Request.Context(), req.ServiceCategory, in)
	} else {
		res, err = h.pricing.Range(c.Request.Context(), in)
	}
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, res)
}

func (h *PricingHandler) OOH(c *gin.Context) {
	var req oohReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	sched, err := pricing.ParseSchedule(req.ScheduledDate, req.ScheduledTime)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	level := pricing.ServiceLevel(req.ServiceLevel)
	if level == "" {
		level = pricing.ServiceLevelStandard
	}
	detection, split := h.pricing.Detect(c.Request.Context(), sched, req.DurationMinutes, level)
	writeJSON(c, http.StatusOK, oohResp{Detection: detection, HourSplit: split})
}
