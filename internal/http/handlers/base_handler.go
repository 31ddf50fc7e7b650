// README: Base handler utilities (JSON helpers, validation, error mapping).
package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"fieldops/internal/modules/pricing"
	"fieldops/internal/modules/remotesite"
)

type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// RegisterValidators adds the hhmm and isodate tags to gin's validator.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("unexpected gin validator engine")
	}
	if err := v.RegisterValidation("hhmm", validateClock); err != nil {
		return err
	}
	return v.RegisterValidation("isodate", validateISODate)
}

func validateClock(fl validator.FieldLevel) bool {
	_, err := time.Parse("15:04", fl.Field().String())
	return err == nil
}

func validateISODate(fl validator.FieldLevel) bool {
	_, err := time.Parse(time.DateOnly, fl.Field().String())
	return err == nil
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

func writeBindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = fe.Tag()
	}
	writeJSON(c, http.StatusBadRequest, errorResponse{Error: "validation failed", Fields: fields})
}

func writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, pricing.ErrDurationOutOfRange),
		errors.Is(err, pricing.ErrNoSupplierRates),
		errors.Is(err, pricing.ErrInvalidSchedule),
		errors.Is(err, remotesite.ErrBadRequest):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, remotesite.ErrUnserviceable):
		writeError(c, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, remotesite.ErrNoGeocoder):
		writeError(c, http.StatusServiceUnavailable, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}
