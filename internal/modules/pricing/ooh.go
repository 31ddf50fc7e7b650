// README: Out-of-hours detection and business-hours splitting of a job interval.
package pricing

import (
	"fmt"
	"time"
)

const (
	businessStartMinute = BusinessDayStartHour * 60
	businessEndMinute   = BusinessDayEndHour * 60
)

// Schedule is the calendar date and wall-clock start of a booking.
type Schedule struct {
	Date        time.Time
	StartHour   int
	StartMinute int
}

// ParseSchedule reads an ISO date ("2006-01-02") and an "HH:MM" start time.
func ParseSchedule(date, clock string) (Schedule, error) {
	d, err := time.Parse(time.DateOnly, date)
	if err != nil {
		return Schedule{}, fmt.Errorf("%w: date %q: %v", ErrInvalidSchedule, date, err)
	}
	h, m, err := ParseClock(clock)
	if err != nil {
		return Schedule{}, err
	}
	return Schedule{Date: d, StartHour: h, StartMinute: m}, nil
}

// ParseClock reads an "HH:MM" wall-clock time.
func ParseClock(clock string) (hour, minute int, err error) {
	c, err := time.Parse("15:04", clock)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: time %q: %v", ErrInvalidSchedule, clock, err)
	}
	return c.Hour(), c.Minute(), nil
}

func (s Schedule) startMinuteOfDay() int {
	return s.StartHour*60 + s.StartMinute
}

// DetectOOH reports whether a booking falls outside 09:00-17:00 Monday-Friday.
// Reasons are appended in a fixed order: weekend, start time, end time.
// The end-time check adds the duration to the start clock without wrapping
// past midnight.
func DetectOOH(s Schedule, durationMinutes int, level ServiceLevel) OOHDetectionResult {
	_ = level // premium is flat; per-level surcharges live in the calculator
	res := OOHDetectionResult{Reasons: []string{}}

	switch wd := s.Date.Weekday(); wd {
	case time.Saturday, time.Sunday:
		res.IsWeekend = true
		res.Reasons = append(res.Reasons, fmt.Sprintf("Scheduled on a weekend (%s)", wd))
	}

	start := s.startMinuteOfDay()
	if start < businessStartMinute || start >= businessEndMinute {
		res.Reasons = append(res.Reasons, "Starts outside business hours (before 9:00 AM or at/after 5:00 PM)")
	}
	if start < businessEndMinute && start+durationMinutes > businessEndMinute {
		res.Reasons = append(res.Reasons, "Extends past business hours (after 5:00 PM)")
	}

	if len(res.Reasons) > 0 {
		res.IsOOH = true
		p := LegacyOOHPremiumPercent
		res.PremiumPercent = &p
	}
	return res
}

// ModeFor picks the OOH billing mode for a detected booking. Weekend jobs are
// out of hours end to end; weekday jobs are split against business hours.
func ModeFor(s Schedule, d OOHDetectionResult) OOHMode {
	switch {
	case !d.IsOOH:
		return NotOOH{}
	case d.IsWeekend:
		return EntireJobOOH{}
	default:
		return ProportionalOOH{StartHour: s.StartHour, StartMinute: s.StartMinute}
	}
}

// CalculateOOHHours intersects [start, start+duration) with [09:00, 17:00) on
// a single 24-hour clock. The calendar date is not consulted.
func CalculateOOHHours(startHour, startMinute, durationMinutes int) HourSplit {
	start := startHour*60 + startMinute
	end := start + durationMinutes

	regular := min(end, businessEndMinute) - max(start, businessStartMinute)
	if regular < 0 {
		regular = 0
	}
	ooh := durationMinutes - regular
	total := minutesToHours(durationMinutes)
	// The larger share is converted directly and the smaller one is the
	// difference, which keeps RegularHours+OOHHours == total exactly.
	var regularHours, oohHours float64
	if regular >= ooh {
		regularHours = minutesToHours(regular)
		oohHours = total - regularHours
	} else {
		oohHours = minutesToHours(ooh)
		regularHours = total - oohHours
	}
	return HourSplit{
		RegularHours:   regularHours,
		OOHHours:       oohHours,
		RegularMinutes: regular,
		OOHMinutes:     ooh,
	}
}

func minutesToHours(m int) float64 {
	return float64(m) / 60
}
