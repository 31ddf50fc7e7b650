package pricing

import (
	"errors"
	"strings"
	"testing"
)

func mustSchedule(t *testing.T, date, clock string) Schedule {
	t.Helper()
	s, err := ParseSchedule(date, clock)
	if err != nil {
		t.Fatalf("ParseSchedule(%q, %q): %v", date, clock, err)
	}
	return s
}

func TestDetectOOH(t *testing.T) {
	tests := []struct {
		name        string
		date, clock string
		duration    int
		wantOOH     bool
		wantReasons []string // substrings, in order
	}{
		{"weekday inside hours", "2026-10-14", "09:00", 480, false, nil},
		{"weekday ends exactly 17:00", "2026-10-14", "15:00", 120, false, nil},
		{"weekday early start", "2026-10-14", "08:59", 120, true, []string{"Starts outside"}},
		{"early start runs past 17:00", "2026-10-14", "08:00", 600, true, []string{"Starts outside", "Extends past"}},
		{"weekday start at 17:00", "2026-10-14", "17:00", 120, true, []string{"Starts outside"}},
		{"weekday runs past 17:00", "2026-10-16", "16:00", 180, true, []string{"Extends past"}},
		{"saturday morning", "2026-10-17", "10:00", 120, true, []string{"weekend (Saturday)"}},
		{"saturday evening", "2026-10-17", "19:00", 120, true, []string{"weekend (Saturday)", "Starts outside"}},
		{"sunday afternoon overrun", "2026-10-18", "16:30", 120, true, []string{"weekend (Sunday)", "Extends past"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectOOH(mustSchedule(t, tt.date, tt.clock), tt.duration, ServiceLevelStandard)
			if got.IsOOH != tt.wantOOH {
				t.Fatalf("IsOOH = %v, want %v", got.IsOOH, tt.wantOOH)
			}
			if len(got.Reasons) != len(tt.wantReasons) {
				t.Fatalf("reasons = %q, want %d entries", got.Reasons, len(tt.wantReasons))
			}
			for i, want := range tt.wantReasons {
				if !strings.Contains(got.Reasons[i], want) {
					t.Errorf("reason[%d] = %q, want it to contain %q", i, got.Reasons[i], want)
				}
			}
			if tt.wantOOH {
				if got.PremiumPercent == nil || *got.PremiumPercent != LegacyOOHPremiumPercent {
					t.Errorf("PremiumPercent = %v, want %d", got.PremiumPercent, LegacyOOHPremiumPercent)
				}
			} else if got.PremiumPercent != nil {
				t.Errorf("PremiumPercent = %d, want nil", *got.PremiumPercent)
			}
		})
	}
}

func TestParseSchedule_Invalid(t *testing.T) {
	for _, c := range [][2]string{{"2026-13-01", "09:00"}, {"2026-10-14", "9am"}, {"", ""}, {"2026-10-14", "24:00"}} {
		if _, err := ParseSchedule(c[0], c[1]); !errors.Is(err, ErrInvalidSchedule) {
			t.Errorf("ParseSchedule(%q, %q) err = %v, want ErrInvalidSchedule", c[0], c[1], err)
		}
	}
}

func TestModeFor(t *testing.T) {
	weekday := mustSchedule(t, "2026-10-16", "16:30")
	if _, ok := ModeFor(weekday, DetectOOH(weekday, 120, ServiceLevelStandard)).(ProportionalOOH); !ok {
		t.Error("weekday overrun should be proportional")
	}
	sat := mustSchedule(t, "2026-10-17", "10:00")
	if _, ok := ModeFor(sat, DetectOOH(sat, 120, ServiceLevelStandard)).(EntireJobOOH); !ok {
		t.Error("weekend job should be entire-job OOH")
	}
	inside := mustSchedule(t, "2026-10-14", "10:00")
	if _, ok := ModeFor(inside, DetectOOH(inside, 120, ServiceLevelStandard)).(NotOOH); !ok {
		t.Error("weekday inside hours should be NotOOH")
	}
}

func TestCalculateOOHHours(t *testing.T) {
	tests := []struct {
		name                string
		hour, minute, dur   int
		wantRegular, wantOO float64
	}{
		{"straddles 17:00 at half hour", 16, 30, 120, 0.5, 1.5},
		{"fully inside", 9, 0, 480, 8, 0},
		{"fully before", 5, 0, 180, 0, 3},
		{"fully after", 18, 0, 240, 0, 4},
		{"straddles 09:00", 8, 0, 120, 1, 1},
		{"covers whole day", 6, 0, 960, 8, 8},
		{"starts at 17:00", 17, 0, 120, 0, 2},
		{"past midnight not wrapped", 23, 0, 480, 0, 8},
		{"fractional minutes", 16, 45, 120, 0.25, 1.75},
		{"midnight start over ten hours", 0, 0, 601, 1.0166666666666675, 9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateOOHHours(tt.hour, tt.minute, tt.dur)
			if got.RegularHours != tt.wantRegular || got.OOHHours != tt.wantOO {
				t.Errorf("got %v/%v, want %v/%v", got.RegularHours, got.OOHHours, tt.wantRegular, tt.wantOO)
			}
		})
	}
}

func TestCalculateOOHHours_SumsToDuration(t *testing.T) {
	for h := 0; h < 24; h++ {
		for m := 0; m < 60; m++ {
			for d := 1; d <= 24*60; d++ {
				s := CalculateOOHHours(h, m, d)
				if s.RegularMinutes < 0 || s.OOHMinutes < 0 {
					t.Fatalf("negative split %+v", s)
				}
				if s.RegularMinutes+s.OOHMinutes != d {
					t.Fatalf("%02d:%02d+%d: %d + %d != %d", h, m, d, s.RegularMinutes, s.OOHMinutes, d)
				}
				if s.RegularHours+s.OOHHours != float64(d)/60 {
					t.Fatalf("%02d:%02d+%d: hours %v + %v != %v", h, m, d, s.RegularHours, s.OOHHours, float64(d)/60)
				}
			}
		}
	}
}
