package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fieldops/internal/modules/pricing"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestJob(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			"regular hours",
			[]string{"job", "--rate", "10000", "--duration", "120"},
			"customer pays $230.00, supplier receives $200.00, platform earns $30.00",
		},
		{
			"entire job OOH",
			[]string{"job", "--rate", "10000", "--duration", "120", "--ooh"},
			"customer pays $330.00, supplier receives $250.00, platform earns $80.00",
		},
		{
			"proportional OOH",
			[]string{"job", "--rate", "10000", "--duration", "180", "--ooh", "--start", "16:00"},
			"customer pays $445.00, supplier receives $350.00, platform earns $95.00",
		},
		{
			"detected from a weekday schedule",
			[]string{"job", "--rate", "10000", "--duration", "180", "--date", "2026-10-16", "--time", "16:00"},
			"customer pays $445.00",
		},
		{
			"remote site",
			[]string{"job", "--rate", "10000", "--duration", "120", "--distance-km", "75"},
			"customer pays $255.00, supplier receives $212.50, platform earns $42.50",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runCLI(t, tt.args...)
			if err != nil {
				t.Fatalf("Execute() error = %v\n%s", err, out)
			}
			if !strings.Contains(out, tt.want) {
				t.Errorf("output missing %q:\n%s", tt.want, out)
			}
		})
	}
}

func TestJob_Views(t *testing.T) {
	out, err := runCLI(t, "job", "--rate", "10000", "--duration", "120", "--view", "supplier")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(out, `"total_payout_cents": 20000`) || strings.Contains(out, "platform_revenue_cents") {
		t.Errorf("unexpected supplier view:\n%s", out)
	}

	if _, err := runCLI(t, "job", "--rate", "10000", "--view", "partner"); err == nil {
		t.Error("expected unknown view error")
	}
}

func TestJob_Errors(t *testing.T) {
	_, err := runCLI(t, "job", "--rate", "10000", "--duration", "60")
	if !errors.Is(err, pricing.ErrDurationOutOfRange) {
		t.Errorf("err = %v, want ErrDurationOutOfRange", err)
	}

	if _, err := runCLI(t, "job", "--duration", "120"); err == nil {
		t.Error("expected missing --rate error")
	}

	_, err = runCLI(t, "job", "--rate", "10000", "--ooh", "--start", "4pm")
	if !errors.Is(err, pricing.ErrInvalidSchedule) {
		t.Errorf("err = %v, want ErrInvalidSchedule", err)
	}
}

func TestRange(t *testing.T) {
	out, err := runCLI(t, "range", "--rates", "8000,10000,12000", "--duration", "120")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(out, "3 suppliers: $184.00 to $276.00 (avg $230.00)") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestOOHAndSplit(t *testing.T) {
	out, err := runCLI(t, "ooh", "--date", "2026-10-17", "--time", "18:00", "--duration", "120")
	if err != nil {
		t.Fatalf("ooh error = %v", err)
	}
	if !strings.Contains(out, `"is_ooh": true`) || !strings.Contains(out, "weekend") {
		t.Errorf("unexpected ooh output:\n%s", out)
	}

	out, err = runCLI(t, "split", "--start", "16:30", "--duration", "120")
	if err != nil {
		t.Fatalf("split error = %v", err)
	}
	if !strings.Contains(out, `"regular_hours": 0.5`) || !strings.Contains(out, `"ooh_hours": 1.5`) {
		t.Errorf("unexpected split output:\n%s", out)
	}
}

func TestRemoteFee(t *testing.T) {
	out, err := runCLI(t, "remote-fee", "--distance-km", "75")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(out, "customer $25.00, supplier $12.50, platform $12.50") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestRemoteFee_CityFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cities.json")
	catalog := `[{"id":"us-den","name":"Denver","country_code":"US","country_name":"United States","population":715522,"lat":39.7392,"lng":-104.9903}]`
	if err := os.WriteFile(path, []byte(catalog), 0o600); err != nil {
		t.Fatal(err)
	}

	out, err := runCLI(t, "remote-fee", "--lat", "40.25", "--lng", "-103.80", "--cities", path)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(out, "km from Denver") || !strings.Contains(out, `"is_remote_site": true`) {
		t.Errorf("unexpected output:\n%s", out)
	}

	out, err = runCLI(t, "remote-fee", "--lat", "38.8", "--lng", "-116.4", "--cities", path)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(out, "location is not serviceable") {
		t.Errorf("unexpected output:\n%s", out)
	}

	if _, err := runCLI(t, "remote-fee", "--lat", "40.25"); err == nil {
		t.Error("expected missing flags error")
	}
}
