package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, k := range []string{"FIELDOPS_HTTP_ADDR", "FIELDOPS_CITY_SEARCH_RADIUS_KM", "FIELDOPS_CITY_MIN_POPULATION", "FIELDOPS_CORS_ORIGINS", "FIELDOPS_ENV", "FIELDOPS_CITY_REFRESH"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.HTTP.Addr != ":8080" {
		t.Errorf("HTTP.Addr = %q", cfg.HTTP.Addr)
	}
	if cfg.Geo.SearchRadiusKm != 300 || cfg.Geo.MinPopulation != 250000 {
		t.Errorf("Geo = %+v", cfg.Geo)
	}
	if cfg.Geo.RefreshInterval != 6*time.Hour {
		t.Errorf("RefreshInterval = %s", cfg.Geo.RefreshInterval)
	}
	if len(cfg.HTTP.AllowedOrigins) != 1 || cfg.Log.Development {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("FIELDOPS_HTTP_ADDR", ":9090")
	t.Setenv("FIELDOPS_CITY_SEARCH_RADIUS_KM", "150.5")
	t.Setenv("FIELDOPS_CITY_MIN_POPULATION", "not-a-number")
	t.Setenv("FIELDOPS_CORS_ORIGINS", "https://app.example.com, https://admin.example.com ,")
	t.Setenv("FIELDOPS_ENV", "development")
	t.Setenv("FIELDOPS_CITY_REFRESH", "30m")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.HTTP.Addr != ":9090" || cfg.Geo.SearchRadiusKm != 150.5 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.Geo.MinPopulation != 250000 {
		t.Errorf("bad int should fall back to default, got %d", cfg.Geo.MinPopulation)
	}
	if len(cfg.HTTP.AllowedOrigins) != 2 || cfg.HTTP.AllowedOrigins[1] != "https://admin.example.com" {
		t.Errorf("AllowedOrigins = %v", cfg.HTTP.AllowedOrigins)
	}
	if cfg.Geo.RefreshInterval != 30*time.Minute {
		t.Errorf("RefreshInterval = %s", cfg.Geo.RefreshInterval)
	}
	if !cfg.Log.Development {
		t.Error("expected development logging")
	}
}
