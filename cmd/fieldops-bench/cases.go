// README: Bench cases: environment checks, pricing API scenarios with expected cents, and a quote load test.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"regexp"
	"strings"
	"sync/atomic"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

const (
	statusPass = "PASS"
	statusFail = "FAIL"
	statusSkip = "SKIP"
)

type Runner struct {
	cfg   Config
	httpc *http.Client
	db    *pgxpool.Pool
	redis *redis.Client
}

type Result struct {
	Status  string
	Latency time.Duration
	Note    string
}

type TestCase struct {
	Name string
	Run  func(ctx context.Context, r *Runner) Result
}

func NewRunner(cfg Config) *Runner {
	return &Runner{
		cfg:   cfg,
		httpc: &http.Client{Timeout: 10 * time.Second},
	}
}

func (r *Runner) RunAll(ctx context.Context) []Result {
	if r.cfg.DSN != "" {
		if db, err := pgxpool.New(ctx, r.cfg.DSN); err == nil {
			r.db = db
			defer db.Close()
		}
	}
	if r.cfg.RedisAddr != "" {
		r.redis = redis.NewClient(&redis.Options{Addr: r.cfg.RedisAddr})
		defer r.redis.Close()
	}

	tests := r.cases()
	results := make([]Result, 0, len(tests))
	for _, tc := range tests {
		res := tc.Run(ctx, r)
		results = append(results, res)
		fmt.Printf("%-5s %s", res.Status, tc.Name)
		if res.Latency > 0 {
			fmt.Printf(" (%s)", res.Latency)
		}
		if res.Note != "" {
			fmt.Printf(" - %s", res.Note)
		}
		fmt.Println()
	}
	return results
}

func (r *Runner) cases() []TestCase {
	base := r.cfg.BaseURL
	quote := base + "/api/pricing/quote"
	return []TestCase{
		{Name: "Env: Postgres connect", Run: pingDB},
		{Name: "Env: Redis connect", Run: pingRedis},
		{Name: "Migration: apply (optional)", Run: applyMigration},
		{Name: "Catalog: major cities indexed", Run: cityIndexLoaded},
		{Name: "API: health", Run: func(ctx context.Context, r *Runner) Result {
			status, _, latency, err := r.do(ctx, http.MethodGet, base+"/health", nil)
			return expectStatus(status, http.StatusOK, latency, err)
		}},

		jsonCase("Quote: 2h regular", quote,
			map[string]any{"supplier_hourly_rate_cents": 10000, "duration_minutes": 120},
			map[string]float64{"customer_pays": 23000, "supplier_receives": 20000, "platform_earns": 3000}),
		jsonCase("Quote: 2h entire job OOH", quote,
			map[string]any{"supplier_hourly_rate_cents": 10000, "duration_minutes": 120, "is_ooh": true},
			map[string]float64{"customer_pays": 33000, "supplier_receives": 25000, "platform_earns": 8000}),
		jsonCase("Quote: 3h from 16:00 proportional OOH", quote,
			map[string]any{"supplier_hourly_rate_cents": 10000, "duration_minutes": 180, "is_ooh": true, "start_hour": 16, "start_minute": 0},
			map[string]float64{"customer_pays": 44500, "supplier_receives": 35000, "platform_earns": 9500}),
		statusCase("Quote: 1h rejected", quote,
			map[string]any{"supplier_hourly_rate_cents": 10000, "duration_minutes": 60}, http.StatusBadRequest),
		jsonCase("Range: three suppliers", base+"/api/pricing/range",
			map[string]any{"supplier_rates_cents": []int64{8000, 10000, 12000}, "duration_minutes": 120},
			map[string]float64{"min_price_cents": 18400, "max_price_cents": 27600, "avg_price_cents": 23000, "supplier_count": 3}),
		statusCase("Range: empty rates rejected", base+"/api/pricing/range",
			map[string]any{"supplier_rates_cents": []int64{}, "duration_minutes": 120}, http.StatusBadRequest),
		statusCase("OOH: saturday evening", base+"/api/pricing/ooh",
			map[string]any{"scheduled_date": "2026-10-17", "scheduled_time": "18:00", "duration_minutes": 120}, http.StatusOK),
		statusCase("Remote site: open ocean is unserviceable", base+"/api/remote-site-fee",
			map[string]any{"lat": 0.0, "lng": -140.0}, http.StatusOK),

		{Name: "Load: quote throughput", Run: func(ctx context.Context, r *Runner) Result {
			return loadQuote(ctx, r, quote)
		}},
	}
}

func (r *Runner) do(ctx context.Context, method, url string, body any) (int, []byte, time.Duration, error) {
	var reader io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		reader = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return 0, nil, 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	if r.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+r.cfg.Token)
	}
	start := time.Now()
	resp, err := r.httpc.Do(req)
	if err != nil {
		return 0, nil, 0, err
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	return resp.StatusCode, raw, time.Since(start), err
}

func expectStatus(got, want int, latency time.Duration, err error) Result {
	if err != nil {
		return Result{Status: statusFail, Note: err.Error()}
	}
	if got != want {
		return Result{Status: statusFail, Latency: latency, Note: fmt.Sprintf("status=%d want=%d", got, want)}
	}
	return Result{Status: statusPass, Latency: latency}
}

func statusCase(name, url string, body any, want int) TestCase {
	return TestCase{Name: name, Run: func(ctx context.Context, r *Runner) Result {
		status, _, latency, err := r.do(ctx, http.MethodPost, url, body)
		return expectStatus(status, want, latency, err)
	}}
}

// jsonCase expects 200 and the given top-level numeric fields. The quote
// cases need an admin token to see all three figures.
func jsonCase(name, url string, body any, want map[string]float64) TestCase {
	return TestCase{Name: name, Run: func(ctx context.Context, r *Runner) Result {
		status, raw, latency, err := r.do(ctx, http.MethodPost, url, body)
		if res := expectStatus(status, http.StatusOK, latency, err); res.Status != statusPass {
			return res
		}
		var got map[string]any
		if err := json.Unmarshal(raw, &got); err != nil {
			return Result{Status: statusFail, Latency: latency, Note: err.Error()}
		}
		for k, v := range want {
			if got[k] != v {
				return Result{Status: statusFail, Latency: latency, Note: fmt.Sprintf("%s=%v want=%v", k, got[k], v)}
			}
		}
		return Result{Status: statusPass, Latency: latency}
	}}
}

func pingDB(ctx context.Context, r *Runner) Result {
	if r.db == nil {
		return Result{Status: statusFail, Note: "db not configured"}
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := r.db.Ping(ctx); err != nil {
		return Result{Status: statusFail, Note: err.Error()}
	}
	return Result{Status: statusPass}
}

func pingRedis(ctx context.Context, r *Runner) Result {
	if r.redis == nil {
		return Result{Status: statusFail, Note: "redis not configured"}
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := r.redis.Ping(ctx).Err(); err != nil {
		return Result{Status: statusFail, Note: err.Error()}
	}
	return Result{Status: statusPass}
}

func applyMigration(ctx context.Context, r *Runner) Result {
	if !r.cfg.ApplyMigration {
		return Result{Status: statusSkip, Note: "apply-migration=false"}
	}
	if r.db == nil {
		return Result{Status: statusFail, Note: "db not configured"}
	}
	sql, err := os.ReadFile(r.cfg.MigrationPath)
	if err != nil {
		return Result{Status: statusFail, Note: err.Error()}
	}
	for _, s := range splitSQL(string(sql)) {
		if _, err := r.db.Exec(ctx, s); err != nil {
			return Result{Status: statusFail, Note: err.Error()}
		}
	}
	tables := createdTables(string(sql))
	return Result{Status: statusPass, Note: "tables: " + strings.Join(tables, ",")}
}

func cityIndexLoaded(ctx context.Context, r *Runner) Result {
	if r.redis == nil {
		return Result{Status: statusSkip, Note: "redis not configured"}
	}
	n, err := r.redis.ZCard(ctx, "geo:major_cities").Result()
	if err != nil {
		return Result{Status: statusFail, Note: err.Error()}
	}
	if n == 0 {
		return Result{Status: statusFail, Note: "city index is empty"}
	}
	return Result{Status: statusPass, Note: fmt.Sprintf("cities=%d", n)}
}

func loadQuote(ctx context.Context, r *Runner, url string) Result {
	payload := map[string]any{
		"supplier_hourly_rate_cents": 10000,
		"duration_minutes":           180,
		"is_ooh":                     true,
		"start_hour":                 16,
	}
	end := time.Now().Add(r.cfg.Duration)
	var count, errCount atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < r.cfg.Concurrency; i++ {
		g.Go(func() error {
			for time.Now().Before(end) && gctx.Err() == nil {
				status, _, _, err := r.do(gctx, http.MethodPost, url, payload)
				if err != nil || status != http.StatusOK {
					errCount.Add(1)
					continue
				}
				count.Add(1)
			}
			return nil
		})
	}
	_ = g.Wait()

	if count.Load() == 0 {
		return Result{Status: statusFail, Note: "no requests completed"}
	}
	rps := float64(count.Load()) / r.cfg.Duration.Seconds()
	return Result{Status: statusPass, Note: fmt.Sprintf("rps=%.1f errors=%d", rps, errCount.Load())}
}

func createdTables(sql string) []string {
	re := regexp.MustCompile(`(?i)create\s+table\s+if\s+not\s+exists\s+([a-zA-Z0-9_]+)`)
	matches := re.FindAllStringSubmatch(sql, -1)
	tables := make([]string, 0, len(matches))
	for _, m := range matches {
		tables = append(tables, m[1])
	}
	return tables
}

func splitSQL(sql string) []string {
	lines := strings.Split(sql, "\n")
	filtered := make([]string, 0, len(lines))
	for _, line := range lines {
		l := strings.TrimSpace(line)
		if strings.HasPrefix(l, "--") || l == "" {
			continue
		}
		filtered = append(filtered, line)
	}
	parts := strings.Split(strings.Join(filtered, "\n"), ";")
	stmts := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			stmts = append(stmts, s)
		}
	}
	return stmts
}
