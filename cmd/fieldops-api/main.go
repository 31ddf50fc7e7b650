// README: Entry point; loads config, wires services, syncs the city catalog and serves HTTP.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"fieldops/internal/config"
	"fieldops/internal/geo"
	httptransport "fieldops/internal/http"
	"fieldops/internal/http/handlers"
	"fieldops/internal/infra"
	"fieldops/internal/logging"
	"fieldops/internal/maps"
	"fieldops/internal/modules/pricing"
	"fieldops/internal/modules/remotesite"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var verifier infra.TokenVerifier
	if cfg.Firebase.ProjectID != "" {
		verifier, err = infra.NewFirebaseVerifier(ctx, cfg.Firebase.ProjectID, cfg.Firebase.CredentialsFile)
		if err != nil {
			return fmt.Errorf("firebase init: %w", err)
		}
	} else {
		log.Warn("FIREBASE_PROJECT_ID not set, auth disabled; every caller gets the customer view")
	}

	dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		return err
	}
	defer dbPool.Close()

	redisClient, err := infra.NewRedis(ctx, cfg.Redis.Addr)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	cityStore := geo.NewStore(dbPool)
	cityIndex := geo.NewRedisIndex(redisClient)
	n, err := geo.Sync(ctx, cityStore, cityIndex, cfg.Geo.MinPopulation)
	if err != nil {
		return fmt.Errorf("sync city catalog: %w", err)
	}
	log.Info("city catalog loaded", zap.Int("cities", n))

	var resolver remotesite.AddressResolver
	if cfg.Maps.APIKey != "" {
		resolver, err = maps.NewGeocodeService(maps.GeocoderConfig{
			APIKey:            cfg.Maps.APIKey,
			Region:            cfg.Maps.Region,
			RequestsPerSecond: cfg.Maps.RequestsPerSecond,
		})
		if err != nil {
			return err
		}
	} else {
		log.Warn("GOOGLE_MAPS_API_KEY not set, address lookups disabled")
	}

	pricingSvc := pricing.NewService(pricing.NewStore(dbPool), log)
	siteSvc := remotesite.NewService(
		geo.NewFinder(cityIndex, cfg.Geo.SearchRadiusKm, cfg.Geo.MinPopulation),
		resolver,
		log,
	)

	if err := handlers.RegisterValidators(); err != nil {
		return err
	}
	router := httptransport.NewRouter(httptransport.RouterDeps{
		Pricing:        pricingSvc,
		RemoteSite:     siteSvc,
		Verifier:       verifier,
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
		Log:            log,
	})
	server := httptransport.NewServer(cfg.HTTP.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("http server listening", zap.String("addr", cfg.HTTP.Addr))
		return server.Run(gctx)
	})
	if cfg.Geo.RefreshInterval > 0 {
		g.Go(func() error {
			refreshCities(gctx, log, cityStore, cityIndex, cfg.Geo)
			return nil
		})
	}
	return g.Wait()
}

// refreshCities reloads the city index until ctx ends. Failures keep the
// previous index.
func refreshCities(ctx context.Context, log *zap.Logger, src geo.CitySource, idx geo.Replacer, cfg config.GeoConfig) {
	ticker := time.NewTicker(cfg.RefreshInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := geo.Sync(ctx, src, idx, cfg.MinPopulation)
			if err != nil {
				log.Error("city catalog refresh failed", zap.Error(err))
				continue
			}
			log.Debug("city catalog refreshed", zap.Int("cities", n))
		}
	}
}
