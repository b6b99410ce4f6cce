// Command storevoice runs the voice-assistant webhook backend: it wires
// the catalog, the live-data capability, the resolution chain and the
// function registry together and serves the platform webhook.
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/koopa0/storevoice/api"
	"github.com/koopa0/storevoice/internal/catalog"
	"github.com/koopa0/storevoice/internal/config"
	"github.com/koopa0/storevoice/internal/functions"
	"github.com/koopa0/storevoice/internal/livedata"
	"github.com/koopa0/storevoice/internal/log"
	"github.com/koopa0/storevoice/internal/registry"
	"github.com/koopa0/storevoice/internal/resolve"
	"github.com/koopa0/storevoice/internal/scrape"
	"github.com/koopa0/storevoice/internal/telemetry"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "storevoice:", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	logger := log.New(log.Config{
		Level: log.ParseLevel(cfg.LogLevel),
		JSON:  true,
	})
	logger.Info("configuration loaded", "config", cfg)

	// Telemetry sink: OTLP when configured, otherwise discard.
	var sink telemetry.Sink = telemetry.NewNop()
	if cfg.OTLPEndpoint != "" {
		otelSink, shutdown, err := telemetry.NewOTel(ctx, telemetry.OTelConfig{
			Endpoint:    cfg.OTLPEndpoint,
			ServiceName: cfg.ServiceName,
			Insecure:    true,
		}, logger.With("component", "telemetry"))
		if err != nil {
			return fmt.Errorf("initializing telemetry: %w", err)
		}
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				logger.Warn("telemetry shutdown failed", "error", err)
			}
		}()
		sink = otelSink
	}

	// Migrations run over database/sql; the runtime path uses pgxpool.
	migrateDB, err := sql.Open("pgx", cfg.ConnString())
	if err != nil {
		return fmt.Errorf("opening migration connection: %w", err)
	}
	if err := catalog.Migrate(migrateDB); err != nil {
		migrateDB.Close()
		return fmt.Errorf("applying migrations: %w", err)
	}
	migrateDB.Close()

	pool, err := pgxpool.New(ctx, cfg.ConnString())
	if err != nil {
		return fmt.Errorf("creating connection pool: %w", err)
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("pinging catalog database: %w", err)
	}

	store := catalog.New(catalog.NewPG(pool), logger.With("component", "catalog"))

	// The live-data capability is optional; its absence only narrows the
	// resolution chain.
	var live livedata.Capability
	client, err := livedata.Connect(ctx, livedata.Config{
		Endpoint: cfg.LiveEndpoint,
		Site:     cfg.VendorSite(),
		Timeout:  cfg.LiveTimeout(),
	}, logger.With("component", "livedata"))
	switch {
	case err == nil:
		live = client
		defer client.Close()
		logger.Info("live data capability connected", "endpoint", cfg.LiveEndpoint)
	case errors.Is(err, livedata.ErrCapabilityAbsent):
		logger.Info("live data capability absent, serving from catalog and direct fetch")
	default:
		return fmt.Errorf("connecting live data capability: %w", err)
	}

	parser := scrape.NewParser(cfg.ScrapePriceCeiling, logger.With("component", "scrape"))

	direct, err := resolve.NewDirectFetcher(resolve.DirectConfig{
		SearchURL:         cfg.SearchURL,
		UserAgent:         cfg.ScrapeUserAgent,
		Timeout:           cfg.ScrapeTimeout(),
		RequestsPerSecond: cfg.ScrapeRatePerSec,
		Logger:            logger.With("component", "direct"),
	})
	if err != nil {
		return fmt.Errorf("creating direct fetcher: %w", err)
	}

	chain := resolve.New(resolve.Config{
		Live:    live,
		Direct:  direct,
		Catalog: store,
		Parser:  parser,
		Sink:    sink,
		Logger:  logger.With("component", "resolve"),
	})

	reg := registry.New(sink, logger.With("component", "registry"))
	if err := functions.RegisterAll(reg, functions.Deps{
		Catalog: store,
		Chain:   chain,
		Live:    live,
		Parser:  parser,
		Logger:  logger.With("component", "functions"),
	}); err != nil {
		return fmt.Errorf("registering operations: %w", err)
	}
	logger.Info("operations registered", "operations", reg.Names())

	server := api.NewServer(reg, pool, logger.With("component", "api"))
	return server.Run(ctx, cfg.ListenAddr)
}
