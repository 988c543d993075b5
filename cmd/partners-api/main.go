package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/edvin/partners/internal/api"
	"github.com/edvin/partners/internal/config"
	"github.com/edvin/partners/internal/core"
	"github.com/edvin/partners/internal/db"
	"github.com/edvin/partners/internal/logging"
	"github.com/edvin/partners/internal/metrics"
	"github.com/edvin/partners/internal/model"
)

func main() {
	if len(os.Args) >= 2 {
		switch os.Args[1] {
		case "import":
			importPartners(os.Args[2:])
			return
		case "export":
			exportPartners(os.Args[2:])
			return
		}
	}

	migrateFlag := flag.Bool("migrate", false, "Run database migrations before starting")
	migrateDirFlag := flag.String("migrate-dir", "migrations", "Migration files directory")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewLogger(cfg)

	if *migrateFlag {
		logger.Info().Str("dir", *migrateDirFlag).Msg("running database migrations")
		if err := db.RunMigrations(cfg.DatabaseURL, *migrateDirFlag); err != nil {
			logger.Fatal().Err(err).Msg("migration failed")
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()

	metrics.RegisterPgxPoolMetrics(pool)

	srv := api.NewServer(logger, pool, cfg)

	httpServer := &http.Server{
		Addr:         cfg.HTTPListenAddr,
		Handler:      srv,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", cfg.HTTPListenAddr).Msg("starting partners API server")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	httpServer.Shutdown(shutdownCtx)
}

// importPartners bulk-loads partner records from a JSON file, either a bare
// array or the {"pdvs": [...]} wrapper used by the canonical seed dataset.
func importPartners(args []string) {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	file := fs.String("file", "", "Path to the JSON file to import (required)")
	workers := fs.Int("workers", 8, "Number of concurrent inserts")
	fs.Parse(args)

	if *file == "" {
		fmt.Fprintln(os.Stderr, "error: --file is required")
		fmt.Fprintln(os.Stderr, "usage: partners-api import --file <path> [--workers <n>]")
		os.Exit(1)
	}

	raw, err := os.ReadFile(*file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to read %s: %v\n", *file, err)
		os.Exit(1)
	}

	var partners []model.Partner
	var wrapper struct {
		PDVs []model.Partner `json:"pdvs"`
	}
	if err := json.Unmarshal(raw, &wrapper); err == nil && len(wrapper.PDVs) > 0 {
		partners = wrapper.PDVs
	} else if err := json.Unmarshal(raw, &partners); err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to parse %s: %v\n", *file, err)
		os.Exit(1)
	}

	svc, pool := mustPartnerService()
	defer pool.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	var imported, skipped atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(*workers)
	for i := range partners {
		p := &partners[i]
		g.Go(func() error {
			err := svc.Create(gctx, p)
			switch {
			case err == nil:
				imported.Add(1)
				return nil
			case errors.Is(err, core.ErrDuplicateID), errors.Is(err, core.ErrDuplicateDocument):
				skipped.Add(1)
				return nil
			default:
				return fmt.Errorf("partner %s: %w", p.ID, err)
			}
		})
	}
	if err := g.Wait(); err != nil {
		fmt.Fprintf(os.Stderr, "error: import failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("imported %d partners, skipped %d duplicates\n", imported.Load(), skipped.Load())
}

// exportPartners writes all partner records to a JSON file.
func exportPartners(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	file := fs.String("file", "", "Path to the JSON file to write (required)")
	fs.Parse(args)

	if *file == "" {
		fmt.Fprintln(os.Stderr, "error: --file is required")
		fmt.Fprintln(os.Stderr, "usage: partners-api export --file <path>")
		os.Exit(1)
	}

	svc, pool := mustPartnerService()
	defer pool.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	partners, err := svc.List(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to list partners: %v\n", err)
		os.Exit(1)
	}

	out, err := json.MarshalIndent(partners, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to encode partners: %v\n", err)
		os.Exit(1)
	}

	if err := os.WriteFile(*file, out, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to write %s: %v\n", *file, err)
		os.Exit(1)
	}

	fmt.Printf("exported %d partners to %s\n", len(partners), *file)
}

func mustPartnerService() (*core.PartnerService, interface{ Close() }) {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to load config: %v\n", err)
		os.Exit(1)
	}
	if cfg.DatabaseURL == "" {
		fmt.Fprintln(os.Stderr, "error: DATABASE_URL is required")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to connect to database: %v\n", err)
		os.Exit(1)
	}

	return core.NewPartnerService(pool), pool
}
