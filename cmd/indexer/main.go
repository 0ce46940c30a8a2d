// The indexer exports the institution registry from PostgreSQL into the
// bulk JSON document the API serves from. Records are validated through a
// full catalog build before anything is written, so a broken registry never
// replaces a good document.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/kurumrehberi/institution-directory/backend/internal/adapters/source"
	"github.com/kurumrehberi/institution-directory/backend/internal/catalog"
	"github.com/kurumrehberi/institution-directory/backend/internal/infrastructure/clients/postgres"
	"github.com/kurumrehberi/institution-directory/backend/internal/infrastructure/observability"
	"github.com/kurumrehberi/institution-directory/backend/pkg/config"
)

func main() {
	var out string
	var intervalFlag string
	flag.StringVar(&out, "out", "", "output path for the catalog document (defaults to CATALOG_FILE)")
	flag.StringVar(&intervalFlag, "interval", "", "repeat interval for exporting (e.g. 6h, 30m)")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	observability.InitLogger("institution-indexer", cfg.Server.Env)

	if out == "" {
		out = cfg.Catalog.FilePath
	}

	intervalValue := strings.TrimSpace(intervalFlag)
	if intervalValue == "" {
		intervalValue = strings.TrimSpace(os.Getenv("EXPORT_INTERVAL"))
	}

	var interval time.Duration
	if intervalValue != "" {
		interval, err = time.ParseDuration(intervalValue)
		if err != nil {
			log.Fatal().Str("interval", intervalValue).Err(err).Msg("invalid interval")
		}
		if interval <= 0 {
			log.Fatal().Msg("interval must be greater than zero")
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	for {
		if err := exportOnce(ctx, cfg, out); err != nil {
			log.Error().Err(err).Msg("export failed")
		}

		if interval <= 0 {
			break
		}

		log.Info().Dur("next_run_in", interval).Msg("export complete")

		select {
		case <-ctx.Done():
			log.Info().Msg("indexer shutting down")
			return
		case <-time.After(interval):
		}
	}
}

func exportOnce(ctx context.Context, cfg *config.Config, out string) error {
	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		return err
	}
	defer pgClient.Close()

	records, err := source.NewPostgresSource(pgClient).FetchRecords(ctx)
	if err != nil {
		return err
	}

	// A document that would not load cleanly must never be written out
	c, err := catalog.Load(records)
	if err != nil {
		return err
	}

	tmp := out + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}

	if err := source.EncodeDocument(f, records); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}

	if err := os.Rename(tmp, out); err != nil {
		os.Remove(tmp)
		return err
	}

	log.Info().Int("records", c.Len()).Str("path", out).Msg("catalog document written")
	return nil
}
