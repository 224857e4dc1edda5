package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/multierr"

	"github.com/martin-vega/tienda-backend/internal/catalog"
	"github.com/martin-vega/tienda-backend/pkg/config"
	"github.com/martin-vega/tienda-backend/pkg/db"
	"github.com/martin-vega/tienda-backend/pkg/logger"
)

// Inserts the demo catalog. Safe to run repeatedly: products already
// present (matched by name) are skipped.
func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "seed"})

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logg.Error(ctx, "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "seed",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}

	result, seedErr := catalog.Seed(ctx, dbClient.DB())

	ctx = logg.WithFields(ctx, map[string]any{
		"created": len(result.Created),
		"skipped": len(result.Skipped),
	})
	if combined := multierr.Append(seedErr, dbClient.Close()); combined != nil {
		logg.Error(ctx, "seeding finished with errors", combined)
		os.Exit(1)
	}

	logg.Info(ctx, "seeding completed")
}
