package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"ariga.io/atlas-go-sdk/atlasexec"

	"storefront/internal/pkg/config"
)

// Applies the migrations directory to the configured database through the
// atlas CLI. Run from the repository root: go run ./cmd/migrate
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	client, err := atlasexec.NewClient(".", "atlas")
	if err != nil {
		slog.Error("failed to create atlas client", "error", err)
		os.Exit(1)
	}

	res, err := client.MigrateApply(ctx, &atlasexec.MigrateApplyParams{
		URL:    cfg.DB.BuildDSN(),
		DirURL: "file://migrations",
	})
	if err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	slog.Info("migrations applied", "current", res.Current, "target", res.Target, "applied", len(res.Applied))
}
