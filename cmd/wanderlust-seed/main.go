package main

import (
	"context"
	"os"

	"wanderlust/internal/config"
	applog "wanderlust/internal/log"
	"wanderlust/internal/seed"
	"wanderlust/internal/storage"
)

func main() {
	removed, err := run(context.Background(), config.Load())
	if err != nil {
		applog.Event("error", "seed.fail", err, nil)
		os.Exit(1)
	}
	applog.Event("info", "seed.done", nil, map[string]any{"removed": removed, "inserted": len(seed.Samples)})
}

func run(ctx context.Context, cfg config.Config) (int, error) {
	st, closeStore, err := storage.Open(ctx, cfg)
	if err != nil {
		return 0, err
	}
	defer closeStore()
	return seed.Run(ctx, st)
}
