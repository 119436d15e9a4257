package main

import (
	"context"
	"io"
	"log"
	"os"

	"wanderlust/internal/config"
	"wanderlust/internal/http/handlers"
	"wanderlust/internal/storage"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			log.SetOutput(io.MultiWriter(os.Stdout, f))
		}
	}

	st, closeStore, err := storage.Open(context.Background(), cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer closeStore()

	app := handlers.NewApp(cfg, st)
	log.Printf("[static] /static -> %s", cfg.StaticDir)

	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Print(err)
	}
}
