// Command blobserver exposes the blob-recovery pipeline over HTTP: a
// POST /blob endpoint plus a GET /ping health check, wired from config,
// log and server.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/vocdoni/blobdiff/config"
	"github.com/vocdoni/blobdiff/log"
	"github.com/vocdoni/blobdiff/server"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	log.Init(cfg.Log.Level, cfg.Log.Output, nil)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if _, err := server.New(ctx, server.Config{Host: cfg.Host, Port: cfg.Port}); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}

	log.Infow("blobserver ready", "host", cfg.Host, "port", cfg.Port)
	<-ctx.Done()
	log.Infow("shutting down")
}
