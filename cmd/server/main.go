package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgallion1/examgest/internal/api"
	"github.com/dgallion1/examgest/internal/config"
	"github.com/dgallion1/examgest/internal/mathtool"
	"github.com/dgallion1/examgest/internal/pipeline"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	// External capabilities.
	translator := mathtool.NewExecTranslator(cfg.TranslatorCmd, cfg.TranslatorTimeout, cfg.MaxTranslatorOutput)
	rasterizer := mathtool.NewExecRasterizer(cfg.RasterizerCmd, cfg.RasterizerTimeout)

	converter := pipeline.NewConverter(translator, rasterizer, log, cfg.MathConcurrency)

	srv := api.NewServer(converter, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 300 * time.Second, // conversions shell out, give them room
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	log.Info("starting examgest", "port", cfg.Port, "math_concurrency", cfg.MathConcurrency)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
