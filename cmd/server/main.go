package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/dgallion1/grantboard/internal/api"
	"github.com/dgallion1/grantboard/internal/config"
	"github.com/dgallion1/grantboard/internal/dataset"
	"github.com/dgallion1/grantboard/internal/resolve"
	"github.com/dgallion1/grantboard/internal/site"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()

	// Flags override environment.
	port := pflag.StringP("port", "p", cfg.Port, "listen port")
	siteDir := pflag.String("site", cfg.SiteDir, "site root directory (contains pages/)")
	noCache := pflag.Bool("no-cache", !cfg.CacheEnabled, "disable the dataset cache")
	pflag.Parse()
	cfg.Port = *port
	cfg.SiteDir = *siteDir
	cfg.CacheEnabled = !*noCache

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	resolver, err := resolve.New(cfg.SiteDir)
	if err != nil {
		log.Error("resolve site root", "error", err)
		os.Exit(1)
	}

	registry, err := site.Load(resolver)
	if err != nil {
		log.Error("load page registry", "error", err)
		os.Exit(1)
	}

	cache := dataset.NewCache(cfg.CacheEnabled, cfg.MaxTableBytes)
	srv := api.NewServer(registry, resolver, cache, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
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

	log.Info("starting grantboard",
		"port", cfg.Port,
		"site", resolver.Root(),
		"pages", len(registry.Pages()),
	)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
