package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/zabdulla/walton-production/internal/config"
	"github.com/zabdulla/walton-production/internal/server"
	"github.com/zabdulla/walton-production/internal/util"
)

var (
	port       = flag.Int("port", 0, "listen port (config.toml wins when it sets one explicitly)")
	devMode    = flag.Bool("dev", false, "development mode")
	reportsDir = flag.String("reportsDir", "", "shift reports folder (overrides config)")
	outputDir  = flag.String("outputDir", "", "export output folder (overrides config)")
	noBrowser  = flag.Bool("no-browser", false, "do not open the browser on start")
)

func newLogger(dev bool) (*zap.Logger, error) {
	if dev {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.DisableStacktrace = true
	return cfg.Build()
}

func main() {
	flag.Parse()

	cfg, info, err := config.LoadConfigWithInfo()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config, using defaults: %v\n", err)
		cfg = config.DefaultConfig()
		info = config.LoadConfigInfo{}
	}

	// Flags override the config file except where it pins the port.
	if *port > 0 && !info.PortSpecified {
		cfg.Server.Port = *port
	}
	if *devMode {
		cfg.Server.DevMode = true
	}
	if *reportsDir != "" {
		cfg.Data.ReportsDir = *reportsDir
	}
	if *outputDir != "" {
		cfg.Data.OutputDir = *outputDir
	}

	log, err := newLogger(cfg.Server.DevMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	srv, err := server.NewServer(cfg, log)
	if err != nil {
		log.Fatal("failed to start", zap.Error(err))
	}

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	url := fmt.Sprintf("http://localhost:%d", cfg.Server.Port)

	go func() {
		log.Info("server listening",
			zap.Int("port", cfg.Server.Port),
			zap.String("reportsDir", cfg.Data.ReportsDir),
			zap.String("outputDir", cfg.Data.OutputDir))
		if err := srv.Run(addr); err != nil {
			log.Fatal("server stopped", zap.Error(err))
		}
	}()

	if !cfg.Server.DevMode && !*noBrowser {
		if err := util.OpenBrowserWithFallback(url); err != nil {
			log.Warn("could not open browser", zap.String("url", url), zap.Error(err))
		}
	} else {
		log.Info("ready", zap.String("url", url))
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	if err := srv.Close(); err != nil {
		log.Error("close failed", zap.Error(err))
	}
}
