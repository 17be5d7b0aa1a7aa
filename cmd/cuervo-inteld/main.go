package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/garvonious-ui/cuervo-intel-sub000/internal/common"
	"github.com/garvonious-ui/cuervo-intel-sub000/internal/core"
	"github.com/garvonious-ui/cuervo-intel-sub000/internal/core/extract"
	"github.com/garvonious-ui/cuervo-intel-sub000/internal/repository"
	"github.com/garvonious-ui/cuervo-intel-sub000/internal/server"
)

func main() {
	configPath := flag.String("config", "", "config file")
	flag.Parse()

	cfg, err := common.LoadConfig(*configPath)
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger := common.NewLogger(cfg.Log, os.Stdout)
	slog.SetDefault(logger)

	// Context with signal
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var ledger repository.LedgerRepository
	if cfg.Ledger.DSN != "" {
		l, err := repository.OpenLedger(ctx, cfg.Ledger, logger)
		if err != nil {
			logger.Error("ledger unavailable", "error", err)
			os.Exit(1)
		}
		defer l.Close()
		if err := l.HealthCheck(ctx, cfg.Ledger.DialTimeout); err != nil {
			logger.Error("ledger health failed", "error", err)
			os.Exit(1)
		}
		logger.Info("ledger health OK")
		ledger = l
	}

	proc := core.NewProcessor(logger,
		extract.NewExtractor(extract.ConfigFrom(cfg.Extract), logger),
		repository.NewWriter(cfg.Output.Dir, logger),
		ledger,
		core.OptionsFrom(cfg),
	)
	loader := repository.NewLoader(cfg.Output.Dir, logger)

	if err := server.Run(ctx, cfg.Server, proc, loader, logger); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
	logger.Info("stopped")
}
