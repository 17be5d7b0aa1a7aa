package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/garvonious-ui/cuervo-intel-sub000/internal/common"
	"github.com/garvonious-ui/cuervo-intel-sub000/internal/core"
	"github.com/garvonious-ui/cuervo-intel-sub000/internal/core/extract"
	"github.com/garvonious-ui/cuervo-intel-sub000/internal/repository"
)

var (
	configPath string
	outDir     string
	logLevel   string
	logFormat  string
)

// app carries what every subcommand wires from configuration.
type app struct {
	cfg    *common.Config
	logger *slog.Logger
	ledger *repository.Ledger
}

func loadApp(ctx context.Context, withLedger bool) (*app, error) {
	cfg, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	if outDir != "" {
		cfg.Output.Dir = outDir
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if logFormat != "" {
		cfg.Log.Format = logFormat
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := common.NewLogger(cfg.Log, os.Stderr)
	slog.SetDefault(logger)

	a := &app{cfg: cfg, logger: logger}
	if withLedger && cfg.Ledger.DSN != "" {
		a.ledger, err = repository.OpenLedger(ctx, cfg.Ledger, logger)
		if err != nil {
			return nil, err
		}
	}
	return a, nil
}

func (a *app) close() {
	if a.ledger != nil {
		_ = a.ledger.Close()
	}
}

func (a *app) extractor() *extract.Extractor {
	return extract.NewExtractor(extract.ConfigFrom(a.cfg.Extract), a.logger)
}

func (a *app) processor() *core.Processor {
	var ledger repository.LedgerRepository
	if a.ledger != nil {
		ledger = a.ledger
	}
	return core.NewProcessor(a.logger, a.extractor(),
		repository.NewWriter(a.cfg.Output.Dir, a.logger), ledger, core.OptionsFrom(a.cfg))
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "cuervo-intel",
		Short:         "Convert autostrat PDF and PPTX exports into structured JSON reports",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (yaml, json, toml or .env)")
	root.PersistentFlags().StringVar(&outDir, "out", "", "output base directory (overrides AUTOSTRAT_DIR)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug, info, warn or error")
	root.PersistentFlags().StringVar(&logFormat, "log-format", "", "json or text")

	root.AddCommand(
		newParseCmd(),
		newBatchCmd(),
		newWatchCmd(),
		newTextCmd(),
		newSectionsCmd(),
		newReportsCmd(),
		newRunsCmd(),
	)
	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Sprint("error: ")+err.Error())
		stop()
		os.Exit(1)
	}
}
