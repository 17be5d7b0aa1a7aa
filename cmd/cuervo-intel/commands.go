package main

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/garvonious-ui/cuervo-intel-sub000/constants"
	"github.com/garvonious-ui/cuervo-intel-sub000/internal/core"
	"github.com/garvonious-ui/cuervo-intel-sub000/internal/core/async"
	"github.com/garvonious-ui/cuervo-intel-sub000/internal/core/parse"
	"github.com/garvonious-ui/cuervo-intel-sub000/internal/export"
	"github.com/garvonious-ui/cuervo-intel-sub000/internal/ingest"
	"github.com/garvonious-ui/cuervo-intel-sub000/internal/repository"
)

func newParseCmd() *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse one document and write its report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd.Context(), !dryRun)
			if err != nil {
				return err
			}
			defer a.close()

			if dryRun {
				report, err := a.processor().ParseFile(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return printJSON(cmd, report)
			}
			out, err := a.processor().ProcessFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printOutcomes(cmd.OutOrStdout(), []core.Outcome{out})
			return nil
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the report instead of writing it")
	return cmd
}

func newBatchCmd() *cobra.Command {
	var (
		dir           string
		manifest      string
		workers       int
		recursive     bool
		skipUnchanged bool
		jsonOut       bool
	)
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Parse every PDF and PPTX in a directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := loadApp(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer a.close()

			if dir == "" {
				dir = a.cfg.Batch.InputDir
			}
			if cmd.Flags().Changed("workers") {
				a.cfg.Batch.Workers = workers
			}
			if recursive {
				a.cfg.Batch.Recursive = true
			}
			if skipUnchanged {
				if a.ledger == nil {
					return fmt.Errorf("--skip-unchanged needs LEDGER_DSN")
				}
				a.cfg.Batch.SkipUnchanged = true
			}

			outcomes, err := a.processor().ProcessDirectory(cmd.Context(), dir)
			if err != nil {
				return err
			}
			if manifest != "" {
				if err := export.NewService(a.logger).WriteManifest(manifest, outcomes); err != nil {
					return fmt.Errorf("write manifest: %w", err)
				}
			}
			if jsonOut {
				return printJSON(cmd, outcomes)
			}
			printOutcomes(cmd.OutOrStdout(), outcomes)
			printSummary(cmd.OutOrStdout(), core.Summarize(outcomes), manifest)
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "input directory (defaults to PDF_DIR)")
	cmd.Flags().StringVar(&manifest, "manifest", "", "also write an XLSX manifest to this path")
	cmd.Flags().IntVar(&workers, "workers", 1, "files parsed in parallel")
	cmd.Flags().BoolVar(&recursive, "recursive", false, "descend into subdirectories")
	cmd.Flags().BoolVar(&skipUnchanged, "skip-unchanged", false, "skip files already written with the same content")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "print outcomes as JSON")
	return cmd
}

func newWatchCmd() *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Parse documents as they land in a directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			a, err := loadApp(ctx, true)
			if err != nil {
				return err
			}
			defer a.close()
			if dir == "" {
				dir = a.cfg.Batch.InputDir
			}

			w := cmd.OutOrStdout()
			q := async.NewProcessorQueue(a.processor(), a.logger,
				async.WithWorkers(a.cfg.Batch.Workers),
				async.WithQueueSize(a.cfg.Batch.QueueSize),
				async.WithResultHandler(func(o core.Outcome) { printOutcomes(w, []core.Outcome{o}) }),
			)
			defer q.Shutdown(context.WithoutCancel(ctx))

			events, errs, err := ingest.StartWatcher(ctx, ingest.WatchConfig{
				Roots:       []string{dir},
				Recursive:   a.cfg.Batch.Recursive,
				InitialScan: true,
				Debounce:    a.cfg.Batch.Debounce,
				Logger:      a.logger,
			})
			if err != nil {
				return err
			}
			a.logger.Info("watching for documents", "path", dir)
			for {
				select {
				case path, ok := <-events:
					if !ok {
						return nil
					}
					if err := q.Enqueue(ctx, async.Job{Path: path}); err != nil {
						if ctx.Err() != nil {
							return nil
						}
						a.logger.Error("enqueue failed, stopping watch", "path", path, "error", err)
						return err
					}
				case err, ok := <-errs:
					if !ok {
						errs = nil
						continue
					}
					a.logger.Warn("watch error", "error", err)
				case <-ctx.Done():
					return nil
				}
			}
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "directory to watch (defaults to PDF_DIR)")
	return cmd
}

func newTextCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "text <file>",
		Short: "Print the flattened text blob of a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd.Context(), false)
			if err != nil {
				return err
			}
			res, err := a.extractor().Extract(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			for _, w := range res.Warnings {
				a.logger.Warn("extraction warning", "path", args[0], "warning", w)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), res.Text)
			return err
		},
	}
}

func newSectionsCmd() *cobra.Command {
	var full, parsed bool
	cmd := &cobra.Command{
		Use:   "sections <file>",
		Short: "Show detected metadata and the sections found in a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd.Context(), false)
			if err != nil {
				return err
			}
			res, err := a.extractor().Extract(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			meta, err := parse.DetectMetadata(res.Text)
			if err != nil {
				fmt.Fprintln(w, warnStyle.Sprint("metadata: ")+err.Error())
			} else {
				fmt.Fprintf(w, "%s %s  %s %q  %s %q\n",
					labelStyle.Sprint("type"), meta.Type,
					labelStyle.Sprint("identifier"), meta.Identifier,
					labelStyle.Sprint("date"), meta.Date)
			}

			sections := parse.Segment(res.Text)
			keys := make([]string, 0, len(sections))
			for k := range sections {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			th := parse.ThresholdsFrom(a.cfg.Parse)
			for _, k := range keys {
				body := sections[k]
				fmt.Fprintf(w, "%s (%d chars)\n", headingStyle.Sprint(k), len([]rune(body)))
				if full {
					fmt.Fprintln(w, body)
					fmt.Fprintln(w)
				}
				if parsed {
					v, ok := parse.ParseSection(k, body, th)
					if !ok {
						fmt.Fprintln(w, skipStyle.Sprint("  no parser for this heading"))
						continue
					}
					b, err := json.MarshalIndent(v, "  ", "  ")
					if err != nil {
						return err
					}
					fmt.Fprintf(w, "  %s\n", b)
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&full, "full", false, "print section bodies")
	cmd.Flags().BoolVar(&parsed, "parsed", false, "print each section as its parser reads it")
	return cmd
}

func newRunsCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List recent entries of the parse run ledger",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := loadApp(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer a.close()
			if a.ledger == nil {
				return fmt.Errorf("run ledger is disabled, set LEDGER_DSN")
			}

			runs, err := a.ledger.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for _, r := range runs {
				fmt.Fprintf(w, "%s  %s\n", labelStyle.Sprint(r.StartedAt.Local().Format(time.DateTime)), r)
				if r.Error != "" {
					fmt.Fprintf(w, "     %s\n", errorStyle.Sprint(r.Error))
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "number of runs to show")
	return cmd
}

func newReportsCmd() *cobra.Command {
	var section string
	cmd := &cobra.Command{
		Use:   "reports [type]",
		Short: "List stored reports, or counts per type when no type is given",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd.Context(), false)
			if err != nil {
				return err
			}
			loader := repository.NewLoader(a.cfg.Output.Dir, a.logger)
			w := cmd.OutOrStdout()

			if len(args) == 0 {
				counts, err := loader.Counts()
				if err != nil {
					return err
				}
				for _, rt := range constants.ReportTypes() {
					fmt.Fprintf(w, "%-20s %d\n", rt.Label(), counts[rt])
				}
				return nil
			}

			rt, ok := constants.ParseReportType(args[0])
			if !ok {
				return fmt.Errorf("unknown report type %q", args[0])
			}
			if section != "" {
				out, err := loader.SectionAcross(rt, section)
				if err != nil {
					return err
				}
				return printJSON(cmd, out)
			}
			all, err := loader.LoadAll(rt)
			if err != nil {
				return err
			}
			for _, stem := range repository.Stems(all) {
				fmt.Fprintln(w, filepath.Join(a.cfg.Output.Dir, rt.Dir(), stem+".json"))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&section, "section", "", "print one section across all reports of the type")
	return cmd
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
