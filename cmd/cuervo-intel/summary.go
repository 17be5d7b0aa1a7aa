package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/fatih/color"

	"github.com/garvonious-ui/cuervo-intel-sub000/internal/core"
)

var (
	okStyle      = color.New(color.FgHiGreen)
	errorStyle   = color.New(color.Bold, color.FgHiRed)
	warnStyle    = color.New(color.FgHiYellow)
	skipStyle    = color.New(color.FgHiBlack)
	labelStyle   = color.New(color.FgHiCyan)
	headingStyle = color.New(color.Bold, color.FgHiMagenta)
	titleStyle   = color.New(color.Bold, color.FgHiWhite)
)

func printOutcomes(w io.Writer, outcomes []core.Outcome) {
	for _, o := range outcomes {
		switch {
		case o.Skipped:
			fmt.Fprintf(w, "%s %s\n", skipStyle.Sprint("skip"), o.SourceFile)
		case o.Failed():
			fmt.Fprintf(w, "%s %s\n     %s\n", errorStyle.Sprint("FAIL"), o.SourceFile, *o.Error)
		default:
			fmt.Fprintf(w, "%s %s -> %s %s\n", okStyle.Sprint(" ok "), o.SourceFile,
				labelStyle.Sprint(*o.ReportType), *o.OutputPath)
		}
	}
}

func printSummary(w io.Writer, sum core.Summary, manifest string) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, titleStyle.Sprint("Batch complete"))
	fmt.Fprintf(w, "  files:     %d\n", sum.Total)
	fmt.Fprintf(w, "  written:   %s\n", okStyle.Sprint(sum.Succeeded))
	if sum.Failed > 0 {
		fmt.Fprintf(w, "  failed:    %s\n", errorStyle.Sprint(sum.Failed))
	} else {
		fmt.Fprintf(w, "  failed:    %d\n", sum.Failed)
	}
	if sum.Skipped > 0 {
		fmt.Fprintf(w, "  skipped:   %s\n", skipStyle.Sprint(sum.Skipped))
	}

	types := make([]string, 0, len(sum.ByType))
	for t := range sum.ByType {
		types = append(types, t)
	}
	sort.Strings(types)
	for _, t := range types {
		fmt.Fprintf(w, "    %-20s %d\n", t, sum.ByType[t])
	}
	if manifest != "" {
		fmt.Fprintf(w, "  manifest:  %s\n", manifest)
	}
}
