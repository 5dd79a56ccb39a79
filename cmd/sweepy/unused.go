package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/joris-gallot/sweepy"
	"github.com/joris-gallot/sweepy/internal/config"
)

var (
	unusedEntries    []string
	unusedConfigPath string
	unusedJSON       bool
)

func unusedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unused [project root]",
		Short: "Report exported symbols nothing reachable imports",
		Long: `unused walks the given project root, builds its module graph from
the given entry files, and reports every export that nothing
reachable actually imports.

Examples:
  sweepy unused . --entry src/index.ts
  sweepy unused . --entry src/index.ts --entry src/worker.ts --json`,
		Args: cobra.ExactArgs(1),
		RunE: runUnused,
	}

	cmd.Flags().StringSliceVarP(&unusedEntries, "entry", "e", nil, "entry file, relative to the project root (repeatable)")
	cmd.Flags().StringVarP(&unusedConfigPath, "config", "c", "", "path to a sweepy config file")
	cmd.Flags().BoolVar(&unusedJSON, "json", false, "output the report as JSON")

	return cmd
}

func runUnused(cmd *cobra.Command, args []string) error {
	root := args[0]
	if len(unusedEntries) == 0 {
		return fmt.Errorf("at least one --entry is required")
	}

	cfg, err := config.LoadConfig(unusedConfigPath, root)
	if err != nil {
		return err
	}

	report, err := sweepy.Analyze(context.Background(), root, unusedEntries, cfg)
	if err != nil {
		return err
	}

	if unusedJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	renderReport(report)
	return nil
}

func renderReport(report *sweepy.Report) {
	pterm.DefaultSection.Println("Reachable files")
	pterm.Info.Printfln("%d file(s) reachable from the given entries", len(report.ReachableFiles))

	if len(report.UnusedExports) == 0 {
		pterm.Success.Println("No unused exports found")
		return
	}

	pterm.DefaultSection.Println("Unused exports")
	rows := pterm.TableData{{"File", "Export"}}
	for _, u := range report.UnusedExports {
		rows = append(rows, []string{filepath.ToSlash(u.File), u.Name})
	}
	table := pterm.DefaultTable.WithHasHeader(true).WithBoxed(false).WithData(rows)
	out, err := table.Srender()
	if err != nil {
		pterm.Error.Printf("rendering report: %v\n", err)
		return
	}
	pterm.Println(out)
	pterm.Warning.Printfln("%d unused export(s)", len(report.UnusedExports))
}
