package main

import (
	"fmt"
	"os"

	"github.com/bastiangx/codeserve/internal/cli"
	"github.com/bastiangx/codeserve/internal/utils"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var reportLang string

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.Flags().StringVar(&reportLang, "lang", "", "Language id for files with an unknown extension")
}

var reportCmd = &cobra.Command{
	Use:   "report <file|glob>...",
	Short: "Scan files for injection patterns",
	Long: `Scan files for SQL injection, XSS and code injection patterns.

Arguments may be doublestar globs. Quote them so the shell leaves them alone.

Examples:
  codeserve report handler.php
  codeserve report 'web/**/*.{js,html}'`,
	Args: cobra.MinimumNArgs(1),
	RunE: runReport,
}

func runReport(cmd *cobra.Command, args []string) error {
	paths, err := utils.ExpandPaths(args)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no files match %v", args)
	}

	ctx, stop := signalContext()
	defer stop()

	var flagged int
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			log.Warnf("Skipping %s: %v", path, err)
			continue
		}
		lang := utils.LanguageFromPath(path)
		if lang == "" {
			lang = reportLang
		}
		r, err := engine.GenerateSecurityReport(ctx, string(data), lang)
		if err != nil {
			return fmt.Errorf("report for %s: %w", path, err)
		}
		if len(r.Issues) > 0 {
			flagged++
		}
		cli.RenderReport(cmd.OutOrStdout(), path, r)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%d of %d files flagged\n", flagged, len(paths))
	return nil
}
