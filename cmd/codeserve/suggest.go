package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/bastiangx/codeserve/internal/cli"
	"github.com/bastiangx/codeserve/internal/utils"
	"github.com/bastiangx/codeserve/pkg/suggest"
	"github.com/spf13/cobra"
)

var (
	suggestFile string
	suggestLine int
	suggestCol  int
	suggestLang string
)

func init() {
	rootCmd.AddCommand(suggestCmd)
	suggestCmd.Flags().StringVarP(&suggestFile, "file", "f", "", "Document to complete in (required)")
	suggestCmd.Flags().IntVarP(&suggestLine, "line", "l", 0, "Zero-based cursor line")
	suggestCmd.Flags().IntVar(&suggestCol, "col", -1, "Zero-based cursor column (default: end of line)")
	suggestCmd.Flags().StringVar(&suggestLang, "lang", "", "Language id (default: from file extension)")
	_ = suggestCmd.MarkFlagRequired("file")
}

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Print ranked suggestions for a cursor position in a file",
	Long: `Print ranked suggestions for a cursor position in a file.

The prefix is the text of the cursor line up to the column.

Examples:
  codeserve suggest --file app.py --line 3
  codeserve suggest -f index.html -l 10 --col 4 --lang html`,
	RunE: runSuggest,
}

func runSuggest(cmd *cobra.Command, _ []string) error {
	data, err := os.ReadFile(suggestFile)
	if err != nil {
		return fmt.Errorf("failed to read document: %w", err)
	}
	doc := string(data)

	lang := suggestLang
	if lang == "" {
		lang = utils.LanguageFromPath(suggestFile)
	}
	if lang == "" {
		return fmt.Errorf("cannot infer language of %s, pass --lang", suggestFile)
	}

	prefix, col, err := cursorPrefix(doc, suggestLine, suggestCol)
	if err != nil {
		return err
	}

	ctx, stop := signalContext()
	defer stop()

	candidates := engine.GenerateSuggestions(ctx, doc, suggest.Position{Line: suggestLine, Column: col}, lang, prefix)
	if len(candidates) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No suggestions for %q\n", prefix)
		return nil
	}
	cli.RenderSuggestions(cmd.OutOrStdout(), candidates, appConfig.CLI.ShowScores)
	return nil
}

// cursorPrefix returns the text of line before col. A negative col means end of line.
func cursorPrefix(doc string, line, col int) (string, int, error) {
	lines := strings.Split(doc, "\n")
	if line < 0 || line >= len(lines) {
		return "", 0, fmt.Errorf("line %d out of range, document has %d lines", line, len(lines))
	}
	text := lines[line]
	if col < 0 || col > len(text) {
		col = len(text)
	}
	return text[:col], col, nil
}
