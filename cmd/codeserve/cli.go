package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/bastiangx/codeserve/internal/cli"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var cliLang string

func init() {
	rootCmd.AddCommand(cliCmd)
	cliCmd.Flags().StringVar(&cliLang, "lang", "", "Starting language (default from config)")
}

// CLI would be mainly used for testing and dbg purposes.
// Any new pack or rule should be tried here before an editor sees it.
var cliCmd = &cobra.Command{
	Use:   "cli",
	Short: "Interactive prompt for trying suggestions",
	RunE: func(cmd *cobra.Command, _ []string) error {
		log.SetReportTimestamp(false)
		lang := cliLang
		if lang == "" {
			lang = appConfig.CLI.Language
		}

		ctx, stop := signalContext()
		defer stop()

		h := cli.NewInputHandler(engine, lang, appConfig.CLI.ShowScores, os.Stdin, cmd.OutOrStdout())
		err := h.Start(ctx)
		if errors.Is(err, context.Canceled) {
			fmt.Fprintf(cmd.ErrOrStderr(), "Exiting...\n")
			return nil
		}
		return err
	},
}
