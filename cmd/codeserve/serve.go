package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/bastiangx/codeserve/pkg/server"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MessagePack IPC server on stdin/stdout",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signalContext()
	defer stop()

	srv := server.NewServer(engine, appConfig, os.Stdin, os.Stdout)
	showStartupInfo()

	err := srv.Start(ctx)
	switch {
	case errors.Is(err, context.Canceled):
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
	case err != nil:
		return fmt.Errorf("server stopped: %w", err)
	}
	log.Debug("Server exited")
	return nil
}

// showStartupInfo displays some basic info about the init process on stderr.
func showStartupInfo() {
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)

	log.Infof("%s %s", AppName, Version)
	log.Infof("Process ID: [ %d ]", os.Getpid())
	log.Infof("languages: %v", engine.Packs().Languages())
	log.Info("status: ready")

	log.SetLevel(currentLevel)
}
