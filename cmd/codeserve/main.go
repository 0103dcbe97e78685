// Copyright 2025 The CodeServe Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the code suggestion server and its CLI [DBG] commands.

Note: This is a BETA release. APIs and functionality may rapidly change.

CodeServe proposes short code continuations for the text before the cursor.
Four generators run side by side over builtin language packs: trigger
templates, adjacent-line hints, context rules and keyword completion. Every
candidate is scored by a regex security catalogue and the five best by
composite score are returned. The same catalogue produces line-level
security reports for whole documents.

# Usage

Start the IPC server (the default command):

	codeserve
	codeserve serve --packs ~/.config/codeserve/packs.toml -d

Ask for suggestions at a position in a file:

	codeserve suggest --file app.py --line 12 --col 8

Scan files for injection patterns. Arguments may also be doublestar globs,
see codeserve report --help:

	codeserve report handler.php views.js

Run the interactive prompt:

	codeserve cli --lang javascript

# Configuration

Runtime configuration lives in a TOML file created with defaults on first run:

	[server]
	max_prefix = 512
	max_document = 1048576
	enable_report = true

	[engine]
	packs_file = ""
	disabled_languages = []

	[cli]
	language = "python"
	show_scores = true

	[log]
	level = "warn"

# IPC Protocol

The server reads MessagePack requests from stdin and writes one response per
request to stdout. Logs always go to stderr.

	{"id": "r1", "op": "suggest", "doc": "def ", "line": 0, "col": 4, "lang": "python", "p": "def "}
	{"id": "r1", "s": [{"t": "function_name(...", "c": 0.31, "sec": 1, "m": "A", "d": "..."}], "n": 1, "t": 210}

See package server for the full set of operations.
*/
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bastiangx/codeserve/internal/logger"
	"github.com/bastiangx/codeserve/pkg/config"
	"github.com/bastiangx/codeserve/pkg/langpack"
	"github.com/bastiangx/codeserve/pkg/suggest"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

const (
	Version = "0.1.0-beta"
	AppName = "codeserve"
	gh      = "https://github.com/bastiangx/codeserve"
)

var (
	configPath string
	packsFile  string
	debugMode  bool

	// set by the root pre-run hook
	appConfig  *config.Config
	activePath string
	engine     *suggest.Engine
)

var rootCmd = &cobra.Command{
	Use:   AppName,
	Short: "Serves ranked code suggestions and security reports",
	Long: `CodeServe proposes short code continuations for editors over a MessagePack
IPC stream, ranking candidates by confidence and a regex security score.
Without a subcommand it starts the IPC server.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	RunE:              runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a config file (default: user config dir)")
	rootCmd.PersistentFlags().StringVar(&packsFile, "packs", "", "TOML file with extra language packs")
	rootCmd.PersistentFlags().BoolVarP(&debugMode, "debug", "d", false, "Toggle debug mode")
}

// setup loads config, configures logging and builds the engine shared by every command.
func setup(cmd *cobra.Command, _ []string) error {
	if cmd.Name() == "version" {
		return nil
	}
	cfg, path, err := config.LoadConfigWithPriority(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger.Setup(debugMode, cfg.Log.Level)
	if path != "" {
		log.Debugf("Using config file: (%s)", path)
	}

	if packsFile != "" {
		cfg.Engine.PacksFile = packsFile
	}
	packs, err := buildRegistry(cfg.Engine)
	if err != nil {
		return err
	}

	appConfig = cfg
	activePath = path
	engine = suggest.NewEngine(suggest.WithRegistry(packs))
	log.Debug("Engine ready", "languages", packs.Languages())
	return nil
}

// buildRegistry overlays the configured packs file on the builtin packs
// and removes disabled languages.
func buildRegistry(cfg config.EngineConfig) (*langpack.Registry, error) {
	packs := langpack.Default()
	if cfg.PacksFile != "" {
		extra, err := langpack.LoadFile(cfg.PacksFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load language packs: %w", err)
		}
		packs = packs.With(extra...)
	}
	return packs.Without(cfg.DisabledLanguages...), nil
}

// signalContext is canceled on interrupt or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
