// Package cli handles cmd line input and suggestions for DBG and testing various features
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/bastiangx/codeserve/internal/utils"
	"github.com/bastiangx/codeserve/pkg/suggest"
	"github.com/charmbracelet/log"
)

const help = `type a line prefix and press Enter to see suggestions (Ctrl+C to exit)
  :lang <id>      switch language
  :ctx <text>     append a line of context above the cursor
  :clear          drop the context lines
  :report <file>  scan a file for security issues
  :packs          list the registered languages`

// InputHandler reads prefixes line by line and prints ranked suggestions.
// Context lines collected with :ctx form the document above the cursor line.
type InputHandler struct {
	engine     *suggest.Engine
	language   string
	showScores bool
	context    []string
	in         io.Reader
	out        io.Writer
}

// NewInputHandler handles initialization of the InputHandler with basic parameters
func NewInputHandler(engine *suggest.Engine, language string, showScores bool, in io.Reader, out io.Writer) *InputHandler {
	return &InputHandler{
		engine:     engine,
		language:   language,
		showScores: showScores,
		in:         in,
		out:        out,
	}
}

// Start begins the interface loop and returns nil at end of input.
// A canceled ctx ends the loop even while it waits for a line.
func (h *InputHandler) Start(ctx context.Context) error {
	fmt.Fprintln(h.out, "codeserve CLI")
	fmt.Fprintln(h.out, help)

	done := make(chan struct{})
	defer close(done)
	scanner := bufio.NewScanner(h.in)
	lines := make(chan string)
	go readLines(scanner, lines, done)

	for {
		fmt.Fprintf(h.out, "[%s]> ", h.language)

		var line string
		select {
		case <-ctx.Done():
			fmt.Fprintln(h.out)
			return ctx.Err()
		case l, ok := <-lines:
			if !ok {
				fmt.Fprintln(h.out)
				return scanner.Err()
			}
			line = l
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		h.handleInput(ctx, line)
	}
}

// readLines feeds scanned lines to lines and closes it at end of input.
func readLines(scanner *bufio.Scanner, lines chan<- string, done <-chan struct{}) {
	defer close(lines)
	for scanner.Scan() {
		select {
		case lines <- scanner.Text():
		case <-done:
			return
		}
	}
}

// handleInput runs a command or treats the line as the text before the cursor.
func (h *InputHandler) handleInput(ctx context.Context, line string) {
	if strings.HasPrefix(line, ":") {
		h.handleCommand(ctx, line)
		return
	}

	doc := strings.Join(append(append([]string(nil), h.context...), line), "\n")
	pos := suggest.Position{Line: len(h.context), Column: len(line)}

	start := time.Now()
	log.Debug("Processing request", "lang", h.language, "prefix", line)
	candidates := h.engine.GenerateSuggestions(ctx, doc, pos, h.language, line)
	log.Debugf("Took [ %v ] for prefix '%s'", time.Since(start), line)

	if len(candidates) == 0 {
		fmt.Fprintf(h.out, "No suggestions for %q\n", line)
		return
	}
	fmt.Fprintf(h.out, "Found %d suggestions for %q:\n", len(candidates), line)
	RenderSuggestions(h.out, candidates, h.showScores)
}

func (h *InputHandler) handleCommand(ctx context.Context, line string) {
	cmd, arg, _ := strings.Cut(strings.TrimPrefix(line, ":"), " ")

	switch cmd {
	case "lang":
		if arg == "" {
			fmt.Fprintln(h.out, "usage: :lang <id>")
			return
		}
		h.language = strings.TrimSpace(arg)
		if _, ok := h.engine.Packs().Get(h.language); !ok {
			fmt.Fprintf(h.out, "note: no language pack for %s, only context rules apply\n", h.language)
		}
	case "ctx":
		h.context = append(h.context, arg)
		fmt.Fprintf(h.out, "%d context lines\n", len(h.context))
	case "clear":
		h.context = nil
	case "packs":
		fmt.Fprintln(h.out, strings.Join(h.engine.Packs().Languages(), " "))
	case "report":
		h.report(ctx, strings.TrimSpace(arg))
	default:
		fmt.Fprintf(h.out, "unknown command :%s\n%s\n", cmd, help)
	}
}

func (h *InputHandler) report(ctx context.Context, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Errorf("Reading %s: %v", path, err)
		return
	}
	lang := utils.LanguageFromPath(path)
	if lang == "" {
		lang = h.language
	}
	r, err := h.engine.GenerateSecurityReport(ctx, string(data), lang)
	if err != nil {
		log.Errorf("Report for %s failed: %v", path, err)
		return
	}
	RenderReport(h.out, path, r)
}
