package server

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/bastiangx/codeserve/internal/logger"
	"github.com/bastiangx/codeserve/pkg/config"
	"github.com/bastiangx/codeserve/pkg/security"
	"github.com/bastiangx/codeserve/pkg/suggest"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

var ErrUnknownOp = errors.New("unknown op")

// Server handles the msgpack IPC for suggestions and security reports
type Server struct {
	engine *suggest.Engine
	config *config.Config
	dec    *msgpack.Decoder
	out    *bufio.Writer
	enc    *msgpack.Encoder
	log    *log.Logger

	requestCount int
}

// NewServer creates a server reading requests from r and writing responses to w.
// main wires r and w to stdin and stdout.
func NewServer(engine *suggest.Engine, cfg *config.Config, r io.Reader, w io.Writer) *Server {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	out := bufio.NewWriter(w)
	return &Server{
		engine: engine,
		config: cfg,
		dec:    msgpack.NewDecoder(bufio.NewReader(r)),
		out:    out,
		enc:    msgpack.NewEncoder(out),
		log:    logger.New("ipc"),
	}
}

// Start announces readiness and serves requests until EOF or ctx is done.
// A canceled ctx stops the server even while it waits for the next request.
func (s *Server) Start(ctx context.Context) error {
	s.log.Debug("Starting server")

	if err := s.send(StatusResponse{Status: "ready"}); err != nil {
		return err
	}

	done := make(chan struct{})
	defer close(done)
	reqs := make(chan Request)
	errc := make(chan error, 1)
	go s.readRequests(reqs, errc, done)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			s.log.Debugf("Stopping after %d requests: %v", s.requestCount, ctx.Err())
			return ctx.Err()
		case err := <-errc:
			if errors.Is(err, io.EOF) {
				s.log.Debugf("Client closed the stream after %d requests", s.requestCount)
				return nil
			}
			// a broken msgpack stream cannot be resynchronized
			return fmt.Errorf("decode request: %w", err)
		case req := <-reqs:
			s.requestCount++
			if err := s.handleRequest(ctx, req); err != nil {
				return err
			}
		}
	}
}

// readRequests decodes requests until the stream fails or done is closed.
// The decode error, EOF included, is sent on errc.
func (s *Server) readRequests(reqs chan<- Request, errc chan<- error, done <-chan struct{}) {
	for {
		var req Request
		if err := s.dec.Decode(&req); err != nil {
			errc <- err
			return
		}
		select {
		case reqs <- req:
		case <-done:
			return
		}
	}
}

// handleRequest dispatches on op. Only write failures are returned.
func (s *Server) handleRequest(ctx context.Context, req Request) error {
	switch req.Op {
	case OpSuggest:
		return s.handleSuggest(ctx, req)
	case OpReport:
		return s.handleReport(ctx, req)
	case OpPacks:
		return s.handlePacks(req)
	case OpHealth:
		return s.send(StatusResponse{ID: req.ID, Status: "ok"})
	default:
		s.log.Debug("Rejected request", "id", req.ID, "op", req.Op)
		return s.sendError(req.ID, fmt.Sprintf("%v: %q", ErrUnknownOp, req.Op), 400)
	}
}

func (s *Server) handleSuggest(ctx context.Context, req Request) error {
	limits := s.config.Server

	switch {
	case req.Line < 0 || req.Column < 0:
		return s.sendError(req.ID, "Cursor position must not be negative", 400)
	case len(req.Prefix) > limits.MaxPrefix:
		return s.sendError(req.ID, fmt.Sprintf("Prefix exceeds maximum length of %d bytes", limits.MaxPrefix), 400)
	case len(req.Document) > limits.MaxDocument:
		return s.sendError(req.ID, fmt.Sprintf("Document exceeds maximum size of %d bytes", limits.MaxDocument), 413)
	}

	start := time.Now()
	pos := suggest.Position{Line: req.Line, Column: req.Column}
	candidates := s.engine.GenerateSuggestions(ctx, req.Document, pos, req.Language, req.Prefix)
	elapsed := time.Since(start)

	items := make([]Suggestion, len(candidates))
	for i, c := range candidates {
		items[i] = Suggestion{
			Text:        c.Text,
			Confidence:  c.Confidence,
			Security:    c.Security,
			Model:       c.Model.String(),
			Description: c.Description,
		}
	}

	return s.send(SuggestResponse{
		ID:          req.ID,
		Suggestions: items,
		Count:       len(items),
		TimeTaken:   elapsed.Microseconds(),
	})
}

func (s *Server) handleReport(ctx context.Context, req Request) error {
	if !s.config.Server.EnableReport {
		return s.sendError(req.ID, "Security reports are disabled", 403)
	}
	if len(req.Document) > s.config.Server.MaxDocument {
		return s.sendError(req.ID, fmt.Sprintf("Document exceeds maximum size of %d bytes", s.config.Server.MaxDocument), 413)
	}

	start := time.Now()
	report, err := s.engine.GenerateSecurityReport(ctx, req.Document, req.Language)
	if err != nil {
		s.log.Errorf("Report %s failed: %v", req.ID, err)
		return s.sendError(req.ID, err.Error(), 500)
	}

	return s.send(ReportResponse{
		ID:        req.ID,
		Score:     report.Score,
		Issues:    toWireIssues(report.Issues),
		Lines:     report.Lines,
		TimeTaken: time.Since(start).Microseconds(),
	})
}

func toWireIssues(issues []security.Issue) []Issue {
	out := make([]Issue, len(issues))
	for i, is := range issues {
		out[i] = Issue{
			Title:       is.Title,
			Description: is.Description,
			Severity:    is.Severity.String(),
			Line:        is.Line,
			Category:    is.Category.String(),
		}
	}
	return out
}

func (s *Server) handlePacks(req Request) error {
	packs := s.engine.Packs()
	resp := PacksResponse{ID: req.ID}
	for _, lang := range packs.Languages() {
		p, _ := packs.Get(lang)
		resp.Packs = append(resp.Packs, PackInfo{
			Language: lang,
			Keywords: p.Keywords,
			Triggers: p.Triggers(),
			Patterns: p.PatternLabels(),
		})
	}
	return s.send(resp)
}

// send encodes one response and flushes it so the editor sees it immediately.
func (s *Server) send(response any) error {
	if err := s.enc.Encode(response); err != nil {
		return fmt.Errorf("encode response: %w", err)
	}
	return s.out.Flush()
}

func (s *Server) sendError(id, message string, code int) error {
	return s.send(ErrorResponse{ID: id, Error: message, Code: code})
}
