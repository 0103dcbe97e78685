/*
Package server implements the msgpack IPC an editor uses to talk to codeserve.

The server reads a stream of msgpack encoded requests from stdin and writes one msgpack
response per request to stdout. Logs go to stderr. Every request carries an id that is
echoed back, and an op selecting the operation.

A suggestion request sends the document, the 0-based cursor and the current line's text
up to the cursor:

	{"id": "r1", "op": "suggest", "doc": "def ", "line": 0, "col": 4, "lang": "python", "p": "def "}

and receives at most five ranked candidates with their scores and generator identity:

	{"id": "r1", "s": [{"t": "function_name(parameters):...", "c": 0.315, "sec": 1, "m": "A"}], "n": 1, "t": 85}

A report request scans the whole document:

	{"id": "r2", "op": "report", "doc": "...", "lang": "php"}
	{"id": "r2", "score": 0.8, "issues": [{"title": "Potential SQL Injection", "sev": "vulnerability", "line": 3}], "lines": 4, "t": 40}

"packs" lists the registered language packs and "health" answers with a status.
Failures come back as {"id", "e", "c"} with an HTTP-like code. Suggestion requests never
fail because of the engine itself; only malformed input is rejected.

Timings in responses are in microseconds.
*/
package server

// Ops understood by the server.
const (
	OpSuggest = "suggest"
	OpReport  = "report"
	OpPacks   = "packs"
	OpHealth  = "health"
)

// Request is the single envelope for every op; fields unused by an op are ignored.
type Request struct {
	ID       string `msgpack:"id"`
	Op       string `msgpack:"op"`
	Document string `msgpack:"doc,omitempty"`
	Line     int    `msgpack:"line,omitempty"`
	Column   int    `msgpack:"col,omitempty"`
	Language string `msgpack:"lang,omitempty"`
	Prefix   string `msgpack:"p,omitempty"`
}

// Suggestion is one ranked candidate on the wire.
type Suggestion struct {
	Text        string  `msgpack:"t"`
	Confidence  float64 `msgpack:"c"`
	Security    float64 `msgpack:"sec"`
	Model       string  `msgpack:"m"`
	Description string  `msgpack:"d,omitempty"`
}

// SuggestResponse answers OpSuggest.
type SuggestResponse struct {
	ID          string       `msgpack:"id"`
	Suggestions []Suggestion `msgpack:"s"`
	Count       int          `msgpack:"n"`
	TimeTaken   int64        `msgpack:"t"`
}

// Issue is one security finding on the wire.
type Issue struct {
	Title       string `msgpack:"title"`
	Description string `msgpack:"desc"`
	Severity    string `msgpack:"sev"`
	Line        int    `msgpack:"line"`
	Category    string `msgpack:"cat"`
}

// ReportResponse answers OpReport.
type ReportResponse struct {
	ID        string  `msgpack:"id"`
	Score     float64 `msgpack:"score"`
	Issues    []Issue `msgpack:"issues"`
	Lines     int     `msgpack:"lines"`
	TimeTaken int64   `msgpack:"t"`
}

// PackInfo describes one registered language pack.
type PackInfo struct {
	Language string   `msgpack:"lang"`
	Keywords []string `msgpack:"keywords"`
	Triggers []string `msgpack:"triggers"`
	Patterns []string `msgpack:"patterns"`
}

// PacksResponse answers OpPacks.
type PacksResponse struct {
	ID    string     `msgpack:"id"`
	Packs []PackInfo `msgpack:"packs"`
}

// StatusResponse is sent once at startup and in answer to OpHealth.
type StatusResponse struct {
	ID     string `msgpack:"id,omitempty"`
	Status string `msgpack:"status"`
}

// ErrorResponse holds basic error information for a failed request
type ErrorResponse struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
