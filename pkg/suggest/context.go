package suggest

import "strings"

// lookback is how many lines above the cursor AnalyzeContext inspects.
const lookback = 10

// CodeContext holds the coarse flags inferred above the cursor.
type CodeContext struct {
	InFunction bool
	InClass    bool
}

// AnalyzeContext scans up to ten lines preceding the cursor line.
// Languages other than python, javascript and typescript yield the zero context.
func AnalyzeContext(r *Request) CodeContext {
	var ctx CodeContext

	for i := max(0, r.Position.Line-lookback); i < r.Position.Line; i++ {
		line := r.Line(i)

		switch r.Language {
		case "python":
			if strings.Contains(line, "def ") {
				ctx.InFunction = true
			}
			if strings.Contains(line, "class ") {
				ctx.InClass = true
			}
		case "javascript", "typescript":
			if strings.Contains(line, "function") || strings.Contains(line, "=>") {
				ctx.InFunction = true
			}
			if strings.Contains(line, "class ") {
				ctx.InClass = true
			}
		}
	}

	return ctx
}
