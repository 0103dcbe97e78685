package utils

import (
	"path/filepath"
	"strings"
)

var extLanguages = map[string]string{
	".py":   "python",
	".pyw":  "python",
	".js":   "javascript",
	".mjs":  "javascript",
	".cjs":  "javascript",
	".jsx":  "javascript",
	".ts":   "typescript",
	".tsx":  "typescript",
	".html": "html",
	".htm":  "html",
	".css":  "css",
	".php":  "php",
	".json": "json",
	".lua":  "lua",
}

// LanguageFromPath maps a file extension to the editor language id, or "" when unknown.
func LanguageFromPath(path string) string {
	return extLanguages[strings.ToLower(filepath.Ext(path))]
}

// FirstLine returns s up to its first newline, marking anything dropped with an ellipsis.
func FirstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i] + "…"
	}
	return s
}

// Percent renders a [0,1] score as a whole percentage.
func Percent(v float64) int {
	return int(v*100 + 0.5)
}
