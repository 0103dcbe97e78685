package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/bastiangx/codeserve/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command against a throwaway config file.
func execute(t *testing.T, args ...string) string {
	t.Helper()
	cfgPath := filepath.Join(t.TempDir(), "config.toml")
	cfg := config.DefaultConfig()
	cfg.CLI.ShowScores = false
	require.NoError(t, config.SaveConfig(cfg, cfgPath))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--config", cfgPath}, args...))
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestCursorPrefix(t *testing.T) {
	doc := "import os\ndef main():\n    return"

	prefix, col, err := cursorPrefix(doc, 2, -1)
	require.NoError(t, err)
	assert.Equal(t, "    return", prefix)
	assert.Equal(t, 10, col)

	prefix, col, err = cursorPrefix(doc, 1, 4)
	require.NoError(t, err)
	assert.Equal(t, "def ", prefix)
	assert.Equal(t, 4, col)

	_, _, err = cursorPrefix(doc, 3, 0)
	assert.Error(t, err)
}

func TestBuildRegistry(t *testing.T) {
	packs := filepath.Join(t.TempDir(), "packs.toml")
	require.NoError(t, os.WriteFile(packs, []byte(`
[[pack]]
language = "lua"
keywords = ["local", "function", "end"]
`), 0o644))

	r, err := buildRegistry(config.EngineConfig{PacksFile: packs, DisabledLanguages: []string{"php"}})
	require.NoError(t, err)

	_, ok := r.Get("lua")
	assert.True(t, ok)
	_, ok = r.Get("php")
	assert.False(t, ok)
	_, ok = r.Get("python")
	assert.True(t, ok)

	_, err = buildRegistry(config.EngineConfig{PacksFile: filepath.Join(t.TempDir(), "missing.toml")})
	assert.Error(t, err)
}

func TestSuggestCommand(t *testing.T) {
	doc := filepath.Join(t.TempDir(), "app.py")
	require.NoError(t, os.WriteFile(doc, []byte("class Repo:\n    def find(self):\n        return\n"), 0o644))

	out := execute(t, "suggest", "--file", doc, "--line", "2")
	assert.Contains(t, out, `" result"`)
}

func TestReportCommand(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "clean.py"), []byte("print('hi')\n"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "web"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "web", "view.js"), []byte("el.innerHTML = x\n"), 0o644))

	out := execute(t, "report", filepath.Join(dir, "**", "*.{py,js}"))
	assert.Contains(t, out, "Potential XSS Vulnerability")
	assert.Contains(t, out, "no issues found")
	assert.Contains(t, out, "1 of 2 files flagged")
}

func TestConfigCommand(t *testing.T) {
	out := execute(t, "config")
	assert.Contains(t, out, "[server]")
	assert.Contains(t, out, "max_prefix = 512")
	assert.Contains(t, out, "show_scores = false")
}

func TestVersionCommand(t *testing.T) {
	out := execute(t, "version")
	assert.Contains(t, out, "[ CodeServe ]")
	assert.Contains(t, out, Version)
	assert.Contains(t, out, gh)
}
