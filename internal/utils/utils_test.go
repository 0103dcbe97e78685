package utils

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLanguageFromPath(t *testing.T) {
	testCases := []struct {
		path string
		want string
	}{
		{"app/main.py", "python"},
		{"web/INDEX.HTML", "html"},
		{"src/view.tsx", "typescript"},
		{"lib/util.mjs", "javascript"},
		{"README.md", ""},
		{"Makefile", ""},
	}
	for _, tc := range testCases {
		if got := LanguageFromPath(tc.path); got != tc.want {
			t.Errorf("LanguageFromPath(%q): expected %q, got %q", tc.path, tc.want, got)
		}
	}
}

func TestFirstLineAndPercent(t *testing.T) {
	if got := FirstLine("ClassName:\n    pass"); got != "ClassName:…" {
		t.Errorf("unexpected first line %q", got)
	}
	if got := FirstLine("flex;"); got != "flex;" {
		t.Errorf("unexpected first line %q", got)
	}
	if got := Percent(0.256); got != 26 {
		t.Errorf("expected 26, got %d", got)
	}
	if got := Percent(1); got != 100 {
		t.Errorf("expected 100, got %d", got)
	}
}

func TestParseTOMLWithRecovery(t *testing.T) {
	path := filepath.Join(t.TempDir(), "c.toml")
	content := "[engine]\npacks_file = \"p.toml\"\ndisabled_languages = [\"php\", \"lua\"]\n[server]\nmax_prefix = 12\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	data, err := ParseTOMLWithRecovery(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	engine, ok := ExtractSection(data, "engine")
	if !ok {
		t.Fatal("engine section missing")
	}
	if s, _ := ExtractString(engine, "packs_file"); s != "p.toml" {
		t.Errorf("packs_file: got %q", s)
	}
	langs, ok := ExtractStrings(engine, "disabled_languages")
	if !ok || len(langs) != 2 || langs[0] != "php" {
		t.Errorf("disabled_languages: got %v", langs)
	}
	server, _ := ExtractSection(data, "server")
	if n, ok := ExtractInt64(server, "max_prefix"); !ok || n != 12 {
		t.Errorf("max_prefix: got %d", n)
	}
}

func TestExpandPaths(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.py", "web/b.js", "web/deep/c.py", "notes.txt"} {
		full := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(full, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	got, err := ExpandPaths([]string{
		filepath.Join(dir, "**", "*.py"),
		filepath.Join(dir, "a.py"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{filepath.Join(dir, "a.py"), filepath.Join(dir, "web", "deep", "c.py")}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("expected %s at %d, got %s", want[i], i, got[i])
		}
	}
}

func TestSaveTOMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.toml")
	data := map[string]any{"server": map[string]any{"max_prefix": 3}}
	if err := SaveTOMLFile(data, path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	parsed, err := ParseTOMLWithRecovery(path)
	if err != nil {
		t.Fatal(err)
	}
	server, _ := ExtractSection(parsed, "server")
	if n, _ := ExtractInt64(server, "max_prefix"); n != 3 {
		t.Errorf("expected 3, got %d", n)
	}
	if !WritableDir(filepath.Dir(path)) {
		t.Errorf("temp dir should be writable")
	}
}
