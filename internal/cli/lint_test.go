package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeRules(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

func runLint(t *testing.T, args ...string) (string, error) {
	t.Helper()
	c := cmdLint()
	c.SilenceErrors = true
	c.SilenceUsage = true
	var buf bytes.Buffer
	c.SetOut(&buf)
	c.SetErr(&buf)
	c.SetArgs(args)
	err := c.Execute()
	return buf.String(), err
}

func TestLint_GoodFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	p := writeRules(t, dir, "10-ok.keyrules", "[Policy]\nRules=r\n\n[r]\nActions=*\nResult=yes\n")

	out, err := runLint(t, p)
	if err != nil {
		t.Fatalf("lint error: %v\n%s", err, out)
	}
	if !strings.Contains(out, "OK") {
		t.Fatalf("output missing OK:\n%s", out)
	}
}

func TestLint_BadFileFails(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeRules(t, dir, "10-ok.keyrules", "[Policy]\nRules=r\n\n[r]\nActions=*\nResult=yes\n")
	writeRules(t, dir, "20-bad.keyrules", "[Policy]\nRules=ghost\n")

	out, err := runLint(t, dir)
	if err == nil {
		t.Fatalf("lint succeeded, want failure\n%s", out)
	}
	if !strings.Contains(out, "FAIL") || !strings.Contains(out, "missing rule") {
		t.Fatalf("output missing failure detail:\n%s", out)
	}
}

func TestLint_DirectoryExpansion(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeRules(t, dir, "a.keyrules", "[Policy]\nRules=r\n\n[r]\nActions=*\nResult=yes\n")
	writeRules(t, dir, "ignored.txt", "not rules")

	out, err := runLint(t, dir)
	if err != nil {
		t.Fatalf("lint error: %v\n%s", err, out)
	}
	if strings.Contains(out, "ignored.txt") {
		t.Fatalf("non-rule file linted:\n%s", out)
	}
}
