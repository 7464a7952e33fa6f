package cli

import (
	"bytes"
	"strings"
	"testing"
)

func TestRoot_Subcommands(t *testing.T) {
	seen := map[string]bool{}
	for _, sc := range rootCmd.Commands() {
		seen[sc.Name()] = true
	}
	for _, want := range []string{"run", "check", "admins", "lint", "version"} {
		if !seen[want] {
			t.Fatalf("missing %q subcommand; got: %v", want, names(seen))
		}
	}
}

func TestCmdCheck_Metadata(t *testing.T) {
	t.Parallel()

	c := cmdCheck()
	if !strings.HasPrefix(c.Use, "check") {
		t.Fatalf("Use = %q, want check <action-id>", c.Use)
	}
	if c.Flags().Lookup("user") == nil {
		t.Fatalf("check is missing the --user flag")
	}
}

func TestCmdLint_HelpFlag(t *testing.T) {
	t.Parallel()

	c := cmdLint()
	c.SilenceErrors = true
	c.SilenceUsage = true

	var buf bytes.Buffer
	c.SetOut(&buf)
	c.SetErr(&buf)
	c.SetArgs([]string{"-h"})

	if err := c.Execute(); err != nil {
		t.Fatalf("Execute() help error: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Compile rule files") || !strings.Contains(out, "Usage") {
		t.Fatalf("help output missing expected text; got:\n%s", out)
	}
}

// helper to show seen subcommand names in failure messages
func names(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
