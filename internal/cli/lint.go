package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/TwigBush/keyrules-go/internal/policy"
)

func cmdLint() *cobra.Command {
	c := &cobra.Command{
		Use:   "lint <file-or-dir>...",
		Short: "Compile rule files and report errors without loading them",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := expandLintArgs(args)
			if err != nil {
				return err
			}
			if len(paths) == 0 {
				return fmt.Errorf("no rule files found")
			}

			failed := 0
			for _, p := range paths {
				src, err := os.ReadFile(p)
				if err != nil {
					fmt.Fprintf(cmd.OutOrStdout(), "FAIL %s: %v\n", p, err)
					failed++
					continue
				}
				if _, err := policy.Compile(filepath.Base(p), src); err != nil {
					fmt.Fprintf(cmd.OutOrStdout(), "FAIL %s: %v\n", p, err)
					failed++
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "OK   %s\n", p)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d files failed to compile", failed, len(paths))
			}
			return nil
		},
	}
	return c
}

// expandLintArgs turns each argument into rule file paths: directories
// contribute their *.keyrules entries, files pass through as-is.
func expandLintArgs(args []string) ([]string, error) {
	var out []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			out = append(out, arg)
			continue
		}
		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			if e.IsDir() || !strings.HasSuffix(e.Name(), ".keyrules") {
				continue
			}
			out = append(out, filepath.Join(arg, e.Name()))
		}
	}
	return out, nil
}
