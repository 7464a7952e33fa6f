package authority

import (
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/TwigBush/keyrules-go/internal/policy"
)

const rulesSuffix = ".keyrules"

// listRuleFiles scans the rules directories and returns the full paths
// to compile. Base names are deduplicated with the first (higher
// priority) directory winning, then sorted lexicographically by base
// name with full path as the tie-break. Editor droppings (".foo",
// "#foo#") and non-rule files are skipped. A directory that cannot be
// read is logged and skipped, not fatal.
func listRuleFiles(dirs []string, log *slog.Logger) []string {
	seen := make(map[string]string)
	for _, dir := range dirs {
		log.Info("loading rules from directory", "dir", dir)
		entries, err := os.ReadDir(dir)
		if err != nil {
			log.Warn("error opening rules directory", "dir", dir, "err", err)
			continue
		}
		for _, e := range entries {
			name := e.Name()
			if e.IsDir() || !strings.HasSuffix(name, rulesSuffix) {
				continue
			}
			if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "#") {
				continue
			}
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = filepath.Join(dir, name)
		}
	}

	out := make([]string, 0, len(seen))
	for _, p := range seen {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		bi, bj := filepath.Base(out[i]), filepath.Base(out[j])
		if bi != bj {
			return bi < bj
		}
		return out[i] < out[j]
	})
	return out
}

// loadRuleset compiles every discovered file into a fresh snapshot. One
// bad file never prevents loading of the others: it is logged and the
// engine operates on whatever subset compiled.
func loadRuleset(dirs []string, wheel string, log *slog.Logger) *policy.Ruleset {
	paths := listRuleFiles(dirs, log)
	files := make([]*policy.File, 0, len(paths))
	for _, p := range paths {
		src, err := os.ReadFile(p)
		if err != nil {
			log.Warn("error reading rules file", "file", p, "err", err)
			continue
		}
		f, err := policy.Compile(filepath.Base(p), src)
		if err != nil {
			log.Warn("error compiling rules", "file", p, "err", err)
			continue
		}
		files = append(files, f)
	}
	log.Info("finished loading rules", "files", len(files))
	return policy.NewRuleset(files, wheel)
}
