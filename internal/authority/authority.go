// Package authority hosts the policy engine: it loads rule files from a
// set of directories into an immutable snapshot, swaps the snapshot
// atomically on reload, and answers checks against whichever snapshot
// was current when the check began.
package authority

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"

	"github.com/TwigBush/keyrules-go/internal/authz"
	"github.com/TwigBush/keyrules-go/internal/policy"
)

// DefaultRulesDirs returns the standard rules directories in priority
// order: local administrator configuration wins over vendor defaults.
func DefaultRulesDirs() []string {
	return []string{
		"/etc/keyrules/rules.d",
		"/usr/share/keyrules/rules.d",
	}
}

type Config struct {
	// RulesDirs are scanned in priority order; a base name found in an
	// earlier directory shadows the same name in a later one.
	RulesDirs []string

	// WheelGroup is substituted for the %sudo% token. Empty means
	// policy.DefaultWheelGroup.
	WheelGroup string

	// Watch starts a directory watcher that reloads on rule changes.
	Watch bool

	// OnChange, if set, runs after every reload-triggered swap (not the
	// initial load).
	OnChange func()

	Logger *slog.Logger
}

type Authority struct {
	dirs     []string
	wheel    string
	log      *slog.Logger
	onChange func()

	// reloads are serialized; checks never take the lock. Readers load
	// the snapshot pointer once and use that ruleset for the whole
	// check, so a concurrent swap can never tear a decision.
	reloadMu sync.Mutex
	snap     atomic.Pointer[policy.Ruleset]

	watcher *fsnotify.Watcher
	done    chan struct{}
}

func New(cfg Config) (*Authority, error) {
	if len(cfg.RulesDirs) == 0 {
		cfg.RulesDirs = DefaultRulesDirs()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	a := &Authority{
		dirs:     cfg.RulesDirs,
		wheel:    cfg.WheelGroup,
		log:      cfg.Logger,
		onChange: cfg.OnChange,
	}

	a.reload(false)

	if cfg.Watch {
		if err := a.watch(); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// Name identifies this backend among authority implementations.
func (a *Authority) Name() string { return "keyfile" }

// Ruleset returns the current snapshot. The returned ruleset stays valid
// for as long as the caller holds it, even across reloads.
func (a *Authority) Ruleset() *policy.Ruleset { return a.snap.Load() }

// Reload recompiles the rule directories into a fresh snapshot and swaps
// it in. In-flight checks keep the snapshot they started with; the old
// one is reclaimed once the last of them finishes.
func (a *Authority) Reload() {
	a.reload(true)
}

func (a *Authority) reload(notify bool) {
	a.reloadMu.Lock()
	defer a.reloadMu.Unlock()

	rs := loadRuleset(a.dirs, a.wheel, a.log)
	a.snap.Store(rs)

	if notify && a.onChange != nil {
		a.onChange()
	}
}

// Check implements authz.Backend for the normal-rule decision path. The
// caller is responsible for refusing to build a partial subject; given a
// well-formed subject, evaluation itself cannot fail.
func (a *Authority) Check(ctx context.Context, req authz.Request) (policy.Outcome, error) {
	return a.snap.Load().Evaluate(req.Action, &req.Subject), nil
}

// Admins implements authz.Backend for admin-identity enumeration.
func (a *Authority) Admins(ctx context.Context, sub policy.Subject) ([]policy.Identity, error) {
	return a.snap.Load().AdminIdentities(&sub), nil
}

// Close stops the directory watcher, if any. Snapshots need no explicit
// teardown.
func (a *Authority) Close() error {
	if a.watcher == nil {
		return nil
	}
	close(a.done)
	return a.watcher.Close()
}
