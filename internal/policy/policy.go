// Package policy compiles keyfile-based authorization rules and matches
// them against requests. Rule files are plain key/value text rather than
// scripts: every file is compiled up front into strict data so that
// decision time is pure comparison, never execution.
package policy

const (
	// MatchAll matches every action id when listed under Actions.
	MatchAll = "*"

	// MatchWheel is the placeholder token rule authors write in group
	// lists. It is swapped for the configured administrative group at
	// evaluation time, not at compile time, so the literal token never
	// collides with a real group of the same name.
	MatchWheel = "%sudo%"

	// DefaultWheelGroup is substituted for MatchWheel when no
	// administrative group is configured.
	DefaultWheelGroup = "sudo"
)

// Rule is one compiled rule section. Constraint fields are
// tagged-optional: a nil slice or nil pointer means the dimension is not
// tested at all, which is different from an empty-but-present list that
// nothing can satisfy. Result fields use OutcomeUnknown as the unset
// sentinel; the compiler rejects an explicit "unknown".
type Rule struct {
	ID string

	Actions        []string
	ActionContains []string
	InUnixGroups   []string
	InUserNames    []string
	InNetGroups    []string

	SubjectActive *bool
	SubjectLocal  *bool

	Result        Outcome
	ResultInverse Outcome
}

// File is one compiled rule file: an ordered normal chain used for
// authorization decisions and an ordered admin chain used only to
// enumerate admin authentication identities. At least one of the two
// source keys must be present or compilation fails.
type File struct {
	Name   string
	Normal []Rule
	Admin  []Rule
}

// Ruleset is an immutable snapshot of compiled files in load order. It
// is built once per (re)load and shared by any number of concurrent
// checks; a reload builds a fresh Ruleset and the old one is simply
// dropped. Nothing here mutates after construction.
type Ruleset struct {
	files []*File
	wheel string
}

// NewRuleset assembles a snapshot from already-compiled files. The files
// slice must be in load order; wheelGroup is the administrative group
// substituted for the MatchWheel token.
func NewRuleset(files []*File, wheelGroup string) *Ruleset {
	if wheelGroup == "" {
		wheelGroup = DefaultWheelGroup
	}
	return &Ruleset{files: files, wheel: wheelGroup}
}

// Len reports how many compiled files the snapshot holds.
func (rs *Ruleset) Len() int { return len(rs.files) }

// Subject is the resolved identity context for a single check. The
// caller builds it immediately before the check and owns it outright;
// the engine never retains or mutates it. SessionID and SeatID are
// carried for logging only and play no part in matching.
type Subject struct {
	Username  string
	Groups    []string
	Local     bool
	Active    bool
	SessionID string
	SeatID    string
}
