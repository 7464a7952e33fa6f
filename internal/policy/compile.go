package policy

import (
	"strings"

	"gopkg.in/ini.v1"
)

// Rule files use the GKeyFile-style layout: a [Policy] section whose
// Rules= and AdminRules= keys list rule section names in evaluation
// order, then one section per rule.
const policySection = "Policy"

// Per-rule keys. Each is optional and independently settable.
const (
	keyActions        = "Actions"
	keyActionContains = "ActionContains"
	keyInUnixGroups   = "InUnixGroups"
	keyInUserNames    = "InUserNames"
	keyInNetGroups    = "InNetGroups"
	keyResult         = "Result"
	keyResultInverse  = "ResultInverse"
	keySubjectActive  = "SubjectActive"
	keySubjectLocal   = "SubjectLocal"
)

// Compile parses one rule file source into a File, all-or-nothing. Any
// field-level error rejects the whole file; no partially built File is
// ever returned. name is used only for error reporting.
func Compile(name string, src []byte) (*File, error) {
	// Inline comment handling must stay off: list values use ';' as
	// their separator, which ini would otherwise treat as a comment.
	kf, err := ini.LoadSources(ini.LoadOptions{IgnoreInlineComment: true}, src)
	if err != nil {
		return nil, &CompileError{File: name, Err: err}
	}

	sec, err := kf.GetSection(policySection)
	if err != nil {
		return nil, &CompileError{File: name, Err: ErrEmptyFile}
	}

	f := &File{Name: name}
	hasRules := false

	if sec.HasKey(keyRulesNormal) {
		rules, err := loadChain(kf, sec.Key(keyRulesNormal).Value())
		if err != nil {
			return nil, &CompileError{File: name, Err: err}
		}
		f.Normal = rules
		hasRules = true
	}

	if sec.HasKey(keyRulesAdmin) {
		rules, err := loadChain(kf, sec.Key(keyRulesAdmin).Value())
		if err != nil {
			return nil, &CompileError{File: name, Err: err}
		}
		f.Admin = rules
		hasRules = true
	}

	// No sense in keeping a file that contributes nothing. A key that
	// is present but lists zero sections still counts as present.
	if !hasRules {
		return nil, &CompileError{File: name, Err: ErrEmptyFile}
	}

	return f, nil
}

const (
	keyRulesNormal = "Rules"
	keyRulesAdmin  = "AdminRules"
)

// loadChain compiles the rule sections named by a Rules=/AdminRules=
// value, in listed order. An empty list yields a nil chain.
func loadChain(kf *ini.File, names string) ([]Rule, error) {
	ids := splitList(names)
	if len(ids) == 0 {
		return nil, nil
	}
	rules := make([]Rule, 0, len(ids))
	for _, id := range ids {
		r, err := loadRule(kf, id)
		if err != nil {
			return nil, err
		}
		rules = append(rules, *r)
	}
	return rules, nil
}

func loadRule(kf *ini.File, id string) (*Rule, error) {
	sec, err := kf.GetSection(id)
	if err != nil {
		return nil, &MissingRuleError{Rule: id}
	}

	r := &Rule{ID: id}

	if sec.HasKey(keyActions) {
		r.Actions = splitList(sec.Key(keyActions).Value())
	}
	if sec.HasKey(keyActionContains) {
		r.ActionContains = splitList(sec.Key(keyActionContains).Value())
	}
	if sec.HasKey(keyInUnixGroups) {
		r.InUnixGroups = splitList(sec.Key(keyInUnixGroups).Value())
	}
	if sec.HasKey(keyInUserNames) {
		r.InUserNames = splitList(sec.Key(keyInUserNames).Value())
	}
	if sec.HasKey(keyInNetGroups) {
		r.InNetGroups = splitList(sec.Key(keyInNetGroups).Value())
	}

	if sec.HasKey(keyResult) {
		raw := sec.Key(keyResult).Value()
		out, ok := ParseOutcome(raw)
		if !ok || out == OutcomeUnknown {
			return nil, &FieldError{Rule: id, Key: keyResult, Value: raw}
		}
		r.Result = out
	}
	if sec.HasKey(keyResultInverse) {
		raw := sec.Key(keyResultInverse).Value()
		out, ok := ParseOutcome(raw)
		if !ok || out == OutcomeUnknown {
			return nil, &FieldError{Rule: id, Key: keyResultInverse, Value: raw}
		}
		r.ResultInverse = out
	}

	if sec.HasKey(keySubjectActive) {
		b, err := sec.Key(keySubjectActive).Bool()
		if err != nil {
			return nil, &FieldError{Rule: id, Key: keySubjectActive, Value: sec.Key(keySubjectActive).Value()}
		}
		r.SubjectActive = &b
	}
	if sec.HasKey(keySubjectLocal) {
		b, err := sec.Key(keySubjectLocal).Bool()
		if err != nil {
			return nil, &FieldError{Rule: id, Key: keySubjectLocal, Value: sec.Key(keySubjectLocal).Value()}
		}
		r.SubjectLocal = &b
	}

	return r, nil
}

// splitList splits a ';'-separated keyfile list, trimming whitespace and
// dropping empty segments (a trailing separator is legal). The result is
// never nil: callers only reach this when the key is present, and a
// present-but-empty list must stay distinguishable from an absent one.
func splitList(v string) []string {
	parts := strings.Split(v, ";")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}
