package policy

import (
	"errors"
	"fmt"
)

// ErrEmptyFile marks a source that defines neither ordinary nor admin
// rules. Such a file contributes nothing and is rejected outright
// instead of being carried as an empty entry.
var ErrEmptyFile = errors.New("file defines no rules")

// CompileError wraps any failure to compile a single rule file. Errors
// are resolved at file granularity: the caller logs the error, skips the
// file and keeps loading the rest.
type CompileError struct {
	File string
	Err  error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("compile %s: %v", e.File, e.Err)
}

func (e *CompileError) Unwrap() error { return e.Err }

// MissingRuleError reports a rule name listed under Rules= or
// AdminRules= that has no matching section. The whole file fails.
type MissingRuleError struct {
	Rule string
}

func (e *MissingRuleError) Error() string {
	return fmt.Sprintf("missing rule %q", e.Rule)
}

// FieldError reports a rule field whose value does not parse, including
// a Result/ResultInverse outside the outcome vocabulary. The whole file
// fails.
type FieldError struct {
	Rule  string
	Key   string
	Value string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("rule %q: invalid %s: %q", e.Rule, e.Key, e.Value)
}
