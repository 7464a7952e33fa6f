package policy

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Outcome is the result of evaluating a rule chain against one request.
// OutcomeUnknown means "no opinion": traversal continues past it, and a
// whole evaluation that ends Unknown defers to the caller's own default
// policy. Every other value halts traversal.
type Outcome int

const (
	OutcomeUnknown Outcome = iota
	OutcomeNotAuthorized
	OutcomeAuthSelf
	OutcomeAuthSelfKeep
	OutcomeAuthAdmin
	OutcomeAuthAdminKeep
	OutcomeAuthorized
)

var outcomeNames = map[Outcome]string{
	OutcomeUnknown:       "unknown",
	OutcomeNotAuthorized: "no",
	OutcomeAuthSelf:      "auth_self",
	OutcomeAuthSelfKeep:  "auth_self_keep",
	OutcomeAuthAdmin:     "auth_admin",
	OutcomeAuthAdminKeep: "auth_admin_keep",
	OutcomeAuthorized:    "yes",
}

var outcomeValues = func() map[string]Outcome {
	m := make(map[string]Outcome, len(outcomeNames))
	for o, name := range outcomeNames {
		m[name] = o
	}
	return m
}()

// ParseOutcome matches the fixed outcome vocabulary case-insensitively,
// ignoring surrounding whitespace. Note that "unknown" parses fine here;
// the compiler separately rejects it as a Result/ResultInverse value.
func ParseOutcome(s string) (Outcome, bool) {
	o, ok := outcomeValues[strings.ToLower(strings.TrimSpace(s))]
	return o, ok
}

func (o Outcome) String() string {
	if name, ok := outcomeNames[o]; ok {
		return name
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}

// Terminal reports whether the outcome halts chain traversal.
func (o Outcome) Terminal() bool { return o != OutcomeUnknown }

func (o Outcome) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.String())
}

func (o *Outcome) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	v, ok := ParseOutcome(s)
	if !ok {
		return fmt.Errorf("unknown outcome %q", s)
	}
	*o = v
	return nil
}
