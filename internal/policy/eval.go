package policy

import "strings"

// Evaluate walks every file's normal chain in load order and returns the
// first terminal outcome. Exhausting every file yields OutcomeUnknown,
// which the caller maps onto its own implicit default for the action.
//
// Evaluation is a pure function of the snapshot and the subject: it
// never blocks, never errors and never recurses, so two checks against
// the same Ruleset can run fully in parallel.
func (rs *Ruleset) Evaluate(action string, sub *Subject) Outcome {
	for _, f := range rs.files {
		if len(f.Normal) == 0 {
			continue
		}
		if out := evalChain(f.Normal, action, sub, rs.wheel); out.Terminal() {
			return out
		}
	}
	return OutcomeUnknown
}

// evalChain evaluates one rule chain in stored order. Earlier rules
// shadow later ones: a narrow rule with an explicit Result placed first
// happily blocks a broad catch-all below it, while a rule that matches
// the action but configures no Result falls through transparently.
func evalChain(rules []Rule, action string, sub *Subject, wheel string) Outcome {
	for i := range rules {
		r := &rules[i]

		if !r.matchesAction(action) {
			// The rule has no opinion on this action at all.
			continue
		}

		if r.satisfied(sub, wheel) {
			if r.Result.Terminal() {
				return r.Result
			}
			// Matched but declines to decide.
			continue
		}

		// Action matched, some configured constraint failed. This is a
		// distinct branch from the no-action-match case above even
		// though both continue the chain when no inverse is set.
		if r.ResultInverse.Terminal() {
			return r.ResultInverse
		}
	}
	return OutcomeUnknown
}

// matchesAction reports whether the action id matches the rule's action
// patterns: exact or MatchAll under Actions, or any ActionContains entry
// occurring as a substring. A rule with neither list configured can
// never match and is inert.
func (r *Rule) matchesAction(action string) bool {
	for _, a := range r.Actions {
		if a == action || a == MatchAll {
			return true
		}
	}
	for _, frag := range r.ActionContains {
		if strings.Contains(action, frag) {
			return true
		}
	}
	return false
}

// satisfied checks every configured constraint against the subject. An
// absent constraint is never a failure. InNetGroups is deliberately not
// tested here: the subject carries no netgroup facts, so the list only
// feeds admin identity resolution.
func (r *Rule) satisfied(sub *Subject, wheel string) bool {
	if r.SubjectActive != nil && *r.SubjectActive != sub.Active {
		return false
	}
	if r.SubjectLocal != nil && *r.SubjectLocal != sub.Local {
		return false
	}
	if r.InUnixGroups != nil && !matchesGroup(r.InUnixGroups, sub.Groups, wheel) {
		return false
	}
	if r.InUserNames != nil && !contains(r.InUserNames, sub.Username) {
		return false
	}
	return true
}

// matchesGroup tests membership of any wanted group in the subject's
// group set, substituting the wheel group for the MatchWheel token.
func matchesGroup(want, have []string, wheel string) bool {
	for _, w := range want {
		if w == MatchWheel {
			w = wheel
		}
		for _, g := range have {
			if w == g {
				return true
			}
		}
	}
	return false
}

func contains(set []string, s string) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}
