package policy

import "testing"

func boolp(b bool) *bool { return &b }

func singleFile(rules ...Rule) *Ruleset {
	return NewRuleset([]*File{{Name: "test", Normal: rules}}, "")
}

func TestEvaluate_NoMatchReturnsUnknown(t *testing.T) {
	t.Parallel()

	rs := singleFile(
		Rule{ID: "a", Actions: []string{"org.example.other"}, Result: OutcomeAuthorized},
	)
	got := rs.Evaluate("org.example.test", &Subject{Username: "alice"})
	if got != OutcomeUnknown {
		t.Fatalf("Evaluate = %v, want unknown", got)
	}
}

func TestEvaluate_WildcardMatchesEveryAction(t *testing.T) {
	t.Parallel()

	rs := singleFile(Rule{ID: "all", Actions: []string{MatchAll}, Result: OutcomeNotAuthorized})
	for _, action := range []string{"org.example.test", "x", ""} {
		if got := rs.Evaluate(action, &Subject{}); got != OutcomeNotAuthorized {
			t.Fatalf("Evaluate(%q) = %v, want no", action, got)
		}
	}
}

func TestEvaluate_SubstringMatch(t *testing.T) {
	t.Parallel()

	rs := singleFile(Rule{ID: "sub", ActionContains: []string{"org.example"}, Result: OutcomeAuthorized})

	for action, want := range map[string]Outcome{
		"org.example.foo":     OutcomeAuthorized,
		"foo.org.example.bar": OutcomeAuthorized,
		"org.exampl":          OutcomeUnknown,
	} {
		if got := rs.Evaluate(action, &Subject{}); got != want {
			t.Fatalf("Evaluate(%q) = %v, want %v", action, got, want)
		}
	}
}

func TestEvaluate_EarlierRuleShadowsLater(t *testing.T) {
	t.Parallel()

	rs := singleFile(
		Rule{ID: "id1", ActionContains: []string{"org.example"}, InUserNames: []string{"alice"}, Result: OutcomeAuthorized},
		Rule{ID: "id2", Actions: []string{MatchAll}, Result: OutcomeNotAuthorized},
	)
	sub := &Subject{Username: "alice"}
	if got := rs.Evaluate("org.example.test", sub); got != OutcomeAuthorized {
		t.Fatalf("Evaluate = %v, want yes (id1 must shadow id2)", got)
	}
	// Anyone else falls past id1 (no inverse) onto the catch-all deny.
	if got := rs.Evaluate("org.example.test", &Subject{Username: "bob"}); got != OutcomeNotAuthorized {
		t.Fatalf("Evaluate(bob) = %v, want no", got)
	}
}

func TestEvaluate_InverseFiresOnlyWhenConfigured(t *testing.T) {
	t.Parallel()

	withInverse := singleFile(Rule{
		ID:            "r",
		Actions:       []string{"org.example.act"},
		InUnixGroups:  []string{"admins"},
		Result:        OutcomeAuthorized,
		ResultInverse: OutcomeNotAuthorized,
	})
	outsider := &Subject{Username: "mallory", Groups: []string{"users"}}
	if got := withInverse.Evaluate("org.example.act", outsider); got != OutcomeNotAuthorized {
		t.Fatalf("Evaluate = %v, want no (inverse must fire)", got)
	}

	member := &Subject{Username: "alice", Groups: []string{"staff", "admins"}}
	if got := withInverse.Evaluate("org.example.act", member); got != OutcomeAuthorized {
		t.Fatalf("Evaluate(member) = %v, want yes", got)
	}

	noInverse := singleFile(Rule{
		ID:           "r",
		Actions:      []string{"org.example.act"},
		InUnixGroups: []string{"admins"},
		Result:       OutcomeAuthorized,
	})
	if got := noInverse.Evaluate("org.example.act", outsider); got != OutcomeUnknown {
		t.Fatalf("Evaluate = %v, want unknown (no inverse, fall through)", got)
	}
}

func TestEvaluate_MatchedWithoutResultFallsThrough(t *testing.T) {
	t.Parallel()

	rs := singleFile(
		Rule{ID: "narrow", Actions: []string{"org.example.act"}},
		Rule{ID: "decide", Actions: []string{"org.example.act"}, Result: OutcomeAuthSelf},
	)
	if got := rs.Evaluate("org.example.act", &Subject{}); got != OutcomeAuthSelf {
		t.Fatalf("Evaluate = %v, want auth_self", got)
	}
}

func TestEvaluate_WheelTokenSubstitution(t *testing.T) {
	t.Parallel()

	rs := NewRuleset([]*File{{
		Name:   "wheel",
		Normal: []Rule{{ID: "r", Actions: []string{MatchAll}, InUnixGroups: []string{MatchWheel}, Result: OutcomeAuthorized, ResultInverse: OutcomeNotAuthorized}},
	}}, "wheel")

	inWheel := &Subject{Username: "alice", Groups: []string{"wheel"}}
	if got := rs.Evaluate("act", inWheel); got != OutcomeAuthorized {
		t.Fatalf("Evaluate = %v, want yes", got)
	}

	// The literal token as a group name does not count.
	literal := &Subject{Username: "bob", Groups: []string{MatchWheel}}
	if got := rs.Evaluate("act", literal); got != OutcomeNotAuthorized {
		t.Fatalf("Evaluate(literal token group) = %v, want no", got)
	}
}

func TestEvaluate_SubjectFlags(t *testing.T) {
	t.Parallel()

	rs := singleFile(Rule{
		ID:            "r",
		Actions:       []string{MatchAll},
		SubjectActive: boolp(true),
		SubjectLocal:  boolp(true),
		Result:        OutcomeAuthorized,
		ResultInverse: OutcomeAuthAdmin,
	})

	cases := []struct {
		local, active bool
		want          Outcome
	}{
		{true, true, OutcomeAuthorized},
		{true, false, OutcomeAuthAdmin},
		{false, true, OutcomeAuthAdmin},
		{false, false, OutcomeAuthAdmin},
	}
	for _, tc := range cases {
		got := rs.Evaluate("act", &Subject{Local: tc.local, Active: tc.active})
		if got != tc.want {
			t.Fatalf("local=%v active=%v: Evaluate = %v, want %v", tc.local, tc.active, got, tc.want)
		}
	}
}

func TestEvaluate_FalseFlagRequirement(t *testing.T) {
	t.Parallel()

	// SubjectLocal=false must match only remote subjects: presence of
	// the constraint, not its value, is what makes it tested.
	rs := singleFile(Rule{ID: "remote", Actions: []string{MatchAll}, SubjectLocal: boolp(false), Result: OutcomeNotAuthorized})
	if got := rs.Evaluate("act", &Subject{Local: false}); got != OutcomeNotAuthorized {
		t.Fatalf("Evaluate(remote) = %v, want no", got)
	}
	if got := rs.Evaluate("act", &Subject{Local: true}); got != OutcomeUnknown {
		t.Fatalf("Evaluate(local) = %v, want unknown", got)
	}
}

func TestEvaluate_NetgroupsNotTestedAtDecisionTime(t *testing.T) {
	t.Parallel()

	// InNetGroups only feeds admin resolution; a rule carrying it still
	// authorizes a subject that satisfies everything else.
	rs := singleFile(Rule{ID: "r", Actions: []string{MatchAll}, InNetGroups: []string{"ops"}, Result: OutcomeAuthorized})
	if got := rs.Evaluate("act", &Subject{Username: "alice"}); got != OutcomeAuthorized {
		t.Fatalf("Evaluate = %v, want yes", got)
	}
}

func TestEvaluate_RuleWithNoActionListsIsInert(t *testing.T) {
	t.Parallel()

	rs := singleFile(
		Rule{ID: "dead", InUserNames: []string{"alice"}, Result: OutcomeNotAuthorized},
		Rule{ID: "live", Actions: []string{MatchAll}, Result: OutcomeAuthorized},
	)
	if got := rs.Evaluate("act", &Subject{Username: "alice"}); got != OutcomeAuthorized {
		t.Fatalf("Evaluate = %v, want yes (dead rule must not match)", got)
	}
}

func TestEvaluate_MultiFileFallthrough(t *testing.T) {
	t.Parallel()

	f1 := &File{Name: "10-a.keyrules", Normal: []Rule{
		{ID: "narrow", Actions: []string{"org.example.other"}, Result: OutcomeNotAuthorized},
	}}
	f2 := &File{Name: "20-b.keyrules", Normal: []Rule{
		{ID: "grant", Actions: []string{"org.example.act"}, Result: OutcomeAuthorized},
	}}
	rs := NewRuleset([]*File{f1, f2}, "")
	if got := rs.Evaluate("org.example.act", &Subject{}); got != OutcomeAuthorized {
		t.Fatalf("Evaluate = %v, want yes from second file", got)
	}
}

func TestEvaluate_FirstTerminalOutcomeWinsAcrossFiles(t *testing.T) {
	t.Parallel()

	f1 := &File{Name: "a", Normal: []Rule{{ID: "deny", Actions: []string{MatchAll}, Result: OutcomeNotAuthorized}}}
	f2 := &File{Name: "b", Normal: []Rule{{ID: "allow", Actions: []string{MatchAll}, Result: OutcomeAuthorized}}}
	rs := NewRuleset([]*File{f1, f2}, "")
	if got := rs.Evaluate("anything", &Subject{}); got != OutcomeNotAuthorized {
		t.Fatalf("Evaluate = %v, want no (first file decides)", got)
	}
}

func TestEvaluate_Deterministic(t *testing.T) {
	t.Parallel()

	rs := singleFile(
		Rule{ID: "a", ActionContains: []string{"example"}, InUnixGroups: []string{"staff"}, Result: OutcomeAuthSelfKeep, ResultInverse: OutcomeAuthAdminKeep},
		Rule{ID: "b", Actions: []string{MatchAll}, Result: OutcomeNotAuthorized},
	)
	sub := &Subject{Username: "alice", Groups: []string{"staff"}, Local: true, Active: true}
	want := rs.Evaluate("org.example.act", sub)
	for i := 0; i < 100; i++ {
		if got := rs.Evaluate("org.example.act", sub); got != want {
			t.Fatalf("iteration %d: Evaluate = %v, want %v", i, got, want)
		}
	}
}

func TestEvaluate_LongChainIterative(t *testing.T) {
	t.Parallel()

	// Pathologically long chains must not blow the stack: traversal is
	// a loop, not recursion.
	rules := make([]Rule, 200000)
	for i := range rules {
		rules[i] = Rule{ID: "filler", Actions: []string{"org.example.never"}}
	}
	rules[len(rules)-1] = Rule{ID: "last", Actions: []string{MatchAll}, Result: OutcomeAuthorized}
	rs := singleFile(rules...)
	if got := rs.Evaluate("act", &Subject{}); got != OutcomeAuthorized {
		t.Fatalf("Evaluate = %v, want yes", got)
	}
}
