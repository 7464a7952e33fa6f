package policy

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
)

// IdentityKind discriminates the identity namespaces admin rules can
// name.
type IdentityKind string

const (
	IdentityUnixUser     IdentityKind = "unix-user"
	IdentityUnixGroup    IdentityKind = "unix-group"
	IdentityUnixNetgroup IdentityKind = "unix-netgroup"
)

// Identity is one typed identity eligible to authenticate as an
// administrator.
type Identity struct {
	Kind IdentityKind
	Name string
}

func (id Identity) String() string {
	return string(id.Kind) + ":" + id.Name
}

// RootIdentity is the superuser fallback returned when no admin rule
// contributes a usable identity: admin authentication must always have
// at least one candidate.
var RootIdentity = Identity{Kind: IdentityUnixUser, Name: "root"}

// ParseIdentity parses a "kind:name" identity string.
func ParseIdentity(s string) (Identity, error) {
	kind, name, ok := strings.Cut(s, ":")
	if !ok || name == "" {
		return Identity{}, fmt.Errorf("malformed identity %q", s)
	}
	switch k := IdentityKind(kind); k {
	case IdentityUnixUser, IdentityUnixGroup, IdentityUnixNetgroup:
		return Identity{Kind: k, Name: name}, nil
	}
	return Identity{}, fmt.Errorf("unknown identity kind %q", kind)
}

func (id Identity) MarshalJSON() ([]byte, error) {
	return json.Marshal(id.String())
}

func (id *Identity) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	v, err := ParseIdentity(s)
	if err != nil {
		return err
	}
	*id = v
	return nil
}

// AdminIdentities resolves the identities allowed to authenticate as an
// administrator for a request. Every admin rule in every file
// contributes unconditionally: no action or constraint filtering
// applies, and the normal chains play no part. Order follows file load
// order, then rule order, then groups/usernames/netgroups within a rule;
// duplicates are left for the consumer to collapse.
//
// The subject is accepted for interface parity with Evaluate and for
// future per-subject filtering; resolution today does not consult it.
func (rs *Ruleset) AdminIdentities(sub *Subject) []Identity {
	var out []Identity
	for _, f := range rs.files {
		for i := range f.Admin {
			r := &f.Admin[i]
			if r.InUnixGroups != nil {
				out = rs.collectIdentities(out, IdentityUnixGroup, r.InUnixGroups)
			}
			if r.InUserNames != nil {
				out = rs.collectIdentities(out, IdentityUnixUser, r.InUserNames)
			}
			if r.InNetGroups != nil {
				out = rs.collectIdentities(out, IdentityUnixNetgroup, r.InNetGroups)
			}
		}
	}
	if len(out) == 0 {
		return []Identity{RootIdentity}
	}
	return out
}

// collectIdentities converts one rule list into typed identities,
// substituting the wheel group for the MatchWheel token. An entry that
// fails to parse is logged and skipped, never fatal.
func (rs *Ruleset) collectIdentities(dst []Identity, kind IdentityKind, items []string) []Identity {
	for _, item := range items {
		if item == MatchWheel {
			item = rs.wheel
		}
		id, err := ParseIdentity(string(kind) + ":" + item)
		if err != nil {
			slog.Warn("identity is not valid, ignoring", "kind", string(kind), "name", item)
			continue
		}
		dst = append(dst, id)
	}
	return dst
}
