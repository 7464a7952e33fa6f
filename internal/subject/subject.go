// Package subject builds the resolved identity context a check needs.
// This is the collaborator boundary around the engine: everything here
// talks to the OS, everything past it is pure matching.
package subject

import (
	"fmt"
	"log/slog"
	"os"
	"os/user"

	"github.com/TwigBush/keyrules-go/internal/policy"
)

// Current resolves the invoking process's own identity. Failure here is
// the "context unavailable" case: the caller must not proceed to a
// check and must fall back to not-authorized.
func Current(local, active bool) (policy.Subject, error) {
	u, err := user.Current()
	if err != nil {
		return policy.Subject{}, fmt.Errorf("resolve current user: %w", err)
	}
	return build(u, local, active), nil
}

// Lookup resolves a named user's identity.
func Lookup(username string, local, active bool) (policy.Subject, error) {
	u, err := user.Lookup(username)
	if err != nil {
		return policy.Subject{}, fmt.Errorf("resolve user %q: %w", username, err)
	}
	return build(u, local, active), nil
}

func build(u *user.User, local, active bool) policy.Subject {
	return policy.Subject{
		Username:  u.Username,
		Groups:    groupNames(u),
		Local:     local,
		Active:    active,
		SessionID: os.Getenv("XDG_SESSION_ID"),
		SeatID:    os.Getenv("XDG_SEAT"),
	}
}

// groupNames resolves the user's group memberships to names. A group id
// that fails to resolve is carried as its numeric string, matching how
// the context builder degrades instead of aborting; a membership lookup
// failure yields an empty set with a warning.
func groupNames(u *user.User) []string {
	ids, err := u.GroupIds()
	if err != nil {
		slog.Warn("error looking up groups", "user", u.Username, "err", err)
		return nil
	}
	names := make([]string, 0, len(ids))
	for _, gid := range ids {
		g, err := user.LookupGroupId(gid)
		if err != nil {
			names = append(names, gid)
			continue
		}
		names = append(names, g.Name)
	}
	return names
}
