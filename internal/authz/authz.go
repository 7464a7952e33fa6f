package authz

import (
	"context"

	"github.com/TwigBush/keyrules-go/internal/policy"
)

type Request struct {
	Action  string         // privileged action id, e.g. "org.example.disk.mount"
	Subject policy.Subject // resolved identity facts, caller-owned
}

// Backend decides authorization requests and enumerates the identities
// allowed to authenticate as an administrator. The keyfile authority is
// the primary implementation; Mock and OpenFGA exist for tests and for
// delegating to an external relationship store.
type Backend interface {
	Check(ctx context.Context, req Request) (policy.Outcome, error)
	Admins(ctx context.Context, sub policy.Subject) ([]policy.Identity, error)
}
