package authz

import (
	"context"

	"github.com/TwigBush/keyrules-go/internal/policy"
)

type Mock struct {
	Outcome policy.Outcome
}

func (m *Mock) Check(ctx context.Context, req Request) (policy.Outcome, error) {
	return m.Outcome, nil
}

func (m *Mock) Admins(ctx context.Context, sub policy.Subject) ([]policy.Identity, error) {
	return []policy.Identity{policy.RootIdentity}, nil
}
