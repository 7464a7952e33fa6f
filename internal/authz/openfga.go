package authz

import (
	"context"
	"fmt"

	fga "github.com/openfga/go-sdk/client"

	"github.com/TwigBush/keyrules-go/internal/policy"
)

// OpenFGA delegates checks to an external OpenFGA store, modelling
// privileged actions as objects with an "execute" relation. It only
// distinguishes allow/deny, so outcomes map onto yes/no; the graded
// auth_* results are a keyfile-authority concept.
type OpenFGA struct {
	c       *fga.OpenFgaClient
	modelID string
}

type OpenFGAConfig struct {
	APIURL   string
	StoreID  string
	APIToken string // optional
	ModelID  string // optional but recommended in prod
}

func NewOpenFGA(cfg OpenFGAConfig) (*OpenFGA, error) {
	conf := &fga.ClientConfiguration{
		ApiUrl:  cfg.APIURL,
		StoreId: cfg.StoreID,
	}

	// Pin a specific auth model if provided
	if cfg.ModelID != "" {
		conf.AuthorizationModelId = cfg.ModelID
	}

	client, err := fga.NewSdkClient(conf)
	if err != nil {
		return nil, fmt.Errorf("openfga_client_init: %w", err)
	}

	return &OpenFGA{c: client, modelID: cfg.ModelID}, nil
}

func (o *OpenFGA) Check(ctx context.Context, req Request) (policy.Outcome, error) {
	checkReq := fga.ClientCheckRequest{
		User:     "user:" + req.Subject.Username,
		Relation: "execute",
		Object:   "action:" + req.Action,
	}

	resp, err := o.c.Check(ctx).Body(checkReq).Execute()
	if err != nil {
		return policy.OutcomeUnknown, fmt.Errorf("fga_check_error: %w", err)
	}

	if resp.Allowed != nil && *resp.Allowed {
		return policy.OutcomeAuthorized, nil
	}
	return policy.OutcomeNotAuthorized, nil
}

// Admins has no tuple representation here; behave like an empty admin
// chain and fall back to the superuser.
func (o *OpenFGA) Admins(ctx context.Context, sub policy.Subject) ([]policy.Identity, error) {
	return []policy.Identity{policy.RootIdentity}, nil
}
