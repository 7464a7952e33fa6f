package di

import (
	"os"
	"path/filepath"

	"github.com/TwigBush/keyrules-go/internal/authority"
	"github.com/TwigBush/keyrules-go/internal/authz"
	"github.com/TwigBush/keyrules-go/internal/policy"
)

// ProvideBackend selects the authorization backend from the
// environment. The keyfile authority is the default; "fga" delegates to
// an OpenFGA store, "mock" always allows (dev only).
func ProvideBackend() authz.Backend {
	switch os.Getenv("KEYRULES_BACKEND") {
	case "fga":
		cfg := authz.OpenFGAConfig{
			APIURL:   getenv("FGA_API_URL", "http://localhost:8080"),
			StoreID:  os.Getenv("FGA_STORE_ID"),
			APIToken: os.Getenv("FGA_API_TOKEN"),
			ModelID:  os.Getenv("FGA_MODEL_ID"),
		}
		a, err := authz.NewOpenFGA(cfg)
		if err != nil {
			panic(err)
		}
		return a
	case "mock":
		return &authz.Mock{Outcome: policy.OutcomeAuthorized}
	default:
		a, err := authority.New(authority.Config{
			RulesDirs:  RulesDirs(),
			WheelGroup: os.Getenv("KEYRULES_WHEEL_GROUP"),
			Watch:      true,
		})
		if err != nil {
			panic(err)
		}
		return a
	}
}

// RulesDirs reads the rule directory list from the environment, falling
// back to the standard locations.
func RulesDirs() []string {
	if v := os.Getenv("KEYRULES_RULES_DIRS"); v != "" {
		return filepath.SplitList(v)
	}
	return authority.DefaultRulesDirs()
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
