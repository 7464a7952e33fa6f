package cli

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/TwigBush/keyrules-go/internal/authority"
	"github.com/TwigBush/keyrules-go/internal/server"
)

// Starts the decision service
func cmdRun() *cobra.Command {
	var listen string
	var enableCORS bool
	var noWatch bool

	c := &cobra.Command{
		Use:   "run",
		Short: "Start the authorization decision service",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := effectiveConfig()
			if err != nil {
				return err
			}
			if listen != "" {
				cfg.Listen = listen
			}

			auth, err := authority.New(authority.Config{
				RulesDirs:  cfg.RulesDirs,
				WheelGroup: cfg.WheelGroup,
				Watch:      !noWatch,
			})
			if err != nil {
				return fmt.Errorf("start authority: %w", err)
			}
			defer auth.Close()

			h := server.BuildRouter(
				server.Deps{Backend: auth, Authority: auth},
				server.Options{EnableCORS: enableCORS || cfg.EnableCORS},
			)

			slog.Info("listening", "addr", cfg.Listen, "rules_dirs", cfg.RulesDirs, "wheel_group", cfg.WheelGroup)
			return http.ListenAndServe(cfg.Listen, h)
		},
	}

	c.Flags().StringVar(&listen, "listen", "", "listen address (overrides config)")
	c.Flags().BoolVar(&enableCORS, "cors", false, "enable permissive CORS")
	c.Flags().BoolVar(&noWatch, "no-watch", false, "do not reload on rule file changes")

	return c
}
