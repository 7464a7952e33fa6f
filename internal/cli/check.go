package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/TwigBush/keyrules-go/internal/authority"
	"github.com/TwigBush/keyrules-go/internal/authz"
	"github.com/TwigBush/keyrules-go/internal/policy"
	"github.com/TwigBush/keyrules-go/internal/subject"
)

func cmdCheck() *cobra.Command {
	var username string
	var local, active bool

	c := &cobra.Command{
		Use:   "check <action-id>",
		Short: "Evaluate an action against the compiled rules",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := effectiveConfig()
			if err != nil {
				return err
			}
			auth, err := authority.New(authority.Config{
				RulesDirs:  cfg.RulesDirs,
				WheelGroup: cfg.WheelGroup,
			})
			if err != nil {
				return err
			}
			defer auth.Close()

			var sub policy.Subject
			if username != "" {
				sub, err = subject.Lookup(username, local, active)
			} else {
				sub, err = subject.Current(local, active)
			}
			if err != nil {
				// No usable context: never authorized.
				slog.Warn("cannot resolve subject", "err", err)
				fmt.Println(policy.OutcomeNotAuthorized.String())
				return nil
			}

			out, err := auth.Check(cmd.Context(), authz.Request{Action: args[0], Subject: sub})
			if err != nil {
				return err
			}
			fmt.Println(out.String())
			return nil
		},
	}

	c.Flags().StringVarP(&username, "user", "u", "", "check as this user instead of the current one")
	c.Flags().BoolVar(&local, "local", true, "treat the subject as local")
	c.Flags().BoolVar(&active, "active", true, "treat the subject's session as active")

	return c
}
