package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/TwigBush/keyrules-go/internal/authority"
	"github.com/TwigBush/keyrules-go/internal/policy"
	"github.com/TwigBush/keyrules-go/internal/subject"
)

func cmdAdmins() *cobra.Command {
	c := &cobra.Command{
		Use:   "admins",
		Short: "List identities allowed to authenticate as administrator",
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

			sub, err := subject.Current(true, true)
			if err != nil {
				sub = policy.Subject{}
			}
			ids, err := auth.Admins(cmd.Context(), sub)
			if err != nil {
				return err
			}
			for _, id := range ids {
				fmt.Println(id.String())
			}
			return nil
		},
	}
	return c
}
