package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var (
	cfgPath    string
	rulesDirs  []string
	wheelGroup string
)

var rootCmd = &cobra.Command{
	Use:   "keyrules",
	Short: "Keyfile-based authorization rules engine",
}

func Execute() error { return rootCmd.Execute() }

func init() {
	home, _ := os.UserHomeDir()
	defaultCfg := filepath.Join(home, ".keyrules", "config.yaml")

	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", defaultCfg, "config file path")
	rootCmd.PersistentFlags().StringSliceVar(&rulesDirs, "rules-dir", nil, "rules directory, repeatable, priority order")
	rootCmd.PersistentFlags().StringVar(&wheelGroup, "wheel-group", "", "group substituted for the %sudo% token")

	// Wire top level commands
	rootCmd.AddCommand(cmdRun(), cmdCheck(), cmdAdmins(), cmdLint(), cmdVersion())

	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true
	rootCmd.Run = func(cmd *cobra.Command, args []string) {
		fmt.Println("Use -h for help, for example: keyrules check org.example.disk.mount")
	}
}
