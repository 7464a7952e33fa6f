package cli

import (
	"errors"
	"io/fs"
	"strings"

	"github.com/spf13/viper"

	"github.com/TwigBush/keyrules-go/internal/authority"
	"github.com/TwigBush/keyrules-go/internal/policy"
)

type Config struct {
	RulesDirs  []string `yaml:"rules_dirs"  mapstructure:"rules_dirs"`
	WheelGroup string   `yaml:"wheel_group" mapstructure:"wheel_group"`
	Listen     string   `yaml:"listen"      mapstructure:"listen"`
	EnableCORS bool     `yaml:"enable_cors" mapstructure:"enable_cors"`
}

func loadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Defaults
	v.SetDefault("rules_dirs", authority.DefaultRulesDirs())
	v.SetDefault("wheel_group", policy.DefaultWheelGroup)
	v.SetDefault("listen", ":8185")
	v.SetDefault("enable_cors", false)

	// Env overrides: KEYRULES_RULES_DIRS, KEYRULES_WHEEL_GROUP, etc.
	v.SetEnvPrefix("KEYRULES")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	// Read file if it exists, otherwise return defaults without error
	if err := v.ReadInConfig(); err != nil {
		var nf viper.ConfigFileNotFoundError
		if !errors.As(err, &nf) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// effectiveConfig merges explicit flags over the config file.
func effectiveConfig() (*Config, error) {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return nil, err
	}
	if len(rulesDirs) > 0 {
		cfg.RulesDirs = rulesDirs
	}
	if wheelGroup != "" {
		cfg.WheelGroup = wheelGroup
	}
	return cfg, nil
}
