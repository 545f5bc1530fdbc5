package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"txevents/internal/common/fsutil"
	"txevents/internal/config"
)

// configCandidates are tried in order when --config is not given.
var configCandidates = []string{"txevents.yaml", "txevents.yml", "txevents.toml", "txevents.json"}

// newViper returns a viper instance resolving TXEVENTS_* variables, with
// dashes in keys mapped to underscores.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("TXEVENTS")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

func newRootCmd() *cobra.Command {
	v := newViper()

	root := &cobra.Command{
		Use:           "txevents",
		Short:         "Transaction event publishing and default properties resolution",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	pf := root.PersistentFlags()
	pf.String("config", "", "Config file (.yaml|.yml|.json|.toml); defaults to ./txevents.* when present")
	pf.String("log-level", "", "Log level: debug|info|warn|error|off")
	pf.Bool("log-pretty", false, "Human-readable console logs")
	pf.StringSlice("listeners", nil, "Listener providers to enable (default: all linked providers; \"none\" disables discovery)")
	pf.StringSlice("search-path", nil, "Directories searched for properties resources after the bundled ones")
	if err := v.BindPFlags(pf); err != nil {
		panic(err)
	}

	root.AddCommand(
		newServeCmd(v),
		newPropertiesCmd(v),
		newPublishCmd(v),
		newListenersCmd(v),
	)
	return root
}

// loadConfig reads the config file, then applies flag and TXEVENTS_* env
// overrides, then defaults.
func loadConfig(v *viper.Viper) (config.Config, error) {
	var cfg config.Config
	path := v.GetString("config")
	if path == "" {
		for _, c := range configCandidates {
			if fsutil.IsFile(c) {
				path = c
				break
			}
		}
	}
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return cfg, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}
	if v.IsSet("log-level") {
		cfg.LogLevel = v.GetString("log-level")
	}
	if v.IsSet("log-pretty") {
		cfg.LogPretty = v.GetBool("log-pretty")
	}
	if v.IsSet("listeners") {
		cfg.Listeners = stringList(v, "listeners")
	}
	if v.IsSet("search-path") {
		cfg.SearchPaths = stringList(v, "search-path")
	}
	if v.IsSet("addr") {
		cfg.Addr = v.GetString("addr")
	}
	cfg.ApplyDefaults()
	return cfg, nil
}

// stringList reads a list setting. Flags arrive already split; environment
// values are a single string and are split on commas here, since viper only
// splits them on whitespace. Entries are trimmed and empty ones dropped.
func stringList(v *viper.Viper, key string) []string {
	var raw []string
	if s, ok := v.Get(key).(string); ok {
		raw = strings.Split(s, ",")
	} else {
		raw = v.GetStringSlice(key)
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
