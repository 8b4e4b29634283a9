package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	version = "0.1.0"

	configFile string
	envFile    string

	cfg *Config
	log zerolog.Logger

	rootCmd = &cobra.Command{
		Use:   "railz",
		Short: "Run the railz order pipelines",
		Long: `railz drives the sample order pipelines built with the railz engine.

It seeds a record store with a small car catalogue, executes orders against
it and runs the self-checks that prove the pipelines behave.`,
		Version:           version,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
	}
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Disable default completion command
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "path to a YAML config file")
	flags.StringVar(&envFile, "env-file", "", "path to a .env file")
	flags.String("log-level", "info", "log level: trace, debug, info, warn or error")
	flags.String("store", "memory", "record store: memory or redis")
	flags.String("redis-addr", "localhost:6379", "redis address when --store=redis")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(checkCmd)
}

// flagKeys maps persistent flags onto config keys.
var flagKeys = map[string]string{
	"log-level":  "log.level",
	"store":      "store.driver",
	"redis-addr": "store.redis.addr",
}

func setup(cmd *cobra.Command, _ []string) error {
	v := viper.New()
	for flag, key := range flagKeys {
		if err := v.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			return err
		}
	}

	c, err := LoadConfig(v, configFile, envFile)
	if err != nil {
		return err
	}
	cfg = c
	log = newLogger(c.Log, os.Stderr)
	log.Debug().
		Str("store", c.Store.Driver).
		Float64("foreign_fee", c.Pricing.ForeignFee).
		Float64("rebate", c.Pricing.Rebate).
		Msg("configuration loaded")
	return nil
}
