// Package cmd implements the CLI commands for chunkpipe using Cobra.
package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/gaurav-prasanna/chunkpipe/config"
	"github.com/gaurav-prasanna/chunkpipe/logger"
)

// Persistent flag variables.
var (
	flagConfig   string
	flagEnvFile  string
	flagLogLevel string
	flagLogJSON  bool
)

// appConfig is loaded before any subcommand runs.
var appConfig *config.Config

// flagKeys maps CLI flag names onto config keys.
var flagKeys = map[string]string{
	"log-level":  "log.level",
	"log-json":   "log.json",
	"output_dir": "output.dir",
	"host":       "server.host",
	"port":       "server.port",
	"model":      "embeddings.model",
}

var rootCmd = &cobra.Command{
	Use:   "chunkpipe",
	Short: "chunkpipe — normalize text and split it into fixed-size word chunks",
	Long: `chunkpipe is a deterministic text preprocessing pipeline for LLM applications.
It strips punctuation, collapses whitespace, lowercases, and groups the words
into fixed-size chunks, written as "Chunk <i>: <text>" lines.

Usage:
  chunkpipe process [file|-] [flags]
  chunkpipe serve [flags]`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		color.New(color.FgRed).Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "Config file (default: ./chunkpipe.{yaml,json,toml} if present)")
	rootCmd.PersistentFlags().StringVar(&flagEnvFile, "env-file", ".env", "Env file loaded before configuration")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&flagLogJSON, "log-json", false, "Log as JSON")
}

// loadConfig resolves configuration from env file, config file, env vars
// and flags, then installs the process logger.
func loadConfig(cmd *cobra.Command, _ []string) error {
	if err := config.LoadEnvFile(flagEnvFile); err != nil {
		return err
	}

	v := viper.New()
	if err := bindFlags(v, cmd.Flags()); err != nil {
		return err
	}

	cfg, err := config.Load(v, flagConfig)
	if err != nil {
		return err
	}
	appConfig = cfg

	logger.Setup(cfg.Log.Level, cfg.Log.JSON)
	return nil
}

// bindFlags binds the flags present on fs to their config keys.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("binding flag --%s: %w", name, err)
		}
	}
	return nil
}
