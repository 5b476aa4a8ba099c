// Package cli implements the command-line interface.
package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aidanlsb/autokey/internal/config"
	"github.com/aidanlsb/autokey/internal/logging"
)

var (
	// Global flags
	configPath   string
	catalogFlag  string
	logLevelFlag string
	strictFlag   bool

	// Resolved values
	resolvedConfigPath string
	cfg                *config.Config
	logger             = zap.NewNop()
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "akey",
	Short: "autokey - build keyword decks from a keyword catalog",
	Long: `autokey assembles fixed-format keyword decks (the *KEYWORD input files used by
finite-element solvers) from a catalog of keyword and field definitions.

Decks are kept as YAML while you edit them and rendered to keyword text when
you are done.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		switch cmd.Name() {
		case "completion", "help", "version":
			return nil
		}
		if cmd.Parent() != nil && cmd.Parent().Name() == "config" && cmd.Name() != "show" {
			return nil
		}
		return setup(cmd)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

// errSilent is returned when the failure was already reported as a JSON
// envelope. Execute turns it into a non-zero exit without printing.
var errSilent = errors.New("error already reported")

// Execute runs the CLI.
func Execute() error {
	rootCmd.SilenceErrors = true
	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, errSilent) {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")
	rootCmd.PersistentFlags().StringVar(&catalogFlag, "catalog", "", "Keyword catalog file (overrides config)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&strictFlag, "strict", false, "Reject invalid catalog fields")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format (for agent/script use)")
}

// setup loads the config, applies environment and flag overrides and builds
// the logger. Flags win over the environment, which wins over the file.
func setup(cmd *cobra.Command) error {
	loaded, path, err := loadGlobalConfigWithPath()
	if err != nil {
		return setupError(ErrConfigInvalid, err, "Check the file or run 'akey config init'")
	}
	if err := loaded.ApplyEnv(os.LookupEnv); err != nil {
		return setupError(ErrConfigInvalid, err, "")
	}

	if strings.TrimSpace(catalogFlag) != "" {
		loaded.Catalog = catalogFlag
	}
	if strings.TrimSpace(logLevelFlag) != "" {
		loaded.LogLevel = logLevelFlag
	}
	if f := cmd.Flags().Lookup("strict"); f != nil && f.Changed {
		loaded.Strict = strictFlag
	}

	l, err := logging.New(logging.Options{Level: loaded.LogLevel, Style: loaded.LogStyle})
	if err != nil {
		return setupError(ErrConfigInvalid, err, fmt.Sprintf("Set %s or log_level to debug, info, warn or error", config.EnvLevel))
	}

	cfg = loaded
	resolvedConfigPath = path
	logger = l
	logger.Debug("config resolved",
		zap.String("path", path),
		zap.String("catalog", cfg.Catalog),
		zap.Bool("strict", cfg.Strict))
	return nil
}

// setupError reports a failure of the pre-run hook. Unlike handleError it
// never returns nil, so cobra does not go on to run the command.
func setupError(code string, err error, suggestion string) error {
	if jsonOutput {
		outputError(code, err.Error(), suggestion)
		return errSilent
	}
	return handleError(code, err, suggestion)
}

func getConfig() *config.Config {
	if cfg == nil {
		return &config.Config{}
	}
	return cfg
}

func loadGlobalConfigWithPath() (*config.Config, string, error) {
	resolvedPath := config.ResolveConfigPath(configPath)

	var loadedCfg *config.Config
	var err error
	if strings.TrimSpace(configPath) != "" {
		if _, statErr := os.Stat(configPath); os.IsNotExist(statErr) {
			return nil, "", fmt.Errorf("config file not found: %s", configPath)
		}
		loadedCfg, err = config.LoadFrom(configPath)
	} else {
		loadedCfg, err = config.Load()
	}
	if err != nil {
		return nil, "", err
	}
	if loadedCfg == nil {
		loadedCfg = &config.Config{}
	}

	return loadedCfg, resolvedPath, nil
}
