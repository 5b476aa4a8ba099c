package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/autokey/internal/config"
	"github.com/aidanlsb/autokey/internal/logging"
	"github.com/aidanlsb/autokey/internal/ui"
)

var (
	configSetCatalog          string
	configSetIndex            string
	configSetDefaultPrefix    string
	configSetStrict           bool
	configSetLogLevel         string
	configSetLogStyle         string
	configSetIncludeCommented bool
	configSetFieldHeaders     bool
)

type globalConfigContext struct {
	cfg          *config.Config
	configPath   string
	configExists bool
}

// loadGlobalConfigContextAllowMissing reads the config file only, without
// environment or flag overrides, so that "config set" writes back what the
// file holds.
func loadGlobalConfigContextAllowMissing() (*globalConfigContext, error) {
	path := config.ResolveConfigPath(configPath)
	ctx := &globalConfigContext{cfg: &config.Config{}, configPath: path}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return ctx, nil
		}
		return nil, err
	}
	loaded, err := config.LoadFrom(path)
	if err != nil {
		return nil, err
	}
	ctx.cfg = loaded
	ctx.configExists = true
	return ctx, nil
}

func configData(ctx *globalConfigContext) map[string]interface{} {
	return map[string]interface{}{
		"config_path":    ctx.configPath,
		"exists":         ctx.configExists,
		"catalog":        strings.TrimSpace(ctx.cfg.Catalog),
		"index":          ctx.cfg.IndexPath(ctx.configPath),
		"default_prefix": ctx.cfg.DefaultPrefix,
		"strict":         ctx.cfg.Strict,
		"log_level":      ctx.cfg.LogLevel,
		"log_style":      ctx.cfg.LogStyle,
		"render": map[string]interface{}{
			"include_commented": ctx.cfg.Render.IncludeCommented,
			"field_headers":     ctx.cfg.Render.FieldHeaders,
		},
	}
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	ctx, err := loadGlobalConfigContextAllowMissing()
	if err != nil {
		return handleError(ErrConfigInvalid, err, "")
	}
	// Show the effective values when the root command resolved them.
	if cfg != nil {
		ctx.cfg = cfg
	}

	if isJSONOutput() {
		outputSuccess(configData(ctx), nil)
		return nil
	}

	if !ctx.configExists {
		fmt.Printf("Config file does not exist: %s\n", ctx.configPath)
		fmt.Println("Run 'akey config init' to create it.")
	} else {
		fmt.Printf("config: %s\n", ctx.configPath)
	}
	fmt.Printf("index:  %s\n", ctx.cfg.IndexPath(ctx.configPath))
	if v := strings.TrimSpace(ctx.cfg.Catalog); v != "" {
		fmt.Printf("catalog: %s\n", v)
	}
	if v := ctx.cfg.DefaultPrefix; v != "" {
		fmt.Printf("default_prefix: %s\n", v)
	}
	fmt.Printf("strict: %t\n", ctx.cfg.Strict)
	if v := ctx.cfg.LogLevel; v != "" {
		fmt.Printf("log_level: %s\n", v)
	}
	if v := ctx.cfg.LogStyle; v != "" {
		fmt.Printf("log_style: %s\n", v)
	}
	fmt.Printf("render.include_commented: %t\n", ctx.cfg.Render.IncludeCommented)
	fmt.Printf("render.field_headers: %t\n", ctx.cfg.Render.FieldHeaders)
	return nil
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the global configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a commented default config file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.ResolveConfigPath(configPath)
		created, err := config.CreateDefault(path)
		if err != nil {
			return handleError(ErrFileWriteError, err, "")
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"config_path": path,
				"created":     created,
			}, nil)
			return nil
		}
		if !created {
			fmt.Printf("Config already exists: %s\n", path)
			return nil
		}
		fmt.Println(ui.Successf("Created config: %s", ui.FilePath(path)))
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.ResolveConfigPath(configPath)
		if isJSONOutput() {
			outputSuccess(map[string]interface{}{"config_path": path}, nil)
			return nil
		}
		fmt.Println(path)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update config values",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := loadGlobalConfigContextAllowMissing()
		if err != nil {
			return handleError(ErrConfigInvalid, err, "")
		}

		var changed []string
		flags := cmd.Flags()
		if flags.Changed("catalog") {
			ctx.cfg.Catalog = strings.TrimSpace(configSetCatalog)
			changed = append(changed, "catalog")
		}
		if flags.Changed("index") {
			ctx.cfg.Index = strings.TrimSpace(configSetIndex)
			changed = append(changed, "index")
		}
		if flags.Changed("default-prefix") {
			ctx.cfg.DefaultPrefix = configSetDefaultPrefix
			changed = append(changed, "default_prefix")
		}
		if flags.Changed("strict") {
			ctx.cfg.Strict = configSetStrict
			changed = append(changed, "strict")
		}
		if flags.Changed("log-level") {
			if _, err := logging.ParseLevel(configSetLogLevel); err != nil {
				return handleError(ErrInvalidInput, err, "")
			}
			ctx.cfg.LogLevel = configSetLogLevel
			changed = append(changed, "log_level")
		}
		if flags.Changed("log-style") {
			if _, err := logging.ParseStyle(configSetLogStyle); err != nil {
				return handleError(ErrInvalidInput, err, "")
			}
			ctx.cfg.LogStyle = configSetLogStyle
			changed = append(changed, "log_style")
		}
		if flags.Changed("include-commented") {
			ctx.cfg.Render.IncludeCommented = configSetIncludeCommented
			changed = append(changed, "render.include_commented")
		}
		if flags.Changed("field-headers") {
			ctx.cfg.Render.FieldHeaders = configSetFieldHeaders
			changed = append(changed, "render.field_headers")
		}

		if len(changed) == 0 {
			return handleErrorMsg(ErrInvalidInput, "no config values given", "Run 'akey config set --help' for the available flags")
		}
		if err := config.SaveTo(ctx.configPath, ctx.cfg); err != nil {
			return handleError(ErrFileWriteError, err, "")
		}

		if isJSONOutput() {
			data := configData(ctx)
			data["changed"] = changed
			outputSuccess(data, nil)
			return nil
		}
		fmt.Printf("Updated config: %s\n", ctx.configPath)
		fmt.Printf("changed: %s\n", strings.Join(changed, ", "))
		return nil
	},
}

func init() {
	configSetCmd.Flags().StringVar(&configSetCatalog, "catalog", "", "Keyword catalog path")
	configSetCmd.Flags().StringVar(&configSetIndex, "index", "", "Search index path")
	configSetCmd.Flags().StringVar(&configSetDefaultPrefix, "default-prefix", "", "Prefix for new decks")
	configSetCmd.Flags().BoolVar(&configSetStrict, "strict", false, "Reject invalid catalog fields")
	configSetCmd.Flags().StringVar(&configSetLogLevel, "log-level", "", "debug, info, warn or error")
	configSetCmd.Flags().StringVar(&configSetLogStyle, "log-style", "", "always, never or auto")
	configSetCmd.Flags().BoolVar(&configSetIncludeCommented, "include-commented", false, "Render commented keywords by default")
	configSetCmd.Flags().BoolVar(&configSetFieldHeaders, "field-headers", false, "Render field headers by default")

	configCmd.AddCommand(configInitCmd, configPathCmd, configSetCmd)
	rootCmd.AddCommand(configCmd)
}
