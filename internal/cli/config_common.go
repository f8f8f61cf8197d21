package cli

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vvka-141/pgload/internal/config"
	"github.com/vvka-141/pgload/pkg/pgload"
)

// loadOptionFlags holds the flags that shape a load run.
type loadOptionFlags struct {
	schema          string
	extension       string
	encoding        string
	delimiter       string
	previewRows     int
	continueOnError bool
	noVerify        bool
	createDatabase  bool
	dryRun          bool
	timeout         time.Duration
}

// loadProjectConfig loads .env from the working directory and pgload.yaml
// from sourcePath. Returns nil config if pgload.yaml does not exist (not an error).
func loadProjectConfig(sourcePath string) (*config.ProjectConfig, error) {
	_ = godotenv.Load()

	projectCfg, err := config.Load(sourcePath)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: failed to load %s: %v", pgload.ErrInvalidConfig, config.ConfigFileName, err)
	}
	return projectCfg, nil
}

// resolveEffectiveTimeout returns the effective timeout, preferring pgload.yaml if flag wasn't set.
func resolveEffectiveTimeout(
	cmd *cobra.Command,
	projectCfg *config.ProjectConfig,
	flagTimeout time.Duration,
) (time.Duration, error) {
	if projectCfg != nil && !cmd.Flags().Changed("timeout") {
		parsed, err := projectCfg.TimeoutDuration()
		if err != nil {
			return 0, fmt.Errorf("%w: %s: %v", pgload.ErrInvalidConfig, config.ConfigFileName, err)
		}
		if parsed > 0 {
			return parsed, nil
		}
	}
	return flagTimeout, nil
}

// stringSetting applies flag > environment > pgload.yaml > default.
func stringSetting(cmd *cobra.Command, flagName, flagValue, envKey, fileValue, def string) string {
	if cmd.Flags().Changed(flagName) {
		return flagValue
	}
	if envKey != "" {
		if v := os.Getenv(envKey); v != "" {
			return v
		}
	}
	if fileValue != "" {
		return fileValue
	}
	return def
}

// boolSetting applies flag > pgload.yaml > flag default.
func boolSetting(cmd *cobra.Command, flagName string, flagValue bool, fileValue *bool) bool {
	if cmd.Flags().Changed(flagName) || fileValue == nil {
		return flagValue
	}
	return *fileValue
}

// applyLoadOptions fills the load settings of cfg from flags, the
// environment and pgload.yaml.
func applyLoadOptions(cmd *cobra.Command, f loadOptionFlags, projectCfg *config.ProjectConfig, cfg *pgload.Config) error {
	var lc config.LoadConfig
	if projectCfg != nil {
		lc = projectCfg.Load
	}

	cfg.Schema = stringSetting(cmd, "schema", f.schema, "PGLOAD_SCHEMA", lc.Schema, pgload.DefaultSchema)
	cfg.Extension = stringSetting(cmd, "extension", f.extension, "", lc.Extension, pgload.DefaultExtension)
	cfg.Encoding = stringSetting(cmd, "encoding", f.encoding, "PGLOAD_ENCODING", lc.Encoding, pgload.DefaultEncoding)

	delimiter := stringSetting(cmd, "delimiter", f.delimiter, "", lc.Delimiter, string(pgload.DefaultDelimiter))
	r, err := config.ParseDelimiter(delimiter)
	if err != nil {
		return fmt.Errorf("%w: %v", pgload.ErrInvalidConfig, err)
	}
	cfg.Delimiter = r

	cfg.PreviewRows = f.previewRows
	if !cmd.Flags().Changed("preview-rows") && lc.PreviewRows != nil {
		cfg.PreviewRows = *lc.PreviewRows
	}

	cfg.ContinueOnError = boolSetting(cmd, "continue-on-error", f.continueOnError, lc.ContinueOnError)
	cfg.CreateDatabase = boolSetting(cmd, "create-database", f.createDatabase, lc.CreateDatabase)
	cfg.Verify = !f.noVerify
	if !cmd.Flags().Changed("no-verify") && lc.Verify != nil {
		cfg.Verify = *lc.Verify
	}
	cfg.DryRun = f.dryRun

	cfg.Timeout, err = resolveEffectiveTimeout(cmd, projectCfg, f.timeout)
	return err
}
