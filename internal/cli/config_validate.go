package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/linkstats/internal/cache"
	"github.com/rshade/linkstats/internal/config"
)

// NewConfigValidateCmd creates the config validate command for validating configuration.
func NewConfigValidateCmd() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		Long: `Validates the configuration file at ~/.linkstats/config.yaml for syntax and semantic correctness.

This includes:
- API base URL and timeout
- Cache TTL range (between 1s and 24h when the cache is enabled)
- Dashboard profile id and refresh interval
- Logging level and format`,
		Example: `  # Validate current configuration
  linkstats config validate

  # Validate and show detailed information
  linkstats config validate --verbose`,
		Annotations: map[string]string{annotationConfig: configLenient},
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := sessionFrom(cmd)
			if err != nil {
				return err
			}
			return runConfigValidate(cmd, s.cfg, verbose)
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show detailed validation information")

	return cmd
}

// runConfigValidate executes the configuration validation logic.
func runConfigValidate(cmd *cobra.Command, cfg *config.Config, verbose bool) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	cmd.Printf("Configuration is valid\n")

	if verbose {
		printVerboseDetails(cmd, cfg)
	}

	return nil
}

// printVerboseDetails prints detailed configuration information.
func printVerboseDetails(cmd *cobra.Command, cfg *config.Config) {
	cmd.Println()
	cmd.Println("Configuration details:")
	cmd.Printf("  API base URL: %s\n", cfg.API.BaseURL)
	cmd.Printf("  API timeout: %s\n", cache.FormatDuration(cfg.API.Timeout))
	if cfg.API.RequestsPerSecond > 0 {
		cmd.Printf("  Rate limit: %g requests/s\n", cfg.API.RequestsPerSecond)
	} else {
		cmd.Println("  Rate limit: none")
	}

	if cfg.Cache.Enabled {
		cmd.Printf("  Cache: enabled, TTL %s", cache.FormatDuration(cfg.Cache.TTL))
		if cfg.Cache.Coalesce {
			cmd.Print(", coalescing concurrent misses")
		}
		cmd.Println()
	} else {
		cmd.Println("  Cache: disabled")
	}

	cmd.Printf("  Dashboard profile: %d\n", cfg.Dashboard.ProfileID)
	cmd.Printf("  Refresh interval: %s\n", cache.FormatDuration(cfg.Dashboard.RefreshInterval))
	cmd.Printf("  Logging level: %s\n", cfg.Logging.Level)
	if cfg.Logging.File != "" {
		cmd.Printf("  Log file: %s\n", cfg.Logging.File)
	}
}
