package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rshade/linkstats/internal/analytics"
	"github.com/rshade/linkstats/internal/cache"
	"github.com/rshade/linkstats/internal/config"
	"github.com/rshade/linkstats/internal/logging"
)

// Output formats accepted by --output.
const (
	outputTable = "table"
	outputJSON  = "json"
)

// Command annotations controlling how much of the config the root pre-run
// requires. Commands without one need a loaded, valid config.
const (
	annotationConfig = "linkstats/config"
	configSkip       = "skip"    // defaults only, the file is not read
	configLenient    = "lenient" // loaded but not validated
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// rootFlags are the persistent flags shared by every command.
type rootFlags struct {
	configPath       string
	debug            bool
	baseURL          string
	cacheTTL         string
	noCache          bool
	skipVersionCheck bool
	output           string
}

// session is the per-invocation state built by the root pre-run.
type session struct {
	version    string
	cfg        *config.Config
	configPath string
	output     string
	client     *analytics.Client
}

type sessionKey struct{}

func withSession(ctx context.Context, s *session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// sessionFrom returns the session stored by the root pre-run.
func sessionFrom(cmd *cobra.Command) (*session, error) {
	s, ok := cmd.Context().Value(sessionKey{}).(*session)
	if !ok || s == nil {
		return nil, errors.New("command context not initialized")
	}
	return s, nil
}

// Client returns the analytics client, building it on first use.
func (s *session) Client() (*analytics.Client, error) {
	if s.client != nil {
		return s.client, nil
	}
	client, err := analytics.NewClient(analytics.ClientConfig{
		BaseURL:           s.cfg.API.BaseURL,
		Timeout:           s.cfg.API.Timeout,
		CacheEnabled:      s.cfg.Cache.Enabled,
		CacheTTL:          s.cfg.Cache.TTL,
		Coalesce:          s.cfg.Cache.Coalesce,
		RequestsPerSecond: s.cfg.API.RequestsPerSecond,
		SkipVersionCheck:  s.cfg.API.SkipVersionCheck,
		UserAgent:         "linkstats/" + s.version,
	})
	if err != nil {
		return nil, fmt.Errorf("creating analytics client: %w", err)
	}
	s.client = client
	return client, nil
}

// NewRootCmd creates the root Cobra command for the linkstats CLI.
// It loads configuration, wires up logging and tracing, and registers the
// analytics, dashboard and config subcommands.
func NewRootCmd(ver string) *cobra.Command {
	var (
		flags     rootFlags
		logResult *logging.LogPathResult
	)

	cmd := &cobra.Command{
		Use:           "linkstats",
		Short:         "Link-in-bio analytics from the command line",
		Long:          "linkstats: Query profile, traffic and time analytics and watch a live dashboard",
		Version:       ver,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if flags.output != outputTable && flags.output != outputJSON {
				return fmt.Errorf("--output must be %q or %q, got %q", outputTable, outputJSON, flags.output)
			}

			cfg, cfgPath, err := loadConfig(cmd, flags)
			if err != nil {
				return err
			}

			result := setupLogging(cmd, cfg.Logging, flags.debug)
			logResult = &result

			cmd.SetContext(withSession(cmd.Context(), &session{
				version:    ver,
				cfg:        cfg,
				configPath: cfgPath,
				output:     flags.output,
			}))
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return cleanupLogging(logResult)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "config file (default ~/.linkstats/config.yaml)")
	pf.BoolVar(&flags.debug, "debug", false, "enable debug logging")
	pf.StringVar(&flags.baseURL, "base-url", "", "analytics API base URL (overrides config)")
	pf.StringVar(&flags.cacheTTL, "cache-ttl", "",
		"cache TTL as a duration or milliseconds, e.g. 30s or 60000 (0 = use config default)")
	pf.BoolVar(&flags.noCache, "no-cache", false, "disable the response cache")
	pf.BoolVar(&flags.skipVersionCheck, "skip-version-check", false, "skip API version compatibility check")
	pf.StringVarP(&flags.output, "output", "o", outputTable, "output format: table or json")

	cmd.AddCommand(
		NewProfileCmd(), NewTrafficCmd(), NewTimeCmd(), NewQuickStatsCmd(), NewCompareCmd(),
		NewDashboardCmd(), newConfigCmd(),
	)

	return cmd
}

// loadConfig loads the configuration for cmd and applies flag overrides.
func loadConfig(cmd *cobra.Command, flags rootFlags) (*config.Config, string, error) {
	cfgPath := flags.configPath
	if cfgPath == "" {
		cfgPath = config.DefaultConfigPath()
	}

	mode := cmd.Annotations[annotationConfig]

	cfg := config.Default()
	if mode != configSkip {
		loaded, err := config.Load(flags.configPath)
		if err != nil {
			return nil, "", err
		}
		cfg = loaded
	}

	if err := applyFlagOverrides(cfg, flags); err != nil {
		return nil, "", err
	}

	if mode == "" {
		if err := cfg.Validate(); err != nil {
			return nil, "", err
		}
	}
	return cfg, cfgPath, nil
}

// applyFlagOverrides applies persistent flags on top of the loaded config.
func applyFlagOverrides(cfg *config.Config, flags rootFlags) error {
	if flags.baseURL != "" {
		cfg.API.BaseURL = flags.baseURL
	}
	if flags.cacheTTL != "" && flags.cacheTTL != "0" {
		ttl, err := cache.ParseTTL(flags.cacheTTL)
		if err != nil {
			return fmt.Errorf("--cache-ttl: %w", err)
		}
		cfg.Cache.TTL = ttl
	}
	if flags.noCache {
		cfg.Cache.Enabled = false
	}
	if flags.skipVersionCheck {
		cfg.API.SkipVersionCheck = true
	}
	return nil
}

const rootCmdExample = `  # Full analytics for profile 1
  linkstats profile 1

  # Traffic sources for a date range
  linkstats traffic 1 --start 2025-01-01 --end 2025-01-31

  # Hourly patterns as JSON
  linkstats time 1 --granularity hourly --output json

  # Last 30 days compared with the 30 before
  linkstats compare 1 --current-days 30 --previous-days 30

  # Live dashboard refreshing every 10 seconds
  linkstats dashboard 1 --watch --interval 10s

  # Use a 5 minute cache TTL
  linkstats dashboard --cache-ttl 5m

  # Initialize configuration
  linkstats config init`

// newConfigCmd creates the config command group with configuration subcommands.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(NewConfigInitCmd(), NewConfigShowCmd(), NewConfigValidateCmd())
	return cmd
}
