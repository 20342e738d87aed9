package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewConfigShowCmd creates the config show command printing the effective
// configuration after environment and flag overrides.
func NewConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Example: `  linkstats config show
  LINKSTATS_CACHE_TTL=5m linkstats config show --output json`,
		Annotations: map[string]string{annotationConfig: configLenient},
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := sessionFrom(cmd)
			if err != nil {
				return err
			}

			if s.output == outputJSON {
				return render(cmd, s, s.cfg, nil)
			}

			data, err := s.cfg.Marshal()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "# %s\n%s", s.configPath, data)
			return err
		},
	}
}
