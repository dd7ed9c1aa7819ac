package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/videra/data-server/internal/client"
)

const (
	// EnvAPIURL is the environment variable the API base URL is read from if the flag is not set
	EnvAPIURL = "VIDERA_API_URL"

	// DefaultAPIURL is the API base URL used if neither the flag nor the environment variable is set
	DefaultAPIURL = "http://localhost:8081"
)

// Output formats
const (
	OutputTable = "table"
	OutputJSON  = "json"
	OutputYAML  = "yaml"
)

// rootFlags holds the persistent flags every command shares
type rootFlags struct {
	apiURL  string
	timeout time.Duration
	output  string
	debug   bool
}

// client creates a new API client using the configured base URL and timeout
func (flags *rootFlags) client() (*client.Client, error) {
	return client.New(flags.apiURL, client.WithTimeout(flags.timeout))
}

// NewRootCmd creates the root command of the videractl CLI
func NewRootCmd() *cobra.Command {
	return NewRootCmdWithEnv(os.LookupEnv)
}

// NewRootCmdWithEnv creates the root command using an explicit environment lookup for testability
func NewRootCmdWithEnv(lookupEnv func(string) (string, bool)) *cobra.Command {
	flags := &rootFlags{}

	defaultURL := DefaultAPIURL
	if val, ok := lookupEnv(EnvAPIURL); ok && val != "" {
		defaultURL = val
	}

	cmd := &cobra.Command{
		Use:           "videractl",
		Short:         "Command line client of the Videra dashboard API",
		SilenceUsage:  true,
		SilenceErrors: true,
		Example: `  # List the most viewed content items
  videractl content list --sort-by views

  # Walk every page of TikTok content
  videractl content list --filter platform=TikTok --all

  # Show the analytics summary of the last week as YAML
  videractl analytics summary --period 7d -o yaml`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			switch flags.output {
			case OutputTable, OutputJSON, OutputYAML:
			default:
				return fmt.Errorf("%w: %q", ErrInvalidOutput, flags.output)
			}

			level := zerolog.WarnLevel
			if flags.debug {
				level = zerolog.DebugLevel
			}
			log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr()}).Level(level).With().Timestamp().Logger()
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&flags.apiURL, "api-url", defaultURL, "base URL of the dashboard API (env "+EnvAPIURL+")")
	cmd.PersistentFlags().DurationVar(&flags.timeout, "timeout", client.DefaultTimeout, "timeout of a single request")
	cmd.PersistentFlags().StringVarP(&flags.output, "output", "o", OutputTable, "output format (table, json or yaml)")
	cmd.PersistentFlags().BoolVar(&flags.debug, "debug", false, "enable debug logging")

	cmd.AddCommand(
		newContentCmd(flags),
		newAnalyticsCmd(flags),
		newTrendsCmd(flags),
		newUsersCmd(flags),
		newSignupCmd(flags),
	)
	return cmd
}
