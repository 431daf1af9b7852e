package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"
)

const defaultServerURL = "http://localhost:8080"

// options are the persistent flags shared by every command.
type options struct {
	serverURL string
	token     string
	timeout   time.Duration
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "cardctl",
		Short: "Submit card intents to a cardflow server",
		Long: `cardctl posts card request intents to the cardflow intake API.

The server acknowledges each intent as soon as it is queued; use
"cardctl state" to see the board state once the effects have run.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&opts.serverURL, "server", envOr("CARDFLOW_SERVER_URL", defaultServerURL),
		"cardflow server URL")
	root.PersistentFlags().StringVar(&opts.token, "token", os.Getenv("CARDFLOW_TOKEN"),
		"bearer token for the intake API")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", 10*time.Second, "request timeout")

	root.AddCommand(
		newCreateCmd(opts),
		newRemoveCmd(opts),
		newFetchCmd(opts),
		newUpdateCmd(opts),
		newAddColorCmd(opts),
		newRemoveColorCmd(opts),
		newMoveCmd(opts),
		newStateCmd(opts),
		newTokenCmd(),
	)
	return root
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
