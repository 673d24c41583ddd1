package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var (
	version = "1.0.0"
)

// rootCmd represents the base command; it reports a token balance across wallets
var rootCmd = &cobra.Command{
	Use:   "tokentally <token_symbol>",
	Short: "Sum a token balance across WAX wallets",
	Long: `Tokentally reads the wallets listed in wallets.yaml, asks a Hyperion
node for the token balances of each one and prints the balance of the
requested token per wallet, followed by the total.

The wallets file looks like:

  wallets:
    - abcde.wam
    - fghij.wam

Environment:
  TOKENTALLY_CONFIG      path of the wallets file (default wallets.yaml)
  TOKENTALLY_ENDPOINT    get_tokens endpoint
  TOKENTALLY_RETRIES     total attempts per wallet on server errors (default 3)
  TOKENTALLY_BACKOFF     wait before the first retry, doubled afterwards (default 200ms)
  TOKENTALLY_TIMEOUT     per-request timeout (default 30s)
  TOKENTALLY_LOG_LEVEL   debug, info, warn or error (default info)

Examples:
  tokentally wax                      # WAX balance of every wallet
  tokentally tlm -c ~/my-wallets.yaml # TLM balance, custom wallets file
  tokentally wax --progress           # Show a progress bar on stderr
  tokentally --version                # Print the version`,
	Version:       version,
	Args:          cobra.ExactArgs(1),
	RunE:          runBalance,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	addGlobalFlags(rootCmd)

	// --version instead of a subcommand, so every word stays a valid symbol
	rootCmd.SetVersionTemplate("Tokentally v{{.Version}}\n")
}

// addGlobalFlags registers the log verbosity flags
func addGlobalFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	cmd.PersistentFlags().BoolP("quiet", "q", false, "suppress log output")
}
