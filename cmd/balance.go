package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/chinmay1088/tokentally/api"
	"github.com/chinmay1088/tokentally/balance"
	"github.com/chinmay1088/tokentally/config"
	"github.com/chinmay1088/tokentally/logging"
	"github.com/chinmay1088/tokentally/wallet"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func init() {
	addBalanceFlags(rootCmd)
}

// addBalanceFlags registers the flags that override the environment settings
func addBalanceFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("config", "c", wallet.DefaultListPath, "path of the wallets YAML file")
	cmd.Flags().String("endpoint", api.DefaultTokensEndpoint, "get_tokens endpoint")
	cmd.Flags().Int("retries", api.DefaultMaxAttempts, "total attempts per wallet on server errors")
	cmd.Flags().Duration("backoff", api.DefaultBackoffFactor, "wait before the first retry, doubled afterwards")
	cmd.Flags().Duration("timeout", api.DefaultTimeout, "per-request timeout")
	cmd.Flags().Bool("progress", false, "show a progress bar on stderr")
}

func runBalance(cmd *cobra.Command, args []string) error {
	settings, err := config.Load()
	if err != nil {
		return err
	}
	if err := applyFlags(cmd, settings); err != nil {
		return err
	}

	progress, _ := cmd.Flags().GetBool("progress")
	var progressOut io.Writer
	if progress && term.IsTerminal(int(os.Stderr.Fd())) {
		progressOut = os.Stderr
	}

	return report(cmd.Context(), settings, args[0], cmd.OutOrStdout(), cmd.ErrOrStderr(), progressOut)
}

// applyFlags overrides environment settings with the flags set on the command line
func applyFlags(cmd *cobra.Command, s *config.Settings) error {
	flags := cmd.Flags()

	if flags.Changed("config") {
		s.ConfigPath, _ = flags.GetString("config")
	}
	if flags.Changed("endpoint") {
		s.Endpoint, _ = flags.GetString("endpoint")
	}
	if flags.Changed("retries") {
		s.MaxAttempts, _ = flags.GetInt("retries")
	}
	if flags.Changed("backoff") {
		s.Backoff, _ = flags.GetDuration("backoff")
	}
	if flags.Changed("timeout") {
		s.Timeout, _ = flags.GetDuration("timeout")
	}

	verbose, _ := flags.GetBool("verbose")
	quiet, _ := flags.GetBool("quiet")
	switch {
	case quiet:
		s.LogLevel = "error"
	case verbose:
		s.LogLevel = "debug"
	}

	return s.Validate()
}

// report prints the banner, loads the wallets and prints their balances of symbol
func report(ctx context.Context, s *config.Settings, symbol string, out, errOut io.Writer, progressOut io.Writer) error {
	logger := logging.New(s.LogLevel, errOut)
	symbol = strings.ToUpper(strings.TrimSpace(symbol))

	printBanner(out, symbol)

	// wallets are loaded before any request is made
	wallets, err := wallet.LoadList(s.ConfigPath, logger)
	if err != nil {
		return err
	}

	client := api.NewClient(s.ClientOptions(logger))

	opts := []balance.ReporterOption{balance.WithLogger(logger)}
	if progressOut != nil {
		opts = append(opts, balance.WithProgress(progressOut))
	}

	start := time.Now()
	total, err := balance.NewReporter(client, out, opts...).Run(ctx, wallets, symbol)
	if err != nil {
		return err
	}

	logger.Debug("report finished", "symbol", symbol, "wallets", len(wallets), "total", total.String(), "elapsed", time.Since(start))
	return nil
}

func printBanner(out io.Writer, symbol string) {
	fmt.Fprintln(out, balance.Separator)
	fmt.Fprintln(out, color.CyanString("Tokentally v%s", version))
	fmt.Fprintf(out, "%s balances, one line per wallet\n", symbol)
	fmt.Fprintln(out, balance.Separator)
}
