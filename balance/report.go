package balance

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/chinmay1088/tokentally/api"
	"github.com/chinmay1088/tokentally/logging"
	"github.com/schollz/progressbar/v3"
	"github.com/shopspring/decimal"
)

// Separator is printed between the wallet lines and the total
var Separator = strings.Repeat("=", 20)

// Fetcher returns the token balances of a wallet
type Fetcher interface {
	GetTokens(ctx context.Context, wallet string) (*api.TokenQueryResult, error)
}

// Reporter prints the balance of one token for a list of wallets
type Reporter struct {
	fetcher  Fetcher
	out      io.Writer
	logger   *slog.Logger
	progress io.Writer
}

// ReporterOption configures a Reporter
type ReporterOption func(*Reporter)

// WithLogger sets the logger used for per-wallet debug output
func WithLogger(logger *slog.Logger) ReporterOption {
	return func(r *Reporter) {
		r.logger = logger
	}
}

// WithProgress draws a progress bar on w while wallets are queried
func WithProgress(w io.Writer) ReporterOption {
	return func(r *Reporter) {
		r.progress = w
	}
}

// NewReporter creates a reporter writing to out
func NewReporter(fetcher Fetcher, out io.Writer, opts ...ReporterOption) *Reporter {
	r := &Reporter{
		fetcher: fetcher,
		out:     out,
		logger:  logging.Discard(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run queries every wallet in order, prints one line per wallet and then the
// total. The first error aborts the run and no total is printed.
func (r *Reporter) Run(ctx context.Context, wallets []string, symbol string) (decimal.Decimal, error) {
	total := decimal.Zero

	var bar *progressbar.ProgressBar
	if r.progress != nil {
		bar = newProgressBar(r.progress, len(wallets))
	}

	abort := func(wallet string, err error) (decimal.Decimal, error) {
		if bar != nil {
			bar.Exit()
		}
		return total, fmt.Errorf("wallet %s: %w", wallet, err)
	}

	for _, wallet := range wallets {
		result, err := r.fetcher.GetTokens(ctx, wallet)
		if err != nil {
			return abort(wallet, err)
		}

		amount, err := Extract(result, symbol)
		if err != nil {
			return abort(wallet, err)
		}

		total = total.Add(amount)
		r.logger.Debug("wallet balance", "wallet", wallet, "symbol", symbol, "amount", amount.String(), "total", total.String())

		if bar != nil {
			bar.Add(1)
		}
		fmt.Fprintf(r.out, "%s: %s%s\n", wallet, amount.StringFixed(2), symbol)
	}

	if bar != nil {
		bar.Finish()
	}

	fmt.Fprintln(r.out, Separator)
	fmt.Fprintf(r.out, "Total: %s\n", total.StringFixed(2))

	return total, nil
}

func newProgressBar(w io.Writer, max int) *progressbar.ProgressBar {
	return progressbar.NewOptions(max,
		progressbar.OptionSetWriter(w),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(30),
		progressbar.OptionSetDescription("[cyan]Querying wallets[reset]"),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
}
