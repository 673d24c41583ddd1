package balance

import (
	"fmt"

	"github.com/chinmay1088/tokentally/api"
	"github.com/shopspring/decimal"
)

// Extract returns the amount of symbol held according to result.
// Only the Symbol field is compared, so a contract named like the symbol
// does not match. The first matching record wins; no match is a zero
// balance, not an error.
func Extract(result *api.TokenQueryResult, symbol string) (decimal.Decimal, error) {
	if result == nil {
		return decimal.Zero, nil
	}

	for _, token := range result.Tokens {
		if token.Symbol != symbol {
			continue
		}

		amount, err := decimal.NewFromString(token.Amount.String())
		if err != nil {
			return decimal.Zero, fmt.Errorf("%w: invalid %s amount %q: %w", api.ErrParse, symbol, token.Amount, err)
		}
		return amount, nil
	}

	return decimal.Zero, nil
}
