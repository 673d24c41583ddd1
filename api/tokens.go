package api

import (
	"context"
	"fmt"
	"net/url"
)

// GetTokens fetches every token balance held by wallet
func (c *Client) GetTokens(ctx context.Context, wallet string) (*TokenQueryResult, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid endpoint %q: %w", c.endpoint, err)
	}
	q := u.Query()
	q.Set("account", wallet)
	u.RawQuery = q.Encode()

	c.logger.Debug("fetching tokens", "wallet", wallet, "url", u.String())

	var result TokenQueryResult
	if err := c.getJSON(ctx, u.String(), &result); err != nil {
		return nil, fmt.Errorf("failed to fetch tokens for %s: %w", wallet, err)
	}

	c.logger.Debug("fetched tokens", "wallet", wallet, "count", len(result.Tokens))
	return &result, nil
}
