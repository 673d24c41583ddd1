package api

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// TokenQueryResult represents a get_tokens response for one account
type TokenQueryResult struct {
	Account string        `json:"account"`
	Tokens  []TokenRecord `json:"tokens"`
}

// TokenRecord represents a single token balance held by an account
type TokenRecord struct {
	Symbol    string `json:"symbol"`
	Contract  string `json:"contract"`
	Precision int    `json:"precision"`
	Amount    Amount `json:"amount"`
}

// Amount is the textual form of a token amount as sent by the API.
// Hyperion nodes disagree on whether it is a JSON string or a number,
// so both are accepted and kept verbatim.
type Amount string

// UnmarshalJSON accepts "10.5" as well as 10.5
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*a = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("invalid amount %s: %w", data, err)
		}
		*a = Amount(s)
		return nil
	}

	*a = Amount(data)
	return nil
}

// String returns the raw amount text
func (a Amount) String() string {
	return string(a)
}
