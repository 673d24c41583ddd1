package api

import "time"

// Hyperion endpoints
const (
	// state api, one call per account
	DefaultTokensEndpoint = "https://wax.eosrio.io/v2/state/get_tokens"
)

// retry defaults
const (
	DefaultMaxAttempts   = 3
	DefaultBackoffFactor = 200 * time.Millisecond
	DefaultMaxBackoff    = 5 * time.Second
	DefaultTimeout       = 30 * time.Second
)
