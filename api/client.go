package api

// API Client-
//
// Files:
//   config.go    - Hyperion endpoint and retry defaults
//   types.go     - Struct definitions (TokenQueryResult, TokenRecord, Amount)
//   errors.go    - Error taxonomy (ErrParse, ErrRetryExhausted, ...)
//   base.go      - Core client functionality (Client, NewClient, retry policy, helpers)
//   tokens.go    - Token balance queries (GetTokens)
//
// Usage:
//   client := api.NewClient(api.DefaultOptions())     // from base.go
//   result, err := client.GetTokens(ctx, "abcde.wam") // from tokens.go
