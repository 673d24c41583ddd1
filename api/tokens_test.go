package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(endpoint string) *Client {
	return NewClient(Options{
		Endpoint:      endpoint,
		MaxAttempts:   3,
		BackoffFactor: time.Millisecond,
		MaxBackoff:    5 * time.Millisecond,
		Timeout:       2 * time.Second,
	})
}

// statusServer answers every request with the given status and counts hits
func statusServer(t *testing.T, status int, body string) (*httptest.Server, *int32) {
	t.Helper()
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func TestGetTokens_Success(t *testing.T) {
	var gotAccount string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAccount = r.URL.Query().Get("account")
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"account":"a.wam","tokens":[{"symbol":"WAX","contract":"eosio.token","precision":8,"amount":"10.50"},{"symbol":"TLM","amount":3.25}]}`)
	}))
	defer srv.Close()

	result, err := newTestClient(srv.URL).GetTokens(context.Background(), "a.wam")
	require.NoError(t, err)

	assert.Equal(t, "a.wam", gotAccount)
	assert.Equal(t, "a.wam", result.Account)
	require.Len(t, result.Tokens, 2)
	assert.Equal(t, TokenRecord{Symbol: "WAX", Contract: "eosio.token", Precision: 8, Amount: "10.50"}, result.Tokens[0])
	assert.Equal(t, Amount("3.25"), result.Tokens[1].Amount)
}

func TestGetTokens_RetriesServerErrors(t *testing.T) {
	for _, status := range []int{500, 502, 503, 599} {
		t.Run(fmt.Sprint(status), func(t *testing.T) {
			srv, hits := statusServer(t, status, "boom")

			_, err := newTestClient(srv.URL).GetTokens(context.Background(), "a.wam")
			require.Error(t, err)

			assert.True(t, errors.Is(err, ErrRetryExhausted))
			var exhausted *RetryExhaustedError
			require.True(t, errors.As(err, &exhausted))
			assert.Equal(t, 3, exhausted.Attempts)
			assert.Equal(t, status, exhausted.StatusCode)
			assert.Equal(t, int32(3), atomic.LoadInt32(hits))
		})
	}
}

func TestGetTokens_DoesNotRetryClientErrors(t *testing.T) {
	for _, status := range []int{400, 404, 429} {
		t.Run(fmt.Sprint(status), func(t *testing.T) {
			srv, hits := statusServer(t, status, "nope")

			_, err := newTestClient(srv.URL).GetTokens(context.Background(), "a.wam")
			require.Error(t, err)

			assert.True(t, errors.Is(err, ErrUnexpectedStatus))
			assert.False(t, errors.Is(err, ErrRetryExhausted))
			var statusErr *StatusError
			require.True(t, errors.As(err, &statusErr))
			assert.Equal(t, status, statusErr.StatusCode)
			assert.Equal(t, int32(1), atomic.LoadInt32(hits))
		})
	}
}

func TestGetTokens_RecoversAfterServerError(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&hits, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		fmt.Fprint(w, `{"tokens":[{"symbol":"WAX","amount":"1.00"}]}`)
	}))
	defer srv.Close()

	result, err := newTestClient(srv.URL).GetTokens(context.Background(), "a.wam")
	require.NoError(t, err)
	require.Len(t, result.Tokens, 1)
	assert.Equal(t, int32(3), atomic.LoadInt32(&hits))
}

func TestGetTokens_SingleAttemptOnSuccess(t *testing.T) {
	srv, hits := statusServer(t, http.StatusOK, `{"tokens":[]}`)

	result, err := newTestClient(srv.URL).GetTokens(context.Background(), "a.wam")
	require.NoError(t, err)
	assert.Empty(t, result.Tokens)
	assert.Equal(t, int32(1), atomic.LoadInt32(hits))
}

func TestGetTokens_MalformedJSON(t *testing.T) {
	srv, _ := statusServer(t, http.StatusOK, `{"tokens":[`)

	_, err := newTestClient(srv.URL).GetTokens(context.Background(), "a.wam")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrParse))
}

func TestGetTokens_TransportErrorIsNotRetried(t *testing.T) {
	srv, hits := statusServer(t, http.StatusOK, `{}`)
	endpoint := srv.URL
	srv.Close()

	_, err := newTestClient(endpoint).GetTokens(context.Background(), "a.wam")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTransport))
	assert.Equal(t, int32(0), atomic.LoadInt32(hits))
}

func TestExponentialBackoff(t *testing.T) {
	factor := 200 * time.Millisecond
	max := time.Second

	assert.Equal(t, 200*time.Millisecond, exponentialBackoff(factor, max, 0, nil))
	assert.Equal(t, 400*time.Millisecond, exponentialBackoff(factor, max, 1, nil))
	assert.Equal(t, 800*time.Millisecond, exponentialBackoff(factor, max, 2, nil))
	assert.Equal(t, time.Second, exponentialBackoff(factor, max, 3, nil))
}

func TestAmount_UnmarshalJSON(t *testing.T) {
	var rec TokenRecord

	require.NoError(t, rec.Amount.UnmarshalJSON([]byte(`"5.25"`)))
	assert.Equal(t, "5.25", rec.Amount.String())

	require.NoError(t, rec.Amount.UnmarshalJSON([]byte(`5.25`)))
	assert.Equal(t, "5.25", rec.Amount.String())

	require.NoError(t, rec.Amount.UnmarshalJSON([]byte(`null`)))
	assert.Equal(t, "", rec.Amount.String())
}
