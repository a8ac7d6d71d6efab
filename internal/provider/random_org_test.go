package provider

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/poobet/roulette/internal/guard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, nil))
}

func TestCSPRNGFallback_GeneratesInRange(t *testing.T) {
	// No API key → falls back to CSPRNG
	client := NewRandomOrgClient("", testLogger())

	nums, err := client.RandomIntegers(context.Background(), 10, 1, 100)
	require.NoError(t, err)
	assert.Len(t, nums, 10)

	for _, n := range nums {
		assert.GreaterOrEqual(t, n, 1)
		assert.LessOrEqual(t, n, 100)
	}
}

func TestCSPRNGFallback_MinEqualsMax(t *testing.T) {
	client := NewRandomOrgClient("", testLogger())

	nums, err := client.RandomIntegers(context.Background(), 5, 42, 42)
	require.NoError(t, err)
	assert.Len(t, nums, 5)
	for _, n := range nums {
		assert.Equal(t, 42, n)
	}
}

func TestCSPRNGIntegers_InvalidRange(t *testing.T) {
	_, err := csprngIntegers(1, 100, 50)
	assert.Error(t, err)
}

func TestRandomOrgClient_Intn(t *testing.T) {
	client := NewRandomOrgClient("", testLogger())

	for i := 0; i < 200; i++ {
		v, err := client.Intn(context.Background(), 37)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 37)
	}

	_, err := client.Intn(context.Background(), 0)
	assert.Error(t, err)
}

func TestRandomOrgClient_UsesAPIResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		assert.Contains(t, string(body), `"generateIntegers"`)
		assert.Contains(t, string(body), `"max":36`)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"jsonrpc":"2.0","result":{"random":{"data":[17]}},"id":1}`)
	}))
	defer srv.Close()

	client := NewRandomOrgClient("test-key", testLogger())
	client.endpoint = srv.URL

	v, err := client.Intn(context.Background(), 37)
	require.NoError(t, err)
	assert.Equal(t, 17, v)
}

func TestRandomOrgClient_FallsBackOnAPIError(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		payload string
	}{
		{"server error", http.StatusInternalServerError, `{}`},
		{"rpc error", http.StatusOK, `{"jsonrpc":"2.0","error":{"message":"quota exceeded"},"id":1}`},
		{"out of range value", http.StatusOK, `{"jsonrpc":"2.0","result":{"random":{"data":[99]}},"id":1}`},
		{"malformed body", http.StatusOK, `not json`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				fmt.Fprint(w, tt.payload)
			}))
			defer srv.Close()

			client := NewRandomOrgClient("test-key", testLogger())
			client.endpoint = srv.URL

			v, err := client.Intn(context.Background(), 37)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, v, 0)
			assert.Less(t, v, 37)
		})
	}
}

func TestRandomOrgClient_BreakerSkipsAPI(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	cb := guard.NewCircuitBreaker("random.org", 2, time.Hour)
	client := NewRandomOrgClient("test-key", testLogger()).WithBreaker(cb)
	client.endpoint = srv.URL

	for i := 0; i < 5; i++ {
		v, err := client.Intn(context.Background(), 37)
		require.NoError(t, err)
		assert.Less(t, v, 37)
	}

	assert.Equal(t, int32(2), hits.Load(), "breaker opens after two failures")
	assert.Equal(t, guard.CircuitOpen, cb.State())
}

func TestRandomOrgClient_BreakerClosesOnSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"jsonrpc":"2.0","result":{"random":{"data":[5]}},"id":1}`)
	}))
	defer srv.Close()

	cb := guard.NewCircuitBreaker("random.org", 3, time.Hour)
	cb.RecordFailure()
	client := NewRandomOrgClient("test-key", testLogger()).WithBreaker(cb)
	client.endpoint = srv.URL

	v, err := client.Intn(context.Background(), 37)
	require.NoError(t, err)
	assert.Equal(t, 5, v)
	assert.Equal(t, guard.CircuitClosed, cb.State())
}

func TestCSPRNG_Intn(t *testing.T) {
	var src CSPRNG
	for i := 0; i < 200; i++ {
		v, err := src.Intn(context.Background(), 37)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 37)
	}

	_, err := src.Intn(context.Background(), -1)
	assert.Error(t, err)
}

func TestFixedSource(t *testing.T) {
	t.Run("replays and cycles", func(t *testing.T) {
		src := NewFixedSource(3, 0, 36)
		var got []int
		for i := 0; i < 5; i++ {
			v, err := src.Intn(context.Background(), 37)
			require.NoError(t, err)
			got = append(got, v)
		}
		assert.Equal(t, []int{3, 0, 36, 3, 0}, got)
		assert.Equal(t, 5, src.Calls())
	})

	t.Run("empty script errors", func(t *testing.T) {
		_, err := NewFixedSource().Intn(context.Background(), 37)
		assert.Error(t, err)
	})

	t.Run("value outside range errors", func(t *testing.T) {
		_, err := NewFixedSource(37).Intn(context.Background(), 37)
		assert.Error(t, err)
	})
}
