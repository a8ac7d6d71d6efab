package provider

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"log/slog"
	"math/big"
	"net/http"
	"time"

	"github.com/poobet/roulette/internal/guard"
)

const randomOrgEndpoint = "https://api.random.org/json-rpc/4/invoke"

// RandomOrgClient provides true random numbers from RANDOM.ORG with CSPRNG fallback.
type RandomOrgClient struct {
	apiKey   string
	endpoint string
	logger   *slog.Logger
	client   *http.Client
	breaker  *guard.CircuitBreaker
}

// NewRandomOrgClient creates a new RANDOM.ORG client.
func NewRandomOrgClient(apiKey string, logger *slog.Logger) *RandomOrgClient {
	return &RandomOrgClient{
		apiKey:   apiKey,
		endpoint: randomOrgEndpoint,
		logger:   logger,
		client:   &http.Client{Timeout: 5 * time.Second},
	}
}

// WithBreaker skips the API while the breaker is open.
func (c *RandomOrgClient) WithBreaker(cb *guard.CircuitBreaker) *RandomOrgClient {
	c.breaker = cb
	return c
}

// Intn returns one random integer in [0, n), so the client can back a wheel.
func (c *RandomOrgClient) Intn(ctx context.Context, n int) (int, error) {
	if n <= 0 {
		return 0, fmt.Errorf("intn: n must be positive, got %d", n)
	}
	nums, err := c.RandomIntegers(ctx, 1, 0, n-1)
	if err != nil {
		return 0, err
	}
	if len(nums) != 1 {
		return 0, fmt.Errorf("intn: expected 1 integer, got %d", len(nums))
	}
	return nums[0], nil
}

// RandomIntegers returns n random integers in [min, max] from RANDOM.ORG.
// Falls back to crypto/rand if the API is unavailable.
func (c *RandomOrgClient) RandomIntegers(ctx context.Context, n, min, max int) ([]int, error) {
	if c.apiKey == "" {
		c.logger.Debug("random.org api key not set, using CSPRNG fallback")
		return csprngIntegers(n, min, max)
	}

	if c.breaker != nil {
		if res := c.breaker.Check(); !res.Allowed {
			c.logger.Debug("random.org skipped, using CSPRNG fallback", "reason", res.Reason)
			return csprngIntegers(n, min, max)
		}
	}

	result, err := c.fetchFromAPI(ctx, n, min, max)
	if err != nil {
		if c.breaker != nil {
			c.breaker.RecordFailure()
		}
		c.logger.Warn("random.org unavailable, falling back to CSPRNG", "error", err)
		return csprngIntegers(n, min, max)
	}
	if c.breaker != nil {
		c.breaker.RecordSuccess()
	}

	return result, nil
}

func (c *RandomOrgClient) fetchFromAPI(ctx context.Context, n, min, max int) ([]int, error) {
	reqBody := map[string]interface{}{
		"jsonrpc": "2.0",
		"method":  "generateIntegers",
		"params": map[string]interface{}{
			"apiKey":      c.apiKey,
			"n":           n,
			"min":         min,
			"max":         max,
			"replacement": true,
		},
		"id": 1,
	}

	body, _ := json.Marshal(reqBody)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("api call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("api returned %d", resp.StatusCode)
	}

	var response struct {
		Result struct {
			Random struct {
				Data []int `json:"data"`
			} `json:"random"`
		} `json:"result"`
		Error *struct {
			Message string `json:"message"`
		} `json:"error"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if response.Error != nil {
		return nil, fmt.Errorf("api error: %s", response.Error.Message)
	}

	data := response.Result.Random.Data
	if len(data) != n {
		return nil, fmt.Errorf("api returned %d integers, want %d", len(data), n)
	}
	for _, v := range data {
		if v < min || v > max {
			return nil, fmt.Errorf("api returned %d outside [%d, %d]", v, min, max)
		}
	}

	return data, nil
}

// CSPRNG is a Source backed by crypto/rand.
type CSPRNG struct{}

// Intn returns a cryptographically secure integer in [0, n).
func (CSPRNG) Intn(_ context.Context, n int) (int, error) {
	if n <= 0 {
		return 0, fmt.Errorf("intn: n must be positive, got %d", n)
	}
	nums, err := csprngIntegers(1, 0, n-1)
	if err != nil {
		return 0, err
	}
	return nums[0], nil
}

// csprngIntegers generates cryptographically secure random integers as fallback.
func csprngIntegers(n, min, max int) ([]int, error) {
	if min > max {
		return nil, fmt.Errorf("min (%d) > max (%d)", min, max)
	}

	rangeSize := big.NewInt(int64(max - min + 1))
	result := make([]int, n)

	for i := 0; i < n; i++ {
		r, err := rand.Int(rand.Reader, rangeSize)
		if err != nil {
			return nil, fmt.Errorf("csprng: %w", err)
		}
		result[i] = int(r.Int64()) + min
	}

	return result, nil
}
