// Package frankfurter fetches daily exchange-rate series from the public
// Frankfurter API. It is independent of the listings pipeline and caches
// results per (currency, year) so repeated queries do not hit the service.
package frankfurter

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"math/rand"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Rate is one (date, exchange-rate) observation.
type Rate struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// Options configures the client.
type Options struct {
	BaseURL    string
	Timeout    time.Duration
	MaxRetries int
	RatePerSec float64
	// CacheTTL bounds how long a current-year series is reused; the range for
	// the current year is open-ended, so yesterday's fetch goes stale.
	// Past years never expire.
	CacheTTL time.Duration
}

// Client queries the Frankfurter API with rate limiting, retries, and a
// per-(currency, year) result cache.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	maxRetries int
	cacheTTL   time.Duration
	now        func() time.Time

	mu    sync.Mutex
	cache map[cacheKey]cacheEntry
}

type cacheKey struct {
	code string
	year int
}

type cacheEntry struct {
	rates     []Rate
	fetchedAt time.Time
	openEnded bool
}

// NewClient creates a client with sane defaults for unset options.
func NewClient(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = "https://api.frankfurter.app"
	}
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.MaxRetries == 0 {
		opts.MaxRetries = 3
	}
	if opts.RatePerSec == 0 {
		opts.RatePerSec = 5
	}
	if opts.CacheTTL == 0 {
		opts.CacheTTL = time.Hour
	}
	return &Client{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		httpClient: &http.Client{Timeout: opts.Timeout},
		limiter:    rate.NewLimiter(rate.Limit(opts.RatePerSec), 1),
		maxRetries: opts.MaxRetries,
		cacheTTL:   opts.CacheTTL,
		now:        time.Now,
		cache:      make(map[cacheKey]cacheEntry),
	}
}

// Series returns the date-ordered exchange-rate series for a currency code
// over one calendar year. For the current year the range end is open, so the
// series runs through today.
func (c *Client) Series(ctx context.Context, code string, year int) ([]Rate, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, eris.New("frankfurter: currency code is required")
	}
	if year <= 0 {
		return nil, eris.Errorf("frankfurter: invalid year %d", year)
	}

	key := cacheKey{code: code, year: year}
	if rates, ok := c.cached(key); ok {
		return rates, nil
	}

	openEnded := year == c.now().Year()
	endpoint := fmt.Sprintf("%s/%d-01-01..%d-12-31?to=%s", c.baseURL, year, year, code)
	if openEnded {
		endpoint = fmt.Sprintf("%s/%d-01-01..?to=%s", c.baseURL, year, code)
	}

	rates, err := c.fetch(ctx, endpoint, code)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.cache[key] = cacheEntry{rates: rates, fetchedAt: c.now(), openEnded: openEnded}
	c.mu.Unlock()

	zap.L().Debug("frankfurter series fetched",
		zap.String("currency", code),
		zap.Int("year", year),
		zap.Int("observations", len(rates)),
	)
	return rates, nil
}

func (c *Client) cached(key cacheKey) ([]Rate, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.cache[key]
	if !ok {
		return nil, false
	}
	if entry.openEnded && c.now().Sub(entry.fetchedAt) > c.cacheTTL {
		delete(c.cache, key)
		return nil, false
	}
	return entry.rates, true
}

func (c *Client) fetch(ctx context.Context, endpoint, code string) ([]Rate, error) {
	var lastErr error
	for attempt := 0; attempt < c.maxRetries; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, eris.Wrap(err, "frankfurter: rate limiter wait")
		}

		rates, retryable, err := c.doOnce(ctx, endpoint, code)
		if err == nil {
			return rates, nil
		}
		lastErr = err
		if !retryable {
			return nil, err
		}
		zap.L().Warn("frankfurter request failed, retrying",
			zap.String("endpoint", endpoint),
			zap.Int("attempt", attempt+1),
			zap.Error(err),
		)
		c.backoff(ctx, attempt)
	}
	return nil, eris.Wrap(lastErr, "frankfurter: all retries exhausted")
}

func (c *Client) doOnce(ctx context.Context, endpoint, code string) ([]Rate, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, false, eris.Wrap(err, "frankfurter: create request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, true, eris.Wrap(err, "frankfurter: request")
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return nil, true, eris.Errorf("frankfurter: http %d", resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, false, eris.Errorf("frankfurter: unexpected status %d", resp.StatusCode)
	}

	var body struct {
		Rates map[string]map[string]float64 `json:"rates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, false, eris.Wrap(err, "frankfurter: decode response")
	}

	rates := make([]Rate, 0, len(body.Rates))
	for day, values := range body.Rates {
		value, ok := values[code]
		if !ok {
			continue
		}
		date, err := time.Parse("2006-01-02", day)
		if err != nil {
			return nil, false, eris.Wrapf(err, "frankfurter: parse date %q", day)
		}
		rates = append(rates, Rate{Date: date, Value: value})
	}
	sort.Slice(rates, func(i, j int) bool { return rates[i].Date.Before(rates[j].Date) })
	return rates, false, nil
}

func (c *Client) backoff(ctx context.Context, attempt int) {
	base := time.Second
	d := time.Duration(float64(base) * math.Pow(2, float64(attempt)))
	if d > 10*time.Second {
		d = 10 * time.Second
	}
	d += time.Duration(rand.Int63n(int64(d) / 2))

	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
