package omdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/five82/popcorn/internal/movie"
)

// MovieLookup is implemented by *Client and can be faked in tests.
type MovieLookup interface {
	Search(ctx context.Context, query string) ([]movie.Summary, error)
	Detail(ctx context.Context, id string) (movie.Detail, error)
}

// Ensure Client implements MovieLookup at compile time.
var _ MovieLookup = (*Client)(nil)

var (
	// ErrFetchFailed wraps transport failures, non-2xx statuses and malformed bodies.
	ErrFetchFailed = errors.New("something went wrong with fetching movies")
	// ErrNotFound is returned when the service reports no match.
	ErrNotFound = errors.New("movie not found")
	// ErrMissingAPIKey is returned by NewClient without an API key.
	ErrMissingAPIKey = errors.New("omdb api key is required")
)

// ServiceError is an error message reported by OMDb in a well-formed payload,
// for example "Invalid API key!" or "Too many results.".
type ServiceError struct {
	Message string
}

func (e *ServiceError) Error() string {
	return e.Message
}

const (
	DefaultBaseURL   = "https://www.omdbapi.com/"
	defaultUserAgent = "popcorn/0.1"
	defaultTimeout   = 10 * time.Second
	defaultCacheSize = 128
	defaultCacheTTL  = 30 * time.Minute
)

// Options configure a Client.
type Options struct {
	BaseURL    string
	APIKey     string
	Timeout    time.Duration
	CacheSize  int           // detail memo entries; negative disables it
	CacheTTL   time.Duration // zero uses the default
	HTTPClient *http.Client  // optional; Timeout is ignored when set
}

// Client talks to the OMDb HTTP API.
type Client struct {
	baseURL   *url.URL
	apiKey    string
	http      *http.Client
	userAgent string
	details   *expirable.LRU[string, movie.Detail]
}

// NewClient builds a Client from opts.
func NewClient(opts Options) (*Client, error) {
	apiKey := strings.TrimSpace(opts.APIKey)
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	base, err := parseBaseURL(opts.BaseURL)
	if err != nil {
		return nil, err
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	c := &Client{
		baseURL:   base,
		apiKey:    apiKey,
		http:      httpClient,
		userAgent: defaultUserAgent,
	}
	if opts.CacheSize >= 0 {
		size := opts.CacheSize
		if size == 0 {
			size = defaultCacheSize
		}
		ttl := opts.CacheTTL
		if ttl <= 0 {
			ttl = defaultCacheTTL
		}
		c.details = expirable.NewLRU[string, movie.Detail](size, nil, ttl)
	}
	return c, nil
}

// Search returns the summaries matching query. A "no match" answer from the
// service yields an empty, non-nil slice and no error.
func (c *Client) Search(ctx context.Context, query string) ([]movie.Summary, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	values := url.Values{}
	values.Set("s", strings.TrimSpace(query))

	var payload SearchResponse
	if err := c.get(ctx, values, &payload); err != nil {
		return nil, err
	}
	if err := payloadError(payload.envelope); err != nil {
		if errors.Is(err, ErrNotFound) {
			return []movie.Summary{}, nil
		}
		return nil, err
	}
	return payload.Summaries(), nil
}

// Detail returns the full record for an IMDb id. Results are memoised for the
// configured TTL.
func (c *Client) Detail(ctx context.Context, id string) (movie.Detail, error) {
	if c == nil {
		return movie.Detail{}, fmt.Errorf("client is nil")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return movie.Detail{}, fmt.Errorf("movie id required")
	}
	if c.details != nil {
		if cached, ok := c.details.Get(id); ok {
			return cached, nil
		}
	}

	values := url.Values{}
	values.Set("i", id)

	var payload DetailResponse
	if err := c.get(ctx, values, &payload); err != nil {
		return movie.Detail{}, err
	}
	if err := payloadError(payload.envelope); err != nil {
		return movie.Detail{}, err
	}

	detail := payload.Detail(id)
	if c.details != nil {
		c.details.Add(id, detail)
	}
	return detail, nil
}

func (c *Client) get(ctx context.Context, values url.Values, dest any) error {
	values.Set("apikey", c.apiKey)
	reqURL := *c.baseURL
	reqURL.RawQuery = values.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: api returned status %d", ErrFetchFailed, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("%w: decode response: %w", ErrFetchFailed, err)
	}
	return nil
}

func payloadError(env envelope) error {
	if !env.failed() {
		return nil
	}
	msg := strings.TrimSpace(env.Error)
	if msg == "" {
		return fmt.Errorf("%w: service reported failure", ErrFetchFailed)
	}
	if strings.Contains(strings.ToLower(msg), "not found") {
		return ErrNotFound
	}
	return &ServiceError{Message: msg}
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse base url %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse base url %q: missing host", raw)
	}
	if u.Path == "" {
		u.Path = "/"
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}

// UserMessage turns a lookup failure into text fit for the UI.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var svcErr *ServiceError
	if errors.As(err, &svcErr) && strings.TrimSpace(svcErr.Message) != "" {
		return svcErr.Message
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "The movie service took too long to answer"
	}
	if errors.Is(err, ErrFetchFailed) {
		return "Something went wrong with fetching movies"
	}
	return err.Error()
}
