package orb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/louisbranch/orbnet/internal/platform/timeouts"
)

// Sensor endpoint defaults, fixed by the Orb Local API.
const (
	DefaultHost = "localhost"
	DefaultPort = 7080
)

// defaultClientID identifies this application in sensor logs when the
// caller does not set its own.
const defaultClientID = "orbnet"

// errorBodyLimit caps how much of an error response body is read into a
// fetch error message.
const errorBodyLimit = 4096

// Config configures a Client. Zero values select the sensor defaults.
type Config struct {
	// Host is the sensor hostname or IP. Defaults to localhost.
	Host string
	// Port is the Local API port. Defaults to 7080.
	Port int
	// UseHTTPS selects the https scheme instead of http.
	UseHTTPS bool
	// ClientID is sent as the User-Agent header so sensor logs can tell
	// applications apart. Defaults to "orbnet".
	ClientID string
	// Timeout caps each dataset request. Defaults to timeouts.DatasetFetch.
	Timeout time.Duration
	// HTTPClient overrides the HTTP client, primarily for tests.
	HTTPClient *http.Client
}

// normalized returns the config with zero values replaced by defaults.
func (c Config) normalized() Config {
	if c.Host == "" {
		c.Host = DefaultHost
	}
	if c.Port == 0 {
		c.Port = DefaultPort
	}
	if c.ClientID == "" {
		c.ClientID = defaultClientID
	}
	if c.Timeout <= 0 {
		c.Timeout = timeouts.DatasetFetch
	}
	return c
}

// BaseURL returns the sensor endpoint the config selects, with defaults
// applied.
func (c Config) BaseURL() string {
	n := c.normalized()
	scheme := "http"
	if n.UseHTTPS {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s:%d", scheme, n.Host, n.Port)
}

// Client fetches datasets from an Orb sensor's Local Data API.
type Client struct {
	baseURL    string
	clientID   string
	timeout    time.Duration
	httpClient *http.Client
}

// NewClient builds a Client for one sensor endpoint.
func NewClient(cfg Config) *Client {
	normalized := cfg.normalized()
	httpClient := normalized.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}
	}
	return &Client{
		baseURL:    cfg.BaseURL(),
		clientID:   normalized.ClientID,
		timeout:    normalized.Timeout,
		httpClient: httpClient,
	}
}

// BaseURL returns the sensor endpoint the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Timeout returns the per-request timeout applied to each fetch.
func (c *Client) Timeout() time.Duration {
	return c.timeout
}

// FetchDataset returns every available record for the dataset.
func (c *Client) FetchDataset(ctx context.Context, callerID string, dataset Dataset) ([]Record, error) {
	return c.fetch(ctx, callerID, dataset, nil)
}

// FetchDatasetSince returns records with timestamps strictly greater than
// since, an epoch-millisecond lower bound. The sensor applies the filter;
// records at or below the bound are not re-checked client side.
func (c *Client) FetchDatasetSince(ctx context.Context, callerID string, dataset Dataset, since int64) ([]Record, error) {
	return c.fetch(ctx, callerID, dataset, &since)
}

func (c *Client) fetch(ctx context.Context, callerID string, dataset Dataset, since *int64) ([]Record, error) {
	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	endpoint := fmt.Sprintf("%s/api/v2/datasets/%s.json", c.baseURL, dataset.WireName())
	req, err := http.NewRequestWithContext(callCtx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &FetchError{Dataset: dataset, Kind: ErrorTransport, Err: err}
	}

	query := req.URL.Query()
	if callerID != "" {
		query.Set("id", callerID)
	}
	if since != nil {
		query.Set("since", strconv.FormatInt(*since, 10))
	}
	req.URL.RawQuery = query.Encode()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.clientID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, classifyRequestError(dataset, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
		return nil, &FetchError{
			Dataset: dataset,
			Kind:    ErrorStatus,
			Status:  resp.StatusCode,
			Message: strings.TrimSpace(string(body)),
		}
	}

	decoder := json.NewDecoder(resp.Body)
	decoder.UseNumber()
	var records []Record
	if err := decoder.Decode(&records); err != nil {
		return nil, &FetchError{Dataset: dataset, Kind: ErrorResponse, Message: "decode response body", Err: err}
	}
	for i, record := range records {
		if _, ok := record.Timestamp(); !ok {
			return nil, &FetchError{
				Dataset: dataset,
				Kind:    ErrorResponse,
				Message: fmt.Sprintf("record %d is missing a numeric timestamp", i),
			}
		}
	}
	return records, nil
}

// Probe checks that the sensor endpoint is reachable. Any HTTP response,
// including an error status, counts as reachable.
func (c *Client) Probe(ctx context.Context) error {
	callCtx, cancel := context.WithTimeout(ctx, timeouts.SensorProbe)
	defer cancel()

	req, err := http.NewRequestWithContext(callCtx, http.MethodGet, c.baseURL+"/api/v2/datasets", nil)
	if err != nil {
		return fmt.Errorf("build probe request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.clientID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("probe %s: %w", c.baseURL, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, errorBodyLimit))
	return nil
}

func classifyRequestError(dataset Dataset, err error) *FetchError {
	kind := ErrorTransport
	if errors.Is(err, context.DeadlineExceeded) {
		kind = ErrorTimeout
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		kind = ErrorTimeout
	}
	return &FetchError{Dataset: dataset, Kind: kind, Err: err}
}
