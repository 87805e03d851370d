// Copyright 2026 The Lightbox Authors
// SPDX-License-Identifier: Apache-2.0

package photoapi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/lightbox-labs/lightbox/lib/codec"
	"github.com/lightbox-labs/lightbox/lib/feed"
	"github.com/lightbox-labs/lightbox/lib/netutil"
)

// Endpoint defaults, relative to BaseURL.
const (
	DefaultSearchPath = "/photos/search"
	DefaultListPath   = "/photos"
	DefaultPerPage    = 10
)

// RequestIDHeader carries the per-request correlation ID.
const RequestIDHeader = "X-Request-ID"

// Config holds configuration for NewClient.
type Config struct {
	// BaseURL is the service root, e.g. "http://localhost:3004".
	// Required; must be http or https.
	BaseURL string

	// SearchPath and ListPath are the endpoint paths. Default to
	// DefaultSearchPath and DefaultListPath.
	SearchPath string
	ListPath   string

	// PerPage is the page size sent with every request. Defaults to
	// DefaultPerPage.
	PerPage int

	// Format selects the response encoding. Defaults to JSON.
	Format codec.Format

	// RequestsPerSecond paces outgoing requests. Zero or negative
	// disables pacing. Burst is the bucket size, default 1.
	RequestsPerSecond float64
	Burst             int

	// ETagEntries bounds the conditional-GET cache. Defaults to 256.
	ETagEntries int

	// HTTPClient performs requests. Defaults to http.DefaultClient.
	HTTPClient *http.Client

	// Logger receives request diagnostics. Nil discards.
	Logger *slog.Logger
}

// Client fetches photo pages over HTTP. It implements feed.Gateway and
// is safe for concurrent use.
type Client struct {
	baseURL    string
	searchPath string
	listPath   string
	perPage    int
	format     codec.Format
	httpClient *http.Client
	limiter    *rate.Limiter
	etagCache  *etagCache
	logger     *slog.Logger
}

var _ feed.Gateway = (*Client)(nil)

// NewClient validates config and returns a Client.
func NewClient(config Config) (*Client, error) {
	baseURL := strings.TrimRight(config.BaseURL, "/")
	if baseURL == "" {
		return nil, fmt.Errorf("photoapi: BaseURL is required")
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("photoapi: parsing BaseURL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("photoapi: BaseURL must be http or https (got %q)", config.BaseURL)
	}
	if config.PerPage < 0 {
		return nil, fmt.Errorf("photoapi: PerPage must not be negative (got %d)", config.PerPage)
	}
	format, err := codec.ParseFormat(string(config.Format))
	if err != nil {
		return nil, fmt.Errorf("photoapi: %w", err)
	}

	client := &Client{
		baseURL:    baseURL,
		searchPath: orDefault(config.SearchPath, DefaultSearchPath),
		listPath:   orDefault(config.ListPath, DefaultListPath),
		perPage:    config.PerPage,
		format:     format,
		httpClient: config.HTTPClient,
		limiter:    rate.NewLimiter(rate.Inf, 1),
		etagCache:  newETagCache(config.ETagEntries),
		logger:     config.Logger,
	}
	if client.perPage == 0 {
		client.perPage = DefaultPerPage
	}
	if client.httpClient == nil {
		client.httpClient = http.DefaultClient
	}
	if client.logger == nil {
		client.logger = slog.New(slog.DiscardHandler)
	}
	if config.RequestsPerSecond > 0 {
		burst := config.Burst
		if burst <= 0 {
			burst = 1
		}
		client.limiter = rate.NewLimiter(rate.Limit(config.RequestsPerSecond), burst)
	}
	return client, nil
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

// Fetch retrieves one page. Errors are *feed.FetchError values
// classified as network or decode failures.
func (client *Client) Fetch(ctx context.Context, request feed.Request) (feed.PageResult, error) {
	requestURL := client.pageURL(request)

	if err := client.limiter.Wait(ctx); err != nil {
		return feed.PageResult{}, feed.NetworkError(fmt.Errorf("photoapi: waiting for request slot: %w", err))
	}

	body, format, err := client.get(ctx, requestURL)
	if err != nil {
		return feed.PageResult{}, err
	}

	var envelope Envelope
	if err := codec.Decode(format, body, &envelope); err != nil {
		return feed.PageResult{}, feed.DecodeError(fmt.Errorf("photoapi: decoding %s page: %w", format, err))
	}
	return client.pageResult(envelope, request)
}

// pageURL builds the endpoint URL for request.
func (client *Client) pageURL(request feed.Request) string {
	values := url.Values{}
	path := client.listPath
	if !request.Query.IsListing() {
		path = client.searchPath
		values.Set("text", request.Query.Text)
	}
	values.Set("page", strconv.Itoa(request.Page))
	values.Set("per_page", strconv.Itoa(client.perPage))
	values.Set("format", string(client.format))
	return client.baseURL + path + "?" + values.Encode()
}

// get performs a conditional GET and returns the body with the format
// it is encoded in.
func (client *Client) get(ctx context.Context, requestURL string) ([]byte, codec.Format, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, "", feed.NetworkError(fmt.Errorf("photoapi: creating request: %w", err))
	}
	requestID := uuid.NewString()
	request.Header.Set(RequestIDHeader, requestID)
	request.Header.Set("Accept", client.format.ContentType())

	entry, cached := client.etagCache.lookup(requestURL)
	if cached {
		request.Header.Set("If-None-Match", entry.etag)
	}

	response, err := client.httpClient.Do(request)
	if err != nil {
		return nil, "", feed.NetworkError(fmt.Errorf("photoapi: GET %s: %w", requestURL, err))
	}
	defer response.Body.Close()

	logger := client.logger.With("request_id", requestID, "url", requestURL)

	if response.StatusCode == http.StatusNotModified && cached {
		logger.Debug("page served from etag cache")
		return entry.body, entry.format, nil
	}

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		apiError := parseAPIError(response.StatusCode, []byte(netutil.ErrorBody(response.Body)), requestID)
		attributes := []any{"status", response.StatusCode, "message", apiError.Message}
		switch {
		case IsServerError(apiError):
			logger.Warn("photo service failed", attributes...)
		case IsNotFound(apiError):
			// The endpoint paths come from configuration.
			logger.Error("photo service endpoint not found", attributes...)
		default:
			logger.Debug("photo service rejected request", attributes...)
		}
		return nil, "", feed.NetworkError(apiError)
	}

	body, err := netutil.ReadResponse(response.Body)
	if err != nil {
		return nil, "", feed.NetworkError(fmt.Errorf("photoapi: reading response body: %w", err))
	}

	format := codec.FormatForContentType(response.Header.Get("Content-Type"))
	if etag := response.Header.Get("ETag"); etag != "" {
		client.etagCache.put(etagEntry{url: requestURL, etag: etag, body: body, format: format})
	}
	logger.Debug("page fetched", "status", response.StatusCode, "bytes", len(body), "format", format)
	return body, format, nil
}

func (client *Client) pageResult(envelope Envelope, request feed.Request) (feed.PageResult, error) {
	switch envelope.Stat {
	case StatOK:
	case StatFail:
		return feed.PageResult{}, feed.NetworkError(&APIError{
			StatusCode: http.StatusOK,
			Code:       envelope.Code,
			Message:    envelope.Message,
		})
	default:
		return feed.PageResult{}, feed.DecodeError(fmt.Errorf("photoapi: unexpected stat %q", envelope.Stat))
	}
	if envelope.Photos == nil {
		return feed.PageResult{}, feed.DecodeError(errors.New("photoapi: response has no photos object"))
	}

	page := envelope.Photos
	items := make([]feed.Item, 0, len(page.Photo))
	for _, photo := range page.Photo {
		items = append(items, photo.Item())
	}
	number := page.Page
	if number == 0 {
		number = request.Page
	}
	return feed.PageResult{Items: items, Number: number, Pages: page.Pages}, nil
}
