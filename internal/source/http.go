package source

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"turnovercli/internal/dataprocessing"
	"turnovercli/internal/errors"
)

const (
	defaultRequestsPerSecond = 4
	defaultTimeout           = 60 * time.Second
)

// HTTPOptions configures a remote fetcher.
type HTTPOptions struct {
	RequestsPerSecond float64
	Timeout           time.Duration
	Logger            *slog.Logger
}

// HTTP fetches source files over HTTP GET, one request per catalog key,
// rate limited on the client side.
type HTTP struct {
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
	logger  *slog.Logger
}

// NewHTTP creates a remote fetcher for the given base URL. Keys are joined
// onto the base URL path.
func NewHTTP(baseURL string, opts HTTPOptions) *HTTP {
	if opts.RequestsPerSecond <= 0 {
		opts.RequestsPerSecond = defaultRequestsPerSecond
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &HTTP{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: opts.Timeout},
		limiter: rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 1),
		logger:  opts.Logger,
	}
}

// Fetch downloads and decodes one source file by its catalog key.
func (h *HTTP) Fetch(ctx context.Context, key string) (*dataprocessing.WideTable, error) {
	if err := h.limiter.Wait(ctx); err != nil {
		return nil, errors.NewFetchError("rate limiter wait interrupted", err)
	}

	url := h.baseURL + "/" + strings.TrimLeft(key, "/")
	h.logger.Info("downloading source file", slog.String("url", url))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.NewFetchError(fmt.Sprintf("failed to build request for %s", url), err)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, errors.NewFetchError(fmt.Sprintf("failed to download %s", url), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.NewFetchError(
			fmt.Sprintf("unexpected status %d downloading %s", resp.StatusCode, url), nil)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.NewFetchError(fmt.Sprintf("failed to read body of %s", url), err)
	}
	return decodeTable(key, data)
}
