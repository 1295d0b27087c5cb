package backend

import (
	"log/slog"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// DefaultEndpoint is the path of the country data endpoint.
const DefaultEndpoint = "/get_country_data"

// Options configures an HTTP client.
type Options struct {
	// BaseURL is the service root, e.g. "http://127.0.0.1:5000".
	BaseURL string
	// Endpoint is the path of the country data endpoint. Defaults to DefaultEndpoint.
	Endpoint string
	// Timeout bounds each request. Zero means no timeout.
	Timeout time.Duration
	// Logger receives request diagnostics at debug level. Nil discards them.
	Logger *slog.Logger
	// UserAgent is sent with every request when set.
	UserAgent string
}

// HTTP implements API over the service's REST endpoint.
// Requests are never retried.
type HTTP struct {
	baseURL  string
	endpoint string
	client   *resty.Client
	log      *slog.Logger
}

// New creates an HTTP client for the given options.
func New(opts Options) *HTTP {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	endpoint := opts.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if !strings.HasPrefix(endpoint, "/") {
		endpoint = "/" + endpoint
	}

	h := &HTTP{
		baseURL:  strings.TrimRight(opts.BaseURL, "/"),
		endpoint: endpoint,
		client:   resty.New(),
		log:      log,
	}
	h.client.SetBaseURL(h.baseURL)
	h.client.SetRetryCount(0)
	if opts.Timeout > 0 {
		h.client.SetTimeout(opts.Timeout)
	}
	if opts.UserAgent != "" {
		h.client.SetHeader("User-Agent", opts.UserAgent)
	}
	h.instrument()
	return h
}

// BaseURL returns the service root the client talks to.
func (h *HTTP) BaseURL() string { return h.baseURL }

// instrument logs every request and failure at debug level.
func (h *HTTP) instrument() {
	h.client.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		h.log.DebugContext(req.Context(), "start request", "method", req.Method, "url", req.URL)
		return nil
	})
	h.client.OnAfterResponse(func(_ *resty.Client, res *resty.Response) error {
		h.log.DebugContext(res.Request.Context(), "request finished",
			"method", res.Request.Method,
			"url", res.Request.URL,
			"status", res.StatusCode(),
			"duration", res.Time(),
		)
		return nil
	})
	h.client.OnError(func(req *resty.Request, err error) {
		h.log.DebugContext(req.Context(), "request failed", "method", req.Method, "url", req.URL, "err", err)
	})
}
