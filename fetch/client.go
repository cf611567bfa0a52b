package fetch

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/saintfish/chardet"
	"golang.org/x/net/html/charset"
	"golang.org/x/time/rate"
)

// StatusError reports a non-2xx response. Callers treat it as "skip
// this element" rather than a transport failure.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d fetching %s", e.Code, e.URL)
}

// Client fetches SVG sources over HTTP.
type Client struct {
	resty   *resty.Client
	limiter *rate.Limiter
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets a per-request timeout. The default is none.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.resty.SetTimeout(d)
	}
}

// WithRateLimit caps outgoing requests per second, for documents with
// many placeholders. Zero or negative removes the cap.
func WithRateLimit(rps float64) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 0)
			return
		}
		burst := int(rps)
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithBaseURL resolves relative source URLs against base.
func WithBaseURL(base string) Option {
	return func(c *Client) {
		c.resty.SetBaseURL(base)
	}
}

// New creates a client with retries disabled and no default timeout.
func New(opts ...Option) *Client {
	r := resty.New()
	r.SetRetryCount(0).
		SetHeader("User-Agent", "svgkit-inline/1.0").
		SetHeader("Accept", "image/svg+xml, text/xml, */*")

	c := &Client{
		resty:   r,
		limiter: rate.NewLimiter(rate.Inf, 0),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchText issues one GET for url and returns the response body as
// decoded text. Non-2xx responses return a *StatusError.
func (c *Client) FetchText(ctx context.Context, url string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit wait: %w", err)
	}

	resp, err := c.resty.R().SetContext(ctx).Get(url)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", url, err)
	}
	if !resp.IsSuccess() {
		return "", &StatusError{URL: url, Code: resp.StatusCode()}
	}
	return decodeBody(resp.Body(), resp.Header().Get("Content-Type")), nil
}

// decodeBody converts a response body to UTF-8 text, honoring a
// declared charset and falling back to detection.
func decodeBody(body []byte, contentType string) string {
	if _, params, err := mime.ParseMediaType(contentType); err == nil {
		if cs, ok := params["charset"]; ok {
			if out, ok := convert(body, cs); ok {
				return out
			}
		}
	}

	detector := chardet.NewTextDetector()
	if res, err := detector.DetectBest(body); err == nil && res != nil {
		if out, ok := convert(body, strings.ToLower(res.Charset)); ok {
			return out
		}
	}
	return string(body)
}

func convert(body []byte, label string) (string, bool) {
	r, err := charset.NewReaderLabel(label, bytes.NewReader(body))
	if err != nil {
		return "", false
	}
	out, err := io.ReadAll(r)
	if err != nil {
		return "", false
	}
	return string(out), true
}
