// Package tmdb is a typed client for The Movie Database v3 API.
//
// Entity calls can append optional datasets ("extras") to the same round
// trip. The returned aggregate sets an extra's field only when it was
// requested: a nil field was not asked for, an empty one was asked for and
// the service had no data.
//
//	client, err := tmdb.NewClient(apiKey)
//	person, err := client.GetPerson(ctx, 62, tmdb.WithExtras(tmdb.ExtraCredits, tmdb.ExtraImages))
package tmdb

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/amaumene/gotmdb/pkg/httputil"
	"github.com/amaumene/gotmdb/pkg/logger"
	"github.com/amaumene/gotmdb/pkg/ratelimiter"
)

const (
	// DefaultBaseURL is the TMDB v3 API root.
	DefaultBaseURL = "https://api.themoviedb.org/3"

	defaultTimeout = 10 * time.Second
)

// Client is safe for concurrent use. It keeps no state between calls.
type Client struct {
	transport Transport
	decoder   Decoder
	logger    logger.Logger
}

type clientOptions struct {
	httpClient *http.Client
	baseURL    string
	limiter    ratelimiter.RateLimiter
	logger     logger.Logger
	decoder    Decoder
}

// ClientOption configures NewClient, New and NewHTTPTransport. Transport
// specific options are ignored by New.
type ClientOption func(*clientOptions)

// WithHTTPClient replaces the pooled default HTTP client.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(o *clientOptions) {
		o.httpClient = c
	}
}

// WithBaseURL points the transport at another API root, e.g. a test server.
func WithBaseURL(baseURL string) ClientOption {
	return func(o *clientOptions) {
		o.baseURL = baseURL
	}
}

// WithRateLimiter throttles the transport. Pass nil to disable throttling.
func WithRateLimiter(l ratelimiter.RateLimiter) ClientOption {
	return func(o *clientOptions) {
		o.limiter = l
	}
}

func WithLogger(l logger.Logger) ClientOption {
	return func(o *clientOptions) {
		o.logger = l
	}
}

func WithDecoder(d Decoder) ClientOption {
	return func(o *clientOptions) {
		o.decoder = d
	}
}

func newClientOptions(opts []ClientOption) clientOptions {
	o := clientOptions{
		baseURL: DefaultBaseURL,
		limiter: ratelimiter.NewTokenBucket(20, 5),
		logger:  logger.Nop(),
		decoder: JSONDecoder{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.httpClient == nil {
		o.httpClient = httputil.NewHTTPClient(defaultTimeout)
	}
	if o.logger == nil {
		o.logger = logger.Nop()
	}
	if o.decoder == nil {
		o.decoder = JSONDecoder{}
	}
	return o
}

// NewClient returns a Client using an HTTPTransport authenticated with
// credential (v3 API key or v4 read access token).
func NewClient(credential string, opts ...ClientOption) (*Client, error) {
	transport, err := NewHTTPTransport(credential, opts...)
	if err != nil {
		return nil, err
	}
	return New(transport, opts...), nil
}

// New returns a Client issuing requests through transport.
func New(transport Transport, opts ...ClientOption) *Client {
	o := newClientOptions(opts)
	return &Client{
		transport: transport,
		decoder:   o.decoder,
		logger:    o.logger,
	}
}

type statusBody struct {
	StatusCode    int    `json:"status_code"`
	StatusMessage string `json:"status_message"`
}

// fetch runs one request and maps non-success statuses to errors.
func (c *Client) fetch(ctx context.Context, path string, params url.Values) ([]byte, error) {
	resp, err := c.transport.Get(ctx, path, params)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp.Body, nil
	}

	var status statusBody
	if len(resp.Body) > 0 {
		// best effort: error bodies are not always JSON
		_ = c.decoder.Unmarshal(resp.Body, &status)
	}

	if resp.StatusCode == http.StatusNotFound {
		c.logger.Debugf("[TMDB] %s not found", path)
		return nil, NewNotFoundError(path, status.StatusMessage)
	}
	c.logger.Warnf("[TMDB] request %s failed: status %d %s", path, resp.StatusCode, status.StatusMessage)
	return nil, NewRequestFailedError(path, resp.StatusCode, status.StatusMessage)
}

func (c *Client) fetchRaw(ctx context.Context, path string, params url.Values) (RawResponse, error) {
	body, err := c.fetch(ctx, path, params)
	if err != nil {
		return nil, err
	}
	raw, err := c.decoder.Decode(body)
	if err != nil {
		return nil, NewMalformedResponseError(fmt.Sprintf("failed to decode %s", path), err)
	}
	return raw, nil
}

func (c *Client) fetchInto(ctx context.Context, path string, params url.Values, v interface{}) error {
	body, err := c.fetch(ctx, path, params)
	if err != nil {
		return err
	}
	// a null body would decode into a zero value that looks valid
	if !isObject(body) {
		return NewMalformedResponseError(fmt.Sprintf("failed to decode %s", path), errNotObject)
	}
	if err := c.decoder.Unmarshal(body, v); err != nil {
		return NewMalformedResponseError(fmt.Sprintf("failed to decode %s", path), err)
	}
	return nil
}

// fetchProjection serves the standalone extra endpoints. The result is
// normalized exactly like the embedded copy so both compare equal.
func fetchProjection[T any, P interface {
	*T
	extra
}](ctx context.Context, c *Client, path string, params url.Values, parentID int) (P, error) {
	p := P(new(T))
	if err := c.fetchInto(ctx, path, params, p); err != nil {
		return nil, err
	}
	if err := p.normalize(parentID); err != nil {
		return nil, NewMalformedResponseError(fmt.Sprintf("failed to decode %s", path), err)
	}
	return p, nil
}

func checkID(kind string, id int) error {
	if id <= 0 {
		return NewInvalidArgumentError(fmt.Sprintf("invalid %s id %d", kind, id))
	}
	return nil
}

// logUnsolicited notes extras the service sent without being asked; the
// merger drops them.
func (c *Client) logUnsolicited(sc schema, id int, raw RawResponse, selected Extras) {
	if keys := unsolicited(sc, raw, selected); len(keys) > 0 {
		c.logger.Debugf("[TMDB] ignoring unsolicited extras %v for %s %d", keys, sc.name, id)
	}
}
