package tmdb

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/amaumene/gotmdb/pkg/logger"
	"github.com/amaumene/gotmdb/pkg/ratelimiter"
	"github.com/amaumene/gotmdb/pkg/security"
)

// Response is what a Transport hands back: the HTTP status and the raw body.
type Response struct {
	StatusCode int
	Body       []byte
}

// Transport performs one GET against the service. Implementations own
// authentication, rate limiting and retries; errors they return reach the
// caller of the Client unchanged.
type Transport interface {
	Get(ctx context.Context, path string, params url.Values) (*Response, error)
}

// HTTPTransport is the default Transport talking to the TMDB v3 API.
type HTTPTransport struct {
	httpClient *http.Client
	baseURL    string
	credential string
	kind       security.CredentialKind
	limiter    ratelimiter.RateLimiter
	logger     logger.Logger
	validator  *security.APIKeyValidator
}

// NewHTTPTransport builds a transport for credential, which may be a v3 API
// key or a v4 read access token.
func NewHTTPTransport(credential string, opts ...ClientOption) (*HTTPTransport, error) {
	o := newClientOptions(opts)
	validator := security.NewAPIKeyValidator()

	sanitized, kind := validator.Classify(credential)
	if kind == security.CredentialInvalid {
		return nil, NewInvalidArgumentError(fmt.Sprintf("invalid TMDB credential format (key: %s)", validator.MaskAPIKey(sanitized)))
	}

	return &HTTPTransport{
		httpClient: o.httpClient,
		baseURL:    strings.TrimRight(o.baseURL, "/"),
		credential: sanitized,
		kind:       kind,
		limiter:    o.limiter,
		logger:     o.logger,
		validator:  validator,
	}, nil
}

func (t *HTTPTransport) Get(ctx context.Context, path string, params url.Values) (*Response, error) {
	if t.limiter != nil {
		if err := t.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	query := url.Values{}
	for k, v := range params {
		query[k] = append([]string(nil), v...)
	}
	if t.kind == security.CredentialAPIKey {
		query.Set("api_key", t.credential)
	}

	endpoint := t.baseURL + path
	if encoded := query.Encode(); encoded != "" {
		endpoint += "?" + encoded
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if t.kind == security.CredentialReadToken {
		req.Header.Set("Authorization", "Bearer "+t.credential)
	}

	t.logger.Debugf("[TMDB] GET %s %s (key: %s)", path, params.Encode(), t.validator.MaskAPIKey(t.credential))

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	t.logger.Debugf("[TMDB] GET %s -> %d (%d bytes)", path, resp.StatusCode, len(body))
	return &Response{StatusCode: resp.StatusCode, Body: body}, nil
}
