package tmdb

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// Sizes lists every configured size token once, in configuration order.
func (c ImageConfig) Sizes() []string {
	seen := make(map[string]bool)
	var sizes []string
	for _, list := range [][]string{c.BackdropSizes, c.LogoSizes, c.PosterSizes, c.ProfileSizes, c.StillSizes} {
		for _, size := range list {
			if !seen[size] {
				seen[size] = true
				sizes = append(sizes, size)
			}
		}
	}
	return sizes
}

// HasSize reports whether size is one of the configured tokens.
func (c ImageConfig) HasSize(size string) bool {
	if size == "" {
		return false
	}
	for _, s := range c.Sizes() {
		if s == size {
			return true
		}
	}
	return false
}

// URL composes the absolute URL of filePath rendered at size. It does no
// I/O and does not check that the file exists. An unconfigured size is an
// ErrInvalidSizeToken.
func (c ImageConfig) URL(size, filePath string, secure bool) (*url.URL, error) {
	if !c.HasSize(size) {
		return nil, NewInvalidSizeTokenError(size)
	}
	filePath = strings.TrimSpace(filePath)
	if strings.Trim(filePath, "/") == "" {
		return nil, NewInvalidArgumentError("empty image file path")
	}

	base := c.BaseURL
	if secure {
		base = c.SecureBaseURL
	}
	if base == "" {
		return nil, NewInvalidArgumentError(fmt.Sprintf("image base url not configured (secure: %t)", secure))
	}
	u, err := url.Parse(base)
	if err != nil {
		return nil, NewInvalidArgumentError(fmt.Sprintf("invalid image base url: %v", err))
	}
	if !u.IsAbs() || u.Host == "" {
		return nil, NewInvalidArgumentError(fmt.Sprintf("image base url %q is not absolute", base))
	}

	// size and every path segment are kept verbatim; '#', '?' and '%' are
	// escaped rather than read as URL syntax.
	basePath, baseRaw := strings.TrimRight(u.Path, "/"), strings.TrimRight(u.EscapedPath(), "/")
	segments := strings.Split(strings.TrimLeft(filePath, "/"), "/")
	escaped := make([]string, len(segments))
	for i, seg := range segments {
		escaped[i] = url.PathEscape(seg)
	}
	u.Path = basePath + "/" + size + "/" + strings.Join(segments, "/")
	u.RawPath = baseRaw + "/" + url.PathEscape(size) + "/" + strings.Join(escaped, "/")
	return u, nil
}

// GetConfiguration fetches the API configuration, which carries the image
// base URLs and size tokens ImageConfig.URL needs.
func (c *Client) GetConfiguration(ctx context.Context) (*Configuration, error) {
	var cfg Configuration
	if err := c.fetchInto(ctx, "/configuration", nil, &cfg); err != nil {
		return nil, err
	}
	if cfg.Images.BaseURL == "" && cfg.Images.SecureBaseURL == "" {
		return nil, NewMalformedResponseError("configuration has no image base url", nil)
	}
	return &cfg, nil
}
