package security

import (
	"regexp"
	"strings"
)

var (
	validPattern   = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)
	unsafePattern  = regexp.MustCompile(`[^a-zA-Z0-9_.-]`)
	hexPattern     = regexp.MustCompile(`^[a-fA-F0-9]+$`)
	base64URLChunk = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
)

// CredentialKind tells how a TMDB credential is sent.
type CredentialKind int

const (
	CredentialInvalid CredentialKind = iota
	// CredentialAPIKey is a v3 API key, sent as the api_key query parameter.
	CredentialAPIKey
	// CredentialReadToken is a v4 read access token, sent as a bearer token.
	CredentialReadToken
)

// APIKeyValidator provides validation and handling of TMDB credentials
type APIKeyValidator struct {
	minLength int
	maxLength int
}

// NewAPIKeyValidator creates a new API key validator with reasonable defaults
func NewAPIKeyValidator() *APIKeyValidator {
	return &APIKeyValidator{
		minLength: 8,
		maxLength: 1024,
	}
}

// ValidateAPIKey validates API key format and length
func (v *APIKeyValidator) ValidateAPIKey(apiKey string) bool {
	if apiKey == "" {
		return false
	}

	if len(apiKey) < v.minLength || len(apiKey) > v.maxLength {
		return false
	}

	return validPattern.MatchString(apiKey)
}

// SanitizeAPIKey trims whitespace and drops characters that could inject
// into a URL or header. Dots are kept for JWT shaped tokens.
func (v *APIKeyValidator) SanitizeAPIKey(apiKey string) string {
	apiKey = strings.TrimSpace(apiKey)
	apiKey = strings.TrimPrefix(apiKey, "Bearer ")
	return unsafePattern.ReplaceAllString(apiKey, "")
}

// MaskAPIKey creates a masked version for logging (shows only first/last few chars)
func (v *APIKeyValidator) MaskAPIKey(apiKey string) string {
	if len(apiKey) == 0 {
		return "[empty]"
	}

	if len(apiKey) <= 8 {
		return "[***]"
	}

	return apiKey[:3] + "..." + apiKey[len(apiKey)-3:]
}

// IsValidTMDBKey validates a v3 API key: 32 hexadecimal characters.
func (v *APIKeyValidator) IsValidTMDBKey(apiKey string) bool {
	if !v.ValidateAPIKey(apiKey) {
		return false
	}

	if len(apiKey) != 32 {
		return false
	}

	return hexPattern.MatchString(apiKey)
}

// IsValidReadAccessToken validates a v4 read access token, which is a JWT:
// three non-empty base64url segments separated by dots.
func (v *APIKeyValidator) IsValidReadAccessToken(token string) bool {
	if !v.ValidateAPIKey(token) {
		return false
	}

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return false
	}
	for _, part := range parts {
		if part == "" || !base64URLChunk.MatchString(part) {
			return false
		}
	}
	return true
}

// Classify sanitizes credential and reports how it must be sent.
func (v *APIKeyValidator) Classify(credential string) (string, CredentialKind) {
	credential = v.SanitizeAPIKey(credential)
	switch {
	case v.IsValidTMDBKey(credential):
		return credential, CredentialAPIKey
	case v.IsValidReadAccessToken(credential):
		return credential, CredentialReadToken
	default:
		return credential, CredentialInvalid
	}
}
