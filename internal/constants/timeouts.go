// Package constants defines timeout values used throughout the application.
package constants

import "time"

// Timeout constants for various operations
const (
	// Timeout of a single upstream TMDB request
	TMDBTimeout = 10 * time.Second

	// Request timeout for a whole proxy request
	RequestTimeout = 30 * time.Second

	// How long the image configuration is reused before being fetched again
	ConfigurationTTL = 24 * time.Hour

	// Interval between sweeps of expired cache entries
	CacheCleanupInterval = 1 * time.Hour

	// Grace period for in-flight requests on shutdown
	ShutdownTimeout = 10 * time.Second
)
