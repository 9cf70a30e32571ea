// Package constants defines application-wide constants and default values.
package constants

const (
	// Application metadata
	AppName        = "gotmdb"
	AppVersion     = "1.0.0"
	AppDescription = "TMDB person and movie metadata client and caching proxy"

	// Default configuration values
	DefaultPort     = "5000"
	DefaultLogLevel = "info"
	DefaultBaseURL  = "https://api.themoviedb.org/3"

	// Cache settings
	DefaultCacheSize = 1000
	DefaultCacheTTL  = 6 // hours

	// Rate limiting
	TMDBRateLimit = 20 // requests per second
	TMDBRateBurst = 5  // burst capacity
)

// Proxy query parameters.
const (
	ParamLanguage = "language"
	ParamAppend   = "append"
	ParamStart    = "start_date"
	ParamEnd      = "end_date"
	ParamPage     = "page"
	ParamSize     = "size"
	ParamPath     = "path"
	ParamSecure   = "secure"
)
