package constants

// Limits for user supplied values
const (
	// Largest page the TMDB changes listings accept
	MaxChangesPage = 1000

	// TMDB rejects change windows longer than two weeks
	MaxChangeWindowDays = 14

	// Upper bound on CACHE_SIZE
	MaxCacheSize = 100000
)
