package context

import "errors"

// CTXKey - a type for context keys
type CTXKey string

const (
	// DatastoreCTXKey - the context key for getting the datastore
	DatastoreCTXKey CTXKey = "datastore"
	// RODatastoreCTXKey - the context key for getting the read only datastore
	RODatastoreCTXKey CTXKey = "ro_datastore"
	// PaginationOrderOptionsCTXKey - this is the pagination options context key
	PaginationOrderOptionsCTXKey CTXKey = "pagination_order_options"
	// ServiceKey - the key used for service context
	ServiceKey CTXKey = "service"
	// EnvironmentCTXKey - the key used for the environment
	EnvironmentCTXKey CTXKey = "environment"
	// DebugLoggingCTXKey - context key for debug logging
	DebugLoggingCTXKey CTXKey = "debug_logging"
	// LogLevelCTXKey - context key for the log level
	LogLevelCTXKey CTXKey = "log_level"
	// LogWriterCTXKey - context key for the log writer
	LogWriterCTXKey CTXKey = "log_writer"
	// RateLimiterBurstCTXKey - context key for the rate limiter burst
	RateLimiterBurstCTXKey CTXKey = "rate_limiter_burst"
	// VersionCTXKey - context key for version of code
	VersionCTXKey CTXKey = "version"
	// CommitCTXKey - context key for the commit of the code
	CommitCTXKey CTXKey = "commit"
	// BuildTimeCTXKey - context key for the build time of code
	BuildTimeCTXKey CTXKey = "build_time"
	// DatabaseURLCTXKey - context key for the database url
	DatabaseURLCTXKey CTXKey = "database_url"
	// CatalogCacheExpiryDurationCTXKey - context key for catalog cache expiry
	CatalogCacheExpiryDurationCTXKey CTXKey = "catalog_cache_expiry"
	// CatalogCachePurgeDurationCTXKey - context key for catalog cache purge
	CatalogCachePurgeDurationCTXKey CTXKey = "catalog_cache_purge"
)

var (
	// ErrNotInContext - error you get when you ask for something not in the context.
	ErrNotInContext = errors.New("failed to get value from context")
	// ErrValueWrongType - error you get when you ask for something and it is not the type you expected
	ErrValueWrongType = errors.New("context value of wrong type")
)
