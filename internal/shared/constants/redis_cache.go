package constants

import "time"

// Redis keys and TTLs
// Pattern: seatbook:{module}:{operation}:{params?}

// ================== CACHE TTL DURATIONS ==================

const (
	TTL_REALTIME_SHORT = 30 * time.Second // booked seats change with every submission
)

// ================== REDIS KEY PREFIXES ==================

const (
	CACHE_PREFIX      = "seatbook"
	RATE_LIMIT_PREFIX = CACHE_PREFIX + ":ratelimit"
)

// ================== SEATS MODULE ==================

const (
	// Flattened seat numbers of every stored record, in record order
	CACHE_KEY_BOOKED_SEATS = CACHE_PREFIX + ":seats:booked"
)
