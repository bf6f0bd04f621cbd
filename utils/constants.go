// File: utils/constants.go
package utils

import "time"

// AuthCachePrefix is the prefix used for Redis authorization cache keys.
const AuthCachePrefix = "auth:"

// AuthCacheTTL is the time-to-live for authorization cache entries.
const AuthCacheTTL = 10 * time.Minute

// AvailabilityCachePrefix is the prefix for cached availability resolutions.
const AvailabilityCachePrefix = "avail:"

// AvailabilityCacheTTL keeps resolved slot lists hot for a short window only;
// every booking or slot write invalidates the key outright.
const AvailabilityCacheTTL = 30 * time.Second
