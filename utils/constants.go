// File: utils/constants.go
package utils

// AvailabilityCachePrefix is the prefix used for Redis availability cache keys.
const AvailabilityCachePrefix = "availability:"

// AvailabilityVersionKey holds the cache-invalidation counter for availability.
const AvailabilityVersionKey = "availability:version"
