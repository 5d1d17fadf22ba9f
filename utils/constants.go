// File: utils/constants.go
package utils

import "time"

// SessionPrefix is the prefix used for Redis dashboard session keys.
const SessionPrefix = "dashSession:"

// DraftPrefix is the prefix used for Redis preference draft keys.
const DraftPrefix = "prefDraft:"

// StatsCachePrefix is the prefix used for cached upstream statistics.
const StatsCachePrefix = "stats:carpool:"

// DefaultDraftTTL is how long an untouched preference draft survives.
const DefaultDraftTTL = 30 * time.Minute
