package reading

import (
	"time"

	"codeberg.org/veland/scrubmon/internal/errors"
)

// Retention windows offered to the operator. The selector is a fixed set;
// arbitrary durations are rejected so every deployment renders comparable
// windows.
var retentionWindows = map[string]time.Duration{
	"30m": 30 * time.Minute,
	"1h":  time.Hour,
	"4h":  4 * time.Hour,
	"12h": 12 * time.Hour,
	"24h": 24 * time.Hour,
	"7d":  7 * 24 * time.Hour,
}

// DefaultRetention is the window used when none is configured.
const DefaultRetention = "1h"

// ParseRetention resolves a retention selector to its duration.
func ParseRetention(name string) (time.Duration, error) {
	d, ok := retentionWindows[name]
	if !ok {
		return 0, errors.New().WithData(errors.ErrInvalidRetention, name)
	}

	return d, nil
}

// RetentionNames lists the valid selector values, shortest window first.
func RetentionNames() []string {
	return []string{"30m", "1h", "4h", "12h", "24h", "7d"}
}
