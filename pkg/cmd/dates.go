package cmd

import (
	"fmt"
	"time"

	"github.com/araddon/dateparse"
)

// ParseDate reads a --since or --before value in local time. Empty means
// no bound.
func ParseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := dateparse.ParseLocal(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", value, err)
	}
	return t, nil
}
