// Package cache memoises rate conversions. Conversions are pure, so an
// entry never goes stale; the TTL only bounds memory.
package cache

import (
	"context"
	"fmt"

	"github.com/zsiec/timecode/pkg/timecode"
)

// Cache stores converted times by key.
type Cache interface {
	// Get returns the cached time and whether it was present. A backend
	// failure is returned as an error, never as a miss.
	Get(ctx context.Context, key string) (timecode.Time, bool, error)
	Set(ctx context.Context, key string, t timecode.Time) error
}

// ConvertKey identifies the conversion of t from one rate to another. The
// key is exact: rates are written as their rational form, not the rounded
// display name.
func ConvertKey(from, to timecode.Rate, t timecode.Time) string {
	return fmt.Sprintf("%s|%s|%d:%d:%d:%d.%d",
		rateKey(from), rateKey(to),
		t.Hour, t.Minute, t.Second, t.Frame, t.Subframe)
}

func rateKey(r timecode.Rate) string {
	drop := "ndf"
	if r.Drop {
		drop = "df"
	}
	return fmt.Sprintf("%d/%d%s@%d", r.Num, r.Den, drop, r.Subframes)
}

// Noop never stores anything. It stands in when caching is disabled.
type Noop struct{}

func (Noop) Get(context.Context, string) (timecode.Time, bool, error) {
	return timecode.Time{}, false, nil
}

func (Noop) Set(context.Context, string, timecode.Time) error { return nil }
