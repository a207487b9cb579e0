// Package splice turns float-second splice ranges, as carried in
// transcode job descriptions, into frame-accurate timecode spans.
package splice

import (
	"errors"
	"fmt"
	"sort"

	cbstc "github.com/cbsinteractive/pkg/timecode"
	"github.com/cbsinteractive/pkg/video"

	"github.com/zsiec/timecode/pkg/timecode"
)

// ErrEmptyFramerate is returned for a framerate with a zero numerator or
// denominator.
var ErrEmptyFramerate = errors.New("empty framerate")

// Span is a timecode interval from Start up to End.
type Span struct {
	Start timecode.Time `json:"start"`
	End   timecode.Time `json:"end"`
}

// RateFromFramerate converts a fractional framerate into a timecode rate
// with 80 subframes. The fraction is reduced, so 60/2 becomes 30/1.
func RateFromFramerate(f video.Framerate, drop bool) (timecode.Rate, error) {
	if f.Empty() || f.Numerator < 0 || f.Denominator < 0 {
		return timecode.Rate{}, fmt.Errorf("%w: %d/%d", ErrEmptyFramerate, f.Numerator, f.Denominator)
	}

	g := gcd(f.Numerator, f.Denominator)
	r := timecode.Rate{
		Num:       int32(f.Numerator / g),
		Den:       int32(f.Denominator / g),
		Drop:      drop,
		Subframes: 80,
	}
	if err := r.Validate(); err != nil {
		return timecode.Rate{}, err
	}
	return r, nil
}

// FromRange converts a range in seconds to a span at rate r. Reversed
// ranges are put in order first.
func FromRange(rg cbstc.Range, r timecode.Rate) Span {
	rg = rg.Canon()
	return Span{
		Start: timecode.SecondsToTime(rg[0], r),
		End:   timecode.SecondsToTime(rg[1], r),
	}
}

// FromSplice converts every range of s, ordered by start time.
func FromSplice(s cbstc.Splice, r timecode.Rate) []Span {
	sorted := make(cbstc.Splice, len(s))
	copy(sorted, s)
	sort.Sort(sorted)

	spans := make([]Span, 0, len(sorted))
	for _, rg := range sorted {
		spans = append(spans, FromRange(rg, r))
	}
	return spans
}

// Bounds returns the smallest span covering every range of s.
func Bounds(s cbstc.Splice, r timecode.Rate) Span {
	return FromRange(s.Union(), r)
}

// ToRange converts sp back into a range in seconds.
func ToRange(sp Span, r timecode.Rate) cbstc.Range {
	return cbstc.Range{timecode.ToSeconds(sp.Start, r), timecode.ToSeconds(sp.End, r)}
}

// Duration returns the length of sp as a timecode.
func Duration(sp Span, r timecode.Rate) timecode.Time {
	return timecode.Subtract(sp.End, sp.Start, r)
}

// Frames returns the number of whole frames sp covers.
func Frames(sp Span, r timecode.Rate) int64 {
	return timecode.ToFrameNumber(sp.End, r) - timecode.ToFrameNumber(sp.Start, r)
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
