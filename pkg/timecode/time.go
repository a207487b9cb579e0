package timecode

import (
	"fmt"
	"math"
	"time"
)

// Time is a timecode time-of-day: HH:MM:SS:FF.sub. The frame radix comes
// from the Rate the value is used with. Fields may hold out-of-range or
// negative values until Normalize is called.
type Time struct {
	Hour     int32 `json:"hour"`
	Minute   int32 `json:"minute"`
	Second   int32 `json:"second"`
	Frame    int32 `json:"frame"`
	Subframe int32 `json:"subframe"`
}

// String formats t as "HH:MM:SS:FF.sss".
func (t Time) String() string {
	return fmt.Sprintf("%02d:%02d:%02d:%02d.%03d", t.Hour, t.Minute, t.Second, t.Frame, t.Subframe)
}

// Date is a calendar date with a timezone offset in minutes east of UTC
// (Paris: 60, New York: -300).
type Date struct {
	Year     int32 `json:"year"`
	Month    int32 `json:"month"`
	Day      int32 `json:"day"`
	Timezone int32 `json:"timezone"`
}

// Timecode is a self-describing instant: a time-of-day, the date it falls
// on and the frame rate that defines the time's radix.
type Timecode struct {
	Time Time `json:"time"`
	Date Date `json:"date"`
	Rate Rate `json:"rate"`
}

// Reset moves tc to the unix epoch, 1970-01-01 00:00:00:00 UTC, keeping
// its rate.
func (tc *Timecode) Reset() {
	tc.Time = Time{}
	tc.Date = Date{Year: 1970, Month: 1, Day: 1}
}

// String formats tc with the %Z preset, e.g.
// "2008-12-31 23:59:59:29.00 +0000 @30 fps".
func (tc Timecode) String() string {
	return Format("%Z", tc)
}

// FromTime converts a wallclock time into a Timecode at rate r. The
// sub-second part is expressed in frames and subframes, truncated towards
// zero. Drop-frame labels that do not exist are moved to frame 2.
func FromTime(t time.Time, r Rate) Timecode {
	_, offset := t.Zone()
	tc := Timecode{
		Date: Date{
			Year:     int32(t.Year()),
			Month:    int32(t.Month()),
			Day:      int32(t.Day()),
			Timezone: int32(offset / 60),
		},
		Time: Time{
			Hour:   int32(t.Hour()),
			Minute: int32(t.Minute()),
			Second: int32(t.Second()),
		},
		Rate: r,
	}

	frames := float64(t.Nanosecond()) / float64(time.Second) * r.Float64()
	whole := math.Floor(frames)
	tc.Time.Frame = int32(whole)
	if r.Subframes > 0 {
		tc.Time.Subframe = int32(math.Floor((frames - whole) * float64(r.Subframes)))
	}
	if r.Drop && tc.Time.Minute%10 != 0 && tc.Time.Second == 0 && tc.Time.Frame < 2 {
		tc.Time.Frame = 2
	}
	return tc
}

// Wallclock converts tc back into a time.Time in a fixed zone matching
// the Timecode's offset.
func (tc Timecode) Wallclock() time.Time {
	frames := float64(tc.Time.Frame)
	if tc.Rate.Subframes > 0 {
		frames += float64(tc.Time.Subframe) / float64(tc.Rate.Subframes)
	}
	nsec := int(math.Round(frames / tc.Rate.Float64() * float64(time.Second)))

	zone := time.FixedZone("", int(tc.Date.Timezone)*60)
	return time.Date(int(tc.Date.Year), time.Month(tc.Date.Month), int(tc.Date.Day),
		int(tc.Time.Hour), int(tc.Time.Minute), int(tc.Time.Second), nsec, zone)
}
