package timecode

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTime_String(t *testing.T) {
	assert.Equal(t, "01:02:03:04.005", Time{1, 2, 3, 4, 5}.String())
}

func TestTimecode_Reset(t *testing.T) {
	tc := Timecode{
		Time: Time{Hour: 5, Frame: 3},
		Date: Date{Year: 2009, Month: 3, Day: 4, Timezone: 60},
		Rate: FPS25,
	}
	tc.Reset()
	assert.Equal(t, Timecode{Date: Date{Year: 1970, Month: 1, Day: 1}, Rate: FPS25}, tc)
}

func TestFromTime(t *testing.T) {
	zone := time.FixedZone("CET", 3600)
	in := time.Date(2008, 2, 29, 13, 45, 30, 500000000, zone)

	tc := FromTime(in, FPS25)
	assert.Equal(t, Date{Year: 2008, Month: 2, Day: 29, Timezone: 60}, tc.Date)
	assert.Equal(t, Time{Hour: 13, Minute: 45, Second: 30, Frame: 12, Subframe: 40}, tc.Time)
	assert.Equal(t, FPS25, tc.Rate)

	out := tc.Wallclock()
	assert.True(t, in.Equal(out), "expected %s, got %s", in, out)
	_, offset := out.Zone()
	assert.Equal(t, 3600, offset)
}

func TestFromTime_DropFrame(t *testing.T) {
	in := time.Date(2009, 1, 1, 0, 1, 0, 0, time.UTC)
	tc := FromTime(in, FPS2997DF)
	assert.Equal(t, Time{Minute: 1, Frame: 2}, tc.Time)

	in = time.Date(2009, 1, 1, 0, 10, 0, 0, time.UTC)
	tc = FromTime(in, FPS2997DF)
	assert.Equal(t, Time{Minute: 10}, tc.Time)
}
