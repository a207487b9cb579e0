package timecode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	newYear := Timecode{
		Time: Time{Hour: 23, Minute: 59, Second: 59, Frame: 29},
		Date: Date{Year: 2008, Month: 12, Day: 31},
		Rate: FPS30,
	}
	drop := Timecode{
		Time: Time{Hour: 1, Minute: 2, Second: 3, Frame: 4, Subframe: 7},
		Date: Date{Year: 2009, Month: 7, Day: 4, Timezone: -330},
		Rate: FPS2997DF,
	}
	millis := Timecode{
		Time: Time{Second: 1, Frame: 5, Subframe: 42},
		Date: Date{Year: 1970, Month: 1, Day: 1},
		Rate: FPSMS,
	}

	tests := []struct {
		name     string
		layout   string
		tc       Timecode
		expected string
	}{
		{"full preset", "%Z", newYear, "2008-12-31 23:59:59:29.00 +0000 @30 fps"},
		{"drop full preset", "%Z", drop, "2009-07-04 01:02:03;04.07 -0530 @29.97df fps"},
		{"time preset", "%T", drop, "01:02:03;04"},
		{"time preset non-drop", "%T", newYear, "23:59:59:29"},
		{"millisecond widths", "%F.%s", millis, "005.042"},
		{"short year", "%y/%m/%d", newYear, "08/12/31"},
		{"rate", "%f", drop, "29.97df"},
		{"separators", "%H%:%M%;%S", newYear, "23:59:59"},
		{"tab and percent", "%H%t100%%", newYear, "23\t100%"},
		{"unknown directive", "%q%H", newYear, "%q23"},
		{"trailing percent", "%H%", newYear, "23%"},
		{"no subframes", "%s", Timecode{Time: Time{Subframe: 3}, Rate: Rate{Num: 25, Den: 1}}, "3"},
		{"literal text", "tc=%T!", newYear, "tc=23:59:59:29!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Format(tt.layout, tt.tc))
		})
	}
}

func TestTimecode_String(t *testing.T) {
	tc := Timecode{
		Time: Time{Hour: 23, Minute: 59, Second: 59, Frame: 29},
		Date: Date{Year: 2008, Month: 12, Day: 31},
		Rate: FPS30,
	}
	assert.Equal(t, "2008-12-31 23:59:59:29.00 +0000 @30 fps", tc.String())
}

func TestDigits(t *testing.T) {
	assert.Equal(t, 2, digits(29, 2))
	assert.Equal(t, 3, digits(999, 2))
	assert.Equal(t, 1, digits(-1, 1))
	assert.Equal(t, 2, digits(79, 1))
}
