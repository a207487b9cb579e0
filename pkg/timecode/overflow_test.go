package timecode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTime_Normalize(t *testing.T) {
	tests := []struct {
		name     string
		rate     Rate
		input    Time
		expected Time
		days     int32
	}{
		{
			name:     "in range is untouched",
			rate:     FPS25,
			input:    Time{Hour: 10, Minute: 20, Second: 30, Frame: 12, Subframe: 40},
			expected: Time{Hour: 10, Minute: 20, Second: 30, Frame: 12, Subframe: 40},
		},
		{
			name:     "negative frame borrows through midnight",
			rate:     FPS25,
			input:    Time{Frame: -1},
			expected: Time{Hour: 23, Minute: 59, Second: 59, Frame: 24},
			days:     -1,
		},
		{
			name:     "frame overflow carries into next day",
			rate:     FPS25,
			input:    Time{Hour: 23, Minute: 59, Second: 59, Frame: 25},
			expected: Time{},
			days:     1,
		},
		{
			name:     "negative hour and second",
			rate:     FPS25,
			input:    Time{Hour: -1, Second: -1},
			expected: Time{Hour: 22, Minute: 59, Second: 59},
			days:     -1,
		},
		{
			name:     "subframe overflow",
			rate:     FPS25,
			input:    Time{Hour: 1, Minute: 2, Second: 3, Frame: 4, Subframe: 85},
			expected: Time{Hour: 1, Minute: 2, Second: 3, Frame: 5, Subframe: 5},
		},
		{
			name:     "negative subframe",
			rate:     FPS25,
			input:    Time{Hour: 0, Minute: 0, Second: 0, Frame: 0, Subframe: -1},
			expected: Time{Hour: 23, Minute: 59, Second: 59, Frame: 24, Subframe: 79},
			days:     -1,
		},
		{
			name:     "minutes several hours negative",
			rate:     FPS25,
			input:    Time{Minute: -61},
			expected: Time{Hour: 22, Minute: 59},
			days:     -1,
		},
		{
			name:     "multiple days of hours",
			rate:     FPS30,
			input:    Time{Hour: 50},
			expected: Time{Hour: 2},
			days:     2,
		},
		{
			name:     "subframes disabled leaves subframe alone",
			rate:     Rate{Num: 25, Den: 1},
			input:    Time{Frame: 26, Subframe: 120},
			expected: Time{Second: 1, Frame: 1, Subframe: 120},
		},
		{
			name:     "drop-frame labels are not corrected",
			rate:     FPS2997DF,
			input:    Time{Second: 59, Frame: 30},
			expected: Time{Minute: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.input
			days := got.Normalize(tt.rate)
			assert.Equal(t, tt.expected, got)
			assert.Equal(t, tt.days, days)
		})
	}
}

func TestFloorDiv(t *testing.T) {
	assert.Equal(t, int64(2), floorDiv(5, 2))
	assert.Equal(t, int64(-3), floorDiv(-5, 2))
	assert.Equal(t, int64(-1), floorDiv(-1, 60))
	assert.Equal(t, int64(0), floorDiv(0, 60))
	assert.Equal(t, int64(-1), floorDiv(-60, 60))
}
