package timecode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompareTime(t *testing.T) {
	base := Time{Hour: 1, Minute: 2, Second: 3, Frame: 4, Subframe: 5}

	tests := []struct {
		name     string
		other    Time
		expected int
	}{
		{"equal", base, 0},
		{"earlier hour", Time{Hour: 0, Minute: 59}, 1},
		{"later minute", Time{Hour: 1, Minute: 3}, -1},
		{"later frame", Time{Hour: 1, Minute: 2, Second: 3, Frame: 5}, -1},
		{"earlier subframe", Time{Hour: 1, Minute: 2, Second: 3, Frame: 4, Subframe: 4}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CompareTime(FPS25, base, tt.other))
			assert.Equal(t, -tt.expected, CompareTime(FPS25, tt.other, base))
		})
	}
}

func TestCompareDate(t *testing.T) {
	assert.Equal(t, 0, CompareDate(Date{2008, 1, 1, 0}, Date{2008, 1, 1, 0}))
	assert.Equal(t, 1, CompareDate(Date{2009, 1, 1, 0}, Date{2008, 12, 31, 0}))
	assert.Equal(t, -1, CompareDate(Date{2008, 1, 1, 0}, Date{2008, 2, 1, 0}))
	assert.Equal(t, -1, CompareDate(Date{2008, 1, 1, 0}, Date{2008, 1, 2, 0}))
	assert.Equal(t, 1, CompareDate(Date{2008, 1, 1, 60}, Date{2008, 1, 1, 0}))
}

func TestCompareDateTime(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Timecode
		expected int
	}{
		{
			name:     "paris equals london",
			a:        Timecode{Time: Time{Hour: 13}, Date: Date{2008, 6, 1, 60}},
			b:        Timecode{Time: Time{Hour: 12}, Date: Date{2008, 6, 1, 0}},
			expected: 0,
		},
		{
			name:     "new york after london",
			a:        Timecode{Time: Time{Minute: 30}, Date: Date{2008, 6, 1, -300}},
			b:        Timecode{Time: Time{Hour: 3}, Date: Date{2008, 6, 1, 0}},
			expected: 1,
		},
		{
			name:     "auckland shifts back across leap day",
			a:        Timecode{Time: Time{Hour: 10}, Date: Date{2008, 3, 1, 780}},
			b:        Timecode{Time: Time{Hour: 22}, Date: Date{2008, 2, 29, 0}},
			expected: -1,
		},
		{
			name:     "tokyo shifts back across new year",
			a:        Timecode{Time: Time{Hour: 8}, Date: Date{2008, 1, 1, 540}},
			b:        Timecode{Time: Time{Hour: 23, Minute: 30}, Date: Date{2007, 12, 31, 0}},
			expected: -1,
		},
		{
			name:     "same zone compares fields",
			a:        Timecode{Time: Time{Hour: 1, Frame: 3}, Date: Date{2008, 6, 1, 120}},
			b:        Timecode{Time: Time{Hour: 1, Frame: 2}, Date: Date{2008, 6, 1, 120}},
			expected: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CompareDateTime(FPS25, tt.a, tt.b))
			assert.Equal(t, -tt.expected, CompareDateTime(FPS25, tt.b, tt.a))
		})
	}
}
