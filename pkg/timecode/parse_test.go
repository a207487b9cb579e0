package timecode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTime(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		rate     Rate
		expected Time
		days     int32
	}{
		{"full", "01:02:03:04", FPS25, Time{1, 2, 3, 4, 0}, 0},
		{"frames only", "10", FPS25, Time{Frame: 10}, 0},
		{"seconds and frames", "1:00", FPS25, Time{Second: 1}, 0},
		{"semicolon with subframe", "01:02:03;04.40", FPS2997DF, Time{1, 2, 3, 4, 40}, 0},
		{"surrounding space", "  00:00:05:00 ", FPS25, Time{Second: 5}, 0},
		{"frame overflow", "00:00:00:25", FPS25, Time{Second: 1}, 0},
		{"day overflow", "23:59:59:25", FPS25, Time{}, 1},
		{"drop label skipped", "00:01:00:00", FPS2997DF, Time{Minute: 1, Frame: 2}, 0},
		{"drop tenth minute kept", "00:10:00:00", FPS2997DF, Time{Minute: 10}, 0},
		{"dot before frames", "10:00:00.15", FPS25, Time{Hour: 10, Frame: 15}, 0},
		{"dots only", "01.02.03.04", FPS25, Time{1, 2, 3, 4, 0}, 0},
		{"fifth field is subframe", "01:02:03:04:40", FPS25, Time{1, 2, 3, 4, 40}, 0},
		{"negative frame borrows a day", "00:00:00:-1", FPS25, Time{Hour: 23, Minute: 59, Second: 59, Frame: 24}, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, days, err := ParseTime(tt.input, tt.rate)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
			assert.Equal(t, tt.days, days)
		})
	}
}

func TestParseTime_Errors(t *testing.T) {
	for _, input := range []string{"", "  ", "1::2", ":1", "1:", "a:b", "1:2:3:4:5:6", "1..2", "1.x", "01:02:03:04."} {
		t.Run(input, func(t *testing.T) {
			_, _, err := ParseTime(input, FPS25)
			assert.ErrorIs(t, err, ErrInvalidTimecode)
		})
	}
}

func TestParsePackedTime(t *testing.T) {
	got, err := ParsePackedTime("01020304")
	require.NoError(t, err)
	assert.Equal(t, Time{1, 2, 3, 4, 0}, got)

	got, err = ParsePackedTime("304")
	require.NoError(t, err)
	assert.Equal(t, Time{Second: 3, Frame: 4}, got)

	for _, input := range []string{"", "123456789", "12ab", "-1"} {
		_, err := ParsePackedTime(input)
		assert.ErrorIs(t, err, ErrInvalidTimecode, input)
	}
}

func TestParseTimezone(t *testing.T) {
	tests := []struct {
		input    string
		expected int32
		wantErr  bool
	}{
		{"+0530", 330, false},
		{"-08:00", -480, false},
		{"+01", 60, false},
		{"+14:00", 840, false},
		{"-1200", -720, false},
		{"Z", 0, false},
		{"utc", 0, false},
		{"", 0, false},
		{"0530", 0, true},
		{"+5", 0, true},
		{"+0575", 0, true},
		{"+1500", 0, true},
		{"-1300", 0, true},
		{"+ab", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseTimezone(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimezone)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2008-02-29")
	require.NoError(t, err)
	assert.Equal(t, Date{Year: 2008, Month: 2, Day: 29}, d)

	for _, input := range []string{"2009-02-29", "2008-1", "abcd-01-01", "2008-13-01", ""} {
		_, err := ParseDate(input)
		assert.ErrorIs(t, err, ErrInvalidDate, input)
	}
}

func TestParseRate(t *testing.T) {
	ntsc := Rate{Num: 30000, Den: 1001, Subframes: 80}

	tests := []struct {
		input    string
		expected Rate
	}{
		{"25", FPS25},
		{"29.97DF", FPS2997DF},
		{"ms", FPSMS},
		{"23.976ndf", FPS23976},
		{"29.97", ntsc},
		{"30000/1001", ntsc},
		{"30000/1001df", FPS2997DF},
		{"25@100", Rate{Num: 25, Den: 1, Subframes: 100}},
		{"24000/1001@0", Rate{Num: 24000, Den: 1001}},
		{"12.5", Rate{Num: 25, Den: 2, Subframes: 80}},
		{"48", Rate{Num: 48, Den: 1, Subframes: 80}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseRate(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseRate_Errors(t *testing.T) {
	for _, input := range []string{"", "abc", "25/0", "0", "-25", "25@x", "25@-1", "a/b"} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseRate(input)
			assert.ErrorIs(t, err, ErrInvalidRate)
		})
	}
}
