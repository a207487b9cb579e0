package timecode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeconds(t *testing.T) {
	assert.Equal(t, int64(72000), SecondsToSample(1.5, 48000))
	assert.Equal(t, 1.5, SampleToSeconds(72000, 48000))
	assert.Equal(t, 3600.0, FrameNumberToSeconds(90000, FPS25))
	assert.InDelta(t, 600.6, FrameNumberToSeconds(18000, FPS2997DF), 1e-9)
}

func TestSecondsToFrameNumber(t *testing.T) {
	tests := []struct {
		name     string
		seconds  float64
		rate     Rate
		expected int64
	}{
		{"exact at 25", 2, FPS25, 50},
		{"rounds down", 2.039, FPS25, 50},
		{"drop-frame float noise", 600.6, FPS2997DF, 18000},
		{"zero", 0, FPS23976, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SecondsToFrameNumber(tt.seconds, tt.rate))
		})
	}
}

func TestSecondsToTime(t *testing.T) {
	tm := SecondsToTime(1.5, FPS25)
	assert.Equal(t, Time{Second: 1, Frame: 12, Subframe: 40}, tm)
	assert.Equal(t, 1.5, ToSeconds(tm, FPS25))

	assert.Equal(t, Time{Hour: 1}, SecondsToTime(3600, FPS30))
	assert.Equal(t, Time{Second: 2}, SecondsToTime(2, Rate{Num: 25, Den: 1}))
}
