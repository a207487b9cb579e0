package timecode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRate_Float64AndCeil(t *testing.T) {
	tests := []struct {
		name     string
		rate     Rate
		expected float64
		ceil     int32
	}{
		{"24 fps", FPS24, 24.0, 24},
		{"25 fps", FPS25, 25.0, 25},
		{"23.976 fps", FPS23976, 24000.0 / 1001.0, 24},
		{"29.97 drop-frame", FPS2997DF, 30000.0 / 1001.0, 30},
		{"milliseconds", FPSMS, 1000.0, 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, tt.rate.Float64(), 1e-12)
			assert.Equal(t, tt.ceil, tt.rate.CeilFPS())
		})
	}
}

func TestRate_FramesPerTimecodeFrame(t *testing.T) {
	assert.Equal(t, 1920.0, FPS25.FramesPerTimecodeFrame(48000))
	assert.Equal(t, 2000.0, FPS24.FramesPerTimecodeFrame(48000))
	assert.InDelta(t, 1601.6, FPS2997DF.FramesPerTimecodeFrame(48000), 1e-9)
	assert.Equal(t, 1.0, FPS30.FramesPerTimecodeFrame(30))
}

func TestRate_String(t *testing.T) {
	assert.Equal(t, "25", FPS25.String())
	assert.Equal(t, "23.976", FPS23976.String())
	assert.Equal(t, "24.975", FPS24976.String())
	assert.Equal(t, "29.97df", FPS2997DF.String())
	assert.Equal(t, "29.97", Rate{Num: 30000, Den: 1001}.String())
	assert.Equal(t, "12.5", Rate{Num: 25, Den: 2}.String())
	assert.Equal(t, "1000", FPSMS.String())
}

func TestRate_Validate(t *testing.T) {
	tests := []struct {
		name    string
		rate    Rate
		wantErr bool
	}{
		{"standard rate", FPS25, false},
		{"no subframes", Rate{Num: 25, Den: 1}, false},
		{"zero numerator", Rate{Num: 0, Den: 1}, true},
		{"zero denominator", Rate{Num: 25, Den: 0}, true},
		{"negative denominator", Rate{Num: 25, Den: -1}, true},
		{"negative subframes", Rate{Num: 25, Den: 1, Subframes: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.rate.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidRate)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLookupRate(t *testing.T) {
	r, ok := LookupRate("29.97DF")
	require.True(t, ok)
	assert.Equal(t, FPS2997DF, r)

	r, ok = LookupRate(" 25 ")
	require.True(t, ok)
	assert.Equal(t, FPS25, r)

	_, ok = LookupRate("48")
	assert.False(t, ok)

	names := RateNames()
	assert.Contains(t, names, "ms")
	assert.IsIncreasing(t, names)
}

func TestLookupRate_ReturnsCopies(t *testing.T) {
	r, ok := LookupRate("25")
	require.True(t, ok)
	r.Subframes = 0
	r.Drop = true

	again, ok := LookupRate("25")
	require.True(t, ok)
	assert.Equal(t, int32(80), again.Subframes)
	assert.False(t, again.Drop)

	parsed, err := ParseRate("25@0")
	require.NoError(t, err)
	assert.Equal(t, int32(0), parsed.Subframes)
	assert.Equal(t, int32(80), FPS25.Subframes)
}

func TestRateFromFloat(t *testing.T) {
	tests := []struct {
		name     string
		fps      float64
		expected Rate
	}{
		{"integer", 25, Rate{Num: 25, Den: 1, Subframes: 80}},
		{"ntsc 29.97", 29.97, Rate{Num: 30000, Den: 1001, Subframes: 80}},
		{"ntsc 23.976", 23.976, Rate{Num: 24000, Den: 1001, Subframes: 80}},
		{"ntsc 59.94", 59.94, Rate{Num: 60000, Den: 1001, Subframes: 80}},
		{"half rate", 12.5, Rate{Num: 25, Den: 2, Subframes: 80}},
		{"zero", 0, Rate{Subframes: 80}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, RateFromFloat(tt.fps, false, 80))
		})
	}

	assert.True(t, RateFromFloat(29.97, true, 0).Drop)
}
