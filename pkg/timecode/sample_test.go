package timecode

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSampleToTime_KnownValues(t *testing.T) {
	const sample = 964965602

	tests := []struct {
		name     string
		rate     Rate
		expected Time
	}{
		{"24 fps", FPS24, Time{5, 35, 3, 10, 64}},
		{"25 fps", FPS25, Time{5, 35, 3, 11, 20}},
		{"30 fps", FPS30, Time{5, 35, 3, 13, 40}},
		{"23.976 fps", FPS23976, Time{5, 34, 43, 8, 64}},
		{"29.97 non-drop", Rate{Num: 30000, Den: 1001, Subframes: 80}, Time{5, 34, 43, 11, 0}},
		{"29.97 drop-frame", FPS2997DF, Time{5, 35, 3, 15, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SampleToTime(sample, tt.rate, 48000)
			assert.Equal(t, tt.expected, got)

			// re-encoding lands within one subframe of the input
			back := ToSample(got, tt.rate, 48000)
			tolerance := tt.rate.FramesPerTimecodeFrame(48000) / float64(tt.rate.Subframes)
			assert.InDelta(t, sample, back, tolerance)
		})
	}
}

func TestToSample_KnownValues(t *testing.T) {
	tests := []struct {
		name       string
		time       Time
		rate       Rate
		sampleRate float64
		expected   int64
	}{
		{"one hour at 25", Time{Hour: 1}, FPS25, 48000, 172800000},
		{"one frame at 25", Time{Frame: 1}, FPS25, 48000, 1920},
		{"one subframe at 25", Time{Subframe: 1}, FPS25, 48000, 24},
		{"milliseconds", Time{Second: 1, Frame: 500}, FPSMS, 1000, 1500},
		{"drop ten minutes", Time{Minute: 10}, FPS2997DF, FPS2997DF.Float64(), 17982},
		{"drop first label of minute", Time{Minute: 1, Frame: 2}, FPS2997DF, FPS2997DF.Float64(), 1800},
		{"drop one hour", Time{Hour: 1}, FPS2997DF, FPS2997DF.Float64(), 107892},
		{"drop at 48k", Time{Hour: 5, Minute: 35, Second: 3, Frame: 15}, FPS2997DF, 48000, 964965602},
		{"non-drop 29.97 at 48k", Time{Hour: 5, Minute: 34, Second: 43, Frame: 11}, Rate{Num: 30000, Den: 1001, Subframes: 80}, 48000, 964965602},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ToSample(tt.time, tt.rate, tt.sampleRate))
		})
	}
}

func TestSampleRoundTrip_NonDrop(t *testing.T) {
	rates := []Rate{
		FPS24, FPS25, FPS30, FPS23976, FPS24976,
		{Num: 30000, Den: 1001, Subframes: 80},
	}
	hours := []int32{0, 1, 5, 13, 23}
	minutes := []int32{0, 1, 9, 10, 59}
	seconds := []int32{0, 1, 30, 59}

	for _, r := range rates {
		c := r.CeilFPS()
		frames := []int32{0, 1, c / 2, c - 1}
		for _, sr := range []float64{48000, 44100, 96000, r.Float64()} {
			t.Run(fmt.Sprintf("%s@%g", r, sr), func(t *testing.T) {
				for _, h := range hours {
					for _, m := range minutes {
						for _, s := range seconds {
							for _, f := range frames {
								in := Time{Hour: h, Minute: m, Second: s, Frame: f}
								got := SampleToTime(ToSample(in, r, sr), r, sr)
								assert.Equal(t, in, got)
							}
						}
					}
				}
			})
		}
	}
}

func TestSampleRoundTrip_DropFrame(t *testing.T) {
	r := FPS2997DF
	for _, sr := range []float64{48000, 44100, 96000, r.Float64()} {
		t.Run(fmt.Sprintf("%g", sr), func(t *testing.T) {
			for _, h := range []int32{0, 1, 5, 13, 23} {
				for m := int32(0); m < 60; m++ {
					for _, s := range []int32{0, 1, 30, 59} {
						for _, f := range []int32{0, 1, 2, 15, 29} {
							if m%10 != 0 && s == 0 && f < 2 {
								continue
							}
							in := Time{Hour: h, Minute: m, Second: s, Frame: f}
							got := SampleToTime(ToSample(in, r, sr), r, sr)
							assert.Equal(t, in, got)
						}
					}
				}
			}
		})
	}
}

func TestSampleRoundTrip_Subframes(t *testing.T) {
	tests := []struct {
		rate       Rate
		sampleRate float64
	}{
		{FPS25, 48000},
		{FPS30, 48000},
		{FPS24, 48000},
		{FPS23976, 48000},
		{FPS23976, 44100},
		{FPS23976, 96000},
		{Rate{Num: 30000, Den: 1001, Subframes: 80}, 48000},
		{Rate{Num: 30000, Den: 1001, Subframes: 80}, 44100},
		{Rate{Num: 30000, Den: 1001, Subframes: 80}, 96000},
		{FPS2997DF, 48000},
		{FPS2997DF, 44100},
		{FPS2997DF, 96000},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s@%g", tt.rate, tt.sampleRate), func(t *testing.T) {
			for sub := int32(0); sub < tt.rate.Subframes; sub++ {
				in := Time{Hour: 1, Minute: 2, Second: 3, Frame: 4, Subframe: sub}
				got := SampleToTime(ToSample(in, tt.rate, tt.sampleRate), tt.rate, tt.sampleRate)
				assert.Equal(t, in, got, "subframe %d", sub)
			}
		})
	}
}

func TestSampleRoundTrip_NoSubframes(t *testing.T) {
	wholeFrames := func(r Rate) Rate {
		r.Subframes = 0
		return r
	}

	tests := []struct {
		name       string
		rate       Rate
		sampleRate float64
		time       Time
	}{
		{"23.976 at 44.1k", wholeFrames(FPS23976), 44100, Time{Frame: 10}},
		{"drop-frame at 48k", wholeFrames(FPS2997DF), 48000, Time{Frame: 7}},
		{"drop-frame at 44.1k", wholeFrames(FPS2997DF), 44100, Time{Frame: 7}},
		{"29.97 non-drop at 90k", Rate{Num: 30000, Den: 1001}, 90000, Time{Hour: 1, Minute: 2, Second: 3, Frame: 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SampleToTime(ToSample(tt.time, tt.rate, tt.sampleRate), tt.rate, tt.sampleRate)
			assert.Equal(t, tt.time, got)
		})
	}

	rates := []Rate{
		wholeFrames(FPS23976), wholeFrames(FPS24976), wholeFrames(FPS25),
		wholeFrames(FPS2997DF), Rate{Num: 60000, Den: 1001},
	}
	for _, r := range rates {
		for _, sr := range []float64{8000, 44100, 48000, 90000, 1e6} {
			t.Run(fmt.Sprintf("%s@%g", r, sr), func(t *testing.T) {
				for n := int64(0); n < 4000; n++ {
					in := FrameNumberToTime(n, r)
					got := SampleToTime(ToSample(in, r, sr), r, sr)
					if !assert.Equal(t, in, got, "frame %d", n) {
						return
					}
				}
			})
		}
	}
}

func TestSampleToTime_NonPositiveSampleRate(t *testing.T) {
	for _, r := range []Rate{FPS25, FPS2997DF, {Num: 30000, Den: 1001}} {
		for _, sr := range []float64{0, -48000, 0.0001} {
			t.Run(fmt.Sprintf("%s@%g", r, sr), func(t *testing.T) {
				assert.NotPanics(t, func() {
					SampleToTime(12345, r, sr)
				})
			})
		}
	}
	assert.Equal(t, Time{}, SampleToTime(12345, FPS25, 0))
}

func TestDropFrameWalk(t *testing.T) {
	var tm Time
	for n := int64(1); n < 40000; n++ {
		tm.Increment(FPS2997DF)
		if !assert.Equal(t, n, ToFrameNumber(tm, FPS2997DF), "at %s", tm) {
			return
		}
		assert.False(t, tm.Minute%10 != 0 && tm.Second == 0 && tm.Frame < 2, "dropped label %s", tm)
	}
	assert.Equal(t, Time{Minute: 22, Second: 14, Frame: 19}, tm)
	assert.Equal(t, tm, FrameNumberToTime(39999, FPS2997DF))
}

func TestFrameNumber(t *testing.T) {
	assert.Equal(t, int64(90000), ToFrameNumber(Time{Hour: 1}, FPS25))
	assert.Equal(t, Time{Hour: 1}, FrameNumberToTime(90000, FPS25))
	assert.Equal(t, Time{Minute: 1, Frame: 2}, FrameNumberToTime(1800, FPS2997DF))
	assert.Equal(t, Time{Minute: 9, Second: 59, Frame: 29}, FrameNumberToTime(17981, FPS2997DF))
	assert.Equal(t, Time{Minute: 10}, FrameNumberToTime(17982, FPS2997DF))
}

func TestConvertRate(t *testing.T) {
	tests := []struct {
		name     string
		time     Time
		from, to Rate
		expected Time
	}{
		{"25 to 30 on the hour", Time{Hour: 1}, FPS25, FPS30, Time{Hour: 1}},
		{"30 to 25 mid second", Time{Second: 1, Frame: 15}, FPS30, FPS25, Time{Second: 1, Frame: 12, Subframe: 40}},
		{"25 to 24", Time{Second: 10}, FPS25, FPS24, Time{Second: 10}},
		{"drop-frame to 30", Time{Minute: 10}, FPS2997DF, FPS30, Time{Minute: 9, Second: 59, Frame: 29}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ConvertRate(tt.time, tt.from, tt.to))
		})
	}
}

func TestSnap(t *testing.T) {
	assert.Equal(t, 3.0, snap(2.9999999999999996))
	assert.Equal(t, 172972800.0, snap(172972799.99999997))
	assert.Equal(t, 2.5, snap(2.5))
	assert.Equal(t, 0.999, snap(0.999))
}
