package timecode

import "math"

// SampleToSeconds converts a sample number to seconds.
func SampleToSeconds(sample int64, sampleRate float64) float64 {
	return float64(sample) / sampleRate
}

// SecondsToSample converts seconds to the nearest sample number.
func SecondsToSample(sec float64, sampleRate float64) int64 {
	return int64(math.Floor(sec*sampleRate + 0.5))
}

// FrameNumberToSeconds converts a frame number at rate r to seconds.
func FrameNumberToSeconds(frameNumber int64, r Rate) float64 {
	return float64(frameNumber) / r.Float64()
}

// SecondsToFrameNumber returns the frame that is showing sec seconds in.
// Unlike SecondsToSample it always rounds down.
func SecondsToFrameNumber(sec float64, r Rate) int64 {
	return int64(math.Floor(snap(sec * r.Float64())))
}

// SecondsToTime converts seconds to a timecode time at rate r, keeping
// subframe resolution.
func SecondsToTime(sec float64, r Rate) Time {
	sampleRate := subframeRate(r)
	return SampleToTime(SecondsToSample(sec, sampleRate), r, sampleRate)
}

// ToSeconds converts a timecode time to seconds.
func ToSeconds(t Time, r Rate) float64 {
	sampleRate := subframeRate(r)
	return SampleToSeconds(ToSample(t, r, sampleRate), sampleRate)
}

// subframeRate is the sample rate at which one sample is one subframe.
func subframeRate(r Rate) float64 {
	if r.Subframes > 0 {
		return r.Float64() * float64(r.Subframes)
	}
	return r.Float64()
}
