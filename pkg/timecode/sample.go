package timecode

import "math"

// Drop-frame constants for 29.97 fps: a ten minute block holds
// 10*60*30 - 9*2 frame numbers, a dropping minute 60*30 - 2.
const (
	dropFramesPer10Min = 17982
	dropFramesPerMin   = 1798
	dropNominalFPS     = 30
)

// ToSample converts t to a sample number at sampleRate.
//
// With a sample rate of 1000 or 1e6 the result is in milliseconds or
// microseconds; with sampleRate == r.Float64() it is a frame number (see
// ToFrameNumber).
func ToSample(t Time, r Rate, sampleRate float64) int64 {
	fpsD := r.Float64()
	fpsI := int64(r.CeilFPS())
	framesPerTCFrame := sampleRate / fpsD

	var sample int64
	if r.Drop {
		totalMinutes := 60*int64(t.Hour) + int64(t.Minute)
		frameNumber := fpsI*3600*int64(t.Hour) +
			fpsI*60*int64(t.Minute) +
			fpsI*int64(t.Second) +
			int64(t.Frame) -
			2*(totalMinutes-totalMinutes/10)

		sample = dropFrameSample(frameNumber, fpsD, sampleRate)
	} else {
		seconds := int64(t.Hour)*3600 + int64(t.Minute)*60 + int64(t.Second)
		sample = nonDropSample(seconds, int64(t.Frame), fpsI, framesPerTCFrame)
	}

	if r.Subframes != 0 {
		sample = int64(float64(sample) + float64(t.Subframe)*framesPerTCFrame/float64(r.Subframes))
	}
	return sample
}

// SampleToTime converts a sample number at sampleRate into a timecode
// time at rate r. Subframes are rounded to the nearest subframe; a value
// that rounds up to a whole frame carries into the frame field. Without
// subframes the result is the last frame whose ToSample value is not
// after sample. A non-positive sampleRate yields the zero Time.
func SampleToTime(sample int64, r Rate, sampleRate float64) Time {
	if !(sampleRate > 0) {
		return Time{}
	}
	if r.Drop {
		return sampleToDropTime(sample, r, sampleRate)
	}

	var t Time
	fpsI := int64(r.CeilFPS())
	framesPerTCFrame := sampleRate / r.Float64()
	framesPerHour := int64(snap(3600 * float64(fpsI) * framesPerTCFrame))
	if framesPerHour <= 0 {
		return Time{}
	}

	t.Hour = int32(sample / framesPerHour)
	remainder := float64(sample % framesPerHour)

	exact := remainder / framesPerTCFrame
	whole := math.Floor(exact)
	framesLeft := int64(whole)

	if r.Subframes > 0 {
		sub := int32(math.RoundToEven((exact - whole) * float64(r.Subframes)))
		if sub == r.Subframes {
			sub = 0
			framesLeft++
		}
		t.Subframe = sub
	} else {
		next := framesLeft + 1
		seconds := int64(t.Hour)*3600 + next/fpsI
		if nonDropSample(seconds, next%fpsI, fpsI, framesPerTCFrame) <= sample {
			framesLeft = next
		}
	}

	t.Minute = int32(framesLeft / (fpsI * 60))
	framesLeft %= fpsI * 60
	t.Second = int32(framesLeft / fpsI)
	t.Frame = int32(framesLeft % fpsI)

	// a carry out of the last frame of an hour
	if t.Minute >= 60 {
		t.Minute -= 60
		t.Hour++
	}
	return t
}

func sampleToDropTime(sample int64, r Rate, sampleRate float64) Time {
	fpsD := r.Float64()
	exact := snap(float64(sample) * fpsD / sampleRate)
	frameNumber := int64(math.Floor(exact))

	var sub int32
	if r.Subframes > 0 {
		sub = int32(math.RoundToEven(float64(r.Subframes) * (exact - float64(frameNumber))))
		if sub == r.Subframes {
			sub = 0
			frameNumber++
		}
	} else if dropFrameSample(frameNumber+1, fpsD, sampleRate) <= sample {
		frameNumber++
	}

	t := dropFrameNumberToTime(frameNumber)
	t.Subframe = sub
	return t
}

// dropFrameNumberToTime labels a non-negative 29.97 drop-frame frame
// number, re-inserting the skipped frame numbers.
func dropFrameNumberToTime(frameNumber int64) Time {
	d := frameNumber / dropFramesPer10Min
	m := frameNumber % dropFramesPer10Min
	frameNumber += 18*d + 2*((m-2)/dropFramesPerMin)

	return Time{
		Hour:   int32((frameNumber / dropNominalFPS / 3600) % 24),
		Minute: int32((frameNumber / dropNominalFPS / 60) % 60),
		Second: int32((frameNumber / dropNominalFPS) % 60),
		Frame:  int32(frameNumber % dropNominalFPS),
	}
}

// nonDropSample is the sample at which the frame seconds:frame starts.
func nonDropSample(seconds, frame, fpsI int64, framesPerTCFrame float64) int64 {
	return int64(math.RoundToEven(
		float64(seconds)*(float64(fpsI)*framesPerTCFrame) +
			float64(frame)*framesPerTCFrame))
}

// dropFrameSample is the sample at which drop-frame frame number
// frameNumber starts. The product is snapped before truncating so that
// sampleRate == fps maps frame n to sample n instead of n-1.
func dropFrameSample(frameNumber int64, fpsD, sampleRate float64) int64 {
	return int64(snap(float64(frameNumber) * sampleRate / fpsD))
}

// ToFrameNumber returns the zero-based video frame number of t.
func ToFrameNumber(t Time, r Rate) int64 {
	return ToSample(t, r, r.Float64())
}

// FrameNumberToTime converts a zero-based video frame number into a
// timecode time.
func FrameNumberToTime(frameNumber int64, r Rate) Time {
	return SampleToTime(frameNumber, r, r.Float64())
}

// ConvertRate re-expresses t, given at rate from, at rate to. The
// conversion runs through a common sample rate equal to the faster of the
// two frame rates.
func ConvertRate(t Time, from, to Rate) Time {
	sampleRate := math.Max(from.Float64(), to.Float64())
	sample := ToSample(t, from, sampleRate)
	return SampleToTime(sample, to, sampleRate)
}

// snap rounds x to the nearest integer when it is within floating point
// noise of one, so that n*fps/fps comes back as n rather than n-1 after
// truncation.
func snap(x float64) float64 {
	n := math.Round(x)
	if math.Abs(x-n) < 1e-9*math.Max(1, math.Abs(x)) {
		return n
	}
	return x
}
