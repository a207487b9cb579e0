package timecode

// Drop-frame day: 24 hours of 29.97 fps labels.
const (
	dropNominalFramesPerDay = 24 * 3600 * dropNominalFPS
	dropFramesPerDay        = 24 * 6 * dropFramesPer10Min
)

// Add returns a + b at rate r.
//
// For drop-frame rates the field-wise sum overcounts by the frame numbers
// both operands skip. The sum is normalized, that debt is taken off its
// nominal frame count and the resulting frame number is relabelled, so the
// result never lands on a skipped label.
func Add(a, b Time, r Rate) Time {
	res := Time{
		Hour:     a.Hour + b.Hour,
		Minute:   a.Minute + b.Minute,
		Second:   a.Second + b.Second,
		Frame:    a.Frame + b.Frame,
		Subframe: a.Subframe + b.Subframe,
	}
	if !r.Drop {
		res.Normalize(r)
		return res
	}
	return relabelDrop(res, r, droppedFrames(a)+droppedFrames(b))
}

// Subtract returns a - b at rate r. Results below zero wrap around
// midnight.
func Subtract(a, b Time, r Rate) Time {
	res := Time{
		Hour:     a.Hour - b.Hour,
		Minute:   a.Minute - b.Minute,
		Second:   a.Second - b.Second,
		Frame:    a.Frame - b.Frame,
		Subframe: a.Subframe - b.Subframe,
	}
	if !r.Drop {
		res.Normalize(r)
		return res
	}
	return relabelDrop(res, r, droppedFrames(a)-droppedFrames(b))
}

// relabelDrop turns a field-wise drop-frame sum into a valid label. debt
// is the number of skipped frame numbers counted into the sum.
func relabelDrop(res Time, r Rate, debt int64) Time {
	days := int64(res.Normalize(r))

	nominal := ((int64(res.Hour)*60+int64(res.Minute))*60+int64(res.Second))*dropNominalFPS +
		int64(res.Frame) + days*dropNominalFramesPerDay

	t := dropFrameNumberToTime(floorMod(nominal-debt, dropFramesPerDay))
	t.Subframe = res.Subframe
	return t
}

// droppedFrames counts the frame numbers skipped by drop-frame timecode
// between 00:00:00:00 and the start of t's minute.
func droppedFrames(t Time) int64 {
	totalMinutes := 60*int64(t.Hour) + int64(t.Minute)
	return 2 * (totalMinutes - totalMinutes/10)
}
