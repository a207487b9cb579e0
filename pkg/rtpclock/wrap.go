package rtpclock

// RTP timestamps are 32 bits wide at any clock rate.
const (
	wrapThreshold = int64(1) << 32
	halfThreshold = wrapThreshold / 2
)

// unwrapper extends 32-bit RTP timestamps into a monotonic 64-bit
// timeline. A backwards jump of more than half the range is a wrap; a
// forward jump of more than half the range is a late packet from before
// the last wrap.
type unwrapper struct {
	started bool
	last    uint32
	cycles  int64
}

// extend returns the 64-bit timestamp for ts and whether ts started a new
// cycle.
func (u *unwrapper) extend(ts uint32) (int64, bool) {
	if !u.started {
		u.started = true
		u.last = ts
		return int64(ts), false
	}

	diff := int64(ts) - int64(u.last)
	switch {
	case diff < -halfThreshold:
		u.cycles++
		u.last = ts
		return u.cycles*wrapThreshold + int64(ts), true
	case diff > halfThreshold:
		// reordered packet from the previous cycle, leave last alone
		return (u.cycles-1)*wrapThreshold + int64(ts), false
	}

	if diff > 0 {
		u.last = ts
	}
	return u.cycles*wrapThreshold + int64(ts), false
}
