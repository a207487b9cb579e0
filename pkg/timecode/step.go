package timecode

// Increment advances t by one frame at rate r. It reports whether the
// time wrapped past 23:59:59 back to midnight.
func (t *Time) Increment(r Rate) bool {
	wrapped := false
	t.Frame++
	if t.Frame >= r.CeilFPS() {
		t.Frame = 0
		t.Second++
		if t.Second >= 60 {
			t.Second = 0
			t.Minute++
			if t.Minute >= 60 {
				t.Minute = 0
				t.Hour++
				if t.Hour >= 24 {
					t.Hour = 0
					wrapped = true
				}
			}
		}
	}

	if r.Drop && isDroppedFrameZero(*t) {
		t.Frame = 2
	}
	return wrapped
}

// Decrement moves t back by one frame at rate r. It reports whether the
// time wrapped from midnight back to 23:59:59.
func (t *Time) Decrement(r Rate) bool {
	// frame 2 is the first label of a dropping minute; step straight
	// into the previous minute
	atDropBoundary := r.Drop && t.Minute%10 != 0 && t.Second == 0 && t.Frame == 2

	if !atDropBoundary && t.Frame > 0 {
		t.Frame--
		return false
	}

	t.Frame = r.CeilFPS() - 1
	if t.Second > 0 {
		t.Second--
		return false
	}

	t.Second = 59
	if t.Minute > 0 {
		t.Minute--
		return false
	}

	t.Minute = 59
	if t.Hour > 0 {
		t.Hour--
		return false
	}

	t.Hour = 23
	return true
}

// Increment advances tc by one frame and moves the date forward when the
// time wraps at midnight.
func (tc *Timecode) Increment() bool {
	if tc.Time.Increment(tc.Rate) {
		tc.Date.Increment()
		return true
	}
	return false
}

// Decrement moves tc back by one frame and moves the date back when the
// time wraps at midnight.
func (tc *Timecode) Decrement() bool {
	if tc.Time.Decrement(tc.Rate) {
		tc.Date.Decrement()
		return true
	}
	return false
}

// Step moves tc by frames (negative steps backwards) one frame at a time
// and returns the net number of days crossed.
func (tc *Timecode) Step(frames int64) int64 {
	var days int64
	for ; frames > 0; frames-- {
		if tc.Increment() {
			days++
		}
	}
	for ; frames < 0; frames++ {
		if tc.Decrement() {
			days--
		}
	}
	return days
}

// isDroppedFrameZero reports whether t sits on frame 0 of a minute whose
// first two frame numbers are skipped in drop-frame timecode.
func isDroppedFrameZero(t Time) bool {
	return t.Minute%10 != 0 && t.Second == 0 && t.Frame == 0
}
