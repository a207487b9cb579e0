package timecode

// Normalize folds out-of-range fields of t back into range for rate r and
// returns the number of whole days carried out of (positive) or borrowed
// from (negative) the hour field.
//
// Fields are visited once, least significant first, with bases
// [Subframes, CeilFPS, 60, 60, 24]. Floor division makes negative values
// borrow from the next field. Drop-frame labels are not corrected here;
// callers that care apply the skip rule themselves. With Subframes == 0
// the subframe field is left untouched.
func (t *Time) Normalize(r Rate) int32 {
	digits := [...]int64{
		int64(t.Subframe),
		int64(t.Frame),
		int64(t.Second),
		int64(t.Minute),
		int64(t.Hour),
	}
	bases := [...]int64{int64(r.Subframes), int64(r.CeilFPS()), 60, 60, 24}

	var days int64
	for i, base := range bases {
		if base <= 0 {
			continue
		}
		v := digits[i]
		if v >= 0 && v < base {
			continue
		}
		carry := floorDiv(v, base)
		digits[i] -= carry * base
		if i+1 < len(digits) {
			digits[i+1] += carry
		} else {
			days += carry
		}
	}

	t.Subframe = int32(digits[0])
	t.Frame = int32(digits[1])
	t.Second = int32(digits[2])
	t.Minute = int32(digits[3])
	t.Hour = int32(digits[4])
	return int32(days)
}

// floorDiv divides rounding towards negative infinity.
func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// floorMod returns a - floorDiv(a, b)*b, which has the sign of b.
func floorMod(a, b int64) int64 {
	return a - floorDiv(a, b)*b
}
