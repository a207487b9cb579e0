package timecode

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrInvalidTimecode is returned for timecode text that cannot be parsed.
	ErrInvalidTimecode = errors.New("invalid timecode")
	// ErrInvalidTimezone is returned for a malformed or out-of-range offset.
	ErrInvalidTimezone = errors.New("invalid timezone")
	// ErrInvalidDate is returned for a malformed or non-existent date.
	ErrInvalidDate = errors.New("invalid date")
)

// Timezone offsets accepted by ParseTimezone, in minutes.
const (
	minTimezone = -12 * 60
	maxTimezone = 14 * 60
)

// ParseTime parses "[[[HH:]MM:]SS:]FF[:SF]". Fields are filled from the
// right, so "10" is frame 10 and "1:00" is one second. Any of ':', ';' or
// '.' separates fields; a fifth field is the subframe. Out-of-range values
// carry into the next field and the number of days carried out of the hour
// field is returned. For drop-frame rates a skipped label is moved to
// frame 2.
func ParseTime(s string, r Rate) (Time, int32, error) {
	var t Time
	s = strings.TrimSpace(s)
	if s == "" {
		return t, 0, fmt.Errorf("%w: empty string", ErrInvalidTimecode)
	}

	isSep := func(c rune) bool { return c == ':' || c == ';' || c == '.' }
	parts := strings.FieldsFunc(s, isSep)
	seps := strings.Count(s, ":") + strings.Count(s, ";") + strings.Count(s, ".")
	if len(parts) == 0 || len(parts) > 5 || seps != len(parts)-1 {
		return t, 0, fmt.Errorf("%w: %q", ErrInvalidTimecode, s)
	}

	fields := []*int32{&t.Frame, &t.Second, &t.Minute, &t.Hour}
	if len(parts) == 5 {
		fields = append([]*int32{&t.Subframe}, fields...)
	}
	for i := range parts {
		p := parts[len(parts)-1-i]
		v, err := parseField(p)
		if err != nil {
			return t, 0, fmt.Errorf("%w: field %q", ErrInvalidTimecode, p)
		}
		*fields[i] = v
	}

	days := t.Normalize(r)
	if r.Drop && isDroppedFrameZero(t) {
		t.Frame = 2
	}
	return t, days, nil
}

func parseField(s string) (int32, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return 0, err
	}
	return int32(v), nil
}

// ParsePackedTime parses the packed form "HHMMSSFF" as produced by
// timecode readers that store each field as two decimal digits. Shorter
// input is treated as having leading zeros.
func ParsePackedTime(s string) (Time, error) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 8 {
		return Time{}, fmt.Errorf("%w: packed time %q", ErrInvalidTimecode, s)
	}
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return Time{}, fmt.Errorf("%w: packed time %q", ErrInvalidTimecode, s)
	}
	return Time{
		Hour:   int32(v / 1000000 % 100),
		Minute: int32(v / 10000 % 100),
		Second: int32(v / 100 % 100),
		Frame:  int32(v % 100),
	}, nil
}

// ParseTimezone parses a UTC offset such as "+0530", "-08:00", "+01" or
// "Z" into minutes east of UTC.
func ParseTimezone(s string) (int32, error) {
	s = strings.TrimSpace(s)
	switch strings.ToUpper(s) {
	case "", "Z", "UTC", "GMT":
		return 0, nil
	}

	sign := int32(1)
	switch s[0] {
	case '+':
	case '-':
		sign = -1
	default:
		return 0, fmt.Errorf("%w: %q must start with + or -", ErrInvalidTimezone, s)
	}

	digits := strings.Replace(s[1:], ":", "", 1)
	if len(digits) != 2 && len(digits) != 4 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimezone, s)
	}
	n, err := strconv.ParseUint(digits, 10, 16)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimezone, s)
	}

	hours, minutes := int32(n), int32(0)
	if len(digits) == 4 {
		hours, minutes = int32(n/100), int32(n%100)
	}
	if minutes >= 60 {
		return 0, fmt.Errorf("%w: %q has %d minutes", ErrInvalidTimezone, s, minutes)
	}

	tz := sign * (hours*60 + minutes)
	if tz < minTimezone || tz > maxTimezone {
		return 0, fmt.Errorf("%w: %q is outside %d..%d minutes", ErrInvalidTimezone, s, minTimezone, maxTimezone)
	}
	return tz, nil
}

// ParseDate parses an ISO "YYYY-MM-DD" date.
func ParseDate(s string) (Date, error) {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) != 3 {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}

	var vals [3]int32
	for i, p := range parts {
		v, err := parseField(p)
		if err != nil {
			return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
		}
		vals[i] = v
	}

	d := Date{Year: vals[0], Month: vals[1], Day: vals[2]}
	if !d.IsValid() {
		return Date{}, fmt.Errorf("%w: %q does not exist", ErrInvalidDate, s)
	}
	return d, nil
}

// ParseRate parses a frame rate. Accepted forms are the standard names
// ("25", "29.97df", "ms"), a rational "30000/1001", or a decimal fps.
// A "df" suffix selects drop-frame, "ndf" forces non-drop, and "@N" sets
// the number of subframes (80 unless a standard rate says otherwise).
func ParseRate(s string) (Rate, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	orig := s

	subframes := int32(-1)
	if i := strings.LastIndexByte(s, '@'); i >= 0 {
		v, err := parseField(s[i+1:])
		if err != nil || v < 0 {
			return Rate{}, fmt.Errorf("%w: subframes in %q", ErrInvalidRate, orig)
		}
		subframes = v
		s = s[:i]
	}

	if r, ok := LookupRate(s); ok {
		if subframes >= 0 {
			r.Subframes = subframes
		}
		return r, nil
	}

	drop := false
	switch {
	case strings.HasSuffix(s, "ndf"):
		s = strings.TrimSuffix(s, "ndf")
	case strings.HasSuffix(s, "df"):
		s = strings.TrimSuffix(s, "df")
		drop = true
	}
	if subframes < 0 {
		subframes = 80
	}

	var r Rate
	if num, den, ok := strings.Cut(s, "/"); ok {
		n, err1 := parseField(num)
		d, err2 := parseField(den)
		if err1 != nil || err2 != nil {
			return Rate{}, fmt.Errorf("%w: %q", ErrInvalidRate, orig)
		}
		r = Rate{Num: n, Den: d, Drop: drop, Subframes: subframes}
	} else {
		fps, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return Rate{}, fmt.Errorf("%w: %q", ErrInvalidRate, orig)
		}
		r = RateFromFloat(fps, drop, subframes)
	}

	if err := r.Validate(); err != nil {
		return Rate{}, err
	}
	return r, nil
}
