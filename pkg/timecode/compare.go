package timecode

// CompareTime orders two times at the same rate. It returns +1 if a is
// later than b, -1 if a is earlier and 0 if they are equal. Fields are
// compared as given, without normalization.
func CompareTime(r Rate, a, b Time) int {
	switch {
	case a.Hour != b.Hour:
		return cmp32(a.Hour, b.Hour)
	case a.Minute != b.Minute:
		return cmp32(a.Minute, b.Minute)
	case a.Second != b.Second:
		return cmp32(a.Second, b.Second)
	case a.Frame != b.Frame:
		return cmp32(a.Frame, b.Frame)
	case a.Subframe != b.Subframe:
		return cmp32(a.Subframe, b.Subframe)
	}
	return 0
}

// CompareDate orders two dates by year, month, day and finally timezone
// offset. See CompareDateTime for an ordering that honours timezones.
func CompareDate(a, b Date) int {
	switch {
	case a.Year != b.Year:
		return cmp32(a.Year, b.Year)
	case a.Month != b.Month:
		return cmp32(a.Month, b.Month)
	case a.Day != b.Day:
		return cmp32(a.Day, b.Day)
	case a.Timezone != b.Timezone:
		return cmp32(a.Timezone, b.Timezone)
	}
	return 0
}

// CompareDateTime orders two full timecodes at rate r. Both sides are
// moved to UTC first, so 13:00 in Paris equals 12:00 in London on the same
// day, and a shift across midnight moves the date.
func CompareDateTime(r Rate, a, b Timecode) int {
	ax := toUTC(a, r)
	bx := toUTC(b, r)

	if c := CompareDate(ax.Date, bx.Date); c != 0 {
		return c
	}
	return CompareTime(r, ax.Time, bx.Time)
}

// toUTC returns a copy of tc shifted to timezone 0.
func toUTC(tc Timecode, r Rate) Timecode {
	tc.Time.Minute -= tc.Date.Timezone
	tc.Date.Timezone = 0

	tc.Date.AddDays(int64(tc.Time.Normalize(r)))
	return tc
}

func cmp32(a, b int32) int {
	if a > b {
		return 1
	}
	return -1
}
