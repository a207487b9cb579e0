package timecode

import (
	"strconv"
	"strings"
)

// Format renders tc according to layout. Directives are introduced by '%':
//
//	%H %M %S  hour, minute, second as two digits
//	%F        frame, zero padded to the width of the largest frame number
//	%s        subframe, zero padded to the width of the largest subframe
//	%Y %y     year with and without century
//	%m %d     month and day as two digits
//	%z        timezone as +HHMM
//	%f        frame rate, e.g. "25" or "29.97df"
//	%: %;     ';' for drop-frame rates, ':' otherwise
//	%t %%     tab and a literal '%'
//	%T        alias for "%H:%M:%S%;%F"
//	%Z        alias for "%Y-%m-%d %H:%M:%S%:%F.%s %z @%f fps"
//
// Unknown directives are copied through unchanged.
func Format(layout string, tc Timecode) string {
	var b strings.Builder
	b.Grow(len(layout) + 16)
	format(&b, layout, tc)
	return b.String()
}

func format(b *strings.Builder, layout string, tc Timecode) {
	for i := 0; i < len(layout); i++ {
		c := layout[i]
		if c != '%' || i+1 == len(layout) {
			b.WriteByte(c)
			continue
		}
		i++

		t, d, r := tc.Time, tc.Date, tc.Rate
		switch layout[i] {
		case 'H':
			pad(b, int64(t.Hour), 2)
		case 'M':
			pad(b, int64(t.Minute), 2)
		case 'S':
			pad(b, int64(t.Second), 2)
		case 'F':
			pad(b, int64(t.Frame), digits(int64(r.CeilFPS())-1, 2))
		case 's':
			pad(b, int64(t.Subframe), digits(int64(r.Subframes)-1, 1))
		case 'Y':
			pad(b, int64(d.Year), 4)
		case 'y':
			pad(b, int64(d.Year%100), 2)
		case 'm':
			pad(b, int64(d.Month), 2)
		case 'd':
			pad(b, int64(d.Day), 2)
		case 'z':
			tz := d.Timezone
			if tz < 0 {
				b.WriteByte('-')
				tz = -tz
			} else {
				b.WriteByte('+')
			}
			pad(b, int64(tz/60), 2)
			pad(b, int64(tz%60), 2)
		case 'f':
			b.WriteString(r.String())
		case ':', ';':
			if r.Drop {
				b.WriteByte(';')
			} else {
				b.WriteByte(':')
			}
		case 't':
			b.WriteByte('\t')
		case '%':
			b.WriteByte('%')
		case 'T':
			format(b, "%H:%M:%S%;%F", tc)
		case 'Z':
			format(b, "%Y-%m-%d %H:%M:%S%:%F.%s %z @%f fps", tc)
		default:
			b.WriteByte('%')
			b.WriteByte(layout[i])
		}
	}
}

// pad writes v zero padded to width digits.
func pad(b *strings.Builder, v int64, width int) {
	if v < 0 {
		b.WriteByte('-')
		v = -v
	}
	s := strconv.FormatInt(v, 10)
	for n := len(s); n < width; n++ {
		b.WriteByte('0')
	}
	b.WriteString(s)
}

// digits returns the number of decimal digits in v, but at least atLeast.
func digits(v int64, atLeast int) int {
	if v < 0 {
		v = 0
	}
	if n := len(strconv.FormatInt(v, 10)); n > atLeast {
		return n
	}
	return atLeast
}
