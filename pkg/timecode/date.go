package timecode

var daysPerMonth = [12]int32{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// IsLeapYear reports whether year is a Gregorian leap year.
func IsLeapYear(year int32) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInMonth returns the number of days in month (1-12) of year, or 0
// for a month outside that range.
func DaysInMonth(year, month int32) int32 {
	if month < 1 || month > 12 {
		return 0
	}
	if month == 2 && IsLeapYear(year) {
		return 29
	}
	return daysPerMonth[month-1]
}

// IsValid reports whether d names an existing calendar day.
func (d Date) IsValid() bool {
	return d.Month >= 1 && d.Month <= 12 && d.Day >= 1 && d.Day <= DaysInMonth(d.Year, d.Month)
}

// Increment moves d forward by one day.
func (d *Date) Increment() {
	d.Day++
	if d.Day > DaysInMonth(d.Year, d.Month) {
		d.Day = 1
		d.Month++
		if d.Month > 12 {
			d.Month = 1
			d.Year++
		}
	}
}

// Decrement moves d back by one day.
func (d *Date) Decrement() {
	if d.Day > 1 {
		d.Day--
		return
	}
	d.Month = 1 + (d.Month+10)%12
	if d.Month == 12 {
		d.Year--
	}
	d.Day = DaysInMonth(d.Year, d.Month)
}

// Normalize folds an out-of-range month or day into a valid date, e.g.
// 2008-13-01 becomes 2009-01-01 and 2008-03-00 becomes 2008-02-29.
func (d *Date) Normalize() {
	if d.Month < 1 || d.Month > 12 {
		m := int64(d.Month) - 1
		years := floorDiv(m, 12)
		d.Year += int32(years)
		d.Month = int32(m-years*12) + 1
	}

	for d.Day < 1 {
		d.Month--
		if d.Month < 1 {
			d.Month = 12
			d.Year--
		}
		d.Day += DaysInMonth(d.Year, d.Month)
	}

	for d.Day > DaysInMonth(d.Year, d.Month) {
		d.Day -= DaysInMonth(d.Year, d.Month)
		d.Month++
		if d.Month > 12 {
			d.Month = 1
			d.Year++
		}
	}
}

// AddDays moves d by n days, backwards when n is negative. The date is
// normalized first; the timezone is unchanged.
func (d *Date) AddDays(n int64) {
	if n == 0 {
		return
	}
	d.Normalize()
	d.Year, d.Month, d.Day = civilFromDays(daysFromCivil(d.Year, d.Month, d.Day) + n)
}

// daysFromCivil returns the number of days from 1970-01-01 to the given
// proleptic Gregorian date.
func daysFromCivil(year, month, day int32) int64 {
	y := int64(year)
	if month <= 2 {
		y--
	}
	era := floorDiv(y, 400)
	yoe := y - era*400
	mp := int64(month) + 9
	if month > 2 {
		mp = int64(month) - 3
	}
	doy := (153*mp+2)/5 + int64(day) - 1
	doe := yoe*365 + yoe/4 - yoe/100 + doy
	return era*146097 + doe - 719468
}

// civilFromDays is the inverse of daysFromCivil.
func civilFromDays(z int64) (year, month, day int32) {
	z += 719468
	era := floorDiv(z, 146097)
	doe := z - era*146097
	yoe := (doe - doe/1460 + doe/36524 - doe/146096) / 365
	doy := doe - (365*yoe + yoe/4 - yoe/100)
	mp := (5*doy + 2) / 153

	day = int32(doy - (153*mp+2)/5 + 1)
	month = int32(mp + 3)
	if mp >= 10 {
		month = int32(mp - 9)
	}
	y := yoe + era*400
	if month <= 2 {
		y++
	}
	return int32(y), month, day
}
