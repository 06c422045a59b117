package jalali

import (
	"fmt"
	"time"
)

// Date represents a date in the Jalali (Solar Hijri) calendar.
type Date struct {
	Year  int
	Month int
	Day   int
}

// cumulative days before each Gregorian month in a non-leap year
var gregorianDaysBeforeMonth = [12]int{0, 31, 59, 90, 120, 151, 181, 212, 243, 273, 304, 334}

// FromGregorian converts a Gregorian calendar date to a Jalali one using the
// 33-year cycle arithmetic. The conversion is deterministic and has no side
// effects; it is used for display only, never for storage or comparison.
func FromGregorian(gy, gm, gd int) Date {
	var jy int
	if gy > 1600 {
		jy = 979
		gy -= 1600
	} else {
		jy = 0
		gy -= 621
	}

	gy2 := gy
	if gm > 2 {
		gy2 = gy + 1
	}

	days := 365*gy + (gy2+3)/4 - (gy2+99)/100 + (gy2+399)/400 - 80 + gd + gregorianDaysBeforeMonth[gm-1]

	jy += 33 * (days / 12053)
	days %= 12053

	jy += 4 * (days / 1461)
	days %= 1461

	if days > 365 {
		jy += (days - 1) / 365
		days = (days - 1) % 365
	}

	var jm, jd int
	if days < 186 {
		jm = 1 + days/31
		jd = 1 + days%31
	} else {
		jm = 7 + (days-186)/30
		jd = 1 + (days-186)%30
	}

	return Date{Year: jy, Month: jm, Day: jd}
}

// FromTime converts the given time, interpreted in UTC, to a Jalali date.
func FromTime(t time.Time) Date {
	t = t.UTC()
	return FromGregorian(t.Year(), int(t.Month()), t.Day())
}

// String returns the date formatted as "1403/01/01".
func (d Date) String() string {
	return fmt.Sprintf("%04d/%02d/%02d", d.Year, d.Month, d.Day)
}

// FormatDate returns the Jalali date of t formatted as "1403/01/01".
func FormatDate(t time.Time) string {
	return FromTime(t).String()
}

// FormatDateTime returns the Jalali date of t with the UTC clock time appended,
// e.g. "1403/01/01 14:30:00".
func FormatDateTime(t time.Time) string {
	t = t.UTC()
	return fmt.Sprintf("%s %02d:%02d:%02d", FromTime(t), t.Hour(), t.Minute(), t.Second())
}

// FormatDual returns the Gregorian date with the Jalali date in parentheses,
// e.g. "2024-03-20 (1403/01/01)".
func FormatDual(t time.Time) string {
	t = t.UTC()
	return fmt.Sprintf("%s (%s)", t.Format("2006-01-02"), FromTime(t))
}
