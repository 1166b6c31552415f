package reports

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

var (
	isoDatePattern   = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)
	humanDatePattern = regexp.MustCompile(`(?i)(?:^|\D)(\d{1,2}) de (\p{L}+) de (\d{4})(?:\D|$)`)
)

var spanishMonths = [12]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

var spanishMonthAbbrevs = [12]string{
	"Ene", "Feb", "Mar", "Abr", "May", "Jun",
	"Jul", "Ago", "Sep", "Oct", "Nov", "Dic",
}

var spanishMonthIndex = func() map[string]int {
	idx := make(map[string]int, len(spanishMonths)+1)
	for i, name := range spanishMonths {
		idx[name] = i + 1
	}
	idx["setiembre"] = 9
	return idx
}()

// MinYear and MaxYear bound the years that fit a four digit YYYY-MM key.
const (
	MinYear = 1
	MaxYear = 9999
)

// ValidYear reports whether year can be rendered as a four digit key.
func ValidYear(year int) bool {
	return year >= MinYear && year <= MaxYear
}

// DateParts is a calendar date split into its components.
type DateParts struct {
	Year  int
	Month int
	Day   int
}

// ISO formats the date as YYYY-MM-DD.
func (d DateParts) ISO() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// DateKey formats the month bucket as YYYY-MM.
func (d DateParts) DateKey() string {
	return FormatDateKey(d.Year, d.Month)
}

// FormatDateKey builds the zero-padded YYYY-MM month key.
func FormatDateKey(year, month int) string {
	return fmt.Sprintf("%04d-%02d", year, month)
}

// ParseISODate parses a strict YYYY-MM-DD string. Out-of-calendar values such as
// 2025-02-30 are rejected.
func ParseISODate(s string) (DateParts, bool) {
	m := isoDatePattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return DateParts{}, false
	}
	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])
	return checkedDate(year, month, day)
}

// ParseHumanDate parses the Spanish long form "<day> de <month> de <year>", e.g.
// "1 de julio de 2025". The month name is matched case-insensitively.
func ParseHumanDate(s string) (DateParts, bool) {
	m := humanDatePattern.FindStringSubmatch(s)
	if m == nil {
		return DateParts{}, false
	}
	month, ok := MonthFromName(m[2])
	if !ok {
		return DateParts{}, false
	}
	day, _ := strconv.Atoi(m[1])
	year, _ := strconv.Atoi(m[3])
	return checkedDate(year, month, day)
}

// ParseReportDate tries the ISO form first and the Spanish long form second.
func ParseReportDate(s string) (DateParts, bool) {
	if d, ok := ParseISODate(s); ok {
		return d, true
	}
	return ParseHumanDate(s)
}

func checkedDate(year, month, day int) (DateParts, bool) {
	if !ValidYear(year) || month < 1 || month > 12 || day < 1 {
		return DateParts{}, false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day {
		return DateParts{}, false
	}
	return DateParts{Year: year, Month: month, Day: day}, true
}

// MonthFromName resolves a Spanish month name, case-insensitively.
func MonthFromName(name string) (int, bool) {
	month, ok := spanishMonthIndex[strings.ToLower(strings.TrimSpace(name))]
	return month, ok
}

// MonthName returns the capitalized Spanish month name, "" when month is out of range.
func MonthName(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return Capitalize(spanishMonths[month-1])
}

// MonthAbbrev returns the three-letter Spanish month label used on chart axes.
func MonthAbbrev(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return spanishMonthAbbrevs[month-1]
}

// Capitalize upper-cases the first letter and lower-cases the rest.
func Capitalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}
