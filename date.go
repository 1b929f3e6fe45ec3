package arxiv

import (
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/civil"
)

// Month abbreviations as printed in arXiv stamps. June, July and Sept are
// deliberately longer than three letters.
var stampMonths = [...]string{
	time.January:   "Jan",
	time.February:  "Feb",
	time.March:     "Mar",
	time.April:     "Apr",
	time.May:       "May",
	time.June:      "June",
	time.July:      "July",
	time.August:    "Aug",
	time.September: "Sept",
	time.October:   "Oct",
	time.November:  "Nov",
	time.December:  "Dec",
}

// stampMonthAliases are also accepted when parsing.
var stampMonthAliases = map[string]time.Month{
	"Jun": time.June,
	"Jul": time.July,
	"Sep": time.September,
}

func lookupMonth(s string) (time.Month, bool) {
	for m := time.January; m <= time.December; m++ {
		if stampMonths[m] == s {
			return m, true
		}
	}
	m, ok := stampMonthAliases[s]
	return m, ok
}

// ParseStampDate parses a date in the form "1 Jan 2000": an unpadded day, a
// month abbreviation and a four digit year separated by single spaces.
func ParseStampDate(s string) (civil.Date, error) {
	dayTok, rest, ok := strings.Cut(s, " ")
	if len(dayTok) == 0 || len(dayTok) > 2 || dayTok[0] == '0' || !isDigits(dayTok) {
		return civil.Date{}, &DateError{Input: s, Component: "day"}
	}
	if !ok {
		return civil.Date{}, &DateError{Input: s, Component: "month"}
	}

	monTok, yearTok, ok := strings.Cut(rest, " ")
	month, found := lookupMonth(monTok)
	if !found {
		return civil.Date{}, &DateError{Input: s, Component: "month"}
	}
	if !ok || len(yearTok) != 4 || !isDigits(yearTok) {
		return civil.Date{}, &DateError{Input: s, Component: "year"}
	}

	day, _ := strconv.Atoi(dayTok)
	year, _ := strconv.Atoi(yearTok)
	d := civil.Date{Year: year, Month: month, Day: day}
	if !d.IsValid() {
		return civil.Date{}, &DateError{Input: s, Component: "day"}
	}
	return d, nil
}

// FormatStampDate renders d as "D Mon YYYY".
func FormatStampDate(d civil.Date) string {
	var b strings.Builder
	b.Grow(11)
	b.WriteString(strconv.Itoa(d.Day))
	b.WriteByte(' ')
	if d.Month >= time.January && d.Month <= time.December {
		b.WriteString(stampMonths[d.Month])
	}
	b.WriteByte(' ')
	year := strconv.Itoa(d.Year)
	for i := len(year); i < 4; i++ {
		b.WriteByte('0')
	}
	b.WriteString(year)
	return b.String()
}
