package book

import (
	"time"

	"github.com/tartampluch/go-addressbook/internal/config"
)

// UpcomingBirthday is a derived entry of the birthdays query.
type UpcomingBirthday struct {
	Name Name

	// Birthday is the projected anniversary date.
	Birthday time.Time

	// Congratulation is Birthday moved to Monday when it falls on a weekend.
	Congratulation time.Time
}

// UpcomingBirthdays lists contacts whose next birthday falls within the seven
// days starting at today (inclusive). Contacts without a birthday are
// skipped. Entries follow insertion order.
func (b *Book) UpcomingBirthdays(today time.Time) []UpcomingBirthday {
	loc := today.Location()
	start := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, loc)
	end := start.AddDate(0, 0, config.UpcomingWindowDays-1)

	var out []UpcomingBirthday
	for _, r := range b.Records() {
		bday, ok := r.Birthday()
		if !ok {
			continue
		}

		next := nextOccurrence(start, bday.Time())
		if next.After(end) {
			continue
		}

		out = append(out, UpcomingBirthday{
			Name:           r.name,
			Birthday:       next,
			Congratulation: shiftWeekend(next),
		})
	}
	return out
}

// nextOccurrence projects birthDate onto the year of start, rolling to the
// following year when that date has already passed. time.Date normalizes
// Feb 29 to Mar 1 in non-leap years.
func nextOccurrence(start, birthDate time.Time) time.Time {
	loc := start.Location()
	candidate := time.Date(start.Year(), birthDate.Month(), birthDate.Day(), 0, 0, 0, 0, loc)
	if candidate.Before(start) {
		candidate = time.Date(start.Year()+1, birthDate.Month(), birthDate.Day(), 0, 0, 0, 0, loc)
	}
	return candidate
}

// shiftWeekend moves Saturday and Sunday to the following Monday.
func shiftWeekend(d time.Time) time.Time {
	switch d.Weekday() {
	case time.Saturday:
		return d.AddDate(0, 0, 2)
	case time.Sunday:
		return d.AddDate(0, 0, 1)
	}
	return d
}
