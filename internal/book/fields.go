package book

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/tartampluch/go-addressbook/internal/config"
)

var fieldValidator = validator.New(validator.WithRequiredStructEnabled())

// Name identifies a contact. It is never blank.
type Name string

// NewName trims value and rejects it when nothing is left.
func NewName(value string) (Name, error) {
	value = strings.TrimSpace(value)
	if err := fieldValidator.Var(value, config.ValidateName); err != nil {
		return "", ErrInvalidName
	}
	return Name(value), nil
}

func (n Name) String() string { return string(n) }

// Phone is a number made of exactly ten ASCII digits.
type Phone string

// NewPhone validates value as a ten digit phone number.
func NewPhone(value string) (Phone, error) {
	if !ValidPhone(value) {
		return "", fmt.Errorf("%w: %q", ErrInvalidPhone, value)
	}
	return Phone(value), nil
}

// ValidPhone reports whether value is exactly ten decimal digits.
func ValidPhone(value string) bool {
	return fieldValidator.Var(value, config.ValidatePhone) == nil
}

func (p Phone) String() string { return string(p) }

// Birthday is a calendar date, stored at midnight UTC.
type Birthday struct {
	date time.Time
}

// ParseBirthday reads text in the DD.MM.YYYY layout. Out-of-range dates such
// as 31.02.2024 are rejected.
func ParseBirthday(text string) (Birthday, error) {
	t, err := time.Parse(config.DateFormatBirthday, strings.TrimSpace(text))
	if err != nil {
		return Birthday{}, fmt.Errorf("%w: %q", ErrInvalidDate, text)
	}
	return Birthday{date: t}, nil
}

// BirthdayOf keeps only the calendar date of t.
func BirthdayOf(t time.Time) Birthday {
	y, m, d := t.Date()
	return Birthday{date: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// Time returns the birthday as midnight UTC.
func (b Birthday) Time() time.Time { return b.date }

// IsZero reports whether b was never set.
func (b Birthday) IsZero() bool { return b.date.IsZero() }

// String formats b as DD.MM.YYYY.
func (b Birthday) String() string {
	return b.date.Format(config.DateFormatBirthday)
}
