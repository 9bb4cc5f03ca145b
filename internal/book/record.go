package book

import (
	"fmt"
	"slices"
	"strings"

	"github.com/tartampluch/go-addressbook/internal/config"
)

// Record is a single contact: an immutable name, an ordered set of phones and
// an optional birthday. Failed operations never modify the record.
type Record struct {
	name     Name
	phones   []Phone
	birthday Birthday
}

// NewRecord creates an empty contact called name.
func NewRecord(name string) (*Record, error) {
	n, err := NewName(name)
	if err != nil {
		return nil, err
	}
	return &Record{name: n}, nil
}

// Name returns the contact name.
func (r *Record) Name() Name { return r.name }

// Phones returns a copy of the stored phones in insertion order.
func (r *Record) Phones() []Phone {
	return slices.Clone(r.phones)
}

// Birthday returns the stored birthday, if any.
func (r *Record) Birthday() (Birthday, bool) {
	return r.birthday, !r.birthday.IsZero()
}

// AddPhone appends phone after validating it. A phone already on the record
// is not added twice.
func (r *Record) AddPhone(phone string) error {
	p, err := NewPhone(phone)
	if err != nil {
		return err
	}
	if slices.Contains(r.phones, p) {
		return nil
	}
	r.phones = append(r.phones, p)
	return nil
}

// RemovePhone drops every phone equal to phone. Nothing happens when none match.
func (r *Record) RemovePhone(phone string) {
	r.phones = slices.DeleteFunc(r.phones, func(p Phone) bool {
		return string(p) == phone
	})
}

// EditPhone replaces oldPhone with newPhone in place. Both the lookup and the
// validation happen before anything changes.
func (r *Record) EditPhone(oldPhone, newPhone string) error {
	i := slices.Index(r.phones, Phone(oldPhone))
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrPhoneNotFound, oldPhone)
	}
	p, err := NewPhone(newPhone)
	if err != nil {
		return err
	}

	// Keep the set free of duplicates when newPhone is already stored elsewhere.
	if j := slices.Index(r.phones, p); j >= 0 && j != i {
		r.phones = slices.Delete(r.phones, i, i+1)
		return nil
	}
	r.phones[i] = p
	return nil
}

// FindPhone looks phone up. The boolean is false when it is absent.
func (r *Record) FindPhone(phone string) (Phone, bool) {
	for _, p := range r.phones {
		if string(p) == phone {
			return p, true
		}
	}
	return "", false
}

// AddBirthday parses text (DD.MM.YYYY) and replaces any previous birthday.
func (r *Record) AddBirthday(text string) error {
	b, err := ParseBirthday(text)
	if err != nil {
		return err
	}
	r.birthday = b
	return nil
}

// SetBirthday stores an already parsed birthday.
func (r *Record) SetBirthday(b Birthday) {
	r.birthday = b
}

// String renders the contact on one line.
func (r *Record) String() string {
	phones := config.NoPhonesMarker
	if len(r.phones) > 0 {
		values := make([]string, len(r.phones))
		for i, p := range r.phones {
			values[i] = string(p)
		}
		phones = strings.Join(values, config.PhoneSeparator)
	}
	return fmt.Sprintf(config.FormatRecord, r.name, phones)
}
