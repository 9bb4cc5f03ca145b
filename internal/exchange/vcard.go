// Package exchange converts the address book to and from interchange formats:
// vCard for contacts and iCalendar for upcoming congratulation dates.
package exchange

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/emersion/go-vcard"
	"github.com/google/uuid"
	"github.com/tartampluch/go-addressbook/internal/book"
	"github.com/tartampluch/go-addressbook/internal/config"
)

// uidNamespace scopes the name-based UUIDs of exported cards and feed events.
var uidNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte(config.AppID))

// ImportResult summarizes a vCard import.
type ImportResult struct {
	Imported int
	Skipped  int
}

// ExportVCards writes every record of b as a vCard 4.0 card and returns the
// number of cards written.
func ExportVCards(w io.Writer, b *book.Book) (int, error) {
	enc := vcard.NewEncoder(w)
	count := 0
	for _, r := range b.Records() {
		if err := enc.Encode(recordToCard(r)); err != nil {
			return count, fmt.Errorf("%s: %w", config.ErrVCardEncode, err)
		}
		count++
	}

	slog.Info(config.MsgExportDone,
		config.LogKeyComponent, config.CompExchange,
		config.LogKeyCount, count)
	return count, nil
}

func recordToCard(r *book.Record) vcard.Card {
	card := make(vcard.Card)
	card.SetValue(vcard.FieldVersion, config.VCardVersion)
	card.SetValue(vcard.FieldFormattedName, r.Name().String())
	card.SetValue(vcard.FieldUID, contactUID(r.Name()).URN())

	for _, p := range r.Phones() {
		card.Add(vcard.FieldTelephone, &vcard.Field{
			Value:  p.String(),
			Params: vcard.Params{vcard.ParamType: {vcard.TypeCell}},
		})
	}
	if bday, ok := r.Birthday(); ok {
		card.SetValue(vcard.FieldBirthday, bday.Time().Format(config.DateFormatFullDash))
	}
	return card
}

// contactUID is stable for a given name across exports.
func contactUID(name book.Name) uuid.UUID {
	return uuid.NewSHA1(uidNamespace, []byte(name))
}

// ImportVCards decodes cards from r into b. Cards without a usable name are
// skipped; unusable phones and birthdays are dropped from an otherwise valid
// card. Existing contacts with the same name are replaced.
func ImportVCards(r io.Reader, b *book.Book) (ImportResult, error) {
	log := slog.With(config.LogKeyComponent, config.CompExchange)
	dec := vcard.NewDecoder(r)
	var res ImportResult

	for {
		card, err := dec.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// A broken stream cannot be resynchronized; keep what was read.
			if res.Imported == 0 && res.Skipped == 0 {
				return res, fmt.Errorf("%s: %w", config.ErrVCardParse, err)
			}
			log.Warn(config.MsgSkippedCard, config.LogKeyError, err)
			res.Skipped++
			break
		}

		rec, err := cardToRecord(card, log)
		if err != nil {
			log.Warn(config.MsgSkippedCard, config.LogKeyError, err)
			res.Skipped++
			continue
		}
		b.AddRecord(rec)
		res.Imported++
	}

	log.Info(config.MsgImportDone,
		config.LogKeyCount, res.Imported,
		config.LogKeySkipped, res.Skipped)
	return res, nil
}

func cardToRecord(card vcard.Card, log *slog.Logger) (*book.Record, error) {
	rec, err := book.NewRecord(cardName(card))
	if err != nil {
		return nil, err
	}

	for _, tel := range card.Values(vcard.FieldTelephone) {
		if err := rec.AddPhone(normalizePhone(tel)); err != nil {
			log.Debug(config.MsgSkippedPhone,
				config.LogKeyName, rec.Name(),
				config.LogKeyValue, tel)
		}
	}

	if value := card.Value(vcard.FieldBirthday); value != "" {
		if t, err := parseDate(value); err == nil {
			rec.SetBirthday(book.BirthdayOf(t))
		} else {
			log.Debug(config.MsgSkippedDate,
				config.LogKeyName, rec.Name(),
				config.LogKeyValue, value)
		}
	}
	return rec, nil
}

// cardName prefers FN and falls back to the structured N property.
func cardName(card vcard.Card) string {
	if fn := strings.TrimSpace(card.Value(vcard.FieldFormattedName)); fn != "" {
		return fn
	}
	n := card.Name()
	if n == nil {
		return ""
	}
	var parts []string
	for _, p := range []string{n.HonorificPrefix, n.GivenName, n.AdditionalName, n.FamilyName, n.HonorificSuffix} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// normalizePhone keeps only the ASCII digits of a TEL value, so that
// "tel:012-345-6789" and "(012) 345 6789" both become "0123456789".
func normalizePhone(value string) string {
	var sb strings.Builder
	for _, r := range value {
		if r >= '0' && r <= '9' {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// parseDate accepts the full-date BDAY layouts. Truncated (--MM-DD) dates are
// rejected because a Birthday always carries a year.
func parseDate(value string) (time.Time, error) {
	layouts := []string{
		config.DateFormatFullDash,
		config.DateFormatFullBasic,
		config.DateFormatRFC3339,
	}
	for _, f := range layouts {
		if t, err := time.Parse(f, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%s: %q", config.ErrDateParse, value)
}
