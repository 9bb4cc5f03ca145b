package bot

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/tartampluch/go-addressbook/internal/book"
	"github.com/tartampluch/go-addressbook/internal/config"
	"github.com/tartampluch/go-addressbook/internal/exchange"
)

type handlerFunc func(ctx context.Context, args []string) (string, error)

func (b *Bot) commandTable() map[string]handlerFunc {
	return map[string]handlerFunc{
		config.CmdHello:        b.hello,
		config.CmdAdd:          b.addContact,
		config.CmdChange:       b.changePhone,
		config.CmdPhone:        b.showPhones,
		config.CmdRemovePhone:  b.removePhone,
		config.CmdDelete:       b.deleteContact,
		config.CmdAll:          b.showAll,
		config.CmdAddBirthday:  b.addBirthday,
		config.CmdShowBirthday: b.showBirthday,
		config.CmdBirthdays:    b.birthdays,
		config.CmdExport:       b.export,
		config.CmdImport:       b.importContacts,
	}
}

func requireArgs(args []string, n int) error {
	if len(args) < n {
		return fmt.Errorf("%w: want %d, got %d", book.ErrMissingArguments, n, len(args))
	}
	return nil
}

func (b *Bot) lookup(name string) (*book.Record, error) {
	r, ok := b.Book.Find(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", book.ErrContactNotFound, name)
	}
	return r, nil
}

func (b *Bot) hello(context.Context, []string) (string, error) {
	return b.msg(config.TKeyHello, nil), nil
}

// addContact creates the contact when needed, then attaches the optional
// phone. A bad phone leaves the book exactly as it was.
func (b *Bot) addContact(_ context.Context, args []string) (string, error) {
	if err := requireArgs(args, 1); err != nil {
		return "", err
	}
	name := args[0]

	if r, ok := b.Book.Find(name); ok {
		if len(args) > 1 {
			if err := r.AddPhone(args[1]); err != nil {
				return "", err
			}
		}
		return b.msg(config.TKeyContactUpdated, nil), nil
	}

	r, err := book.NewRecord(name)
	if err != nil {
		return "", err
	}
	if len(args) > 1 {
		if err := r.AddPhone(args[1]); err != nil {
			return "", err
		}
	}
	b.Book.AddRecord(r)
	return b.msg(config.TKeyContactAdded, nil), nil
}

func (b *Bot) changePhone(_ context.Context, args []string) (string, error) {
	if err := requireArgs(args, 3); err != nil {
		return "", err
	}
	r, err := b.lookup(args[0])
	if err != nil {
		return "", err
	}
	if err := r.EditPhone(args[1], args[2]); err != nil {
		return "", err
	}
	return b.msg(config.TKeyContactUpdated, nil), nil
}

func (b *Bot) showPhones(_ context.Context, args []string) (string, error) {
	if err := requireArgs(args, 1); err != nil {
		return "", err
	}
	r, err := b.lookup(args[0])
	if err != nil {
		return "", err
	}

	phones := r.Phones()
	if len(phones) == 0 {
		return b.msg(config.TKeyNoPhones, map[string]any{"Name": r.Name()}), nil
	}
	values := make([]string, len(phones))
	for i, p := range phones {
		values[i] = p.String()
	}
	return b.msg(config.TKeyPhoneList, map[string]any{
		"Name":   r.Name(),
		"Phones": strings.Join(values, config.PhoneSeparator),
	}), nil
}

func (b *Bot) removePhone(_ context.Context, args []string) (string, error) {
	if err := requireArgs(args, 2); err != nil {
		return "", err
	}
	r, err := b.lookup(args[0])
	if err != nil {
		return "", err
	}
	r.RemovePhone(args[1])
	return b.msg(config.TKeyPhoneRemoved, nil), nil
}

func (b *Bot) deleteContact(_ context.Context, args []string) (string, error) {
	if err := requireArgs(args, 1); err != nil {
		return "", err
	}
	if err := b.Book.Delete(args[0]); err != nil {
		return "", err
	}
	return b.msg(config.TKeyContactDeleted, nil), nil
}

func (b *Bot) showAll(context.Context, []string) (string, error) {
	records := b.Book.Records()
	if len(records) == 0 {
		return b.msg(config.TKeyNoContacts, nil), nil
	}
	lines := make([]string, len(records))
	for i, r := range records {
		lines[i] = r.String()
	}
	return strings.Join(lines, "\n"), nil
}

func (b *Bot) addBirthday(_ context.Context, args []string) (string, error) {
	if err := requireArgs(args, 2); err != nil {
		return "", err
	}
	r, err := b.lookup(args[0])
	if err != nil {
		return "", err
	}
	if err := r.AddBirthday(args[1]); err != nil {
		return "", err
	}
	return b.msg(config.TKeyBirthdayAdded, nil), nil
}

func (b *Bot) showBirthday(_ context.Context, args []string) (string, error) {
	if err := requireArgs(args, 1); err != nil {
		return "", err
	}
	r, err := b.lookup(args[0])
	if err != nil {
		return "", err
	}
	bday, ok := r.Birthday()
	if !ok {
		return b.msg(config.TKeyBirthdayNotSet, map[string]any{"Name": r.Name()}), nil
	}
	return b.msg(config.TKeyBirthdayShow, map[string]any{
		"Name": r.Name(),
		"Date": bday.String(),
	}), nil
}

func (b *Bot) birthdays(context.Context, []string) (string, error) {
	return b.Upcoming(b.Clock.Now()), nil
}

// Upcoming renders the congratulation dates of the week starting at today,
// one contact per line.
func (b *Bot) Upcoming(today time.Time) string {
	entries := b.Book.UpcomingBirthdays(today)
	if len(entries) == 0 {
		return b.msg(config.TKeyNoUpcoming, nil)
	}
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = b.msg(config.TKeyUpcomingLine, map[string]any{
			"Name": e.Name,
			"Date": e.Congratulation.Format(config.DateFormatBirthday),
		})
	}
	return strings.Join(lines, "\n")
}

func (b *Bot) export(_ context.Context, args []string) (string, error) {
	if err := requireArgs(args, 1); err != nil {
		return "", err
	}
	path := args[0]

	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, config.FilePermUserRW)
	if err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrWriteFile, err)
	}
	n, err := exchange.ExportVCards(f, b.Book)
	err = errors.Join(err, f.Close())
	if err != nil {
		return "", err
	}
	return b.msg(config.TKeyExported, map[string]any{"Count": n, "Path": path}), nil
}

func (b *Bot) importContacts(ctx context.Context, args []string) (string, error) {
	if err := requireArgs(args, 1); err != nil {
		return "", err
	}
	return b.Import(ctx, args[0])
}

// Import loads vCards from a local path or an http(s) URL into the book.
func (b *Bot) Import(ctx context.Context, source string) (string, error) {
	rc, err := b.Opener.Open(ctx, source)
	if err != nil {
		return "", err
	}
	defer func() { _ = rc.Close() }()

	res, err := exchange.ImportVCards(rc, b.Book)
	if err != nil {
		return "", err
	}
	return b.msg(config.TKeyImported, map[string]any{
		"Count":   res.Imported,
		"Skipped": res.Skipped,
	}), nil
}
