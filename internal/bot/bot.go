// Package bot is the command shell of the address book: it parses input
// lines, runs them against the book and renders localized replies.
package bot

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-addressbook/internal/book"
	"github.com/tartampluch/go-addressbook/internal/config"
	"github.com/tartampluch/go-addressbook/internal/exchange"
	"golang.org/x/text/language"
)

// Bot owns the book for the length of a session.
type Bot struct {
	Book   *book.Book
	Clock  book.Clock
	Opener *exchange.Opener

	// ReminderTrigger adds an alarm to every feed event when non-empty.
	ReminderTrigger string

	// Publish receives a fresh birthday feed after every command when set.
	Publish func(data []byte)

	localizer *i18n.Localizer
	handlers  map[string]handlerFunc
	errStyle  lipgloss.Style
}

// New creates a bot speaking lang. Unknown languages fall back to English.
func New(b *book.Book, lang string) (*Bot, error) {
	bundle, err := loadBundle()
	if err != nil {
		return nil, err
	}

	tag, err := language.Parse(lang)
	if err != nil {
		tag = language.English
	}

	bot := &Bot{
		Book:      b,
		Clock:     book.RealClock{},
		Opener:    &exchange.Opener{Fetcher: exchange.NewHTTPFetcher()},
		localizer: i18n.NewLocalizer(bundle, tag.String(), config.DefaultLanguage),
		errStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	}
	bot.handlers = bot.commandTable()
	return bot, nil
}

// ParseInput splits a line into a lower-cased command and its arguments.
func ParseInput(line string) (string, []string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil
	}
	return strings.ToLower(fields[0]), fields[1:]
}

// Run greets the user and processes lines from in until close/exit or EOF.
// The prompt is only printed when in is a terminal, and failures are only
// colored when out is one.
func (b *Bot) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	interactive := isTerminal(in)
	styled := isTerminal(out)

	slog.Info(config.MsgSessionStart, config.LogKeyComponent, config.CompBot)
	defer slog.Info(config.MsgSessionEnd, config.LogKeyComponent, config.CompBot)

	fmt.Fprintln(out, b.msg(config.TKeyWelcome, nil))
	b.publish()

	scanner := bufio.NewScanner(in)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if interactive {
			fmt.Fprint(out, config.PromptInput)
		}
		if !scanner.Scan() {
			break
		}

		reply, failed, quit := b.handle(ctx, scanner.Text())
		if reply != "" {
			if failed && styled {
				reply = b.errStyle.Render(reply)
			}
			fmt.Fprintln(out, reply)
		}
		if quit {
			return nil
		}
		b.publish()
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("%s: %w", config.ErrReadInput, err)
	}
	return nil
}

// Handle runs one input line and returns the reply and whether the session
// should end.
func (b *Bot) Handle(ctx context.Context, line string) (string, bool) {
	reply, _, quit := b.handle(ctx, line)
	return reply, quit
}

func (b *Bot) handle(ctx context.Context, line string) (reply string, failed, quit bool) {
	cmd, args := ParseInput(line)
	switch cmd {
	case "":
		return "", false, false
	case config.CmdClose, config.CmdExit:
		return b.msg(config.TKeyGoodbye, nil), false, true
	}

	h, ok := b.handlers[cmd]
	if !ok {
		return b.msg(config.TKeyInvalidCommand, nil), true, false
	}

	log := slog.With(
		config.LogKeyComponent, config.CompBot,
		config.LogKeyCommand, cmd,
	)
	log.Debug(config.MsgCommand, config.LogKeyArgs, len(args))

	reply, err := h(ctx, args)
	if err != nil {
		log.Warn(config.MsgCommandFailed, config.LogKeyError, err)
		return b.describe(err), true, false
	}
	return reply, false, false
}

// Feed renders the upcoming birthdays as of the bot clock.
func (b *Bot) Feed() ([]byte, error) {
	builder := &exchange.CalendarBuilder{
		Clock:           b.Clock,
		ReminderTrigger: b.ReminderTrigger,
		FormatSummary: func(name string) string {
			return b.msg(config.TKeyEvtSummary, map[string]any{"Name": name})
		},
	}
	return builder.Build(b.Book.UpcomingBirthdays(b.Clock.Now()))
}

func (b *Bot) publish() {
	if b.Publish == nil {
		return
	}
	data, err := b.Feed()
	if err != nil {
		slog.Warn(config.ErrICalEncode,
			config.LogKeyComponent, config.CompBot,
			config.LogKeyError, err)
		return
	}
	b.Publish(data)
}

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
