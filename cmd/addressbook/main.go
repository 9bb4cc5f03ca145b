package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/tartampluch/go-addressbook/internal/book"
	"github.com/tartampluch/go-addressbook/internal/bot"
	"github.com/tartampluch/go-addressbook/internal/config"
	"github.com/tartampluch/go-addressbook/internal/exchange"
	"github.com/tartampluch/go-addressbook/internal/server"
)

// CLI is the top-level command structure.
type CLI struct {
	Version kong.VersionFlag `help:"Show version." short:"V"`
	Debug   bool             `help:"Enable debug logging on stderr."`
	Config  string           `help:"YAML settings file." type:"path" placeholder:"FILE"`
	Lang    string           `help:"Reply language (en or fr)."`

	Chat      ChatCmd      `cmd:"" default:"withargs" help:"Start the interactive assistant (default)."`
	Birthdays BirthdaysCmd `cmd:"" help:"Print the upcoming birthdays of a vCard source."`
	Calendar  CalendarCmd  `cmd:"" help:"Render the upcoming birthdays of a vCard source as iCalendar."`
}

// runEnv carries what every command needs once startup is done.
type runEnv struct {
	ctx      context.Context
	settings config.Settings
	in       io.Reader
	out      io.Writer
}

// ChatCmd runs the interactive session.
type ChatCmd struct {
	ServePort int    `help:"Serve the birthday feed on this loopback port." placeholder:"PORT"`
	Import    string `help:"vCard file or URL to load before the session starts." placeholder:"SOURCE"`
}

// BirthdaysCmd prints the congratulation dates of the coming week.
type BirthdaysCmd struct {
	Source string `arg:"" help:"vCard file or http(s) URL."`
	Today  string `help:"Reference day (DD.MM.YYYY). Defaults to the current date." placeholder:"DATE"`
}

// CalendarCmd writes the birthday feed once.
type CalendarCmd struct {
	Source string `arg:"" help:"vCard file or http(s) URL."`
	Today  string `help:"Reference day (DD.MM.YYYY). Defaults to the current date." placeholder:"DATE"`
	Out    string `help:"Write to this file instead of stdout." type:"path" placeholder:"FILE"`
}

// main is the application entry point.
// It delegates execution to runMain so that deferred calls (like closing the
// log file) run before the process terminates.
func main() {
	os.Exit(runMain(os.Args[1:], os.Stdin, os.Stdout))
}

// runMain manages the application lifecycle, argument parsing and exit codes.
func runMain(args []string, stdin io.Reader, stdout io.Writer) int {
	// -------------------------------------------------------------------------
	// 1. CLI Argument Parsing
	// -------------------------------------------------------------------------
	var cli CLI
	parser, err := newParser(&cli, stdout)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return config.ExitCodeError
	}
	kctx, err := parser.Parse(args)
	if err != nil {
		parser.Errorf("%s", err)
		return config.ExitCodeError
	}

	// -------------------------------------------------------------------------
	// 2. Logging Initialization
	// -------------------------------------------------------------------------
	logCloser := setupLogging(cli.Debug)
	if logCloser != nil {
		defer func() {
			_ = logCloser.Close()
		}()
	}

	// -------------------------------------------------------------------------
	// 3. Context & Signal Handling
	// -------------------------------------------------------------------------
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logStartupInfo()

	// -------------------------------------------------------------------------
	// 4. Application Logic
	// -------------------------------------------------------------------------
	err = func() error {
		settings, err := loadSettings(&cli)
		if err != nil {
			return err
		}
		return kctx.Run(&runEnv{ctx: ctx, settings: settings, in: stdin, out: stdout})
	}()
	if err != nil {
		slog.Error(config.ErrAppFailed,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyError, err,
		)
		parser.Errorf("%s", err)
		return config.ExitCodeError
	}

	slog.Info(config.MsgAppStop, config.LogKeyComponent, config.CompMain)
	return config.ExitCodeSuccess
}

func newParser(cli *CLI, stdout io.Writer) (*kong.Kong, error) {
	return kong.New(cli,
		kong.Name(config.AppBinary),
		kong.Description(config.AppName+": contacts and birthday reminders."),
		kong.UsageOnError(),
		kong.Writers(stdout, os.Stderr),
		kong.Vars{"version": versionString()},
	)
}

func versionString() string {
	return fmt.Sprintf(config.MsgVersionOutput,
		config.AppName,
		config.Version,
		config.Commit,
		config.Date,
		runtime.GOOS,
		runtime.GOARCH,
	)
}

// loadSettings reads the optional settings file and environment, then lets
// CLI flags take precedence.
func loadSettings(cli *CLI) (config.Settings, error) {
	s, err := config.LoadSettings(cli.Config)
	if err != nil {
		return config.Settings{}, err
	}
	if cli.Lang != "" {
		s.Language = strings.ToLower(strings.TrimSpace(cli.Lang))
		if err := s.Validate(); err != nil {
			return config.Settings{}, err
		}
	}
	slog.Debug(config.MsgSettingsLoaded,
		config.LogKeyComponent, config.CompSettings,
		config.LogKeyLang, s.Language,
		config.LogKeyPort, s.ServePort)
	return s, nil
}

// newBot wires a bot with an empty book and the remote import credentials.
func (e *runEnv) newBot() (*bot.Bot, error) {
	b, err := bot.New(book.New(), e.settings.Language)
	if err != nil {
		return nil, err
	}
	b.Opener = &exchange.Opener{
		Fetcher:  exchange.NewHTTPFetcher(),
		User:     e.settings.RemoteUser,
		Password: exchange.KeyringPassword,
	}
	b.ReminderTrigger = e.settings.ReminderTrigger()
	return b, nil
}

// Run starts the feed server when a port is configured, then the session.
func (c *ChatCmd) Run(env *runEnv) error {
	if c.ServePort != 0 {
		env.settings.ServePort = c.ServePort
		if err := env.settings.Validate(); err != nil {
			return err
		}
	}

	b, err := env.newBot()
	if err != nil {
		return err
	}

	ctx, stop := context.WithCancel(env.ctx)
	defer stop()

	if env.settings.ServePort != 0 {
		srv := server.NewFeedServer(env.settings.ServePort)
		b.Publish = srv.Publish

		srvDone := make(chan struct{})
		go func() {
			defer close(srvDone)
			if err := srv.Start(ctx); err != nil {
				slog.Error(config.ErrServerStartup,
					config.LogKeyComponent, config.CompServer,
					config.LogKeyError, err)
			}
		}()
		defer func() {
			stop()
			<-srvDone
		}()
	}

	if c.Import != "" {
		reply, err := b.Import(ctx, c.Import)
		if err != nil {
			return err
		}
		fmt.Fprintln(env.out, reply)
	}

	return runSession(ctx, b, env.in, env.out)
}

// runSession returns as soon as the context is cancelled, even while the bot
// is still blocked reading input.
func runSession(ctx context.Context, b *bot.Bot, in io.Reader, out io.Writer) error {
	done := make(chan error, config.ChannelBufferSize)
	go func() {
		done <- b.Run(ctx, in, out)
	}()

	select {
	case err := <-done:
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	case <-ctx.Done():
		slog.Info(config.MsgCtxCancel, config.LogKeyComponent, config.CompMain)
		return nil
	}
}

// Run imports the source and prints the upcoming congratulation dates.
func (c *BirthdaysCmd) Run(env *runEnv) error {
	b, err := env.oneShotBot(c.Source, c.Today)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(env.out, b.Upcoming(b.Clock.Now()))
	return err
}

// Run imports the source and writes the iCalendar feed.
func (c *CalendarCmd) Run(env *runEnv) error {
	b, err := env.oneShotBot(c.Source, c.Today)
	if err != nil {
		return err
	}
	data, err := b.Feed()
	if err != nil {
		return err
	}

	if c.Out == "" {
		_, err = env.out.Write(data)
		return err
	}
	if err := os.WriteFile(c.Out, data, config.FilePermUserRW); err != nil {
		return fmt.Errorf("%s: %w", config.ErrWriteFile, err)
	}
	return nil
}

func (e *runEnv) oneShotBot(source, today string) (*bot.Bot, error) {
	b, err := e.newBot()
	if err != nil {
		return nil, err
	}
	if today != "" {
		day, err := time.ParseInLocation(config.DateFormatBirthday, today, time.Local)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", book.ErrInvalidDate, today)
		}
		b.Clock = book.FixedClock(day)
	}
	if _, err := b.Import(e.ctx, source); err != nil {
		return nil, err
	}
	return b, nil
}

// logStartupInfo logs environment details useful for debugging.
func logStartupInfo() {
	slog.Info(config.MsgAppStarting,
		config.LogKeyComponent, config.CompMain,
		slog.Group(config.LogKeyBuild,
			slog.String(config.LogKeyApp, config.AppName),
			slog.String(config.LogKeyVersion, config.Version),
			slog.String(config.LogKeyGoVer, runtime.Version()),
		),
		slog.Group(config.LogKeyEnv,
			slog.String(config.LogKeyOS, runtime.GOOS),
			slog.String(config.LogKeyArch, runtime.GOARCH),
			slog.Int(config.LogKeyPID, os.Getpid()),
		),
	)
}

// setupLogging configures the default slog logger. Logs always go to the
// cache-dir file; stderr is added in debug mode so the chat stays readable.
func setupLogging(debugMode bool) io.Closer {
	var writers []io.Writer
	var logFile *os.File

	if logPath, err := getLogFilePath(); err == nil {
		// O_TRUNC resets logs on restart to prevent indefinite growth.
		f, err := os.OpenFile(logPath, os.O_TRUNC|os.O_CREATE|os.O_WRONLY, config.FilePermUserRW)
		if err == nil {
			writers = append(writers, f)
			logFile = f
		} else {
			fmt.Fprintf(os.Stderr, config.MsgLogWarning, config.ErrLogFile, logPath, err)
		}
	}

	level := slog.LevelInfo
	if debugMode {
		level = slog.LevelDebug
		writers = append(writers, os.Stderr)
	}
	if len(writers) == 0 {
		writers = append(writers, io.Discard)
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: debugMode,
	}

	logger := slog.New(slog.NewJSONHandler(io.MultiWriter(writers...), opts))
	slog.SetDefault(logger)

	if logFile == nil {
		return nil
	}
	return logFile
}

// getLogFilePath determines the platform-specific cache directory for logs.
func getLogFilePath() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCacheDir, err)
	}

	appDir := filepath.Join(cacheDir, config.AppID)
	if err := os.MkdirAll(appDir, config.DirPermUserRWX); err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCreateDir, err)
	}

	return filepath.Join(appDir, config.LogFileName), nil
}
