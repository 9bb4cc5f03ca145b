package bot

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-addressbook/internal/book"
	"github.com/tartampluch/go-addressbook/internal/config"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

const (
	localeDir    = "locales"
	localePrefix = "active."
	localeSuffix = ".json"
)

// loadBundle registers every embedded locales/active.<lang>.json file.
func loadBundle() (*i18n.Bundle, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := localeFS.ReadDir(localeDir)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrLocalesAccess, err)
	}

	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, localePrefix) || !strings.HasSuffix(name, localeSuffix) {
			slog.Debug(config.MsgLocaleSkip,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name)
			continue
		}
		if _, err := bundle.LoadMessageFileFS(localeFS, localeDir+"/"+name); err != nil {
			return nil, fmt.Errorf("%s %s: %w", config.ErrLocaleLoad, name, err)
		}
		slog.Debug(config.MsgLocaleLoaded,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyFile, name)
	}
	return bundle, nil
}

// msg translates key, falling back to the key itself when it is missing.
func (b *Bot) msg(key string, data map[string]any) string {
	text, err := b.localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: data,
	})
	if err != nil {
		slog.Debug(config.MsgTransMissing,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyKey, key,
			config.LogKeyError, err)
		return key
	}
	return text
}

// describe turns an error kind into the reply shown to the user.
func (b *Bot) describe(err error) string {
	switch {
	case errors.Is(err, book.ErrMissingArguments):
		return b.msg(config.TKeyErrMissingArgs, nil)
	case errors.Is(err, book.ErrContactNotFound):
		return b.msg(config.TKeyErrNotFound, nil)
	case errors.Is(err, book.ErrInvalidName):
		return b.msg(config.TKeyErrInvalidName, nil)
	case errors.Is(err, book.ErrInvalidPhone):
		return b.msg(config.TKeyErrInvalidPhone, nil)
	case errors.Is(err, book.ErrInvalidDate):
		return b.msg(config.TKeyErrInvalidDate, nil)
	case errors.Is(err, book.ErrPhoneNotFound):
		return b.msg(config.TKeyErrPhoneNotFound, nil)
	default:
		return b.msg(config.TKeyErrExchange, map[string]any{"Error": err.Error()})
	}
}
