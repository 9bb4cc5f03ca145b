package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
)

// Settings holds the runtime options of the assistant.
// Values come from an optional YAML file, then ADDRESSBOOK_* environment
// variables, then CLI flags (applied by the caller).
type Settings struct {
	// Language selects the reply locale (ISO 639-1).
	Language string `yaml:"language" env:"ADDRESSBOOK_LANG" env-default:"en" validate:"oneof=en fr"`

	// ServePort enables the loopback birthday feed when non-zero.
	ServePort int `yaml:"serve_port" env:"ADDRESSBOOK_SERVE_PORT" validate:"omitempty,min=1,max=65535"`

	// RemoteUser is the basic-auth user for remote vCard imports.
	// The password is looked up in the OS keyring under KeyringService.
	RemoteUser string `yaml:"remote_user" env:"ADDRESSBOOK_REMOTE_USER"`

	// ReminderDays adds a VALARM that many days before each feed event. Zero disables it.
	ReminderDays int `yaml:"reminder_days" env:"ADDRESSBOOK_REMINDER_DAYS" env-default:"0" validate:"min=0,max=30"`
}

var settingsValidator = validator.New(validator.WithRequiredStructEnabled())

// LoadSettings reads settings from path (YAML) when given, otherwise from
// the environment only. The result is validated before it is returned.
func LoadSettings(path string) (Settings, error) {
	var s Settings

	var err error
	if path != "" {
		err = cleanenv.ReadConfig(path, &s)
	} else {
		err = cleanenv.ReadEnv(&s)
	}
	if err != nil {
		return Settings{}, fmt.Errorf("%s: %w", ErrSettingsRead, err)
	}

	s.Language = strings.ToLower(strings.TrimSpace(s.Language))
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate checks the struct tags of s.
func (s Settings) Validate() error {
	if err := settingsValidator.Struct(s); err != nil {
		return fmt.Errorf("%s: %w", ErrSettingsInvalid, err)
	}
	return nil
}

// ReminderTrigger returns the ISO8601 alarm trigger for the feed, or "" when
// reminders are disabled.
func (s Settings) ReminderTrigger() string {
	if s.ReminderDays <= 0 {
		return ""
	}
	return fmt.Sprintf(FormatReminderTrigger, s.ReminderDays)
}
