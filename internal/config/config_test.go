package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-addressbook/internal/config"
)

// TestConstants_Integrity ensures critical constants are not empty or malformed.
func TestConstants_Integrity(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"AppName", config.AppName},
		{"AppID", config.AppID},
		{"Version", config.Version},
		{"UserAgent", config.UserAgent},
		{"ICalVersion", config.ICalVersion},
		{"ICalProdid", config.ICalProdid},
		{"DateFormatBirthday", config.DateFormatBirthday},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotEmpty(t, tt.value, "Critical constant %s should not be empty", tt.name)
		})
	}
}

func TestBusinessRules_Sanity(t *testing.T) {
	assert.Equal(t, 10, config.PhoneDigits)
	assert.Equal(t, 7, config.UpcomingWindowDays, "Window spans today plus six days")
	assert.Contains(t, config.SupportedLanguages, config.DefaultLanguage)
	assert.True(t, strings.HasPrefix(config.UserAgent, "Go-Addressbook/"))
	assert.True(t, strings.HasPrefix(config.StubVCalendar, "BEGIN:VCALENDAR"))
}

// All settings tests mutate the environment, so none of them run in parallel.

func TestLoadSettings_Defaults(t *testing.T) {
	s, err := config.LoadSettings("")
	require.NoError(t, err)

	assert.Equal(t, "en", s.Language)
	assert.Zero(t, s.ServePort, "Feed server is disabled unless asked for")
	assert.Empty(t, s.ReminderTrigger())
}

func TestLoadSettings_EnvOverrides(t *testing.T) {
	t.Setenv("ADDRESSBOOK_LANG", "FR")
	t.Setenv("ADDRESSBOOK_SERVE_PORT", "18081")
	t.Setenv("ADDRESSBOOK_REMINDER_DAYS", "2")

	s, err := config.LoadSettings("")
	require.NoError(t, err)

	assert.Equal(t, "fr", s.Language, "Language is normalized to lower case")
	assert.Equal(t, 18081, s.ServePort)
	assert.Equal(t, "-P2D", s.ReminderTrigger())
}

func TestLoadSettings_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	content := "language: fr\nremote_user: alice\nreminder_days: 1\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	s, err := config.LoadSettings(path)
	require.NoError(t, err)

	assert.Equal(t, "fr", s.Language)
	assert.Equal(t, "alice", s.RemoteUser)
	assert.Equal(t, 1, s.ReminderDays)
}

func TestLoadSettings_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"Unsupported language", map[string]string{"ADDRESSBOOK_LANG": "de"}},
		{"Port out of range", map[string]string{"ADDRESSBOOK_SERVE_PORT": "70000"}},
		{"Negative reminder", map[string]string{"ADDRESSBOOK_REMINDER_DAYS": "-1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := config.LoadSettings("")
			require.Error(t, err)
			assert.Contains(t, err.Error(), config.ErrSettingsInvalid)
		})
	}
}

func TestLoadSettings_MissingFile(t *testing.T) {
	_, err := config.LoadSettings(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.ErrSettingsRead)
}
