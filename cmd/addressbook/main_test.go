package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-addressbook/internal/config"
)

const sampleCards = "BEGIN:VCARD\r\nVERSION:4.0\r\nFN:Alice\r\nTEL;TYPE=cell:012-345-6789\r\nBDAY:1990-03-16\r\nEND:VCARD\r\n" +
	"BEGIN:VCARD\r\nVERSION:4.0\r\nFN:Bob\r\nBDAY:19850310\r\nEND:VCARD\r\n"

// isolate keeps logs and settings of a test run away from the user profile.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", dir)
	t.Setenv("HOME", dir)
	return dir
}

// chdir switches the working directory for the test and restores it on
// cleanup (equivalent of testing.T.Chdir, unavailable before Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}

func writeCards(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "contacts.vcf")
	require.NoError(t, os.WriteFile(path, []byte(sampleCards), 0o600))
	return path
}

func TestParser_Commands(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{nil, "chat"},
		{[]string{"--serve-port", "8080"}, "chat"},
		{[]string{"birthdays", "book.vcf"}, "birthdays <source>"},
		{[]string{"calendar", "https://example.com/book.vcf", "--out", "feed.ics"}, "calendar <source>"},
	}

	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			var cli CLI
			parser, err := newParser(&cli, &bytes.Buffer{})
			require.NoError(t, err)

			kctx, err := parser.Parse(tt.args)
			require.NoError(t, err)
			assert.Equal(t, tt.want, kctx.Command())
		})
	}
}

func TestVersionString(t *testing.T) {
	v := versionString()
	assert.True(t, strings.HasPrefix(v, config.AppName+" version "+config.Version))
}

func TestRunMain_Chat(t *testing.T) {
	isolate(t)
	var out bytes.Buffer

	code := runMain(nil, strings.NewReader("add John 1234567890\nall\nexit\n"), &out)

	assert.Equal(t, config.ExitCodeSuccess, code)
	assert.Equal(t, "Welcome to the assistant bot!\nContact added.\nContact name: John, phones: 1234567890\nGood bye!\n", out.String())
}

func TestRunMain_ChatImportAndLanguage(t *testing.T) {
	dir := isolate(t)
	path := writeCards(t, dir)
	var out bytes.Buffer

	code := runMain([]string{"--lang", "fr", "chat", "--import", path}, strings.NewReader("phone Alice\nclose\n"), &out)

	assert.Equal(t, config.ExitCodeSuccess, code)
	assert.Equal(t, "2 contacts importés (0 ignorés).\nBienvenue dans l'assistant !\nAlice : 0123456789\nAu revoir !\n", out.String())
}

func TestRunMain_Birthdays(t *testing.T) {
	dir := isolate(t)
	path := writeCards(t, dir)
	var out bytes.Buffer

	code := runMain([]string{"birthdays", path, "--today", "15.03.2024"}, strings.NewReader(""), &out)

	assert.Equal(t, config.ExitCodeSuccess, code)
	assert.Equal(t, "Alice: 18.03.2024\n", out.String())
}

func TestRunMain_Calendar(t *testing.T) {
	dir := isolate(t)
	path := writeCards(t, dir)
	feed := filepath.Join(dir, "feed.ics")

	code := runMain([]string{"calendar", path, "--today", "15.03.2024", "--out", feed}, strings.NewReader(""), &bytes.Buffer{})
	require.Equal(t, config.ExitCodeSuccess, code)

	data, err := os.ReadFile(feed)
	require.NoError(t, err)
	assert.Contains(t, string(data), "DTSTART;VALUE=DATE:20240318")
	assert.Contains(t, string(data), "SUMMARY:Congratulate Alice")
	assert.NotContains(t, string(data), "Bob")

	info, err := os.Stat(feed)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(config.FilePermUserRW), info.Mode().Perm())
}

func TestRunMain_CalendarStdout(t *testing.T) {
	dir := isolate(t)
	path := writeCards(t, dir)
	var out bytes.Buffer

	code := runMain([]string{"calendar", path, "--today", "01.06.2024"}, strings.NewReader(""), &out)

	assert.Equal(t, config.ExitCodeSuccess, code)
	assert.Equal(t, config.StubVCalendar, out.String(), "No birthday in the window yields the stub feed")
}

func TestRunMain_Failures(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"Unknown argument", []string{"fly"}},
		{"Bad reference day", []string{"birthdays", "book.vcf", "--today", "2024-03-15"}},
		{"Missing source", []string{"birthdays", "absent.vcf"}},
		{"Unsupported language", []string{"--lang", "de"}},
		{"Port out of range", []string{"chat", "--serve-port", "70000"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := isolate(t)
			chdir(t, dir)
			code := runMain(tt.args, strings.NewReader("exit\n"), &bytes.Buffer{})
			assert.Equal(t, config.ExitCodeError, code)
		})
	}
}

func TestSetupLogging_WritesToCacheDir(t *testing.T) {
	dir := isolate(t)

	closer := setupLogging(false)
	require.NotNil(t, closer)
	logStartupInfo()
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(filepath.Join(dir, config.AppID, config.LogFileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), config.MsgAppStarting)
}
