package config

import (
	"io/fs"
	"time"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// UserAgent identifies the HTTP client used for remote vCard imports.
var UserAgent = "Go-Addressbook/" + Version

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName           = "Go Addressbook"
	AppBinary         = "addressbook"
	AppID             = "com.github.tartampluch.go-addressbook"
	KeyringService    = "com.github.tartampluch.go-addressbook"
	LocalhostBindAddr = "127.0.0.1"
	LogFileName       = "app.log"
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	// Used for logs and exported address books.
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	DirPermUserRWX fs.FileMode = 0700

	ChannelBufferSize = 1
)

// -----------------------------------------------------------------------------
// CLI Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	// MsgVersionOutput renders name, version, commit, build date, OS and arch.
	MsgVersionOutput = "%s version %s (%s, built %s) %s/%s"
	PromptInput      = "Enter a command: "
)

// -----------------------------------------------------------------------------
// Business Rules
// -----------------------------------------------------------------------------

const (
	// PhoneDigits is the exact length of a valid phone number.
	PhoneDigits = 10

	// UpcomingWindowDays is the size of the upcoming birthdays window,
	// today included.
	UpcomingWindowDays = 7

	// DateFormatBirthday is the only accepted textual birthday layout (DD.MM.YYYY).
	DateFormatBirthday = "02.01.2006"

	// ValidatePhone is the go-playground/validator rule for a phone value.
	ValidatePhone = "len=10,number"
	ValidateName  = "required"

	DefaultLanguage = "en"
	NoPhonesMarker  = "No phones"
	FormatRecord    = "Contact name: %s, phones: %s"
	PhoneSeparator  = "; "
)

// SupportedLanguages lists the UI languages shipped in the bot locales (ISO 639-1).
var SupportedLanguages = []string{"en", "fr"}

// -----------------------------------------------------------------------------
// Interactive Commands
// -----------------------------------------------------------------------------

const (
	CmdHello        = "hello"
	CmdAdd          = "add"
	CmdChange       = "change"
	CmdPhone        = "phone"
	CmdRemovePhone  = "remove-phone"
	CmdDelete       = "delete"
	CmdAll          = "all"
	CmdAddBirthday  = "add-birthday"
	CmdShowBirthday = "show-birthday"
	CmdBirthdays    = "birthdays"
	CmdExport       = "export"
	CmdImport       = "import"
	CmdClose        = "close"
	CmdExit         = "exit"
)

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyWelcome          = "welcome"
	TKeyGoodbye          = "goodbye"
	TKeyHello            = "hello"
	TKeyInvalidCommand   = "invalid_command"
	TKeyContactAdded     = "contact_added"
	TKeyContactUpdated   = "contact_updated"
	TKeyContactDeleted   = "contact_deleted"
	TKeyPhoneRemoved     = "phone_removed"
	TKeyPhoneList        = "phone_list" // Requires Name, Phones
	TKeyNoPhones         = "no_phones"  // Requires Name
	TKeyNoContacts       = "no_contacts"
	TKeyBirthdayAdded    = "birthday_added"
	TKeyBirthdayShow     = "birthday_show"    // Requires Name, Date
	TKeyBirthdayNotSet   = "birthday_not_set" // Requires Name
	TKeyNoUpcoming       = "no_upcoming"
	TKeyUpcomingLine     = "upcoming_line" // Requires Name, Date
	TKeyExported         = "exported"      // Requires Count, Path
	TKeyImported         = "imported"      // Requires Count, Skipped
	TKeyEvtSummary       = "event_summary" // Requires Name
	TKeyErrInvalidName   = "err_invalid_name"
	TKeyErrInvalidPhone  = "err_invalid_phone"
	TKeyErrInvalidDate   = "err_invalid_date"
	TKeyErrPhoneNotFound = "err_phone_not_found"
	TKeyErrNotFound      = "err_contact_not_found"
	TKeyErrMissingArgs   = "err_missing_arguments"
	TKeyErrExchange      = "err_exchange" // Requires Error
)

// -----------------------------------------------------------------------------
// Standards: iCalendar & vCard
// -----------------------------------------------------------------------------

const (
	ICalVersion   = "2.0"
	ICalProdid    = "-//Go Addressbook//Birthdays//EN"
	ICalCalName   = "Upcoming birthdays"
	ICalMethod    = "PUBLISH"
	ICalScale     = "GREGORIAN"
	ICalComponent = "VALARM"
	ICalAction    = "DISPLAY"
	ICalDomain    = "goaddressbook"

	PropUID         = "UID"
	PropSummary     = "SUMMARY"
	PropDTStart     = "DTSTART"
	PropDTStamp     = "DTSTAMP"
	PropAction      = "ACTION"
	PropDescription = "DESCRIPTION"
	PropTrigger     = "TRIGGER"
	PropVersion     = "VERSION"
	PropProdid      = "PRODID"
	PropXWRCalName  = "X-WR-CALNAME"
	PropCalScale    = "CALSCALE"
	PropMethod      = "METHOD"

	VCardVersion = "4.0"

	// StubVCalendar is the minimal valid iCalendar object used when no birthday is upcoming.
	StubVCalendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + ICalProdid + "\r\nEND:VCALENDAR\r\n"

	FallbackSummary = "Birthday: %s"
	FormatUID       = "%s-%s@%s"

	// ISO8601 reminder trigger, e.g. -P1D for one day before.
	FormatReminderTrigger = "-P%dD"
)

// -----------------------------------------------------------------------------
// Data Formats & Limits
// -----------------------------------------------------------------------------

const (
	// Layouts accepted for vCard BDAY values on import.
	DateFormatFullDash  = "2006-01-02"
	DateFormatFullBasic = "20060102"
	DateFormatRFC3339   = time.RFC3339
	DateFormatICalDate  = "20060102"
)

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	HTTPTimeout         = 30 * time.Second
	ShutdownTimeout     = 5 * time.Second
	ServerReadTimeout   = 10 * time.Second
	ServerWriteTimeout  = 30 * time.Second
	ServerIdleTimeout   = 60 * time.Second
	RetryAfterSeconds   = "10"
	AllowedMethods      = "GET, HEAD"
	MaxHTTPResponseSize = 16 * 1024 * 1024 // 16MB of vCards is plenty for a personal book
	SchemeHTTP          = "http"
	SchemeHTTPS         = "https"
	RouteFeed           = "/birthdays.ics"
	AddrSeparator       = ":"
)

// -----------------------------------------------------------------------------
// HTTP Headers & MIME Types
// -----------------------------------------------------------------------------

const (
	HeaderContentType  = "Content-Type"
	HeaderCacheControl = "Cache-Control"
	HeaderETag         = "ETag"
	HeaderRetryAfter   = "Retry-After"
	HeaderAllow        = "Allow"
	HeaderXContentType = "X-Content-Type-Options"
	HeaderUserAgent    = "User-Agent"
	HeaderIfNoneMatch  = "If-None-Match"

	MimeTextCalendar    = "text/calendar; charset=utf-8"
	MimeNoSniff         = "nosniff"
	CacheControlPrivate = "private, no-cache"

	FormatETag = `"%s"`
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrInvalidName      = "name can't be empty"
	ErrInvalidPhone     = "phone number must be exactly 10 digits"
	ErrInvalidDate      = "invalid date format, use DD.MM.YYYY"
	ErrPhoneNotFound    = "phone not found"
	ErrContactNotFound  = "contact not found"
	ErrMissingArguments = "missing arguments"
	ErrSourceEmpty      = "import source is empty"
	ErrServerStartup    = "server startup failed"
	ErrServerShutdown   = "server shutdown failed"
	ErrPortRequired     = "server port is required"
	ErrInvalidURL       = "invalid URL structure"
	ErrProtocol         = "unsupported protocol scheme (http/https only)"
	ErrVCardParse       = "failed to parse vCard stream"
	ErrVCardEncode      = "failed to encode vCard data"
	ErrICalEncode       = "failed to encode iCalendar data"
	ErrDateParse        = "unable to parse date"
	ErrLogFile          = "failed to open log file"
	ErrCacheDir         = "could not determine user cache dir"
	ErrCreateDir        = "could not create app cache dir"
	ErrAppFailed        = "application failed unexpectedly"
	ErrWriteResp        = "failed to write response body"
	ErrLocalesAccess    = "failed to access embedded locales"
	ErrLocaleLoad       = "failed to load locale file"
	ErrSettingsRead     = "cannot read settings"
	ErrSettingsInvalid  = "invalid settings"
	ErrReadInput        = "failed to read input"
	ErrWriteFile        = "failed to write file"
)

// -----------------------------------------------------------------------------
// Log Messages
// -----------------------------------------------------------------------------

const (
	MsgAppStarting    = "Starting application"
	MsgAppStop        = "Application stopped gracefully"
	MsgCtxCancel      = "Interrupt received, leaving the session"
	MsgSettingsLoaded = "Settings loaded"
	MsgSessionStart   = "Session started"
	MsgSessionEnd     = "Session ended"
	MsgCommand        = "Dispatching command"
	MsgCommandFailed  = "Command failed"
	MsgSkippedCard    = "Skipping malformed vCard"
	MsgSkippedPhone   = "Skipping invalid phone"
	MsgSkippedDate    = "Skipping unusable birthday"
	MsgImportDone     = "vCard import finished"
	MsgExportDone     = "vCard export finished"
	MsgFetchStart     = "Initiating vCard download"
	MsgServerListen   = "HTTP server listening"
	MsgServerStop     = "Shutting down HTTP server..."
	MsgFeedUpdated    = "Birthday feed updated"
	MsgLocaleSkip     = "Skipping non-locale file"
	MsgLocaleLoaded   = "Locale loaded successfully"
	MsgTransMissing   = "Missing translation key"
	MsgPassFail       = "Password retrieval failed (might be empty)"
	MsgLogWarning     = "Warning: %s at %s: %v\n"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyURL       = "url"
	LogKeyStatus    = "status_code"
	LogKeyFile      = "file"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyPort      = "port"
	LogKeyUser      = "user"
	LogKeyCommand   = "command"
	LogKeyArgs      = "args"
	LogKeyValue     = "value"
	LogKeyName      = "name"
	LogKeyCount     = "count"
	LogKeySkipped   = "skipped"
	LogKeySizeBytes = "size_bytes"
	LogKeyETag      = "etag"

	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyGoVer   = "go_version"
	LogKeyEnv     = "env"
	LogKeyOS      = "os"
	LogKeyArch    = "arch"
	LogKeyPID     = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompBot      = "bot"
	CompExchange = "exchange"
	CompFetcher  = "fetcher"
	CompServer   = "server"
	CompMain     = "main"
	CompI18n     = "i18n"
	CompSettings = "settings"
)
