package book

import (
	"errors"

	"github.com/tartampluch/go-addressbook/internal/config"
)

// Error kinds reported by Record and Book operations. Callers match them with
// errors.Is; the text is technical and not meant for display.
var (
	ErrInvalidName      = errors.New(config.ErrInvalidName)
	ErrInvalidPhone     = errors.New(config.ErrInvalidPhone)
	ErrInvalidDate      = errors.New(config.ErrInvalidDate)
	ErrPhoneNotFound    = errors.New(config.ErrPhoneNotFound)
	ErrContactNotFound  = errors.New(config.ErrContactNotFound)
	ErrMissingArguments = errors.New(config.ErrMissingArguments)
)
