package locale

import "errors"

// Sentinel errors for bundle loading and locale selection.
var (
	ErrUnknownFormat = errors.New("unknown bundle format")
	ErrUnknownLocale = errors.New("unknown locale")
)
