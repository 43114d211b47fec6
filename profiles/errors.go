package profiles

import "errors"

// Sentinel errors for profile and session operations. All of them are
// recoverable and user-facing; match with errors.Is. The UI maps each one
// to a translated message.
var (
	ErrEmptyName        = errors.New("name must not be empty")
	ErrInvalidPin       = errors.New("pin must be exactly 4 digits")
	ErrInvalidAmount    = errors.New("base amount is below the minimum")
	ErrDuplicateProfile = errors.New("a profile with this name already exists")
	ErrProfileNotFound  = errors.New("no profile found with this name")
	ErrWrongOldPin      = errors.New("current pin is incorrect")
	ErrPinMismatch      = errors.New("new pin and confirmation do not match")
	ErrPinUnchanged     = errors.New("new pin must differ from the old one")

	// ErrNoProfile is returned by the session-bound ledger operations when
	// nobody is logged in.
	ErrNoProfile = errors.New("no active profile")
)
