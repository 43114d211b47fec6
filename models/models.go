package models

import (
	"time"

	c "git.cmcode.dev/cmcode/savings-challenge-tui/constants"
)

// DayEntry records a single validated contribution. Only validated days are
// ever stored in a profile's day map; a missing key means the day has not
// been contributed yet.
type DayEntry struct {
	// ID uniquely identifies this contribution, mainly for the account
	// page's activity feed.
	ID          string    `yaml:"id"`
	Amount      int       `yaml:"amount"`
	Validated   bool      `yaml:"validated"`
	ValidatedAt time.Time `yaml:"validatedAt"`
}

type Profile struct {
	// ID is derived from Name (lowercased, whitespace collapsed to
	// underscores) and is the profile's key in the store. Renaming a
	// profile re-keys it.
	ID   string `yaml:"id"`
	Name string `yaml:"name"`

	// PIN is a 4-digit numeric string. Empty for the guest profile.
	PIN string `yaml:"pin"`

	// BaseAmount is the contribution for cycle position 1. Always a
	// multiple of 100, at least 100.
	BaseAmount int `yaml:"baseAmount"`

	// Days maps a YYYY-MM-DD date key to its validated contribution.
	Days map[string]DayEntry `yaml:"days"`

	// Total caches the sum of all validated amounts. It is repaired from
	// Days when the store is loaded.
	Total int `yaml:"total"`
}

// IsGuest reports whether this is the ephemeral guest profile.
func (p *Profile) IsGuest() bool {
	return p.ID == c.GuestID
}

// State is the primary persisted record: every non-guest profile plus the
// current session pointer. CurrentProfileID is empty when nobody is logged
// in or when the guest was active at save time.
type State struct {
	Profiles         map[string]*Profile `yaml:"profiles"`
	CurrentProfileID string              `yaml:"currentProfileId"`
}

// Preferences is the secondary persisted record, holding UI-facing
// settings. It never references profile data.
type Preferences struct {
	Notifications bool   `yaml:"notifications"`
	DarkMode      bool   `yaml:"darkMode"`
	Reminder      bool   `yaml:"reminder"`
	ReminderTime  string `yaml:"reminderTime"`
}
