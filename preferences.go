package main

import (
	"errors"

	c "git.cmcode.dev/cmcode/savings-challenge-tui/constants"
	m "git.cmcode.dev/cmcode/savings-challenge-tui/models"
	"git.cmcode.dev/cmcode/savings-challenge-tui/storage"

	"gopkg.in/yaml.v3"
)

// defaultPreferences mirrors the defaults used when nothing has ever been
// stored under the preferences key.
func defaultPreferences() m.Preferences {
	return m.Preferences{
		Notifications: true,
		DarkMode:      false,
		Reminder:      false,
		ReminderTime:  c.DefaultReminderTime,
	}
}

// loadPreferences reads the preferences record, falling back to defaults on
// a first run or on a corrupt record. Preferences are cosmetic, so a corrupt
// record is logged and discarded rather than treated as fatal.
func loadPreferences() m.Preferences {
	prefs := defaultPreferences()

	b, err := SC.Adapter.Get(c.StorageKeyPreferences)
	if errors.Is(err, storage.ErrNotFound) {
		return prefs
	}

	if err != nil {
		SC.Log.Warn("failed to read preferences", "err", err)
		return prefs
	}

	err = yaml.Unmarshal(b, &prefs)
	if err != nil {
		SC.Log.Warn("failed to unmarshal preferences", "err", err)
		return defaultPreferences()
	}

	if prefs.ReminderTime == "" {
		prefs.ReminderTime = c.DefaultReminderTime
	}

	return prefs
}

// savePreferences writes the current preferences. Failures are logged and
// swallowed; the in-memory preferences stay authoritative for the session.
func savePreferences() {
	b, err := yaml.Marshal(SC.Prefs)
	if err != nil {
		SC.Log.Warn("failed to marshal preferences", "err", err)
		return
	}

	err = SC.Adapter.Set(c.StorageKeyPreferences, b)
	if err != nil {
		SC.Log.Warn("failed to save preferences", "err", err)
	}
}
