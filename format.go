package main

import (
	"errors"
	"fmt"
	"time"

	"git.cmcode.dev/cmcode/savings-challenge-tui/ledger"
	"git.cmcode.dev/cmcode/savings-challenge-tui/profiles"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// amountPrinter groups digits the way the challenge's currency is written,
// e.g. 12345 renders as "12 345".
//
//nolint:gochecknoglobals
var amountPrinter = message.NewPrinter(language.French)

// formatAmount renders an amount in francs with digit grouping.
func formatAmount(n int) string {
	return amountPrinter.Sprintf("%d", n) + " F"
}

// relativeTime renders how long ago t was, in the coarse buckets used by the
// recent activity list.
func relativeTime(t time.Time) string {
	d := time.Since(t)

	switch {
	case d < time.Minute:
		return SC.T["TimeJustNow"]
	case d < time.Hour:
		return fmt.Sprintf(SC.T["TimeMinutesAgo"], int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf(SC.T["TimeHoursAgo"], int(d.Hours()))
	default:
		return fmt.Sprintf(SC.T["TimeDaysAgo"], int(d.Hours()/24))
	}
}

// errText maps a domain error to its translated, user-facing message.
func errText(err error) string {
	for sentinel, key := range map[error]string{
		profiles.ErrEmptyName:        "ErrEmptyName",
		profiles.ErrInvalidPin:       "ErrInvalidPin",
		profiles.ErrInvalidAmount:    "ErrInvalidAmount",
		profiles.ErrDuplicateProfile: "ErrDuplicateProfile",
		profiles.ErrProfileNotFound:  "ErrProfileNotFound",
		profiles.ErrWrongOldPin:      "ErrWrongOldPin",
		profiles.ErrPinMismatch:      "ErrPinMismatch",
		profiles.ErrPinUnchanged:     "ErrPinUnchanged",
		profiles.ErrNoProfile:        "ErrNoProfile",
		ledger.ErrSequenceViolation:  "ErrSequenceViolation",
		ledger.ErrAlreadyValidated:   "ErrAlreadyValidated",
		ledger.ErrNotValidated:       "ErrNotValidated",
		ledger.ErrOutOfYear:          "ErrOutOfYear",
	} {
		if errors.Is(err, sentinel) {
			return SC.T[key]
		}
	}

	return SC.T["ErrUnknown"]
}
