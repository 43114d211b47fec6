// Package schedule contains the pure calendar math for the savings
// challenge: mapping a date to its offset within the challenge year, its
// position in the repeating contribution cycle, and the contribution amount
// that position requires. Nothing in this package carries state or touches
// storage.
package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	c "git.cmcode.dev/cmcode/savings-challenge-tui/constants"

	"github.com/teambition/rrule-go"
)

// Start and End bound the challenge year, inclusive. All dates are handled
// at midnight UTC; use Normalize before comparing arbitrary timestamps.
var (
	Start = time.Date(c.Year, time.January, 1, 0, 0, 0, 0, time.UTC)
	End   = time.Date(c.Year, time.December, 31, 0, 0, 0, 0, time.UTC)
)

// dateKeys holds the formatted key of every day in the challenge year, in
// calendar order.
var dateKeys []string

func init() {
	r, err := rrule.NewRRule(rrule.ROption{
		Freq:    rrule.DAILY,
		Dtstart: Start,
		Until:   End,
	})
	if err != nil {
		// the recurrence options are compile-time constants
		panic(fmt.Sprintf("failed to construct challenge year rrule: %v", err.Error()))
	}

	for _, dt := range r.All() {
		dateKeys = append(dateKeys, FormatDateKey(dt))
	}
}

// DateKeys returns the date key of every day in the challenge year, in
// order. Callers must not modify the returned slice.
func DateKeys() []string {
	return dateKeys
}

// Normalize truncates a timestamp to midnight UTC so that two values on the
// same calendar day compare equal.
func Normalize(t time.Time) time.Time {
	year, month, day := t.Date()

	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// FormatDateKey formats a date as the zero-padded YYYY-MM-DD key used
// throughout the application.
func FormatDateKey(t time.Time) string {
	year, month, day := t.Date()

	return fmt.Sprintf("%04d-%02d-%02d", year, int(month), day)
}

// ParseDateKey converts a YYYY-MM-DD key back into a midnight-UTC time. An
// error is returned for anything that doesn't look like a date key.
func ParseDateKey(key string) (time.Time, error) {
	vals := strings.Split(key, "-")
	if len(vals) != 3 {
		return time.Time{}, fmt.Errorf("invalid date key %v", key)
	}

	year, err := strconv.Atoi(vals[0])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid year in date key %v: %w", key, err)
	}

	month, err := strconv.Atoi(vals[1])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month in date key %v: %w", key, err)
	}

	day, err := strconv.Atoi(vals[2])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid day in date key %v: %w", key, err)
	}

	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), nil
}

// InYear reports whether the date falls within the challenge year's bounds.
func InYear(date time.Time) bool {
	d := Normalize(date)

	return !d.Before(Start) && !d.After(End)
}

// DayIndex returns the zero-based offset of the date from the start of the
// challenge year, or -1 when the date falls outside of it.
func DayIndex(date time.Time) int {
	if !InYear(date) {
		return -1
	}

	return int(Normalize(date).Sub(Start).Hours() / 24)
}

// CyclePosition returns the 1-based rank of the date within its repeating
// contribution cycle (1..CycleLength), or 0 outside the challenge year.
func CyclePosition(date time.Time) int {
	index := DayIndex(date)
	if index < 0 {
		return 0
	}

	return (index % c.CycleLength) + 1
}

// AmountFor computes the required contribution for a date given a profile's
// base amount: the base amount on cycle position 1, plus one step per
// additional position. Dates outside the challenge year cost 0. A
// non-positive base falls back to the minimum, mirroring the guest default.
func AmountFor(date time.Time, baseAmount int) int {
	position := CyclePosition(date)
	if position == 0 {
		return 0
	}

	if baseAmount <= 0 {
		baseAmount = c.MinBaseAmount
	}

	return baseAmount + (position-1)*c.StepAmount
}
