// Package ledger owns the per-profile record of validated contribution days
// and the running total, and enforces the one rule that defines the whole
// product: a day can only be validated once every earlier day in the
// challenge year has been validated.
package ledger

import (
	"errors"
	"sort"
	"time"

	c "git.cmcode.dev/cmcode/savings-challenge-tui/constants"
	"git.cmcode.dev/cmcode/savings-challenge-tui/models"
	"git.cmcode.dev/cmcode/savings-challenge-tui/schedule"

	"github.com/google/uuid"
)

// Sentinel errors for ledger operations. Match with errors.Is.
var (
	// ErrSequenceViolation means an earlier day in the year has not been
	// validated yet.
	ErrSequenceViolation = errors.New("previous days are not all validated")

	// ErrAlreadyValidated means the day was validated before; the second
	// attempt changes nothing.
	ErrAlreadyValidated = errors.New("day is already validated")

	// ErrNotValidated means a cancellation targeted a day that holds no
	// validated contribution.
	ErrNotValidated = errors.New("day is not validated")

	// ErrOutOfYear means the date falls outside the challenge year.
	ErrOutOfYear = errors.New("date is outside the challenge year")
)

// CanValidate reports whether the date may be validated for the profile:
// every day from the start of the year through the day before it must
// already be validated. The first day of the year has no predecessor and is
// always allowed. The scan is O(index) and is deliberately re-run on every
// call, since a cancellation can reopen a gap at any time; callers must not
// cache the result across mutations.
func CanValidate(p *models.Profile, date time.Time) bool {
	index := schedule.DayIndex(date)
	if index <= 0 {
		return true
	}

	keys := schedule.DateKeys()
	for i := 0; i < index; i++ {
		entry, ok := p.Days[keys[i]]
		if !ok || !entry.Validated {
			return false
		}
	}

	return true
}

// Validate records the contribution for the date: it computes the required
// amount from the profile's base amount, stores the day entry, and adds the
// amount to the running total. All checks happen before any mutation, so a
// failed call leaves the profile untouched.
func Validate(p *models.Profile, date time.Time) error {
	key := schedule.FormatDateKey(date)

	if entry, ok := p.Days[key]; ok && entry.Validated {
		return ErrAlreadyValidated
	}

	if schedule.DayIndex(date) < 0 {
		return ErrOutOfYear
	}

	if !CanValidate(p, date) {
		return ErrSequenceViolation
	}

	if p.Days == nil {
		p.Days = make(map[string]models.DayEntry)
	}

	amount := schedule.AmountFor(date, p.BaseAmount)
	p.Days[key] = models.DayEntry{
		ID:          uuid.NewString(),
		Amount:      amount,
		Validated:   true,
		ValidatedAt: time.Now(),
	}
	p.Total += amount

	return nil
}

// Cancel removes a previously validated contribution and subtracts its
// amount from the total, clamped at zero. Cancelling a day that was never
// validated returns ErrNotValidated and mutates nothing; callers are free
// to treat that as a no-op.
func Cancel(p *models.Profile, date time.Time) error {
	key := schedule.FormatDateKey(date)

	entry, ok := p.Days[key]
	if !ok || !entry.Validated {
		return ErrNotValidated
	}

	p.Total -= entry.Amount
	if p.Total < 0 {
		p.Total = 0
	}

	delete(p.Days, key)

	return nil
}

// ResetAll wipes every contribution and zeroes the total. Irreversible.
func ResetAll(p *models.Profile) {
	p.Days = make(map[string]models.DayEntry)
	p.Total = 0
}

// Recalculate recomputes the cached total from the day map and stores it,
// returning the fresh value. The store runs this on load to repair any
// drift in the persisted record.
func Recalculate(p *models.Profile) int {
	total := 0

	for _, entry := range p.Days {
		if entry.Validated {
			total += entry.Amount
		}
	}

	p.Total = total

	return total
}

// ValidatedCount returns the number of validated days.
func ValidatedCount(p *models.Profile) int {
	count := 0

	for _, entry := range p.Days {
		if entry.Validated {
			count++
		}
	}

	return count
}

// Streak counts how many consecutive days ending at the given day are
// validated, walking backwards until the first gap.
func Streak(p *models.Profile, today time.Time) int {
	streak := 0
	current := schedule.Normalize(today)

	for {
		entry, ok := p.Days[schedule.FormatDateKey(current)]
		if !ok || !entry.Validated {
			break
		}

		streak++
		current = current.AddDate(0, 0, -1)
	}

	return streak
}

// Activity pairs a date key with its validated entry for the account page's
// recent-activity feed.
type Activity struct {
	DateKey string
	Entry   models.DayEntry
}

// RecentActivity returns up to n validated contributions, most recent date
// first.
func RecentActivity(p *models.Profile, n int) []Activity {
	activity := []Activity{}

	for key, entry := range p.Days {
		if entry.Validated {
			activity = append(activity, Activity{DateKey: key, Entry: entry})
		}
	}

	// date keys are zero-padded, so string order is date order
	sort.Slice(activity, func(i, j int) bool {
		return activity[j].DateKey < activity[i].DateKey
	})

	if len(activity) > n {
		activity = activity[:n]
	}

	return activity
}

// GoalProgress converts a total into a whole percentage of the fixed yearly
// goal, capped at 100.
func GoalProgress(total int) int {
	progress := (total*100 + c.GoalAmount/2) / c.GoalAmount
	if progress > 100 {
		progress = 100
	}

	return progress
}

// Remaining returns how much is still missing toward the goal, floored at
// zero.
func Remaining(total int) int {
	remaining := c.GoalAmount - total
	if remaining < 0 {
		remaining = 0
	}

	return remaining
}
