package ledger_test

import (
	"math/rand"
	"testing"
	"time"

	c "git.cmcode.dev/cmcode/savings-challenge-tui/constants"
	"git.cmcode.dev/cmcode/savings-challenge-tui/ledger"
	"git.cmcode.dev/cmcode/savings-challenge-tui/models"
	"git.cmcode.dev/cmcode/savings-challenge-tui/schedule"

	"github.com/stretchr/testify/require"
)

func newProfile(base int) *models.Profile {
	return &models.Profile{
		ID:         "tester",
		Name:       "Tester",
		PIN:        "1234",
		BaseAmount: base,
		Days:       map[string]models.DayEntry{},
	}
}

func day(month time.Month, d int) time.Time {
	return time.Date(c.Year, month, d, 0, 0, 0, 0, time.UTC)
}

// sumOfDays recomputes the total the slow way, independent of the cache.
func sumOfDays(p *models.Profile) int {
	total := 0
	for _, e := range p.Days {
		if e.Validated {
			total += e.Amount
		}
	}

	return total
}

// assertSequential checks the core invariant: if day k is validated, every
// day before it is too.
func assertSequential(t *testing.T, p *models.Profile) {
	t.Helper()

	seenGap := false

	for _, key := range schedule.DateKeys() {
		entry, ok := p.Days[key]
		validated := ok && entry.Validated

		if validated {
			require.False(t, seenGap, "day %v is validated after a gap", key)
		} else {
			seenGap = true
		}
	}
}

func TestValidateSequence(t *testing.T) {
	p := newProfile(100)

	// the worked example: base 100, year starts January 1st
	require.NoError(t, ledger.Validate(p, day(time.January, 1)))
	require.Equal(t, 100, p.Total)

	require.NoError(t, ledger.Validate(p, day(time.January, 2)))
	require.Equal(t, 300, p.Total)

	// January 11th would cost 100 again (cycle position 1), but days 3-10
	// are still open, so it must be refused without any state change
	err := ledger.Validate(p, day(time.January, 11))
	require.ErrorIs(t, err, ledger.ErrSequenceViolation)
	require.Equal(t, 300, p.Total)
	require.Len(t, p.Days, 2)

	// cancelling the 2nd reopens the gap before the 3rd
	require.NoError(t, ledger.Cancel(p, day(time.January, 2)))
	require.Equal(t, 100, p.Total)
	require.False(t, ledger.CanValidate(p, day(time.January, 3)))
	require.True(t, ledger.CanValidate(p, day(time.January, 2)))
}

func TestValidateOutOfOrderFromEmpty(t *testing.T) {
	p := newProfile(100)

	err := ledger.Validate(p, day(time.January, 3))
	require.ErrorIs(t, err, ledger.ErrSequenceViolation)
	require.Equal(t, 0, p.Total)
	require.Empty(t, p.Days)
}

func TestValidateIdempotence(t *testing.T) {
	p := newProfile(200)

	require.NoError(t, ledger.Validate(p, day(time.January, 1)))
	total := p.Total
	entry := p.Days[schedule.FormatDateKey(day(time.January, 1))]

	err := ledger.Validate(p, day(time.January, 1))
	require.ErrorIs(t, err, ledger.ErrAlreadyValidated)
	require.Equal(t, total, p.Total)
	require.Equal(t, entry, p.Days[schedule.FormatDateKey(day(time.January, 1))])
}

func TestValidateOutOfYear(t *testing.T) {
	p := newProfile(100)

	err := ledger.Validate(p, time.Date(c.Year-1, time.December, 31, 0, 0, 0, 0, time.UTC))
	require.ErrorIs(t, err, ledger.ErrOutOfYear)
	require.Empty(t, p.Days)
	require.Equal(t, 0, p.Total)
}

func TestCancel(t *testing.T) {
	p := newProfile(100)

	// cancelling an untouched day is signalled but harmless
	err := ledger.Cancel(p, day(time.January, 1))
	require.ErrorIs(t, err, ledger.ErrNotValidated)
	require.Equal(t, 0, p.Total)

	require.NoError(t, ledger.Validate(p, day(time.January, 1)))
	require.NoError(t, ledger.Cancel(p, day(time.January, 1)))
	require.Equal(t, 0, p.Total)
	require.Empty(t, p.Days)
}

func TestCancelClampsTotal(t *testing.T) {
	p := newProfile(100)

	require.NoError(t, ledger.Validate(p, day(time.January, 1)))

	// simulate a drifted cache that undercounts
	p.Total = 50

	require.NoError(t, ledger.Cancel(p, day(time.January, 1)))
	require.Equal(t, 0, p.Total)
}

func TestResetAll(t *testing.T) {
	p := newProfile(100)

	for d := 1; d <= 5; d++ {
		require.NoError(t, ledger.Validate(p, day(time.January, d)))
	}

	ledger.ResetAll(p)
	require.Empty(t, p.Days)
	require.Equal(t, 0, p.Total)

	// the first day is immediately available again
	require.True(t, ledger.CanValidate(p, day(time.January, 1)))
}

func TestRecalculate(t *testing.T) {
	p := newProfile(100)

	for d := 1; d <= 3; d++ {
		require.NoError(t, ledger.Validate(p, day(time.January, d)))
	}

	want := p.Total
	p.Total = 999999

	require.Equal(t, want, ledger.Recalculate(p))
	require.Equal(t, want, p.Total)
}

// TestRandomizedSequences drives the ledger through random validate/cancel
// calls and asserts the two core invariants after every step: the total
// always equals the sum of stored amounts, and validated days always form a
// contiguous prefix of the year.
func TestRandomizedSequences(t *testing.T) {
	rng := rand.New(rand.NewSource(20260101))

	for trial := 0; trial < 20; trial++ {
		p := newProfile((rng.Intn(5) + 1) * 100)

		for step := 0; step < 200; step++ {
			d := day(time.January, 1).AddDate(0, 0, rng.Intn(40))

			if rng.Intn(3) == 0 {
				_ = ledger.Cancel(p, d)
			} else {
				_ = ledger.Validate(p, d)
			}

			require.Equal(t, sumOfDays(p), p.Total)
			require.GreaterOrEqual(t, p.Total, 0)
			assertSequential(t, p)
		}
	}
}

func TestStreak(t *testing.T) {
	p := newProfile(100)

	require.Equal(t, 0, ledger.Streak(p, day(time.January, 3)))

	for d := 1; d <= 3; d++ {
		require.NoError(t, ledger.Validate(p, day(time.January, d)))
	}

	require.Equal(t, 3, ledger.Streak(p, day(time.January, 3)))
	require.Equal(t, 0, ledger.Streak(p, day(time.January, 4)))
}

func TestRecentActivity(t *testing.T) {
	p := newProfile(100)

	require.Empty(t, ledger.RecentActivity(p, 5))

	for d := 1; d <= 8; d++ {
		require.NoError(t, ledger.Validate(p, day(time.January, d)))
	}

	activity := ledger.RecentActivity(p, 5)
	require.Len(t, activity, 5)
	require.Equal(t, schedule.FormatDateKey(day(time.January, 8)), activity[0].DateKey)
	require.Equal(t, schedule.FormatDateKey(day(time.January, 4)), activity[4].DateKey)
}

func TestGoalProgress(t *testing.T) {
	require.Equal(t, 0, ledger.GoalProgress(0))
	require.Equal(t, 50, ledger.GoalProgress(c.GoalAmount/2))
	require.Equal(t, 100, ledger.GoalProgress(c.GoalAmount))
	require.Equal(t, 100, ledger.GoalProgress(c.GoalAmount*2))

	require.Equal(t, c.GoalAmount, ledger.Remaining(0))
	require.Equal(t, 0, ledger.Remaining(c.GoalAmount*2))
}
