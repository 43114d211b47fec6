package profiles_test

import (
	"testing"
	"time"

	c "git.cmcode.dev/cmcode/savings-challenge-tui/constants"
	"git.cmcode.dev/cmcode/savings-challenge-tui/ledger"
	"git.cmcode.dev/cmcode/savings-challenge-tui/profiles"
	"git.cmcode.dev/cmcode/savings-challenge-tui/storage"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func newStore(t *testing.T) (*profiles.Store, *storage.MemAdapter) {
	t.Helper()

	adapter := storage.NewMemAdapter()
	s := profiles.NewStore(adapter, nil)
	require.NoError(t, s.Load())

	return s, adapter
}

func day(month time.Month, d int) time.Time {
	return time.Date(c.Year, month, d, 0, 0, 0, 0, time.UTC)
}

func TestNormalizeID(t *testing.T) {
	require.Equal(t, "awa_diop", profiles.NormalizeID("  Awa   Diop "))
	require.Equal(t, "awa", profiles.NormalizeID("AWA"))
	require.Equal(t, "", profiles.NormalizeID("   "))
}

func TestNormalizeBaseAmount(t *testing.T) {
	_, err := profiles.NormalizeBaseAmount(99)
	require.ErrorIs(t, err, profiles.ErrInvalidAmount)

	_, err = profiles.NormalizeBaseAmount(0)
	require.ErrorIs(t, err, profiles.ErrInvalidAmount)

	for input, want := range map[int]int{
		100: 100,
		120: 100,
		149: 100,
		150: 200,
		500: 500,
		999: 1000,
	} {
		got, err := profiles.NormalizeBaseAmount(input)
		require.NoError(t, err)
		require.Equal(t, want, got, "input %v", input)
	}
}

func TestCreate(t *testing.T) {
	s, _ := newStore(t)

	p, err := s.Create("Awa Diop", "1234", 120)
	require.NoError(t, err)
	require.Equal(t, "awa_diop", p.ID)
	require.Equal(t, "Awa Diop", p.Name)
	require.Equal(t, 100, p.BaseAmount)
	require.Equal(t, p, s.Current())

	// created profiles start with an empty ledger
	require.Empty(t, p.Days)
	require.Equal(t, 0, p.Total)

	_, err = s.Create("  ", "1234", 100)
	require.ErrorIs(t, err, profiles.ErrEmptyName)

	_, err = s.Create("Moussa", "12a4", 100)
	require.ErrorIs(t, err, profiles.ErrInvalidPin)

	_, err = s.Create("Moussa", "123", 100)
	require.ErrorIs(t, err, profiles.ErrInvalidPin)

	_, err = s.Create("Moussa", "1234", 50)
	require.ErrorIs(t, err, profiles.ErrInvalidAmount)

	// a name normalizing to an existing id is a duplicate
	_, err = s.Create("AWA   DIOP", "9999", 100)
	require.ErrorIs(t, err, profiles.ErrDuplicateProfile)

	// the guest id is reserved
	_, err = s.Create("Guest", "1234", 100)
	require.ErrorIs(t, err, profiles.ErrDuplicateProfile)
}

func TestAuthenticate(t *testing.T) {
	s, _ := newStore(t)

	_, err := s.Create("Awa", "1234", 100)
	require.NoError(t, err)
	s.Logout()
	require.Nil(t, s.Current())

	_, err = s.Authenticate("Moussa", "1234")
	require.ErrorIs(t, err, profiles.ErrProfileNotFound)

	_, err = s.Authenticate("Awa", "0000")
	require.ErrorIs(t, err, profiles.ErrInvalidPin)
	require.Nil(t, s.Current())

	p, err := s.Authenticate("  awa ", "1234")
	require.NoError(t, err)
	require.Equal(t, p, s.Current())
}

func TestGuestSession(t *testing.T) {
	s, adapter := newStore(t)

	p := s.LoginAsGuest()
	require.True(t, p.IsGuest())
	require.Equal(t, c.MinBaseAmount, p.BaseAmount)
	require.Equal(t, p, s.Current())

	// guest ledger mutations stay in memory only
	require.NoError(t, s.Validate(day(time.January, 1)))
	require.Equal(t, 100, p.Total)
	_, err := adapter.Get(c.StorageKeyProfiles)
	require.ErrorIs(t, err, storage.ErrNotFound)

	// a fresh guest login discards prior guest data
	p2 := s.LoginAsGuest()
	require.Empty(t, p2.Days)
	require.Equal(t, 0, p2.Total)

	// switching back to login discards the guest entirely
	s.SwitchToLogin()
	require.Nil(t, s.Current())
	require.NotContains(t, s.Profiles, c.GuestID)
}

func TestGuestExcludedFromPersistence(t *testing.T) {
	s, adapter := newStore(t)

	_, err := s.Create("Awa", "1234", 100)
	require.NoError(t, err)

	s.LoginAsGuest()
	require.NoError(t, s.Validate(day(time.January, 1)))

	// force a persisted write while the guest is active
	awa := s.Profiles["awa"]
	require.NoError(t, s.UpdateBaseAmount(awa, 300))

	reloaded := profiles.NewStore(adapter, nil)
	require.NoError(t, reloaded.Load())

	require.NotContains(t, reloaded.Profiles, c.GuestID)
	require.Contains(t, reloaded.Profiles, "awa")

	// the session pointer is persisted as empty while the guest was active
	require.Equal(t, "", reloaded.CurrentID)
}

func TestRoundTrip(t *testing.T) {
	s, adapter := newStore(t)

	_, err := s.Create("Awa Diop", "1234", 500)
	require.NoError(t, err)
	require.NoError(t, s.Validate(day(time.January, 1)))
	require.NoError(t, s.Validate(day(time.January, 2)))

	reloaded := profiles.NewStore(adapter, nil)
	require.NoError(t, reloaded.Load())

	require.Equal(t, "awa_diop", reloaded.CurrentID)

	p := reloaded.Current()
	require.NotNil(t, p)
	require.Equal(t, "Awa Diop", p.Name)
	require.Equal(t, "1234", p.PIN)
	require.Equal(t, 500, p.BaseAmount)
	require.Len(t, p.Days, 2)
	require.Equal(t, 1100, p.Total)
}

func TestLoadRepairsTotal(t *testing.T) {
	s, adapter := newStore(t)

	_, err := s.Create("Awa", "1234", 100)
	require.NoError(t, err)
	require.NoError(t, s.Validate(day(time.January, 1)))

	// corrupt the cached total inside the persisted record
	b, err := adapter.Get(c.StorageKeyProfiles)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, yaml.Unmarshal(b, &raw))
	rawProfiles := raw["profiles"].(map[string]any)
	rawProfiles["awa"].(map[string]any)["total"] = 123456

	corrupted, err := yaml.Marshal(raw)
	require.NoError(t, err)
	require.NoError(t, adapter.Set(c.StorageKeyProfiles, corrupted))

	reloaded := profiles.NewStore(adapter, nil)
	require.NoError(t, reloaded.Load())
	require.Equal(t, 100, reloaded.Profiles["awa"].Total)
}

func TestRename(t *testing.T) {
	s, _ := newStore(t)

	awa, err := s.Create("Awa", "1234", 100)
	require.NoError(t, err)
	moussa, err := s.Create("Moussa", "5678", 100)
	require.NoError(t, err)

	// renaming to a name owned by a different profile is refused and both
	// profiles keep their ids
	err = s.Rename(moussa, "AWA")
	require.ErrorIs(t, err, profiles.ErrDuplicateProfile)
	require.Equal(t, "awa", awa.ID)
	require.Equal(t, "moussa", moussa.ID)

	err = s.Rename(moussa, "Guest")
	require.ErrorIs(t, err, profiles.ErrDuplicateProfile)

	err = s.Rename(moussa, "  ")
	require.ErrorIs(t, err, profiles.ErrEmptyName)

	// renaming to a casing variant of itself keeps the same id
	require.NoError(t, s.Rename(moussa, "MOUSSA"))
	require.Equal(t, "moussa", moussa.ID)
	require.Equal(t, "MOUSSA", moussa.Name)

	// a real rename re-keys the store and the session follows
	require.Equal(t, "moussa", s.CurrentID)
	require.NoError(t, s.Rename(moussa, "Moussa Ba"))
	require.Equal(t, "moussa_ba", moussa.ID)
	require.NotContains(t, s.Profiles, "moussa")
	require.Contains(t, s.Profiles, "moussa_ba")
	require.Equal(t, "moussa_ba", s.CurrentID)

	// renaming a non-active profile leaves the session alone
	require.NoError(t, s.Rename(awa, "Awa Diop"))
	require.Equal(t, "moussa_ba", s.CurrentID)
}

func TestUpdateBaseAmount(t *testing.T) {
	s, _ := newStore(t)

	p, err := s.Create("Awa", "1234", 100)
	require.NoError(t, err)

	require.ErrorIs(t, s.UpdateBaseAmount(p, 10), profiles.ErrInvalidAmount)
	require.Equal(t, 100, p.BaseAmount)

	require.NoError(t, s.UpdateBaseAmount(p, 450))
	require.Equal(t, 500, p.BaseAmount)
}

func TestChangePin(t *testing.T) {
	s, _ := newStore(t)

	p, err := s.Create("Awa", "1234", 100)
	require.NoError(t, err)

	require.ErrorIs(t, s.ChangePin(p, "0000", "5678", "5678"), profiles.ErrWrongOldPin)
	require.ErrorIs(t, s.ChangePin(p, "1234", "56", "56"), profiles.ErrInvalidPin)
	require.ErrorIs(t, s.ChangePin(p, "1234", "5678", "8765"), profiles.ErrPinMismatch)
	require.ErrorIs(t, s.ChangePin(p, "1234", "1234", "1234"), profiles.ErrPinUnchanged)
	require.Equal(t, "1234", p.PIN)

	require.NoError(t, s.ChangePin(p, "1234", "5678", "5678"))
	require.Equal(t, "5678", p.PIN)
}

func TestSetPin(t *testing.T) {
	s, _ := newStore(t)

	p, err := s.Create("Awa", "1234", 100)
	require.NoError(t, err)

	require.ErrorIs(t, s.SetPin(p, "12"), profiles.ErrInvalidPin)
	require.NoError(t, s.SetPin(p, "9999"))
	require.Equal(t, "9999", p.PIN)
}

func TestDelete(t *testing.T) {
	s, adapter := newStore(t)

	p, err := s.Create("Awa", "1234", 100)
	require.NoError(t, err)

	s.Delete(p)
	require.Nil(t, s.Current())
	require.NotContains(t, s.Profiles, "awa")

	reloaded := profiles.NewStore(adapter, nil)
	require.NoError(t, reloaded.Load())
	require.Empty(t, reloaded.Profiles)
	require.Equal(t, "", reloaded.CurrentID)
}

func TestResetAll(t *testing.T) {
	s, _ := newStore(t)

	p, err := s.Create("Awa", "1234", 100)
	require.NoError(t, err)
	require.NoError(t, s.Validate(day(time.January, 1)))
	require.NoError(t, s.Validate(day(time.January, 2)))

	s.ResetAll(p)
	require.Empty(t, p.Days)
	require.Equal(t, 0, p.Total)
}

func TestBoundLedgerOperations(t *testing.T) {
	s, _ := newStore(t)

	// logged out: everything is inert
	require.Equal(t, 0, s.AmountFor(day(time.January, 1)))
	require.False(t, s.CanValidate(day(time.January, 1)))
	require.ErrorIs(t, s.Validate(day(time.January, 1)), profiles.ErrNoProfile)
	require.ErrorIs(t, s.Cancel(day(time.January, 1)), profiles.ErrNoProfile)

	p, err := s.Create("Awa", "1234", 500)
	require.NoError(t, err)

	require.Equal(t, 500, s.AmountFor(day(time.January, 1)))
	require.True(t, s.CanValidate(day(time.January, 1)))
	require.NoError(t, s.Validate(day(time.January, 1)))
	require.ErrorIs(t, s.Validate(day(time.January, 3)), ledger.ErrSequenceViolation)
	require.NoError(t, s.Cancel(day(time.January, 1)))
	require.Equal(t, 0, p.Total)
}

func TestSelectedDateClearedOnTransitions(t *testing.T) {
	s, _ := newStore(t)

	s.ToggleSelectedDate("2026-01-05")
	require.Equal(t, "2026-01-05", s.SelectedDate)

	// toggling the same key clears it
	s.ToggleSelectedDate("2026-01-05")
	require.Equal(t, "", s.SelectedDate)

	s.ToggleSelectedDate("2026-01-05")
	_, err := s.Create("Awa", "1234", 100)
	require.NoError(t, err)
	require.Equal(t, "", s.SelectedDate)

	s.ToggleSelectedDate("2026-01-05")
	s.Logout()
	require.Equal(t, "", s.SelectedDate)

	s.ToggleSelectedDate("2026-01-05")
	s.LoginAsGuest()
	require.Equal(t, "", s.SelectedDate)

	s.ToggleSelectedDate("2026-01-05")
	s.SwitchToLogin()
	require.Equal(t, "", s.SelectedDate)

	_, err = s.Authenticate("Awa", "1234")
	require.NoError(t, err)
	s.ToggleSelectedDate("2026-01-05")
	s.Delete(s.Current())
	require.Equal(t, "", s.SelectedDate)
}

func TestPersistenceFailureIsNonFatal(t *testing.T) {
	s, adapter := newStore(t)

	failures := 0
	s.OnSaveError = func(err error) {
		require.Error(t, err)

		failures++
	}

	adapter.FailWrites = true

	// the operation still succeeds in memory
	p, err := s.Create("Awa", "1234", 100)
	require.NoError(t, err)
	require.NoError(t, s.Validate(day(time.January, 1)))
	require.Equal(t, 100, p.Total)
	require.Equal(t, p, s.Current())

	// both failed writes were surfaced
	require.Equal(t, 2, failures)
}
