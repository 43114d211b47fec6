// Package profiles owns the profile collection and the session: which
// profile (if any) is active, the ephemeral guest lifecycle, and the
// currently selected calendar date. Every mutating operation validates
// before it touches anything, then persists the non-guest collection
// through the storage adapter. Persistence failures are logged and never
// abort an operation; the in-memory state stays authoritative for the rest
// of the session.
package profiles

import (
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	c "git.cmcode.dev/cmcode/savings-challenge-tui/constants"
	"git.cmcode.dev/cmcode/savings-challenge-tui/ledger"
	"git.cmcode.dev/cmcode/savings-challenge-tui/models"
	"git.cmcode.dev/cmcode/savings-challenge-tui/schedule"
	"git.cmcode.dev/cmcode/savings-challenge-tui/storage"

	"gopkg.in/yaml.v3"
)

var pinPattern = regexp.MustCompile(`^\d{4}$`)

// NormalizeID derives a profile id from a display name: trimmed,
// lowercased, with runs of whitespace collapsed to single underscores.
func NormalizeID(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "_")
}

// NormalizeBaseAmount validates a requested base amount and rounds it to
// the nearest multiple of 100. The minimum applies to the raw input, before
// rounding.
func NormalizeBaseAmount(amount int) (int, error) {
	if amount < c.MinBaseAmount {
		return 0, ErrInvalidAmount
	}

	return (amount + 50) / 100 * 100, nil
}

type Store struct {
	// Profiles maps profile id to profile. The guest profile, when one is
	// active, lives here too but is skipped when persisting.
	Profiles map[string]*models.Profile

	// CurrentID is the active session profile id, or empty when logged
	// out.
	CurrentID string

	// SelectedDate is the date key currently selected in the calendar, or
	// empty. It is cleared on every session transition so a selection can
	// never leak across profiles.
	SelectedDate string

	// OnSaveError, when set, is called after a failed persistence write so
	// the UI can surface that the session's data may not survive a reload.
	// The write failure itself is never fatal.
	OnSaveError func(err error)

	adapter storage.Adapter
	log     *slog.Logger
}

func NewStore(adapter storage.Adapter, log *slog.Logger) *Store {
	if log == nil {
		log = slog.Default()
	}

	return &Store{
		Profiles: make(map[string]*models.Profile),
		adapter:  adapter,
		log:      log,
	}
}

// Load reads the persisted profile collection and session pointer. A
// missing record is a clean first run. The session id is restored verbatim;
// a guest profile is never reconstructed from storage. Each loaded
// profile's cached total is repaired from its day map.
func (s *Store) Load() error {
	b, err := s.adapter.Get(c.StorageKeyProfiles)
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}

	if err != nil {
		return fmt.Errorf("failed to read profiles record: %w", err)
	}

	var state models.State

	err = yaml.Unmarshal(b, &state)
	if err != nil {
		return fmt.Errorf("failed to unmarshal profiles record: %w", err)
	}

	s.Profiles = state.Profiles
	if s.Profiles == nil {
		s.Profiles = make(map[string]*models.Profile)
	}

	// a guest should never have been written; drop one if it was
	delete(s.Profiles, c.GuestID)

	for id, p := range s.Profiles {
		p.ID = id

		if p.Days == nil {
			p.Days = make(map[string]models.DayEntry)
		}

		ledger.Recalculate(p)
	}

	s.CurrentID = state.CurrentProfileID

	return nil
}

// save persists the non-guest profile collection and the session pointer
// (emptied when the guest is active). Failures are logged at warn level and
// otherwise swallowed: losing a write must not take down the session, but
// the user risks losing data on reload, so it has to leave a trace.
func (s *Store) save() {
	state := models.State{Profiles: make(map[string]*models.Profile)}

	for id, p := range s.Profiles {
		if id != c.GuestID {
			state.Profiles[id] = p
		}
	}

	if s.CurrentID != c.GuestID {
		state.CurrentProfileID = s.CurrentID
	}

	b, err := yaml.Marshal(state)
	if err != nil {
		s.log.Warn("failed to marshal profiles record", "error", err)
		return
	}

	err = s.adapter.Set(c.StorageKeyProfiles, b)
	if err != nil {
		s.log.Warn("failed to persist profiles record", "error", err)

		if s.OnSaveError != nil {
			s.OnSaveError(err)
		}
	}
}

// Current returns the active profile, or nil when logged out.
func (s *Store) Current() *models.Profile {
	if s.CurrentID == "" {
		return nil
	}

	return s.Profiles[s.CurrentID]
}

// Create signs up a new profile and makes it the active session. The name
// must normalize to an id that is neither taken nor the reserved guest id,
// the pin must be exactly 4 digits, and the base amount must pass
// NormalizeBaseAmount.
func (s *Store) Create(name, pin string, baseAmount int) (*models.Profile, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}

	if !pinPattern.MatchString(pin) {
		return nil, ErrInvalidPin
	}

	base, err := NormalizeBaseAmount(baseAmount)
	if err != nil {
		return nil, err
	}

	id := NormalizeID(name)
	if id == c.GuestID {
		return nil, ErrDuplicateProfile
	}

	if _, ok := s.Profiles[id]; ok {
		return nil, ErrDuplicateProfile
	}

	p := &models.Profile{
		ID:         id,
		Name:       name,
		PIN:        pin,
		BaseAmount: base,
		Days:       make(map[string]models.DayEntry),
	}

	s.Profiles[id] = p
	s.CurrentID = id
	s.SelectedDate = ""
	s.save()

	return p, nil
}

// Authenticate logs an existing profile in by name and pin and makes it the
// active session.
func (s *Store) Authenticate(name, pin string) (*models.Profile, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}

	p, ok := s.Profiles[NormalizeID(name)]
	if !ok {
		return nil, ErrProfileNotFound
	}

	if p.PIN != pin {
		return nil, ErrInvalidPin
	}

	s.CurrentID = p.ID
	s.SelectedDate = ""
	s.save()

	return p, nil
}

// LoginAsGuest activates a fresh, empty guest profile. Any previous guest
// session's data is discarded, never restored, and nothing is persisted.
func (s *Store) LoginAsGuest() *models.Profile {
	p := &models.Profile{
		ID:         c.GuestID,
		Name:       "Guest",
		BaseAmount: c.MinBaseAmount,
		Days:       make(map[string]models.DayEntry),
	}

	s.Profiles[c.GuestID] = p
	s.CurrentID = c.GuestID
	s.SelectedDate = ""

	return p
}

// SwitchToLogin discards the guest session and returns to the logged-out
// state. Nothing persisted changes, so nothing is written.
func (s *Store) SwitchToLogin() {
	delete(s.Profiles, c.GuestID)
	s.CurrentID = ""
	s.SelectedDate = ""
}

// Logout clears the session and persists the clearing. A lingering guest
// profile is discarded along the way.
func (s *Store) Logout() {
	delete(s.Profiles, c.GuestID)
	s.CurrentID = ""
	s.SelectedDate = ""
	s.save()
}

// Rename changes a profile's display name, re-keying it in the store when
// the derived id changes. If the profile was the active session, the
// session pointer follows it.
func (s *Store) Rename(p *models.Profile, newName string) error {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return ErrEmptyName
	}

	newID := NormalizeID(newName)
	if newID == c.GuestID {
		return ErrDuplicateProfile
	}

	if other, ok := s.Profiles[newID]; ok && other != p {
		return ErrDuplicateProfile
	}

	oldID := p.ID
	p.Name = newName

	if newID != oldID {
		p.ID = newID
		s.Profiles[newID] = p
		delete(s.Profiles, oldID)

		if s.CurrentID == oldID {
			s.CurrentID = newID
		}
	}

	s.save()

	return nil
}

// UpdateBaseAmount applies the same validation and rounding as Create.
// Already-validated days keep their recorded amounts; only future
// validations use the new base.
func (s *Store) UpdateBaseAmount(p *models.Profile, amount int) error {
	base, err := NormalizeBaseAmount(amount)
	if err != nil {
		return err
	}

	p.BaseAmount = base
	s.save()

	return nil
}

// ChangePin rotates a profile's pin. The old pin must match, the new pin
// must be 4 digits, must match its confirmation, and must actually change.
func (s *Store) ChangePin(p *models.Profile, oldPin, newPin, confirmPin string) error {
	if oldPin != p.PIN {
		return ErrWrongOldPin
	}

	if !pinPattern.MatchString(newPin) {
		return ErrInvalidPin
	}

	if newPin != confirmPin {
		return ErrPinMismatch
	}

	if newPin == oldPin {
		return ErrPinUnchanged
	}

	p.PIN = newPin
	s.save()

	return nil
}

// SetPin overwrites a profile's pin without the old-pin check. This is the
// admin page's override; regular pin changes go through ChangePin.
func (s *Store) SetPin(p *models.Profile, pin string) error {
	if !pinPattern.MatchString(pin) {
		return ErrInvalidPin
	}

	p.PIN = pin
	s.save()

	return nil
}

// Delete removes a profile from the store, clearing the session if it was
// active. Irreversible.
func (s *Store) Delete(p *models.Profile) {
	delete(s.Profiles, p.ID)

	if s.CurrentID == p.ID {
		s.CurrentID = ""
		s.SelectedDate = ""
	}

	s.save()
}

// ResetAll wipes every contribution of the profile. Irreversible.
func (s *Store) ResetAll(p *models.Profile) {
	ledger.ResetAll(p)
	s.save()
}

// AmountFor returns the required contribution for a date using the active
// profile's base amount, or 0 when logged out.
func (s *Store) AmountFor(date time.Time) int {
	p := s.Current()
	if p == nil {
		return 0
	}

	return schedule.AmountFor(date, p.BaseAmount)
}

// CanValidate reports whether the active profile may validate the date.
func (s *Store) CanValidate(date time.Time) bool {
	p := s.Current()
	if p == nil {
		return false
	}

	return ledger.CanValidate(p, date)
}

// Validate records the date's contribution for the active profile and
// persists, unless the guest is active (guest data is memory-only).
func (s *Store) Validate(date time.Time) error {
	p := s.Current()
	if p == nil {
		return ErrNoProfile
	}

	err := ledger.Validate(p, date)
	if err != nil {
		return err
	}

	if !p.IsGuest() {
		s.save()
	}

	return nil
}

// Cancel removes the date's contribution for the active profile and
// persists, unless the guest is active.
func (s *Store) Cancel(date time.Time) error {
	p := s.Current()
	if p == nil {
		return ErrNoProfile
	}

	err := ledger.Cancel(p, date)
	if err != nil {
		return err
	}

	if !p.IsGuest() {
		s.save()
	}

	return nil
}

// ToggleSelectedDate selects the date key, or clears the selection when it
// was already selected.
func (s *Store) ToggleSelectedDate(key string) {
	if s.SelectedDate == key {
		s.SelectedDate = ""
		return
	}

	s.SelectedDate = key
}

// ClearSelectedDate drops the current selection.
func (s *Store) ClearSelectedDate() {
	s.SelectedDate = ""
}
