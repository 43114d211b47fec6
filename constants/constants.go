package constants

// Challenge calendar configuration. The whole application tracks a single
// fixed calendar year; every date-based calculation is scoped to it.
const (
	// Year is the calendar year of the savings challenge.
	Year = 2026

	// CycleLength is the number of days in one escalating contribution
	// cycle. Day 1 of a cycle costs the profile's base amount, and each
	// following day adds StepAmount on top.
	CycleLength = 10

	// StepAmount is the increment between consecutive cycle positions.
	StepAmount = 100

	// GoalAmount is the fixed savings target for the year.
	GoalAmount = 200000

	// MinBaseAmount is the smallest allowed base amount. Base amounts are
	// always rounded to a multiple of 100.
	MinBaseAmount = 100
)

// GuestID is the reserved profile id for the ephemeral guest session. A
// guest profile is never written to storage, and signup refuses any name
// that normalizes to this id.
const GuestID = "guest"

// Storage keys for the persistence adapter. The profiles record holds the
// full profile collection plus the current session id; the preferences
// record is a separate, much smaller document.
const (
	StorageKeyProfiles    = "savings_2026_profiles"
	StorageKeyPreferences = "savings_2026_preferences"
)

const (
	// DefaultDataParentDir is the directory name used underneath the xdg
	// data/state homes for this application's files.
	DefaultDataParentDir = "savings-challenge-tui"

	// DefaultLogFile is the name of the log file within the xdg state dir.
	DefaultLogFile = "savings-challenge-tui.log"
)

// DefaultReminderTime is used when the daily reminder is enabled but no
// time has been chosen yet.
const DefaultReminderTime = "20:00"

const ResetStyle = "[-:-:-:-]"

// Action names for key bindings.
const (
	ActionQuit      = "quit"
	ActionHelp      = "help"
	ActionCalendar  = "calendar"
	ActionAccount   = "account"
	ActionAdmin     = "admin"
	ActionEsc       = "esc"
	ActionValidate  = "validate"
	ActionCancel    = "cancel"
	ActionPrevMonth = "prevMonth"
	ActionNextMonth = "nextMonth"
	ActionToday     = "today"
)

// DefaultMappings binds tcell event names to actions. There is no
// user-facing keybinding configuration; these are the only bindings.
var DefaultMappings = map[string]string{
	"Ctrl+C": ActionQuit,
	"F1":     ActionCalendar,
	"F2":     ActionAccount,
	"F3":     ActionAdmin,
	"F4":     ActionHelp,
	"Esc":    ActionEsc,
}

// CalendarMappings binds plain rune keys to actions while the calendar grid
// is focused. These never fire inside text inputs.
var CalendarMappings = map[rune]string{
	'v': ActionValidate,
	'c': ActionCancel,
	'p': ActionPrevMonth,
	'n': ActionNextMonth,
	't': ActionToday,
}
