package main

import (
	"embed"
	"flag"
	"fmt"
	"log"
	"log/slog"

	c "git.cmcode.dev/cmcode/savings-challenge-tui/constants"
	"git.cmcode.dev/cmcode/savings-challenge-tui/logging"
	m "git.cmcode.dev/cmcode/savings-challenge-tui/models"
	"git.cmcode.dev/cmcode/savings-challenge-tui/profiles"
	"git.cmcode.dev/cmcode/savings-challenge-tui/storage"
	"git.cmcode.dev/cmcode/savings-challenge-tui/themes"
	"git.cmcode.dev/cmcode/savings-challenge-tui/translations"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

//go:embed translations/*.yml
var AllTranslations embed.FS

//go:embed themes/*.yml
var AllThemes embed.FS

const (
	// PageAuth is not shown to the user ever, and is only used in the code.
	// Its primary purpose is for use in switch/case statements to determine
	// the current page.
	PageAuth = "Auth"
	// PageCalendar is not shown to the user ever, and is only used in the
	// code. Its primary purpose is for use in switch/case statements to
	// determine the current page.
	PageCalendar = "Calendar"
	// PageAccount is not shown to the user ever, and is only used in the
	// code. Its primary purpose is for use in switch/case statements to
	// determine the current page.
	PageAccount = "Account"
	// PageAdmin is not shown to the user ever, and is only used in the code.
	// Its primary purpose is for use in switch/case statements to determine
	// the current page.
	PageAdmin = "Admin"
	// PageHelp is not shown to the user ever, and is only used in the code.
	// Its primary purpose is for use in switch/case statements to determine
	// the current page.
	PageHelp = "Help"
	// PagePrompt is not shown to the user ever, and is only used in the code.
	// Its primary purpose is for use in switch/case statements to determine
	// the current page.
	PagePrompt = "Prompt"
)

type SavingsChallenge struct {
	// The tview/tcell terminal application.
	App *tview.Application

	// The profile store. All domain state lives here; the UI only renders it
	// and calls its operations.
	Store *profiles.Store

	// The persistence adapter, shared by the store and the preferences
	// record.
	Adapter storage.Adapter

	// The currently loaded preferences for the active profile session.
	Prefs m.Preferences

	// Structured logger writing to the xdg state dir. The terminal belongs
	// to tview, so nothing is ever logged to stderr while running.
	Log *slog.Logger

	// The primary primitive that the app uses as its root in the terminal.
	Layout *tview.Flex

	// Translations that are loaded at runtime.
	T map[string]string

	// All default & custom colors are stored in here at runtime. Themes can
	// be loaded via FlagTheme or the dark mode preference.
	Colors map[string]string

	// The primary page-switching primitive.
	Pages *tview.Pages

	// The previously shown page (via the primary pages primitive).
	PrevPage string

	// Always shown on every page - renders the keyboard shortcuts for all
	// supported pages.
	BottomPageNavText *tview.TextView

	// The month currently rendered by the calendar grid (1-12).
	CalendarMonth int

	// The calendar month grid.
	CalendarTable *tview.Table

	// Detail pane for the selected day: date, amount, status, and the
	// available operations.
	CalendarDetailText *tview.TextView

	// Summary pane above the grid: profile name, total saved, goal progress.
	CalendarSummaryText *tview.TextView

	// Status and error messages on the auth page.
	AuthStatusText *tview.TextView

	// The login/signup form. Rebuilt whenever the auth mode changes.
	AuthForm *tview.Form

	// True while the auth page shows the signup form instead of login.
	AuthSignupMode bool

	// Status and error messages on the account page.
	AccountStatusText *tview.TextView

	// The account page body. Rebuilt on every visit because nearly all of
	// its content depends on the active profile.
	AccountFlex *tview.Flex

	// The admin clients table.
	AdminTable *tview.Table

	// The admin filter input. Filters the clients table as you type.
	AdminFilterField *tview.InputField

	// Status messages on the admin page.
	AdminStatusText *tview.TextView

	// Inline edit field below the admin table, used for base amount and PIN
	// overrides.
	AdminEditField *tview.InputField

	// Shows the gigantic help text on the help page.
	HelpTextView *tview.TextView

	// There is a hidden page that only shows a modal, used for exit and
	// destructive-operation confirmations.
	PromptBox *tview.Modal

	// Closed to stop the daily reminder goroutine.
	ReminderStop chan struct{}

	// Overrides the storage directory. Defaults to the xdg data home.
	FlagDataDir string

	// Overrides the theme. Defaults to the dark mode preference.
	FlagTheme string
}

// SC contains all shared data in a global. Avoid using globals where
// possible, but in the context of an application like this, things will get
// extremely messy without one.
//
//nolint:gochecknoglobals
var SC SavingsChallenge

// For an input keybinding (straight from event.Name()), an output action
// will be returned, for example - "F1" will return "calendar".
func getDefaultKeybind(name string) string {
	m, ok := c.DefaultMappings[name]
	if !ok {
		return ""
	}

	return m
}

// capture is the primary input capture handler for the app, and should be
// used like: app.SetInputCapture(capture)
func capture(e *tcell.EventKey) *tcell.EventKey {
	return action(getDefaultKeybind(e.Name()), e)
}

// bootstrap is the initialization function for the app, including
// initializing globals. This function should only ever be run once.
func bootstrap() {
	SC.App = tview.NewApplication()

	SC.Pages = tview.NewPages()

	getHelpModal()

	SC.PromptBox = tview.NewModal()

	SC.Pages.AddPage(PageAuth, getAuthPage(), true, true).
		AddPage(PageCalendar, getCalendarPage(), true, true).
		AddPage(PageAccount, getAccountPage(), true, true).
		AddPage(PageAdmin, getAdminPage(), true, true).
		AddPage(PageHelp, SC.HelpTextView, true, true).
		AddPage(PagePrompt, SC.PromptBox, true, true)

	// a restored session skips the auth page entirely
	if SC.Store.Current() != nil {
		populateCalendarPage()
		SC.Pages.SwitchToPage(PageCalendar)
	} else {
		SC.Pages.SwitchToPage(PageAuth)
	}

	SC.BottomPageNavText = tview.NewTextView()

	SC.BottomPageNavText.SetDynamicColors(true)
	setBottomPageNavText()

	SC.Layout = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(SC.Pages, 0, 1, true).AddItem(SC.BottomPageNavText, 1, 0, false)

	SC.Store.OnSaveError = func(err error) {
		msg := fmt.Sprintf("[%v]%v%v", SC.Colors["Error"], SC.T["ErrSaveFailed"], c.ResetStyle)
		SC.CalendarDetailText.SetText(msg)
		SC.AccountStatusText.SetText(msg)
	}

	SC.App.SetInputCapture(capture)
}

// setBottomPageNavText renders the keyboard navigation hints for the pages
// that are reachable from the current session state.
func setBottomPageNavText() {
	nav := "[gold]" + SC.T["NavCalendar"] + " " + SC.T["NavAccount"] + " " +
		SC.T["NavAdmin"] + " " + SC.T["NavHelp"] + " " + SC.T["NavQuit"] + c.ResetStyle

	if SC.Store.Current() == nil {
		nav = "[gold]" + SC.T["NavHelp"] + " " + SC.T["NavQuit"] + c.ResetStyle
	}

	SC.BottomPageNavText.SetText(nav)
}

func parseFlags() {
	flag.StringVar(&SC.FlagDataDir, "data", "", "directory to store profile data in (default: xdg data home)")
	flag.StringVar(&SC.FlagTheme, "theme", "", "theme to load from the embedded themes (default: standard, or dark when the dark mode preference is set)")
	flag.Parse()
}

func main() {
	var err error

	SC.T, err = translations.Load(AllTranslations)
	if err != nil {
		log.Fatalf("failed to load translations: %v", err.Error())
	}

	parseFlags()

	logger, closeLog, err := logging.Setup()
	if err != nil {
		log.Fatalf("failed to set up logging: %v", err.Error())
	}
	defer closeLog()

	SC.Log = logger

	SC.Adapter, err = storage.NewFileAdapter(SC.FlagDataDir)
	if err != nil {
		log.Fatalf("failed to open storage: %v", err.Error())
	}

	SC.Store = profiles.NewStore(SC.Adapter, SC.Log)

	err = SC.Store.Load()
	if err != nil {
		log.Fatalf("failed to load profiles: %v", err.Error())
	}

	SC.Prefs = loadPreferences()

	theme := ""
	if SC.Prefs.DarkMode {
		theme = "dark"
	}

	if SC.FlagTheme != "" {
		theme = SC.FlagTheme
	}

	SC.Colors, err = themes.Load(AllThemes, theme)
	if err != nil {
		log.Fatalf("failed to load themes: %v", err.Error())
	}

	bootstrap()

	startReminder()

	if err := SC.App.SetRoot(SC.Layout, true).EnableMouse(true).Run(); err != nil {
		panic(err)
	}

	stopReminder()
}
