package main

import (
	"io"
	"log/slog"
	"testing"

	"git.cmcode.dev/cmcode/savings-challenge-tui/profiles"
	"git.cmcode.dev/cmcode/savings-challenge-tui/storage"
	"git.cmcode.dev/cmcode/savings-challenge-tui/themes"
	"git.cmcode.dev/cmcode/savings-challenge-tui/translations"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/stretchr/testify/require"
)

// newTestUI resets the global app state and wires up the pages against an
// in-memory adapter, so page logic can be exercised without a screen.
func newTestUI(t *testing.T) *storage.MemAdapter {
	t.Helper()

	SC = SavingsChallenge{}

	var err error

	SC.T, err = translations.Load(AllTranslations)
	require.NoError(t, err)

	SC.Colors, err = themes.Load(AllThemes, "")
	require.NoError(t, err)

	SC.Log = slog.New(slog.NewTextHandler(io.Discard, nil))

	adapter := storage.NewMemAdapter()
	SC.Adapter = adapter
	SC.Store = profiles.NewStore(adapter, SC.Log)
	require.NoError(t, SC.Store.Load())

	SC.Prefs = defaultPreferences()

	SC.App = tview.NewApplication()
	SC.Pages = tview.NewPages()

	getHelpModal()

	SC.PromptBox = tview.NewModal()

	SC.Pages.AddPage(PageAuth, getAuthPage(), true, true).
		AddPage(PageCalendar, getCalendarPage(), true, true).
		AddPage(PageAccount, getAccountPage(), true, true)

	SC.BottomPageNavText = tview.NewTextView()
	SC.BottomPageNavText.SetDynamicColors(true)

	return adapter
}

// clickButton triggers a form button the same way pressing enter on it would.
func clickButton(b *tview.Button) {
	b.InputHandler()(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), func(tview.Primitive) {})
}
