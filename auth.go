package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	c "git.cmcode.dev/cmcode/savings-challenge-tui/constants"
	"git.cmcode.dev/cmcode/savings-challenge-tui/schedule"

	"github.com/rivo/tview"
)

// getAuthPage builds the login/signup/guest page shown when no session is
// active.
func getAuthPage() *tview.Flex {
	SC.AuthStatusText = tview.NewTextView()
	SC.AuthStatusText.SetDynamicColors(true)

	SC.AuthForm = tview.NewForm()
	SC.AuthForm.SetBorder(true)

	populateAuthPage()

	title := tview.NewTextView()
	title.SetDynamicColors(true)
	title.SetTextAlign(tview.AlignCenter)
	title.SetText(fmt.Sprintf("[%v::b]%v%v", SC.Colors["Title"], SC.T["AppName"], c.ResetStyle))

	middle := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(title, 3, 0, false).
		AddItem(SC.AuthForm, 0, 1, true).
		AddItem(SC.AuthStatusText, 3, 0, false)

	// center the form in a fixed-width column
	return tview.NewFlex().SetDirection(tview.FlexColumn).
		AddItem(tview.NewBox(), 0, 1, false).
		AddItem(middle, 60, 0, true).
		AddItem(tview.NewBox(), 0, 1, false)
}

// populateAuthPage rebuilds the form for the current mode (login or signup).
func populateAuthPage() {
	SC.AuthForm.Clear(true)
	SC.AuthStatusText.SetText("")

	if SC.AuthSignupMode {
		var name, pin string

		// the captured value must start out as the prefill, since the
		// changed func only fires on edits
		base := strconv.Itoa(c.MinBaseAmount)

		SC.AuthForm.SetTitle(fmt.Sprintf(" %v ", SC.T["AuthSignupTitle"]))
		SC.AuthForm.
			AddInputField(SC.T["AuthFieldName"], "", 30, nil, func(text string) { name = text }).
			AddPasswordField(SC.T["AuthFieldPin"], "", 10, '*', func(text string) { pin = text }).
			AddInputField(SC.T["AuthFieldBaseAmount"], base, 10, tview.InputFieldInteger, func(text string) { base = text }).
			AddButton(SC.T["AuthButtonSignup"], func() { signup(name, pin, base) }).
			AddButton(SC.T["AuthSwitchToLogin"], func() {
				SC.AuthSignupMode = false
				populateAuthPage()
			}).
			AddButton(SC.T["AuthButtonGuest"], loginAsGuest)

		return
	}

	var name, pin string

	SC.AuthForm.SetTitle(fmt.Sprintf(" %v ", SC.T["AuthLoginTitle"]))
	SC.AuthForm.
		AddInputField(SC.T["AuthFieldName"], "", 30, nil, func(text string) { name = text }).
		AddPasswordField(SC.T["AuthFieldPin"], "", 10, '*', func(text string) { pin = text }).
		AddButton(SC.T["AuthButtonLogin"], func() { login(name, pin) }).
		AddButton(SC.T["AuthSwitchToSignup"], func() {
			SC.AuthSignupMode = true
			populateAuthPage()
		}).
		AddButton(SC.T["AuthButtonGuest"], loginAsGuest)
}

func setAuthError(msg string) {
	SC.AuthStatusText.SetText(fmt.Sprintf("[%v]%v%v", SC.Colors["Error"], msg, c.ResetStyle))
}

func login(name, pin string) {
	p, err := SC.Store.Authenticate(name, pin)
	if err != nil {
		setAuthError(errText(err))
		return
	}

	SC.Log.Info("logged in", "profile", p.ID)
	enterSession(fmt.Sprintf(SC.T["AuthWelcomeLogin"], p.Name))
}

func signup(name, pin, base string) {
	amount, err := strconv.Atoi(strings.TrimSpace(base))
	if err != nil {
		setAuthError(SC.T["ErrInvalidAmount"])
		return
	}

	p, err := SC.Store.Create(name, pin, amount)
	if err != nil {
		setAuthError(errText(err))
		return
	}

	SC.Log.Info("created profile", "profile", p.ID, "base", p.BaseAmount)
	enterSession(fmt.Sprintf(SC.T["AuthWelcomeSignup"], p.Name, formatAmount(p.BaseAmount)))
}

func loginAsGuest() {
	SC.Store.LoginAsGuest()
	SC.Log.Info("started guest session")
	enterSession(SC.T["GuestInfo"])
}

// enterSession switches from the auth page into the calendar, showing a
// welcome message in the detail pane.
func enterSession(welcome string) {
	SC.CalendarMonth = currentChallengeMonth()

	populateCalendarPage()
	SC.Pages.SwitchToPage(PageCalendar)
	setBottomPageNavText()
	SC.App.SetFocus(SC.CalendarTable)

	SC.CalendarDetailText.SetText(fmt.Sprintf("[%v]%v%v", SC.Colors["Success"], welcome, c.ResetStyle))
}

// leaveSession returns to the auth page, in login mode.
func leaveSession() {
	SC.AuthSignupMode = false
	populateAuthPage()
	SC.Pages.SwitchToPage(PageAuth)
	setBottomPageNavText()
	SC.App.SetFocus(SC.AuthForm)
}

// currentChallengeMonth picks the month the calendar should open on: the
// current month inside the challenge year, the first month otherwise.
func currentChallengeMonth() int {
	now := schedule.Normalize(time.Now())
	if schedule.InYear(now) {
		return int(now.Month())
	}

	return 1
}
