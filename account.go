package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	c "git.cmcode.dev/cmcode/savings-challenge-tui/constants"
	"git.cmcode.dev/cmcode/savings-challenge-tui/ledger"
	m "git.cmcode.dev/cmcode/savings-challenge-tui/models"
	"git.cmcode.dev/cmcode/savings-challenge-tui/profiles"
	"git.cmcode.dev/cmcode/savings-challenge-tui/schedule"
	"git.cmcode.dev/cmcode/savings-challenge-tui/themes"

	"github.com/rivo/tview"
)

func getAccountPage() *tview.Flex {
	SC.AccountStatusText = tview.NewTextView()
	SC.AccountStatusText.SetDynamicColors(true)
	SC.AccountStatusText.SetBorder(true)

	SC.AccountFlex = tview.NewFlex().SetDirection(tview.FlexColumn)

	populateAccountPage()

	return tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(SC.AccountFlex, 0, 1, true).
		AddItem(SC.AccountStatusText, 3, 0, false)
}

func setAccountStatus(color, msg string) {
	SC.AccountStatusText.SetText(fmt.Sprintf("[%v]%v%v", SC.Colors[color], msg, c.ResetStyle))
}

// populateAccountPage rebuilds the whole page for the active profile: stats
// and recent activity on the left, the editing forms on the right.
func populateAccountPage() {
	p := SC.Store.Current()
	if p == nil {
		return
	}

	SC.AccountFlex.Clear()

	left := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(getAccountStats(p), 8, 0, false).
		AddItem(getAccountActivity(p), 0, 1, false)

	right := tview.NewFlex().SetDirection(tview.FlexRow)

	if p.IsGuest() {
		guestText := tview.NewTextView()
		guestText.SetDynamicColors(true)
		guestText.SetBorder(true)
		guestText.SetText(fmt.Sprintf("[%v]%v%v", SC.Colors["Muted"], SC.T["GuestInfo"], c.ResetStyle))

		right.AddItem(guestText, 3, 0, false)
	} else {
		right.AddItem(getAccountProfileForm(p), 9, 0, true).
			AddItem(getAccountPinForm(p), 11, 0, false)
	}

	right.AddItem(getAccountPrefsForm(), 0, 1, false).
		AddItem(getAccountDangerForm(p), 5, 0, false)

	SC.AccountFlex.AddItem(left, 0, 1, false).
		AddItem(right, 0, 1, true)
}

func getAccountStats(p *m.Profile) *tview.TextView {
	stats := tview.NewTextView()
	stats.SetDynamicColors(true)
	stats.SetBorder(true)
	stats.SetTitle(fmt.Sprintf(" %v ", SC.T["AccountTitle"]))

	name := p.Name
	if p.IsGuest() {
		name = SC.T["GuestName"]
	}

	today := schedule.Normalize(time.Now())

	stats.SetText(fmt.Sprintf(
		"[%v::b]%v%v\n%v: [%v]%v%v\n%v: %v\n%v: %v%%\n%v: %v",
		SC.Colors["Accent"], name, c.ResetStyle,
		SC.T["AccountStatTotal"], SC.Colors["Success"], formatAmount(p.Total), c.ResetStyle,
		SC.T["AccountStatDays"], ledger.ValidatedCount(p),
		SC.T["AccountStatProgress"], ledger.GoalProgress(p.Total),
		SC.T["AccountStatStreak"], ledger.Streak(p, today),
	))

	return stats
}

func getAccountActivity(p *m.Profile) *tview.TextView {
	activity := tview.NewTextView()
	activity.SetDynamicColors(true)
	activity.SetBorder(true)
	activity.SetTitle(fmt.Sprintf(" %v ", SC.T["AccountActivityTitle"]))

	const maxEntries = 5

	entries := ledger.RecentActivity(p, maxEntries)
	if len(entries) == 0 {
		activity.SetText(fmt.Sprintf("[%v]%v%v", SC.Colors["Muted"], SC.T["AccountActivityEmpty"], c.ResetStyle))
		return activity
	}

	var b strings.Builder

	for _, a := range entries {
		b.WriteString(fmt.Sprintf(
			"[%v]%v%v +%v [%v](%v)%v\n",
			SC.Colors["Text"], a.DateKey, c.ResetStyle,
			formatAmount(a.Entry.Amount),
			SC.Colors["Muted"], relativeTime(a.Entry.ValidatedAt), c.ResetStyle,
		))
	}

	activity.SetText(b.String())

	return activity
}

func getAccountProfileForm(p *m.Profile) *tview.Form {
	name := p.Name
	base := strconv.Itoa(p.BaseAmount)

	form := tview.NewForm()
	form.SetBorder(true)
	form.SetTitle(fmt.Sprintf(" %v ", SC.T["AccountProfileTitle"]))
	form.
		AddInputField(SC.T["AccountFieldName"], p.Name, 30, nil, func(text string) { name = text }).
		AddInputField(SC.T["AccountFieldBaseAmount"], base, 10, tview.InputFieldInteger, func(text string) { base = text }).
		AddButton(SC.T["AccountButtonSave"], func() { accountSave(name, base) })

	return form
}

// accountSave applies the name and base amount edits. All validation runs
// before either change is committed; on failure the page is repopulated,
// reverting the fields to the stored values.
func accountSave(name, base string) {
	p := SC.Store.Current()
	if p == nil {
		return
	}

	amount, err := strconv.Atoi(strings.TrimSpace(base))
	if err != nil {
		setAccountStatus("Error", SC.T["ErrInvalidAmount"])
		populateAccountPage()

		return
	}

	if _, err := profiles.NormalizeBaseAmount(amount); err != nil {
		setAccountStatus("Error", errText(err))
		populateAccountPage()

		return
	}

	if name != p.Name {
		err := SC.Store.Rename(p, name)
		if err != nil {
			setAccountStatus("Error", errText(err))
			populateAccountPage()

			return
		}
	}

	err = SC.Store.UpdateBaseAmount(p, amount)
	if err != nil {
		setAccountStatus("Error", errText(err))
		populateAccountPage()

		return
	}

	SC.Log.Info("updated profile", "profile", p.ID, "base", p.BaseAmount)
	setAccountStatus("Success", SC.T["AccountSavedStatus"])
	populateAccountPage()
}

func getAccountPinForm(p *m.Profile) *tview.Form {
	var oldPin, newPin, confirmPin string

	form := tview.NewForm()
	form.SetBorder(true)
	form.SetTitle(fmt.Sprintf(" %v ", SC.T["AccountPinTitle"]))
	form.
		AddPasswordField(SC.T["AccountFieldOldPin"], "", 10, '*', func(text string) { oldPin = text }).
		AddPasswordField(SC.T["AccountFieldNewPin"], "", 10, '*', func(text string) { newPin = text }).
		AddPasswordField(SC.T["AccountFieldConfirmPin"], "", 10, '*', func(text string) { confirmPin = text }).
		AddButton(SC.T["AccountButtonChangePin"], func() {
			err := SC.Store.ChangePin(p, oldPin, newPin, confirmPin)
			if err != nil {
				setAccountStatus("Error", errText(err))
				return
			}

			SC.Log.Info("changed pin", "profile", p.ID)
			setAccountStatus("Success", SC.T["AccountPinChanged"])
			populateAccountPage()
		})

	return form
}

func getAccountPrefsForm() *tview.Form {
	form := tview.NewForm()
	form.SetBorder(true)
	form.SetTitle(fmt.Sprintf(" %v ", SC.T["AccountPrefsTitle"]))
	form.
		AddCheckbox(SC.T["PrefNotifications"], SC.Prefs.Notifications, func(checked bool) {
			SC.Prefs.Notifications = checked
			savePreferences()
			restartReminder()
			setAccountStatus("Muted", SC.T["PrefSaved"])
		}).
		AddCheckbox(SC.T["PrefDarkMode"], SC.Prefs.DarkMode, func(checked bool) {
			SC.Prefs.DarkMode = checked
			savePreferences()
			applyTheme()
			setAccountStatus("Muted", SC.T["PrefSaved"])
		}).
		AddCheckbox(SC.T["PrefReminder"], SC.Prefs.Reminder, func(checked bool) {
			SC.Prefs.Reminder = checked
			savePreferences()
			restartReminder()
			setAccountStatus("Muted", SC.T["PrefSaved"])
		}).
		AddInputField(SC.T["PrefReminderTime"], SC.Prefs.ReminderTime, 7, nil, func(text string) {
			_, err := time.Parse("15:04", text)
			if err != nil {
				return
			}

			SC.Prefs.ReminderTime = text
			savePreferences()
			restartReminder()
			setAccountStatus("Muted", SC.T["PrefSaved"])
		})

	return form
}

func getAccountDangerForm(p *m.Profile) *tview.Form {
	form := tview.NewForm()
	form.SetBorder(true)
	form.SetTitle(fmt.Sprintf(" %v ", SC.T["AccountDangerTitle"]))
	if p.IsGuest() {
		// a guest has nothing to save; the session is simply discarded
		form.AddButton(SC.T["AuthSwitchToLogin"], func() {
			SC.Store.SwitchToLogin()
			SC.Log.Info("discarded guest session")
			leaveSession()
		})

		return form
	}

	form.AddButton(SC.T["AccountButtonLogout"], func() {
		SC.Store.Logout()
		SC.Log.Info("logged out")
		leaveSession()
	})

	form.AddButton(SC.T["AccountButtonReset"], func() {
		confirm(
			SC.T["PromptResetText"],
			SC.T["PromptResetButtonYes"],
			SC.T["PromptResetButtonNo"],
			func() {
				SC.Store.ResetAll(p)
				SC.Log.Info("reset contributions", "profile", p.ID)
				setAccountStatus("Success", SC.T["AccountResetDone"])
				populateAccountPage()
			},
		)
	})

	form.AddButton(SC.T["AccountButtonDelete"], func() {
		confirm(
			SC.T["PromptDeleteText"],
			SC.T["PromptDeleteButtonYes"],
			SC.T["PromptDeleteButtonNo"],
			func() {
				SC.Store.Delete(p)
				SC.Log.Info("deleted profile", "profile", p.ID)
				leaveSession()
				SC.AuthStatusText.SetText(fmt.Sprintf("[%v]%v%v", SC.Colors["Success"], SC.T["AccountDeleted"], c.ResetStyle))
			},
		)
	})

	return form
}

// applyTheme reloads the color table for the dark mode preference. An
// explicit -theme flag always wins.
func applyTheme() {
	theme := ""
	if SC.Prefs.DarkMode {
		theme = "dark"
	}

	if SC.FlagTheme != "" {
		theme = SC.FlagTheme
	}

	colors, err := themes.Load(AllThemes, theme)
	if err != nil {
		SC.Log.Warn("failed to load theme", "theme", theme, "err", err)
		return
	}

	SC.Colors = colors

	populateCalendarPage()
}
