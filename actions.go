package main

import (
	c "git.cmcode.dev/cmcode/savings-challenge-tui/constants"

	"github.com/gdamore/tcell/v2"
)

func actionQuit() *tcell.EventKey {
	promptExit()
	return nil
}

func actionCalendar(e *tcell.EventKey) *tcell.EventKey {
	if SC.Store.Current() == nil {
		return e
	}

	populateCalendarPage()
	SC.Pages.SwitchToPage(PageCalendar)
	setBottomPageNavText()
	SC.App.SetFocus(SC.CalendarTable)

	return nil
}

func actionAccount(e *tcell.EventKey) *tcell.EventKey {
	if SC.Store.Current() == nil {
		return e
	}

	populateAccountPage()
	SC.Pages.SwitchToPage(PageAccount)
	setBottomPageNavText()

	return nil
}

func actionAdmin(e *tcell.EventKey) *tcell.EventKey {
	if SC.Store.Current() == nil {
		return e
	}

	populateAdminPage()
	SC.Pages.SwitchToPage(PageAdmin)
	setBottomPageNavText()
	SC.App.SetFocus(SC.AdminTable)

	return nil
}

func actionHelp() *tcell.EventKey {
	SC.Pages.SwitchToPage(PageHelp)
	setBottomPageNavText()

	return nil
}

// actionEsc steps back one level: selected day on the calendar gets
// deselected, secondary pages return to the calendar, and the outermost
// pages prompt for exit.
func actionEsc(e *tcell.EventKey) *tcell.EventKey {
	pageName, _ := SC.Pages.GetFrontPage()
	switch pageName {
	case PagePrompt:
		// the modal has its own handlers
		return e
	case PageHelp, PageAccount, PageAdmin:
		if SC.Store.Current() == nil {
			SC.Pages.SwitchToPage(PageAuth)
			setBottomPageNavText()

			return nil
		}

		return actionCalendar(e)
	case PageCalendar:
		if SC.Store.SelectedDate != "" {
			SC.Store.ClearSelectedDate()
			populateCalendarPage()

			return nil
		}

		promptExit()

		return nil
	default:
		promptExit()
		return nil
	}
}

// action is the primary decision tree that is triggered when a key event is
// triggered. Every case statement must return.
func action(action string, e *tcell.EventKey) *tcell.EventKey {
	switch action {
	case c.ActionQuit:
		return actionQuit()
	case c.ActionCalendar:
		return actionCalendar(e)
	case c.ActionAccount:
		return actionAccount(e)
	case c.ActionAdmin:
		return actionAdmin(e)
	case c.ActionHelp:
		return actionHelp()
	case c.ActionEsc:
		return actionEsc(e)
	default:
		return e
	}
}
