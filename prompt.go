package main

import "github.com/gdamore/tcell/v2"

// This file mainly contains functions for the hidden prompt page in the
// application.

// confirm shows the modal with a yes/no choice. onYes runs only when the
// first button is chosen; either way the previous page is restored.
func confirm(text, yesLabel, noLabel string, onYes func()) {
	currentPage, _ := SC.Pages.GetFrontPage()
	if currentPage == PagePrompt {
		return
	}

	SC.PrevPage = currentPage

	SC.PromptBox.ClearButtons().AddButtons(
		[]string{
			yesLabel,
			noLabel,
		},
	).SetText(text).SetDoneFunc(
		func(buttonIndex int, buttonLabel string) {
			SC.Pages.SwitchToPage(SC.PrevPage)

			if buttonIndex == 0 {
				onYes()
			}
		},
	).SetBackgroundColor(tcell.ColorGoldenrod).
		SetTextColor(tcell.ColorBlack)

	SC.Pages.SwitchToPage(PagePrompt)
	SC.PromptBox.SetFocus(1)
	SC.App.SetFocus(SC.PromptBox)
}

func promptExit() {
	confirm(
		SC.T["PromptExitText"],
		SC.T["PromptExitButtonExit"],
		SC.T["PromptExitButtonCancel"],
		func() {
			SC.App.Stop()
		},
	)
}
