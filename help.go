package main

import "github.com/rivo/tview"

const HelpText = `[lightgreen::b]Savings Challenge[-:-:-:-]

[gold]
            ____              _
           / ___|  __ ___   _(_)_ __   __ _ ___
           \___ \ / _` + "`" + ` \ \ / / | '_ \ / _` + "`" + ` / __|
            ___) | (_| |\ V /| | | | | (_| \__ \
           |____/ \__,_| \_/ |_|_| |_|\__, |___/
                                      |___/  [lightgreen]2026[-:-:-:-]


[lightgreen::b]General information[-:-:-:-]

[white]This application tracks a daily savings challenge over the 2026 calendar
year. Contributions repeat in [gold]10-day cycles[white]: day 1 of a cycle costs your
base amount, and each following day adds 100 F on top. After day 10 the
cycle starts over at the base amount.

Days must be validated [gold]in order[white]. You cannot validate a day while any
earlier day of the year is still open, and cancelling a day reopens the gap
it leaves behind.

[lightgreen::b]Profiles[-:-:-:-]

[white]Each profile has a name, a 4-digit PIN, and a base amount (minimum 100 F,
rounded to the nearest 100). Profile names are case-insensitive: "Awa" and
"awa" are the same profile.

The [blue]guest session[white] works exactly like a profile but is never saved.
Quitting or logging out discards everything a guest did.

[lightgreen::b]Pages[-:-:-:-]

[white]- [blue]Calendar[white]: the month grid. Select a day to see its amount and
  validate or cancel it.
- [blue]Account[white]: stats, recent activity, profile editing, PIN changes,
  preferences, and the danger zone.
- [blue]Admin[white]: every registered profile with its base amount, total, and
  PIN. Supports fuzzy filtering and inline edits.

[lightgreen::b]Keyboard shortcuts[-:-:-:-]

[white]- F1: calendar page
- F2: account page
- F3: admin page
- F4: this help page
- Esc: step back (deselect, leave page, then exit prompt)
- Ctrl+C: exit prompt

On the calendar grid:

- arrows: move between days
- enter: select/deselect a day
- v: validate the selected day
- c: cancel the selected day's contribution
- p / n: previous / next month
- t: jump to today
`

// getHelpModal initializes the help text view.
func getHelpModal() {
	SC.HelpTextView = tview.NewTextView()
	SC.HelpTextView.SetDynamicColors(true)
	SC.HelpTextView.SetBorder(true)
	SC.HelpTextView.SetText(HelpText)
}
