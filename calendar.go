package main

import (
	"fmt"
	"strings"
	"time"

	c "git.cmcode.dev/cmcode/savings-challenge-tui/constants"
	"git.cmcode.dev/cmcode/savings-challenge-tui/ledger"
	m "git.cmcode.dev/cmcode/savings-challenge-tui/models"
	"git.cmcode.dev/cmcode/savings-challenge-tui/schedule"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

//nolint:gochecknoglobals
var weekdayKeys = []string{
	"WeekdayMon", "WeekdayTue", "WeekdayWed",
	"WeekdayThu", "WeekdayFri", "WeekdaySat", "WeekdaySun",
}

// getCalendarPage builds the month grid with the summary pane above it and
// the selected-day detail pane below it.
func getCalendarPage() *tview.Flex {
	SC.CalendarMonth = currentChallengeMonth()

	SC.CalendarSummaryText = tview.NewTextView()
	SC.CalendarSummaryText.SetDynamicColors(true)
	SC.CalendarSummaryText.SetBorder(true)

	SC.CalendarTable = tview.NewTable()
	SC.CalendarTable.SetBorder(true)
	SC.CalendarTable.SetFixed(1, 0)
	SC.CalendarTable.SetSelectable(true, true)

	SC.CalendarDetailText = tview.NewTextView()
	SC.CalendarDetailText.SetDynamicColors(true)
	SC.CalendarDetailText.SetBorder(true)

	SC.CalendarTable.SetSelectedFunc(func(row, col int) {
		cell := SC.CalendarTable.GetCell(row, col)

		key, ok := cell.GetReference().(string)
		if !ok {
			return
		}

		SC.Store.ToggleSelectedDate(key)
		populateCalendarPage()
	})

	SC.CalendarTable.SetInputCapture(calendarCapture)

	hint := tview.NewTextView()
	hint.SetDynamicColors(true)
	hint.SetText(fmt.Sprintf("[%v] %v%v", SC.Colors["Muted"], SC.T["CalendarHint"], c.ResetStyle))

	return tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(SC.CalendarSummaryText, 4, 0, false).
		AddItem(SC.CalendarTable, 0, 1, true).
		AddItem(SC.CalendarDetailText, 6, 0, false).
		AddItem(hint, 1, 0, false)
}

// calendarCapture handles the plain-letter shortcuts while the grid is
// focused.
func calendarCapture(e *tcell.EventKey) *tcell.EventKey {
	switch c.CalendarMappings[e.Rune()] {
	case c.ActionValidate:
		calendarValidate()
		return nil
	case c.ActionCancel:
		calendarCancel()
		return nil
	case c.ActionPrevMonth:
		calendarShiftMonth(-1)
		return nil
	case c.ActionNextMonth:
		calendarShiftMonth(1)
		return nil
	case c.ActionToday:
		calendarToday()
		return nil
	default:
		return e
	}
}

func populateCalendarPage() {
	p := SC.Store.Current()
	if p == nil {
		return
	}

	name := p.Name
	if p.IsGuest() {
		name = SC.T["GuestInfo"]
	}

	pct := ledger.GoalProgress(p.Total)

	SC.CalendarSummaryText.SetText(fmt.Sprintf(
		"[%v::b]%v%v\n[%v]%v: [%v]%v%v | %v: %v | %v %v%%%v",
		SC.Colors["Accent"], name, c.ResetStyle,
		SC.Colors["Text"], SC.T["CalendarTotalLabel"],
		SC.Colors["Success"], formatAmount(p.Total), c.ResetStyle,
		SC.T["CalendarRemainingLabel"], formatAmount(ledger.Remaining(p.Total)),
		progressBar(pct), pct, c.ResetStyle,
	))

	populateCalendarGrid(p)
	populateCalendarDetail(p)
}

func progressBar(pct int) string {
	const width = 20

	filled := pct * width / 100

	var b strings.Builder

	b.WriteString("[" + SC.Colors["ProgressBar"] + "]")
	b.WriteString(strings.Repeat("█", filled))
	b.WriteString("[" + SC.Colors["ProgressBarEmpty"] + "]")
	b.WriteString(strings.Repeat("░", width-filled))
	b.WriteString(c.ResetStyle)

	return b.String()
}

// populateCalendarGrid renders the current month. Weeks start on Monday.
func populateCalendarGrid(p *m.Profile) {
	SC.CalendarTable.Clear()

	month := time.Month(SC.CalendarMonth)
	SC.CalendarTable.SetTitle(fmt.Sprintf(" %v %v ", SC.T[fmt.Sprintf("Month%d", SC.CalendarMonth)], c.Year))

	for i, w := range weekdayKeys {
		SC.CalendarTable.SetCell(0, i, tview.NewTableCell(SC.T[w]).
			SetSelectable(false).
			SetAlign(tview.AlignCenter).
			SetTextColor(tcell.GetColor(SC.Colors["Muted"])))
	}

	first := time.Date(c.Year, month, 1, 0, 0, 0, 0, time.UTC)
	offset := (int(first.Weekday()) + 6) % 7
	today := schedule.Normalize(time.Now())

	row, col := 1, offset

	for d := first; d.Month() == month; d = d.AddDate(0, 0, 1) {
		key := schedule.FormatDateKey(d)

		cell := tview.NewTableCell(fmt.Sprintf(" %2d ", d.Day())).
			SetAlign(tview.AlignCenter).
			SetReference(key)

		_, validated := p.Days[key]

		switch {
		case validated:
			cell.SetText(fmt.Sprintf(" %2d✓", d.Day()))
			cell.SetTextColor(tcell.GetColor(SC.Colors["DayValidated"]))
		case SC.Store.CanValidate(d):
			color := "DayPending"
			if d.After(today) {
				color = "DayFuture"
			}

			cell.SetTextColor(tcell.GetColor(SC.Colors[color]))
		default:
			cell.SetTextColor(tcell.GetColor(SC.Colors["DayBlocked"]))
		}

		if d.Equal(today) {
			cell.SetAttributes(tcell.AttrBold | tcell.AttrUnderline)
		}

		if key == SC.Store.SelectedDate {
			cell.SetBackgroundColor(tcell.GetColor(SC.Colors["DaySelected"]))
			cell.SetTextColor(tcell.ColorBlack)
		}

		SC.CalendarTable.SetCell(row, col, cell)

		col++
		if col > 6 {
			col = 0
			row++
		}
	}
}

// populateCalendarDetail renders the selected day's amount, status, and the
// operations available for it.
func populateCalendarDetail(p *m.Profile) {
	if SC.Store.SelectedDate == "" {
		SC.CalendarDetailText.SetText(fmt.Sprintf("[%v]%v%v", SC.Colors["Muted"], SC.T["CalendarNoSelection"], c.ResetStyle))
		return
	}

	date, err := schedule.ParseDateKey(SC.Store.SelectedDate)
	if err != nil {
		SC.Store.ClearSelectedDate()
		SC.CalendarDetailText.SetText(fmt.Sprintf("[%v]%v%v", SC.Colors["Muted"], SC.T["CalendarNoSelection"], c.ResetStyle))

		return
	}

	amount := SC.Store.AmountFor(date)
	entry, validated := p.Days[SC.Store.SelectedDate]

	var status, available string

	switch {
	case validated:
		status = fmt.Sprintf("[%v]%v (%v)%v", SC.Colors["Success"],
			SC.T["CalendarStatusValidated"], relativeTime(entry.ValidatedAt), c.ResetStyle)
		available = fmt.Sprintf("(c) %v", SC.T["CalendarButtonCancel"])
	case SC.Store.CanValidate(date):
		statusKey := "CalendarStatusPending"
		if date.After(schedule.Normalize(time.Now())) {
			statusKey = "CalendarStatusFuture"
		}

		status = fmt.Sprintf("[%v]%v%v", SC.Colors["Text"], SC.T[statusKey], c.ResetStyle)
		available = fmt.Sprintf("(v) %v", SC.T["CalendarButtonValidate"])
	default:
		status = fmt.Sprintf("[%v]%v: %v%v", SC.Colors["Error"],
			SC.T["CalendarStatusBlocked"], SC.T["ErrSequenceViolation"], c.ResetStyle)
	}

	if available != "" {
		available += " | "
	}

	available += fmt.Sprintf("(enter) %v", SC.T["CalendarButtonUnselect"])

	SC.CalendarDetailText.SetText(fmt.Sprintf(
		"[%v::b]%v%v (%v/%v)\n[%v]%v%v\n%v\n[%v]%v%v",
		SC.Colors["Accent"], SC.Store.SelectedDate, c.ResetStyle,
		schedule.CyclePosition(date), c.CycleLength,
		SC.Colors["Info"], formatAmount(amount), c.ResetStyle,
		status,
		SC.Colors["Muted"], available, c.ResetStyle,
	))
}

func calendarValidate() {
	if SC.Store.SelectedDate == "" {
		return
	}

	date, err := schedule.ParseDateKey(SC.Store.SelectedDate)
	if err != nil {
		return
	}

	err = SC.Store.Validate(date)
	if err != nil {
		SC.CalendarDetailText.SetText(fmt.Sprintf("[%v]%v%v", SC.Colors["Error"], errText(err), c.ResetStyle))
		return
	}

	SC.Log.Info("validated contribution", "date", SC.Store.SelectedDate)
	populateCalendarPage()
}

func calendarCancel() {
	p := SC.Store.Current()
	if p == nil || SC.Store.SelectedDate == "" {
		return
	}

	key := SC.Store.SelectedDate

	date, err := schedule.ParseDateKey(key)
	if err != nil {
		return
	}

	if _, validated := p.Days[key]; !validated {
		SC.CalendarDetailText.SetText(fmt.Sprintf("[%v]%v%v", SC.Colors["Error"], SC.T["ErrNotValidated"], c.ResetStyle))
		return
	}

	confirm(
		SC.T["PromptCancelContributionText"],
		SC.T["PromptCancelButtonYes"],
		SC.T["PromptCancelButtonNo"],
		func() {
			err := SC.Store.Cancel(date)
			if err != nil {
				SC.CalendarDetailText.SetText(fmt.Sprintf("[%v]%v%v", SC.Colors["Error"], errText(err), c.ResetStyle))
				return
			}

			SC.Log.Info("cancelled contribution", "date", key)
			populateCalendarPage()
		},
	)
}

func calendarShiftMonth(delta int) {
	next := SC.CalendarMonth + delta
	if next < 1 || next > 12 {
		return
	}

	SC.CalendarMonth = next
	populateCalendarPage()
}

// calendarToday jumps the grid to the current month and highlights today.
func calendarToday() {
	today := schedule.Normalize(time.Now())
	if !schedule.InYear(today) {
		return
	}

	SC.CalendarMonth = int(today.Month())
	populateCalendarPage()

	first := time.Date(c.Year, today.Month(), 1, 0, 0, 0, 0, time.UTC)
	offset := (int(first.Weekday()) + 6) % 7
	idx := offset + today.Day() - 1

	SC.CalendarTable.Select(idx/7+1, idx%7)
}
