package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	c "git.cmcode.dev/cmcode/savings-challenge-tui/constants"
	m "git.cmcode.dev/cmcode/savings-challenge-tui/models"

	"github.com/gdamore/tcell/v2"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/rivo/tview"
)

// getAdminPage builds the overview of every registered profile, with inline
// editing of base amounts and PIN overrides.
func getAdminPage() *tview.Flex {
	SC.AdminStatusText = tview.NewTextView()
	SC.AdminStatusText.SetDynamicColors(true)
	SC.AdminStatusText.SetBorder(true)

	SC.AdminFilterField = tview.NewInputField()
	SC.AdminFilterField.SetBorder(true)
	SC.AdminFilterField.SetLabel(fmt.Sprintf("%v: ", SC.T["AdminFilterLabel"]))
	SC.AdminFilterField.SetChangedFunc(func(text string) {
		populateAdminTable()
	})
	SC.AdminFilterField.SetDoneFunc(func(key tcell.Key) {
		SC.App.SetFocus(SC.AdminTable)
	})

	SC.AdminTable = tview.NewTable()
	SC.AdminTable.SetBorder(true)
	SC.AdminTable.SetFixed(1, 0)
	SC.AdminTable.SetSelectable(true, false)

	SC.AdminEditField = tview.NewInputField()
	SC.AdminEditField.SetBorder(true)
	SC.AdminEditField.SetFieldBackgroundColor(tcell.ColorBlack)

	SC.AdminTable.SetSelectedFunc(func(row, col int) {
		adminEdit(row, false)
	})

	SC.AdminTable.SetInputCapture(func(e *tcell.EventKey) *tcell.EventKey {
		switch e.Rune() {
		case 'P':
			row, _ := SC.AdminTable.GetSelection()
			adminEdit(row, true)

			return nil
		case '/':
			SC.App.SetFocus(SC.AdminFilterField)
			return nil
		default:
			return e
		}
	})

	populateAdminPage()

	hint := tview.NewTextView()
	hint.SetDynamicColors(true)
	hint.SetText(fmt.Sprintf("[%v] %v%v", SC.Colors["Muted"], SC.T["AdminHint"], c.ResetStyle))

	return tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(SC.AdminFilterField, 3, 0, false).
		AddItem(SC.AdminTable, 0, 1, true).
		AddItem(SC.AdminEditField, 3, 0, false).
		AddItem(SC.AdminStatusText, 3, 0, false).
		AddItem(hint, 1, 0, false)
}

func populateAdminPage() {
	count := 0
	total := 0

	for _, p := range SC.Store.Profiles {
		if p.IsGuest() {
			continue
		}

		count++
		total += p.Total
	}

	SC.AdminTable.SetTitle(fmt.Sprintf(
		" %v | %v: %v | %v: %v ",
		SC.T["AdminTitle"],
		SC.T["AdminProfileCount"], count,
		SC.T["AdminGlobalTotal"], formatAmount(total),
	))

	populateAdminTable()
}

// populateAdminTable renders the profile rows matching the current filter,
// sorted by name.
func populateAdminTable() {
	SC.AdminTable.Clear()

	for i, key := range []string{"AdminColName", "AdminColBase", "AdminColTotal", "AdminColPin"} {
		SC.AdminTable.SetCell(0, i, tview.NewTableCell(SC.T[key]).
			SetSelectable(false).
			SetAttributes(tcell.AttrBold).
			SetTextColor(tcell.GetColor(SC.Colors["Accent"])))
	}

	filter := strings.TrimSpace(SC.AdminFilterField.GetText())

	var matched []*m.Profile

	for _, p := range SC.Store.Profiles {
		if p.IsGuest() {
			continue
		}

		if filter == "" || fuzzy.MatchFold(filter, p.Name) {
			matched = append(matched, p)
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].Name < matched[j].Name
	})

	if len(matched) == 0 {
		SC.AdminStatusText.SetText(fmt.Sprintf("[%v]%v%v", SC.Colors["Muted"], SC.T["AdminEmpty"], c.ResetStyle))
		return
	}

	SC.AdminStatusText.SetText("")

	for i, p := range matched {
		row := i + 1

		SC.AdminTable.SetCell(row, 0, tview.NewTableCell(p.Name).
			SetReference(p.ID).
			SetTextColor(tcell.GetColor(SC.Colors["Text"])))
		SC.AdminTable.SetCell(row, 1, tview.NewTableCell(formatAmount(p.BaseAmount)).
			SetTextColor(tcell.GetColor(SC.Colors["Text"])))
		SC.AdminTable.SetCell(row, 2, tview.NewTableCell(formatAmount(p.Total)).
			SetTextColor(tcell.GetColor(SC.Colors["Success"])))
		SC.AdminTable.SetCell(row, 3, tview.NewTableCell(p.PIN).
			SetTextColor(tcell.GetColor(SC.Colors["Muted"])))
	}
}

// adminEdit activates the inline edit field for the profile on the given
// row, targeting either its PIN or its base amount.
func adminEdit(row int, pin bool) {
	id, ok := SC.AdminTable.GetCell(row, 0).GetReference().(string)
	if !ok {
		return
	}

	p, ok := SC.Store.Profiles[id]
	if !ok {
		return
	}

	label := SC.T["AdminColBase"]
	prefill := strconv.Itoa(p.BaseAmount)

	if pin {
		label = SC.T["AdminColPin"]
		prefill = p.PIN
	}

	SC.AdminEditField.SetLabel(fmt.Sprintf("%v (%v): ", label, p.Name))
	SC.AdminEditField.SetText(prefill)
	SC.AdminEditField.SetDoneFunc(func(key tcell.Key) {
		if key == tcell.KeyEscape {
			SC.AdminEditField.SetLabel("")
			SC.AdminEditField.SetText("")
			SC.App.SetFocus(SC.AdminTable)

			return
		}

		adminApplyEdit(p, SC.AdminEditField.GetText(), pin)
	})

	SC.App.SetFocus(SC.AdminEditField)
}

func adminApplyEdit(p *m.Profile, value string, pin bool) {
	if pin {
		err := SC.Store.SetPin(p, value)
		if err != nil {
			SC.AdminStatusText.SetText(fmt.Sprintf("[%v]%v%v", SC.Colors["Error"], errText(err), c.ResetStyle))
			return
		}

		SC.Log.Info("admin changed pin", "profile", p.ID)
		SC.AdminStatusText.SetText(fmt.Sprintf("[%v]%v%v", SC.Colors["Success"], SC.T["AdminPinUpdated"], c.ResetStyle))
	} else {
		amount, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			SC.AdminStatusText.SetText(fmt.Sprintf("[%v]%v%v", SC.Colors["Error"], SC.T["ErrInvalidAmount"], c.ResetStyle))
			return
		}

		err = SC.Store.UpdateBaseAmount(p, amount)
		if err != nil {
			SC.AdminStatusText.SetText(fmt.Sprintf("[%v]%v%v", SC.Colors["Error"], errText(err), c.ResetStyle))
			return
		}

		SC.Log.Info("admin changed base amount", "profile", p.ID, "base", p.BaseAmount)
		SC.AdminStatusText.SetText(fmt.Sprintf("[%v]%v%v", SC.Colors["Success"], SC.T["AdminBaseUpdated"], c.ResetStyle))
	}

	SC.AdminEditField.SetLabel("")
	SC.AdminEditField.SetText("")
	populateAdminPage()
	SC.App.SetFocus(SC.AdminTable)
}
