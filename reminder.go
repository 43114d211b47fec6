package main

import (
	"fmt"
	"time"

	c "git.cmcode.dev/cmcode/savings-challenge-tui/constants"
	"git.cmcode.dev/cmcode/savings-challenge-tui/schedule"

	"github.com/teambition/rrule-go"
)

// startReminder launches the daily reminder loop. It requires both the
// reminder and notifications preferences to be enabled.
func startReminder() {
	if !SC.Prefs.Reminder || !SC.Prefs.Notifications {
		return
	}

	// the stored value is either HH:MM or HH:MM:SS
	at, err := time.Parse("15:04", SC.Prefs.ReminderTime)
	if err != nil {
		at, err = time.Parse("15:04:05", SC.Prefs.ReminderTime)
	}

	if err != nil {
		SC.Log.Warn("invalid reminder time", "value", SC.Prefs.ReminderTime, "err", err)
		return
	}

	now := time.Now()

	r, err := rrule.NewRRule(rrule.ROption{
		Freq:    rrule.DAILY,
		Dtstart: time.Date(now.Year(), now.Month(), now.Day(), at.Hour(), at.Minute(), 0, 0, time.Local),
	})
	if err != nil {
		SC.Log.Warn("failed to build reminder recurrence", "err", err)
		return
	}

	stop := make(chan struct{})
	SC.ReminderStop = stop

	go reminderLoop(r, stop)
}

func reminderLoop(r *rrule.RRule, stop chan struct{}) {
	for {
		next := r.After(time.Now(), false)
		timer := time.NewTimer(time.Until(next))

		select {
		case <-stop:
			timer.Stop()
			return
		case <-timer.C:
			SC.App.QueueUpdateDraw(showReminder)
		}
	}
}

// showReminder surfaces the reminder in the calendar detail pane, but only
// while today's contribution is still open.
func showReminder() {
	p := SC.Store.Current()
	if p == nil {
		return
	}

	today := schedule.Normalize(time.Now())
	if !schedule.InYear(today) {
		return
	}

	key := schedule.FormatDateKey(today)
	if _, validated := p.Days[key]; validated {
		return
	}

	SC.CalendarDetailText.SetText(fmt.Sprintf("[%v::b]%v%v", SC.Colors["Accent"], SC.T["ReminderText"], c.ResetStyle))
	SC.Log.Info("reminder shown", "date", key)
}

func stopReminder() {
	if SC.ReminderStop != nil {
		close(SC.ReminderStop)
		SC.ReminderStop = nil
	}
}

func restartReminder() {
	stopReminder()
	startReminder()
}
