package entity

import "time"

type ReminderFrequency string

const (
	FrequencyNone    ReminderFrequency = "none"
	FrequencyDaily   ReminderFrequency = "daily"
	FrequencyWeekly  ReminderFrequency = "weekly"
	FrequencyMonthly ReminderFrequency = "monthly"
	FrequencyYearly  ReminderFrequency = "yearly"
)

// Recurrence describes how a completed reminder's due date advances.
// Interval is in units of Frequency and must be >= 1.
type Recurrence struct {
	Frequency ReminderFrequency
	Interval  int
}

func (r Recurrence) IsRecurring() bool {
	return r.Frequency != FrequencyNone && r.Frequency != ""
}

func (r Recurrence) Valid() bool {
	if r.Interval < 1 {
		return false
	}
	switch r.Frequency {
	case FrequencyNone, FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyYearly:
		return true
	}
	return false
}

// NextAfter computes the due date one recurrence step after t.
// Month and year steps clamp to the last day of the target month
// (Jan 31 + 1 month = Feb 29 on a leap year), never rolling over.
func (r Recurrence) NextAfter(t time.Time) time.Time {
	switch r.Frequency {
	case FrequencyDaily:
		return t.AddDate(0, 0, r.Interval)
	case FrequencyWeekly:
		return t.AddDate(0, 0, 7*r.Interval)
	case FrequencyMonthly:
		return addMonthsClamped(t, r.Interval)
	case FrequencyYearly:
		return addMonthsClamped(t, 12*r.Interval)
	}
	return t
}

func addMonthsClamped(t time.Time, months int) time.Time {
	firstOfTarget := time.Date(t.Year(), t.Month()+time.Month(months), 1,
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	lastDay := firstOfTarget.AddDate(0, 1, -1).Day()

	day := t.Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), day,
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// ReminderState is the reminder attached to a note. Notified tracks that the
// sweep already fired for the current due date, which is distinct from the
// user marking the reminder complete.
type ReminderState struct {
	DueAt      time.Time
	Completed  bool
	Notified   bool
	Recurrence Recurrence
}

// Complete runs the reminder state machine. Non-recurring reminders finish
// terminally; recurring reminders advance DueAt and rearm both flags.
// Completing an already-completed non-recurring reminder is a no-op.
func (r *ReminderState) Complete() {
	if !r.Recurrence.IsRecurring() {
		r.Completed = true
		return
	}
	r.DueAt = r.Recurrence.NextAfter(r.DueAt)
	r.Completed = false
	r.Notified = false
}

// Due reports whether the sweep should fire for this reminder at now.
func (r *ReminderState) Due(now time.Time) bool {
	return !r.Completed && !r.Notified && !r.DueAt.After(now)
}
