package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 9, 30, 0, 0, time.UTC)
}

func TestRecurrenceNextAfterClampsToMonthEnd(t *testing.T) {
	cases := []struct {
		name string
		rec  Recurrence
		from time.Time
		want time.Time
	}{
		{
			name: "jan 31 monthly lands on leap day",
			rec:  Recurrence{Frequency: FrequencyMonthly, Interval: 1},
			from: date(2028, time.January, 31),
			want: date(2028, time.February, 29),
		},
		{
			name: "jan 31 monthly in a common year",
			rec:  Recurrence{Frequency: FrequencyMonthly, Interval: 1},
			from: date(2026, time.January, 31),
			want: date(2026, time.February, 28),
		},
		{
			name: "mar 31 monthly clamps to apr 30",
			rec:  Recurrence{Frequency: FrequencyMonthly, Interval: 1},
			from: date(2026, time.March, 31),
			want: date(2026, time.April, 30),
		},
		{
			name: "mid month stays on its day",
			rec:  Recurrence{Frequency: FrequencyMonthly, Interval: 2},
			from: date(2026, time.May, 15),
			want: date(2026, time.July, 15),
		},
		{
			name: "feb 29 yearly clamps to feb 28",
			rec:  Recurrence{Frequency: FrequencyYearly, Interval: 1},
			from: date(2028, time.February, 29),
			want: date(2029, time.February, 28),
		},
		{
			name: "daily",
			rec:  Recurrence{Frequency: FrequencyDaily, Interval: 3},
			from: date(2026, time.August, 30),
			want: date(2026, time.September, 2),
		},
		{
			name: "weekly",
			rec:  Recurrence{Frequency: FrequencyWeekly, Interval: 2},
			from: date(2026, time.August, 1),
			want: date(2026, time.August, 15),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.rec.NextAfter(tc.from)
			assert.True(t, tc.want.Equal(got), "want %s, got %s", tc.want, got)
		})
	}
}

func TestRecurrenceValid(t *testing.T) {
	assert.True(t, Recurrence{Frequency: FrequencyDaily, Interval: 1}.Valid())
	assert.True(t, Recurrence{Frequency: FrequencyNone, Interval: 1}.Valid())
	assert.False(t, Recurrence{Frequency: FrequencyDaily, Interval: 0}.Valid())
	assert.False(t, Recurrence{Frequency: "hourly", Interval: 1}.Valid())
}

func TestReminderCompleteStateMachine(t *testing.T) {
	t.Run("non recurring is terminal", func(t *testing.T) {
		due := date(2026, time.June, 1)
		r := &ReminderState{DueAt: due, Notified: true}
		r.Complete()
		assert.True(t, r.Completed)
		assert.True(t, due.Equal(r.DueAt))

		r.Complete()
		assert.True(t, r.Completed)
		assert.True(t, due.Equal(r.DueAt))
	})

	t.Run("recurring advances and rearms", func(t *testing.T) {
		due := date(2026, time.June, 1)
		r := &ReminderState{
			DueAt:      due,
			Completed:  false,
			Notified:   true,
			Recurrence: Recurrence{Frequency: FrequencyWeekly, Interval: 1},
		}
		r.Complete()
		assert.False(t, r.Completed)
		assert.False(t, r.Notified)
		assert.True(t, due.AddDate(0, 0, 7).Equal(r.DueAt))
	})
}

func TestReminderDue(t *testing.T) {
	due := date(2026, time.June, 1)
	now := due.Add(time.Minute)

	assert.True(t, (&ReminderState{DueAt: due}).Due(now))
	assert.True(t, (&ReminderState{DueAt: due}).Due(due))
	assert.False(t, (&ReminderState{DueAt: due}).Due(due.Add(-time.Second)))
	assert.False(t, (&ReminderState{DueAt: due, Completed: true}).Due(now))
	assert.False(t, (&ReminderState{DueAt: due, Notified: true}).Due(now))
}
