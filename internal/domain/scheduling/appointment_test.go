package scheduling

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAppointment(t *testing.T, start time.Time) *Appointment {
	t.Helper()
	a, err := NewAppointment(uuid.New(), "Lim Wei Ming", "Bathroom leak inspection", "Plumbing", start, start.Add(2*time.Hour))
	require.NoError(t, err)
	return a
}

func TestNewAppointment(t *testing.T) {
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local)

	t.Run("creates appointment in scheduled status", func(t *testing.T) {
		a := newTestAppointment(t, start)

		assert.Equal(t, AppointmentStatusScheduled, a.Status)
		assert.Equal(t, "Bathroom leak inspection", a.Title)
		assert.Equal(t, "Plumbing", a.Category)
	})

	t.Run("fails when end is not after start", func(t *testing.T) {
		a, err := NewAppointment(uuid.New(), "Tan", "Visit", "", start, start)

		assert.Error(t, err)
		assert.Nil(t, a)
	})

	t.Run("fails with nil customer", func(t *testing.T) {
		a, err := NewAppointment(uuid.Nil, "Tan", "Visit", "", start, start.Add(time.Hour))

		assert.Error(t, err)
		assert.Nil(t, a)
	})
}

func TestAppointmentTransitions(t *testing.T) {
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local)

	t.Run("scheduled to confirmed to completed", func(t *testing.T) {
		a := newTestAppointment(t, start)

		require.NoError(t, a.Confirm())
		assert.Equal(t, AppointmentStatusConfirmed, a.Status)

		require.NoError(t, a.Complete())
		assert.Equal(t, AppointmentStatusCompleted, a.Status)
		assert.NotNil(t, a.CompletedAt)
	})

	t.Run("cannot complete without confirming", func(t *testing.T) {
		a := newTestAppointment(t, start)

		assert.Error(t, a.Complete())
	})

	t.Run("cancel is terminal", func(t *testing.T) {
		a := newTestAppointment(t, start)

		require.NoError(t, a.Cancel())
		assert.Error(t, a.Confirm())
		assert.Error(t, a.Cancel())
	})

	t.Run("cannot reschedule after completion", func(t *testing.T) {
		a := newTestAppointment(t, start)
		require.NoError(t, a.Confirm())
		require.NoError(t, a.Complete())

		assert.Error(t, a.Reschedule(start.Add(24*time.Hour), start.Add(26*time.Hour)))
	})
}

func TestBuildCalendar(t *testing.T) {
	day1 := time.Date(2026, 3, 10, 0, 0, 0, 0, time.Local)
	day2 := time.Date(2026, 3, 12, 0, 0, 0, 0, time.Local)

	late := newTestAppointment(t, day1.Add(15*time.Hour))
	early := newTestAppointment(t, day1.Add(9*time.Hour))
	other := newTestAppointment(t, day2.Add(10*time.Hour))

	t.Run("groups by day and sorts by start time", func(t *testing.T) {
		days := BuildCalendar([]Appointment{*other, *late, *early})

		require.Len(t, days, 2)
		assert.Equal(t, day1, days[0].Date)
		assert.Equal(t, day2, days[1].Date)

		require.Len(t, days[0].Appointments, 2)
		assert.Equal(t, early.ID, days[0].Appointments[0].ID)
		assert.Equal(t, late.ID, days[0].Appointments[1].ID)
	})

	t.Run("empty input yields empty calendar", func(t *testing.T) {
		assert.Empty(t, BuildCalendar(nil))
	})

	t.Run("every appointment appears exactly once", func(t *testing.T) {
		days := BuildCalendar([]Appointment{*other, *late, *early})

		total := 0
		for _, d := range days {
			total += len(d.Appointments)
		}
		assert.Equal(t, 3, total)
	})
}
