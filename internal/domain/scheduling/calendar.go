package scheduling

import (
	"sort"
	"time"
)

// CalendarDay is one day of the calendar view: a date (midnight, local)
// and the appointments falling on it, ordered by start time.
type CalendarDay struct {
	Date         time.Time
	Appointments []Appointment
}

// BuildCalendar groups appointments by calendar day. Days are ordered
// ascending; appointments within a day are ordered by start time. Every
// input appointment appears in exactly one day.
func BuildCalendar(appointments []Appointment) []CalendarDay {
	buckets := make(map[time.Time][]Appointment)
	for _, a := range appointments {
		day := truncateToDay(a.StartsAt)
		buckets[day] = append(buckets[day], a)
	}

	days := make([]CalendarDay, 0, len(buckets))
	for date, items := range buckets {
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].StartsAt.Before(items[j].StartsAt)
		})
		days = append(days, CalendarDay{Date: date, Appointments: items})
	}

	sort.Slice(days, func(i, j int) bool {
		return days[i].Date.Before(days[j].Date)
	})

	return days
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
