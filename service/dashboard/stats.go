package dashboard

import (
	"sort"
	"time"

	"github.com/fatahealth/clinic-server/cmd/models"
)

type MonthBucket struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// SameCalendarDay compares year, month and day in t's location.
func SameCalendarDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// TodayAppointments keeps the appointments scheduled on now's calendar date.
func TodayAppointments(appointments []models.Appointment, now time.Time) []models.Appointment {
	var today []models.Appointment
	for _, appt := range appointments {
		if SameCalendarDay(appt.ScheduledAt, now) {
			today = append(today, appt)
		}
	}
	return today
}

// UpcomingAppointments keeps appointments from the start of today onward,
// ascending by scheduled time.
func UpcomingAppointments(appointments []models.Appointment, now time.Time) []models.Appointment {
	startOfToday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	var upcoming []models.Appointment
	for _, appt := range appointments {
		if !appt.ScheduledAt.Before(startOfToday) {
			upcoming = append(upcoming, appt)
		}
	}
	sort.Slice(upcoming, func(i, j int) bool {
		return upcoming[i].ScheduledAt.Before(upcoming[j].ScheduledAt)
	})
	return upcoming
}

// MonthlyRegistrations buckets patient registrations into the previous,
// current and next calendar month relative to now. The window total is the
// sum of the three buckets, not an all-time count.
func MonthlyRegistrations(patients []models.Patient, now time.Time) []MonthBucket {
	months := []time.Time{
		now.AddDate(0, -1, -now.Day()+1),
		now.AddDate(0, 0, -now.Day()+1),
		now.AddDate(0, 1, -now.Day()+1),
	}

	buckets := make([]MonthBucket, 0, len(months))
	for _, month := range months {
		count := 0
		for _, p := range patients {
			if p.CreatedAt.Month() == month.Month() && p.CreatedAt.Year() == month.Year() {
				count++
			}
		}
		buckets = append(buckets, MonthBucket{
			Label: month.Format("January 2006"),
			Count: count,
		})
	}
	return buckets
}

// WindowTotal sums a bucket slice.
func WindowTotal(buckets []MonthBucket) int {
	total := 0
	for _, b := range buckets {
		total += b.Count
	}
	return total
}
