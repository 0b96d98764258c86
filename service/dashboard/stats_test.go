package dashboard

import (
	"testing"
	"time"

	"github.com/fatahealth/clinic-server/cmd/models"
	"gorm.io/gorm"
)

func apptAt(t time.Time) models.Appointment {
	return models.Appointment{ScheduledAt: t}
}

func patientCreatedAt(t time.Time) models.Patient {
	return models.Patient{Model: gorm.Model{CreatedAt: t}}
}

func TestTodayAppointments(t *testing.T) {
	now := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)

	appointments := []models.Appointment{
		apptAt(time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)),
		apptAt(time.Date(2026, 3, 10, 17, 30, 0, 0, time.UTC)),
		apptAt(time.Date(2026, 3, 9, 9, 0, 0, 0, time.UTC)),
		apptAt(time.Date(2026, 3, 11, 9, 0, 0, 0, time.UTC)),
	}

	today := TodayAppointments(appointments, now)
	if len(today) != 2 {
		t.Fatalf("got %d appointments today, want 2", len(today))
	}
	for _, appt := range today {
		if appt.ScheduledAt.Day() != 10 {
			t.Errorf("appointment on day %d leaked into today", appt.ScheduledAt.Day())
		}
	}
}

func TestUpcomingAppointmentsSorted(t *testing.T) {
	now := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)

	appointments := []models.Appointment{
		apptAt(time.Date(2026, 3, 12, 9, 0, 0, 0, time.UTC)),
		apptAt(time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)),
		apptAt(time.Date(2026, 3, 9, 16, 0, 0, 0, time.UTC)),
		apptAt(time.Date(2026, 3, 11, 11, 0, 0, 0, time.UTC)),
	}

	upcoming := UpcomingAppointments(appointments, now)
	if len(upcoming) != 3 {
		t.Fatalf("got %d upcoming, want 3", len(upcoming))
	}
	// 09:30 earlier today counts as upcoming; yesterday does not
	for i := 1; i < len(upcoming); i++ {
		if upcoming[i].ScheduledAt.Before(upcoming[i-1].ScheduledAt) {
			t.Errorf("upcoming not sorted ascending at index %d", i)
		}
	}
	if upcoming[0].ScheduledAt.Day() != 10 {
		t.Errorf("first upcoming on day %d, want 10", upcoming[0].ScheduledAt.Day())
	}
}

func TestMonthlyRegistrations(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

	patients := []models.Patient{
		patientCreatedAt(time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)),
		patientCreatedAt(time.Date(2026, 2, 28, 23, 59, 0, 0, time.UTC)),
		patientCreatedAt(time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)),
		patientCreatedAt(time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)),
		patientCreatedAt(time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)),
	}

	buckets := MonthlyRegistrations(patients, now)
	if len(buckets) != 3 {
		t.Fatalf("got %d buckets, want 3", len(buckets))
	}

	want := []MonthBucket{
		{Label: "February 2026", Count: 2},
		{Label: "March 2026", Count: 1},
		{Label: "April 2026", Count: 1},
	}
	for i, b := range buckets {
		if b != want[i] {
			t.Errorf("bucket %d = %+v, want %+v", i, b, want[i])
		}
	}

	if got := WindowTotal(buckets); got != 4 {
		t.Errorf("window total = %d, want 4", got)
	}
}

// Month arithmetic around month-end and year boundaries must not skip or
// double-count a month.
func TestMonthlyRegistrationsYearBoundary(t *testing.T) {
	tests := []struct {
		name   string
		now    time.Time
		labels []string
	}{
		{
			"january",
			time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
			[]string{"December 2025", "January 2026", "February 2026"},
		},
		{
			"december",
			time.Date(2025, 12, 20, 0, 0, 0, 0, time.UTC),
			[]string{"November 2025", "December 2025", "January 2026"},
		},
		{
			"march 31st",
			time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
			[]string{"February 2026", "March 2026", "April 2026"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buckets := MonthlyRegistrations(nil, tt.now)
			for i, b := range buckets {
				if b.Label != tt.labels[i] {
					t.Errorf("bucket %d label = %q, want %q", i, b.Label, tt.labels[i])
				}
				if b.Count != 0 {
					t.Errorf("bucket %d count = %d, want 0", i, b.Count)
				}
			}
		})
	}
}
