package appointment

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/fatahealth/clinic-server/cmd/models"
)

// Same patterns the public booking form enforces.
var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^\+?[0-9\s\-]+$`)
)

type BookingRequest struct {
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Phone       string     `json:"phone"`
	Message     string     `json:"message"`
	ScheduledAt *time.Time `json:"scheduled_at"`
}

var (
	ErrMissingFields = errors.New("Missing fields")
	ErrName          = errors.New("name must be at least 2 characters")
	ErrEmail         = errors.New("invalid email address")
	ErrPhone         = errors.New("invalid phone number")
	ErrPastDate      = errors.New("appointments must be booked at least one day ahead")
	ErrBadSlot       = errors.New("time is not a bookable slot")
)

// ValidateBooking checks a booking request against the intake rules before
// anything touches the database. The earliest bookable calendar date is
// tomorrow relative to now; today is never bookable.
func ValidateBooking(req BookingRequest, now time.Time) error {
	if req.Name == "" || req.Email == "" || req.Phone == "" || req.Message == "" || req.ScheduledAt == nil {
		return ErrMissingFields
	}
	if len(strings.TrimSpace(req.Name)) < 2 {
		return ErrName
	}
	if !emailPattern.MatchString(req.Email) {
		return ErrEmail
	}
	if len(req.Phone) < 8 || !phonePattern.MatchString(req.Phone) {
		return ErrPhone
	}

	scheduled := req.ScheduledAt.In(now.Location())
	startOfTomorrow := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)
	if scheduled.Before(startOfTomorrow) {
		return ErrPastDate
	}
	if !models.IsBookableSlot(scheduled.Format(models.SlotLayout)) {
		return ErrBadSlot
	}
	return nil
}

// MatchesQuery reports whether an appointment matches a free-text filter.
// Case-insensitive substring across name, email, phone, type and message.
func MatchesQuery(appt models.Appointment, query string) bool {
	if query == "" {
		return true
	}
	haystack := strings.ToLower(strings.Join([]string{
		appt.Name, appt.Email, appt.Phone, appt.Type, appt.Message,
	}, " "))
	return strings.Contains(haystack, strings.ToLower(query))
}

// FilterAppointments applies the assignment filter and free-text query the
// triage views offer. doctorID scopes the "assigned" filter to the caller.
func FilterAppointments(appointments []models.Appointment, assignment string, doctorID uint, query string) []models.Appointment {
	filtered := make([]models.Appointment, 0, len(appointments))
	for _, appt := range appointments {
		switch assignment {
		case "assigned":
			if appt.DoctorID == nil || *appt.DoctorID != doctorID {
				continue
			}
		case "unassigned":
			if appt.DoctorID != nil {
				continue
			}
		}
		if !MatchesQuery(appt, query) {
			continue
		}
		filtered = append(filtered, appt)
	}
	return filtered
}
