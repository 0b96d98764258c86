package models

import (
	"time"
)

// Booking slots are fixed half-hour labels between 09:00 and 17:30.
const (
	SlotOpenHour   = 9
	SlotCloseHour  = 17
	SlotStrideMins = 30
	SlotLayout     = "15:04"
)

type SlotStatus struct {
	Time   string `json:"time"`
	Booked bool   `json:"booked"`
}

// DaySlots returns the 18 half-hour slot labels of a clinic day, in order.
func DaySlots() []string {
	var slots []string
	for hour := SlotOpenHour; hour <= SlotCloseHour; hour++ {
		for minute := 0; minute < 60; minute += SlotStrideMins {
			slots = append(slots, time.Date(0, 1, 1, hour, minute, 0, 0, time.UTC).Format(SlotLayout))
		}
	}
	return slots
}

// IsBookableSlot reports whether label names one of the day's slots.
func IsBookableSlot(label string) bool {
	for _, slot := range DaySlots() {
		if slot == label {
			return true
		}
	}
	return false
}

// MarkBookedSlots marks a slot booked iff some appointment's local
// time-of-day exactly equals the slot label. Exact match only: a 09:00
// booking blocks the 09:00 slot and nothing else.
func MarkBookedSlots(appointments []Appointment) []SlotStatus {
	booked := make(map[string]bool, len(appointments))
	for _, appt := range appointments {
		booked[appt.ScheduledAt.Format(SlotLayout)] = true
	}

	var statuses []SlotStatus
	for _, slot := range DaySlots() {
		statuses = append(statuses, SlotStatus{Time: slot, Booked: booked[slot]})
	}
	return statuses
}
