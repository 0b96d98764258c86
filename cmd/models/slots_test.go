package models

import (
	"testing"
	"time"
)

func TestDaySlots(t *testing.T) {
	slots := DaySlots()

	if len(slots) != 18 {
		t.Fatalf("expected 18 slots, got %d", len(slots))
	}
	if slots[0] != "09:00" {
		t.Errorf("first slot = %q, want 09:00", slots[0])
	}
	if slots[len(slots)-1] != "17:30" {
		t.Errorf("last slot = %q, want 17:30", slots[len(slots)-1])
	}
}

func TestIsBookableSlot(t *testing.T) {
	tests := []struct {
		label string
		want  bool
	}{
		{"09:00", true},
		{"17:30", true},
		{"12:30", true},
		{"08:30", false},
		{"18:00", false},
		{"09:15", false},
		{"9:00", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsBookableSlot(tt.label); got != tt.want {
			t.Errorf("IsBookableSlot(%q) = %v, want %v", tt.label, got, tt.want)
		}
	}
}

func TestMarkBookedSlotsExactMatchOnly(t *testing.T) {
	day := time.Date(2026, 3, 12, 0, 0, 0, 0, time.Local)
	appointments := []Appointment{
		{ScheduledAt: day.Add(9 * time.Hour)},                    // 09:00
		{ScheduledAt: day.Add(14*time.Hour + 30*time.Minute)},    // 14:30
	}

	statuses := MarkBookedSlots(appointments)
	if len(statuses) != 18 {
		t.Fatalf("expected 18 slot statuses, got %d", len(statuses))
	}

	booked := map[string]bool{}
	for _, s := range statuses {
		booked[s.Time] = s.Booked
	}

	if !booked["09:00"] {
		t.Error("09:00 should be booked")
	}
	if !booked["14:30"] {
		t.Error("14:30 should be booked")
	}
	// A 09:00 booking blocks only 09:00, never the neighbouring slot
	if booked["09:30"] {
		t.Error("09:30 should be free")
	}
	if booked["14:00"] {
		t.Error("14:00 should be free")
	}
}

func TestMarkBookedSlotsOffGridAppointment(t *testing.T) {
	day := time.Date(2026, 3, 12, 0, 0, 0, 0, time.Local)
	// Legacy row at 09:15: matches no slot label, blocks nothing
	appointments := []Appointment{
		{ScheduledAt: day.Add(9*time.Hour + 15*time.Minute)},
	}

	for _, s := range MarkBookedSlots(appointments) {
		if s.Booked {
			t.Errorf("slot %s should be free", s.Time)
		}
	}
}

func TestMarkBookedSlotsEmpty(t *testing.T) {
	for _, s := range MarkBookedSlots(nil) {
		if s.Booked {
			t.Errorf("slot %s should be free with no appointments", s.Time)
		}
	}
}

func TestNormalizeStatus(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"scheduled", "scheduled"},
		{"done", "done"},
		{"cancelled", "cancelled"},
		{"confirmed", "scheduled"},
		{"pending", "scheduled"},
		{"", "scheduled"},
		{"garbage", "scheduled"},
	}

	for _, tt := range tests {
		if got := NormalizeStatus(tt.in); got != tt.want {
			t.Errorf("NormalizeStatus(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestValidStatus(t *testing.T) {
	for _, valid := range []string{"scheduled", "done", "cancelled"} {
		if !ValidStatus(valid) {
			t.Errorf("ValidStatus(%q) = false, want true", valid)
		}
	}
	for _, invalid := range []string{"confirmed", "pending", "", "Done"} {
		if ValidStatus(invalid) {
			t.Errorf("ValidStatus(%q) = true, want false", invalid)
		}
	}
}
