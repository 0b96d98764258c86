package appointment

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fatahealth/clinic-server/cmd/models"
	"github.com/gorilla/mux"
)

// Validation failures must be rejected before any write is attempted, so a
// handler without a database behind it is enough to exercise them.
func TestBookAppointmentRejectsBeforeAnyWrite(t *testing.T) {
	handler := NewAppointmentHandler(nil, models.NewHub())

	now := time.Now()
	localSlot := func(dayOffset, hour, min int) string {
		t := time.Date(now.Year(), now.Month(), now.Day(), hour, min, 0, 0, time.Local).AddDate(0, 0, dayOffset)
		return t.Format(time.RFC3339)
	}

	tests := []struct {
		name string
		body string
		want int
	}{
		{"malformed json", "{", http.StatusBadRequest},
		{"missing fields", `{"name":"John Doe"}`, http.StatusBadRequest},
		{
			"invalid email",
			fmt.Sprintf(`{"name":"John Doe","email":"abc","phone":"+60123456789","message":"hi","scheduled_at":"%s"}`, localSlot(1, 9, 0)),
			http.StatusBadRequest,
		},
		{
			"invalid phone",
			fmt.Sprintf(`{"name":"John Doe","email":"a@b.com","phone":"abc123!","message":"hi","scheduled_at":"%s"}`, localSlot(1, 9, 0)),
			http.StatusBadRequest,
		},
		{
			"today disallowed",
			fmt.Sprintf(`{"name":"John Doe","email":"a@b.com","phone":"+60123456789","message":"hi","scheduled_at":"%s"}`, localSlot(0, 9, 0)),
			http.StatusBadRequest,
		},
		{
			"off-grid slot",
			fmt.Sprintf(`{"name":"John Doe","email":"a@b.com","phone":"+60123456789","message":"hi","scheduled_at":"%s"}`, localSlot(1, 9, 10)),
			http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/api/appointments", bytes.NewBufferString(tt.body))
			rec := httptest.NewRecorder()

			handler.BookAppointment(rec, req)

			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d (body %q)", rec.Code, tt.want, rec.Body.String())
			}
		})
	}
}

func TestUpdateAppointmentRequiresDoctor(t *testing.T) {
	handler := NewAppointmentHandler(nil, models.NewHub())

	// Saving with no doctor assigned is refused whatever else is set
	bodies := []string{
		`{"status":"done","remarks":"seen"}`,
		`{"status":"scheduled","remarks":"notes only","doctor_id":null}`,
		`{"status":"cancelled","doctor_id":0}`,
	}

	for _, body := range bodies {
		req := httptest.NewRequest("PATCH", "/api/appointments/1", strings.NewReader(body))
		req = mux.SetURLVars(req, map[string]string{"id": "1"})
		rec := httptest.NewRecorder()

		handler.UpdateAppointment(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %s: status = %d, want 400", body, rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "doctor") {
			t.Errorf("body %s: error should mention the doctor requirement, got %q", body, rec.Body.String())
		}
	}
}

func TestBookingRequestDecodesISOTimestamp(t *testing.T) {
	var req BookingRequest
	payload := `{"name":"John Doe","email":"a@b.com","phone":"+60123456789","message":"hi","scheduled_at":"2026-04-01T09:30:00Z"}`
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if req.ScheduledAt == nil || req.ScheduledAt.Format("15:04") != "09:30" {
		t.Errorf("scheduled_at decoded wrong: %v", req.ScheduledAt)
	}
}
