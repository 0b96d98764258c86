package availability

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/fatahealth/clinic-server/cmd/models"
	"github.com/fatahealth/clinic-server/cmd/utils"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type AvailabilityHandler struct {
	db *gorm.DB
}

func NewAvailabilityHandler(db *gorm.DB) *AvailabilityHandler {
	return &AvailabilityHandler{db: db}
}

func (h *AvailabilityHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/appointments/slots/{date}", h.GetDaySlots).Methods("GET")
	router.HandleFunc("/doctors", h.GetDoctors).Methods("GET")
	router.HandleFunc("/doctors/{userId}/availability", utils.AuthMiddleware(h.UpdateWeeklyAvailability)).Methods("PUT")
}

// GetDaySlots returns the day's half-hour slots with booked markings. A slot
// is booked iff an appointment's time-of-day on that date matches it
// exactly. On a failed read every slot is reported free; the booking insert
// still refuses a taken slot.
func (h *AvailabilityHandler) GetDaySlots(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	date, err := time.ParseInLocation("2006-01-02", vars["date"], time.Local)
	if err != nil {
		http.Error(w, "Invalid date format. Use YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	dayStart := date
	dayEnd := date.AddDate(0, 0, 1)

	var appointments []models.Appointment
	if err := h.db.Where("scheduled_at >= ? AND scheduled_at < ?", dayStart, dayEnd).
		Find(&appointments).Error; err != nil {
		log.Printf("failed to fetch available time slots: %v", err)
		appointments = nil
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"date":  vars["date"],
		"slots": models.MarkBookedSlots(appointments),
	})
}

// GetDoctors returns the roster the triage view assigns from.
func (h *AvailabilityHandler) GetDoctors(w http.ResponseWriter, r *http.Request) {
	var doctors []models.Doctor
	if err := h.db.Find(&doctors).Error; err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(doctors)
}

// UpdateWeeklyAvailability replaces a doctor's available days of week.
func (h *AvailabilityHandler) UpdateWeeklyAvailability(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	doctorUserID, err := strconv.ParseUint(vars["userId"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid user ID", http.StatusBadRequest)
		return
	}

	callerID, err := utils.GetUserIDFromContext(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	if callerID != uint(doctorUserID) {
		http.Error(w, "Doctors can only edit their own availability", http.StatusForbidden)
		return
	}

	var updateRequest struct {
		AvailableDays []string `json:"available_days"`
	}
	if err := json.NewDecoder(r.Body).Decode(&updateRequest); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	for _, day := range updateRequest.AvailableDays {
		if !validWeekday(day) {
			http.Error(w, "Invalid day of week: "+day, http.StatusBadRequest)
			return
		}
	}

	var doctor models.Doctor
	if err := h.db.Where("user_id = ?", doctorUserID).First(&doctor).Error; err != nil {
		http.Error(w, "Doctor profile not found", http.StatusNotFound)
		return
	}

	doctor.AvailableDays = updateRequest.AvailableDays
	if err := h.db.Save(&doctor).Error; err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(doctor)
}

func validWeekday(day string) bool {
	switch day {
	case "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday":
		return true
	}
	return false
}
