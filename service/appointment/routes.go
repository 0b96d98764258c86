package appointment

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fatahealth/clinic-server/cmd/models"
	"github.com/fatahealth/clinic-server/cmd/utils"
	"github.com/gorilla/mux"
	"gopkg.in/gomail.v2"
	"gorm.io/gorm"
)

type AppointmentHandler struct {
	db  *gorm.DB
	hub *models.Hub
}

func NewAppointmentHandler(db *gorm.DB, hub *models.Hub) *AppointmentHandler {
	return &AppointmentHandler{db: db, hub: hub}
}

func (h *AppointmentHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/appointments", h.BookAppointment).Methods("POST")
	router.HandleFunc("/appointments", utils.AuthMiddleware(h.GetAppointments)).Methods("GET")
	router.HandleFunc("/appointments/{id:[0-9]+}", utils.AuthMiddleware(h.GetAppointment)).Methods("GET")
	router.HandleFunc("/appointments/{id:[0-9]+}", utils.AuthMiddleware(h.UpdateAppointment)).Methods("PATCH")
}

// BookAppointment is the public intake endpoint behind the booking form.
func (h *AppointmentHandler) BookAppointment(w http.ResponseWriter, r *http.Request) {
	var bookingRequest BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&bookingRequest); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := ValidateBooking(bookingRequest, time.Now()); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	scheduledAt := bookingRequest.ScheduledAt.In(time.Local)

	appointment := models.Appointment{
		Name:        bookingRequest.Name,
		Email:       bookingRequest.Email,
		Phone:       bookingRequest.Phone,
		Message:     bookingRequest.Message,
		ScheduledAt: scheduledAt,
		Status:      models.StatusScheduled,
	}

	tx := h.db.Begin()

	var existing models.Appointment
	if err := tx.Where("scheduled_at = ?", scheduledAt).First(&existing).Error; err == nil {
		tx.Rollback()
		http.Error(w, "Time slot already booked", http.StatusConflict)
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		tx.Rollback()
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if err := tx.Create(&appointment).Error; err != nil {
		tx.Rollback()
		// The unique index on scheduled_at backstops the read-then-write race
		if strings.Contains(err.Error(), "duplicate key") {
			http.Error(w, "Time slot already booked", http.StatusConflict)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if err := tx.Commit().Error; err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	go func() {
		if err := sendBookingConfirmation(appointment.Email, appointment.Name, scheduledAt); err != nil {
			log.Printf("Error sending booking confirmation: %v", err)
		}
	}()

	h.hub.BroadcastEvent(models.EventAppointmentCreated, &appointment)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"message": "Appointment booked!",
	})
}

// GetAppointments lists appointments for the triage views, oldest first.
// Filters: assignment=all|assigned|unassigned and q (free-text).
func (h *AppointmentHandler) GetAppointments(w http.ResponseWriter, r *http.Request) {
	userID, err := utils.GetUserIDFromContext(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var appointments []models.Appointment
	if err := h.db.Order("scheduled_at ASC").Find(&appointments).Error; err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	assignment := r.URL.Query().Get("assignment")
	query := r.URL.Query().Get("q")
	appointments = FilterAppointments(appointments, assignment, userID, query)

	for i := range appointments {
		appointments[i].Status = models.NormalizeStatus(appointments[i].Status)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"appointments": appointments,
		"total":        len(appointments),
	})
}

func (h *AppointmentHandler) GetAppointment(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	appointmentID, err := strconv.ParseUint(vars["id"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid appointment ID", http.StatusBadRequest)
		return
	}

	var appointment models.Appointment
	if err := h.db.First(&appointment, appointmentID).Error; err != nil {
		http.Error(w, "Appointment not found", http.StatusNotFound)
		return
	}

	appointment.Status = models.NormalizeStatus(appointment.Status)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(appointment)
}

// UpdateAppointment is the triage save. Status, remarks and doctor are set
// together in one update; saving is refused while no doctor is assigned.
func (h *AppointmentHandler) UpdateAppointment(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	appointmentID, err := strconv.ParseUint(vars["id"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid appointment ID", http.StatusBadRequest)
		return
	}

	var updateRequest struct {
		Status   string `json:"status"`
		Remarks  string `json:"remarks"`
		DoctorID *uint  `json:"doctor_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&updateRequest); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if updateRequest.DoctorID == nil || *updateRequest.DoctorID == 0 {
		http.Error(w, "A doctor must be assigned before saving", http.StatusBadRequest)
		return
	}
	if !models.ValidStatus(updateRequest.Status) {
		http.Error(w, "Status must be scheduled, done or cancelled", http.StatusBadRequest)
		return
	}

	var doctor models.Doctor
	if err := h.db.Where("user_id = ?", *updateRequest.DoctorID).First(&doctor).Error; err != nil {
		http.Error(w, "Assigned doctor is not on the roster", http.StatusBadRequest)
		return
	}

	result := h.db.Model(&models.Appointment{}).Where("id = ?", appointmentID).
		Updates(map[string]interface{}{
			"status":    updateRequest.Status,
			"remarks":   updateRequest.Remarks,
			"doctor_id": *updateRequest.DoctorID,
		})

	if result.Error != nil {
		http.Error(w, result.Error.Error(), http.StatusInternalServerError)
		return
	}
	if result.RowsAffected == 0 {
		http.Error(w, "Appointment not found", http.StatusNotFound)
		return
	}

	var appointment models.Appointment
	if err := h.db.First(&appointment, appointmentID).Error; err == nil {
		h.hub.BroadcastEvent(models.EventAppointmentUpdated, &appointment)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"message": "Appointment updated successfully",
	})
}

// sendBookingConfirmation mails the patient their slot. Best effort: skipped
// when no SMTP host is configured.
func sendBookingConfirmation(email, name string, scheduledAt time.Time) error {
	smtpHost := os.Getenv("SMTP_HOST")
	if smtpHost == "" {
		return nil
	}
	smtpPort := os.Getenv("SMTP_PORT")
	smtpUser := os.Getenv("SMTP_USER")
	smtpPass := os.Getenv("SMTP_PASS")

	m := gomail.NewMessage()
	m.SetHeader("From", smtpUser)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Appointment Confirmation")
	m.SetBody("text/plain", fmt.Sprintf(
		"Dear %s,\n\nYour appointment is booked for %s at %s.\n\nSee you then!",
		name,
		scheduledAt.Format("Monday, 2 January 2006"),
		scheduledAt.Format("15:04"),
	))

	port, err := strconv.Atoi(smtpPort)
	if err != nil {
		return fmt.Errorf("invalid SMTP port: %v", err)
	}
	d := gomail.NewDialer(smtpHost, port, smtpUser, smtpPass)

	return d.DialAndSend(m)
}
