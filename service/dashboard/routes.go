package dashboard

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/fatahealth/clinic-server/cmd/models"
	"github.com/fatahealth/clinic-server/cmd/utils"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type DashboardHandler struct {
	db *gorm.DB
}

func NewDashboardHandler(db *gorm.DB) *DashboardHandler {
	return &DashboardHandler{db: db}
}

func (h *DashboardHandler) RegisterRoutes(router *mux.Router) {
	dashboardRouter := router.PathPrefix("/dashboard").Subrouter()
	dashboardRouter.HandleFunc("/doctor", utils.AuthMiddleware(h.GetDoctorDashboard)).Methods("GET")
	dashboardRouter.HandleFunc("/staff", utils.AuthMiddleware(h.GetStaffDashboard)).Methods("GET")
}

// GetDoctorDashboard scopes everything to appointments assigned to the
// calling doctor.
func (h *DashboardHandler) GetDoctorDashboard(w http.ResponseWriter, r *http.Request) {
	userID, err := utils.GetUserIDFromContext(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var appointments []models.Appointment
	if err := h.db.Where("doctor_id = ?", userID).
		Order("scheduled_at ASC").Find(&appointments).Error; err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	for i := range appointments {
		appointments[i].Status = models.NormalizeStatus(appointments[i].Status)
	}

	var patientsTotal int64
	h.db.Model(&models.Patient{}).Count(&patientsTotal)

	now := time.Now()
	today := TodayAppointments(appointments, now)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"patients_total":     patientsTotal,
		"appointments_today": len(today),
		"today":              today,
		"upcoming":           UpcomingAppointments(appointments, now),
		"assigned":           appointments,
	})
}

// GetStaffDashboard aggregates over every appointment plus the patient
// registration window.
func (h *DashboardHandler) GetStaffDashboard(w http.ResponseWriter, r *http.Request) {
	if _, err := utils.GetUserIDFromContext(r); err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var appointments []models.Appointment
	if err := h.db.Order("scheduled_at ASC").Find(&appointments).Error; err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	for i := range appointments {
		appointments[i].Status = models.NormalizeStatus(appointments[i].Status)
	}

	var patients []models.Patient
	if err := h.db.Find(&patients).Error; err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	var prescriptionsTotal int64
	h.db.Model(&models.Prescription{}).Count(&prescriptionsTotal)

	now := time.Now()
	today := TodayAppointments(appointments, now)
	buckets := MonthlyRegistrations(patients, now)

	// patients_total is the all-time count; window_total sums only the
	// three-month buckets. Both are exposed so neither gets mislabeled.
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"patients_total":        len(patients),
		"prescriptions_total":   prescriptionsTotal,
		"appointments_today":    len(today),
		"today":                 today,
		"upcoming":              UpcomingAppointments(appointments, now),
		"monthly_registrations": buckets,
		"window_total":          WindowTotal(buckets),
	})
}
