package patient

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/fatahealth/clinic-server/cmd/models"
	"github.com/fatahealth/clinic-server/cmd/utils"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type PatientHandler struct {
	db *gorm.DB
}

func NewPatientHandler(db *gorm.DB) *PatientHandler {
	return &PatientHandler{db: db}
}

func (h *PatientHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/patients", utils.AuthMiddleware(h.CreatePatient)).Methods("POST")
	router.HandleFunc("/patients", utils.AuthMiddleware(h.GetPatients)).Methods("GET")
	router.HandleFunc("/patients/{id:[0-9]+}", utils.AuthMiddleware(h.GetPatient)).Methods("GET")
	router.HandleFunc("/patients/{id:[0-9]+}", utils.AuthMiddleware(h.UpdatePatient)).Methods("PUT")

	// The billing portal searches by IC without signing in
	router.HandleFunc("/patients/ic/{ic}", h.GetPatientByIC).Methods("GET")
}

func (h *PatientHandler) CreatePatient(w http.ResponseWriter, r *http.Request) {
	var patient models.Patient
	if err := json.NewDecoder(r.Body).Decode(&patient); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(patient.Name) == "" || strings.TrimSpace(patient.IC) == "" {
		http.Error(w, "Name and IC are required", http.StatusBadRequest)
		return
	}
	if patient.Status == "" {
		patient.Status = "active"
	}

	if err := h.db.Create(&patient).Error; err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(patient)
}

func (h *PatientHandler) GetPatients(w http.ResponseWriter, r *http.Request) {
	query := h.db.Model(&models.Patient{})

	if q := r.URL.Query().Get("q"); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(ic) LIKE ?", like, like)
	}

	var patients []models.Patient
	if err := query.Order("created_at DESC").Find(&patients).Error; err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"patients": patients,
		"total":    len(patients),
	})
}

func (h *PatientHandler) GetPatient(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	patientID, err := strconv.ParseUint(vars["id"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid patient ID", http.StatusBadRequest)
		return
	}

	var patient models.Patient
	if err := h.db.First(&patient, patientID).Error; err != nil {
		http.Error(w, "Patient not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(patient)
}

func (h *PatientHandler) UpdatePatient(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	patientID, err := strconv.ParseUint(vars["id"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid patient ID", http.StatusBadRequest)
		return
	}

	var patient models.Patient
	if err := h.db.First(&patient, patientID).Error; err != nil {
		http.Error(w, "Patient not found", http.StatusNotFound)
		return
	}

	var updateData models.Patient
	if err := json.NewDecoder(r.Body).Decode(&updateData); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(updateData.Name) == "" || strings.TrimSpace(updateData.IC) == "" {
		http.Error(w, "Name and IC are required", http.StatusBadRequest)
		return
	}

	patient.Name = updateData.Name
	patient.IC = updateData.IC
	patient.Email = updateData.Email
	patient.Phone = updateData.Phone
	patient.Address = updateData.Address
	patient.Gender = updateData.Gender
	patient.BloodType = updateData.BloodType
	patient.EmergencyContact = updateData.EmergencyContact
	patient.Condition = updateData.Condition
	patient.Status = updateData.Status

	if err := h.db.Save(&patient).Error; err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(patient)
}

// GetPatientByIC looks a patient up by exact IC and returns them with their
// bills, newest first. The match is case-sensitive; no trimming beyond
// surrounding whitespace.
func (h *PatientHandler) GetPatientByIC(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	ic := strings.TrimSpace(vars["ic"])
	if ic == "" {
		http.Error(w, "IC is required", http.StatusBadRequest)
		return
	}

	var patient models.Patient
	if err := h.db.Where("ic = ?", ic).First(&patient).Error; err != nil {
		http.Error(w, "Patient not found", http.StatusNotFound)
		return
	}

	var bills []models.Bill
	if err := h.db.Where("patient_id = ?", patient.ID).
		Order("created_at DESC").Find(&bills).Error; err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"patient": patient,
		"bills":   bills,
	})
}
