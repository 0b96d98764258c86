package prescription

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/fatahealth/clinic-server/cmd/models"
	"github.com/fatahealth/clinic-server/cmd/utils"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type PrescriptionHandler struct {
	db *gorm.DB
}

func NewPrescriptionHandler(db *gorm.DB) *PrescriptionHandler {
	return &PrescriptionHandler{db: db}
}

func (h *PrescriptionHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/prescriptions", h.GetPrescriptions).Methods("GET")
	router.HandleFunc("/prescriptions", utils.AuthMiddleware(h.CreatePrescription)).Methods("POST")
	router.HandleFunc("/prescriptions/{id}", utils.AuthMiddleware(h.GetPrescription)).Methods("GET")
	router.HandleFunc("/patients/{patientId:[0-9]+}/prescriptions", utils.AuthMiddleware(h.GetPatientPrescriptions)).Methods("GET")

	router.HandleFunc("/bills/{id}", h.GetBill).Methods("GET")
	router.HandleFunc("/bills/{id}/pay", h.PayBill).Methods("POST")
}

type prescriptionResponse struct {
	ID            uint      `json:"id"`
	AppointmentID *uint     `json:"appointment_id"`
	Diagnosis     string    `json:"diagnosis"`
	Notes         string    `json:"notes"`
	PrescribedBy  *uint     `json:"prescribed_by"`
	CreatedAt     time.Time `json:"created_at"`
	PatientID     uint      `json:"patient_id"`
}

// GetPrescriptions returns every prescription, newest first.
func (h *PrescriptionHandler) GetPrescriptions(w http.ResponseWriter, r *http.Request) {
	var prescriptions []models.Prescription
	if err := h.db.Order("created_at DESC").Find(&prescriptions).Error; err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	response := make([]prescriptionResponse, 0, len(prescriptions))
	for _, p := range prescriptions {
		response = append(response, prescriptionResponse{
			ID:            p.ID,
			AppointmentID: p.AppointmentID,
			Diagnosis:     p.Diagnosis,
			Notes:         p.Notes,
			PrescribedBy:  p.PrescribedBy,
			CreatedAt:     p.CreatedAt,
			PatientID:     p.PatientID,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// CreatePrescription writes the prescription, its medicine rows and the bill
// as one transaction: either all rows land or none do. Unit prices are
// snapshotted into the join rows at this moment.
func (h *PrescriptionHandler) CreatePrescription(w http.ResponseWriter, r *http.Request) {
	userID, err := utils.GetUserIDFromContext(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var createRequest struct {
		PatientID     uint                `json:"patient_id"`
		AppointmentID *uint               `json:"appointment_id"`
		Diagnosis     string              `json:"diagnosis"`
		Notes         string              `json:"notes"`
		Medicines     []MedicineSelection `json:"medicines"`
	}
	if err := json.NewDecoder(r.Body).Decode(&createRequest); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if createRequest.PatientID == 0 {
		http.Error(w, "Patient is required", http.StatusBadRequest)
		return
	}
	for _, sel := range createRequest.Medicines {
		if sel.Quantity < 1 {
			http.Error(w, "Medicine quantity must be at least 1", http.StatusBadRequest)
			return
		}
	}

	var patient models.Patient
	if err := h.db.First(&patient, createRequest.PatientID).Error; err != nil {
		http.Error(w, "Patient not found", http.StatusNotFound)
		return
	}

	medicineIDs := make([]uint, 0, len(createRequest.Medicines))
	for _, sel := range createRequest.Medicines {
		medicineIDs = append(medicineIDs, sel.MedicineID)
	}

	var medicines []models.Medicine
	if len(medicineIDs) > 0 {
		if err := h.db.Where("id IN ?", medicineIDs).Find(&medicines).Error; err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}

	prices := make(map[uint]float64, len(medicines))
	for _, m := range medicines {
		prices[m.ID] = m.Price
	}
	total := ComputeTotal(prices, createRequest.Medicines)

	prescription := models.Prescription{
		PatientID:     createRequest.PatientID,
		AppointmentID: createRequest.AppointmentID,
		Diagnosis:     createRequest.Diagnosis,
		Notes:         createRequest.Notes,
		PrescribedBy:  &userID,
	}

	var bill models.Bill
	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&prescription).Error; err != nil {
			return err
		}

		for _, sel := range createRequest.Medicines {
			// A medicine deleted since selection contributes zero but its
			// row is skipped entirely
			if _, ok := prices[sel.MedicineID]; !ok {
				continue
			}
			row := models.PrescriptionMedicine{
				PrescriptionID:      prescription.ID,
				MedicineID:          sel.MedicineID,
				Quantity:            sel.Quantity,
				PriceAtPrescription: prices[sel.MedicineID],
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}

		bill = models.Bill{
			PatientID:     createRequest.PatientID,
			TotalAmount:   total,
			PaymentStatus: models.PaymentUnpaid,
			CreatedBy:     &userID,
		}
		return tx.Create(&bill).Error
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message":         "Prescription and bill saved successfully",
		"prescription_id": prescription.ID,
		"bill_id":         bill.ID,
		"total_amount":    total,
	})
}

func (h *PrescriptionHandler) GetPrescription(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	prescriptionID, err := strconv.ParseUint(vars["id"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid prescription ID", http.StatusBadRequest)
		return
	}

	var prescription models.Prescription
	if err := h.db.Preload("Patient").Preload("Medicines").Preload("Medicines.Medicine").
		First(&prescription, prescriptionID).Error; err != nil {
		http.Error(w, "Prescription not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(prescription)
}

func (h *PrescriptionHandler) GetPatientPrescriptions(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	patientID, err := strconv.ParseUint(vars["patientId"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid patient ID", http.StatusBadRequest)
		return
	}

	var prescriptions []models.Prescription
	if err := h.db.Where("patient_id = ?", patientID).Preload("Medicines").
		Order("created_at DESC").Find(&prescriptions).Error; err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(prescriptions)
}

func (h *PrescriptionHandler) GetBill(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	billID, err := strconv.ParseUint(vars["id"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid bill ID", http.StatusBadRequest)
		return
	}

	var bill models.Bill
	if err := h.db.First(&bill, billID).Error; err != nil {
		http.Error(w, "Bill not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(bill)
}

// PayBill settles a bill. The entered amount must be positive and no larger
// than the total; any valid amount flips the status to paid in full. The
// stored total never changes here.
func (h *PrescriptionHandler) PayBill(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	billID, err := strconv.ParseUint(vars["id"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid bill ID", http.StatusBadRequest)
		return
	}

	var payRequest struct {
		Amount string `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payRequest); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	var bill models.Bill
	if err := h.db.First(&bill, billID).Error; err != nil {
		http.Error(w, "Bill not found", http.StatusNotFound)
		return
	}

	if bill.PaymentStatus == models.PaymentPaid {
		http.Error(w, "Bill is already paid", http.StatusConflict)
		return
	}

	amount, err := ValidatePaymentAmount(payRequest.Amount, bill.TotalAmount)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	bill.PaymentStatus = models.PaymentPaid
	bill.ReceiptRef = uuid.New().String()

	if err := h.db.Save(&bill).Error; err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message":     "Payment processed successfully",
		"amount":      amount,
		"receipt_ref": bill.ReceiptRef,
		"bill":        bill,
	})
}
