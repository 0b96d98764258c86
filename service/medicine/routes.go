package medicine

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

type MedicineHandler struct {
	db *gorm.DB
}

func NewMedicineHandler(db *gorm.DB) *MedicineHandler {
	return &MedicineHandler{db: db}
}

func (h *MedicineHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/medicines", utils.AuthMiddleware(h.CreateMedicine)).Methods("POST")
	router.HandleFunc("/medicines", utils.AuthMiddleware(h.GetMedicines)).Methods("GET")
	router.HandleFunc("/medicines/{id}", utils.AuthMiddleware(h.GetMedicine)).Methods("GET")
	router.HandleFunc("/medicines/{id}", utils.AuthMiddleware(h.UpdateMedicine)).Methods("PUT")
	router.HandleFunc("/medicines/{id}", utils.AuthMiddleware(h.DeleteMedicine)).Methods("DELETE")
}

func (h *MedicineHandler) CreateMedicine(w http.ResponseWriter, r *http.Request) {
	var medicine models.Medicine
	if err := json.NewDecoder(r.Body).Decode(&medicine); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(medicine.Name) == "" {
		http.Error(w, "Name is required", http.StatusBadRequest)
		return
	}
	if medicine.Quantity < 0 {
		http.Error(w, "Quantity cannot be negative", http.StatusBadRequest)
		return
	}
	if medicine.Price < 0 {
		http.Error(w, "Price cannot be negative", http.StatusBadRequest)
		return
	}

	if err := h.db.Create(&medicine).Error; err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(medicine)
}

func (h *MedicineHandler) GetMedicines(w http.ResponseWriter, r *http.Request) {
	query := h.db.Model(&models.Medicine{})

	if q := r.URL.Query().Get("q"); q != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(q)+"%")
	}
	if category := r.URL.Query().Get("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	var medicines []models.Medicine
	if err := query.Order("name ASC").Find(&medicines).Error; err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"medicines": medicines,
		"total":     len(medicines),
	})
}

func (h *MedicineHandler) GetMedicine(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	medicineID, err := strconv.ParseUint(vars["id"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid medicine ID", http.StatusBadRequest)
		return
	}

	var medicine models.Medicine
	if err := h.db.First(&medicine, medicineID).Error; err != nil {
		http.Error(w, "Medicine not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(medicine)
}

func (h *MedicineHandler) UpdateMedicine(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	medicineID, err := strconv.ParseUint(vars["id"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid medicine ID", http.StatusBadRequest)
		return
	}

	var medicine models.Medicine
	if err := h.db.First(&medicine, medicineID).Error; err != nil {
		http.Error(w, "Medicine not found", http.StatusNotFound)
		return
	}

	var updateData models.Medicine
	if err := json.NewDecoder(r.Body).Decode(&updateData); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(updateData.Name) == "" {
		http.Error(w, "Name is required", http.StatusBadRequest)
		return
	}
	if updateData.Quantity < 0 || updateData.Price < 0 {
		http.Error(w, "Quantity and price cannot be negative", http.StatusBadRequest)
		return
	}

	medicine.Name = updateData.Name
	medicine.Description = updateData.Description
	medicine.Quantity = updateData.Quantity
	medicine.Price = updateData.Price
	medicine.Supplier = updateData.Supplier
	medicine.ExpiryDate = updateData.ExpiryDate
	medicine.Category = updateData.Category
	medicine.BatchNumber = updateData.BatchNumber

	if err := h.db.Save(&medicine).Error; err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(medicine)
}

func (h *MedicineHandler) DeleteMedicine(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	medicineID, err := strconv.ParseUint(vars["id"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid medicine ID", http.StatusBadRequest)
		return
	}

	result := h.db.Delete(&models.Medicine{}, medicineID)
	if result.Error != nil {
		http.Error(w, result.Error.Error(), http.StatusInternalServerError)
		return
	}
	if result.RowsAffected == 0 {
		http.Error(w, "Medicine not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"message": "Medicine deleted successfully",
	})
}
