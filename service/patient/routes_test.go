package patient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fatahealth/clinic-server/cmd/models"
	"github.com/gorilla/mux"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(&models.Patient{}, &models.Bill{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestLookupByICRoundTrip(t *testing.T) {
	db := openTestDB(t)
	handler := NewPatientHandler(db)

	create := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest("POST", "/api/patients", bytes.NewBufferString(body))
		rec := httptest.NewRecorder()
		handler.CreatePatient(rec, req)
		return rec
	}
	if rec := create(`{"name":"Aisha Rahman","ic":"A123456"}`); rec.Code != http.StatusCreated {
		t.Fatalf("create patient: status = %d, body %q", rec.Code, rec.Body.String())
	}
	if rec := create(`{"name":"Tan Wei Ming","ic":"A123457"}`); rec.Code != http.StatusCreated {
		t.Fatalf("create second patient: status = %d", rec.Code)
	}

	lookup := func(ic string) *httptest.ResponseRecorder {
		req := httptest.NewRequest("GET", "/api/patients/ic/"+ic, nil)
		req = mux.SetURLVars(req, map[string]string{"ic": ic})
		rec := httptest.NewRecorder()
		handler.GetPatientByIC(rec, req)
		return rec
	}

	rec := lookup("A123456")
	if rec.Code != http.StatusOK {
		t.Fatalf("lookup: status = %d, body %q", rec.Code, rec.Body.String())
	}
	var response struct {
		Patient models.Patient `json:"patient"`
		Bills   []models.Bill  `json:"bills"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if response.Patient.Name != "Aisha Rahman" || response.Patient.IC != "A123456" {
		t.Errorf("lookup returned %q (%q), want Aisha Rahman (A123456)", response.Patient.Name, response.Patient.IC)
	}
	if len(response.Bills) != 0 {
		t.Errorf("got %d bills for a patient with none", len(response.Bills))
	}

	// The match is exact and case-sensitive
	if rec := lookup("a123456"); rec.Code != http.StatusNotFound {
		t.Errorf("lowercase lookup: status = %d, want 404", rec.Code)
	}
	if rec := lookup("A12345"); rec.Code != http.StatusNotFound {
		t.Errorf("prefix lookup: status = %d, want 404", rec.Code)
	}

	// Bills ride along newest first
	var patient models.Patient
	if err := db.Where("ic = ?", "A123456").First(&patient).Error; err != nil {
		t.Fatalf("reload patient: %v", err)
	}
	for _, total := range []float64{20.00, 36.50} {
		if err := db.Create(&models.Bill{PatientID: patient.ID, TotalAmount: total, PaymentStatus: models.PaymentUnpaid}).Error; err != nil {
			t.Fatalf("seed bill: %v", err)
		}
	}
	rec = lookup("A123456")
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(response.Bills) != 2 {
		t.Fatalf("got %d bills, want 2", len(response.Bills))
	}
}

func TestGetPatientsSurfacesStoreError(t *testing.T) {
	db := openTestDB(t)
	handler := NewPatientHandler(db)

	if err := db.Migrator().DropTable(&models.Patient{}); err != nil {
		t.Fatalf("drop table: %v", err)
	}

	req := httptest.NewRequest("GET", "/api/patients", nil)
	rec := httptest.NewRecorder()
	handler.GetPatients(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	// The store's own message comes through, not a canned string
	if !strings.Contains(rec.Body.String(), "patients") {
		t.Errorf("body %q does not carry the store error", rec.Body.String())
	}
}

func TestUpdatePatientKeepsRequiredFields(t *testing.T) {
	db := openTestDB(t)
	handler := NewPatientHandler(db)

	patient := models.Patient{Name: "Aisha Rahman", IC: "900101-14-5678", Status: "active"}
	if err := db.Create(&patient).Error; err != nil {
		t.Fatalf("seed patient: %v", err)
	}

	update := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest("PUT", fmt.Sprintf("/api/patients/%d", patient.ID), bytes.NewBufferString(body))
		req = mux.SetURLVars(req, map[string]string{"id": fmt.Sprint(patient.ID)})
		rec := httptest.NewRecorder()
		handler.UpdatePatient(rec, req)
		return rec
	}

	// Blank name or IC is refused and nothing is written
	for _, body := range []string{
		`{"name":"","ic":"900101-14-5678"}`,
		`{"name":"Aisha Rahman","ic":""}`,
		`{"name":"   ","ic":"900101-14-5678"}`,
	} {
		if rec := update(body); rec.Code != http.StatusBadRequest {
			t.Errorf("body %s: status = %d, want 400", body, rec.Code)
		}
	}
	var stored models.Patient
	if err := db.First(&stored, patient.ID).Error; err != nil {
		t.Fatalf("reload patient: %v", err)
	}
	if stored.Name != "Aisha Rahman" || stored.IC != "900101-14-5678" {
		t.Fatalf("refused update mutated the record: %+v", stored)
	}

	if rec := update(`{"name":"Aisha R.","ic":"900101-14-5678","phone":"+60123456789","status":"active"}`); rec.Code != http.StatusOK {
		t.Fatalf("valid update: status = %d, body %q", rec.Code, rec.Body.String())
	}
	if err := db.First(&stored, patient.ID).Error; err != nil {
		t.Fatalf("reload patient: %v", err)
	}
	if stored.Name != "Aisha R." || stored.Phone != "+60123456789" {
		t.Errorf("update not persisted: %+v", stored)
	}
}
