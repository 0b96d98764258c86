package models

import (
	"gorm.io/gorm"
)

type Prescription struct {
	gorm.Model
	PatientID     uint   `gorm:"column:patient_id;not null" json:"patient_id"`
	AppointmentID *uint  `gorm:"column:appointment_id" json:"appointment_id"`
	Diagnosis     string `gorm:"column:diagnosis;type:text" json:"diagnosis"`
	Notes         string `gorm:"column:notes;type:text" json:"notes"`
	PrescribedBy  *uint  `gorm:"column:prescribed_by" json:"prescribed_by"`
	Status        string `gorm:"column:status;size:50" json:"status"`

	Patient   *Patient               `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Medicines []PrescriptionMedicine `gorm:"foreignKey:PrescriptionID;constraint:OnDelete:CASCADE" json:"medicines,omitempty"`
}

// PrescriptionMedicine links a prescription to a medicine. PriceAtPrescription
// is copied from the medicine at creation time; later price changes must not
// alter past prescriptions.
type PrescriptionMedicine struct {
	gorm.Model
	PrescriptionID      uint    `gorm:"column:prescription_id;not null" json:"prescription_id"`
	MedicineID          uint    `gorm:"column:medicine_id;not null" json:"medicine_id"`
	Quantity            int     `gorm:"column:quantity;not null" json:"quantity"`
	PriceAtPrescription float64 `gorm:"column:price_at_prescription;not null" json:"price_at_prescription"`

	Medicine *Medicine `gorm:"foreignKey:MedicineID" json:"medicine,omitempty"`
}

func (PrescriptionMedicine) TableName() string {
	return "prescription_medicines"
}
