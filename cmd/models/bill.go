package models

import (
	"gorm.io/gorm"
)

const (
	PaymentUnpaid = "unpaid"
	PaymentPaid   = "paid"
)

type Bill struct {
	gorm.Model
	PatientID     uint    `gorm:"column:patient_id;not null;index" json:"patient_id"`
	TotalAmount   float64 `gorm:"column:total_amount;not null" json:"total_amount"`
	PaymentStatus string  `gorm:"column:payment_status;size:50;not null;default:unpaid" json:"payment_status"`
	CreatedBy     *uint   `gorm:"column:created_by" json:"created_by"`
	ReceiptRef    string  `gorm:"column:receipt_ref;size:64" json:"receipt_ref,omitempty"`

	Patient *Patient `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
}
