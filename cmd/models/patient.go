package models

import (
	"gorm.io/gorm"
)

type Patient struct {
	gorm.Model
	Name             string `gorm:"column:name;size:255;not null" json:"name"`
	IC               string `gorm:"column:ic;size:50;not null;index" json:"ic"`
	Email            string `gorm:"column:email;size:255" json:"email"`
	Phone            string `gorm:"column:phone;size:20" json:"phone"`
	Address          string `gorm:"column:address;size:500" json:"address"`
	Gender           string `gorm:"column:gender;size:20" json:"gender"`
	BloodType        string `gorm:"column:blood_type;size:10" json:"blood_type"`
	EmergencyContact string `gorm:"column:emergency_contact;size:255" json:"emergency_contact"`
	Condition        string `gorm:"column:condition;type:text" json:"condition"`
	Status           string `gorm:"column:status;size:50;default:active" json:"status"`
}
