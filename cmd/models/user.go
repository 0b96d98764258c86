package models

import (
	"github.com/lib/pq"
	"gorm.io/gorm"
)

const (
	RoleAdmin  = "admin"
	RoleStaff  = "staff"
	RoleDoctor = "doctor"
)

type User struct {
	gorm.Model
	Email        string `gorm:"column:email;size:255;not null;uniqueIndex" json:"email"`
	PasswordHash string `gorm:"column:password_hash;size:255;not null" json:"-"`
	Role         string `gorm:"column:role;size:50;not null" json:"role"`

	Staff  *Staff  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"staff,omitempty"`
	Doctor *Doctor `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"doctor,omitempty"`
}

type Staff struct {
	gorm.Model
	UserID   uint   `gorm:"column:user_id;not null" json:"user_id"`
	FullName string `gorm:"column:full_name;size:255;not null" json:"full_name"`
	Phone    string `gorm:"column:phone;size:20" json:"phone"`
	Email    string `gorm:"column:email;size:255" json:"email"`
	Address  string `gorm:"column:address;size:500" json:"address"`
	Position string `gorm:"column:position;size:100" json:"position"`
	Shift    string `gorm:"column:shift;size:50" json:"shift"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
}

type Doctor struct {
	gorm.Model
	UserID         uint           `gorm:"column:user_id;not null" json:"user_id"`
	FullName       string         `gorm:"column:full_name;size:255;not null" json:"full_name"`
	Phone          string         `gorm:"column:phone;size:20" json:"phone"`
	Email          string         `gorm:"column:email;size:255" json:"email"`
	Address        string         `gorm:"column:address;size:500" json:"address"`
	Specialization string         `gorm:"column:specialization;size:255" json:"specialization"`
	AvailableDays  pq.StringArray `gorm:"column:available_days;type:text[]" json:"available_days"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
}

func (Staff) TableName() string {
	return "staffs"
}

func (Doctor) TableName() string {
	return "doctors"
}
