package model

import (
	"time"
)

type UserRole string

const (
	Student UserRole = "student"
	Teacher UserRole = "teacher"
	Parent  UserRole = "parent"
	Admin   UserRole = "admin"
)

// swagger:model User
type User struct {
	BaseModel
	Name      string    `gorm:"size:100;not null" json:"name"`
	Email     string    `gorm:"size:100;unique;not null" json:"email"`
	Password  string    `gorm:"size:100;not null" json:"-"`
	Role      UserRole  `gorm:"type:enum('student','teacher','parent','admin');default:'student'" json:"role"`
	Level     string    `gorm:"size:20" json:"level"` // school level code, empty for non-students
	Language  string    `gorm:"size:10;default:'fr'" json:"language"`
	Disabled  bool      `gorm:"default:false" json:"disabled"`
	LastLogin time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"last_login"`
	LastSeen  time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"last_seen"`
}

func (User) TableName() string {
	return "users"
}
