package domain

import "time"

// Employee is a kiosk operator. IDs are badge numbers assigned by
// administration, not generated.
type Employee struct {
	ID           int64     `gorm:"primaryKey"`
	Name         string    `gorm:"type:text;not null"`
	PasswordHash string    `gorm:"type:text;not null"`
	CreatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Employee) TableName() string { return "employees" }
