package models

import (
	"time"
)

type Customer struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	FullName  string    `gorm:"not null" json:"full_name"`
	Cpf       string    `gorm:"uniqueIndex;not null" json:"cpf"`
	Status    Status    `gorm:"not null;default:1" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
