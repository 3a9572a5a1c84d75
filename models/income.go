package models

import "time"

// Income is a dated inflow (an income stream entry), independent of any budget.
type Income struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:100;not null"`
	Amount    float64   `json:"amount" gorm:"type:decimal(12,2);not null"`
	Icon      string    `json:"icon" gorm:"size:16"`
	Date      time.Time `json:"date" gorm:"index;not null"`
	CreatedBy string    `json:"created_by" gorm:"size:100;index;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Income) TableName() string {
	return "incomes"
}
