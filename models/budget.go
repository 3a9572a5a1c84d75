package models

import "time"

// Budget is a named spending ceiling owned by one user.
// CreatedBy holds the owner's email address; every query on budgets (and, via
// budget_id, on expenses) is scoped by it. Deletes are physical: removing a
// budget removes the row, with its expenses deleted in the same transaction.
type Budget struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:100;not null"`
	Amount    float64   `json:"amount" gorm:"type:decimal(12,2);not null"`
	Icon      string    `json:"icon" gorm:"size:16"`
	CreatedBy string    `json:"created_by" gorm:"size:100;index;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Budget) TableName() string {
	return "budgets"
}
