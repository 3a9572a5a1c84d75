package models

import "time"

// Expense is a dated outflow attributed to exactly one budget.
// There is no owner column: ownership flows through the budget's CreatedBy.
type Expense struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:100;not null"`
	Amount    float64   `json:"amount" gorm:"type:decimal(12,2);not null"`
	BudgetID  uint      `json:"budget_id" gorm:"index;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Budget    Budget    `json:"-" gorm:"foreignKey:BudgetID"`
}

func (Expense) TableName() string {
	return "expenses"
}
