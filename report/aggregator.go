package report

import (
	"fmt"
	"time"

	"github.com/tkarusala001/budgetly/models"

	"gorm.io/gorm"
)

// PeriodSummary is one bucket of the income-vs-expense trend series.
type PeriodSummary struct {
	Label    string  `json:"label"`
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
}

// BudgetSummary is a budget plus its derived spend totals. TotalSpend,
// TotalItem, Remaining and Progress are never persisted; they are recomputed
// from expense rows on every read.
type BudgetSummary struct {
	models.Budget
	TotalSpend float64 `json:"total_spend"`
	TotalItem  int64   `json:"total_item"`
	Remaining  float64 `json:"remaining"`
	Progress   float64 `json:"progress"`
	OverBudget bool    `json:"over_budget"`
}

// Aggregator answers summary queries for one owner's rows.
// now is injectable for tests and defaults to time.Now.
type Aggregator struct {
	db  *gorm.DB
	now func() time.Time
}

// NewAggregator creates an aggregator over the given gorm handle.
func NewAggregator(db *gorm.DB) *Aggregator {
	return &Aggregator{db: db, now: time.Now}
}

// SummarizeByPeriod returns exactly count period summaries for the owner,
// oldest first. Boundaries step backward from the current period; income is
// summed from the owner's incomes, expenses from expense rows joined through
// the owner's budgets, both over the same half-open interval. Absent rows
// coalesce to 0. Any query error aborts the call; no partial series is
// returned.
func (a *Aggregator) SummarizeByPeriod(ownerID string, kind PeriodKind, count int) ([]PeriodSummary, error) {
	if count <= 0 {
		return nil, fmt.Errorf("period count must be positive, got %d", count)
	}

	now := a.now()
	results := make([]PeriodSummary, count)

	// back=count-1 is the oldest period and lands at index 0.
	for back := count - 1; back >= 0; back-- {
		start, end := PeriodRange(now, kind, back)
		idx := count - 1 - back

		var income float64
		err := a.db.Model(&models.Income{}).
			Select("COALESCE(SUM(amount), 0)").
			Where("created_by = ? AND date >= ? AND date < ?", ownerID, start, end).
			Scan(&income).Error
		if err != nil {
			return nil, fmt.Errorf("summarize income for period %s: %w", start.Format("2006-01-02"), err)
		}

		var expenses float64
		err = a.db.Model(&models.Expense{}).
			Select("COALESCE(SUM(expenses.amount), 0)").
			Joins("LEFT JOIN budgets ON budgets.id = expenses.budget_id").
			Where("budgets.created_by = ? AND expenses.created_at >= ? AND expenses.created_at < ?", ownerID, start, end).
			Scan(&expenses).Error
		if err != nil {
			return nil, fmt.Errorf("summarize expenses for period %s: %w", start.Format("2006-01-02"), err)
		}

		results[idx] = PeriodSummary{
			Label:    PeriodLabel(kind, start, idx),
			Income:   income,
			Expenses: expenses,
		}
	}

	return results, nil
}

// SummarizeBudgets returns every budget owned by ownerID with its spend
// totals, newest budget first. Budgets without expenses come back with zero
// totals, never null.
func (a *Aggregator) SummarizeBudgets(ownerID string) ([]BudgetSummary, error) {
	rows := []BudgetSummary{}
	err := a.db.Model(&models.Budget{}).
		Select("budgets.*, COALESCE(SUM(expenses.amount), 0) AS total_spend, COUNT(expenses.id) AS total_item").
		Joins("LEFT JOIN expenses ON expenses.budget_id = budgets.id").
		Where("budgets.created_by = ?", ownerID).
		Group("budgets.id").
		Order("budgets.id DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("summarize budgets: %w", err)
	}

	for i := range rows {
		rows[i].Remaining = rows[i].Amount - rows[i].TotalSpend
		rows[i].Progress = ProgressPercent(rows[i].Amount, rows[i].TotalSpend)
		rows[i].OverBudget = rows[i].Remaining < 0
	}
	return rows, nil
}

// SummarizeBudget returns the summary for a single owned budget.
func (a *Aggregator) SummarizeBudget(ownerID string, budgetID uint) (*BudgetSummary, error) {
	var row BudgetSummary
	err := a.db.Model(&models.Budget{}).
		Select("budgets.*, COALESCE(SUM(expenses.amount), 0) AS total_spend, COUNT(expenses.id) AS total_item").
		Joins("LEFT JOIN expenses ON expenses.budget_id = budgets.id").
		Where("budgets.created_by = ? AND budgets.id = ?", ownerID, budgetID).
		Group("budgets.id").
		Take(&row).Error
	if err != nil {
		return nil, err
	}

	row.Remaining = row.Amount - row.TotalSpend
	row.Progress = ProgressPercent(row.Amount, row.TotalSpend)
	row.OverBudget = row.Remaining < 0
	return &row, nil
}
