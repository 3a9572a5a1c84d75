package api

import (
	"strconv"

	"github.com/tkarusala001/budgetly/database"
	"github.com/tkarusala001/budgetly/middleware"
	"github.com/tkarusala001/budgetly/models"
	"github.com/tkarusala001/budgetly/report"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// BudgetHandler handles budget CRUD. List and Get responses always carry the
// derived spend totals, recomputed per request, never stored.
type BudgetHandler struct{}

// NewBudgetHandler creates a budget handler.
func NewBudgetHandler() *BudgetHandler {
	return &BudgetHandler{}
}

// CreateBudgetRequest is the budget creation payload.
type CreateBudgetRequest struct {
	Name   string  `json:"name" binding:"required,max=100" example:"Groceries"`
	Amount float64 `json:"amount" binding:"required,gte=0" example:"500"`
	Icon   string  `json:"icon" binding:"max=16" example:"🛒"`
}

// UpdateBudgetRequest replaces the budget's editable fields in full.
type UpdateBudgetRequest struct {
	Name   string  `json:"name" binding:"required,max=100"`
	Amount float64 `json:"amount" binding:"required,gte=0"`
	Icon   string  `json:"icon" binding:"max=16"`
}

// Create creates a budget
// @Summary Create budget
// @Tags budgets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateBudgetRequest true "budget payload"
// @Success 200 {object} Response{data=models.Budget} "created"
// @Failure 400 {object} Response "invalid payload"
// @Failure 401 {object} Response "unauthorized"
// @Router /api/v1/budgets [post]
func (h *BudgetHandler) Create(c *gin.Context) {
	owner := middleware.GetCurrentOwner(c)

	var req CreateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "invalid request"))
		return
	}

	budget := models.Budget{
		Name:      req.Name,
		Amount:    req.Amount,
		Icon:      req.Icon,
		CreatedBy: owner,
	}

	if err := database.DB.Create(&budget).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to create budget"))
		return
	}

	SuccessWithMessage(c, "created", budget)
}

// List returns the owner's budgets with spend totals
// @Summary List budgets
// @Description Every owned budget with total spend, item count, remaining amount and progress percent. Budgets without expenses report zero totals.
// @Tags budgets
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=[]report.BudgetSummary} "ok"
// @Failure 401 {object} Response "unauthorized"
// @Router /api/v1/budgets [get]
func (h *BudgetHandler) List(c *gin.Context) {
	owner := middleware.GetCurrentOwner(c)

	summaries, err := report.NewAggregator(database.DB).SummarizeBudgets(owner)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to query budgets"))
		return
	}

	Success(c, summaries)
}

// Get returns a single budget with its spend totals
// @Summary Get budget
// @Tags budgets
// @Produce json
// @Security BearerAuth
// @Param id path int true "budget id"
// @Success 200 {object} Response{data=report.BudgetSummary} "ok"
// @Failure 401 {object} Response "unauthorized"
// @Failure 404 {object} Response "not found"
// @Router /api/v1/budgets/{id} [get]
func (h *BudgetHandler) Get(c *gin.Context) {
	owner := middleware.GetCurrentOwner(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "invalid id")
		return
	}

	summary, err := report.NewAggregator(database.DB).SummarizeBudget(owner, uint(id))
	if err != nil {
		NotFound(c, "budget not found")
		return
	}

	Success(c, summary)
}

// Update replaces a budget's fields
// @Summary Update budget
// @Description Full-record replace of name, amount and icon.
// @Tags budgets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "budget id"
// @Param request body UpdateBudgetRequest true "budget payload"
// @Success 200 {object} Response{data=models.Budget} "updated"
// @Failure 400 {object} Response "invalid payload"
// @Failure 401 {object} Response "unauthorized"
// @Failure 404 {object} Response "not found"
// @Router /api/v1/budgets/{id} [put]
func (h *BudgetHandler) Update(c *gin.Context) {
	owner := middleware.GetCurrentOwner(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "invalid id")
		return
	}

	var budget models.Budget
	if err := database.DB.Where("id = ? AND created_by = ?", id, owner).First(&budget).Error; err != nil {
		NotFound(c, "budget not found")
		return
	}

	var req UpdateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "invalid request"))
		return
	}

	updates := map[string]interface{}{
		"name":   req.Name,
		"amount": req.Amount,
		"icon":   req.Icon,
	}
	if err := database.DB.Model(&budget).Updates(updates).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to update budget"))
		return
	}

	database.DB.First(&budget, budget.ID)
	SuccessWithMessage(c, "updated", budget)
}

// Delete removes a budget and all its expenses
// @Summary Delete budget
// @Description Deletes the budget's expenses first, then the budget, in one transaction. The delete is physical and immediate.
// @Tags budgets
// @Produce json
// @Security BearerAuth
// @Param id path int true "budget id"
// @Success 200 {object} Response "deleted"
// @Failure 401 {object} Response "unauthorized"
// @Failure 404 {object} Response "not found"
// @Router /api/v1/budgets/{id} [delete]
func (h *BudgetHandler) Delete(c *gin.Context) {
	owner := middleware.GetCurrentOwner(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "invalid id")
		return
	}

	var budget models.Budget
	if err := database.DB.Where("id = ? AND created_by = ?", id, owner).First(&budget).Error; err != nil {
		NotFound(c, "budget not found")
		return
	}

	// Expenses first, then the budget itself
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("budget_id = ?", budget.ID).Delete(&models.Expense{}).Error; err != nil {
			return err
		}
		return tx.Delete(&budget).Error
	})
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to delete budget"))
		return
	}

	SuccessWithMessage(c, "deleted", nil)
}
