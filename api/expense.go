package api

import (
	"strconv"

	"github.com/tkarusala001/budgetly/database"
	"github.com/tkarusala001/budgetly/middleware"
	"github.com/tkarusala001/budgetly/models"

	"github.com/gin-gonic/gin"
)

// ExpenseHandler handles expense CRUD. Expenses carry no owner column;
// every operation checks ownership through the parent budget.
type ExpenseHandler struct{}

// NewExpenseHandler creates an expense handler.
func NewExpenseHandler() *ExpenseHandler {
	return &ExpenseHandler{}
}

// CreateExpenseRequest is the expense creation payload.
type CreateExpenseRequest struct {
	Name     string  `json:"name" binding:"required,max=100" example:"Lunch"`
	Amount   float64 `json:"amount" binding:"required,gt=0" example:"12.50"`
	BudgetID uint    `json:"budget_id" binding:"required" example:"1"`
}

// UpdateExpenseRequest replaces the expense's editable fields in full.
type UpdateExpenseRequest struct {
	Name   string  `json:"name" binding:"required,max=100"`
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

// ExpenseListRequest is the query for the joined expense list.
type ExpenseListRequest struct {
	Page     int `form:"page" example:"1"`
	PageSize int `form:"page_size" example:"10"`
}

// ownedBudget loads a budget only if it belongs to the owner.
func ownedBudget(owner string, budgetID uint) (*models.Budget, error) {
	var budget models.Budget
	if err := database.DB.Where("id = ? AND created_by = ?", budgetID, owner).First(&budget).Error; err != nil {
		return nil, err
	}
	return &budget, nil
}

// Create logs an expense against an owned budget
// @Summary Create expense
// @Tags expenses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateExpenseRequest true "expense payload"
// @Success 200 {object} Response{data=models.Expense} "created"
// @Failure 400 {object} Response "invalid payload or budget not owned"
// @Failure 401 {object} Response "unauthorized"
// @Router /api/v1/expenses [post]
func (h *ExpenseHandler) Create(c *gin.Context) {
	owner := middleware.GetCurrentOwner(c)

	var req CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "invalid request"))
		return
	}

	if _, err := ownedBudget(owner, req.BudgetID); err != nil {
		BadRequest(c, "budget not found")
		return
	}

	expense := models.Expense{
		Name:     req.Name,
		Amount:   req.Amount,
		BudgetID: req.BudgetID,
	}

	if err := database.DB.Create(&expense).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to create expense"))
		return
	}

	SuccessWithMessage(c, "created", expense)
}

// List returns all of the owner's expenses across budgets
// @Summary List expenses
// @Description All expenses joined through the owner's budgets, newest first, paginated.
// @Tags expenses
// @Produce json
// @Security BearerAuth
// @Param page query int false "page" default(1)
// @Param page_size query int false "page size" default(10)
// @Success 200 {object} Response{data=PageResponse{list=[]models.Expense}} "ok"
// @Failure 401 {object} Response "unauthorized"
// @Router /api/v1/expenses [get]
func (h *ExpenseHandler) List(c *gin.Context) {
	owner := middleware.GetCurrentOwner(c)

	var req ExpenseListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "invalid request"))
		return
	}
	if req.Page <= 0 {
		req.Page = 1
	}
	if req.PageSize <= 0 {
		req.PageSize = 10
	}
	if req.PageSize > 100 {
		req.PageSize = 100
	}

	query := database.DB.Model(&models.Expense{}).
		Joins("JOIN budgets ON budgets.id = expenses.budget_id").
		Where("budgets.created_by = ?", owner)

	var total int64
	query.Count(&total)

	var expenses []models.Expense
	offset := (req.Page - 1) * req.PageSize
	if err := query.Select("expenses.*").
		Order("expenses.id DESC").Offset(offset).Limit(req.PageSize).
		Find(&expenses).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to query expenses"))
		return
	}

	Success(c, PageResponse{
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
		List:     expenses,
	})
}

// ListByBudget returns the expenses of one owned budget
// @Summary List expenses of a budget
// @Tags expenses
// @Produce json
// @Security BearerAuth
// @Param id path int true "budget id"
// @Success 200 {object} Response{data=[]models.Expense} "ok"
// @Failure 401 {object} Response "unauthorized"
// @Failure 404 {object} Response "budget not found"
// @Router /api/v1/budgets/{id}/expenses [get]
func (h *ExpenseHandler) ListByBudget(c *gin.Context) {
	owner := middleware.GetCurrentOwner(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "invalid id")
		return
	}

	if _, err := ownedBudget(owner, uint(id)); err != nil {
		NotFound(c, "budget not found")
		return
	}

	var expenses []models.Expense
	if err := database.DB.Where("budget_id = ?", id).
		Order("id DESC").Find(&expenses).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to query expenses"))
		return
	}

	Success(c, expenses)
}

// expenseForOwner loads an expense only if its budget belongs to the owner.
func expenseForOwner(owner string, expenseID uint) (*models.Expense, error) {
	var expense models.Expense
	err := database.DB.
		Joins("JOIN budgets ON budgets.id = expenses.budget_id").
		Where("expenses.id = ? AND budgets.created_by = ?", expenseID, owner).
		First(&expense).Error
	if err != nil {
		return nil, err
	}
	return &expense, nil
}

// Update replaces an expense's fields
// @Summary Update expense
// @Tags expenses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "expense id"
// @Param request body UpdateExpenseRequest true "expense payload"
// @Success 200 {object} Response{data=models.Expense} "updated"
// @Failure 400 {object} Response "invalid payload"
// @Failure 401 {object} Response "unauthorized"
// @Failure 404 {object} Response "not found"
// @Router /api/v1/expenses/{id} [put]
func (h *ExpenseHandler) Update(c *gin.Context) {
	owner := middleware.GetCurrentOwner(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "invalid id")
		return
	}

	expense, err := expenseForOwner(owner, uint(id))
	if err != nil {
		NotFound(c, "expense not found")
		return
	}

	var req UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "invalid request"))
		return
	}

	updates := map[string]interface{}{
		"name":   req.Name,
		"amount": req.Amount,
	}
	if err := database.DB.Model(expense).Updates(updates).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to update expense"))
		return
	}

	database.DB.First(expense, expense.ID)
	SuccessWithMessage(c, "updated", expense)
}

// Delete removes a single expense
// @Summary Delete expense
// @Tags expenses
// @Produce json
// @Security BearerAuth
// @Param id path int true "expense id"
// @Success 200 {object} Response "deleted"
// @Failure 401 {object} Response "unauthorized"
// @Failure 404 {object} Response "not found"
// @Router /api/v1/expenses/{id} [delete]
func (h *ExpenseHandler) Delete(c *gin.Context) {
	owner := middleware.GetCurrentOwner(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "invalid id")
		return
	}

	expense, err := expenseForOwner(owner, uint(id))
	if err != nil {
		NotFound(c, "expense not found")
		return
	}

	if err := database.DB.Delete(expense).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to delete expense"))
		return
	}

	SuccessWithMessage(c, "deleted", nil)
}
