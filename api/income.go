package api

import (
	"strconv"
	"time"

	"github.com/tkarusala001/budgetly/database"
	"github.com/tkarusala001/budgetly/middleware"
	"github.com/tkarusala001/budgetly/models"

	"github.com/gin-gonic/gin"
)

// IncomeHandler handles income stream CRUD.
type IncomeHandler struct{}

func NewIncomeHandler() *IncomeHandler {
	return &IncomeHandler{}
}

type CreateIncomeRequest struct {
	Name   string  `json:"name" binding:"required,max=100" example:"Salary"`
	Amount float64 `json:"amount" binding:"required,gt=0" example:"5000"`
	Icon   string  `json:"icon" binding:"max=16" example:"💰"`
	Date   string  `json:"date" binding:"required" example:"2026-01-15"`
}

type UpdateIncomeRequest struct {
	Name   string  `json:"name" binding:"required,max=100"`
	Amount float64 `json:"amount" binding:"required,gt=0"`
	Icon   string  `json:"icon" binding:"max=16"`
	Date   string  `json:"date" binding:"required"`
}

// parseIncomeDate accepts a date or a full timestamp.
func parseIncomeDate(s string) (time.Time, error) {
	if t, err := time.ParseInLocation("2006-01-02 15:04:05", s, time.Local); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02", s, time.Local)
}

// Create records an income entry
// @Summary Create income
// @Tags incomes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateIncomeRequest true "income payload"
// @Success 200 {object} Response{data=models.Income} "created"
// @Failure 400 {object} Response "invalid payload"
// @Failure 401 {object} Response "unauthorized"
// @Router /api/v1/incomes [post]
func (h *IncomeHandler) Create(c *gin.Context) {
	owner := middleware.GetCurrentOwner(c)

	var req CreateIncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "invalid request"))
		return
	}

	date, err := parseIncomeDate(req.Date)
	if err != nil {
		BadRequest(c, "invalid date, want 2006-01-02 or 2006-01-02 15:04:05")
		return
	}

	income := models.Income{
		Name:      req.Name,
		Amount:    req.Amount,
		Icon:      req.Icon,
		Date:      date,
		CreatedBy: owner,
	}
	if err := database.DB.Create(&income).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to create income"))
		return
	}
	SuccessWithMessage(c, "created", income)
}

// List returns the owner's income streams
// @Summary List incomes
// @Tags incomes
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=[]models.Income} "ok"
// @Failure 401 {object} Response "unauthorized"
// @Router /api/v1/incomes [get]
func (h *IncomeHandler) List(c *gin.Context) {
	owner := middleware.GetCurrentOwner(c)

	var list []models.Income
	if err := database.DB.Where("created_by = ?", owner).
		Order("id DESC").Find(&list).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to query incomes"))
		return
	}
	Success(c, list)
}

// Get returns a single income entry
// @Summary Get income
// @Tags incomes
// @Produce json
// @Security BearerAuth
// @Param id path int true "income id"
// @Success 200 {object} Response{data=models.Income} "ok"
// @Failure 401 {object} Response "unauthorized"
// @Failure 404 {object} Response "not found"
// @Router /api/v1/incomes/{id} [get]
func (h *IncomeHandler) Get(c *gin.Context) {
	owner := middleware.GetCurrentOwner(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "invalid id")
		return
	}

	var income models.Income
	if err := database.DB.Where("id = ? AND created_by = ?", id, owner).First(&income).Error; err != nil {
		NotFound(c, "income not found")
		return
	}
	Success(c, income)
}

// Update replaces an income entry's fields
// @Summary Update income
// @Tags incomes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "income id"
// @Param request body UpdateIncomeRequest true "income payload"
// @Success 200 {object} Response{data=models.Income} "updated"
// @Failure 400 {object} Response "invalid payload"
// @Failure 401 {object} Response "unauthorized"
// @Failure 404 {object} Response "not found"
// @Router /api/v1/incomes/{id} [put]
func (h *IncomeHandler) Update(c *gin.Context) {
	owner := middleware.GetCurrentOwner(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "invalid id")
		return
	}

	var income models.Income
	if err := database.DB.Where("id = ? AND created_by = ?", id, owner).First(&income).Error; err != nil {
		NotFound(c, "income not found")
		return
	}

	var req UpdateIncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "invalid request"))
		return
	}

	date, err := parseIncomeDate(req.Date)
	if err != nil {
		BadRequest(c, "invalid date, want 2006-01-02 or 2006-01-02 15:04:05")
		return
	}

	updates := map[string]interface{}{
		"name":   req.Name,
		"amount": req.Amount,
		"icon":   req.Icon,
		"date":   date,
	}
	if err := database.DB.Model(&income).Updates(updates).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to update income"))
		return
	}

	database.DB.First(&income, income.ID)
	SuccessWithMessage(c, "updated", income)
}

// Delete removes an income entry
// @Summary Delete income
// @Tags incomes
// @Produce json
// @Security BearerAuth
// @Param id path int true "income id"
// @Success 200 {object} Response "deleted"
// @Failure 401 {object} Response "unauthorized"
// @Failure 404 {object} Response "not found"
// @Router /api/v1/incomes/{id} [delete]
func (h *IncomeHandler) Delete(c *gin.Context) {
	owner := middleware.GetCurrentOwner(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "invalid id")
		return
	}

	var income models.Income
	if err := database.DB.Where("id = ? AND created_by = ?", id, owner).First(&income).Error; err != nil {
		NotFound(c, "income not found")
		return
	}
	if err := database.DB.Delete(&income).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to delete income"))
		return
	}
	SuccessWithMessage(c, "deleted", nil)
}
