package api

import (
	"github.com/tkarusala001/budgetly/config"
	"github.com/tkarusala001/budgetly/database"
	"github.com/tkarusala001/budgetly/middleware"
	"github.com/tkarusala001/budgetly/models"
	"github.com/tkarusala001/budgetly/service"

	"github.com/gin-gonic/gin"
)

// AdviceHandler serves the AI financial-advice summary.
type AdviceHandler struct {
	advisor *service.Advisor
}

// NewAdviceHandler creates an advice handler.
func NewAdviceHandler(cfg *config.Config) *AdviceHandler {
	return &AdviceHandler{advisor: service.NewAdvisor(&cfg.AI)}
}

// AdviceResponse carries the advice text and the metrics it was based on.
type AdviceResponse struct {
	Advice      string  `json:"advice"`
	TotalBudget float64 `json:"total_budget"`
	TotalIncome float64 `json:"total_income"`
	TotalSpend  float64 `json:"total_spend"`
}

// GetAdvice returns a short AI-written advice paragraph
// @Summary Financial advice
// @Description Computes the owner's budget/income/spend totals and asks the AI assistant for advice. AI failures degrade to a fixed apology string; this endpoint never fails because of the AI backend.
// @Tags ai
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=AdviceResponse} "ok"
// @Failure 401 {object} Response "unauthorized"
// @Failure 500 {object} Response "store error"
// @Router /api/v1/ai/advice [get]
func (h *AdviceHandler) GetAdvice(c *gin.Context) {
	owner := middleware.GetCurrentOwner(c)

	var totalBudget float64
	err := database.DB.Model(&models.Budget{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("created_by = ?", owner).
		Scan(&totalBudget).Error
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to query budgets"))
		return
	}

	var totalIncome float64
	err = database.DB.Model(&models.Income{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("created_by = ?", owner).
		Scan(&totalIncome).Error
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to query incomes"))
		return
	}

	var totalSpend float64
	err = database.DB.Model(&models.Expense{}).
		Select("COALESCE(SUM(expenses.amount), 0)").
		Joins("LEFT JOIN budgets ON budgets.id = expenses.budget_id").
		Where("budgets.created_by = ?", owner).
		Scan(&totalSpend).Error
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to query expenses"))
		return
	}

	metrics := service.AdviceMetrics{
		TotalBudget: totalBudget,
		TotalIncome: totalIncome,
		TotalSpend:  totalSpend,
	}

	// Advise never returns an error: AI failures come back as the apology text.
	advice := h.advisor.Advise(c.Request.Context(), metrics)

	Success(c, AdviceResponse{
		Advice:      advice,
		TotalBudget: totalBudget,
		TotalIncome: totalIncome,
		TotalSpend:  totalSpend,
	})
}
