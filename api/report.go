package api

import (
	"strconv"

	"github.com/tkarusala001/budgetly/database"
	"github.com/tkarusala001/budgetly/middleware"
	"github.com/tkarusala001/budgetly/report"

	"github.com/gin-gonic/gin"
)

// ReportHandler serves the aggregated series behind the dashboard charts.
type ReportHandler struct{}

// NewReportHandler creates a report handler.
func NewReportHandler() *ReportHandler {
	return &ReportHandler{}
}

// maxPeriodCount caps the requested window so a bad client cannot ask for
// thousands of per-period queries.
const maxPeriodCount = 60

// GetPeriods returns the income-vs-expense trend series
// @Summary Period report
// @Description Income and expense totals bucketed by calendar period, oldest first. kind is week, month or year; count defaults to the chart window for the kind (4/12/5) and is capped at 60.
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param kind query string true "period kind" Enums(week,month,year)
// @Param count query int false "number of periods"
// @Success 200 {object} Response{data=[]report.PeriodSummary} "ok"
// @Failure 400 {object} Response "invalid kind or count"
// @Failure 401 {object} Response "unauthorized"
// @Router /api/v1/reports/periods [get]
func (h *ReportHandler) GetPeriods(c *gin.Context) {
	owner := middleware.GetCurrentOwner(c)

	kind, err := report.ParsePeriodKind(c.Query("kind"))
	if err != nil {
		BadRequest(c, err.Error())
		return
	}

	count := report.DefaultPeriodCount(kind)
	if s := c.Query("count"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 || n > maxPeriodCount {
			BadRequest(c, "count must be between 1 and 60")
			return
		}
		count = n
	}

	series, err := report.NewAggregator(database.DB).SummarizeByPeriod(owner, kind, count)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to build period report"))
		return
	}

	Success(c, series)
}

// GetBudgets returns per-budget spend summaries
// @Summary Budget report
// @Description Every owned budget with total spend, item count, remaining amount (unclamped, may go negative) and progress percent (clamped to 100).
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=[]report.BudgetSummary} "ok"
// @Failure 401 {object} Response "unauthorized"
// @Router /api/v1/reports/budgets [get]
func (h *ReportHandler) GetBudgets(c *gin.Context) {
	owner := middleware.GetCurrentOwner(c)

	summaries, err := report.NewAggregator(database.DB).SummarizeBudgets(owner)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to build budget report"))
		return
	}

	Success(c, summaries)
}
