package api

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"github.com/tkarusala001/budgetly/database"
	"github.com/tkarusala001/budgetly/middleware"
	"github.com/tkarusala001/budgetly/models"
	"github.com/tkarusala001/budgetly/report"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// ExportHandler serves the full-data exports (CSV and Excel).
type ExportHandler struct{}

// NewExportHandler creates an export handler.
func NewExportHandler() *ExportHandler {
	return &ExportHandler{}
}

// exportData is everything an export needs, fetched once per request.
type exportData struct {
	Budgets  []report.BudgetSummary
	Expenses []models.Expense
	Incomes  []models.Income
}

func fetchExportData(owner string) (*exportData, error) {
	budgets, err := report.NewAggregator(database.DB).SummarizeBudgets(owner)
	if err != nil {
		return nil, err
	}

	var expenses []models.Expense
	err = database.DB.Model(&models.Expense{}).
		Select("expenses.*").
		Joins("JOIN budgets ON budgets.id = expenses.budget_id").
		Where("budgets.created_by = ?", owner).
		Order("expenses.id DESC").
		Find(&expenses).Error
	if err != nil {
		return nil, err
	}

	var incomes []models.Income
	if err := database.DB.Where("created_by = ?", owner).Order("id DESC").Find(&incomes).Error; err != nil {
		return nil, err
	}

	return &exportData{Budgets: budgets, Expenses: expenses, Incomes: incomes}, nil
}

// buildCSV renders the sectioned export blob. encoding/csv double-quotes any
// field containing a comma or a quote, which is exactly the escaping the
// export format requires.
func buildCSV(owner string, data *exportData, now time.Time) ([]byte, error) {
	buf := new(bytes.Buffer)
	w := csv.NewWriter(buf)

	writeAll := func(records [][]string) error {
		for _, rec := range records {
			if err := w.Write(rec); err != nil {
				return err
			}
		}
		w.Flush()
		return w.Error()
	}

	// Summary section
	if err := writeAll([][]string{
		{"FINANCIAL SUMMARY"},
		{"Export Date", now.Format("2006-01-02")},
		{"User", owner},
		{"Total Budgets", fmt.Sprintf("%d", len(data.Budgets))},
		{"Total Expenses", fmt.Sprintf("%d", len(data.Expenses))},
		{"Total Income Streams", fmt.Sprintf("%d", len(data.Incomes))},
	}); err != nil {
		return nil, err
	}
	buf.WriteString("\n")

	// Budgets
	rows := [][]string{
		{"BUDGETS"},
		{"Budget Name", "Icon", "Amount", "Total Spend", "Total Items", "Remaining"},
	}
	for _, b := range data.Budgets {
		rows = append(rows, []string{
			b.Name,
			b.Icon,
			fmt.Sprintf("%.2f", b.Amount),
			fmt.Sprintf("%.2f", b.TotalSpend),
			fmt.Sprintf("%d", b.TotalItem),
			fmt.Sprintf("%.2f", b.Remaining),
		})
	}
	if err := writeAll(rows); err != nil {
		return nil, err
	}
	buf.WriteString("\n")

	// Expenses
	rows = [][]string{
		{"EXPENSES"},
		{"Expense Name", "Amount", "Created Date"},
	}
	for _, e := range data.Expenses {
		rows = append(rows, []string{
			e.Name,
			fmt.Sprintf("%.2f", e.Amount),
			e.CreatedAt.Format("2006-01-02"),
		})
	}
	if err := writeAll(rows); err != nil {
		return nil, err
	}
	buf.WriteString("\n")

	// Income streams
	rows = [][]string{
		{"INCOME STREAMS"},
		{"Income Name", "Amount", "Icon"},
	}
	for _, in := range data.Incomes {
		rows = append(rows, []string{
			in.Name,
			fmt.Sprintf("%.2f", in.Amount),
			in.Icon,
		})
	}
	if err := writeAll(rows); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// ExportCSV exports all financial data as a sectioned CSV blob
// @Summary Export CSV
// @Description One text blob with FINANCIAL SUMMARY, BUDGETS, EXPENSES and INCOME STREAMS sections, blank line between sections, RFC-4180 quoting.
// @Tags export
// @Produce text/csv
// @Security BearerAuth
// @Success 200 {file} file "CSV file"
// @Failure 401 {object} Response "unauthorized"
// @Router /api/v1/export/csv [get]
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	owner := middleware.GetCurrentOwner(c)

	data, err := fetchExportData(owner)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to query export data"))
		return
	}

	blob, err := buildCSV(owner, data, time.Now())
	if err != nil {
		InternalError(c, "failed to build CSV")
		return
	}

	filename := fmt.Sprintf("financial_data_%s.csv", time.Now().Format("2006-01-02"))
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Header("Content-Length", fmt.Sprintf("%d", len(blob)))

	c.Data(http.StatusOK, "text/csv; charset=utf-8", blob)
}

// ExportExcel exports the same data as an xlsx workbook
// @Summary Export Excel
// @Description One sheet per section: Budgets, Expenses, Income Streams.
// @Tags export
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Success 200 {file} file "xlsx file"
// @Failure 401 {object} Response "unauthorized"
// @Router /api/v1/export/excel [get]
func (h *ExportHandler) ExportExcel(c *gin.Context) {
	owner := middleware.GetCurrentOwner(c)

	data, err := fetchExportData(owner)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to query export data"))
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	// Budgets sheet replaces the default one
	f.SetSheetName("Sheet1", "Budgets")
	headers := []interface{}{"Budget Name", "Icon", "Amount", "Total Spend", "Total Items", "Remaining"}
	f.SetSheetRow("Budgets", "A1", &headers)
	for i, b := range data.Budgets {
		row := []interface{}{b.Name, b.Icon, b.Amount, b.TotalSpend, b.TotalItem, b.Remaining}
		f.SetSheetRow("Budgets", fmt.Sprintf("A%d", i+2), &row)
	}

	f.NewSheet("Expenses")
	headers = []interface{}{"Expense Name", "Amount", "Created Date"}
	f.SetSheetRow("Expenses", "A1", &headers)
	for i, e := range data.Expenses {
		row := []interface{}{e.Name, e.Amount, e.CreatedAt.Format("2006-01-02")}
		f.SetSheetRow("Expenses", fmt.Sprintf("A%d", i+2), &row)
	}

	f.NewSheet("Income Streams")
	headers = []interface{}{"Income Name", "Amount", "Icon"}
	f.SetSheetRow("Income Streams", "A1", &headers)
	for i, in := range data.Incomes {
		row := []interface{}{in.Name, in.Amount, in.Icon}
		f.SetSheetRow("Income Streams", fmt.Sprintf("A%d", i+2), &row)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		InternalError(c, "failed to build Excel file")
		return
	}

	filename := fmt.Sprintf("financial_data_%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
