package api

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func expectExportQueries(mock sqlmock.Sqlmock) {
	now := time.Now()

	// budget summaries
	mock.ExpectQuery("SELECT budgets\\..* FROM `budgets`").
		WithArgs(testOwner).
		WillReturnRows(budgetSummaryRows().
			AddRow(1, "Rent, Utilities", 1500.0, "🏠", testOwner, now, now, 1575.5, 2))

	// expenses joined through owned budgets
	mock.ExpectQuery("SELECT expenses\\..* FROM `expenses`").
		WithArgs(testOwner).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "amount", "budget_id", "created_at", "updated_at"}).
			AddRow(1, "September rent", 1500.0, 1, now, now))

	// income streams
	mock.ExpectQuery("SELECT .* FROM `incomes`").
		WithArgs(testOwner).
		WillReturnRows(incomeRows().
			AddRow(1, "Salary", 5000.0, "💰", now, testOwner, now, now))
}

func TestExportHandler_ExportCSV(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	expectExportQueries(mock)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(setOwnerMiddleware(1, testOwner))
	router.GET("/export/csv", NewExportHandler().ExportCSV)

	req := httptest.NewRequest("GET", "/export/csv", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "financial_data_")

	body := w.Body.String()
	assert.Contains(t, body, "FINANCIAL SUMMARY")
	assert.Contains(t, body, "BUDGETS")
	assert.Contains(t, body, "EXPENSES")
	assert.Contains(t, body, "INCOME STREAMS")
	assert.Contains(t, body, "User,"+testOwner)
	assert.Contains(t, body, "Total Budgets,1")

	// comma in the name forces RFC-4180 quoting
	assert.Contains(t, body, `"Rent, Utilities"`)
	// overspent budget: remaining is negative, not clamped
	assert.Contains(t, body, "-75.50")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExportHandler_ExportCSV_Empty(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT budgets\\..* FROM `budgets`").
		WithArgs(testOwner).
		WillReturnRows(budgetSummaryRows())
	mock.ExpectQuery("SELECT expenses\\..* FROM `expenses`").
		WithArgs(testOwner).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "amount", "budget_id", "created_at", "updated_at"}))
	mock.ExpectQuery("SELECT .* FROM `incomes`").
		WithArgs(testOwner).
		WillReturnRows(incomeRows())

	router := gin.New()
	router.Use(setOwnerMiddleware(1, testOwner))
	router.GET("/export/csv", NewExportHandler().ExportCSV)

	req := httptest.NewRequest("GET", "/export/csv", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	// sections and headers survive even with no data rows
	assert.Equal(t, 200, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Total Budgets,0")
	assert.Contains(t, body, "Budget Name,Icon,Amount,Total Spend,Total Items,Remaining")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExportHandler_ExportExcel(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	expectExportQueries(mock)

	router := gin.New()
	router.Use(setOwnerMiddleware(1, testOwner))
	router.GET("/export/excel", NewExportHandler().ExportExcel)

	req := httptest.NewRequest("GET", "/export/excel", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".xlsx")
	// xlsx files are zip archives
	assert.Equal(t, "PK", w.Body.String()[:2])
	require.NoError(t, mock.ExpectationsWereMet())
}
