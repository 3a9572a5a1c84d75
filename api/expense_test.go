package api

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ownedBudgetRow(id uint, name string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{"id", "name", "amount", "icon", "created_by", "created_at", "updated_at"}).
		AddRow(id, name, 500.0, "🛒", testOwner, now, now)
}

func TestExpenseHandler_Create(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	// budget ownership check
	mock.ExpectQuery("SELECT .* FROM `budgets`").
		WithArgs(1, testOwner).
		WillReturnRows(ownedBudgetRow(1, "Groceries"))

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `expenses`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(setOwnerMiddleware(1, testOwner))
	router.POST("/expenses", NewExpenseHandler().Create)

	body := `{"name":"Lunch","amount":12.50,"budget_id":1}`
	req := httptest.NewRequest("POST", "/expenses", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "created", resp["message"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExpenseHandler_Create_BudgetNotOwned(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `budgets`").
		WithArgs(42, testOwner).
		WillReturnRows(sqlmock.NewRows([]string{}))

	router := gin.New()
	router.Use(setOwnerMiddleware(1, testOwner))
	router.POST("/expenses", NewExpenseHandler().Create)

	body := `{"name":"Sneaky","amount":10,"budget_id":42}`
	req := httptest.NewRequest("POST", "/expenses", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExpenseHandler_Create_ZeroAmount(t *testing.T) {
	_, cleanup := setupMockDB(t)
	defer cleanup()

	router := gin.New()
	router.Use(setOwnerMiddleware(1, testOwner))
	router.POST("/expenses", NewExpenseHandler().Create)

	body := `{"name":"Nothing","amount":0,"budget_id":1}`
	req := httptest.NewRequest("POST", "/expenses", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
}

func TestExpenseHandler_List(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	now := time.Now()
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `expenses`").
		WithArgs(testOwner).
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(2))

	mock.ExpectQuery("SELECT expenses\\..* FROM `expenses`").
		WithArgs(testOwner).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "amount", "budget_id", "created_at", "updated_at"}).
			AddRow(2, "Dinner", 30.0, 1, now, now).
			AddRow(1, "Lunch", 12.5, 1, now, now))

	router := gin.New()
	router.Use(setOwnerMiddleware(1, testOwner))
	router.GET("/expenses", NewExpenseHandler().List)

	req := httptest.NewRequest("GET", "/expenses?page=1&page_size=10", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, float64(2), data["total"])
	list := data["list"].([]interface{})
	require.Len(t, list, 2)
	first := list[0].(map[string]interface{})
	assert.Equal(t, "Dinner", first["name"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExpenseHandler_ListByBudget(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	now := time.Now()
	mock.ExpectQuery("SELECT .* FROM `budgets`").
		WithArgs(1, testOwner).
		WillReturnRows(ownedBudgetRow(1, "Groceries"))

	mock.ExpectQuery("SELECT .* FROM `expenses`").
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "amount", "budget_id", "created_at", "updated_at"}).
			AddRow(1, "Lunch", 12.5, 1, now, now))

	router := gin.New()
	router.Use(setOwnerMiddleware(1, testOwner))
	router.GET("/budgets/:id/expenses", NewExpenseHandler().ListByBudget)

	req := httptest.NewRequest("GET", "/budgets/1/expenses", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	list := resp["data"].([]interface{})
	require.Len(t, list, 1)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExpenseHandler_Delete(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	now := time.Now()
	// ownership flows through the budget join
	mock.ExpectQuery("SELECT .* FROM `expenses` JOIN budgets").
		WithArgs(5, testOwner).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "amount", "budget_id", "created_at", "updated_at"}).
			AddRow(5, "Lunch", 12.5, 1, now, now))

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `expenses`").
		WithArgs(5).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	router := gin.New()
	router.Use(setOwnerMiddleware(1, testOwner))
	router.DELETE("/expenses/:id", NewExpenseHandler().Delete)

	req := httptest.NewRequest("DELETE", "/expenses/5", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExpenseHandler_Delete_NotOwned(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `expenses` JOIN budgets").
		WithArgs(5, testOwner).
		WillReturnRows(sqlmock.NewRows([]string{}))

	router := gin.New()
	router.Use(setOwnerMiddleware(1, testOwner))
	router.DELETE("/expenses/:id", NewExpenseHandler().Delete)

	req := httptest.NewRequest("DELETE", "/expenses/5", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 404, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}
