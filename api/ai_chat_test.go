package api

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/tkarusala001/budgetly/config"
	"github.com/tkarusala001/budgetly/service"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAIChatHandler_Chat_AIDisabled(t *testing.T) {
	_, cleanup := setupMockDB(t)
	defer cleanup()

	cfg := &config.Config{AI: config.AIConfig{Enabled: false}}

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(setOwnerMiddleware(1, testOwner))
	router.POST("/ai/chat", NewAIChatHandler(cfg).Chat)

	body := `{"message":"How do budgets work?"}`
	req := httptest.NewRequest("POST", "/ai/chat", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/event-stream")
	// disabled backend still closes the stream cleanly with apology + done frames
	assert.Contains(t, w.Body.String(), service.ApologyMessage)
	assert.Contains(t, w.Body.String(), `"type":"done"`)
}

func TestAIChatHandler_Chat_EmptyMessage(t *testing.T) {
	_, cleanup := setupMockDB(t)
	defer cleanup()

	cfg := &config.Config{AI: config.AIConfig{Enabled: true}}

	router := gin.New()
	router.Use(setOwnerMiddleware(1, testOwner))
	router.POST("/ai/chat", NewAIChatHandler(cfg).Chat)

	body := `{"message":""}`
	req := httptest.NewRequest("POST", "/ai/chat", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
}

func TestAIChatHandler_History(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	now := time.Now()
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `ai_chat_messages`").
		WithArgs(testOwner).
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(1))
	mock.ExpectQuery("SELECT .* FROM `ai_chat_messages`").
		WithArgs(testOwner).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_by", "user_text", "ai_text", "created_at", "deleted_at"}).
			AddRow(1, testOwner, "How do budgets work?", "Budgets cap your spending by category.", now, nil))

	router := gin.New()
	router.Use(setOwnerMiddleware(1, testOwner))
	router.GET("/ai/chat/history", NewAIChatHandler(&config.Config{}).History)

	req := httptest.NewRequest("GET", "/ai/chat/history", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, float64(1), data["total"])
	list := data["list"].([]interface{})
	require.Len(t, list, 1)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAIChatHandler_DeleteHistory_NotOwned(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `ai_chat_messages`").
		WithArgs(9, testOwner).
		WillReturnRows(sqlmock.NewRows([]string{}))

	router := gin.New()
	router.Use(setOwnerMiddleware(1, testOwner))
	router.DELETE("/ai/chat/history/:id", NewAIChatHandler(&config.Config{}).DeleteHistory)

	req := httptest.NewRequest("DELETE", "/ai/chat/history/9", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 404, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}
