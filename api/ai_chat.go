package api

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/tkarusala001/budgetly/config"
	"github.com/tkarusala001/budgetly/database"
	"github.com/tkarusala001/budgetly/middleware"
	"github.com/tkarusala001/budgetly/models"
	"github.com/tkarusala001/budgetly/service"

	"github.com/gin-gonic/gin"
)

// budgetlyContext is the product knowledge the chat assistant answers from.
const budgetlyContext = `You are the help assistant for Budgetly, a personal finance web application.

Budgetly lets users:
- Create budgets with a name, an icon and a target amount
- Log expenses against a budget and see total spend, item count, remaining amount and a progress bar
- Track income streams independently of budgets
- View weekly, monthly and yearly income-vs-expense charts
- Export all financial data as CSV or Excel
- Ask for AI financial advice based on their totals

Limitations:
- No mobile app (the web app is mobile-responsive)
- No automatic spending notifications
- Manual tracking and management

Answer helpfully, specifically and concisely based on this context. If the question is
not related to Budgetly, politely explain that.`

type sseChatFrame struct {
	Type    string `json:"type"`              // delta | done | error
	Content string `json:"content,omitempty"` // delta content or error text
}

func writeSSEJSON(c *gin.Context, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	_, _ = c.Writer.WriteString("data: " + string(b) + "\n\n")
	c.Writer.Flush()
}

// AIChatHandler streams assistant replies and manages chat history.
type AIChatHandler struct {
	cfg *config.Config
}

// NewAIChatHandler creates a chat handler.
func NewAIChatHandler(cfg *config.Config) *AIChatHandler {
	return &AIChatHandler{cfg: cfg}
}

// AIChatRequest is one user message.
type AIChatRequest struct {
	Message string `json:"message" binding:"required,min=1"`
}

// Chat streams the assistant reply over SSE and stores the turn
// @Summary AI chat (streaming)
// @Description SSE stream of JSON frames (delta/done/error). The finished turn is stored in the owner's chat history. AI backend failures degrade to the fixed apology text in an error frame, never a 5xx.
// @Tags ai
// @Accept json
// @Produce text/event-stream
// @Security BearerAuth
// @Param request body AIChatRequest true "chat message"
// @Success 200 {string} string "SSE stream: data: {\"type\":\"delta\",\"content\":\"...\"}"
// @Failure 400 {object} Response "invalid payload"
// @Failure 401 {object} Response "unauthorized"
// @Router /api/v1/ai/chat [post]
func (h *AIChatHandler) Chat(c *gin.Context) {
	owner := middleware.GetCurrentOwner(c)

	var req AIChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "invalid request"))
		return
	}

	// SSE response headers
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	if !h.cfg.AI.Enabled {
		writeSSEJSON(c, sseChatFrame{Type: "error", Content: service.ApologyMessage})
		writeSSEJSON(c, sseChatFrame{Type: "done"})
		return
	}

	requestBody := map[string]interface{}{
		"model": h.cfg.AI.Model,
		"messages": []map[string]string{
			{"role": "system", "content": budgetlyContext},
			{"role": "user", "content": req.Message},
		},
		"stream":      true,
		"temperature": 0.3,
	}

	jsonData, err := json.Marshal(requestBody)
	if err != nil {
		writeSSEJSON(c, sseChatFrame{Type: "error", Content: service.ApologyMessage})
		writeSSEJSON(c, sseChatFrame{Type: "done"})
		return
	}

	httpReq, err := http.NewRequest("POST", strings.TrimRight(h.cfg.AI.BaseURL, "/")+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		writeSSEJSON(c, sseChatFrame{Type: "error", Content: service.ApologyMessage})
		writeSSEJSON(c, sseChatFrame{Type: "done"})
		return
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+h.cfg.AI.APIKey)

	client := &http.Client{Timeout: 300 * time.Second}
	resp, err := client.Do(httpReq)
	if err != nil {
		writeSSEJSON(c, sseChatFrame{Type: "error", Content: service.ApologyMessage})
		writeSSEJSON(c, sseChatFrame{Type: "done"})
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		writeSSEJSON(c, sseChatFrame{Type: "error", Content: service.ApologyMessage})
		writeSSEJSON(c, sseChatFrame{Type: "done"})
		return
	}

	ctx := c.Request.Context()
	reader := bufio.NewReader(resp.Body)
	var aiText strings.Builder

	saveTurn := func() {
		msg := models.AIChatMessage{
			CreatedBy: owner,
			UserText:  req.Message,
			AIText:    aiText.String(),
		}
		_ = database.DB.Create(&msg).Error
	}

	finishedNormally := false
	for {
		select {
		case <-ctx.Done():
			// Client gone: do not store a half-finished turn
			return
		default:
		}

		line, err := reader.ReadBytes('\n')
		if err != nil {
			if err == io.EOF {
				// Some compatible backends never send [DONE]; EOF ends the stream
				finishedNormally = true
				break
			}
			return
		}

		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		if !bytes.HasPrefix(line, []byte("data: ")) {
			continue
		}

		data := bytes.TrimPrefix(line, []byte("data: "))
		if string(data) == "[DONE]" {
			saveTurn()
			writeSSEJSON(c, sseChatFrame{Type: "done"})
			break
		}

		var streamData map[string]interface{}
		if err := json.Unmarshal(data, &streamData); err != nil {
			continue
		}

		// choices[0].delta.content
		content := ""
		if choices, ok := streamData["choices"].([]interface{}); ok && len(choices) > 0 {
			if choice, ok := choices[0].(map[string]interface{}); ok {
				if delta, ok := choice["delta"].(map[string]interface{}); ok {
					if v, ok := delta["content"].(string); ok {
						content = v
					}
				}
			}
		}

		if content == "" {
			continue
		}

		aiText.WriteString(content)
		writeSSEJSON(c, sseChatFrame{Type: "delta", Content: content})
	}

	// EOF without [DONE]: store the turn and close the stream
	if finishedNormally {
		saveTurn()
		writeSSEJSON(c, sseChatFrame{Type: "done"})
	}
}

// History lists the owner's stored chat turns
// @Summary Chat history
// @Tags ai
// @Produce json
// @Security BearerAuth
// @Param page query int false "page" default(1)
// @Param page_size query int false "page size" default(20)
// @Success 200 {object} Response{data=PageResponse{list=[]models.AIChatMessage}} "ok"
// @Failure 401 {object} Response "unauthorized"
// @Router /api/v1/ai/chat/history [get]
func (h *AIChatHandler) History(c *gin.Context) {
	owner := middleware.GetCurrentOwner(c)

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}

	query := database.DB.Model(&models.AIChatMessage{}).Where("created_by = ?", owner)

	var total int64
	query.Count(&total)

	var list []models.AIChatMessage
	offset := (page - 1) * pageSize
	if err := query.Order("id DESC").Offset(offset).Limit(pageSize).Find(&list).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to query chat history"))
		return
	}

	Success(c, PageResponse{Total: total, Page: page, PageSize: pageSize, List: list})
}

// DeleteHistory removes one of the owner's chat turns
// @Summary Delete chat turn
// @Tags ai
// @Produce json
// @Security BearerAuth
// @Param id path int true "chat message id"
// @Success 200 {object} Response "deleted"
// @Failure 401 {object} Response "unauthorized"
// @Failure 404 {object} Response "not found"
// @Router /api/v1/ai/chat/history/{id} [delete]
func (h *AIChatHandler) DeleteHistory(c *gin.Context) {
	owner := middleware.GetCurrentOwner(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "invalid id")
		return
	}

	var msg models.AIChatMessage
	if err := database.DB.Where("id = ? AND created_by = ?", id, owner).First(&msg).Error; err != nil {
		NotFound(c, "chat message not found")
		return
	}
	if err := database.DB.Delete(&msg).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to delete chat message"))
		return
	}
	SuccessWithMessage(c, "deleted", nil)
}
