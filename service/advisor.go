package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tkarusala001/budgetly/config"
)

// ApologyMessage is the fixed fallback returned whenever the AI backend
// fails. AI errors degrade to this string; they are never surfaced as errors
// to the end user.
const ApologyMessage = "Sorry, I couldn't fetch the financial advice at this moment. Please try again later."

// Advisor talks to an OpenAI-compatible chat/completions endpoint.
type Advisor struct {
	cfg    *config.AIConfig
	client *http.Client
}

// NewAdvisor creates an advisor from config.
func NewAdvisor(cfg *config.AIConfig) *Advisor {
	return &Advisor{
		cfg:    cfg,
		client: &http.Client{Timeout: 120 * time.Second},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Stream      bool          `json:"stream"`
	Temperature float64       `json:"temperature"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete sends one system+user prompt pair and returns the assistant text.
func (a *Advisor) Complete(ctx context.Context, system, user string) (string, error) {
	if !a.cfg.Enabled {
		return "", errors.New("ai assistant is disabled")
	}

	body, err := json.Marshal(chatCompletionRequest{
		Model: a.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Stream:      false,
		Temperature: 0.3,
	})
	if err != nil {
		return "", err
	}

	url := strings.TrimRight(a.cfg.BaseURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+a.cfg.APIKey)

	resp, err := a.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("ai backend returned %d: %s", resp.StatusCode, string(detail))
	}

	var cr chatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return "", err
	}
	if len(cr.Choices) == 0 {
		return "", errors.New("ai backend returned no choices")
	}
	return cr.Choices[0].Message.Content, nil
}

// AdviceMetrics are the owner's totals the advice prompt is built from.
type AdviceMetrics struct {
	TotalBudget float64
	TotalIncome float64
	TotalSpend  float64
}

// AdvicePrompt renders the financial-advice prompt from the metrics.
func AdvicePrompt(m AdviceMetrics) string {
	savingsRate := 0.0
	if m.TotalIncome > 0 {
		savingsRate = (m.TotalIncome - m.TotalSpend) / m.TotalIncome * 100
	}
	budgetUtilization := 0.0
	if m.TotalBudget > 0 {
		budgetUtilization = m.TotalSpend / m.TotalBudget * 100
	}
	discretionary := m.TotalIncome - m.TotalSpend

	return fmt.Sprintf(`As a financial advisor, analyze these financial metrics and provide specific, actionable advice.
Do not use symbols like '*' or '!' or excessive '-'. Keep it sentence-style and natural.

Current Financial Situation:
- Monthly Budget Allocation: $%.2f
- Monthly Income: $%.2f
- Monthly Expenses: $%.2f
- Current Savings Rate: %.2f%%
- Budget Utilization: %.2f%%
- Discretionary Income: $%.2f

Please provide 2-3 concise, practical sentences of financial advice that identify the most critical
area for improvement, suggest specific actionable steps with numbers or percentages where relevant,
and maintain an encouraging but professional tone. Avoid generic advice like "spend less" or
"save more"; give quantifiable recommendations based on the situation above.`,
		m.TotalBudget, m.TotalIncome, m.TotalSpend, savingsRate, budgetUtilization, discretionary)
}

// Advise returns financial advice for the metrics, or the apology string when
// the backend fails for any reason.
func (a *Advisor) Advise(ctx context.Context, m AdviceMetrics) string {
	text, err := a.Complete(ctx, "You are a professional, friendly and concise personal finance assistant.", AdvicePrompt(m))
	if err != nil {
		return ApologyMessage
	}
	return text
}
