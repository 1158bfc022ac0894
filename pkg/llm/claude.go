package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"
)

type Claude struct {
	apiKey string
	client *http.Client
	model  string
}

func NewClaude(apiKey string) *Claude {
	return NewClaudeWithModel(apiKey, "claude-sonnet-4-20250514")
}

func NewClaudeWithModel(apiKey, model string) *Claude {
	return &Claude{
		apiKey: apiKey,
		client: &http.Client{Timeout: DefaultTimeout},
		model:  model,
	}
}

// SetTimeout overrides the per-request timeout.
func (c *Claude) SetTimeout(d time.Duration) {
	c.client.Timeout = d
}

func (c *Claude) Chat(ctx context.Context, prompt string) (string, error) {
	body := map[string]interface{}{
		"model": c.model,
		"messages": []map[string]string{{
			"role":    "user",
			"content": prompt,
		}},
		"max_tokens":  4000,
		"temperature": 0,
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, "https://api.anthropic.com/v1/messages", bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", "2023-06-01")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", &ServiceError{Provider: "Claude", Err: err}
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &ServiceError{Provider: "Claude", Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		return "", &ServiceError{Provider: "Claude", Status: resp.StatusCode, Message: string(respBytes)}
	}

	// Minimal struct to pull out the content text.
	var claudeResp struct {
		Content []struct {
			Text string `json:"text"`
		} `json:"content"`
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(respBytes, &claudeResp); err != nil {
		return "", &ServiceError{Provider: "Claude", Err: err}
	}
	if claudeResp.Error.Message != "" {
		return "", &ServiceError{Provider: "Claude", Message: claudeResp.Error.Message}
	}
	if len(claudeResp.Content) == 0 {
		return "", &ServiceError{Provider: "Claude", Message: "empty response"}
	}
	return claudeResp.Content[0].Text, nil
}
