package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

type OpenAI struct {
	apiKey string
	client *http.Client
	model  string
}

func NewOpenAI(apiKey string) *OpenAI {
	return NewOpenAIWithModel(apiKey, "gpt-4o")
}

func NewOpenAIWithModel(apiKey, model string) *OpenAI {
	return &OpenAI{
		apiKey: apiKey,
		client: &http.Client{Timeout: DefaultTimeout},
		model:  model,
	}
}

// SetTimeout overrides the per-request timeout.
func (o *OpenAI) SetTimeout(d time.Duration) {
	o.client.Timeout = d
}

// GetModel returns the model being used by this OpenAI client.
func (o *OpenAI) GetModel() string {
	return o.model
}

func (o *OpenAI) Chat(ctx context.Context, prompt string) (string, error) {
	body := map[string]interface{}{
		"model": o.model,
		"messages": []map[string]string{{
			"role":    "user",
			"content": prompt,
		}},
		"max_tokens":  4000,
		"temperature": 0,
		"response_format": map[string]string{
			"type": "json_object",
		},
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, "https://api.openai.com/v1/chat/completions", bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", o.apiKey))

	resp, err := o.client.Do(req)
	if err != nil {
		return "", &ServiceError{Provider: "OpenAI", Err: err}
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &ServiceError{Provider: "OpenAI", Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		return "", &ServiceError{Provider: "OpenAI", Status: resp.StatusCode, Message: string(respBytes)}
	}

	var openaiResp struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
		Error struct {
			Message string `json:"message"`
			Type    string `json:"type"`
		} `json:"error"`
	}
	if err := json.Unmarshal(respBytes, &openaiResp); err != nil {
		return "", &ServiceError{Provider: "OpenAI", Err: err}
	}
	if openaiResp.Error.Message != "" {
		return "", &ServiceError{Provider: "OpenAI", Message: openaiResp.Error.Message}
	}
	if len(openaiResp.Choices) == 0 {
		return "", &ServiceError{Provider: "OpenAI", Message: "empty response"}
	}
	return openaiResp.Choices[0].Message.Content, nil
}
