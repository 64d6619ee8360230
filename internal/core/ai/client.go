package ai

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"meal-generator/internal/infrastructure/config"

	"github.com/go-resty/resty/v2"
)

// Client OpenRouter chat completions 客戶端
type Client struct {
	config config.OpenRouterConfig
	client *resty.Client
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type chatError struct {
	Error struct {
		Message string `json:"message"`
		Code    any    `json:"code"`
	} `json:"error"`
}

// NewClient 創建 OpenRouter 客戶端
func NewClient(cfg config.OpenRouterConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://openrouter.ai/api/v1"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 45 * time.Second
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Authorization", fmt.Sprintf("Bearer %s", cfg.APIKey)).
		SetHeader("HTTP-Referer", "https://meal-generator.app").
		SetHeader("X-Title", "Meal Generator")

	return &Client{
		config: cfg,
		client: client,
	}
}

// Complete 送出單一 user 訊息並回傳第一個 choice 的內容
func (c *Client) Complete(ctx context.Context, prompt string, temperature float64) (string, error) {
	req := chatRequest{
		Model:       c.config.Model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		MaxTokens:   c.config.MaxTokens,
		Temperature: temperature,
	}

	var result chatResponse
	var apiErr chatError
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&result).
		SetError(&apiErr).
		Post("/chat/completions")
	if err != nil {
		return "", fmt.Errorf("failed to send request to OpenRouter: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		if apiErr.Error.Message != "" {
			return "", fmt.Errorf("OpenRouter API returned %d: %s", resp.StatusCode(), apiErr.Error.Message)
		}
		return "", fmt.Errorf("OpenRouter API returned error: %s", resp.String())
	}

	if len(result.Choices) == 0 {
		return "", fmt.Errorf("no choices in OpenRouter response")
	}

	return result.Choices[0].Message.Content, nil
}
