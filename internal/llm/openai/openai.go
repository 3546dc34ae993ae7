package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"ticker-pulse/internal/store"
	"ticker-pulse/internal/trace"
)

type OpenAICompleter struct {
	cfg *store.Config
}

func NewOpenAICompleter(cfg *store.Config) *OpenAICompleter {
	return &OpenAICompleter{cfg: cfg}
}

func (c *OpenAICompleter) Complete(ctx context.Context, prompt string, maxTokens int, temperature float32) (string, error) {
	ctx, span := trace.StartSpan(ctx, "openai-api-call")
	defer span.End()

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return "", errors.New("OPENAI_API_KEY missing")
	}

	body := map[string]any{
		"model":       c.cfg.LLM.Model,
		"messages":    []map[string]string{{"role": "user", "content": prompt}},
		"temperature": temperature,
		"max_tokens":  maxTokens,
	}
	bb, _ := json.Marshal(body)

	req, _ := http.NewRequestWithContext(ctx, "POST", "https://api.openai.com/v1/chat/completions", bytes.NewReader(bb))
	req.Header.Set("Authorization", "Bearer "+apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("openai http %d", resp.StatusCode)
	}

	var r struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return "", err
	}

	if len(r.Choices) == 0 {
		return "", errors.New("no choices")
	}

	return strings.TrimSpace(r.Choices[0].Message.Content), nil
}
