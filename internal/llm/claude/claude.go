package claude

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"ticker-pulse/internal/store"
	"ticker-pulse/internal/trace"
)

// ClaudeCompleter produces narrative text through the Anthropic messages API
type ClaudeCompleter struct {
	cfg      *store.Config
	endpoint string
}

func NewClaudeCompleter(cfg *store.Config) *ClaudeCompleter {
	// default messages endpoint (public Anthropic)
	endpoint := "https://api.anthropic.com/v1/messages"
	// If you use a proxy/bedrock/vertex, set endpoint via CLAUDE_API_ENDPOINT env var
	if ep := os.Getenv("CLAUDE_API_ENDPOINT"); ep != "" {
		endpoint = ep
	}
	return &ClaudeCompleter{cfg: cfg, endpoint: endpoint}
}

func (c *ClaudeCompleter) Complete(ctx context.Context, prompt string, maxTokens int, temperature float32) (string, error) {
	ctx, span := trace.StartSpan(ctx, "claude-api-call")
	defer span.End()

	apiKey := os.Getenv("CLAUDE_API_KEY")
	if apiKey == "" {
		return "", errors.New("CLAUDE_API_KEY missing")
	}

	reqBody := map[string]any{
		"model": c.cfg.LLM.Model,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
		"max_tokens":  maxTokens,
		"temperature": temperature,
	}

	bb, _ := json.Marshal(reqBody)
	req, _ := http.NewRequestWithContext(ctx, "POST", c.endpoint, bytes.NewReader(bb))
	req.Header.Set("x-api-key", apiKey)
	req.Header.Set("anthropic-version", "2023-06-01")
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("claude http %d: %s", resp.StatusCode, string(body))
	}

	respBytes, _ := io.ReadAll(resp.Body)

	// Messages API: content is an array of typed blocks
	var r struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := json.Unmarshal(respBytes, &r); err == nil && len(r.Content) > 0 {
		var sb strings.Builder
		for _, block := range r.Content {
			if block.Type == "text" {
				sb.WriteString(block.Text)
			}
		}
		if out := strings.TrimSpace(sb.String()); out != "" {
			return out, nil
		}
	}

	// Older proxy shapes expose a flat completion field
	var anyResp map[string]any
	if err := json.Unmarshal(respBytes, &anyResp); err == nil {
		for _, k := range []string{"completion", "output", "output_text", "completion_text", "result"} {
			if v, exists := anyResp[k]; exists {
				if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
					return strings.TrimSpace(s), nil
				}
			}
		}
	}

	return "", errors.New("claude response carried no text")
}
