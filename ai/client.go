package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// AdviceClient issues one advice request to a language model and returns the
// reply text. One-shot: no retry, no backoff; the caller owns error
// presentation.
type AdviceClient interface {
	Respond(ctx context.Context, model, input string, maxOutputTokens int) (string, error)
}

// OpenAIClient implements AdviceClient against the OpenAI responses API.
type OpenAIClient struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// NewOpenAIClient builds a client. Returns an error when no API key is
// configured so the feature can be reported disabled before any request.
func NewOpenAIClient(apiKey string, timeout time.Duration) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("missing OpenAI API key")
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &OpenAIClient{
		APIKey:  apiKey,
		BaseURL: "https://api.openai.com/v1",
		Timeout: timeout,
	}, nil
}

func (c *OpenAIClient) Respond(ctx context.Context, model, input string, maxOutputTokens int) (string, error) {
	if strings.TrimSpace(model) == "" {
		return "", fmt.Errorf("missing model")
	}
	if maxOutputTokens <= 0 {
		maxOutputTokens = OutputTokenBudget
	}

	type reqBody struct {
		Model           string `json:"model"`
		Input           string `json:"input"`
		MaxOutputTokens int    `json:"max_output_tokens"`
	}
	raw, err := json.Marshal(reqBody{Model: model, Input: input, MaxOutputTokens: maxOutputTokens})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	client := &http.Client{Timeout: c.Timeout}
	url := strings.TrimRight(c.BaseURL, "/") + "/responses"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.APIKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("openai request failed: %w", err)
	}
	defer resp.Body.Close()

	respRaw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("openai http %d: %s", resp.StatusCode, string(respRaw))
	}

	type contentPart struct {
		Type string `json:"type"`
		Text string `json:"text"`
	}
	type outputItem struct {
		Type    string        `json:"type"`
		Content []contentPart `json:"content"`
	}
	type respBody struct {
		OutputText string       `json:"output_text"`
		Output     []outputItem `json:"output"`
	}
	var decoded respBody
	if err := json.Unmarshal(respRaw, &decoded); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}
	if decoded.OutputText != "" {
		return decoded.OutputText, nil
	}
	for _, item := range decoded.Output {
		for _, part := range item.Content {
			if part.Text != "" {
				return part.Text, nil
			}
		}
	}
	return "", fmt.Errorf("openai response missing output text")
}

// MockClient is an AdviceClient stub for tests.
type MockClient struct {
	Response string
	Err      error
}

func (m *MockClient) Respond(ctx context.Context, model, input string, maxOutputTokens int) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	if m.Response != "" {
		return m.Response, nil
	}
	return "### Cost levers\n1. Loadings look typical.\n### Cure time & oven utilization\n1. Cure profile acceptable.\n### Field performance & scrap\n1. No scrap risk flagged.", nil
}
