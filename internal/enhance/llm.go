package enhance

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/oppbot/oppbot/internal/analyzer"
	"github.com/oppbot/oppbot/internal/retry"
)

// LLM enhances analyses through an OpenAI-compatible chat-completions API.
type LLM struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewLLM creates a chat-completions enhancer. baseURL is the API root, e.g.
// "https://api.groq.com/openai/v1".
func NewLLM(baseURL, apiKey, model string, client *http.Client) *LLM {
	if client == nil {
		client = &http.Client{}
	}
	return &LLM{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		model:      model,
		httpClient: client,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

const systemPrompt = `You are an expert at reading job postings, freelance gigs, grants and similar opportunity texts.
Improve the provided baseline analysis of the opportunity text.

Rules:
- category must be one of: job, freelance, business, grant, competition, internship, other
- deadline must be YYYY-MM-DD or an empty string
- priority_score must be a number between 1 and 10
- requirements must be at most 5 short items
- Return ONLY a raw JSON object with the same keys as the baseline. No markdown fences, no commentary.`

// Enhance submits the text plus the base analysis and returns a validated
// candidate. Every failure path returns an error; Apply handles the fallback.
func (l *LLM) Enhance(ctx context.Context, text string, base analyzer.Analysis) (analyzer.Analysis, error) {
	var zero analyzer.Analysis

	baseJSON, err := json.Marshal(base)
	if err != nil {
		return zero, fmt.Errorf("enhance: marshal base: %w", err)
	}

	reqBody := chatRequest{
		Model: l.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: fmt.Sprintf("Opportunity text:\n%s\n\nBaseline analysis:\n%s", text, baseJSON)},
		},
		Temperature: 0.3,
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return zero, fmt.Errorf("enhance: marshal request: %w", err)
	}

	resp, err := retry.HTTP(ctx, retry.Default, func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, l.baseURL+"/chat/completions", bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+l.apiKey)
		return l.httpClient.Do(req)
	})
	if err != nil {
		return zero, fmt.Errorf("enhance: request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return zero, fmt.Errorf("enhance: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return zero, fmt.Errorf("enhance: status %d: %s", resp.StatusCode, body)
	}

	var cr chatResponse
	if err := json.Unmarshal(body, &cr); err != nil {
		return zero, fmt.Errorf("enhance: decode response: %w", err)
	}
	if cr.Error != nil {
		return zero, fmt.Errorf("enhance: api error: %s", cr.Error.Message)
	}
	if len(cr.Choices) == 0 {
		return zero, fmt.Errorf("enhance: no choices returned")
	}

	var cand candidate
	if err := json.Unmarshal([]byte(stripFences(cr.Choices[0].Message.Content)), &cand); err != nil {
		return zero, fmt.Errorf("enhance: parse candidate: %w", err)
	}
	return validate(cand)
}

// stripFences removes markdown code fences the model may wrap around JSON.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
