package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"focustube/internal/apperr"
	"focustube/internal/video"
)

const (
	defaultBaseURL = "https://openrouter.ai/api/v1"
	defaultModel   = "openai/gpt-4o-mini"
)

// Turn is one prior exchange in the conversation. The caller supplies the
// full history on every request; nothing is kept between calls.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Client talks to the OpenRouter chat completions endpoint.
type Client struct {
	APIKey     string
	Model      string
	BaseURL    string
	HTTPClient *http.Client
}

type completionRequest struct {
	Model       string  `json:"model"`
	Messages    []Turn  `json:"messages"`
	Temperature float64 `json:"temperature"`
	MaxTokens   int     `json:"max_tokens"`
}

type completionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Answer submits one generation request: system prompt first (with the
// transcript bundle embedded as grounding when present), then the prior
// turns in order, then the question. No retries; a transient upstream
// failure surfaces to the caller.
func (c *Client) Answer(ctx context.Context, question string, transcript *video.TranscriptBundle, history []Turn) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", fmt.Errorf("%w: question is required", apperr.ErrValidation)
	}
	if c.APIKey == "" {
		return "", fmt.Errorf("%w: OPENROUTER_API_KEY not configured", apperr.ErrConfig)
	}

	messages := make([]Turn, 0, len(history)+2)
	messages = append(messages, Turn{Role: "system", Content: systemPrompt(transcript)})
	messages = append(messages, history...)
	messages = append(messages, Turn{Role: "user", Content: question})

	model := c.Model
	if model == "" {
		model = defaultModel
	}
	body, err := json.Marshal(completionRequest{
		Model:       model,
		Messages:    messages,
		Temperature: 0.7,
		MaxTokens:   1000,
	})
	if err != nil {
		return "", err
	}

	base := c.BaseURL
	if base == "" {
		base = defaultBaseURL
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, base+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("HTTP-Referer", "https://focustube.com")
	req.Header.Set("X-Title", "FocusTube")

	client := c.HTTPClient
	if client == nil {
		client = &http.Client{}
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperr.ErrUpstream, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: openrouter returned status %d", apperr.ErrUpstream, resp.StatusCode)
	}

	var out completionResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%w: malformed openrouter response", apperr.ErrUpstream)
	}
	if len(out.Choices) == 0 || out.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("%w: openrouter returned no content", apperr.ErrUpstream)
	}
	return out.Choices[0].Message.Content, nil
}

func systemPrompt(transcript *video.TranscriptBundle) string {
	var b strings.Builder
	b.WriteString("You are a helpful AI assistant that answers questions about YouTube video content.\n")
	if transcript != nil {
		raw, err := json.MarshalIndent(transcript, "", "  ")
		if err == nil {
			b.WriteString("Video Transcript:\n")
			b.Write(raw)
			b.WriteString("\n\n")
		}
	}
	b.WriteString("Provide clear, accurate answers based on the video information provided. If the information isn't in the transcript, say so.")
	return b.String()
}
