// Package imagegen proxies text-to-image requests to the OpenAI Images API.
package imagegen

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
)

const (
	DefaultBaseURL = "https://api.openai.com/v1"
	DefaultModel   = "dall-e-3"

	upstreamFallbackMessage = "Failed to generate image with OpenAI"
)

var (
	ErrPromptRequired = errors.New("prompt is required")
	ErrNotConfigured  = errors.New("openai api key is not configured")
	ErrNoImage        = errors.New("openai: no image generated")
)

// UpstreamError carries a non-2xx answer from the provider. Status and Message
// are passed through to the caller unchanged.
type UpstreamError struct {
	Status  int
	Message string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("openai: http %d: %s", e.Status, e.Message)
}

type OpenAIOptions struct {
	BaseURL    string
	APIKey     string
	Model      string
	HTTPClient *http.Client
	Timeout    time.Duration
}

type OpenAIClient struct {
	httpClient *http.Client
	baseURL    string
	token      string
	model      string
}

func NewOpenAIClient(opts OpenAIOptions) *OpenAIClient {
	base := strings.TrimRight(opts.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = DefaultModel
	}
	client := opts.HTTPClient
	if client == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 60 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}
	return &OpenAIClient{
		httpClient: client,
		baseURL:    base,
		token:      strings.TrimSpace(opts.APIKey),
		model:      model,
	}
}

type generationRequest struct {
	Model   string `json:"model"`
	Prompt  string `json:"prompt"`
	N       int    `json:"n"`
	Size    string `json:"size"`
	Quality string `json:"quality"`
}

type generationResponse struct {
	Data []struct {
		URL string `json:"url"`
	} `json:"data"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// Generate asks for a single 1024x1024 image and returns its URL. The prompt is
// forwarded as-is.
func (c *OpenAIClient) Generate(ctx context.Context, prompt string) (string, error) {
	if prompt == "" {
		return "", ErrPromptRequired
	}
	if c == nil || c.token == "" {
		return "", ErrNotConfigured
	}
	body, err := json.Marshal(generationRequest{
		Model:   c.model,
		Prompt:  prompt,
		N:       1,
		Size:    "1024x1024",
		Quality: "standard",
	})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/images/generations", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("openai: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("openai: read body: %w", err)
	}
	var out generationResponse
	decodeErr := json.Unmarshal(raw, &out)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := upstreamFallbackMessage
		if decodeErr == nil && out.Error != nil && strings.TrimSpace(out.Error.Message) != "" {
			msg = out.Error.Message
		}
		return "", &UpstreamError{Status: resp.StatusCode, Message: msg}
	}
	if decodeErr != nil {
		return "", fmt.Errorf("openai: decode response: %w", decodeErr)
	}
	if len(out.Data) == 0 || strings.TrimSpace(out.Data[0].URL) == "" {
		return "", ErrNoImage
	}
	return out.Data[0].URL, nil
}
