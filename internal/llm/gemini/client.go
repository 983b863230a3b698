package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/docqa-labs/retrieval-agent/internal/llm"
	"github.com/docqa-labs/retrieval-agent/internal/models"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta/models"

// Client calls the Gemini generateContent REST endpoint. There is no
// official Go SDK pinned here, so this speaks the wire format directly.
type Client struct {
	httpClient *http.Client
	apiKey     string
	modelID    string
	baseURL    string
}

func NewClient(apiKey string, modelID string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if modelID == "" {
		modelID = "gemini-pro"
	}

	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		apiKey:     apiKey,
		modelID:    modelID,
		baseURL:    defaultBaseURL,
	}, nil
}

type geminiRequest struct {
	Contents         []geminiContent  `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopK            int     `json:"topK"`
	TopP            float64 `json:"topP"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
}

func (c *Client) InvokeModel(ctx context.Context, request llm.LLMRequest) (*llm.LLMResponse, error) {
	payload := geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: request.Prompt}}},
		},
		GenerationConfig: generationConfig{
			Temperature:     request.Temperature,
			TopK:            40,
			TopP:            0.95,
			MaxOutputTokens: request.MaxTokens,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("unable to serialize gemini request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/%s:generateContent?key=%s", c.baseURL, c.modelID, url.QueryEscape(c.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("unable to build gemini request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: unable to call gemini API: %v", models.ErrGeneration, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: unable to read gemini response: %v", models.ErrGeneration, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: gemini API returned status %d", models.ErrGeneration, resp.StatusCode)
	}

	var response geminiResponse
	if err := json.Unmarshal(raw, &response); err != nil {
		return nil, fmt.Errorf("%w: malformed gemini response: %v", models.ErrGeneration, err)
	}

	// Missing candidates or parts means the model had nothing to add.
	// That is a valid terminal outcome, not an error.
	var content, stopReason string
	if len(response.Candidates) > 0 {
		candidate := response.Candidates[0]
		stopReason = candidate.FinishReason
		if len(candidate.Content.Parts) > 0 {
			content = candidate.Content.Parts[0].Text
		}
	}

	return &llm.LLMResponse{
		Content:    content,
		StopReason: stopReason,
	}, nil
}

// InvokeModelWithRetry makes a single attempt. The Gemini path does not
// retry; callers needing backoff use the bedrock client.
func (c *Client) InvokeModelWithRetry(ctx context.Context, request llm.LLMRequest) (*llm.LLMResponse, error) {
	return c.InvokeModel(ctx, request)
}
