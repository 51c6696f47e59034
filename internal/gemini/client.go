// Package gemini is a minimal client for the Google Generative
// Language API: one generateContent call shape tuned for structured
// review output, plus model enumeration.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"
)

const apiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// FallbackModels is used when dynamic model discovery fails.
var FallbackModels = []string{
	"models/gemini-1.5-flash",
	"models/gemini-1.5-pro",
}

// Client calls the Gemini API.
type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client

	// Stats tracks call latencies for the stats endpoint.
	Stats *Stats
}

func NewClient(apiKey, model string) *Client {
	return &Client{
		apiKey:  apiKey,
		model:   model,
		baseURL: apiBaseURL,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
		Stats: NewStats(time.Hour),
	}
}

// Model returns the configured model identifier.
func (c *Client) Model() string { return c.model }

// WithModel returns a client targeting a different model but sharing
// the HTTP client and stats tracker.
func (c *Client) WithModel(model string) *Client {
	if model == "" || model == c.model {
		return c
	}
	cp := *c
	cp.model = model
	return &cp
}

// ServiceError is a transport/service-level failure of a review call.
// The orchestrator tolerates it per chunk.
type ServiceError struct {
	StatusCode int
	Message    string
}

func (e *ServiceError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("gemini: %s", truncate(e.Message, 200))
	}
	return fmt.Sprintf("gemini status %d: %s", e.StatusCode, truncate(e.Message, 200))
}

type generateRequest struct {
	SystemInstruction *content   `json:"systemInstruction,omitempty"`
	Contents          []content  `json:"contents"`
	GenerationConfig  *genConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type genConfig struct {
	Temperature      float64 `json:"temperature"`
	MaxOutputTokens  int     `json:"maxOutputTokens,omitempty"`
	ResponseMIMEType string  `json:"responseMimeType,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Generate sends one chunk review request. Temperature is pinned low
// and the response MIME type is strict JSON so the model favors
// deterministic structured output.
func (c *Client) Generate(ctx context.Context, system, user string) (string, error) {
	body := generateRequest{
		SystemInstruction: &content{Parts: []part{{Text: system}}},
		Contents: []content{
			{Role: "user", Parts: []part{{Text: user}}},
		},
		GenerationConfig: &genConfig{
			Temperature:      0.1,
			MaxOutputTokens:  8192,
			ResponseMIMEType: "application/json",
		},
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if c.Stats != nil {
		c.Stats.Record(time.Since(start).Milliseconds())
	}
	if err != nil {
		return "", &ServiceError{Message: err.Error()}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", &ServiceError{Message: "read response: " + err.Error()}
	}
	if resp.StatusCode != http.StatusOK {
		return "", &ServiceError{StatusCode: resp.StatusCode, Message: string(respBody)}
	}

	var apiResp generateResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if apiResp.Error != nil {
		return "", &ServiceError{StatusCode: apiResp.Error.Code, Message: apiResp.Error.Message}
	}
	if len(apiResp.Candidates) == 0 || len(apiResp.Candidates[0].Content.Parts) == 0 {
		return "", &ServiceError{Message: "empty response"}
	}

	var sb strings.Builder
	for _, p := range apiResp.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	return sb.String(), nil
}

type modelsResponse struct {
	Models []struct {
		Name                       string   `json:"name"`
		SupportedGenerationMethods []string `json:"supportedGenerationMethods"`
	} `json:"models"`
}

// ListModels enumerates models that support generateContent, newest
// identifiers first. Any failure falls back to the static list; the
// caller never sees an error.
func (c *Client) ListModels(ctx context.Context) []string {
	url := fmt.Sprintf("%s/models?key=%s&pageSize=200", c.baseURL, c.apiKey)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return FallbackModels
	}
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return FallbackModels
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return FallbackModels
	}

	var list modelsResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&list); err != nil {
		return FallbackModels
	}

	var names []string
	for _, m := range list.Models {
		for _, method := range m.SupportedGenerationMethods {
			if method == "generateContent" {
				names = append(names, m.Name)
				break
			}
		}
	}
	if len(names) == 0 {
		return FallbackModels
	}
	sort.Sort(sort.Reverse(sort.StringSlice(names)))
	return names
}

// Close releases resources.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
