// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package genai wraps the generative-model HTTP endpoint and the brittle
// text-to-JSON boundary around its responses.
// Implements: prd003-ranking (R2), prd004-analysis (R2);
//
//	docs/ARCHITECTURE.md § Model Boundary.
package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"github.com/mmeet/career-engine/pkg/types"
)

// Client abstracts the generative-model endpoint so the ranking and
// analysis agents can be tested against a scripted implementation.
type Client interface {
	// Generate sends one free-text prompt and returns the model's text.
	Generate(ctx context.Context, prompt string) (string, error)
}

// geminiAPIBase is the Gemini generateContent endpoint root. Package-level
// var for test substitution.
var geminiAPIBase = "https://generativelanguage.googleapis.com/v1beta"

// GeminiClient calls the Gemini generateContent API.
type GeminiClient struct {
	Config types.AIConfig
	HTTP   *http.Client
}

// geminiRequest is the request body for the generateContent API.
type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

// geminiContent is a single turn in the generateContent conversation.
type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

// geminiPart is one content part.
type geminiPart struct {
	Text string `json:"text"`
}

// geminiResponse is the response body from the generateContent API.
type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

// Generate sends the prompt to the configured model and returns the text of
// the first candidate.
func (c *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	reqBody := geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: prompt}}},
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", geminiAPIBase, c.Config.Model, c.Config.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := c.HTTP
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling model API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("model API returned %d: %s", resp.StatusCode, string(body))
	}

	var gResp geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&gResp); err != nil {
		return "", fmt.Errorf("decoding model response: %w", err)
	}

	for _, cand := range gResp.Candidates {
		for _, part := range cand.Content.Parts {
			if part.Text != "" {
				return part.Text, nil
			}
		}
	}

	return "", fmt.Errorf("model API returned no text content")
}

// backoffBase controls the base duration for exponential backoff between
// model call attempts. Tests override this to avoid real sleeps.
var backoffBase = time.Second

// GenerateWithRetry calls the client with exponential backoff between
// attempts. maxRetries <= 0 uses 2 retries.
func GenerateWithRetry(ctx context.Context, c Client, prompt string, maxRetries int) (string, error) {
	if maxRetries <= 0 {
		maxRetries = 2
	}

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(math.Pow(2, float64(attempt-1))) * backoffBase
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(backoff):
			}
		}

		text, err := c.Generate(ctx, prompt)
		if err == nil {
			return text, nil
		}
		lastErr = err
	}
	return "", fmt.Errorf("after %d retries: %w", maxRetries, lastErr)
}
