package provider

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bassista/go_railops/internal/logger"
	"github.com/bassista/go_railops/internal/metrics"
	"google.golang.org/genai"
)

const (
	DefaultModel      = "gemini-1.5-flash"
	DefaultBaseURL    = "https://generativelanguage.googleapis.com/"
	DefaultAPIVersion = "v1beta"
	DefaultTimeout    = 30 * time.Second
)

// GeminiProvider generates text with the Gemini API.
type GeminiProvider struct {
	client  *genai.Client
	model   string
	baseURL string
	timeout time.Duration
}

func NewGeminiProvider(apiKey, model, baseURL string, timeout time.Duration) (*GeminiProvider, error) {
	if model == "" {
		model = DefaultModel
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{
			BaseURL:    baseURL,
			APIVersion: DefaultAPIVersion,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: create gemini client: %v", ErrProvider, err)
	}

	return &GeminiProvider{
		client:  client,
		model:   model,
		baseURL: baseURL,
		timeout: timeout,
	}, nil
}

func (g *GeminiProvider) Enabled() bool {
	return true
}

// Generate sends prompt and returns the text of the first candidate.
// The call is bounded by the provider timeout even when ctx has no deadline.
func (g *GeminiProvider) Generate(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	text, err := g.generate(ctx, prompt)
	outcome := "success"
	if err != nil {
		outcome = "error"
		logger.WithComponent("provider").Warnf("generateContent failed after %v: %v", time.Since(start), err)
	}
	metrics.ObserveProviderRequest(outcome, time.Since(start).Seconds())
	return text, err
}

func (g *GeminiProvider) generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		var apiErr genai.APIError
		if errors.As(err, &apiErr) {
			return "", fmt.Errorf("%w: status %d: %s", ErrProvider, apiErr.Code, apiErr.Message)
		}
		return "", fmt.Errorf("%w: %v", ErrProvider, err)
	}
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: no candidates in response", ErrProvider)
	}
	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: empty candidate text", ErrProvider)
	}
	return text, nil
}
