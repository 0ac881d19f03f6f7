package provider

import (
	"fmt"
	"strings"
	"time"

	"github.com/bassista/go_railops/internal/logger"
)

const (
	TypeGemini   = "gemini"
	TypeDisabled = "disabled"
)

// Settings carries what the factory needs from the application config.
type Settings struct {
	Type    string
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

// NewProviderFromConfig creates a Provider based on the configured type.
// "gemini" (default) without an API key degrades to the disabled provider.
func NewProviderFromConfig(s Settings) (Provider, error) {
	switch strings.ToLower(strings.TrimSpace(s.Type)) {
	case TypeDisabled:
		return NewDisabledProvider(), nil
	case TypeGemini, "":
		if strings.TrimSpace(s.APIKey) == "" {
			logger.WithComponent("provider").Warn("no API key configured, serving fallback data only")
			return NewDisabledProvider(), nil
		}
		g, err := NewGeminiProvider(s.APIKey, s.Model, s.BaseURL, s.Timeout)
		if err != nil {
			return nil, err
		}
		return g, nil
	default:
		return nil, fmt.Errorf("unknown provider type: %s (supported: %s, %s)", s.Type, TypeGemini, TypeDisabled)
	}
}
