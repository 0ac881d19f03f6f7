package provider

import "context"

// Provider generates text for a prompt. Implementations must honor ctx cancellation.
type Provider interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Enabled() bool
}

// DisabledProvider is used when no generation backend is configured.
// Every call fails with ErrProviderDisabled so callers go straight to their fallback.
type DisabledProvider struct{}

func NewDisabledProvider() *DisabledProvider {
	return &DisabledProvider{}
}

func (DisabledProvider) Generate(context.Context, string) (string, error) {
	return "", ErrProviderDisabled
}

func (DisabledProvider) Enabled() bool {
	return false
}
