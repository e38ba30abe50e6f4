package config

import (
	"strings"
	"time"
)

// ProviderConfig contains discovery provider client configuration.
type ProviderConfig struct {
	// BaseURL is the provider API root, e.g. https://api.discovery.example.
	BaseURL string `env:"PROVIDER_BASE_URL"`

	// APIKey authenticates outbound provider requests.
	APIKey string `env:"PROVIDER_API_KEY"`

	// RequestsPerSecond caps outbound provider calls.
	RequestsPerSecond int `env:"PROVIDER_REQUESTS_PER_SECOND" envDefault:"3"`

	// Timeout bounds one provider search request.
	Timeout time.Duration `env:"PROVIDER_TIMEOUT" envDefault:"30s"`
}

// Sanitize applies guardrails to provider configuration values.
func (p *ProviderConfig) Sanitize() {
	p.BaseURL = strings.TrimSpace(p.BaseURL)
	p.APIKey = strings.TrimSpace(p.APIKey)
	if p.RequestsPerSecond < 1 {
		p.RequestsPerSecond = 3
	}
	if p.Timeout <= 0 {
		p.Timeout = 30 * time.Second
	}
}
