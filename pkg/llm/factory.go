package llm

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Provider represents the LLM provider type
type Provider string

const (
	ProviderClaude Provider = "claude"
	ProviderOpenAI Provider = "openai"
)

// CreateFromEnv creates an LLM instance from environment variables, with
// optional provider/model overrides (CLI flags win over env).
func CreateFromEnv(providerOverride, modelOverride string, timeout time.Duration) (LLM, error) {
	provider := strings.ToLower(providerOverride)
	if provider == "" {
		provider = strings.ToLower(os.Getenv("LLM_PROVIDER"))
	}

	switch Provider(provider) {
	case ProviderOpenAI:
		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
		model := modelOverride
		if model == "" {
			model = os.Getenv("OPENAI_MODEL")
		}
		var client *OpenAI
		if model != "" {
			client = NewOpenAIWithModel(apiKey, model)
		} else {
			client = NewOpenAI(apiKey)
		}
		if timeout > 0 {
			client.SetTimeout(timeout)
		}
		return client, nil

	case ProviderClaude, Provider(""):
		// Default to Claude when nothing is configured.
		apiKey := os.Getenv("ANTHROPIC_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
		}
		model := modelOverride
		if model == "" {
			model = os.Getenv("CLAUDE_MODEL")
		}
		var client *Claude
		if model != "" {
			client = NewClaudeWithModel(apiKey, model)
		} else {
			client = NewClaude(apiKey)
		}
		if timeout > 0 {
			client.SetTimeout(timeout)
		}
		return client, nil

	default:
		names := make([]string, 0, len(AvailableProviders()))
		for _, p := range AvailableProviders() {
			names = append(names, string(p))
		}
		return nil, fmt.Errorf("unsupported LLM provider: %s (supported: %s)", provider, strings.Join(names, ", "))
	}
}

// AvailableProviders returns the supported LLM providers.
func AvailableProviders() []Provider {
	return []Provider{ProviderClaude, ProviderOpenAI}
}
