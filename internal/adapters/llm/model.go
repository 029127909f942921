// Package llm classifies call transcripts and scores discovery calls through
// a langchaingo chat model
package llm

import (
	"introspect/internal/platform/config"
	perr "introspect/internal/platform/errors"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/anthropic"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
)

// Providers
const (
	ProviderAnthropic = "anthropic"
	ProviderOpenAI    = "openai"
	ProviderOllama    = "ollama"
)

// DefaultModel is used when no model is configured for anthropic
const DefaultModel = "claude-haiku-4-5-20251001"

// ModelOptions selects and authenticates the provider
type ModelOptions struct {
	Provider string
	Model    string
	APIKey   string
	BaseURL  string
}

// ModelOptionsFromEnv reads LLM_PROVIDER, LLM_MODEL, LLM_API_KEY and LLM_BASE_URL under c
func ModelOptionsFromEnv(c config.Conf) ModelOptions {
	o := ModelOptions{
		Provider: c.MayEnum("LLM_PROVIDER", ProviderAnthropic, ProviderAnthropic, ProviderOpenAI, ProviderOllama),
		Model:    c.MayString("LLM_MODEL", ""),
		APIKey:   c.MayString("LLM_API_KEY", ""),
		BaseURL:  c.MayString("LLM_BASE_URL", ""),
	}
	if o.Model == "" && o.Provider == ProviderAnthropic {
		o.Model = DefaultModel
	}
	return o
}

// NewModel builds the langchaingo model for o
func NewModel(o ModelOptions) (llms.Model, error) {
	switch o.Provider {
	case "", ProviderAnthropic:
		if o.APIKey == "" {
			return nil, perr.Configf("anthropic API key required")
		}
		model := o.Model
		if model == "" {
			model = DefaultModel
		}
		opts := []anthropic.Option{anthropic.WithToken(o.APIKey), anthropic.WithModel(model)}
		if o.BaseURL != "" {
			opts = append(opts, anthropic.WithBaseURL(o.BaseURL))
		}
		m, err := anthropic.New(opts...)
		if err != nil {
			return nil, perr.Wrap(err, perr.ErrorCodeConfig, "create anthropic model")
		}
		return m, nil

	case ProviderOpenAI:
		if o.APIKey == "" {
			return nil, perr.Configf("openai API key required")
		}
		opts := []openai.Option{openai.WithToken(o.APIKey)}
		if o.Model != "" {
			opts = append(opts, openai.WithModel(o.Model))
		}
		if o.BaseURL != "" {
			opts = append(opts, openai.WithBaseURL(o.BaseURL))
		}
		m, err := openai.New(opts...)
		if err != nil {
			return nil, perr.Wrap(err, perr.ErrorCodeConfig, "create openai model")
		}
		return m, nil

	case ProviderOllama:
		if o.Model == "" {
			return nil, perr.Configf("ollama model required")
		}
		opts := []ollama.Option{ollama.WithModel(o.Model)}
		if o.BaseURL != "" {
			opts = append(opts, ollama.WithServerURL(o.BaseURL))
		}
		m, err := ollama.New(opts...)
		if err != nil {
			return nil, perr.Wrap(err, perr.ErrorCodeConfig, "create ollama model")
		}
		return m, nil

	default:
		return nil, perr.Configf("unsupported LLM provider: %s", o.Provider)
	}
}
