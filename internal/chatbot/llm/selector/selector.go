package selector

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/akolanti/SupportBot/internal/chatbot/llm"
	"github.com/akolanti/SupportBot/internal/chatbot/llm/gemini"
	"github.com/akolanti/SupportBot/internal/chatbot/llm/ollama"
	"github.com/akolanti/SupportBot/internal/chatbot/llm/openaiCompat"
	"github.com/akolanti/SupportBot/internal/config"
)

var (
	ErrUnknownProvider     = errors.New("unknown llm provider")
	ErrProviderUnavailable = errors.New("llm provider could not be created")
)

// FromConfig builds the provider named by LLM_PROVIDER.
func FromConfig(ctx context.Context) (llm.Provider, error) {
	return New(ctx, config.LLMProvider)
}

func New(ctx context.Context, name string) (llm.Provider, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	model := config.ModelFor(name)

	switch name {
	case "", "ollama":
		return ollama.NewClient(config.OllamaBaseURL, model, nil), nil
	case "openai":
		return openaiCompat.NewClient(config.OpenAIBaseURL, config.OpenAIAPIKey, model), nil
	case "gemini":
		if p := gemini.GetGeminiClient(ctx, model, config.GeminiAPIKey); p != nil {
			return p, nil
		}
		return nil, fmt.Errorf("%w: gemini", ErrProviderUnavailable)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, name)
	}
}
