package gemini

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"sync"

	"github.com/akolanti/SupportBot/internal/chatbot/llm"
	"github.com/akolanti/SupportBot/internal/config"
	"github.com/akolanti/SupportBot/internal/customHttpClient"
	"github.com/akolanti/SupportBot/pkg/logger_i"
	"google.golang.org/genai"
)

type llmClient struct {
	client    *genai.Client
	modelName string
}

var logger = logger_i.NewLogger("llm_gemini")
var geminiClient *llmClient
var once sync.Once

// GetGeminiClient builds the client once; it returns nil if the client could
// not be created so the caller can pick another provider.
func GetGeminiClient(ctx context.Context, modelName string, apiKey string) llm.Provider {
	once.Do(func() {
		newGeminiClient(ctx, modelName, apiKey)
	})

	if geminiClient == nil {
		return nil
	}
	return geminiClient
}

func newGeminiClient(ctx context.Context, modelName string, apiKey string) {
	if apiKey == "" {
		logger.Error("Gemini API key is not set")
		return
	}
	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: customHttpClient.GetClient(),
	})
	if err != nil {
		logger.Error("Error creating Gemini client:", "error", err)
		return
	}
	geminiClient = &llmClient{client: c, modelName: modelName}
	logger.Info("Gemini client created", "model", modelName)
}

func (c *llmClient) Name() string {
	return "gemini:" + c.modelName
}

func (c *llmClient) Generate(ctx context.Context, prompt string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		log := logger.WithTrace(ctx)
		temperature := config.ModelTemperature
		contentConfig := &genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{
				Parts: []*genai.Part{{Text: config.ModelContext}},
			},
			Temperature:     &temperature,
			MaxOutputTokens: config.LLMMaxTokens,
		}

		for resp, err := range c.client.Models.GenerateContentStream(ctx, c.modelName, genai.Text(prompt), contentConfig) {
			if err != nil {
				log.Error("Gemini stream failed", "error", err)
				yield("", classify(err))
				return
			}
			if text := resp.Text(); text != "" && !yield(text, nil) {
				return
			}
		}
	}
}

func classify(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("%w: %d %s", llm.ErrBadResponse, apiErr.Code, apiErr.Message)
	}
	if llm.IsConnectionError(err) {
		return fmt.Errorf("%w: %w", llm.ErrUnreachable, err)
	}
	return fmt.Errorf("%w: %w", llm.ErrBadResponse, err)
}
