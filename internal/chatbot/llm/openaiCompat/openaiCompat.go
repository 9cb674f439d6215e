package openaiCompat

import (
	"context"
	"errors"
	"fmt"
	"iter"

	"github.com/akolanti/SupportBot/internal/chatbot/llm"
	"github.com/akolanti/SupportBot/internal/config"
	"github.com/akolanti/SupportBot/internal/customHttpClient"
	"github.com/akolanti/SupportBot/pkg/logger_i"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// client talks to any server that speaks the chat completions API
// (OpenAI itself, vLLM, LM Studio, llama.cpp server...).
type client struct {
	api    openai.Client
	model  string
	logger *logger_i.Logger
}

func NewClient(baseURL string, apiKey string, model string) llm.Provider {
	opts := []option.RequestOption{
		option.WithHTTPClient(customHttpClient.GetClient()),
		option.WithMaxRetries(0),
	}
	if apiKey != "" {
		opts = append(opts, option.WithAPIKey(apiKey))
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return &client{
		api:    openai.NewClient(opts...),
		model:  model,
		logger: logger_i.NewLogger("llm_openai"),
	}
}

func (c *client) Name() string {
	return "openai:" + c.model
}

func (c *client) Generate(ctx context.Context, prompt string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		log := c.logger.WithTrace(ctx)

		stream := c.api.Chat.Completions.NewStreaming(ctx, openai.ChatCompletionNewParams{
			Model: openai.ChatModel(c.model),
			Messages: []openai.ChatCompletionMessageParamUnion{
				openai.SystemMessage(config.ModelContext),
				openai.UserMessage(prompt),
			},
			MaxTokens:   openai.Int(config.LLMMaxTokens),
			Temperature: openai.Float(float64(config.ModelTemperature)),
		})
		defer stream.Close()

		for stream.Next() {
			chunk := stream.Current()
			if len(chunk.Choices) == 0 {
				continue
			}
			if text := chunk.Choices[0].Delta.Content; text != "" && !yield(text, nil) {
				return
			}
		}
		if err := stream.Err(); err != nil {
			log.Error("OpenAI stream failed", "error", err)
			yield("", classify(err))
		}
	}
}

func classify(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return fmt.Errorf("%w: status %d", llm.ErrBadResponse, apiErr.StatusCode)
	}
	if llm.IsConnectionError(err) {
		return fmt.Errorf("%w: %w", llm.ErrUnreachable, err)
	}
	return fmt.Errorf("%w: %w", llm.ErrBadResponse, err)
}
