package selector

import (
	"context"
	"testing"

	"github.com/akolanti/SupportBot/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	config.LLMModel = ""
	t.Cleanup(func() { config.LLMModel = "" })

	p, err := New(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "ollama:"+config.DefaultOllamaModel, p.Name())

	p, err = New(context.Background(), " OpenAI ")
	require.NoError(t, err)
	assert.Equal(t, "openai:"+config.DefaultOpenAIModel, p.Name())

	config.LLMModel = "mistral"
	p, err = New(context.Background(), "ollama")
	require.NoError(t, err)
	assert.Equal(t, "ollama:mistral", p.Name())
}

func TestNew_Errors(t *testing.T) {
	_, err := New(context.Background(), "llamafile")
	assert.ErrorIs(t, err, ErrUnknownProvider)

	config.GeminiAPIKey = ""
	_, err = New(context.Background(), "gemini")
	assert.ErrorIs(t, err, ErrProviderUnavailable)
}
