package ollama

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"iter"
	"net/http"
	"strings"

	"github.com/akolanti/SupportBot/internal/chatbot/llm"
	"github.com/akolanti/SupportBot/internal/config"
	"github.com/akolanti/SupportBot/internal/customHttpClient"
	"github.com/akolanti/SupportBot/pkg/logger_i"
)

const maxLineSize = 1024 * 1024

type generateRequest struct {
	Model   string  `json:"model"`
	Prompt  string  `json:"prompt"`
	Stream  bool    `json:"stream"`
	Options options `json:"options"`
}

type options struct {
	NumPredict  int     `json:"num_predict"`
	Temperature float32 `json:"temperature"`
}

// chunk is one line of the NDJSON stream; a non streaming reply is a single chunk.
type chunk struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
	Error    string `json:"error"`
}

type client struct {
	http    *http.Client
	baseURL string
	model   string
	logger  *logger_i.Logger
}

func NewClient(baseURL string, model string, httpClient *http.Client) llm.Provider {
	if httpClient == nil {
		httpClient = customHttpClient.GetClient()
	}
	return &client{
		http:    httpClient,
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		logger:  logger_i.NewLogger("llm_ollama"),
	}
}

func (c *client) Name() string {
	return "ollama:" + c.model
}

func (c *client) Generate(ctx context.Context, prompt string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		log := c.logger.WithTrace(ctx)

		body, err := json.Marshal(generateRequest{
			Model:  c.model,
			Prompt: prompt,
			Stream: true,
			Options: options{
				NumPredict:  config.LLMMaxTokens,
				Temperature: config.ModelTemperature,
			},
		})
		if err != nil {
			yield("", fmt.Errorf("%w: %w", llm.ErrBadResponse, err))
			return
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+config.OllamaGenerateEndpoint, bytes.NewReader(body))
		if err != nil {
			yield("", fmt.Errorf("%w: %w", llm.ErrBadResponse, err))
			return
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			if llm.IsConnectionError(err) {
				log.Warn("Ollama unreachable", "error", err)
				yield("", fmt.Errorf("%w: %w", llm.ErrUnreachable, err))
				return
			}
			log.Error("Ollama request failed", "error", err)
			yield("", fmt.Errorf("%w: %w", llm.ErrBadResponse, err))
			return
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			log.Error("Ollama returned an error status", "status", resp.StatusCode, "body", string(msg))
			yield("", fmt.Errorf("%w: status %d", llm.ErrBadResponse, resp.StatusCode))
			return
		}

		scanner := bufio.NewScanner(resp.Body)
		scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
		skipped := 0
		for scanner.Scan() {
			line := bytes.TrimSpace(scanner.Bytes())
			if len(line) == 0 {
				continue
			}
			var ch chunk
			if err := json.Unmarshal(line, &ch); err != nil {
				skipped++
				continue
			}
			if ch.Error != "" {
				yield("", fmt.Errorf("%w: %s", llm.ErrBadResponse, ch.Error))
				return
			}
			if ch.Response != "" && !yield(ch.Response, nil) {
				return
			}
			if ch.Done {
				break
			}
		}
		if skipped > 0 {
			log.Warn("Skipped malformed stream lines", "count", skipped)
		}
		if err := scanner.Err(); err != nil {
			log.Error("Ollama stream broke", "error", err)
			yield("", fmt.Errorf("%w: %w", llm.ErrBadResponse, err))
		}
	}
}
