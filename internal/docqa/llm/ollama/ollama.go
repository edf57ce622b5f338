package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/nvasani/findocqa/internal/config"
	"github.com/nvasani/findocqa/internal/customHttpClient"
	"github.com/nvasani/findocqa/internal/docqa/llm"
	"github.com/nvasani/findocqa/pkg/logger_i"
)

type client struct {
	httpClient *http.Client
	url        string
	model      string
}

var logger *logger_i.Logger
var ollamaClient *client
var once sync.Once

func GetOllamaClient(url string, model string) llm.Provider {
	once.Do(func() {
		logger = logger_i.NewLogger("llm_ollama")
		ollamaClient = &client{
			httpClient: customHttpClient.New(config.QuestionTimeout),
			url:        url,
			model:      model,
		}
		logger.Info("Ollama client created", "url", url, "model", model)
	})
	return ollamaClient
}

func (c *client) Name() string {
	return "ollama"
}

type generateRequest struct {
	Model     string `json:"model"`
	Prompt    string `json:"prompt"`
	Stream    bool   `json:"stream"`
	MaxTokens int    `json:"max_tokens,omitempty"`
}

// Ollama's response shape has varied across versions; accept both fields.
type generateResponse struct {
	Text     string `json:"text"`
	Response string `json:"response"`
}

func (c *client) Generate(ctx context.Context, question string, docContext string, messageHistory []string) (string, error) {
	logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))

	prompt := config.ModelContext + "\n" + llm.BuildPrompt(question, docContext, messageHistory)

	body, err := json.Marshal(generateRequest{
		Model:     c.model,
		Prompt:    prompt,
		Stream:    false,
		MaxTokens: config.OllamaMaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("error marshaling request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewBuffer(body))
	if err != nil {
		return "", fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("error calling ollama: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		logger.Error("Ollama request failed", "status", resp.StatusCode, "body", string(raw))
		return "", fmt.Errorf("ollama request failed: %d", resp.StatusCode)
	}

	var parsed generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("error decoding ollama response: %w", err)
	}

	if parsed.Text != "" {
		return parsed.Text, nil
	}
	if parsed.Response != "" {
		return parsed.Response, nil
	}
	return "", fmt.Errorf("ollama returned an empty response")
}
