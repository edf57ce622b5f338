package openaiCompat

import (
	"context"
	"fmt"
	"sync"

	"github.com/nvasani/findocqa/internal/config"
	"github.com/nvasani/findocqa/internal/docqa/llm"
	"github.com/nvasani/findocqa/pkg/logger_i"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// Client for any OpenAI-compatible chat endpoint. Ollama exposes one at /v1,
// which makes this an alternative to the native generate API.
type llmClient struct {
	client    openai.Client
	modelName string
}

var logger *logger_i.Logger
var compatClient *llmClient
var once sync.Once

func GetOpenAIClient(baseURL string, apikey string, modelName string) llm.Provider {
	once.Do(func() {
		logger = logger_i.NewLogger("llm_openai")
		compatClient = &llmClient{
			client:    openai.NewClient(option.WithBaseURL(baseURL), option.WithAPIKey(apikey)),
			modelName: modelName,
		}
		logger.Info("OpenAI-compatible client created", "baseURL", baseURL, "model", modelName)
	})
	return compatClient
}

func (c *llmClient) Name() string {
	return "openai"
}

func (c *llmClient) Generate(ctx context.Context, question string, docContext string, messageHistory []string) (string, error) {
	logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))

	userPrompt := llm.BuildPrompt(question, docContext, messageHistory)

	chat, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.modelName),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(config.ModelContext),
			openai.UserMessage(userPrompt),
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(chat.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}
	return chat.Choices[0].Message.Content, nil
}
