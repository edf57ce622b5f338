package llm

import "context"

type Provider interface {
	// Name tags answers with their origin ("ollama", "openai", "gemini")
	Name() string
	Generate(ctx context.Context, question string, docContext string, messageHistory []string) (string, error)
}
