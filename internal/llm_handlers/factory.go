package llmHandlers

import (
	"context"
	"fmt"
	"os"
)

type Provider string

const (
	ProviderOpenAI          Provider = "openai"
	ProviderGroq            Provider = "groq"
	ProviderGemini          Provider = "gemini"
	ProviderVertexAnthropic Provider = "vertex_anthropic"
)

// NewLLMClient builds a chat client for the named provider. Credentials and
// model ids come from the environment.
func NewLLMClient(ctx context.Context, kind string) (Client, error) {
	switch Provider(kind) {
	case ProviderOpenAI:
		return NewLangChainClient(LangChainConfig{
			Model:  envOr("OPENAI_MODEL_NAME", "gpt-4.1-mini"),
			APIKey: os.Getenv("OPENAI_API_KEY"),
		})
	case ProviderGroq:
		return NewLangChainClient(LangChainConfig{
			Model:   os.Getenv("GROQ_MODEL_NAME"),
			BaseURL: os.Getenv("GROQ_BASE_URL"),
			APIKey:  os.Getenv("GROQ_API_KEY"),
		})
	case ProviderGemini:
		return NewGenaiGeminiClient(ctx)
	case ProviderVertexAnthropic:
		return NewVertexAnthropicClient(), nil
	default:
		return nil, fmt.Errorf("unknown provider %s", kind)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
