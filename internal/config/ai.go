package config

import "time"

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

type AI struct {
	Provider      string `env:"AI_PROVIDER" envDefault:"gemini" validate:"oneof=gemini openai"`
	GoogleAPIKey  string `env:"GOOGLE_API_KEY"`
	GeminiModel   string `env:"AI_GEMINI_MODEL" envDefault:"gemini-1.5-flash-latest"`
	OpenAIAPIKey  string `env:"OPENAI_API_KEY"`
	OpenAIModel   string `env:"AI_OPENAI_MODEL" envDefault:"gpt-3.5-turbo"`
	OpenAIBaseURL string `env:"AI_OPENAI_BASE_URL"`
	// FinetunedModel is the model of the fine-tuned analysis endpoint, disabled when empty
	FinetunedModel string        `env:"AI_FINETUNED_MODEL"`
	RequestTimeout time.Duration `env:"AI_REQUEST_TIMEOUT" envDefault:"2m" validate:"min=1s"`
}

// APIKey returns the key of the selected provider
func (a AI) APIKey() string {
	if a.Provider == ProviderOpenAI {
		return a.OpenAIAPIKey
	}

	return a.GoogleAPIKey
}
