package llm

import "fmt"

// NewProvider creates a provider based on the configuration
func NewProvider(config Config) (Provider, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	switch config.Provider {
	case "openai":
		return NewOpenAIProvider(config)
	case "huggingface":
		return NewHuggingFaceProvider(config)
	default:
		return nil, fmt.Errorf("unknown provider: %s", config.Provider)
	}
}
