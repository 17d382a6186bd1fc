package config

import "os"

// Secrets come from the environment, never from source.
var (
	AuthToken             = os.Getenv("RAGD_AUTH_TOKEN")
	GoogleEmbeddingAPIKey = os.Getenv("GEMINI_API_KEY")
	OpenAIAPIKey          = os.Getenv("OPENAI_API_KEY")
)
