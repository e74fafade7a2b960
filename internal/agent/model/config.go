package model

// ================ Config ================

type SessionConfig struct {
	Timeout        string `envconfig:"SESSION_TIMEOUT" default:"1h"`
	MaxSteps       int    `envconfig:"SESSION_MAX_STEPS" default:"10"`
	RecursionLimit int    `envconfig:"SESSION_RECURSION_LIMIT" default:"50"`
}

type CompletionConfig struct {
	Provider    string  `envconfig:"COMPLETION_PROVIDER" default:"gemini"`
	Model       string  `envconfig:"COMPLETION_MODEL" default:"gemini-2.5-flash-lite"`
	MaxTokens   int     `envconfig:"COMPLETION_MAX_TOKENS" default:"1000"`
	Temperature float32 `envconfig:"COMPLETION_TEMPERATURE" default:"0.3"`
	Timeout     string  `envconfig:"COMPLETION_TIMEOUT" default:"30s"`
}

type ServerConfig struct {
	Host string `envconfig:"SERVER_HOST" default:"127.0.0.1"`
	Port int    `envconfig:"SERVER_PORT" default:"8000"`
}
