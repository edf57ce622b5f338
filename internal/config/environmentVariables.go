package config

import (
	"log/slog"
	"os"
	"time"
)

const (
	IS_PROD                         = false
	LOG_LEVEL_PROD                  = slog.LevelInfo
	FALLBACK_REDIS_TO_INTERNALSTORE = true //if redis init fails, it falls back to an internal in-memory store
	TRACE_ID_KEY                    = "traceId"
	RATE_LIMIT_PER_SECOND           = 2
	BURST_RATE_LIMIT_PER_SECOND     = 5

	RequestsPerNewWorkerCount int64 = 10
	MaxWorkerCount            int64 = 10
	MinWorkerCount            int64 = 1
	IdleWorkerTimeout               = 1 * time.Minute

	//serverTimeouts
	ReadTimeout            = 5 * time.Second
	WriteTimeout           = 10 * time.Second
	IdleTimeout            = 120 * time.Second
	ShutdownContextTimeout = 10 * time.Second

	//server listening port
	ServerListenAddr = ":3000"

	//job requests buffer limit
	BufferLimit = 100

	//uploads
	MaxUploadSize   = 32 << 20 //32mb
	UploadFormField = "documents"

	//question answering
	//below this confidence the rule answer is handed to the model provider, if one is configured
	ModelConfidenceThreshold = 0.6
	QuestionTimeout          = 30 * time.Second
	ExtractTimeout           = 60 * time.Second
	PageExtractTimeout       = 10 * time.Second

	//model providers: "ollama" (default), "openai", "gemini" or "" for rules only
	DefaultProvider = "ollama"

	OllamaURL       = "http://localhost:11434/api/generate"
	OllamaModel     = "llama2"
	OllamaMaxTokens = 512

	OpenAICompatibleURL = "http://localhost:11434/v1"
	OpenAIModelName     = "llama2"

	GeminiModelName = "gemini-2.5-flash-lite-preview-09-2025"

	ModelTemperature float32 = 0.2
	ModelContext             = "You are a financial assistant. Answer clearly and concisely using only the document summary. If the answer is not in the documents, say you couldn't find it."

	MaxIdleConns        = 50
	MaxIdleConnsPerHost = 25
	IdleConnTimeout     = 60 * time.Second

	//auth
	NoAuthBypass = true //local tool, no token required by default
	AuthToken    = ""

	//redis
	redisHost = "127.0.0.1"
	redisPort = "6379"
	RedisAddr = redisHost + ":" + redisPort

	RedisPassword = ""

	//redis has 16 DB we can use
	RedisJobStore     = 0
	RedisSessionStore = 1

	//redis timeouts - a session and its jobs outlive a browser tab, not a day
	RedisJobStoreTTL     = 24 * time.Hour
	RedisSessionStoreTTL = 24 * time.Hour
)

// env overrides for the knobs that differ between laptop and container
func Getenv(key string, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
