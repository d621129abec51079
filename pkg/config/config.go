package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Pipeline PipelineConfig
	GigaChat GigaChatConfig
	Logger   LoggerConfig
}

type LoggerConfig struct {
	Level string
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type PipelineConfig struct {
	// DefaultTopK is the result window when a request does not set one.
	DefaultTopK int
	// ReviewLimit caps how many reviews are fetched per candidate.
	ReviewLimit int
	// MaxConcurrentFetches bounds in-flight provider calls per request;
	// zero means unlimited.
	MaxConcurrentFetches int
}

type GigaChatConfig struct {
	APIKey             string
	Scope              string
	InsecureSkipVerify bool
	// PolishRationales enables LLM rewriting of the template rationales.
	// Off by default: the deterministic templates are the contract.
	PolishRationales bool
}

func Load() (*Config, error) {
	// Try to load .env from the working directory or the project root.
	// Missing files are fine; plain environment variables still apply.
	envFiles := []string{".env", "../.env", "../../.env"}
	for _, envFile := range envFiles {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}

	readTimeout, _ := strconv.Atoi(getEnv("SERVER_READ_TIMEOUT", "30"))
	writeTimeout, _ := strconv.Atoi(getEnv("SERVER_WRITE_TIMEOUT", "30"))
	topK, _ := strconv.Atoi(getEnv("PIPELINE_TOP_K", "5"))
	reviewLimit, _ := strconv.Atoi(getEnv("PIPELINE_REVIEW_LIMIT", "10"))
	maxFetches, _ := strconv.Atoi(getEnv("PIPELINE_MAX_CONCURRENT_FETCHES", "8"))

	return &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			ReadTimeout:  time.Duration(readTimeout) * time.Second,
			WriteTimeout: time.Duration(writeTimeout) * time.Second,
		},
		Pipeline: PipelineConfig{
			DefaultTopK:          topK,
			ReviewLimit:          reviewLimit,
			MaxConcurrentFetches: maxFetches,
		},
		GigaChat: GigaChatConfig{
			APIKey:             getEnv("GIGACHAT_API_KEY", ""),
			Scope:              getEnv("GIGACHAT_SCOPE", "GIGACHAT_API_PERS"),
			InsecureSkipVerify: getEnv("GIGACHAT_INSECURE_SKIP_VERIFY", "true") == "true",
			PolishRationales:   getEnv("GIGACHAT_POLISH_RATIONALES", "false") == "true",
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
