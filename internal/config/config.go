package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino/components/model"
)

// Config aggregates the service configuration.
type Config struct {
	Server  ServerConfig
	AI      AIConfig
	Store   StoreConfig
	Session SessionConfig
}

// Load reads the configuration from environment variables.
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	ai, err := loadAIConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Server:  server,
		AI:      ai,
		Store:   loadStoreConfig(),
		Session: loadSessionConfig(),
	}, nil
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Addr string
}

func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	if strings.Contains(port, ":") {
		// Accept ":8080" or "127.0.0.1:8080" as-is.
		return ServerConfig{Addr: port}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port}, nil
}

// AIConfig describes the Ark model used for text generation.
type AIConfig struct {
	APIKey         string
	AccessKey      string
	SecretKey      string
	Model          string
	BaseURL        string
	Region         string
	Temperature    *float64
	TopP           *float64
	MaxTokens      *int
	RequestTimeout time.Duration
}

// Enabled reports whether the required credentials are present.
func (c AIConfig) Enabled() bool {
	return c.Model != "" && (c.APIKey != "" || (c.AccessKey != "" && c.SecretKey != ""))
}

// NewChatModel builds an Ark chat model from the configuration.
func (c AIConfig) NewChatModel(ctx context.Context) (model.ChatModel, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("ark credentials or model missing: provide ARK_API_KEY + ARK_MODEL or an AK/SK pair")
	}

	var temperature *float32
	if c.Temperature != nil {
		val := float32(*c.Temperature)
		temperature = &val
	}

	var topP *float32
	if c.TopP != nil {
		val := float32(*c.TopP)
		topP = &val
	}

	cfg := &ark.ChatModelConfig{
		BaseURL:     c.BaseURL,
		Region:      c.Region,
		APIKey:      c.APIKey,
		AccessKey:   c.AccessKey,
		SecretKey:   c.SecretKey,
		Model:       c.Model,
		MaxTokens:   c.MaxTokens,
		Temperature: temperature,
		TopP:        topP,
	}

	return ark.NewChatModel(ctx, cfg)
}

func loadAIConfig() (AIConfig, error) {
	temperature, err := parseOptionalFloatEnv("ARK_TEMPERATURE")
	if err != nil {
		return AIConfig{}, err
	}

	topP, err := parseOptionalFloatEnv("ARK_TOP_P")
	if err != nil {
		return AIConfig{}, err
	}

	maxTokens, err := parseOptionalIntEnv("ARK_MAX_TOKENS")
	if err != nil {
		return AIConfig{}, err
	}

	timeoutSeconds := 30
	if override, err := parseOptionalIntEnv("AI_REQUEST_TIMEOUT"); err != nil {
		return AIConfig{}, err
	} else if override != nil && *override > 0 {
		timeoutSeconds = *override
	}

	return AIConfig{
		APIKey:         strings.TrimSpace(os.Getenv("ARK_API_KEY")),
		AccessKey:      strings.TrimSpace(os.Getenv("ARK_ACCESS_KEY")),
		SecretKey:      strings.TrimSpace(os.Getenv("ARK_SECRET_KEY")),
		Model:          strings.TrimSpace(os.Getenv("ARK_MODEL")),
		BaseURL:        getEnvOrDefault("ARK_BASE_URL", "https://ark.cn-beijing.volces.com/api/v3"),
		Region:         getEnvOrDefault("ARK_REGION", "cn-beijing"),
		Temperature:    temperature,
		TopP:           topP,
		MaxTokens:      maxTokens,
		RequestTimeout: time.Duration(timeoutSeconds) * time.Second,
	}, nil
}

// StoreConfig describes the record store database.
type StoreConfig struct {
	Path string
}

func loadStoreConfig() StoreConfig {
	return StoreConfig{
		Path: getEnvOrDefault("NEXA_DB_PATH", "nexa.db"),
	}
}

// SessionConfig pins the identity the backend serves. An empty value models
// the signed-out state.
type SessionConfig struct {
	UserID string
}

func loadSessionConfig() SessionConfig {
	return SessionConfig{
		UserID: strings.TrimSpace(os.Getenv("NEXA_USER_ID")),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseOptionalFloatEnv(key string) (*float64, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}
