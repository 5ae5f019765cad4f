package config

import (
	"time"

	"github.com/caarlos0/env/v10"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort     string        `env:"HTTP_PORT" envDefault:"8080"`
	LLMProvider  string        `env:"LLM_PROVIDER" envDefault:"gemini"`
	GoogleAPIKey string        `env:"GOOGLE_API_KEY"`
	LLMAPIKey    string        `env:"LLM_API_KEY"`
	LLMBaseURL   string        `env:"LLM_BASE_URL" envDefault:"https://api.openai.com/v1"`
	LLMModel     string        `env:"LLM_MODEL"`
	LLMTimeout   time.Duration `env:"LLM_TIMEOUT" envDefault:"60s"`
}

// APIKey devuelve la credencial del proveedor seleccionado. Vacia si no hay.
func (c *Config) APIKey() string {
	if c.LLMProvider == ProviderOpenAI {
		return c.LLMAPIKey
	}
	return c.GoogleAPIKey
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ClientConfig configura el consumidor del stream (CLI).
type ClientConfig struct {
	ChatAPIURL string `env:"CHAT_API_URL" envDefault:"http://localhost:8080/api/chat"`
}

// LoadClientConfig carga la configuración del cliente desde variables de entorno.
func LoadClientConfig() (*ClientConfig, error) {
	var cfg ClientConfig
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
