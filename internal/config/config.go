package config

import (
	"strconv"

	"github.com/spf13/viper"
)

type Config struct {
	Port            int
	LogLevel        string
	Provider        string
	AnthropicAPIKey string
	AnthropicModel  string
	OpenAIAPIKey    string
	OpenAIBaseURL   string
	OpenAIModel     string
	NatsURL         string
	NatsToken       string
	CatalogPath     string
	APIToken        string
}

var defaults = map[string]string{
	"NARRATOR_PORT":     "8760",
	"LOG_LEVEL":         "info",
	"NARRATOR_PROVIDER": "anthropic",
	"NARRATOR_MODEL":    "claude-sonnet-4-20250514",
	"OPENAI_MODEL":      "gemini-3-flash-preview",
}

// Load reads configuration from the environment. Unset or empty variables
// take their defaults.
func Load() Config {
	v := viper.New()
	v.AutomaticEnv()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	return Config{
		Port:            envInt(v, "NARRATOR_PORT", 8760),
		LogLevel:        v.GetString("LOG_LEVEL"),
		Provider:        v.GetString("NARRATOR_PROVIDER"),
		AnthropicAPIKey: v.GetString("ANTHROPIC_API_KEY"),
		AnthropicModel:  v.GetString("NARRATOR_MODEL"),
		OpenAIAPIKey:    v.GetString("OPENAI_API_KEY"),
		OpenAIBaseURL:   v.GetString("OPENAI_BASE_URL"),
		OpenAIModel:     v.GetString("OPENAI_MODEL"),
		NatsURL:         v.GetString("NATS_URL"),
		NatsToken:       v.GetString("NATS_TOKEN"),
		CatalogPath:     v.GetString("CATALOG_PATH"),
		APIToken:        v.GetString("NARRATOR_API_TOKEN"),
	}
}

func envInt(v *viper.Viper, key string, fallback int) int {
	if s := v.GetString(key); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			return n
		}
	}
	return fallback
}
