package config

import (
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Service struct {
		DBPath  string `yaml:"db_path"`
		Workers int    `yaml:"workers"`
	} `yaml:"service"`
	AI struct {
		Provider string `yaml:"provider"` // "gemini" or "openai"
		Model    string `yaml:"model"`
		APIKey   string `yaml:"api_key"`
		BaseURL  string `yaml:"base_url"` // openai-compatible endpoints only
	} `yaml:"ai"`
	Stats struct {
		BaseURL string `yaml:"base_url"`
	} `yaml:"stats"`
}

func LoadConfig(path string) (*Config, error) {
	// 1. Load .env if exists
	_ = godotenv.Load()

	// 2. Load YAML config
	file, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(file, &cfg); err != nil {
		return nil, err
	}

	// 3. Override with Environment Variables if present
	if apiKey := os.Getenv("PUCKSIGHT_API_KEY"); apiKey != "" {
		cfg.AI.APIKey = apiKey
	}
	if provider := os.Getenv("PUCKSIGHT_AI_PROVIDER"); provider != "" {
		cfg.AI.Provider = provider
	}

	if cfg.Service.Workers <= 0 {
		cfg.Service.Workers = 2
	}

	return &cfg, nil
}
