// internal/config/config.go
package config

import "os"

type Config struct {
	Input struct {
		Default string `json:"default"`
	} `json:"input"`
	Rules struct {
		Path string `json:"path"`
	} `json:"rules"`
	Log struct {
		Level  string `json:"level"`
		Format string `json:"format"`
	} `json:"log"`
}

func Load() *Config {
	cfg := &Config{}

	// Input configuration
	cfg.Input.Default = getEnv("OATLEX_INPUT", "a.oat")

	// Rule set configuration; empty means the built-in Oat rules
	cfg.Rules.Path = getEnv("OATLEX_RULES", "")

	// Logging configuration
	cfg.Log.Level = getEnv("OATLEX_LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("OATLEX_LOG_FORMAT", "json")

	return cfg
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
