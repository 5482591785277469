package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type envConfig struct {
	APP_PORT      string
	MONGO_URI     string
	MONGO_DB      string
	JWT_SECRET    string
	LOG_FILE_PATH string
	CORS_ORIGINS  string
}

// DefaultEnvConfig holds the resolved runtime configuration. Populated by
// LoadEnvConfig; zero values mean "use the built-in default".
var DefaultEnvConfig envConfig

// fileConfig mirrors the optional config.yaml overlay. Environment variables
// win over file values.
type fileConfig struct {
	Port     string `yaml:"port"`
	MongoURI string `yaml:"mongo_uri"`
	MongoDB  string `yaml:"mongo_db"`
	LogFile  string `yaml:"log_file"`
	CORS     string `yaml:"cors_origins"`
}

// LoadEnvConfig reads .env (if present), the optional config.yaml overlay, and
// the process environment into DefaultEnvConfig.
func LoadEnvConfig() error {
	// .env is optional; absence is not an error.
	_ = godotenv.Load()

	var fc fileConfig
	if data, err := os.ReadFile("config.yaml"); err == nil {
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return fmt.Errorf("failed to parse config.yaml: %w", err)
		}
	}

	DefaultEnvConfig = envConfig{
		APP_PORT:      firstNonEmpty(os.Getenv("APP_PORT"), fc.Port, "8080"),
		MONGO_URI:     firstNonEmpty(os.Getenv("MONGO_URI"), fc.MongoURI, "mongodb://localhost:27017"),
		MONGO_DB:      firstNonEmpty(os.Getenv("MONGO_DB"), fc.MongoDB, "taskplanner"),
		JWT_SECRET:    os.Getenv("JWT_SECRET"),
		LOG_FILE_PATH: firstNonEmpty(os.Getenv("LOG_FILE_PATH"), fc.LogFile),
		CORS_ORIGINS:  firstNonEmpty(os.Getenv("CORS_ORIGINS"), fc.CORS),
	}

	if DefaultEnvConfig.JWT_SECRET == "" {
		return fmt.Errorf("JWT_SECRET must be set")
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
