package config

import (
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	MongoURI  string `yaml:"mongo_uri"`
	Database  string `yaml:"database"`
	RedisAddr string `yaml:"redis_addr"`
	HTTPPort  string `yaml:"http_port"`
}

// Load reads config.yaml when present, then lets environment variables
// override individual values, then fills remaining gaps with defaults.
func Load() *Config {
	cfg := &Config{}

	configPath := "config.yaml"
	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		configPath = envPath
	}
	if data, err := os.ReadFile(configPath); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			log.Fatalf("Error parsing %s: %v", configPath, err)
		}
		log.Printf("Loaded config from %s", configPath)
	}

	overrideEnv(&cfg.MongoURI, "MONGO_URI")
	overrideEnv(&cfg.Database, "MONGO_DATABASE")
	overrideEnv(&cfg.RedisAddr, "REDIS_ADDR")
	overrideEnv(&cfg.HTTPPort, "HTTP_PORT")

	setDefault(&cfg.MongoURI, "mongodb://localhost:27017")
	setDefault(&cfg.Database, "sentimark")
	setDefault(&cfg.RedisAddr, "localhost:6379")
	setDefault(&cfg.HTTPPort, "8080")

	return cfg
}

func overrideEnv(field *string, key string) {
	if val := os.Getenv(key); val != "" {
		*field = val
	}
}

func setDefault(field *string, defaultVal string) {
	if *field == "" {
		*field = defaultVal
	}
}
