package config

import (
	"errors"
	"io/fs"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Port         string `yaml:"port"`
	Store        string `yaml:"store"` // sqlite | mongo
	DBDSN        string `yaml:"db_dsn"`
	MongoURI     string `yaml:"mongo_uri"`
	MongoDB      string `yaml:"mongo_db"`
	MongoTx      bool   `yaml:"mongo_tx"`
	LogFile      string `yaml:"log_file"`
	TemplatesDir string `yaml:"templates_dir"`
	StaticDir    string `yaml:"static_dir"`
	CSRF         bool   `yaml:"csrf"`
}

func defaults() Config {
	return Config{
		Port:         "8080",
		Store:        "sqlite",
		DBDSN:        "wanderlust.db", // sqlite file in project root
		MongoURI:     "mongodb://127.0.0.1:27017",
		MongoDB:      "wanderlust",
		TemplatesDir: "./web/templates",
		StaticDir:    "./web/static",
		CSRF:         true,
	}
}

// Load builds the config from defaults, then the YAML file named by
// CONFIG_FILE (default wanderlust.yaml, skipped if absent), then environment
// variables. A .env file in the working directory is loaded first.
func Load() Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("[config] .env: %v", err)
	}

	cfg := defaults()
	path := os.Getenv("CONFIG_FILE")
	if path == "" {
		path = "wanderlust.yaml"
	}
	if err := loadFile(path, &cfg); err != nil {
		log.Printf("[config] %s: %v", path, err)
	}
	applyEnv(&cfg)

	log.Printf("[config] PORT=%s STORE=%s DB_DSN=%s MONGO_DB=%s MONGO_TX=%t LOG_FILE=%s CSRF=%t",
		cfg.Port, cfg.Store, cfg.DBDSN, cfg.MongoDB, cfg.MongoTx, cfg.LogFile, cfg.CSRF)
	return cfg
}

func loadFile(path string, cfg *Config) error {
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	return yaml.Unmarshal(b, cfg)
}

func applyEnv(cfg *Config) {
	str := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	flag := func(key string, dst *bool) {
		if v := os.Getenv(key); v != "" {
			if b, err := strconv.ParseBool(v); err == nil {
				*dst = b
			}
		}
	}
	str("PORT", &cfg.Port)
	str("STORE", &cfg.Store)
	str("DB_DSN", &cfg.DBDSN)
	str("MONGO_URI", &cfg.MongoURI)
	str("MONGO_DB", &cfg.MongoDB)
	flag("MONGO_TX", &cfg.MongoTx)
	str("LOG_FILE", &cfg.LogFile)
	str("TEMPLATES_DIR", &cfg.TemplatesDir)
	str("STATIC_DIR", &cfg.StaticDir)
	flag("CSRF", &cfg.CSRF)
}
