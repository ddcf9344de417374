package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	PostgresURL string
	MongoURL    string
	DBType      string
	Port        string

	// SecretKey signs session tokens; BcryptCost and TokenTTL are fixed
	// for the lifetime of the process. Loaded once here and passed to the
	// credential services at construction.
	SecretKey  string
	TokenTTL   time.Duration
	BcryptCost int

	R2Bucket          string
	R2AccountID       string
	R2PublicURL       string
	R2AccessKeyID     string
	R2SecretAccessKey string
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg := &Config{
		PostgresURL: os.Getenv("POSTGRES_URL"),
		MongoURL:    os.Getenv("MONGO_URL"),
		DBType:      os.Getenv("DB_TYPE"),
		Port:        os.Getenv("PORT"),

		SecretKey: os.Getenv("SECRET_KEY"),

		R2Bucket:          os.Getenv("R2_BUCKET"),
		R2AccountID:       os.Getenv("R2_ACCOUNT_ID"),
		R2PublicURL:       os.Getenv("R2_PUBLIC_URL"),
		R2AccessKeyID:     os.Getenv("R2_ACCESS_KEY_ID"),
		R2SecretAccessKey: os.Getenv("R2_SECRET_ACCESS_KEY"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.SecretKey == "" {
		log.Println("SECRET_KEY not set, using insecure development key")
		cfg.SecretKey = "dev-secret-change-me"
	}

	cfg.TokenTTL = 24 * time.Hour
	if v := os.Getenv("TOKEN_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			log.Printf("invalid TOKEN_TTL %q, keeping default: %v", v, err)
		} else {
			cfg.TokenTTL = ttl
		}
	}

	if v := os.Getenv("BCRYPT_COST"); v != "" {
		cost, err := strconv.Atoi(v)
		if err != nil {
			log.Printf("invalid BCRYPT_COST %q, keeping default: %v", v, err)
		} else {
			cfg.BcryptCost = cost
		}
	}

	return cfg
}
