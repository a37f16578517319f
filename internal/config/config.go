package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DBDriver        string
	DBHost          string
	DBPort          string
	DBUser          string
	DBPassword      string
	DBName          string
	RedisHost       string
	RedisPort       string
	SessionSecret   string
	GinMode         string
	ServerPort      string
	UploadDir       string
	RecaptchaSecret string
	GoogleClientID  string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	return &Config{
		DBDriver:        getEnv("DB_DRIVER", "mysql"),
		DBHost:          getEnv("DB_HOST", "localhost"),
		DBPort:          getEnv("DB_PORT", "3306"),
		DBUser:          getEnv("DB_USER", "taskboard"),
		DBPassword:      getEnv("DB_PASSWORD", "taskboard"),
		DBName:          getEnv("DB_NAME", "taskboard"),
		RedisHost:       getEnv("REDIS_HOST", "localhost"),
		RedisPort:       getEnv("REDIS_PORT", "6379"),
		SessionSecret:   getEnv("SESSION_SECRET", "default-secret-key-change-me"),
		GinMode:         getEnv("GIN_MODE", "debug"),
		ServerPort:      getEnv("PORT", "5001"),
		UploadDir:       getEnv("UPLOAD_DIR", "./uploads"),
		RecaptchaSecret: getEnv("RECAPTCHA_SECRET", ""),
		GoogleClientID:  getEnv("GOOGLE_CLIENT_ID", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
