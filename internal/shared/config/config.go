package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	Env         string
	DatabaseURL string
	SQLitePath  string
	UploadDir   string

	// LLM settings (OpenAI-compatible endpoint)
	OpenAIKey  string
	OpenAIBase string
	LLMModel   string

	// OCR settings. The key/base/model fields fall back to the LLM
	// values when unset so a single endpoint can serve both.
	OCRProvider  string
	OCRLanguages string
	OCRAPIKey    string
	OCRAPIBase   string
	OCRModel     string
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ .env file not found, using system environment variables")
	}

	cfg := &Config{
		Port:         os.Getenv("PORT"),
		Env:          os.Getenv("ENV"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		SQLitePath:   os.Getenv("SQLITE_PATH"),
		UploadDir:    os.Getenv("UPLOAD_DIR"),
		OpenAIKey:    os.Getenv("OPENAI_API_KEY"),
		OpenAIBase:   os.Getenv("OPENAI_API_BASE"),
		LLMModel:     os.Getenv("LLM_MODEL"),
		OCRProvider:  os.Getenv("OCR_PROVIDER"),
		OCRLanguages: os.Getenv("OCR_LANGUAGES"),
		OCRAPIKey:    os.Getenv("OCR_API_KEY"),
		OCRAPIBase:   os.Getenv("OCR_API_BASE"),
		OCRModel:     os.Getenv("OCR_MODEL"),
	}

	// Default values
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.Env == "" {
		cfg.Env = "development"
	}
	if cfg.SQLitePath == "" {
		cfg.SQLitePath = "qsnap.db"
	}
	if cfg.UploadDir == "" {
		cfg.UploadDir = "static/uploads"
	}
	if cfg.LLMModel == "" {
		cfg.LLMModel = "deepseek-ai/DeepSeek-V3"
	}
	if cfg.OCRProvider == "" {
		cfg.OCRProvider = "tesseract"
	}
	if cfg.OCRLanguages == "" {
		cfg.OCRLanguages = "chi_sim+eng"
	}

	// OCR endpoint falls back to the general LLM endpoint
	if cfg.OCRAPIKey == "" {
		cfg.OCRAPIKey = cfg.OpenAIKey
	}
	if cfg.OCRAPIBase == "" {
		cfg.OCRAPIBase = cfg.OpenAIBase
	}
	if cfg.OCRModel == "" {
		cfg.OCRModel = cfg.LLMModel
	}

	return cfg
}
