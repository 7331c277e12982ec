package config

import (
	"github.com/JaimeStill/neurocore/internal/llm"
	"github.com/JaimeStill/neurocore/pkg/database"
	"github.com/JaimeStill/neurocore/pkg/logging"
	"github.com/JaimeStill/neurocore/pkg/middleware"
	"github.com/JaimeStill/neurocore/pkg/tmdb"
)

var databaseEnv = &database.Env{
	Host:            "DATABASE_HOST",
	Port:            "DATABASE_PORT",
	Name:            "DATABASE_NAME",
	User:            "DATABASE_USER",
	Password:        "DATABASE_PASSWORD",
	MaxOpenConns:    "DATABASE_MAX_OPEN_CONNS",
	MaxIdleConns:    "DATABASE_MAX_IDLE_CONNS",
	ConnMaxLifetime: "DATABASE_CONN_MAX_LIFETIME",
	ConnTimeout:     "DATABASE_CONN_TIMEOUT",
	SSLMode:         "DATABASE_SSL_MODE",
}

var loggingEnv = &logging.Env{
	Level:  "LOGGING_LEVEL",
	Format: "LOGGING_FORMAT",
}

var corsEnv = &middleware.CORSEnv{
	Enabled:          "CORS_ENABLED",
	Origins:          "CORS_ORIGINS",
	AllowedMethods:   "CORS_ALLOWED_METHODS",
	AllowedHeaders:   "CORS_ALLOWED_HEADERS",
	AllowCredentials: "CORS_ALLOW_CREDENTIALS",
	MaxAge:           "CORS_MAX_AGE",
}

var authEnv = &middleware.AuthEnv{
	Secret:      "AUTH_SECRET",
	Issuer:      "AUTH_ISSUER",
	TrustHeader: "AUTH_TRUST_HEADER",
	Header:      "AUTH_HEADER",
}

var llmEnv = &llm.Env{
	Provider:    "LLM_PROVIDER",
	Model:       "LLM_MODEL",
	Temperature: "LLM_TEMPERATURE",
	MaxTokens:   "LLM_MAX_TOKENS",
	APIKey:      "GOOGLE_API_KEY",
	Timeout:     "LLM_TIMEOUT",
	Backend:     "LLM_BACKEND",
	BaseURL:     "LLM_BASE_URL",
}

var tmdbEnv = &tmdb.Env{
	BaseURL:  "TMDB_BASE_URL",
	APIKey:   "TMDB_API_KEY",
	Language: "TMDB_LANGUAGE",
	Timeout:  "TMDB_TIMEOUT",
}
