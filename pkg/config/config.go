package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var ErrInvalidKnowledgeSource = errors.New("invalid knowledge source")

type KnowledgeSource string

const (
	KnowledgeSourceFile     KnowledgeSource = "file"
	KnowledgeSourcePostgres KnowledgeSource = "postgres"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Admin     AdminConfig
	Knowledge KnowledgeConfig
	QA        QAConfig
	Logger    LoggerConfig
}

type LoggerConfig struct {
	Level string
	Debug bool
}

type ServerConfig struct {
	Port             string
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	CORSAllowOrigins string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
	MaxConns int32
}

// JWTConfig holds token signing settings. When JWT_SECRET_KEY is unset a
// random per-process secret is generated and SecretGenerated is true.
type JWTConfig struct {
	SecretKey       string
	SecretGenerated bool
	Expiration      time.Duration
	RefreshExp      time.Duration
}

// AdminConfig holds the single administrator account. PasswordHash is a
// bcrypt hash; an empty hash disables admin login.
type AdminConfig struct {
	Username     string
	PasswordHash string
}

type KnowledgeConfig struct {
	Source KnowledgeSource
	Path   string
	Watch  bool
}

type QAConfig struct {
	UseIndex bool
}

func Load() (*Config, error) {
	// .env is optional; plain environment variables work too
	for _, envFile := range []string{".env", "../.env", "../../.env"} {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}

	readTimeout := getInt("SERVER_READ_TIMEOUT", 30)
	writeTimeout := getInt("SERVER_WRITE_TIMEOUT", 30)
	jwtExp := getInt("JWT_EXPIRATION_HOURS", 24)
	refreshExp := getInt("JWT_REFRESH_EXPIRATION_HOURS", 168)
	maxConns := getInt("DB_MAX_CONNS", 4)

	source := KnowledgeSource(strings.ToLower(getEnv("KNOWLEDGE_SOURCE", string(KnowledgeSourceFile))))
	if source != KnowledgeSourceFile && source != KnowledgeSourcePostgres {
		return nil, fmt.Errorf("%w: %q (want %q or %q)", ErrInvalidKnowledgeSource, source, KnowledgeSourceFile, KnowledgeSourcePostgres)
	}

	secret, secretGenerated := getEnv("JWT_SECRET_KEY", ""), false
	if secret == "" {
		generated, err := randomSecret()
		if err != nil {
			return nil, err
		}
		secret, secretGenerated = generated, true
	}

	return &Config{
		Server: ServerConfig{
			Port:             getEnv("SERVER_PORT", "5000"),
			ReadTimeout:      time.Duration(readTimeout) * time.Second,
			WriteTimeout:     time.Duration(writeTimeout) * time.Second,
			CORSAllowOrigins: getEnv("CORS_ALLOW_ORIGINS", "*"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "college_qa"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			MaxConns: int32(maxConns),
		},
		JWT: JWTConfig{
			SecretKey:       secret,
			SecretGenerated: secretGenerated,
			Expiration:      time.Duration(jwtExp) * time.Hour,
			RefreshExp:      time.Duration(refreshExp) * time.Hour,
		},
		Admin: AdminConfig{
			Username:     getEnv("ADMIN_USERNAME", "admin"),
			PasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
		},
		Knowledge: KnowledgeConfig{
			Source: source,
			Path:   getEnv("KNOWLEDGE_BASE_PATH", "data/knowledge_base.json"),
			Watch:  getBool("KNOWLEDGE_WATCH", true),
		},
		QA: QAConfig{
			UseIndex: getBool("QA_USE_INDEX", false),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
			Debug: getBool("DEBUG", false),
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(getEnv(key, strconv.FormatBool(defaultValue)))
	if err != nil {
		return defaultValue
	}
	return value
}

// getInt falls back to the default when the value is not a positive integer.
func getInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(getEnv(key, strconv.Itoa(defaultValue)))
	if err != nil || value <= 0 {
		return defaultValue
	}
	return value
}

func randomSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate JWT secret: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
