package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Cohere    CohereConfig
	Pinecone  PineconeConfig
	Anthropic AnthropicConfig
	Slack     SlackConfig
	RAG       RAGConfig
	Upload    UploadConfig
	Logger    LoggerConfig
}

type LoggerConfig struct {
	Level string
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type JWTConfig struct {
	SecretKey  string
	Expiration time.Duration
}

type CohereConfig struct {
	APIKey    string
	Model     string
	Dimension int
}

type PineconeConfig struct {
	APIKey    string
	IndexHost string
}

type AnthropicConfig struct {
	APIKey    string
	Model     string
	MaxTokens int
}

type SlackConfig struct {
	Timeout time.Duration
}

type RAGConfig struct {
	TopK         int
	ChunkSize    int
	HistoryLimit int
}

type UploadConfig struct {
	MaxFileSize int64
}

func Load() (*Config, error) {
	// Try to load .env file from current directory or project root
	envFiles := []string{".env", "../.env", "../../.env"}
	for _, envFile := range envFiles {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}
	// No .env file is fine: plain environment variables are used directly
	// (Docker/K8s deployments).

	readTimeout, _ := strconv.Atoi(getEnv("SERVER_READ_TIMEOUT", "30"))
	writeTimeout, _ := strconv.Atoi(getEnv("SERVER_WRITE_TIMEOUT", "30"))
	jwtExp, _ := strconv.Atoi(getEnv("JWT_EXPIRATION_HOURS", "720"))
	embedDim, _ := strconv.Atoi(getEnv("COHERE_EMBED_DIMENSION", "1024"))
	maxTokens, _ := strconv.Atoi(getEnv("ANTHROPIC_MAX_TOKENS", "200"))
	slackTimeout, _ := strconv.Atoi(getEnv("SLACK_TIMEOUT_SECONDS", "5"))
	topK, _ := strconv.Atoi(getEnv("RAG_TOP_K", "3"))
	chunkSize, _ := strconv.Atoi(getEnv("RAG_CHUNK_SIZE", "500"))
	historyLimit, _ := strconv.Atoi(getEnv("RAG_HISTORY_LIMIT", "10"))
	maxFileSize, _ := strconv.ParseInt(getEnv("UPLOAD_MAX_FILE_SIZE", "10485760"), 10, 64)

	return &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			ReadTimeout:  time.Duration(readTimeout) * time.Second,
			WriteTimeout: time.Duration(writeTimeout) * time.Second,
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "chatdesk"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		JWT: JWTConfig{
			SecretKey:  getEnv("JWT_SECRET_KEY", "your-secret-key-change-in-production"),
			Expiration: time.Duration(jwtExp) * time.Hour,
		},
		Cohere: CohereConfig{
			APIKey:    getEnv("COHERE_API_KEY", ""),
			Model:     getEnv("COHERE_EMBED_MODEL", "embed-english-v3.0"),
			Dimension: embedDim,
		},
		Pinecone: PineconeConfig{
			APIKey:    getEnv("PINECONE_API_KEY", ""),
			IndexHost: getEnv("PINECONE_INDEX_HOST", ""),
		},
		Anthropic: AnthropicConfig{
			APIKey:    getEnv("ANTHROPIC_API_KEY", ""),
			Model:     getEnv("ANTHROPIC_MODEL", "claude-3-5-sonnet-20241022"),
			MaxTokens: maxTokens,
		},
		Slack: SlackConfig{
			Timeout: time.Duration(slackTimeout) * time.Second,
		},
		RAG: RAGConfig{
			TopK:         topK,
			ChunkSize:    chunkSize,
			HistoryLimit: historyLimit,
		},
		Upload: UploadConfig{
			MaxFileSize: maxFileSize,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
