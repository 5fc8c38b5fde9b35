package config

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

const devSecretKey = "dev-secret-change-me"

type Config struct {
	Port      string `env:"PORT,       default=8080"`
	Env       string `env:"ENV,        default=development"`
	LogLevel  string `env:"LOG_LEVEL,  default=info"`
	SecretKey string `env:"SECRET_KEY"`
	StaticDir string `env:"STATIC_DIR, default=static"`

	Session    SessionConfig
	Storage    StorageConfig
	Classifier ClassifierConfig
	WordCloud  WordCloudConfig
	Mongo      MongoConfig
	Redis      RedisConfig
}

type SessionConfig struct {
	Store  string        `env:"SESSION_STORE,  default=memory"`
	TTL    time.Duration `env:"SESSION_TTL,    default=24h"`
	Cookie string        `env:"SESSION_COOKIE, default=session"`
}

type StorageConfig struct {
	Driver     string `env:"STORAGE_DRIVER, default=sqlite"`
	SQLitePath string `env:"SQLITE_PATH,    default=database.db"`
}

type ClassifierConfig struct {
	Embedder    string `env:"EMBEDDER,      default=hashing"`
	Dimensions  int    `env:"EMBEDDING_DIM, default=384"`
	ModelPath   string `env:"MODEL_PATH,    default=model/classifier.json"`
	OllamaURL   string `env:"OLLAMA_URL,    default=http://localhost:11434"`
	OllamaModel string `env:"OLLAMA_MODEL,  default=all-minilm"`
	GenAIAPIKey string `env:"GENAI_API_KEY"`
	GenAIModel  string `env:"GENAI_MODEL,   default=gemini-embedding-001"`
}

type WordCloudConfig struct {
	Path    string `env:"WORDCLOUD_PATH,    default=static/wordcloud.png"`
	Workers int    `env:"WORDCLOUD_WORKERS, default=2"`
}

type MongoConfig struct {
	URI         string `env:"MONGO_URI,           default=mongodb://localhost:27017"`
	Database    string `env:"MONGO_DB,            default=bullyguard"`
	MaxPoolSize uint64 `env:"MONGO_MAX_POOL_SIZE, default=50"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

// Load reads configuration from environment variables using go-envconfig and
// validates it.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if cfg.SecretKey == "" && !cfg.IsProduction() {
		cfg.SecretKey = devSecretKey
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) IsProduction() bool { return c.Env == "production" }

// Validate checks enum values and settings the selected backends depend on.
func (c *Config) Validate() error {
	if c.SecretKey == "" {
		return fmt.Errorf("SECRET_KEY is required in production")
	}

	switch c.Session.Store {
	case "memory", "redis", "jwt":
	default:
		return fmt.Errorf("SESSION_STORE must be one of memory, redis, jwt; got %q", c.Session.Store)
	}
	if c.Session.TTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}

	switch c.Storage.Driver {
	case "sqlite", "mongo":
	default:
		return fmt.Errorf("STORAGE_DRIVER must be one of sqlite, mongo; got %q", c.Storage.Driver)
	}

	switch c.Classifier.Embedder {
	case "hashing", "ollama":
	case "genai":
		if c.Classifier.GenAIAPIKey == "" {
			return fmt.Errorf("GENAI_API_KEY is required when EMBEDDER=genai")
		}
	default:
		return fmt.Errorf("EMBEDDER must be one of hashing, ollama, genai; got %q", c.Classifier.Embedder)
	}
	if c.Classifier.Dimensions <= 0 {
		return fmt.Errorf("EMBEDDING_DIM must be positive")
	}

	if _, err := c.WordCloudWebPath(); err != nil {
		return err
	}

	return nil
}

// WordCloudWebPath is the URL under /static at which WORDCLOUD_PATH is served.
// The image must live inside STATIC_DIR.
func (c *Config) WordCloudWebPath() (string, error) {
	rel, err := filepath.Rel(c.StaticDir, c.WordCloud.Path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("WORDCLOUD_PATH %q must be inside STATIC_DIR %q", c.WordCloud.Path, c.StaticDir)
	}
	return "/static/" + filepath.ToSlash(rel), nil
}
