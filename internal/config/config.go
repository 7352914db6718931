package config

import (
	"fmt"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Wikipedia WikipediaConfig `mapstructure:"wikipedia"`
	OpenAI    OpenAIConfig    `mapstructure:"openai"`
	Summaries SummariesConfig `mapstructure:"summaries"`
	Export    ExportConfig    `mapstructure:"export"`
}

type ServerConfig struct {
	Port                   int        `mapstructure:"port" validate:"min=1,max=65535"`
	ShutdownTimeoutSeconds int        `mapstructure:"shutdown_timeout_seconds" validate:"min=0"`
	CORS                   CORSConfig `mapstructure:"cors"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type DatabaseConfig struct {
	Host            string            `mapstructure:"host" validate:"required"`
	Port            int               `mapstructure:"port" validate:"min=1,max=65535"`
	Database        string            `mapstructure:"database" validate:"required"`
	Username        string            `mapstructure:"username" validate:"required"`
	Password        string            `mapstructure:"password"`
	TLS             bool              `mapstructure:"tls"`
	Params          map[string]string `mapstructure:"params"`
	MaxOpenConns    int               `mapstructure:"max_open_conns"`
	MaxIdleConns    int               `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int               `mapstructure:"conn_max_lifetime_seconds"`
	AutoMigrate     bool              `mapstructure:"auto_migrate"`
}

type WikipediaConfig struct {
	BaseURL        string `mapstructure:"base_url" validate:"required,url"`
	UserAgent      string `mapstructure:"user_agent" validate:"required"`
	AcceptLanguage string `mapstructure:"accept_language"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" validate:"min=1"`
	MaxRedirects   int    `mapstructure:"max_redirects" validate:"min=0"`
	MaxRetries     uint   `mapstructure:"max_retries"`
}

func (c WikipediaConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

type OpenAIConfig struct {
	APIKey         string `mapstructure:"api_key"`
	Model          string `mapstructure:"model" validate:"required"`
	BaseURL        string `mapstructure:"base_url" validate:"required,url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" validate:"min=1"`
	MaxRetries     uint   `mapstructure:"max_retries"`
	// MaxInputChars truncates article text before it is sent. Zero disables truncation.
	MaxInputChars int `mapstructure:"max_input_chars" validate:"min=0"`
}

func (c OpenAIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

type SummariesConfig struct {
	DefaultWordCount int `mapstructure:"default_word_count" validate:"min=1"`
	MaxWordCount     int `mapstructure:"max_word_count" validate:"gtefield=DefaultWordCount"`
}

type ExportConfig struct {
	Directory string `mapstructure:"directory"`
}

type ConfigLoader struct {
	viper      *viper.Viper
	validator  *validator.Validate
	translator ut.Translator
}

func NewConfigLoader(configFile string) (*ConfigLoader, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create new validator: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/wikisum")
	}

	return &ConfigLoader{
		viper:      v,
		validator:  validate,
		translator: trans,
	}, nil
}

func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper

	v.SetDefault("server.port", 8000)
	v.SetDefault("server.shutdown_timeout_seconds", 10)
	v.SetDefault("server.cors.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.database", "wikisum")
	v.SetDefault("database.username", "wikisum")
	v.SetDefault("database.params", map[string]string{"charset": "utf8mb4"})
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime_seconds", 300)
	v.SetDefault("database.auto_migrate", true)
	v.SetDefault("wikipedia.base_url", "https://pt.wikipedia.org")
	v.SetDefault("wikipedia.user_agent", "Mozilla/5.0 (compatible; WikipediaFetcher/1.0; +https://example.com)")
	v.SetDefault("wikipedia.accept_language", "pt-BR,pt;q=0.9,en;q=0.8")
	v.SetDefault("wikipedia.timeout_seconds", 15)
	v.SetDefault("wikipedia.max_redirects", 10)
	v.SetDefault("wikipedia.max_retries", 2)
	v.SetDefault("openai.model", "gpt-4o-mini")
	v.SetDefault("openai.base_url", "https://api.openai.com/v1")
	v.SetDefault("openai.timeout_seconds", 60)
	v.SetDefault("openai.max_retries", 2)
	v.SetDefault("openai.max_input_chars", 48000)
	v.SetDefault("summaries.default_word_count", 150)
	v.SetDefault("summaries.max_word_count", 1000)
	v.SetDefault("export.directory", "exports")

	// Bind OpenAI config to environment variables only (not from config file)
	if err := v.BindEnv("openai.api_key", "OPENAI_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind OPENAI_API_KEY environment variable: %w", err)
	}
	if err := v.BindEnv("openai.model", "OPENAI_MODEL"); err != nil {
		return nil, fmt.Errorf("failed to bind OPENAI_MODEL environment variable: %w", err)
	}

	if err := v.BindEnv("database.password", "DB_PASSWORD"); err != nil {
		return nil, fmt.Errorf("failed to bind DB_PASSWORD environment variable: %w", err)
	}
	// docker-compose points the service at the database container by name
	if err := v.BindEnv("database.host", "WIKISUM_DB_HOST"); err != nil {
		return nil, fmt.Errorf("failed to bind WIKISUM_DB_HOST environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := loader.validator.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %s", TranslateError(err, loader.translator))
	}

	return &cfg, nil
}
