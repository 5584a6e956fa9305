package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/nuclralert-dashboard/internal/pkg/validator"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Backend  BackendConfig  `mapstructure:"backend"`
	Session  SessionConfig  `mapstructure:"session"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Notifier NotifierConfig `mapstructure:"notifier"`
	Log      LogConfig      `mapstructure:"log"`
	Content  ContentConfig  `mapstructure:"content"`
}

type ServerConfig struct {
	Host string `mapstructure:"API_HOST"`
	Port int    `mapstructure:"API_PORT" validate:"gte=1,lte=65535"`
	Env  string `mapstructure:"API_ENV" validate:"oneof=development production test"`

	// CORSOrigins - список origin через запятую для JSON API
	CORSOrigins string `mapstructure:"CORS_ALLOW_ORIGINS" validate:"required,excludes=*"`
}

type BackendConfig struct {
	BaseURL    string        `mapstructure:"API_BASE" validate:"required,url"`
	LoadMethod string        `mapstructure:"BACKEND_LOAD_METHOD" validate:"oneof=GET POST"`
	MapPath    string        `mapstructure:"BACKEND_MAP_PATH" validate:"required,startswith=/"`
	Timeout    time.Duration `mapstructure:"BACKEND_TIMEOUT" validate:"gt=0"`
}

type SessionConfig struct {
	CookieName string        `mapstructure:"SESSION_COOKIE"`
	TTL        time.Duration `mapstructure:"SESSION_TTL" validate:"gt=0"`
	Store      string        `mapstructure:"STATE_STORE" validate:"oneof=memory redis"`

	// StaleLoadingAfter - через сколько зависшая загрузка перезапускается при входе
	StaleLoadingAfter time.Duration `mapstructure:"STALE_LOADING_AFTER" validate:"gt=0"`
}

type RedisConfig struct {
	Host     string `mapstructure:"REDIS_HOST"`
	Port     int    `mapstructure:"REDIS_PORT" validate:"gte=0,lte=65535"`
	Password string `mapstructure:"REDIS_PASSWORD"`
	DB       int    `mapstructure:"REDIS_DB" validate:"gte=0"`
}

type NotifierConfig struct {
	Kind         string   `mapstructure:"NOTIFIER" validate:"oneof=none redis kafka"`
	AlertStream  string   `mapstructure:"ALERT_STREAM"`
	KafkaBrokers []string `mapstructure:"KAFKA_BROKERS"`
	KafkaTopic   string   `mapstructure:"KAFKA_ALERT_TOPIC"`
	QueueSize    int      `mapstructure:"ALERT_QUEUE_SIZE" validate:"gt=0"`
}

type LogConfig struct {
	Level string `mapstructure:"LOG_LEVEL" validate:"oneof=debug info warn error"`
}

type ContentConfig struct {
	HeroImageURL string `mapstructure:"HERO_IMAGE_URL"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("API_HOST", "0.0.0.0")
	v.SetDefault("API_PORT", 8080)
	v.SetDefault("API_ENV", "development")
	v.SetDefault("CORS_ALLOW_ORIGINS", "http://localhost:3000,http://localhost:5173")
	v.SetDefault("API_BASE", "http://localhost:5000")
	v.SetDefault("BACKEND_LOAD_METHOD", "GET")
	v.SetDefault("BACKEND_MAP_PATH", "/static/maps")
	v.SetDefault("BACKEND_TIMEOUT", 30)
	v.SetDefault("HERO_IMAGE_URL", "/static/hero.jpg")
	v.SetDefault("SESSION_COOKIE", "nuclr_session")
	v.SetDefault("SESSION_TTL", 1800)
	v.SetDefault("STATE_STORE", "memory")
	v.SetDefault("STALE_LOADING_AFTER", 120)
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("NOTIFIER", "none")
	v.SetDefault("ALERT_STREAM", "stream:nuclralert:alerts")
	v.SetDefault("KAFKA_BROKERS", "localhost:9092")
	v.SetDefault("KAFKA_ALERT_TOPIC", "nuclralert-alerts")
	v.SetDefault("ALERT_QUEUE_SIZE", 64)
	v.SetDefault("LOG_LEVEL", "info")
}

// Load читает конфигурацию из .env (если есть) и переменных окружения
func Load() (*Config, error) {
	return LoadFile(".env")
}

// LoadFile - то же, что Load, но с явным путём к файлу. Отсутствующий файл не ошибка.
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(path)
	v.SetConfigType("env")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil && !isMissingFile(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:        v.GetString("API_HOST"),
			Port:        v.GetInt("API_PORT"),
			Env:         strings.ToLower(v.GetString("API_ENV")),
			CORSOrigins: strings.Join(parseList(v.GetString("CORS_ALLOW_ORIGINS")), ","),
		},
		Backend: BackendConfig{
			BaseURL:    strings.TrimRight(v.GetString("API_BASE"), "/"),
			LoadMethod: strings.ToUpper(v.GetString("BACKEND_LOAD_METHOD")),
			MapPath:    strings.TrimRight(v.GetString("BACKEND_MAP_PATH"), "/"),
			Timeout:    time.Duration(v.GetInt("BACKEND_TIMEOUT")) * time.Second,
		},
		Session: SessionConfig{
			CookieName: v.GetString("SESSION_COOKIE"),
			TTL:        time.Duration(v.GetInt("SESSION_TTL")) * time.Second,
			Store:      strings.ToLower(v.GetString("STATE_STORE")),

			StaleLoadingAfter: time.Duration(v.GetInt("STALE_LOADING_AFTER")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetInt("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Notifier: NotifierConfig{
			Kind:         strings.ToLower(v.GetString("NOTIFIER")),
			AlertStream:  v.GetString("ALERT_STREAM"),
			KafkaBrokers: parseList(v.GetString("KAFKA_BROKERS")),
			KafkaTopic:   v.GetString("KAFKA_ALERT_TOPIC"),
			QueueSize:    v.GetInt("ALERT_QUEUE_SIZE"),
		},
		Log: LogConfig{
			Level: strings.ToLower(v.GetString("LOG_LEVEL")),
		},
		Content: ContentConfig{
			HeroImageURL: v.GetString("HERO_IMAGE_URL"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate проверяет значения и зависимости между ключами
func (c *Config) Validate() error {
	if err := validator.Validate(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.Notifier.Kind == "kafka" && (len(c.Notifier.KafkaBrokers) == 0 || c.Notifier.KafkaTopic == "") {
		return errors.New("invalid config: NOTIFIER=kafka requires KAFKA_BROKERS and KAFKA_ALERT_TOPIC")
	}
	if c.Notifier.Kind == "redis" && c.Notifier.AlertStream == "" {
		return errors.New("invalid config: NOTIFIER=redis requires ALERT_STREAM")
	}
	return nil
}

func isMissingFile(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
}

func parseList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// IsProduction - включает Secure для cookie сессии
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}

// UsesRedis - нужен ли процессу Redis (стор состояния или нотификатор)
func (c *Config) UsesRedis() bool {
	return c.Session.Store == "redis" || c.Notifier.Kind == "redis"
}
