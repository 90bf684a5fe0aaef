// Package config предоставляет структуры и функции для загрузки конфига клиента
package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config общая структура для хранения настроек клиента
type Config struct {
	Env          string `yaml:"env" env:"ENV" env-default:"local"`
	APIClient    `yaml:"api_client"`
	MockServer   `yaml:"mock_server"`
	TokenStorage `yaml:"token_storage"`
	Transcoding  `yaml:"transcoding"`
}

// APIClient структура для настройки REST-клиента
type APIClient struct {
	BaseURL    string        `yaml:"base_url" env-default:"http://localhost:8000/api/v1"`
	TimeoutAPI time.Duration `yaml:"timeout" env-default:"10s"`
}

// MockServer структура для настройки встроенного мок-бэкенда.
// При UseMockData клиент поднимает локальный HTTP-сервер с данными
// в памяти и искусственной задержкой ответов вместо реального API.
type MockServer struct {
	UseMockData  bool          `yaml:"use_mock_data" env:"USE_MOCK_DATA" env-default:"true"`
	AddressMock  string        `yaml:"address" env-default:"localhost:8000"`
	Latency      time.Duration `yaml:"latency" env-default:"300ms"`
	JWTSecretKey string        `yaml:"jwt_secret_key" env-default:"mock-secret-key"`
	TokenTTL     time.Duration `yaml:"token_ttl" env-default:"24h"`
}

// TokenStorage структура для настройки локального хранилища токена
type TokenStorage struct {
	Path string `yaml:"path" env:"TOKEN_PATH" env-default:".stream-client/token"`
}

// Transcoding структура для настройки опроса статуса транскодировки
type Transcoding struct {
	PollInterval time.Duration `yaml:"poll_interval" env-default:"10s"`
	MaxAttempts  int           `yaml:"max_attempts" env-default:"30"`
}

// Load загружает конфиг из указанного файла.
func Load(configPath string) (*Config, error) {
	const op = "config.Load"
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s: file %s does not exist", op, configPath)
	}
	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &cfg, nil
}

// MustLoad загружает конфиг по пути из CONFIG_PATH и завершает процесс при ошибке
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return cfg
}

func (c *Config) String() string {
	return fmt.Sprintf(
		"Env: %s\n"+
			"APIClient:\n"+
			"  BaseURL: %s\n"+
			"  Timeout: %s\n"+
			"MockServer:\n"+
			"  UseMockData: %t\n"+
			"  Address: %s\n"+
			"  Latency: %s\n"+
			"  TokenTTL: %s\n"+
			"TokenStorage:\n"+
			"  Path: %s\n"+
			"Transcoding:\n"+
			"  PollInterval: %s\n"+
			"  MaxAttempts: %d\n",
		c.Env,
		c.BaseURL,
		c.TimeoutAPI,
		c.UseMockData,
		c.AddressMock,
		c.Latency,
		c.TokenTTL,
		c.Path,
		c.PollInterval,
		c.MaxAttempts,
	)
}
