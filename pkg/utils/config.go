package utils

import (
	"os"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Backend  BackendConfig
	Cache    CacheConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Stub     StubConfig
}

type AppConfig struct {
	Name    string
	Debug   bool
	LogPath string
}

type BackendConfig struct {
	BaseURL   string
	ClienteID string
	QRDir     string
}

// CacheConfig selects where the local ticket cache lives.
// Driver is one of: file, postgres, redis.
type CacheConfig struct {
	Driver string
	Path   string
}

type PostgresConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type StubConfig struct {
	Port string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("APP_NAME", "astra-cinemas")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("API_BASE_URL", "http://localhost:8080")
	viper.SetDefault("QR_DIR", "qrcodes/")
	viper.SetDefault("CACHE_DRIVER", "file")
	viper.SetDefault("CACHE_PATH", "tickets.json")
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("STUB_PORT", "8080")

	// .env is optional for the client; env vars still apply without it.
	if _, statErr := os.Stat(".env"); statErr == nil {
		if err := viper.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Backend: BackendConfig{
			BaseURL:   viper.GetString("API_BASE_URL"),
			ClienteID: viper.GetString("CLIENTE_ID"),
			QRDir:     viper.GetString("QR_DIR"),
		},
		Cache: CacheConfig{
			Driver: viper.GetString("CACHE_DRIVER"),
			Path:   viper.GetString("CACHE_PATH"),
		},
		Postgres: PostgresConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		Redis: RedisConfig{
			Addr:     viper.GetString("REDIS_ADDR"),
			Password: viper.GetString("REDIS_PASS"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Stub: StubConfig{
			Port: viper.GetString("STUB_PORT"),
		},
	}

	return config, nil
}
