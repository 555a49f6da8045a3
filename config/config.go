package config

import (
	"time"

	"github.com/spf13/viper"
)

// Mode selects the clinic API backing: live talks to the remote REST API,
// demo serves seeded in-memory data for offline use.
const (
	ModeLive = "live"
	ModeDemo = "demo"
)

type Config struct {
	App       AppConfig
	ClinicAPI ClinicAPIConfig
	DB        DBConfig
	Redis     RedisConfig
	JWT       JWTConfig
}

type AppConfig struct {
	Port string
	Env  string
	Mode string
}

type ClinicAPIConfig struct {
	BaseURL string
	Timeout time.Duration
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret        string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	mode := viper.GetString("APP_MODE")
	if mode == "" {
		mode = ModeLive
	}

	apiTimeout, err := time.ParseDuration(viper.GetString("CLINIC_API_TIMEOUT"))
	if err != nil {
		apiTimeout = 15 * time.Second
	}

	accessExpiry, err := time.ParseDuration(viper.GetString("JWT_ACCESS_EXPIRY"))
	if err != nil {
		accessExpiry = 15 * time.Minute
	}

	refreshExpiry, err := time.ParseDuration(viper.GetString("JWT_REFRESH_EXPIRY"))
	if err != nil {
		refreshExpiry = 7 * 24 * time.Hour
	}

	config := &Config{
		App: AppConfig{
			Port: viper.GetString("APP_PORT"),
			Env:  viper.GetString("APP_ENV"),
			Mode: mode,
		},
		ClinicAPI: ClinicAPIConfig{
			BaseURL: viper.GetString("CLINIC_API_BASE_URL"),
			Timeout: apiTimeout,
		},
		DB: DBConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Name:     viper.GetString("DB_NAME"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret:        viper.GetString("JWT_SECRET"),
			AccessExpiry:  accessExpiry,
			RefreshExpiry: refreshExpiry,
		},
	}

	return config, nil
}
