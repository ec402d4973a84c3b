package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	DB       DBConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Ward     WardConfig
	Analyzer AnalyzerConfig
}

type AppConfig struct {
	Port string
	Env  string
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

// WardConfig holds the configured bed capacity per ward.
type WardConfig struct {
	GeneralBeds int
	ICUBeds     int
}

// AnalyzerConfig controls how the diagnostic analyzer is invoked.
type AnalyzerConfig struct {
	Timeout time.Duration
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	accessExpiry, err := time.ParseDuration(viper.GetString("JWT_ACCESS_EXPIRY"))
	if err != nil {
		accessExpiry = 15 * time.Minute
	}

	refreshExpiry, err := time.ParseDuration(viper.GetString("JWT_REFRESH_EXPIRY"))
	if err != nil {
		refreshExpiry = 7 * 24 * time.Hour
	}

	analyzerTimeout, err := time.ParseDuration(viper.GetString("ANALYZER_TIMEOUT"))
	if err != nil {
		analyzerTimeout = 30 * time.Second
	}

	generalBeds := viper.GetInt("WARD_GENERAL_BEDS")
	if generalBeds <= 0 {
		generalBeds = 15
	}

	icuBeds := viper.GetInt("WARD_ICU_BEDS")
	if icuBeds <= 0 {
		icuBeds = 5
	}

	config := &Config{
		App: AppConfig{
			Port: viper.GetString("APP_PORT"),
			Env:  viper.GetString("APP_ENV"),
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
		Ward: WardConfig{
			GeneralBeds: generalBeds,
			ICUBeds:     icuBeds,
		},
		Analyzer: AnalyzerConfig{
			Timeout: analyzerTimeout,
		},
	}

	return config, nil
}
