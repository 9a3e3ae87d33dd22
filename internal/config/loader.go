package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/ycetindil/attrio/internal/db"
)

// Config is the full application configuration.
type Config struct {
	Server   ServerConfig
	Database db.Config
	Codec    CodecConfig
	Cache    CacheConfig
	Log      LogConfig
	CORS     CORSConfig
}

type ServerConfig struct {
	Addr            string
	ShutdownTimeout time.Duration
}

type CodecConfig struct {
	DefaultCurrency    string
	DefaultCountryCode string
	EmptyMarker        string
}

type CacheConfig struct {
	Size int
	TTL  time.Duration
}

type LogConfig struct {
	Env   string
	Level string
}

type CORSConfig struct {
	AllowedOrigins []string
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		Server:   ServerConfig{Addr: ":8080", ShutdownTimeout: 10 * time.Second},
		Database: db.DefaultConfig(),
		Codec:    CodecConfig{DefaultCurrency: "TRY", DefaultCountryCode: "+90", EmptyMarker: "—"},
		Cache:    CacheConfig{Size: 256, TTL: 30 * time.Second},
		Log:      LogConfig{Env: "development", Level: "info"},
		CORS:     CORSConfig{AllowedOrigins: []string{"*"}},
	}
}

// Load reads config.yaml from configPath and applies environment overrides
// with the ATTRIO_ prefix (ATTRIO_DATABASE_HOST and so on). A missing config
// file is not an error; defaults plus env vars apply.
func Load(configPath string) (Config, error) {
	cfg := Default()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)
	v.AutomaticEnv()
	v.SetEnvPrefix("ATTRIO")

	v.BindEnv("server.addr", "ATTRIO_SERVER_ADDR")
	v.BindEnv("server.shutdownTimeout", "ATTRIO_SERVER_SHUTDOWN_TIMEOUT")
	v.BindEnv("database.host", "ATTRIO_DATABASE_HOST")
	v.BindEnv("database.port", "ATTRIO_DATABASE_PORT")
	v.BindEnv("database.user", "ATTRIO_DATABASE_USER")
	v.BindEnv("database.password", "ATTRIO_DATABASE_PASSWORD")
	v.BindEnv("database.dbname", "ATTRIO_DATABASE_DBNAME")
	v.BindEnv("database.sslmode", "ATTRIO_DATABASE_SSLMODE")
	v.BindEnv("codec.defaultCurrency", "ATTRIO_CODEC_DEFAULT_CURRENCY")
	v.BindEnv("codec.defaultCountryCode", "ATTRIO_CODEC_DEFAULT_COUNTRY_CODE")
	v.BindEnv("cache.size", "ATTRIO_CACHE_SIZE")
	v.BindEnv("cache.ttl", "ATTRIO_CACHE_TTL")
	v.BindEnv("log.env", "ATTRIO_LOG_ENV")
	v.BindEnv("log.level", "ATTRIO_LOG_LEVEL")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return cfg, fmt.Errorf("read config: %w", err)
		}
	}

	if v.IsSet("server.addr") {
		cfg.Server.Addr = v.GetString("server.addr")
	}
	if v.IsSet("server.shutdownTimeout") {
		cfg.Server.ShutdownTimeout = v.GetDuration("server.shutdownTimeout")
	}
	if v.IsSet("database.host") {
		cfg.Database.Host = v.GetString("database.host")
	}
	if v.IsSet("database.port") {
		cfg.Database.Port = v.GetInt("database.port")
	}
	if v.IsSet("database.user") {
		cfg.Database.User = v.GetString("database.user")
	}
	if v.IsSet("database.password") {
		cfg.Database.Password = v.GetString("database.password")
	}
	if v.IsSet("database.dbname") {
		cfg.Database.DBName = v.GetString("database.dbname")
	}
	if v.IsSet("database.sslmode") {
		cfg.Database.SSLMode = v.GetString("database.sslmode")
	}
	if v.IsSet("codec.defaultCurrency") {
		cfg.Codec.DefaultCurrency = v.GetString("codec.defaultCurrency")
	}
	if v.IsSet("codec.defaultCountryCode") {
		cfg.Codec.DefaultCountryCode = v.GetString("codec.defaultCountryCode")
	}
	if v.IsSet("codec.emptyMarker") {
		cfg.Codec.EmptyMarker = v.GetString("codec.emptyMarker")
	}
	if v.IsSet("cache.size") {
		cfg.Cache.Size = v.GetInt("cache.size")
	}
	if v.IsSet("cache.ttl") {
		cfg.Cache.TTL = v.GetDuration("cache.ttl")
	}
	if v.IsSet("log.env") {
		cfg.Log.Env = v.GetString("log.env")
	}
	if v.IsSet("log.level") {
		cfg.Log.Level = v.GetString("log.level")
	}
	if v.IsSet("cors.allowedOrigins") {
		cfg.CORS.AllowedOrigins = v.GetStringSlice("cors.allowedOrigins")
	}

	return cfg, nil
}
