package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	go_ora "github.com/sijms/go-ora/v2"
	"github.com/spf13/viper"
)

// Supported values for db.driver.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite3"
	DriverOracle   = "oracle"
)

type Config struct {
	Env       string
	Server    ServerConfig
	DB        DBConfig
	Redis     RedisConfig
	Logger    LoggerConfig
	Trivia    TriviaConfig
	RateLimit RateLimitConfig
	CORS      CORSConfig
}

type ServerConfig struct {
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
	BodyLimit       int
}

type DBConfig struct {
	Driver          string
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	Path            string // sqlite3 only
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

// LoggerConfig is the subset of settings the logger needs.
type LoggerConfig struct {
	Level string
	Env   string
}

type TriviaConfig struct {
	QuestionsPerPage int
}

type RateLimitConfig struct {
	Enabled    bool
	Max        int
	Expiration time.Duration
}

type CORSConfig struct {
	AllowOrigins string
	AllowMethods string
	AllowHeaders string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "development")

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "20s")
	v.SetDefault("server.write_timeout", "20s")
	v.SetDefault("server.idle_timeout", "20s")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("server.body_limit", 1024*1024)

	v.SetDefault("db.driver", DriverPostgres)
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "postgres")
	v.SetDefault("db.name", "trivia")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.path", "trivia.db")
	v.SetDefault("db.max_open_conns", 10)
	v.SetDefault("db.max_idle_conns", 5)
	v.SetDefault("db.conn_max_lifetime", "30m")

	v.SetDefault("redis.address", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("logger.level", "info")

	v.SetDefault("trivia.questions_per_page", 5)

	v.SetDefault("ratelimit.enabled", true)
	v.SetDefault("ratelimit.max", 30)
	v.SetDefault("ratelimit.expiration", "1m")

	v.SetDefault("cors.allow_origins", "*")
	v.SetDefault("cors.allow_methods", "GET,POST,PATCH,DELETE,OPTIONS")
	v.SetDefault("cors.allow_headers", "Content-Type,Authorization")
}

// LoadConfig reads config.yaml (if any) and applies environment overrides.
// A missing config file is not an error: defaults and the environment are enough to run.
func LoadConfig() (*Config, error) {
	// .env is optional, real environment variables win over it
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if os.Getenv("ENV") == "test" {
		v.AddConfigPath("../../configs")
		v.AddConfigPath("../../")
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
	}

	setDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if configFile := v.ConfigFileUsed(); configFile != "" {
		absPath, _ := filepath.Abs(configFile)
		fmt.Printf("Using config file: %s\n", absPath)
	}

	env := v.GetString("env")
	cfg := &Config{
		Env: env,
		Server: ServerConfig{
			Port:            v.GetInt("server.port"),
			ReadTimeout:     v.GetDuration("server.read_timeout"),
			WriteTimeout:    v.GetDuration("server.write_timeout"),
			IdleTimeout:     v.GetDuration("server.idle_timeout"),
			ShutdownTimeout: v.GetDuration("server.shutdown_timeout"),
			BodyLimit:       v.GetInt("server.body_limit"),
		},
		DB: DBConfig{
			Driver:          strings.ToLower(v.GetString("db.driver")),
			Host:            v.GetString("db.host"),
			Port:            v.GetInt("db.port"),
			User:            v.GetString("db.user"),
			Password:        v.GetString("db.password"),
			DBName:          v.GetString("db.name"),
			SSLMode:         v.GetString("db.sslmode"),
			Path:            v.GetString("db.path"),
			MaxOpenConns:    v.GetInt("db.max_open_conns"),
			MaxIdleConns:    v.GetInt("db.max_idle_conns"),
			ConnMaxLifetime: v.GetDuration("db.conn_max_lifetime"),
		},
		Redis: RedisConfig{
			Address:  v.GetString("redis.address"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Logger: LoggerConfig{
			Level: v.GetString("logger.level"),
			Env:   env,
		},
		Trivia: TriviaConfig{
			QuestionsPerPage: v.GetInt("trivia.questions_per_page"),
		},
		RateLimit: RateLimitConfig{
			Enabled:    v.GetBool("ratelimit.enabled"),
			Max:        v.GetInt("ratelimit.max"),
			Expiration: v.GetDuration("ratelimit.expiration"),
		},
		CORS: CORSConfig{
			AllowOrigins: v.GetString("cors.allow_origins"),
			AllowMethods: v.GetString("cors.allow_methods"),
			AllowHeaders: v.GetString("cors.allow_headers"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the rest of the program cannot work with.
func (c *Config) Validate() error {
	switch c.DB.Driver {
	case DriverPostgres, DriverSQLite, DriverOracle:
	default:
		return fmt.Errorf("unsupported db.driver %q (want %s, %s or %s)", c.DB.Driver, DriverPostgres, DriverSQLite, DriverOracle)
	}
	if c.Trivia.QuestionsPerPage <= 0 {
		return fmt.Errorf("trivia.questions_per_page must be positive, got %d", c.Trivia.QuestionsPerPage)
	}
	if c.RateLimit.Enabled && (c.RateLimit.Max <= 0 || c.RateLimit.Expiration <= 0) {
		return fmt.Errorf("ratelimit.max and ratelimit.expiration must be positive when rate limiting is enabled")
	}
	return nil
}

// SQLDriverName returns the database/sql driver name registered for the configured dialect.
func (c *Config) SQLDriverName() string {
	switch c.DB.Driver {
	case DriverPostgres:
		return "pgx"
	default:
		return c.DB.Driver
	}
}

// GetDSN renders the connection string for the configured driver. Credentials are
// URL-escaped, so passwords may contain '@', '/' or '?'.
func (c *Config) GetDSN() string {
	switch c.DB.Driver {
	case DriverSQLite:
		return fmt.Sprintf("file:%s?_foreign_keys=on", c.DB.Path)
	case DriverOracle:
		return go_ora.BuildUrl(c.DB.Host, c.DB.Port, c.DB.DBName, c.DB.User, c.DB.Password, nil)
	default:
		dsn := url.URL{
			Scheme:   "postgres",
			User:     url.UserPassword(c.DB.User, c.DB.Password),
			Host:     net.JoinHostPort(c.DB.Host, strconv.Itoa(c.DB.Port)),
			Path:     "/" + c.DB.DBName,
			RawQuery: url.Values{"sslmode": {c.DB.SSLMode}}.Encode(),
		}
		return dsn.String()
	}
}
