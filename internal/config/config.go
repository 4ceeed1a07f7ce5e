// Package config loads runtime settings from .env files and the environment.
package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Environment keys.
const (
	KeyAppAddr         = "APP_ADDR"
	KeyDBDriver        = "DB_DRIVER"
	KeyDBUser          = "DB_USER"
	KeyDBPassword      = "DB_PASSWORD"
	KeyDBServer        = "DB_SERVER"
	KeyDBPort          = "DB_PORT"
	KeyDBName          = "DB_NAME"
	KeyDBDSN           = "DB_DSN"
	KeyDBSSLMode       = "DB_SSLMODE"
	KeyQueryTimeout    = "QUERY_TIMEOUT"
	KeyShutdownTimeout = "SHUTDOWN_TIMEOUT"
	KeyLogLevel        = "LOG_LEVEL"
	KeyLogFormat       = "LOG_FORMAT"
	KeyRateLimitRPS    = "RATE_LIMIT_RPS"
	KeyRateLimitBurst  = "RATE_LIMIT_BURST"
	KeyCORSOrigins     = "CORS_ALLOWED_ORIGINS"
	KeyEnableHSTS      = "ENABLE_HSTS"
	KeyMaxBodyBytes    = "MAX_BODY_BYTES"
)

var validate = validator.New()

type Config struct {
	AppAddr string `validate:"required"`

	DBDriver   string `validate:"oneof=pgx postgres sqlite"`
	DBUser     string
	DBPassword string
	DBServer   string `validate:"required_without=DBDSN"`
	DBPort     int    `validate:"gt=0,lt=65536"`
	DBName     string `validate:"required_without=DBDSN"`
	DBSSLMode  string `validate:"oneof=disable allow prefer require verify-ca verify-full"`
	// DBDSN overrides the DSN assembled from the DB_* parts.
	DBDSN string

	QueryTimeout    time.Duration `validate:"gte=0"`
	ShutdownTimeout time.Duration `validate:"gt=0"`

	LogLevel  string `validate:"oneof=debug info warn warning error"`
	LogFormat string `validate:"oneof=human json"`

	RateLimitRPS   float64 `validate:"gte=0"`
	RateLimitBurst int     `validate:"gte=0"`
	CORSOrigins    []string
	EnableHSTS     bool
	MaxBodyBytes   int64 `validate:"gt=0"`
}

// LoadEnvFiles reads .env and .env.local; variables already set in the environment win.
func LoadEnvFiles() {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")
}

func defaults(v *viper.Viper) {
	v.SetDefault(KeyAppAddr, ":8080")
	v.SetDefault(KeyDBDriver, "pgx")
	v.SetDefault(KeyDBUser, "postgres")
	v.SetDefault(KeyDBPassword, "")
	v.SetDefault(KeyDBServer, "localhost")
	v.SetDefault(KeyDBPort, 5432)
	v.SetDefault(KeyDBName, "booklibrary")
	v.SetDefault(KeyDBDSN, "")
	v.SetDefault(KeyDBSSLMode, "disable")
	v.SetDefault(KeyQueryTimeout, "5s")
	v.SetDefault(KeyShutdownTimeout, "10s")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "human")
	v.SetDefault(KeyRateLimitRPS, 20)
	v.SetDefault(KeyRateLimitBurst, 40)
	v.SetDefault(KeyCORSOrigins, "")
	v.SetDefault(KeyEnableHSTS, false)
	v.SetDefault(KeyMaxBodyBytes, 1<<20)
}

// Load builds a Config from the environment on top of the defaults and validates it.
func Load() (Config, error) {
	v := viper.New()
	defaults(v)
	v.AutomaticEnv()

	cfg := Config{
		AppAddr:         v.GetString(KeyAppAddr),
		DBDriver:        strings.ToLower(v.GetString(KeyDBDriver)),
		DBUser:          v.GetString(KeyDBUser),
		DBPassword:      v.GetString(KeyDBPassword),
		DBServer:        v.GetString(KeyDBServer),
		DBPort:          v.GetInt(KeyDBPort),
		DBName:          v.GetString(KeyDBName),
		DBSSLMode:       v.GetString(KeyDBSSLMode),
		DBDSN:           v.GetString(KeyDBDSN),
		QueryTimeout:    v.GetDuration(KeyQueryTimeout),
		ShutdownTimeout: v.GetDuration(KeyShutdownTimeout),
		LogLevel:        strings.ToLower(v.GetString(KeyLogLevel)),
		LogFormat:       strings.ToLower(v.GetString(KeyLogFormat)),
		RateLimitRPS:    v.GetFloat64(KeyRateLimitRPS),
		RateLimitBurst:  v.GetInt(KeyRateLimitBurst),
		CORSOrigins:     splitList(v.GetString(KeyCORSOrigins)),
		EnableHSTS:      v.GetBool(KeyEnableHSTS),
		MaxBodyBytes:    v.GetInt64(KeyMaxBodyBytes),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every invalid field in one error.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return fmt.Errorf("validate config: %w", err)
	}

	msgs := make([]string, 0, len(validationErrs))
	for _, fe := range validationErrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Field(), fe.Tag()))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

// DSN returns DBDSN when set. Otherwise it assembles a postgres URL from the DB_* parts,
// or uses DBName as the file path for sqlite.
func (c Config) DSN() string {
	if c.DBDSN != "" {
		return c.DBDSN
	}
	if c.DBDriver == "sqlite" {
		return c.DBName
	}

	u := url.URL{
		Scheme:   "postgres",
		Host:     net.JoinHostPort(c.DBServer, fmt.Sprint(c.DBPort)),
		Path:     "/" + c.DBName,
		RawQuery: url.Values{"sslmode": {c.DBSSLMode}}.Encode(),
	}
	switch {
	case c.DBUser != "" && c.DBPassword != "":
		u.User = url.UserPassword(c.DBUser, c.DBPassword)
	case c.DBUser != "":
		u.User = url.User(c.DBUser)
	}
	return u.String()
}

// RedactDSN hides the credentials of a URL-style DSN.
func RedactDSN(dsn string) string {
	const marker = "://"
	start := strings.Index(dsn, marker)
	if start < 0 {
		return dsn
	}
	start += len(marker)
	end := strings.LastIndex(dsn[start:], "@")
	if end < 0 {
		return dsn
	}
	return dsn[:start] + "***" + dsn[start+end:]
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
