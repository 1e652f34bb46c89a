package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/kapu/plex-request-bot-go/internal/constants"
	"github.com/kapu/plex-request-bot-go/internal/util"
)

type Config struct {
	Iris    IrisConfig
	Bot     BotConfig
	Ombi    OmbiConfig
	TMDb    TMDbConfig
	Admin   AdminConfig
	HTTP    HTTPConfig
	Health  HealthConfig
	Logging LoggingConfig
}

type IrisConfig struct {
	BaseURL string `validate:"required,url"`
	WSURL   string `validate:"required,url"`
}

type BotConfig struct {
	Prefix   string `validate:"required"`
	Language string `validate:"required,min=2"`
	Workers  int    `validate:"min=1,max=64"`
}

type OmbiConfig struct {
	URL    string `validate:"required,url"`
	APIKey string `validate:"required"`
}

type TMDbConfig struct {
	BaseURL string `validate:"required,url"`
	APIKey  string `validate:"required"`
}

type AdminConfig struct {
	WhitelistEnabled bool
	Whitelist        []string `validate:"dive,required"`
}

type HTTPConfig struct {
	Timeout time.Duration `validate:"min=1s,max=2m"`
}

type HealthConfig struct {
	Addr string `validate:"omitempty,hostname_port"`
}

type LoggingConfig struct {
	Level string `validate:"oneof=debug info warn error"`
	File  string
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Iris: IrisConfig{
			BaseURL: getEnv("IRIS_BASE_URL", "http://localhost:3000"),
			WSURL:   getEnv("IRIS_WS_URL", "ws://localhost:3000/ws"),
		},
		Bot: BotConfig{
			Prefix:   getEnv("BOT_PREFIX", "!plex"),
			Language: getEnv("BOT_LANGUAGE", "de-DE"),
			Workers:  getEnvInt("BOT_WORKERS", 4),
		},
		Ombi: OmbiConfig{
			URL:    strings.TrimRight(getEnv("OMBI_URL", ""), "/"),
			APIKey: getEnv("OMBI_API_KEY", ""),
		},
		TMDb: TMDbConfig{
			BaseURL: strings.TrimRight(getEnv("TMDB_BASE_URL", constants.APIConfig.TMDbBaseURL), "/"),
			APIKey:  getEnv("TMDB_API_KEY", ""),
		},
		Admin: AdminConfig{
			WhitelistEnabled: getEnvBool("ADMIN_WHITELIST_ENABLED", false),
			Whitelist:        util.ParseCommaSeparated(getEnv("ADMIN_WHITELIST", "")),
		},
		HTTP: HTTPConfig{
			Timeout: time.Duration(getEnvInt("HTTP_TIMEOUT_SECONDS", 10)) * time.Second,
		},
		Health: HealthConfig{
			Addr: os.Getenv("HEALTH_ADDR"),
		},
		Logging: LoggingConfig{
			Level: util.Normalize(getEnv("LOG_LEVEL", "info")),
			File:  getEnv("LOG_FILE", ""),
		},
	}
	if _, ok := os.LookupEnv("HEALTH_ADDR"); !ok {
		cfg.Health.Addr = ":8081"
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks struct constraints and reports the first failing field by
// its environment variable name.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return describe(err)
	}
	if c.Admin.WhitelistEnabled && len(c.Admin.Whitelist) == 0 {
		return fmt.Errorf("ADMIN_WHITELIST is required when ADMIN_WHITELIST_ENABLED is true")
	}
	return nil
}

func describe(err error) error {
	if fieldErrs, ok := err.(validator.ValidationErrors); ok && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return fmt.Errorf("%s is invalid (%s)", envName(fe.StructNamespace()), fe.Tag())
	}
	return err
}

// LanguageCode returns the two-letter language code sent with new movie requests.
func (b BotConfig) LanguageCode() string {
	lang := util.Normalize(b.Language)
	if len(lang) > 2 {
		lang = lang[:2]
	}
	return lang
}

var envNames = map[string]string{
	"Config.Iris.BaseURL":    "IRIS_BASE_URL",
	"Config.Iris.WSURL":      "IRIS_WS_URL",
	"Config.Bot.Prefix":      "BOT_PREFIX",
	"Config.Bot.Language":    "BOT_LANGUAGE",
	"Config.Bot.Workers":     "BOT_WORKERS",
	"Config.Ombi.URL":        "OMBI_URL",
	"Config.Ombi.APIKey":     "OMBI_API_KEY",
	"Config.TMDb.BaseURL":    "TMDB_BASE_URL",
	"Config.TMDb.APIKey":     "TMDB_API_KEY",
	"Config.Admin.Whitelist": "ADMIN_WHITELIST",
	"Config.HTTP.Timeout":    "HTTP_TIMEOUT_SECONDS",
	"Config.Health.Addr":     "HEALTH_ADDR",
	"Config.Logging.Level":   "LOG_LEVEL",
}

func envName(namespace string) string {
	if idx := strings.Index(namespace, "["); idx >= 0 {
		namespace = namespace[:idx]
	}
	if name, ok := envNames[namespace]; ok {
		return name
	}
	return namespace
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
