package configs

import (
	"flag"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/minchenkova509/telegram-bot/configs/loader"
)

type TelegramConfig struct {
	Token             string `validate:"required"`
	ConnectionTimeout time.Duration
	PollTimeout       int
}

type BotConfig struct {
	Admins         []int64 `validate:"required"`
	Drivers        []string
	SessionStorage string // memory | redis
}

type SheetsConfig struct {
	SpreadsheetID   string
	CredentialsJSON string
	WriteRange      string
	Timeout         time.Duration
}

type RedisConfig struct {
	Host         string
	DB           int
	User         string
	Password     string
	MaxRetries   int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type Config struct {
	TG     TelegramConfig
	Bot    BotConfig
	Sheets SheetsConfig
	RD     RedisConfig
	Env    string
}

func MustLoad(loader loader.ConfigLoader) *Config {
	env := flag.String("env", "dev", "Environment type")
	flag.Parse()

	const op = "configs.MustLoad"
	envs, err := loader.Load()
	if err != nil {
		log.Fatalf("%s: config load failed: %+v", op, err)
	}
	cfg := &Config{
		TG: TelegramConfig{
			Token:             envs["TELEGRAM_TOKEN"],
			ConnectionTimeout: getEnvAsDuration(envs["TELEGRAM_CONNECTION_TIMEOUT"], 30*time.Second),
			PollTimeout:       getEnvAsInt(envs["TELEGRAM_POLL_TIMEOUT"], 30),
		},
		Bot: BotConfig{
			Admins:         getEnvAsInt64List(envs["ADMIN_IDS"]),
			Drivers:        getEnvAsList(envs["DRIVER_NAMES"], []string{"Ерёмин", "Уранов", "Новиков"}),
			SessionStorage: getEnvOrDefault(envs["SESSION_STORAGE"], "memory"),
		},
		Sheets: SheetsConfig{
			SpreadsheetID:   envs["SPREADSHEET_ID"],
			CredentialsJSON: envs["GOOGLE_CREDENTIALS_JSON"],
			WriteRange:      getEnvOrDefault(envs["SHEETS_RANGE"], "A:E"),
			Timeout:         getEnvAsDuration(envs["SHEETS_TIMEOUT"], 10*time.Second),
		},
		RD: RedisConfig{
			Host:         envs["REDIS_HOST"],
			DB:           getEnvAsInt(envs["REDIS_DB"], 0),
			User:         envs["REDIS_USER"],
			Password:     envs["REDIS_PASSWORD"],
			MaxRetries:   getEnvAsInt(envs["REDIS_MAX_RETRIES"], 3),
			DialTimeout:  getEnvAsDuration(envs["REDIS_DIAL_TIMEOUT"], 5*time.Second),
			ReadTimeout:  getEnvAsDuration(envs["REDIS_READ_TIMEOUT"], 5*time.Second),
			WriteTimeout: getEnvAsDuration(envs["REDIS_WRITE_TIMEOUT"], 5*time.Second),
		},
		Env: *env,
	}

	if err := validateConfig(cfg); err != nil {
		log.Fatalf("%s: config validation failed: %+v", op, err)
	}

	return cfg
}

func validateConfig(cfg *Config) error {
	if cfg.TG.Token == "" {
		return fmt.Errorf("missing required configuration: TELEGRAM_TOKEN")
	}
	if len(cfg.Bot.Admins) == 0 {
		return fmt.Errorf("missing required configuration: ADMIN_IDS")
	}
	if cfg.Bot.SessionStorage == "redis" && cfg.RD.Host == "" {
		return fmt.Errorf("missing required configuration: REDIS_HOST")
	}
	return nil
}

func getEnvOrDefault(strValue string, defaultValue string) string {
	if strValue == "" {
		return defaultValue
	}
	return strValue
}

func getEnvAsDuration(strValue string, defaultValue time.Duration) time.Duration {
	const op = "configs.getEnvAsDuration"
	if strValue == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(strValue)
	if err != nil {
		log.Printf("%s:Invalid value for %s, using default: %v", op, strValue, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsInt(strValue string, defaultValue int) int {
	const op = "configs.getEnvAsInt"
	if strValue == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(strValue)
	if err != nil {
		log.Printf("%s:Invalid value for %s, using default: %v", op, strValue, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsList(strValue string, defaultValue []string) []string {
	if strValue == "" {
		return defaultValue
	}
	parts := strings.Split(strValue, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			result = append(result, p)
		}
	}
	if len(result) == 0 {
		return defaultValue
	}
	return result
}

func getEnvAsInt64List(strValue string) []int64 {
	const op = "configs.getEnvAsInt64List"
	if strValue == "" {
		return nil
	}
	parts := strings.Split(strValue, ",")
	result := make([]int64, 0, len(parts))
	for _, p := range parts {
		value, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
		if err != nil {
			log.Printf("%s:Invalid value %s, skipping", op, p)
			continue
		}
		result = append(result, value)
	}
	return result
}
