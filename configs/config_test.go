package configs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvAsDuration(t *testing.T) {
	assert.Equal(t, 3*time.Second, getEnvAsDuration("3s", time.Second))
	assert.Equal(t, time.Second, getEnvAsDuration("", time.Second))
	assert.Equal(t, time.Second, getEnvAsDuration("мусор", time.Second))
}

func TestGetEnvAsInt64List(t *testing.T) {
	assert.Equal(t, []int64{769063484, 42}, getEnvAsInt64List("769063484, 42"))
	assert.Nil(t, getEnvAsInt64List(""))
	// нечисловые значения пропускаются
	assert.Equal(t, []int64{42}, getEnvAsInt64List("abc,42"))
}

func TestGetEnvAsList(t *testing.T) {
	def := []string{"Ерёмин"}
	assert.Equal(t, []string{"Уранов", "Новиков"}, getEnvAsList("Уранов, Новиков", def))
	assert.Equal(t, def, getEnvAsList("", def))
	assert.Equal(t, def, getEnvAsList(" , ", def))
}

func TestValidateConfig(t *testing.T) {
	cfg := &Config{
		TG:  TelegramConfig{Token: "token"},
		Bot: BotConfig{Admins: []int64{1}, SessionStorage: "memory"},
	}
	assert.NoError(t, validateConfig(cfg))

	cfg.TG.Token = ""
	assert.Error(t, validateConfig(cfg))

	cfg.TG.Token = "token"
	cfg.Bot.Admins = nil
	assert.Error(t, validateConfig(cfg))

	cfg.Bot.Admins = []int64{1}
	cfg.Bot.SessionStorage = "redis"
	assert.Error(t, validateConfig(cfg), "redis storage requires REDIS_HOST")
}
