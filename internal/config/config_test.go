package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestFromViperDefaults(t *testing.T) {
	viper.Reset()
	setDefaults()
	viper.AutomaticEnv()

	cfg := fromViper()

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "static", cfg.App.CatalogSource)
	assert.Equal(t, 30, cfg.Session.TTLMinutes)
	assert.Equal(t, 600, cfg.Session.SearchDelayMS)
	assert.Equal(t, 800, cfg.Session.KPIDelayMS)
	assert.Equal(t, 1200, cfg.Session.CategoryDelayMS)
	assert.Equal(t, 1500, cfg.Session.ModalDelayMS)
	assert.Equal(t, "log", cfg.Alerts.Notifier)
	assert.False(t, cfg.Cache.Enabled)
}

func TestFromViperEnvOverrides(t *testing.T) {
	viper.Reset()
	setDefaults()
	viper.AutomaticEnv()

	t.Setenv("SEARCH_DELAY_MS", "250")
	t.Setenv("CATALOG_SOURCE", "postgres")
	t.Setenv("CACHE_ENABLED", "true")

	cfg := fromViper()

	assert.Equal(t, 250, cfg.Session.SearchDelayMS)
	assert.Equal(t, "postgres", cfg.App.CatalogSource)
	assert.True(t, cfg.Cache.Enabled)
}
