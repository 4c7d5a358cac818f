package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Run("loads default values", func(t *testing.T) {
		cfg := Load()

		assert.Equal(t, "8080", cfg.Server.Port)
		assert.Equal(t, 100, cfg.Server.RateLimit)
		assert.Equal(t, time.Minute, cfg.Server.RateWindow)
		assert.Equal(t, 1800, cfg.Fulfillment.CapacityGrams)
		assert.Equal(t, 100, cfg.Fulfillment.MaxLineItems)
		assert.Empty(t, cfg.Fulfillment.CatalogFile)
		assert.Equal(t, 1000, cfg.Cache.Size)
		assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
		assert.Equal(t, 4, cfg.Shipping.Workers)
		assert.Equal(t, 1000, cfg.Shipping.BufferSize)
		assert.Equal(t, 5*time.Second, cfg.Shipping.WriteTimeout)
		assert.False(t, cfg.Auth.Enabled)
		assert.Equal(t, time.Hour, cfg.Auth.TokenTTL)
		assert.Equal(t, "fulfillment_service", cfg.Database.DatabaseName)
		assert.False(t, cfg.Database.Enabled)
		assert.Equal(t, "info", cfg.Log.Level)
	})

	t.Run("loads values from environment", func(t *testing.T) {
		t.Setenv("PORT", "9090")
		t.Setenv("RATE_LIMIT", "50")
		t.Setenv("RATE_WINDOW", "30s")
		t.Setenv("PACKAGE_CAPACITY_GRAMS", "2500")
		t.Setenv("MAX_LINE_ITEMS", "20")
		t.Setenv("CATALOG_FILE", "data/catalog.json")
		t.Setenv("PACKER_CACHE_SIZE", "0")
		t.Setenv("PACKER_CACHE_TTL", "10m")
		t.Setenv("SHIPPING_WORKERS", "8")
		t.Setenv("SHIPPING_WRITE_TIMEOUT", "2s")
		t.Setenv("AUTH_ENABLED", "true")
		t.Setenv("API_KEYS", "key1,key2")
		t.Setenv("JWT_SECRET_KEY", "s3cret")
		t.Setenv("JWT_TOKEN_TTL", "15m")
		t.Setenv("MONGODB_ENABLED", "true")
		t.Setenv("LOG_LEVEL", "debug")
		t.Setenv("LOG_PRETTY", "true")

		cfg := Load()

		assert.Equal(t, "9090", cfg.Server.Port)
		assert.Equal(t, 50, cfg.Server.RateLimit)
		assert.Equal(t, 30*time.Second, cfg.Server.RateWindow)
		assert.Equal(t, 2500, cfg.Fulfillment.CapacityGrams)
		assert.Equal(t, 20, cfg.Fulfillment.MaxLineItems)
		assert.Equal(t, "data/catalog.json", cfg.Fulfillment.CatalogFile)
		assert.Zero(t, cfg.Cache.Size)
		assert.Equal(t, 10*time.Minute, cfg.Cache.TTL)
		assert.Equal(t, 8, cfg.Shipping.Workers)
		assert.Equal(t, 2*time.Second, cfg.Shipping.WriteTimeout)
		assert.True(t, cfg.Auth.Enabled)
		assert.True(t, cfg.Auth.APIKeys["key1"])
		assert.True(t, cfg.Auth.APIKeys["key2"])
		assert.Equal(t, "s3cret", cfg.Auth.JWTSecretKey)
		assert.Equal(t, 15*time.Minute, cfg.Auth.TokenTTL)
		assert.True(t, cfg.Database.Enabled)
		assert.Equal(t, "debug", cfg.Log.Level)
		assert.True(t, cfg.Log.Pretty)
	})

	t.Run("handles invalid values gracefully", func(t *testing.T) {
		t.Setenv("RATE_LIMIT", "invalid")
		t.Setenv("AUTH_ENABLED", "invalid")
		t.Setenv("RATE_WINDOW", "invalid")
		t.Setenv("PACKAGE_CAPACITY_GRAMS", "-5")
		t.Setenv("SHIPPING_WORKERS", "0")

		cfg := Load()

		assert.Equal(t, 100, cfg.Server.RateLimit)
		assert.False(t, cfg.Auth.Enabled)
		assert.Equal(t, time.Minute, cfg.Server.RateWindow)
		assert.Equal(t, 1800, cfg.Fulfillment.CapacityGrams)
		assert.Equal(t, 4, cfg.Shipping.Workers)
	})

	t.Run("parses API keys with whitespace", func(t *testing.T) {
		t.Setenv("API_KEYS", " key1 , key2 , key3 ")

		cfg := Load()

		assert.Len(t, cfg.Auth.APIKeys, 3)
		assert.True(t, cfg.Auth.APIKeys["key3"])
	})

	t.Run("returns nil for empty API keys", func(t *testing.T) {
		t.Setenv("API_KEYS", "")

		cfg := Load()

		assert.Nil(t, cfg.Auth.APIKeys)
	})

	t.Run("appends CORS origins to defaults", func(t *testing.T) {
		t.Setenv("CORS_ORIGINS", "https://ops.example.com, ")

		cfg := Load()

		assert.Equal(t, []string{"http://localhost:3000", "http://127.0.0.1:3000", "https://ops.example.com"}, cfg.Server.CORSOrigins)
	})
}
