package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, ":8085", cfg.Server.Port)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "legacy", cfg.Stats.Mode)
	assert.Equal(t, "accept", cfg.Tickets.CodePolicy)
	assert.Equal(t, 5, cfg.Tickets.MaxAttempts)
	assert.Equal(t, "none", cfg.Events.Broker)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "datos_actuales.txt", cfg.Report.Path)
	assert.Equal(t, 10*time.Second, cfg.Catalog.Timeout)
	assert.Contains(t, cfg.Catalog.StadiumsURL, "stadiums.json")
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("STATS_MODE", "Corrected")
	t.Setenv("TICKET_CODE_POLICY", "retry")
	t.Setenv("TICKET_CODE_MAX_ATTEMPTS", "not-a-number")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("CATALOG_TIMEOUT_SECONDS", "3")

	cfg := Load()

	assert.Equal(t, "corrected", cfg.Stats.Mode)
	assert.Equal(t, "retry", cfg.Tickets.CodePolicy)
	assert.Equal(t, 5, cfg.Tickets.MaxAttempts)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, 3*time.Second, cfg.Catalog.Timeout)
}
