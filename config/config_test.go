package config_test

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/rescisao-engine/config"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"APP_ADDR", "DB_PATH", "RULES_FILE", "LOG_LEVEL", "APP_ENV", "CORS_ORIGINS", "MAX_BODY_BYTES", "SHUTDOWN_TIMEOUT"} {
		t.Setenv(k, "")
	}

	cfg := config.Load()

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "rescisao.db", cfg.DBPath)
	assert.Empty(t, cfg.RulesFile)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	require.NoError(t, cfg.Validate())
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("APP_ADDR", ":9090")
	t.Setenv("DB_PATH", "/tmp/x.db")
	t.Setenv("RULES_FILE", "rules/2026.yaml")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("MAX_BODY_BYTES", "not-a-number")
	t.Setenv("SHUTDOWN_TIMEOUT", "3s")

	cfg := config.Load()

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "/tmp/x.db", cfg.DBPath)
	assert.Equal(t, "rules/2026.yaml", cfg.RulesFile)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.Equal(t, int64(1048576), cfg.MaxBodyBytes)
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
}

func TestValidate(t *testing.T) {
	valid := config.Config{Addr: ":8080", DBPath: "x.db", MaxBodyBytes: 4096, ShutdownTimeout: time.Second}
	require.NoError(t, valid.Validate())

	for name, mutate := range map[string]func(*config.Config){
		"empty addr":         func(c *config.Config) { c.Addr = " " },
		"empty db":           func(c *config.Config) { c.DBPath = "" },
		"tiny body":          func(c *config.Config) { c.MaxBodyBytes = 10 },
		"no shutdown window": func(c *config.Config) { c.ShutdownTimeout = 0 },
		"memory in prod": func(c *config.Config) {
			c.Environment = "production"
			c.DBPath = ":memory:"
		},
	} {
		cfg := valid
		mutate(&cfg)
		assert.Error(t, cfg.Validate(), name)
	}
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, config.ParseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, config.ParseLevel("WARN"))
	assert.Equal(t, slog.LevelError, config.ParseLevel(" error "))
	assert.Equal(t, slog.LevelInfo, config.ParseLevel("verbose"))
}

func TestNewLogger_WritesJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := config.NewLogger(&buf, "warn")

	logger.Info("hidden")
	logger.Warn("shown", "reason", "04")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"msg":"shown"`)
	assert.Contains(t, out, `"reason":"04"`)
}
