package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
# deployment config
database:
  host: db.local
  port: 5433
  user: pos
  password: "secret"
  database: pos

rabbitmq:
  host: mq.local
  user: guest
  password: guest

server:
  port: 8080

display:
  server_url: http://pos.local:8080
  name: kitchen-2
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "db.local", cfg.Database.Host)
	assert.Equal(t, 5433, cfg.Database.Port)
	assert.Equal(t, "secret", cfg.Database.Password)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, "mq.local", cfg.RabbitMQ.Host)
	assert.Equal(t, 5672, cfg.RabbitMQ.Port)
	assert.Equal(t, "/", cfg.RabbitMQ.VHost)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "http://pos.local:8080", cfg.Display.ServerURL)
	assert.Equal(t, "kitchen-2", cfg.Display.Name)
}

func TestLoadIncomplete(t *testing.T) {
	path := writeConfig(t, `
database:
  host: db.local
`)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}
