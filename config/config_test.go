package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("LISTINGS_API_URL", "")
	t.Setenv("SESSION_TTL", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8082/api", cfg.ListingsAPIURL)
	assert.Equal(t, "http://localhost:8000", cfg.PredictionAPIURL)
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	assert.False(t, cfg.Database.Enabled)
	assert.True(t, cfg.WizardPricingStep)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("LISTINGS_API_URL", "http://gateway:8082/api")
	t.Setenv("SESSION_TTL", "45m")
	t.Setenv("CATALOG_TTL", "120")
	t.Setenv("DB_ENABLED", "true")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "http://gateway:8082/api", cfg.ListingsAPIURL)
	assert.Equal(t, 45*time.Minute, cfg.SessionTTL)
	assert.Equal(t, 2*time.Minute, cfg.CatalogTTL)
	assert.True(t, cfg.Database.Enabled)
}

func TestLoadConfig_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte(`
port: "9000"
prediction_api_url: http://ml:8000
database:
  host: mysql
  name: saved
`)
	require.NoError(t, os.WriteFile(path, content, 0o600))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("PORT", "9100")
	t.Setenv("PREDICTION_API_URL", "")
	t.Setenv("DB_HOST", "")
	t.Setenv("DB_NAME", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	// el entorno gana sobre el archivo
	assert.Equal(t, "9100", cfg.Port)
	assert.Equal(t, "http://ml:8000", cfg.PredictionAPIURL)
	assert.Equal(t, "mysql", cfg.Database.Host)
	assert.Equal(t, "3306", cfg.Database.Port)
	assert.Equal(t, "rental_user:rental_password@tcp(mysql:3306)/saved?charset=utf8mb4&parseTime=True&loc=Local", cfg.Database.DSN())
}

func TestLoadConfig_MissingFile(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := LoadConfig()
	assert.Error(t, err)
}
