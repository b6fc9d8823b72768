package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	// Save original env vars and restore after tests
	originalEnv := map[string]string{
		"WMS_APP_NAME":                  os.Getenv("WMS_APP_NAME"),
		"WMS_APP_ENV":                   os.Getenv("WMS_APP_ENV"),
		"WMS_APP_PORT":                  os.Getenv("WMS_APP_PORT"),
		"WMS_DATABASE_HOST":             os.Getenv("WMS_DATABASE_HOST"),
		"WMS_DATABASE_PORT":             os.Getenv("WMS_DATABASE_PORT"),
		"WMS_DATABASE_USER":             os.Getenv("WMS_DATABASE_USER"),
		"WMS_DATABASE_PASSWORD":         os.Getenv("WMS_DATABASE_PASSWORD"),
		"WMS_DATABASE_DBNAME":           os.Getenv("WMS_DATABASE_DBNAME"),
		"WMS_DATABASE_SSLMODE":          os.Getenv("WMS_DATABASE_SSLMODE"),
		"WMS_DATABASE_MAX_OPEN_CONNS":   os.Getenv("WMS_DATABASE_MAX_OPEN_CONNS"),
		"WMS_DATABASE_MAX_IDLE_CONNS":   os.Getenv("WMS_DATABASE_MAX_IDLE_CONNS"),
		"WMS_JWT_SECRET":                os.Getenv("WMS_JWT_SECRET"),
		"WMS_WAREHOUSE_NAME":            os.Getenv("WMS_WAREHOUSE_NAME"),
		"WMS_WAREHOUSE_CAPACITY":        os.Getenv("WMS_WAREHOUSE_CAPACITY"),
		"WMS_WAREHOUSE_COORDINATE_ROWS": os.Getenv("WMS_WAREHOUSE_COORDINATE_ROWS"),
	}

	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	clearEnv := func() {
		for k := range originalEnv {
			os.Unsetenv(k)
		}
	}

	t.Run("loads default values when env vars not set", func(t *testing.T) {
		clearEnv()

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "wms-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "wms", cfg.Database.DBName)
		assert.Equal(t, "disable", cfg.Database.SSLMode)
		assert.Equal(t, "main", cfg.Warehouse.Name)
		assert.Equal(t, 10000, cfg.Warehouse.Capacity)
		assert.Equal(t, 100, cfg.Warehouse.CoordinateRows)
	})

	t.Run("loads values from environment variables with WMS prefix", func(t *testing.T) {
		clearEnv()
		os.Setenv("WMS_APP_NAME", "test-app")
		os.Setenv("WMS_APP_PORT", "9000")
		os.Setenv("WMS_DATABASE_HOST", "testdb.local")
		os.Setenv("WMS_DATABASE_PORT", "5433")
		os.Setenv("WMS_WAREHOUSE_CAPACITY", "600")
		os.Setenv("WMS_WAREHOUSE_COORDINATE_ROWS", "50")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "test-app", cfg.App.Name)
		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "testdb.local", cfg.Database.Host)
		assert.Equal(t, 5433, cfg.Database.Port)
		assert.Equal(t, 600, cfg.Warehouse.Capacity)
		assert.Equal(t, 50, cfg.Warehouse.CoordinateRows)
	})

	t.Run("validates MaxIdleConns cannot exceed MaxOpenConns", func(t *testing.T) {
		clearEnv()
		os.Setenv("WMS_DATABASE_MAX_OPEN_CONNS", "10")
		os.Setenv("WMS_DATABASE_MAX_IDLE_CONNS", "20")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "max_idle_conns")
		assert.Contains(t, err.Error(), "cannot exceed")
	})

	t.Run("rejects a negative warehouse capacity", func(t *testing.T) {
		clearEnv()
		os.Setenv("WMS_WAREHOUSE_CAPACITY", "-1")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "warehouse.capacity must be positive")
	})
}

func TestLoad_ProductionValidation(t *testing.T) {
	originalEnv := map[string]string{
		"WMS_APP_ENV":           os.Getenv("WMS_APP_ENV"),
		"WMS_JWT_SECRET":        os.Getenv("WMS_JWT_SECRET"),
		"WMS_DATABASE_PASSWORD": os.Getenv("WMS_DATABASE_PASSWORD"),
		"WMS_DATABASE_SSLMODE":  os.Getenv("WMS_DATABASE_SSLMODE"),
	}

	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	clearEnv := func() {
		for k := range originalEnv {
			os.Unsetenv(k)
		}
	}

	t.Run("requires jwt.secret in production", func(t *testing.T) {
		clearEnv()
		os.Setenv("WMS_APP_ENV", "production")
		os.Setenv("WMS_DATABASE_PASSWORD", "secure-password")
		os.Setenv("WMS_DATABASE_SSLMODE", "require")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "jwt.secret is required in production")
	})

	t.Run("requires jwt.secret at least 32 characters in production", func(t *testing.T) {
		clearEnv()
		os.Setenv("WMS_APP_ENV", "production")
		os.Setenv("WMS_JWT_SECRET", "short-secret")
		os.Setenv("WMS_DATABASE_PASSWORD", "secure-password")
		os.Setenv("WMS_DATABASE_SSLMODE", "require")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "jwt.secret must be at least 32 characters")
	})

	t.Run("requires SSL enabled in production", func(t *testing.T) {
		clearEnv()
		os.Setenv("WMS_APP_ENV", "production")
		os.Setenv("WMS_JWT_SECRET", "this-is-a-very-secure-jwt-secret-key-32chars")
		os.Setenv("WMS_DATABASE_PASSWORD", "secure-password")
		os.Setenv("WMS_DATABASE_SSLMODE", "disable")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.sslmode cannot be 'disable' in production")
	})

	t.Run("passes validation with valid production config", func(t *testing.T) {
		clearEnv()
		os.Setenv("WMS_APP_ENV", "production")
		os.Setenv("WMS_JWT_SECRET", "this-is-a-very-secure-jwt-secret-key-32chars")
		os.Setenv("WMS_DATABASE_PASSWORD", "secure-password")
		os.Setenv("WMS_DATABASE_SSLMODE", "require")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "production", cfg.App.Env)
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	t.Run("generates valid DSN", func(t *testing.T) {
		cfg := DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "testuser",
			Password: "testpass",
			DBName:   "testdb",
			SSLMode:  "disable",
		}

		dsn := cfg.DSN()
		assert.Contains(t, dsn, "localhost")
		assert.Contains(t, dsn, "5432")
		assert.Contains(t, dsn, "testuser")
		assert.Contains(t, dsn, "testdb")
		assert.Contains(t, dsn, "sslmode=disable")
	})

	t.Run("escapes special characters in password", func(t *testing.T) {
		cfg := DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "user",
			Password: "pass@word#123",
			DBName:   "db",
			SSLMode:  "disable",
		}

		dsn := cfg.DSN()
		assert.Contains(t, dsn, "pass%40word%23123")
	})
}
