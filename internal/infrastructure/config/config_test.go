package config

import (
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadFromTOML(t *testing.T, toml string) (*Config, error) {
	t.Helper()
	v := viper.New()
	v.SetConfigType("toml")
	require.NoError(t, v.ReadConfig(strings.NewReader(toml)))
	return fromViper(v)
}

func TestLoad(t *testing.T) {
	t.Run("loads default values when nothing is configured", func(t *testing.T) {
		cfg, err := fromViper(viper.New())
		require.NoError(t, err)

		assert.Equal(t, "paymentflow", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "paymentflow", cfg.Database.DBName)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
		assert.Equal(t, 5, cfg.Database.MaxIdleConns)
		assert.Equal(t, "memory", cfg.Preferences.Backend)
		assert.Equal(t, 100, cfg.Email.MaxBatch)
		assert.Equal(t, float64(5), cfg.Email.RatePerSecond)
		assert.Equal(t, int64(10<<20), cfg.Email.MaxAttachmentBytes)
		assert.Equal(t, time.Minute, cfg.Subscription.CacheTTL)
		assert.False(t, cfg.Subscription.Enforce)
		assert.Equal(t, "0 8 * * *", cfg.Scheduler.DailyCronSchedule)
		assert.Equal(t, 15*time.Minute, cfg.Storage.PresignExpiration)
		assert.Equal(t, 1.0, cfg.Telemetry.SamplingRatio)
	})

	t.Run("environment variables with PF prefix override", func(t *testing.T) {
		t.Setenv("PF_APP_NAME", "test-app")
		t.Setenv("PF_APP_PORT", "9000")
		t.Setenv("PF_DATABASE_HOST", "testdb.local")
		t.Setenv("PF_DATABASE_PORT", "5433")
		t.Setenv("PF_DATABASE_PASSWORD", "testpass")
		t.Setenv("PF_PREFERENCES_BACKEND", "redis")
		t.Setenv("PF_EMAIL_MAX_BATCH", "20")
		t.Setenv("PF_SUBSCRIPTION_ENFORCE", "true")

		cfg, err := fromViper(viper.New())
		require.NoError(t, err)

		assert.Equal(t, "test-app", cfg.App.Name)
		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "testdb.local", cfg.Database.Host)
		assert.Equal(t, 5433, cfg.Database.Port)
		assert.Equal(t, "testpass", cfg.Database.Password)
		assert.Equal(t, "redis", cfg.Preferences.Backend)
		assert.Equal(t, 20, cfg.Email.MaxBatch)
		assert.True(t, cfg.Subscription.Enforce)
	})

	t.Run("reads toml sections", func(t *testing.T) {
		cfg, err := loadFromTOML(t, `
[email]
rate_per_second = 2.5
burst = 1
send_timeout = "10s"

[storage]
enabled = true
bucket = "attachments"
access_key = "ak"
secret_key = "sk"
use_path_style = true

[preferences]
ttl = "720h"
`)
		require.NoError(t, err)

		assert.Equal(t, 2.5, cfg.Email.RatePerSecond)
		assert.Equal(t, 1, cfg.Email.Burst)
		assert.Equal(t, 10*time.Second, cfg.Email.SendTimeout)
		assert.True(t, cfg.Storage.Enabled)
		assert.Equal(t, "attachments", cfg.Storage.Bucket)
		assert.True(t, cfg.Storage.UsePathStyle)
		assert.Equal(t, 720*time.Hour, cfg.Preferences.TTL)
	})

	t.Run("validates MaxIdleConns cannot exceed MaxOpenConns", func(t *testing.T) {
		t.Setenv("PF_DATABASE_MAX_OPEN_CONNS", "10")
		t.Setenv("PF_DATABASE_MAX_IDLE_CONNS", "20")

		_, err := fromViper(viper.New())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot exceed")
	})

	t.Run("rejects unknown preferences backend", func(t *testing.T) {
		t.Setenv("PF_PREFERENCES_BACKEND", "etcd")

		_, err := fromViper(viper.New())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "preferences.backend")
	})

	t.Run("enabled storage requires a bucket", func(t *testing.T) {
		_, err := loadFromTOML(t, "[storage]\nenabled = true\naccess_key = \"a\"\nsecret_key = \"b\"\n")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "storage.bucket")
	})

	t.Run("rejects sampling ratio out of range", func(t *testing.T) {
		t.Setenv("PF_TELEMETRY_SAMPLING_RATIO", "1.5")

		_, err := fromViper(viper.New())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sampling_ratio")
	})
}

func TestLoad_ProductionValidation(t *testing.T) {
	setProduction := func(t *testing.T) {
		t.Setenv("PF_APP_ENV", "production")
		t.Setenv("PF_JWT_SECRET", "this-is-a-very-long-secret-key-for-production")
		t.Setenv("PF_DATABASE_PASSWORD", "secure-password")
		t.Setenv("PF_DATABASE_SSLMODE", "require")
		t.Setenv("PF_SUBSCRIPTION_ENFORCE", "true")
		t.Setenv("PF_EMAIL_ENCRYPTION_KEY", "smtp-secret")
	}

	t.Run("passes validation with valid production config", func(t *testing.T) {
		setProduction(t)
		cfg, err := fromViper(viper.New())
		require.NoError(t, err)
		assert.True(t, cfg.IsProduction())
	})

	t.Run("requires jwt.secret at least 32 characters", func(t *testing.T) {
		setProduction(t)
		t.Setenv("PF_JWT_SECRET", "short")

		_, err := fromViper(viper.New())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "at least 32 characters")
	})

	t.Run("requires SSL", func(t *testing.T) {
		setProduction(t)
		t.Setenv("PF_DATABASE_SSLMODE", "disable")

		_, err := fromViper(viper.New())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sslmode")
	})

	t.Run("requires subscription enforcement", func(t *testing.T) {
		setProduction(t)
		t.Setenv("PF_SUBSCRIPTION_ENFORCE", "false")

		_, err := fromViper(viper.New())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "subscription.enforce")
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
		assert.Contains(t, dsn, "localhost:5432")
		assert.Contains(t, dsn, "testuser")
		assert.Contains(t, dsn, "/testdb")
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

		assert.Contains(t, cfg.DSN(), "pass%40word%23123")
	})
}

func TestRedisConfig_Addr(t *testing.T) {
	assert.Equal(t, "cache:6380", RedisConfig{Host: "cache", Port: 6380}.Addr())
}
