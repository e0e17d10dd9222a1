package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("RATE_LIMIT_PER_MIN", "")
	cfg := Load()
	assert.Equal(t, "mongo", cfg.StoreDriver)
	assert.False(t, cfg.IsMemoryStore())
	assert.Equal(t, 120, cfg.RateLimitPerMin)
	assert.Equal(t, "relation_repairs", cfg.RabbitMQRepairQueue)
	assert.Empty(t, cfg.ESAddrs())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", "Memory")
	t.Setenv("JWT_ACCESS_TTL", "15m")
	t.Setenv("SWEEP_ON_START", "true")
	t.Setenv("RELATION_REPAIR_GRACE", "45s")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, ,http://b.test")
	cfg := Load()
	assert.True(t, cfg.IsMemoryStore())
	assert.Equal(t, 15*time.Minute, cfg.AccessTTL)
	assert.True(t, cfg.SweepOnStart)
	assert.Equal(t, 45*time.Second, cfg.RepairGrace)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins())
}

func TestLoad_BadValuesFallBack(t *testing.T) {
	t.Setenv("MONGO_MAX_POOL", "lots")
	t.Setenv("MONGO_TIMEOUT", "soon")
	t.Setenv("MAIL_SEND_ENABLED", "maybe")
	cfg := Load()
	assert.Equal(t, 50, cfg.MongoMaxPool)
	assert.Equal(t, 10*time.Second, cfg.MongoTimeout)
	assert.True(t, cfg.MailSendEnabled)
}

func TestValidate(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("APP_ENV", "development")
	t.Setenv("JWT_ACCESS_SECRET", "")
	assert.NoError(t, Load().Validate())

	t.Setenv("STORE_DRIVER", "postgres")
	assert.ErrorContains(t, Load().Validate(), "STORE_DRIVER")

	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("APP_ENV", "production")
	assert.ErrorContains(t, Load().Validate(), "JWT_ACCESS_SECRET")

	t.Setenv("JWT_ACCESS_SECRET", "s3cret")
	assert.NoError(t, Load().Validate())

	t.Setenv("JWT_ACCESS_TTL", "-1m")
	assert.ErrorContains(t, Load().Validate(), "JWT_ACCESS_TTL")
}
