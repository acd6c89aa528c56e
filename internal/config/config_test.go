package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.Port)
	assert.Equal(t, "mongo", cfg.StoreDriver)
	assert.Equal(t, "tutoring", cfg.MongoDatabase)
	assert.Equal(t, 720*time.Hour, cfg.JWTTTL)
	assert.Equal(t, 5*time.Minute, cfg.TeacherCacheTTL)
	assert.True(t, cfg.UsesInsecureSecret())
	assert.False(t, cfg.SMTP().IsComplete())
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PORT", "8081")
	t.Setenv("JWT_SECRET", "s3cr3t")
	t.Setenv("JWT_TTL", "1h")
	t.Setenv("BASE_URL", "https://tutor.example.com")
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("SMTP_USERNAME", "mailer")
	t.Setenv("SMTP_PASSWORD", "pw")
	t.Setenv("SMTP_SENDER_EMAIL", "no-reply@example.com")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 8081, cfg.Port)
	assert.Equal(t, "s3cr3t", cfg.JWTSecret)
	assert.Equal(t, time.Hour, cfg.JWTTTL)
	assert.Equal(t, "https://tutor.example.com", cfg.BaseURL)
	assert.Equal(t, "memory", cfg.StoreDriver)
	assert.False(t, cfg.UsesInsecureSecret())
	assert.True(t, cfg.SMTP().IsComplete())
}

func TestValidate(t *testing.T) {
	valid := Config{
		BaseURL:       "http://localhost:5000",
		StoreDriver:   "mongo",
		MongoURI:      "mongodb://localhost:27017",
		MongoDatabase: "tutoring",
		JWTSecret:     "secret",
		JWTTTL:        time.Hour,
	}
	require.NoError(t, valid.Validate())

	testCases := []struct {
		name   string
		mutate func(c *Config)
	}{
		{name: "empty secret", mutate: func(c *Config) { c.JWTSecret = "" }},
		{name: "zero ttl", mutate: func(c *Config) { c.JWTTTL = 0 }},
		{name: "no base url", mutate: func(c *Config) { c.BaseURL = "" }},
		{name: "unknown driver", mutate: func(c *Config) { c.StoreDriver = "postgres" }},
		{name: "mongo without uri", mutate: func(c *Config) { c.MongoURI = "" }},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid
			tc.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
