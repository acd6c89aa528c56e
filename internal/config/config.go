package config

import (
	"errors"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const insecureJWTSecret = "your-secret-key"

type Config struct {
	ServiceName string `mapstructure:"SERVICE_NAME"`
	Port        int    `mapstructure:"PORT"`
	BaseURL     string `mapstructure:"BASE_URL"`

	StoreDriver         string        `mapstructure:"STORE_DRIVER"` // "mongo" or "memory"
	MongoURI            string        `mapstructure:"MONGO_URI"`
	MongoDatabase       string        `mapstructure:"MONGO_DATABASE"`
	MongoConnectTimeout time.Duration `mapstructure:"MONGO_CONNECT_TIMEOUT"`

	JWTSecret string        `mapstructure:"JWT_SECRET"`
	JWTIssuer string        `mapstructure:"JWT_ISSUER"`
	JWTTTL    time.Duration `mapstructure:"JWT_TTL"`

	SMTPHost         string        `mapstructure:"SMTP_HOST"`
	SMTPPort         int           `mapstructure:"SMTP_PORT"`
	SMTPUsername     string        `mapstructure:"SMTP_USERNAME"`
	SMTPPassword     string        `mapstructure:"SMTP_PASSWORD"`
	SMTPSenderEmail  string        `mapstructure:"SMTP_SENDER_EMAIL"`
	SMTPSenderName   string        `mapstructure:"SMTP_SENDER_NAME"`
	EmailSendTimeout time.Duration `mapstructure:"EMAIL_SEND_TIMEOUT"`

	RedisAddr       string        `mapstructure:"REDIS_ADDR"`
	RedisPassword   string        `mapstructure:"REDIS_PASSWORD"`
	RedisDB         int           `mapstructure:"REDIS_DB"`
	TeacherCacheTTL time.Duration `mapstructure:"TEACHER_CACHE_TTL"`

	NATSURL string `mapstructure:"NATS_URL"`

	MetricsEnabled bool   `mapstructure:"METRICS_ENABLED"`
	OTLPEndpoint   string `mapstructure:"OTEL_EXPORTER_OTLP_ENDPOINT"`
}

// SMTPConfig holds the outbound mail account used for confirmation emails.
type SMTPConfig struct {
	Host        string
	Port        int
	Username    string
	Password    string
	SenderEmail string
	SenderName  string
}

// SMTP groups the mail settings for the mailer constructor.
func (c *Config) SMTP() SMTPConfig {
	return SMTPConfig{
		Host:        c.SMTPHost,
		Port:        c.SMTPPort,
		Username:    c.SMTPUsername,
		Password:    c.SMTPPassword,
		SenderEmail: c.SMTPSenderEmail,
		SenderName:  c.SMTPSenderName,
	}
}

// IsComplete reports whether enough is set to actually dial the SMTP server.
func (c SMTPConfig) IsComplete() bool {
	return c.Host != "" && c.Username != "" && c.Password != "" && c.SenderEmail != ""
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVICE_NAME", "tutoring-service")
	v.SetDefault("PORT", 5000)
	v.SetDefault("BASE_URL", "http://localhost:5000")
	v.SetDefault("STORE_DRIVER", "mongo")
	v.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	v.SetDefault("MONGO_DATABASE", "tutoring")
	v.SetDefault("MONGO_CONNECT_TIMEOUT", "10s")
	v.SetDefault("JWT_SECRET", insecureJWTSecret)
	v.SetDefault("JWT_ISSUER", "tutoring-service")
	v.SetDefault("JWT_TTL", "720h")
	v.SetDefault("SMTP_HOST", "smtp.gmail.com")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("SMTP_USERNAME", "")
	v.SetDefault("SMTP_PASSWORD", "")
	v.SetDefault("SMTP_SENDER_EMAIL", "")
	v.SetDefault("SMTP_SENDER_NAME", "Tutoring")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("TEACHER_CACHE_TTL", "5m")
	v.SetDefault("NATS_URL", "")
	v.SetDefault("METRICS_ENABLED", true)
	v.SetDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	v.SetDefault("EMAIL_SEND_TIMEOUT", "30s")
}

// LoadConfig reads .env (if any), an optional config.env file and the environment.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects configurations the service cannot start with.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is not set")
	}
	if c.JWTTTL <= 0 {
		return errors.New("JWT_TTL must be positive")
	}
	if c.BaseURL == "" {
		return errors.New("BASE_URL is not set")
	}
	switch c.StoreDriver {
	case "mongo":
		if c.MongoURI == "" || c.MongoDatabase == "" {
			return errors.New("MONGO_URI and MONGO_DATABASE are required for the mongo store")
		}
	case "memory":
	default:
		return errors.New("STORE_DRIVER must be \"mongo\" or \"memory\"")
	}
	return nil
}

// UsesInsecureSecret reports whether the JWT secret is still the shipped default.
func (c *Config) UsesInsecureSecret() bool {
	return c.JWTSecret == insecureJWTSecret
}
