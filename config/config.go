package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

/* Process-wide configuration, immutable after startup
 * Values come from the environment, optionally seeded from a .env file,
 * and required secrets fail fast before any listener or worker starts
 */

type Config struct {
	Port string `mapstructure:"PORT"`

	StreamAPISecret string `mapstructure:"STREAM_API_SECRET"`

	SplunkHECURL   string `mapstructure:"SPLUNK_HEC_URL"`
	SplunkHECToken string `mapstructure:"SPLUNK_HEC_TOKEN"`

	RedisHost     string `mapstructure:"REDIS_HOST"`
	RedisPort     int    `mapstructure:"REDIS_PORT"`
	RedisDB       int    `mapstructure:"REDIS_DB"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`

	WebhookQueueName           string `mapstructure:"WEBHOOK_QUEUE_NAME"`
	DeduplicationWindowSeconds int    `mapstructure:"DEDUPLICATION_WINDOW_SECONDS"`

	// HECMetadataFile optionally points to a YAML file overriding the
	// host/source/sourcetype labels stamped onto forwarded events
	HECMetadataFile string `mapstructure:"HEC_METADATA_FILE"`

	// RequeueOnFailure re-enqueues envelopes the sink rejected; off by default
	RequeueOnFailure bool `mapstructure:"REQUEUE_ON_FAILURE"`
}

func GetConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AutomaticEnv()

	setDefaults(v)

	// A .env file is a development convenience, not a requirement
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("parsing config data: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8000")
	v.SetDefault("STREAM_API_SECRET", "")
	v.SetDefault("SPLUNK_HEC_URL", "https://localhost:8088/services/collector/event")
	v.SetDefault("SPLUNK_HEC_TOKEN", "")
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("WEBHOOK_QUEUE_NAME", "stream_webhooks")
	v.SetDefault("DEDUPLICATION_WINDOW_SECONDS", 300)
	v.SetDefault("HEC_METADATA_FILE", "")
	v.SetDefault("REQUEUE_ON_FAILURE", false)
}

// Validate fails fast on missing required secrets
func (c *Config) Validate() error {
	if c.StreamAPISecret == "" {
		return fmt.Errorf("STREAM_API_SECRET not set")
	}
	if c.SplunkHECURL == "" {
		return fmt.Errorf("SPLUNK_HEC_URL not set")
	}
	if c.SplunkHECToken == "" {
		return fmt.Errorf("SPLUNK_HEC_TOKEN not set")
	}
	if c.DeduplicationWindowSeconds <= 0 {
		return fmt.Errorf("DEDUPLICATION_WINDOW_SECONDS must be positive")
	}
	return nil
}

// RedisAddr returns the host:port address of the Redis backend
func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.RedisHost, c.RedisPort)
}

// DedupWindow returns the deduplication window as a duration
func (c *Config) DedupWindow() time.Duration {
	return time.Duration(c.DeduplicationWindowSeconds) * time.Second
}
