package notifyriskreview

import (
	"fmt"
	"time"
)

type Config struct {
	Enabled       bool          `mapstructure:"enabled"`
	MaxJobsActive int           `mapstructure:"max_jobs_active"`
	Timeout       time.Duration `mapstructure:"timeout"`
	MaxRetries    int           `mapstructure:"max_retries"` // caps engine retries of retryable failures
	AWSRegion     string        `mapstructure:"aws_region"`
	SNSEnabled    bool          `mapstructure:"sns_enabled"`
	TopicARN      string        `mapstructure:"topic_arn"`
	EmailEnabled  bool          `mapstructure:"email_enabled"`
	FromEmail     string        `mapstructure:"from_email"`
	ToEmail       string        `mapstructure:"to_email"`
}

func DefaultConfig() *Config {
	return &Config{
		Enabled:       true,
		MaxJobsActive: 5,
		Timeout:       30 * time.Second,
		MaxRetries:    3,
		AWSRegion:     "us-east-1",
	}
}

func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.MaxJobsActive <= 0 {
		return fmt.Errorf("max_jobs_active must be positive")
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("max_retries must not be negative")
	}
	if c.SNSEnabled && c.TopicARN == "" {
		return fmt.Errorf("topic_arn is required when sns is enabled")
	}
	if c.EmailEnabled && (c.FromEmail == "" || c.ToEmail == "") {
		return fmt.Errorf("from_email and to_email are required when email is enabled")
	}
	if (c.SNSEnabled || c.EmailEnabled) && c.AWSRegion == "" {
		return fmt.Errorf("aws_region is required")
	}
	return nil
}
