package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadFromFile(t *testing.T) {
	t.Setenv("TEST_RISK_TOPIC", "arn:aws:sns:eu-west-1:123456789012:risk-review")

	path := writeConfig(t, `
app:
  name: loan-risk-workers
  environment: test
camunda:
  broker_address: localhost:26500
  max_jobs_active: 8
  request_timeout: 20000
artifacts:
  source: file
  dir: /opt/artifacts
workers:
  assess-default-risk:
    enabled: true
    max_jobs_active: 20
    max_retries: 0
  notify-risk-review:
    enabled: false
notifications:
  sns:
    enabled: true
    topic_arn: ${TEST_RISK_TOPIC}
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "localhost:26500", cfg.Camunda.BrokerAddress)
	assert.Equal(t, "/opt/artifacts", cfg.Artifacts.Dir)
	assert.Equal(t, "risk:artifacts", cfg.Artifacts.RedisPrefix)
	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, "arn:aws:sns:eu-west-1:123456789012:risk-review", cfg.Notifications.SNS.TopicARN)

	assess := cfg.Workers["assess-default-risk"]
	assert.True(t, assess.Enabled)
	assert.Equal(t, 20, assess.MaxJobsActive)
	assert.Equal(t, 30000, assess.Timeout)
	assert.Equal(t, 20000, assess.RequestTimeout)
	assert.Equal(t, 0, assess.MaxRetries, "explicit zero is kept")

	notify := cfg.Workers["notify-risk-review"]
	assert.False(t, notify.Enabled)
	assert.Equal(t, 8, notify.MaxJobsActive)
	assert.Equal(t, DefaultMaxRetries, notify.MaxRetries)

	fallback := GetWorkerConfig(cfg, "validate-applicant-data")
	assert.True(t, fallback.Enabled)
	assert.Equal(t, 8, fallback.MaxJobsActive)
	assert.Equal(t, 20000, fallback.RequestTimeout)
	assert.Equal(t, DefaultMaxRetries, fallback.MaxRetries)
	assert.Equal(t, 1.0, cfg.Tracing.SampleRatio)
}

func TestLoadFromFile_ShippedConfig(t *testing.T) {
	t.Setenv("ZEEBE_ADDRESS", "localhost:26500")

	cfg, err := LoadFromFile("../../../configs/config.yaml")
	require.NoError(t, err)

	assert.Equal(t, 0, GetWorkerConfig(cfg, "validate-applicant-data").MaxRetries)
	assert.Equal(t, 0, GetWorkerConfig(cfg, "assess-default-risk").MaxRetries)
	assert.Equal(t, 3, GetWorkerConfig(cfg, "notify-risk-review").MaxRetries)
	assert.Equal(t, 30000, GetWorkerConfig(cfg, "notify-risk-review").RequestTimeout)
}

func TestLoadFromFile_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing broker", `
artifacts:
  source: file
`},
		{"unknown artifact source", `
camunda:
  broker_address: localhost:26500
artifacts:
  source: s3
`},
		{"redis source without address", `
camunda:
  broker_address: localhost:26500
artifacts:
  source: redis
`},
		{"email without recipients", `
camunda:
  broker_address: localhost:26500
notifications:
  email:
    enabled: true
`},
		{"bad sample ratio", `
camunda:
  broker_address: localhost:26500
tracing:
  sample_ratio: 2
`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("ZEEBE_ADDRESS", "")
			t.Setenv("REDIS_ADDRESS", "")
			t.Setenv("RISK_REVIEW_FROM_EMAIL", "")
			t.Setenv("RISK_REVIEW_TO_EMAIL", "")
			_, err := LoadFromFile(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestLoadFromFile_EnvOverride(t *testing.T) {
	t.Setenv("REDIS_ADDRESS", "redis:6379")

	cfg, err := LoadFromFile(writeConfig(t, `
camunda:
  broker_address: localhost:26500
artifacts:
  source: redis
`))
	require.NoError(t, err)
	assert.Equal(t, "redis:6379", cfg.Database.Redis.Address)
}

func TestGetDuration(t *testing.T) {
	assert.Equal(t, 1500*time.Millisecond, GetDuration(1500))
}
