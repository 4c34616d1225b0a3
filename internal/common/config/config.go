// internal/common/config/config.go
package config

// Config is the main application configuration struct.
type Config struct {
	App           AppConfig               `mapstructure:"app"`
	Camunda       CamundaConfig           `mapstructure:"camunda"`
	Server        ServerConfig            `mapstructure:"server"`
	Artifacts     ArtifactsConfig         `mapstructure:"artifacts"`
	Database      DatabaseConfig          `mapstructure:"database"`
	Workers       map[string]WorkerConfig `mapstructure:"workers"`
	Notifications NotificationConfig      `mapstructure:"notifications"`
	Logging       LoggingConfig           `mapstructure:"logging"`
	Tracing       TracingConfig           `mapstructure:"tracing"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// CamundaConfig holds the gateway connection. MaxJobsActive and RequestTimeout
// are the defaults of every worker that does not set its own.
type CamundaConfig struct {
	BrokerAddress  string `mapstructure:"broker_address"`
	MaxJobsActive  int    `mapstructure:"max_jobs_active"`
	Timeout        int    `mapstructure:"timeout"`         // milliseconds
	RequestTimeout int    `mapstructure:"request_timeout"` // milliseconds, job activation long poll
	Secure         bool   `mapstructure:"secure"`          // TLS to the gateway; plaintext otherwise
}

// ServerConfig holds the HTTP listener for health, metrics and the assessment API.
type ServerConfig struct {
	Address string `mapstructure:"address"`
}

// Artifact sources.
const (
	ArtifactSourceFile  = "file"
	ArtifactSourceRedis = "redis"
)

// ArtifactsConfig tells the process where the trained model artifacts live.
type ArtifactsConfig struct {
	Source       string `mapstructure:"source"`        // file | redis
	Dir          string `mapstructure:"dir"`           // for the file source
	RedisPrefix  string `mapstructure:"redis_prefix"`  // for the redis source
	ModelVersion string `mapstructure:"model_version"` // overrides the version in model.json when set
}

type DatabaseConfig struct {
	Redis RedisConfig `mapstructure:"redis"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// DefaultMaxRetries applies to workers whose max_retries is not set.
const DefaultMaxRetries = 3

// WorkerConfig holds the core settings applicable to every worker.
type WorkerConfig struct {
	Enabled        bool `mapstructure:"enabled"`
	MaxJobsActive  int  `mapstructure:"max_jobs_active"`
	Timeout        int  `mapstructure:"timeout"`         // milliseconds
	RequestTimeout int  `mapstructure:"request_timeout"` // milliseconds
	// MaxRetries caps the retries of retryable failures. An explicit 0 disables them.
	MaxRetries int `mapstructure:"max_retries"`
}

// NotificationConfig holds settings for the notify-risk-review worker.
type NotificationConfig struct {
	SNS struct {
		Enabled  bool   `mapstructure:"enabled"`
		TopicARN string `mapstructure:"topic_arn"`
	} `mapstructure:"sns"`
	Email struct {
		Enabled   bool   `mapstructure:"enabled"`
		FromEmail string `mapstructure:"from_email"`
		ToEmail   string `mapstructure:"to_email"`
	} `mapstructure:"email"`
	AWS struct {
		Region string `mapstructure:"region"`
	} `mapstructure:"aws"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// TracingConfig holds OpenTelemetry tracing settings.
type TracingConfig struct {
	Enabled        bool    `mapstructure:"enabled"`
	JaegerEndpoint string  `mapstructure:"jaeger_endpoint"`
	SampleRatio    float64 `mapstructure:"sample_ratio"`
}
