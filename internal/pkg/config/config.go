package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// DevJWTSecret is the device token key used when JWT_SECRET is unset. It is
// refused outside development.
const DevJWTSecret = "fleetwatch-dev-secret"

const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	Session   SessionConfig
	Telemetry TelemetryConfig

	Mongo  MongoConfig
	Redis  RedisConfig
	Influx InfluxConfig
}

type SessionConfig struct {
	// Backend stores device sessions: memory or redis.
	Backend string `env:"SESSION_BACKEND, default=memory"`
	// Registry holds the credentials: memory or mongo.
	Registry     string        `env:"REGISTRY_BACKEND,     default=memory"`
	LoginLatency time.Duration `env:"LOGIN_LATENCY,        default=1s"`
	TTL          time.Duration `env:"SESSION_TTL,          default=168h"`
	IdleTimeout  time.Duration `env:"SESSION_IDLE_TIMEOUT, default=30m"`
	BcryptCost   int           `env:"BCRYPT_COST,          default=10"`
	NoticeWindow time.Duration `env:"NOTIFICATION_DEDUP_WINDOW, default=30s"`
}

type TelemetryConfig struct {
	HealthInterval     time.Duration `env:"HEALTH_INTERVAL,     default=2s"`
	ConnectionInterval time.Duration `env:"CONNECTION_INTERVAL, default=15s"`
	AlertInterval      time.Duration `env:"ALERT_INTERVAL,      default=30s"`
	Workers            int           `env:"SNAPSHOT_WORKERS,    default=4"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=fleetwatch"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,   default=0"`
}

// InfluxConfig is optional: an empty URL disables snapshot history.
type InfluxConfig struct {
	URL    string `env:"INFLUX_URL"`
	Token  string `env:"INFLUX_TOKEN"`
	Org    string `env:"INFLUX_ORG,    default=guardian"`
	Bucket string `env:"INFLUX_BUCKET, default=fleetwatch"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.JWTSecret == "" && cfg.Development() {
		cfg.JWTSecret = DevJWTSecret
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

// Validate rejects unknown backend names, and a missing or development
// device key outside development.
func (c *Config) Validate() error {
	var errs []error
	switch c.Session.Backend {
	case BackendMemory, BackendRedis:
	default:
		errs = append(errs, fmt.Errorf("SESSION_BACKEND %q: want memory or redis", c.Session.Backend))
	}
	switch c.Session.Registry {
	case BackendMemory, BackendMongo:
	default:
		errs = append(errs, fmt.Errorf("REGISTRY_BACKEND %q: want memory or mongo", c.Session.Registry))
	}
	switch {
	case c.JWTSecret == "" && !c.Development():
		errs = append(errs, errors.New("JWT_SECRET must be set outside development"))
	case c.JWTSecret == DevJWTSecret && !c.Development():
		errs = append(errs, errors.New("JWT_SECRET must not be the development key outside development"))
	}
	return errors.Join(errs...)
}

// Development reports whether human-readable logs are wanted.
func (c *Config) Development() bool {
	return c.Env == "development"
}

// InfluxEnabled reports whether snapshot history goes to InfluxDB.
func (c *Config) InfluxEnabled() bool {
	return c.Influx.URL != ""
}
