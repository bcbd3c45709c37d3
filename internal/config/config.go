package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type AppCfg struct {
	Env             string        `mapstructure:"env"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	Timezone        string        `mapstructure:"timezone"`
}

type MongoCfg struct {
	URI            string        `mapstructure:"uri"`
	Database       string        `mapstructure:"database"`
	Transactions   bool          `mapstructure:"transactions"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
	MaxPoolSize    uint64        `mapstructure:"max_pool_size"`
}

type RedisCfg struct {
	Enabled     bool          `mapstructure:"enabled"`
	Addr        string        `mapstructure:"addr"`
	Password    string        `mapstructure:"password"`
	DB          int           `mapstructure:"db"`
	CacheTTL    time.Duration `mapstructure:"cache_ttl"`
	DialTimeout time.Duration `mapstructure:"dial_timeout"`
	PoolSize    int           `mapstructure:"pool_size"`
}

type KafkaCfg struct {
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
}

type NATSCfg struct {
	URL           string `mapstructure:"url"`
	SubjectPrefix string `mapstructure:"subject_prefix"`
}

type EventsCfg struct {
	Driver string   `mapstructure:"driver"`
	Kafka  KafkaCfg `mapstructure:"kafka"`
	NATS   NATSCfg  `mapstructure:"nats"`
}

type SecurityCfg struct {
	ExposeOTP            bool `mapstructure:"expose_otp"`
	OtpTTLSeconds        int  `mapstructure:"otp_ttl_seconds"`
	OtpRateLimitPerHour  int  `mapstructure:"otp_rate_limit_per_hour"`
	IPRateLimitPerMinute int  `mapstructure:"ip_rate_limit_per_minute"`
}

type DiscoveryCfg struct {
	MaxDistanceMeters float64 `mapstructure:"max_distance_meters"`
	Limit             int64   `mapstructure:"limit"`
}

type BookingCfg struct {
	DefaultLock    time.Duration `mapstructure:"default_lock"`
	ReaperInterval time.Duration `mapstructure:"reaper_interval"`
}

type TwilioCfg struct {
	AccountSID string `mapstructure:"account_sid"`
	AuthToken  string `mapstructure:"auth_token"`
	From       string `mapstructure:"from"`
	// CountryCode is prefixed to bare 10 digit numbers.
	CountryCode string `mapstructure:"country_code"`
}

type SMSCfg struct {
	Twilio TwilioCfg `mapstructure:"twilio"`
}

type ConsulCfg struct {
	Addr        string `mapstructure:"addr"`
	ServiceName string `mapstructure:"service_name"`
	ServiceHost string `mapstructure:"service_host"`
}

type Config struct {
	App       AppCfg       `mapstructure:"app"`
	Mongo     MongoCfg     `mapstructure:"mongo"`
	Redis     RedisCfg     `mapstructure:"redis"`
	Events    EventsCfg    `mapstructure:"events"`
	Security  SecurityCfg  `mapstructure:"security"`
	Discovery DiscoveryCfg `mapstructure:"discovery"`
	Booking   BookingCfg   `mapstructure:"booking"`
	SMS       SMSCfg       `mapstructure:"sms"`
	Consul    ConsulCfg    `mapstructure:"consul"`

	// Derived
	Location *time.Location `mapstructure:"-"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", 3000)
	v.SetDefault("app.read_timeout", 15*time.Second)
	v.SetDefault("app.write_timeout", 15*time.Second)
	v.SetDefault("app.idle_timeout", 60*time.Second)
	v.SetDefault("app.request_timeout", 10*time.Second)
	v.SetDefault("app.shutdown_timeout", 10*time.Second)
	v.SetDefault("app.timezone", "UTC")

	v.SetDefault("mongo.database", "companio")
	v.SetDefault("mongo.transactions", false)
	v.SetDefault("mongo.connect_timeout", 15*time.Second)
	v.SetDefault("mongo.max_pool_size", 100)

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.cache_ttl", 5*time.Minute)
	v.SetDefault("redis.dial_timeout", 5*time.Second)
	v.SetDefault("redis.pool_size", 20)

	v.SetDefault("events.driver", "none")
	v.SetDefault("events.kafka.topic", "companio.events")
	v.SetDefault("events.nats.subject_prefix", "companio")

	v.SetDefault("security.expose_otp", true)
	v.SetDefault("security.otp_ttl_seconds", 60)
	v.SetDefault("security.otp_rate_limit_per_hour", 5)
	v.SetDefault("security.ip_rate_limit_per_minute", 30)

	v.SetDefault("discovery.max_distance_meters", 20000)
	v.SetDefault("discovery.limit", 50)

	v.SetDefault("booking.default_lock", 6*time.Hour)
	v.SetDefault("booking.reaper_interval", time.Minute)

	v.SetDefault("sms.twilio.country_code", "+91")

	v.SetDefault("consul.service_name", "companio")
}

// Load reads the YAML file at path (optional) and applies APP_ prefixed
// environment overrides, e.g. APP_MONGO_URI or APP_APP_PORT.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	// AutomaticEnv only resolves keys viper already knows about.
	for _, key := range []string{"mongo.uri", "redis.password", "sms.twilio.account_sid", "sms.twilio.auth_token", "sms.twilio.from", "consul.addr", "events.nats.url"} {
		_ = v.BindEnv(key)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	loc, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid app.timezone %q: %w", cfg.App.Timezone, err)
	}
	cfg.Location = loc
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Mongo.URI == "" {
		return errors.New("mongo.uri is required (APP_MONGO_URI)")
	}
	if c.App.Port <= 0 {
		return errors.New("app.port must be positive")
	}
	switch c.Events.Driver {
	case "", "none":
	case "kafka":
		if len(c.Events.Kafka.Brokers) == 0 {
			return errors.New("events.kafka.brokers is required when events.driver=kafka")
		}
	case "nats":
		if c.Events.NATS.URL == "" {
			return errors.New("events.nats.url is required when events.driver=nats")
		}
	default:
		return fmt.Errorf("unknown events.driver %q", c.Events.Driver)
	}
	if c.Discovery.Limit <= 0 || c.Discovery.Limit > 50 {
		c.Discovery.Limit = 50
	}
	if c.Booking.DefaultLock <= 0 {
		return errors.New("booking.default_lock must be positive")
	}
	return nil
}

func (c *Config) IsDevelopment() bool { return c.App.Env == "development" }
