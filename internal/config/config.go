package config

import (
	"crypto/subtle"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type RateLimit struct {
	Requests int           `mapstructure:"requests"`
	Interval time.Duration `mapstructure:"interval"`
}

type WebRTC struct {
	STUNURLs []string `mapstructure:"stun_urls"`
}

type Config struct {
	Mode           string        `mapstructure:"mode"`
	Port           int           `mapstructure:"port"`
	StaticPath     string        `mapstructure:"static_path"`
	ReadLimit      int64         `mapstructure:"read_limit"`
	PingPeriod     time.Duration `mapstructure:"ping_period"`
	WriteWait      time.Duration `mapstructure:"write_wait"`
	SendBuffer     int           `mapstructure:"send_buffer"`
	LogLevel       string        `mapstructure:"log_level"`
	AdminSecret    string        `mapstructure:"admin_secret"`
	CookieSecret   string        `mapstructure:"cookie_secret"`
	TokenTTL       time.Duration `mapstructure:"token_ttl"`
	MetadataMaxLen int           `mapstructure:"metadata_max_len"`
	// Backpressure is "kick" or "drop".
	Backpressure string    `mapstructure:"backpressure_policy"`
	RateLimit    RateLimit `mapstructure:"rate_limit"`
	WebRTC       WebRTC    `mapstructure:"webrtc"`
}

// IsAdminSecret reports whether secret matches the configured admin secret.
// An unset admin secret never matches.
func (c *Config) IsAdminSecret(secret string) bool {
	if c.AdminSecret == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(c.AdminSecret), []byte(secret)) == 1
}

// PongWait is the read deadline extended on every pong.
func (c *Config) PongWait() time.Duration {
	return c.PingPeriod * 10 / 9
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("mode", "release")
	v.SetDefault("port", 8080)
	v.SetDefault("static_path", "./web")
	v.SetDefault("read_limit", 32768)
	v.SetDefault("ping_period", "54s")
	v.SetDefault("write_wait", "5s")
	v.SetDefault("send_buffer", 64)
	v.SetDefault("log_level", "info")
	v.SetDefault("admin_secret", "")
	v.SetDefault("cookie_secret", "change-me")
	v.SetDefault("token_ttl", "24h")
	v.SetDefault("metadata_max_len", 10000)
	v.SetDefault("backpressure_policy", "kick")
	v.SetDefault("rate_limit.requests", 50)
	v.SetDefault("rate_limit.interval", "1s")
	v.SetDefault("webrtc.stun_urls", []string{"stun:stun.l.google.com:19302"})
}

// Load resolves configuration from defaults, the yaml file for CONFIG_ENV,
// ROOMSIGNAL_* environment variables and command line flags, in increasing
// precedence.
func Load(args []string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v)

	fs := pflag.NewFlagSet("roomsignal", pflag.ContinueOnError)
	configFile := fs.String("config", "", "path to a yaml config file")
	fs.Int("port", 8080, "listen port")
	fs.String("admin-secret", "", "admin secret granting trusted status")
	fs.String("log-level", "info", "trace|debug|info|warn|error")
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("failed to parse flags: %w", err)
	}
	for key, flag := range map[string]string{"port": "port", "admin_secret": "admin-secret", "log_level": "log-level"} {
		if err := v.BindPFlag(key, fs.Lookup(flag)); err != nil {
			return nil, fmt.Errorf("failed to bind flag %s: %w", flag, err)
		}
	}

	v.SetEnvPrefix("ROOMSIGNAL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	fileName := *configFile
	if fileName == "" {
		env := os.Getenv("CONFIG_ENV")
		if env == "" {
			env = "dev"
		}
		fileName = fmt.Sprintf("config/config.%s.yaml", env)
	}
	v.SetConfigFile(fileName)

	if err := v.ReadInConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "config file not found (%s), using defaults\n", fileName)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.PingPeriod <= 0 {
		return nil, fmt.Errorf("ping_period must be positive, got %s", cfg.PingPeriod)
	}
	if cfg.SendBuffer <= 0 {
		return nil, fmt.Errorf("send_buffer must be positive, got %d", cfg.SendBuffer)
	}
	if cfg.Backpressure != "kick" && cfg.Backpressure != "drop" {
		return nil, fmt.Errorf("backpressure_policy must be kick or drop, got %q", cfg.Backpressure)
	}
	return &cfg, nil
}
