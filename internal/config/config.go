package config

import (
	"errors"
	"fmt"
	"net/netip"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

type Config struct {
	HTTPAddr       string
	TrustedProxies []string

	DatabaseURL string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	JWTSecret string
	TokenTTL  time.Duration

	Timezone     string
	DefaultLimit int

	LogLevel  string
	LogPretty bool

	RateLimitRPS   float64
	RateLimitBurst int

	BanMaxFailures int
	BanWindow      time.Duration
}

// Load reads configuration from defaults, an optional config file,
// a .env file and FINANCE_* environment variables, in increasing priority.
func Load(paths ...string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	v.SetEnvPrefix("FINANCE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("database.url", "FINANCE_DATABASE_URL", "DATABASE_URL")

	cfg := &Config{
		HTTPAddr:       v.GetString("http.addr"),
		TrustedProxies: v.GetStringSlice("http.trusted_proxies"),
		DatabaseURL:    v.GetString("database.url"),
		RedisAddr:      v.GetString("redis.addr"),
		RedisPassword:  v.GetString("redis.password"),
		RedisDB:        v.GetInt("redis.db"),
		JWTSecret:      v.GetString("auth.jwt_secret"),
		TokenTTL:       v.GetDuration("auth.token_ttl"),
		Timezone:       v.GetString("app.timezone"),
		DefaultLimit:   v.GetInt("listing.default_limit"),
		LogLevel:       v.GetString("log.level"),
		LogPretty:      v.GetBool("log.pretty"),
		RateLimitRPS:   v.GetFloat64("ratelimit.rps"),
		RateLimitBurst: v.GetInt("ratelimit.burst"),
		BanMaxFailures: v.GetInt("ban.max_failures"),
		BanWindow:      v.GetDuration("ban.window"),
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.trusted_proxies", []string{})
	v.SetDefault("database.url", "")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.token_ttl", "24h")
	v.SetDefault("app.timezone", "Asia/Ho_Chi_Minh")
	v.SetDefault("listing.default_limit", 10)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)
	v.SetDefault("ratelimit.rps", 1)
	v.SetDefault("ratelimit.burst", 3)
	v.SetDefault("ban.max_failures", 5)
	v.SetDefault("ban.window", "15m")
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var problems []string

	if c.HTTPAddr == "" {
		problems = append(problems, "http.addr cannot be empty")
	}
	if _, err := ParseProxies(c.TrustedProxies); err != nil {
		problems = append(problems, err.Error())
	}
	if c.DatabaseURL == "" {
		problems = append(problems, "database.url (or DATABASE_URL) is required")
	}
	if c.JWTSecret == "" {
		problems = append(problems, "auth.jwt_secret is required")
	} else if len(c.JWTSecret) < 16 {
		problems = append(problems, "auth.jwt_secret must be at least 16 characters")
	}
	if c.TokenTTL <= 0 {
		problems = append(problems, fmt.Sprintf("auth.token_ttl must be positive, got %s", c.TokenTTL))
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		problems = append(problems, fmt.Sprintf("invalid app.timezone %q: %v", c.Timezone, err))
	}
	if c.DefaultLimit < 1 || c.DefaultLimit > 100 {
		problems = append(problems, fmt.Sprintf("listing.default_limit must be between 1 and 100, got %d", c.DefaultLimit))
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		problems = append(problems, fmt.Sprintf("invalid log.level %q", c.LogLevel))
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst < 1 {
		problems = append(problems, "ratelimit.rps must be positive and ratelimit.burst at least 1")
	}
	if c.BanMaxFailures < 1 || c.BanWindow <= 0 {
		problems = append(problems, "ban.max_failures must be at least 1 and ban.window positive")
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration errors:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}

// Location resolves the configured timezone, falling back to UTC.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Proxies returns the parsed http.trusted_proxies. Invalid entries are
// rejected by Validate.
func (c *Config) Proxies() []netip.Prefix {
	p, _ := ParseProxies(c.TrustedProxies)
	return p
}

// ParseProxies accepts CIDR ranges and bare addresses.
func ParseProxies(list []string) ([]netip.Prefix, error) {
	prefixes := make([]netip.Prefix, 0, len(list))
	for _, s := range list {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if p, err := netip.ParsePrefix(s); err == nil {
			prefixes = append(prefixes, p.Masked())
			continue
		}
		addr, err := netip.ParseAddr(s)
		if err != nil {
			return nil, fmt.Errorf("invalid http.trusted_proxies entry %q", s)
		}
		addr = addr.Unmap()
		prefixes = append(prefixes, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return prefixes, nil
}
