// Package config loads the bot's YAML configuration.
package config

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/pokeduel/internal/errors"
	"github.com/KirkDiggler/pokeduel/internal/repositories/userconfig"
)

// Store backends
const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

// Config is the root of the configuration file.
type Config struct {
	LogLevel string         `yaml:"log_level"`
	Discord  DiscordConfig  `yaml:"discord"`
	Store    StoreConfig    `yaml:"store"`
	Redis    RedisConfig    `yaml:"redis"`
	Metrics  MetricsConfig  `yaml:"metrics"`
	Health   HealthConfig   `yaml:"health"`
	Defaults DefaultsConfig `yaml:"defaults"`
}

// DiscordConfig configures the bot session.
type DiscordConfig struct {
	// TokenEnv names the environment variable holding the bot token.
	TokenEnv string `yaml:"token_env"`
	// Sprites maps a form identifier or dex number to an image URL.
	Sprites map[string]string `yaml:"sprites"`
}

// StoreConfig picks the party and duel storage backend.
type StoreConfig struct {
	Backend string        `yaml:"backend"`
	DuelTTL time.Duration `yaml:"duel_ttl"`
}

// RedisConfig configures the Redis connection.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	UseTLS   bool   `yaml:"use_tls"`
}

// MetricsConfig configures the Prometheus endpoint.
type MetricsConfig struct {
	Addr string `yaml:"addr"`
}

// HealthConfig configures the gRPC health endpoint.
type HealthConfig struct {
	Addr string `yaml:"addr"`
}

// DefaultsConfig holds values returned for members and guilds that never
// saved their own.
type DefaultsConfig struct {
	UseThreads bool                     `yaml:"use_threads"`
	Party      []userconfig.PartyMember `yaml:"party"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		LogLevel: "info",
		Discord:  DiscordConfig{TokenEnv: "DISCORD_TOKEN"},
		Store:    StoreConfig{Backend: StoreMemory, DuelTTL: 24 * time.Hour},
		Redis:    RedisConfig{Addr: "localhost:6379"},
		Metrics:  MetricsConfig{Addr: ":9464"},
		Health:   HealthConfig{Addr: ":50051"},
	}
}

// Load reads the YAML file at path over the defaults.
func Load(path string) (*Config, error) {
	f, err := os.Open(path) // #nosec G304 -- path comes from the operator
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open config %q", path)
	}
	defer func() { _ = f.Close() }()

	return LoadFromReader(f)
}

// LoadFromReader decodes YAML from r over the defaults and validates it.
// Unknown keys are rejected.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to decode config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the values are coherent.
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateEnum("log_level", strings.ToLower(c.LogLevel), []string{"debug", "info", "warn", "error"}, vb)
	errors.ValidateEnum("store.backend", c.Store.Backend, []string{StoreMemory, StoreRedis}, vb)
	if c.Store.DuelTTL < 0 {
		vb.Field("store.duel_ttl", "cannot be negative")
	}
	if c.Store.Backend == StoreRedis {
		errors.ValidateRequired("redis.addr", c.Redis.Addr, vb)
	}
	if c.Redis.DB < 0 {
		vb.Field("redis.db", "cannot be negative")
	}
	errors.ValidateRequired("discord.token_env", c.Discord.TokenEnv, vb)
	if len(c.Defaults.Party) > userconfig.MaxPartySize {
		vb.Fieldf("defaults.party", "has %d members, at most %d allowed", len(c.Defaults.Party), userconfig.MaxPartySize)
	}
	for i, m := range c.Defaults.Party {
		if m.Species == "" {
			vb.Fieldf("defaults.party", "member %d has no species", i)
		}
	}

	return vb.Build()
}

// SlogLevel maps LogLevel to a slog level.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// UserDefaults converts the defaults section for the party store.
func (c *Config) UserDefaults() userconfig.Defaults {
	return userconfig.Defaults{
		Party:      c.Defaults.Party,
		UseThreads: c.Defaults.UseThreads,
	}
}

// DiscordToken reads the bot token from the configured variable.
func (c *Config) DiscordToken() (string, error) {
	token := os.Getenv(c.Discord.TokenEnv)
	if token == "" {
		return "", errors.FailedPreconditionf("environment variable %s is not set", c.Discord.TokenEnv)
	}
	return token, nil
}
