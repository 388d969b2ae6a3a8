package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "ADLENS"

// Load reads configuration in three layers: built-in defaults, an optional
// YAML file, and ADLENS_-prefixed environment variables (a local .env is
// picked up in development). Later layers win.
func Load(configFile string) (*Config, error) {
	// Best-effort: absent .env is the normal production case.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// AutomaticEnv only resolves keys viper already knows about. Keys
	// without a default (secrets and optional endpoints) need an explicit
	// binding or their env values are dropped on Unmarshal.
	for _, key := range []string{
		"provider.api_key",
		"provider.base_url",
		"store.url",
		"store.password",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind env for %s: %w", key, err)
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", configFile, err)
		}
	}

	var cfg Config
	decodeHook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := v.Unmarshal(&cfg, decodeHook); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.idle_timeout", 120*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("store.addr", "localhost:6379")
	v.SetDefault("store.db", 0)

	v.SetDefault("provider.model", "gpt-4o-mini")
	v.SetDefault("provider.timeout", 10*time.Second)
	v.SetDefault("provider.gen_temperature", 0.9)
	v.SetDefault("provider.analysis_temperature", 0.3)
	v.SetDefault("provider.max_tokens", 2048)

	v.SetDefault("rate_limit.quota", 3)
	v.SetDefault("rate_limit.window", 24*time.Hour)
	v.SetDefault("rate_limit.upgrade_url", "https://adlens.dev/pricing")

	v.SetDefault("cache.generation_ttl", 24*time.Hour)
	v.SetDefault("cache.inspection_ttl", 24*time.Hour)

	v.SetDefault("logging.level", "info")
}

func validate(cfg *Config) error {
	if cfg.RateLimit.Quota <= 0 {
		return fmt.Errorf("rate_limit.quota must be positive, got %d", cfg.RateLimit.Quota)
	}
	if cfg.RateLimit.Window <= 0 {
		return fmt.Errorf("rate_limit.window must be positive, got %s", cfg.RateLimit.Window)
	}
	if cfg.Provider.Timeout <= 0 {
		return fmt.Errorf("provider.timeout must be positive, got %s", cfg.Provider.Timeout)
	}
	return nil
}
