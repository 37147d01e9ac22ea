package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable the server reads.
const EnvPrefix = "POSTBOARD"

type Config struct {
	// HTTP server
	Addr string // e.g. ":8080"

	// Secret used to sign component props. Empty means a random key per process.
	Key string

	// Mounted instances older than MountTTL are unmounted every SweepInterval.
	MountTTL      time.Duration
	SweepInterval time.Duration
}

// RegisterFlags declares the server flags with their defaults.
func RegisterFlags(flags *pflag.FlagSet) {
	flags.String("addr", ":8080", "listen address")
	flags.String("key", "", "props signing key (random when empty)")
	flags.Duration("mount-ttl", 10*time.Minute, "unmount page instances older than this")
	flags.Duration("sweep-interval", time.Minute, "how often to look for stale instances")
}

// Load reads configuration from, in increasing priority: flag defaults, a
// .env file in envFile (skipped when missing), POSTBOARD_* environment
// variables, and flags set on the command line.
func Load(flags *pflag.FlagSet, envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(flags); err != nil {
		return Config{}, fmt.Errorf("bind flags: %w", err)
	}

	c := Config{
		Addr:          v.GetString("addr"),
		Key:           v.GetString("key"),
		MountTTL:      v.GetDuration("mount-ttl"),
		SweepInterval: v.GetDuration("sweep-interval"),
	}
	if c.MountTTL <= 0 {
		return Config{}, fmt.Errorf("mount-ttl must be positive, got %s", c.MountTTL)
	}
	if c.SweepInterval <= 0 {
		return Config{}, fmt.Errorf("sweep-interval must be positive, got %s", c.SweepInterval)
	}
	return c, nil
}
