package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port            int
	BackendURL      string
	DatabaseURL     string
	DatabaseType    string
	ActionKeySalt   string
	UpstreamTimeout time.Duration
	ToastTTL        time.Duration
	SimulationTTL   time.Duration
}

// Defaults
const (
	DefaultPort            = 3318
	DefaultBackendURL      = "http://localhost:8000"
	DefaultDatabaseURL     = "file:tanker-portal.db"
	DefaultDatabaseType    = "sqlite"
	DefaultUpstreamTimeout = 5 * time.Second
	DefaultToastTTL        = 5 * time.Second
	DefaultSimulationTTL   = 20 * time.Second
)

// ParseFlags validates flags and fills unset values from the environment
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("tanker-portal", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.BackendURL, "b", "", "Drought backend base URL")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Journal database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")

	// Timing
	fs.DurationVar(&cfg.UpstreamTimeout, "timeout", 0, "Per-call upstream timeout")
	fs.DurationVar(&cfg.ToastTTL, "toast-ttl", 0, "Toast auto-dismiss interval")
	fs.DurationVar(&cfg.SimulationTTL, "simulation-ttl", 0, "Crisis simulation auto-stop")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.ActionKeySalt, "action-salt", "", "Idempotency key salt (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = DefaultPort
		}
	}
	if cfg.Port < 1 || cfg.Port > 65535 {
		return Config{}, fmt.Errorf("port %d out of range", cfg.Port)
	}

	cfg.BackendURL = firstNonEmpty(cfg.BackendURL, os.Getenv("BACKEND_URL"), DefaultBackendURL)
	u, err := url.Parse(cfg.BackendURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return Config{}, fmt.Errorf("backend URL %q must be an absolute http(s) URL", cfg.BackendURL)
	}

	cfg.DatabaseURL = firstNonEmpty(cfg.DatabaseURL, os.Getenv("DATABASE_URL"), DefaultDatabaseURL)

	cfg.DatabaseType = firstNonEmpty(cfg.DatabaseType, os.Getenv("DATABASE_TYPE"), DefaultDatabaseType)
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, fmt.Errorf("unknown database type %q (use sqlite or postgres)", cfg.DatabaseType)
	}

	if cfg.UpstreamTimeout, err = durationOrEnv(cfg.UpstreamTimeout, "UPSTREAM_TIMEOUT", DefaultUpstreamTimeout); err != nil {
		return Config{}, err
	}
	if cfg.ToastTTL, err = durationOrEnv(cfg.ToastTTL, "TOAST_TTL", DefaultToastTTL); err != nil {
		return Config{}, err
	}
	if cfg.SimulationTTL, err = durationOrEnv(cfg.SimulationTTL, "SIMULATION_TTL", DefaultSimulationTTL); err != nil {
		return Config{}, err
	}

	// Secrets - MUST be provided
	if cfg.ActionKeySalt == "" {
		cfg.ActionKeySalt = os.Getenv("ACTION_KEY_SALT")
	}
	if cfg.ActionKeySalt == "" {
		return Config{}, errors.New("ACTION_KEY_SALT required")
	}

	return cfg, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// durationOrEnv keeps a flag value, else reads env, else uses def. The
// result must be positive.
func durationOrEnv(flagVal time.Duration, env string, def time.Duration) (time.Duration, error) {
	d := flagVal
	if d == 0 {
		if s := os.Getenv(env); s != "" {
			parsed, err := time.ParseDuration(s)
			if err != nil {
				return 0, fmt.Errorf("invalid %s env variable: %w", env, err)
			}
			d = parsed
		} else {
			d = def
		}
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %s", env, d)
	}
	return d, nil
}
