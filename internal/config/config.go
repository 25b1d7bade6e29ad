package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/atomicstack/gooeynav/internal/app"
	"github.com/atomicstack/gooeynav/internal/menu"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	// File is the resolved config file path and whether it existed.
	File      string
	FileFound bool
	Flags     map[string]string
	Args      []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envConfigPath = "GOOEYNAV_CONFIG"
	envLocation   = "GOOEYNAV_LOCATION"
	envWidth      = "GOOEYNAV_WIDTH"
	envHeight     = "GOOEYNAV_HEIGHT"
	envShowFooter = "GOOEYNAV_FOOTER"
	envTrace      = "GOOEYNAV_TRACE"
	envLogFile    = "GOOEYNAV_LOG_FILE"
	envSeed       = "GOOEYNAV_SEED"
)

// Load parses configuration from CLI arguments, environment variables and the
// config file.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	fs := flag.NewFlagSet("gooeynav", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	configPath := fs.String("config", envOrDefault(env, envConfigPath, ""), "path to the TOML config file (default "+defaultConfigPath+")")
	location := fs.String("location", envOrDefault(env, envLocation, ""), "deep link to open on start, e.g. /blog/some-post (overrides initial_active_index)")
	width := fs.Int("width", envOrInt(env, envWidth, 0), "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, 0), "desired viewport height in rows (0 uses terminal height)")
	footer := fs.Bool("footer", envOrBool(env, envShowFooter, true), "show the key help footer")
	trace := fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file")
	seed := fs.Uint64("seed", envOrUint(env, envSeed, 0), "particle jitter seed (0 uses the config file or the clock)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if *width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", *width)
	}
	if *height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", *height)
	}

	file, found, err := loadFile(*configPath)
	if err != nil {
		return Config{}, err
	}
	if *seed != 0 {
		file.Burst.Seed = *seed
	}

	cfg := Config{
		App: app.Config{
			Width:        *width,
			Height:       *height,
			ShowFooter:   *footer,
			Location:     strings.TrimSpace(*location),
			Items:        file.Items,
			InitialIndex: file.InitialIndex,
			Burst:        file.Burst,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		File:      file.Path,
		FileFound: found,
		Flags: map[string]string{
			"config":   *configPath,
			"location": *location,
			"width":    strconv.Itoa(*width),
			"height":   strconv.Itoa(*height),
			"footer":   strconv.FormatBool(*footer),
			"trace":    strconv.FormatBool(*trace),
			"logFile":  *logFile,
			"seed":     strconv.FormatUint(*seed, 10),
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrUint(env map[string]string, key string, fallback uint64) uint64 {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseUint(strings.TrimSpace(v), 10, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad returns validated configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err == nil {
		err = Validate(cfg)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

var (
	ErrNoParticles     = errors.New("particle_count must be at least 1")
	ErrDuplicateTarget = errors.New("duplicate item target")
	ErrEmptyLabel      = errors.New("item label is empty")
)

// Validate rejects configurations the nav bar cannot run with.
func Validate(cfg Config) error {
	if cfg.App.Width < 0 || cfg.App.Height < 0 {
		return fmt.Errorf("viewport size must not be negative (got %dx%d)", cfg.App.Width, cfg.App.Height)
	}
	if cfg.App.Burst.ParticleCount < 1 {
		return fmt.Errorf("%w (got %d)", ErrNoParticles, cfg.App.Burst.ParticleCount)
	}
	if cfg.App.Burst.AnimationTime < 0 || cfg.App.Burst.TimeVariance < 0 {
		return fmt.Errorf("animation durations must not be negative")
	}
	seen := make(map[string]int, len(cfg.App.Items))
	for i, item := range cfg.App.Items {
		if strings.TrimSpace(item.Label) == "" {
			return fmt.Errorf("item %d: %w", i, ErrEmptyLabel)
		}
		target := menu.NormalizeTarget(item.Target)
		if prev, ok := seen[target]; ok {
			return fmt.Errorf("items %d and %d: %w %q", prev, i, ErrDuplicateTarget, target)
		}
		seen[target] = i
	}
	return nil
}
