package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/atomicstack/gooeynav/internal/menu"
	"github.com/atomicstack/gooeynav/internal/nav/burst"
	toml "github.com/pelletier/go-toml/v2"
)

const defaultConfigPath = "~/.config/gooeynav/config.toml"

// fileSettings is what the TOML file contributes to the runtime config.
type fileSettings struct {
	Path         string
	Items        []menu.Item
	InitialIndex int
	Burst        burst.Config
}

type rawFile struct {
	Items     []menu.Item  `toml:"items"`
	Animation rawAnimation `toml:"animation"`
}

type rawAnimation struct {
	AnimationTimeMS   *int64    `toml:"animation_time_ms"`
	TimeVarianceMS    *int64    `toml:"time_variance_ms"`
	ParticleCount     *int      `toml:"particle_count"`
	ParticleDistances []float64 `toml:"particle_distances"`
	Seed              uint64    `toml:"seed"`
	// InitialActiveIndex applies when no --location deep link is given.
	InitialActiveIndex int `toml:"initial_active_index"`
}

// loadFile reads the TOML config at path, falling back to defaults when the
// file does not exist.
func loadFile(path string) (fileSettings, bool, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return fileSettings{}, false, err
	}

	settings := fileSettings{
		Path:  resolved,
		Items: menu.DefaultItems(),
		Burst: burst.DefaultConfig(),
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, false, nil
		}
		return fileSettings{}, false, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return fileSettings{}, false, fmt.Errorf("read config: %w", err)
	}

	var raw rawFile
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return fileSettings{}, false, fmt.Errorf("parse config: %w", err)
	}

	if len(raw.Items) > 0 {
		items := make([]menu.Item, len(raw.Items))
		for i, item := range raw.Items {
			items[i] = menu.Item{
				Label:  strings.TrimSpace(item.Label),
				Target: menu.NormalizeTarget(item.Target),
			}
		}
		settings.Items = items
	}

	anim := raw.Animation
	if anim.AnimationTimeMS != nil {
		settings.Burst.AnimationTime = time.Duration(*anim.AnimationTimeMS) * time.Millisecond
	}
	if anim.TimeVarianceMS != nil {
		settings.Burst.TimeVariance = time.Duration(*anim.TimeVarianceMS) * time.Millisecond
	}
	if anim.ParticleCount != nil {
		settings.Burst.ParticleCount = *anim.ParticleCount
	}
	if len(anim.ParticleDistances) > 0 {
		if len(anim.ParticleDistances) != 2 {
			return fileSettings{}, false, fmt.Errorf("parse config: particle_distances needs 2 values, got %d", len(anim.ParticleDistances))
		}
		settings.Burst.Distances = [2]float64{anim.ParticleDistances[0], anim.ParticleDistances[1]}
	}
	settings.Burst.Seed = anim.Seed
	settings.InitialIndex = anim.InitialActiveIndex

	return settings, true, nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
