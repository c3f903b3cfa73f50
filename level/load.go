package level

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/BurntSushi/toml"
)

const (
	DefaultConfigDir  = "config"
	DefaultConfigFile = "levels.toml"
	DefaultConfigPath = DefaultConfigDir + "/" + DefaultConfigFile
)

// ErrNoLevels is returned when a level table defines no level
var ErrNoLevels = errors.New("no levels defined")

type table struct {
	Levels []Design `toml:"level"`
}

// Source names where a level table came from, for logging
type Source string

const (
	SourceFlag     Source = "flag"
	SourceDefault  Source = "config"
	SourceEmbedded Source = "embedded"
)

// Parse decodes and validates a TOML level table
// Unknown keys are rejected so typos in authored files do not pass silently
func Parse(data string, logger *slog.Logger) ([]Design, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var t table
	md, err := toml.Decode(data, &t)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDesign, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%w: unknown key %q", ErrInvalidDesign, undecoded[0].String())
	}
	if len(t.Levels) == 0 {
		return nil, ErrNoLevels
	}

	for i := range t.Levels {
		d := &t.Levels[i]
		if d.Name == "" {
			d.Name = fmt.Sprintf("level-%d", i+1)
		}
		if err := d.Validate(); err != nil {
			return nil, err
		}
		for j, w := range d.Wells {
			if w.Strength < 0 || w.Radius < 0 {
				logger.Warn("negative well parameter clamped to zero",
					"level", d.Name, "well", j, "strength", w.Strength, "radius", w.Radius)
			}
		}
	}
	return t.Levels, nil
}

// LoadFile reads and parses a level table from path
func LoadFile(path string, logger *slog.Logger) ([]Design, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read levels %s: %w", path, err)
	}
	designs, err := Parse(string(data), logger)
	if err != nil {
		return nil, fmt.Errorf("levels %s: %w", path, err)
	}
	return designs, nil
}

// LoadAuto loads levels with priority: customPath > DefaultConfigPath > embedded
// A custom path that cannot be read is an error; it never falls through
func LoadAuto(customPath, embedded string, logger *slog.Logger) ([]Design, Source, error) {
	if customPath != "" {
		d, err := LoadFile(customPath, logger)
		return d, SourceFlag, err
	}

	if fileExists(DefaultConfigPath) {
		d, err := LoadFile(DefaultConfigPath, logger)
		return d, SourceDefault, err
	}

	d, err := Parse(embedded, logger)
	if err != nil {
		return nil, SourceEmbedded, fmt.Errorf("embedded levels: %w", err)
	}
	return d, SourceEmbedded, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
