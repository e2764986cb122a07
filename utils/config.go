package utils

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/sheikhrachel/go-lifelike/rules"
)

// ErrInvalidConfig is returned by Validate for out-of-range settings
var ErrInvalidConfig = errors.New("invalid configuration")

const (
	RendererTerminal = "terminal"
	RendererScreen   = "screen"
)

// PatternPlacement names a library pattern and where its top-left corner goes
type PatternPlacement struct {
	Name string `json:"name" yaml:"name"`
	X    int    `json:"x" yaml:"x"`
	Y    int    `json:"y" yaml:"y"`
}

// String formats the placement as name@x,y
func (p PatternPlacement) String() string {
	return p.Name + "@" + strconv.Itoa(p.X) + "," + strconv.Itoa(p.Y)
}

// ParsePatternPlacement reads the name@x,y form used on the command line
func ParsePatternPlacement(s string) (PatternPlacement, error) {
	name, coords, ok := strings.Cut(strings.TrimSpace(s), "@")
	if !ok || name == "" {
		return PatternPlacement{}, errors.Wrapf(ErrInvalidConfig, "[ParsePatternPlacement] expected name@x,y, got %q", s)
	}
	xs, ys, ok := strings.Cut(coords, ",")
	if !ok {
		return PatternPlacement{}, errors.Wrapf(ErrInvalidConfig, "[ParsePatternPlacement] expected x,y in %q", s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return PatternPlacement{}, errors.Wrapf(ErrInvalidConfig, "[ParsePatternPlacement] bad x in %q: %v", s, err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return PatternPlacement{}, errors.Wrapf(ErrInvalidConfig, "[ParsePatternPlacement] bad y in %q: %v", s, err)
	}
	return PatternPlacement{Name: strings.ToLower(name), X: x, Y: y}, nil
}

// Config holds the configuration for the simulation
type Config struct {
	Width               int                `json:"width" yaml:"width"`
	Height              int                `json:"height" yaml:"height"`
	Rule                string             `json:"rule" yaml:"rule"`
	RandomDensity       float64            `json:"random_density" yaml:"random_density"`
	Seed                int64              `json:"seed" yaml:"seed"`
	FrameRate           time.Duration      `json:"frame_rate" yaml:"frame_rate"`
	MaxGenerations      int                `json:"max_generations" yaml:"max_generations"`
	AutoRestart         bool               `json:"auto_restart" yaml:"auto_restart"`
	StagnationThreshold int                `json:"stagnation_threshold" yaml:"stagnation_threshold"`
	UseMemoryPool       bool               `json:"use_memory_pool" yaml:"use_memory_pool"`
	Workers             int                `json:"workers" yaml:"workers"`
	Renderer            string             `json:"renderer" yaml:"renderer"`
	AliveChar           string             `json:"alive_char" yaml:"alive_char"`
	DeadChar            string             `json:"dead_char" yaml:"dead_char"`
	UsePreset           bool               `json:"use_preset" yaml:"use_preset"`
	Patterns            []PatternPlacement `json:"patterns" yaml:"patterns"`
	Interactive         bool               `json:"interactive" yaml:"interactive"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Width:               80,
		Height:              30,
		Rule:                rules.Presets["conway"],
		RandomDensity:       0.25,
		FrameRate:           80 * time.Millisecond,
		StagnationThreshold: 5,
		Workers:             1,
		Renderer:            RendererTerminal,
		AliveChar:           "█",
		DeadChar:            " ",
		UsePreset:           true,
	}
}

// LoadConfig loads configuration from a JSON or YAML file over the defaults.
// Files ending in .yaml or .yml are decoded as YAML, anything else as JSON.
func LoadConfig(filename string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to read file: %+v", filename)
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		if err = yaml.Unmarshal(data, &config); err != nil {
			return config, errors.Wrapf(err, "[LoadConfig] failed to decode yaml from file: %+v", filename)
		}
	default:
		if err = json.Unmarshal(data, &config); err != nil {
			return config, errors.Wrapf(err, "[LoadConfig] failed to unmarshal data from file: %+v", filename)
		}
	}

	return config, nil
}

// ParsedRule resolves the configured rule, which may be a preset name
func (c Config) ParsedRule() (rules.Rule, error) {
	return rules.Lookup(c.Rule)
}

// Validate checks every setting that would otherwise fail later in the run
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return errors.Wrapf(ErrInvalidConfig, "[Validate] grid must be positive, got %dx%d", c.Width, c.Height)
	case c.RandomDensity < 0 || c.RandomDensity > 1:
		return errors.Wrapf(ErrInvalidConfig, "[Validate] random_density %v outside [0,1]", c.RandomDensity)
	case c.FrameRate < 0:
		return errors.Wrapf(ErrInvalidConfig, "[Validate] negative frame_rate %v", c.FrameRate)
	case c.MaxGenerations < 0:
		return errors.Wrapf(ErrInvalidConfig, "[Validate] negative max_generations %d", c.MaxGenerations)
	case c.StagnationThreshold < 0:
		return errors.Wrapf(ErrInvalidConfig, "[Validate] negative stagnation_threshold %d", c.StagnationThreshold)
	case c.Workers < 0:
		return errors.Wrapf(ErrInvalidConfig, "[Validate] negative workers %d", c.Workers)
	case c.Renderer != RendererTerminal && c.Renderer != RendererScreen:
		return errors.Wrapf(ErrInvalidConfig, "[Validate] unknown renderer %q", c.Renderer)
	}

	if _, err := c.ParsedRule(); err != nil {
		return errors.Wrap(err, "[Validate] bad rule")
	}
	return nil
}
