package utils

import (
	"flag"
	"strings"
)

// patternFlag collects repeated -pattern name@x,y values
type patternFlag struct {
	placements *[]PatternPlacement
	set        bool
}

func (f *patternFlag) String() string {
	if f.placements == nil {
		return ""
	}
	parts := make([]string, 0, len(*f.placements))
	for _, p := range *f.placements {
		parts = append(parts, p.String())
	}
	return strings.Join(parts, " ")
}

// Set replaces file-provided placements on first use, then appends
func (f *patternFlag) Set(s string) error {
	p, err := ParsePatternPlacement(s)
	if err != nil {
		return err
	}
	if !f.set {
		*f.placements = nil
		f.set = true
	}
	*f.placements = append(*f.placements, p)
	return nil
}

// Bind attaches the configuration to the provided FlagSet.
// Current field values become the flag defaults, so load files first.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.IntVar(&c.Width, "width", c.Width, "grid width in cells")
	fs.IntVar(&c.Height, "height", c.Height, "grid height in cells")
	fs.StringVar(&c.Rule, "rule", c.Rule, "rule as SURVIVAL/BIRTH (e.g. 23/3) or a preset name")
	fs.Float64Var(&c.RandomDensity, "density", c.RandomDensity, "probability a cell starts alive, 0-1")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "random seed, 0 picks one from the clock")
	fs.DurationVar(&c.FrameRate, "delay", c.FrameRate, "delay between generations")
	fs.IntVar(&c.MaxGenerations, "generations", c.MaxGenerations, "stop after this many generations, 0 runs forever")
	fs.BoolVar(&c.AutoRestart, "restart", c.AutoRestart, "reseed on extinction or stagnation instead of stopping")
	fs.IntVar(&c.StagnationThreshold, "stagnation", c.StagnationThreshold, "stagnant generations tolerated, 0 disables the check")
	fs.BoolVar(&c.UseMemoryPool, "pool", c.UseMemoryPool, "recycle generation buffers")
	fs.IntVar(&c.Workers, "workers", c.Workers, "row bands stepped concurrently")
	fs.StringVar(&c.Renderer, "renderer", c.Renderer, "terminal or screen")
	fs.BoolVar(&c.UsePreset, "preset", c.UsePreset, "add the example patterns when no -pattern is given")
	fs.BoolVar(&c.Interactive, "interactive", c.Interactive, "prompt for settings before starting")
	fs.Var(&patternFlag{placements: &c.Patterns}, "pattern", "insert a pattern as name@x,y (repeatable)")
}

// ConfigPath finds a -config value in args without parsing the rest,
// so the file can be loaded before flags override it
func ConfigPath(args []string, fallback string) string {
	for i, arg := range args {
		if arg == "--" {
			break
		}
		name, value, hasValue := strings.Cut(strings.TrimLeft(arg, "-"), "=")
		if !strings.HasPrefix(arg, "-") || name != "config" {
			continue
		}
		if hasValue {
			return value
		}
		if i+1 < len(args) {
			return args[i+1]
		}
	}
	return fallback
}
