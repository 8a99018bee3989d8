package domain

import "fmt"

// OutputFormat selects how replay results are printed.
type OutputFormat string

const (
	FormatPlain  OutputFormat = "plain"
	FormatPretty OutputFormat = "pretty"
	FormatJSON   OutputFormat = "json"
)

// Config represents the reboot configuration loaded from reboot.yaml.
type Config struct {
	Output OutputConfig
	Replay ReplayConfig
	Runs   RunsConfig
	Logs   LogsConfig
}

type OutputConfig struct {
	Format OutputFormat
}

type ReplayConfig struct {
	// Region, when set, clips every instruction to Region on each axis.
	Region *Range
	// Check validates disjointness after every instruction.
	Check bool
	// RenderLimit is the largest bounding area drawn for 2D programs.
	RenderLimit uint64
}

type RunsConfig struct {
	Dir  string
	Save bool
}

type LogsConfig struct {
	Enabled bool
}

// DefaultConfig provides sane defaults if reboot.yaml is partially missing.
func DefaultConfig() Config {
	return Config{
		Output: OutputConfig{Format: FormatPlain},
		Replay: ReplayConfig{RenderLimit: 4096},
		Runs:   RunsConfig{Dir: "runs"},
	}
}

// ParseFormat validates a user-supplied output format.
func ParseFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(s); f {
	case FormatPlain, FormatPretty, FormatJSON:
		return f, nil
	case "":
		return FormatPlain, nil
	default:
		return "", &OpError{
			Op:   "config.format",
			Kind: KindInvalidConfig,
			Err:  fmt.Errorf("%w: unsupported format %q (expected plain|pretty|json)", ErrInvalidConfig, s),
		}
	}
}
