// Package config loads the daemon's startup configuration: physical
// output declarations, the virtual-output splits/merges derived from
// them, per-workspace output defaults, and the gap/border settings the
// layout tree and renderer consume. None of it touches core invariants
// directly; main wiring feeds the decoded values into the voutput and
// workspace constructors.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml/v2"

	"github.com/wegel/stilch-sub001/geom"
	"github.com/wegel/stilch-sub001/id"
	"github.com/wegel/stilch-sub001/voutput"
)

// Config is the root of stilchd's config.toml.
type Config struct {
	Output    []OutputConfig    `toml:"output"`
	Workspace []WorkspaceConfig `toml:"workspace"`
	Gaps      GapsConfig        `toml:"gaps"`
	Border    BorderConfig      `toml:"border"`
	Daemon    DaemonConfig      `toml:"daemon"`
}

// OutputConfig declares a physical output and how it maps onto one or
// more virtual outputs. Region is the physical output's own logical
// rectangle; Split, if present, subdivides it per spec.md's "Config
// grammar" paragraph ("outputs <list> region <x,y,w,h>").
type OutputConfig struct {
	Name   string       `toml:"name"`
	Region RegionConfig `toml:"region"`
	Split  *SplitConfig `toml:"split"`
}

// RegionConfig is a physical output's rectangle in the TOML grammar's
// "x,y,w,h" shape, spelled out as named fields for unambiguous decoding.
type RegionConfig struct {
	X int32 `toml:"x"`
	Y int32 `toml:"y"`
	W int32 `toml:"w"`
	H int32 `toml:"h"`
}

func (r RegionConfig) toRect() geom.Rect {
	return geom.Rect{X: r.X, Y: r.Y, W: r.W, H: r.H}
}

// SplitConfig is an output's optional virtual-output subdivision.
// Type selects which of Count/Rows+Cols applies, mirroring
// voutput.Split.
type SplitConfig struct {
	Type string `toml:"type"` // "horizontal", "vertical", "grid"
	Count int   `toml:"count"`
	Rows  int   `toml:"rows"`
	Cols  int   `toml:"cols"`
}

func (s SplitConfig) toVoutputSplit() (voutput.Split, error) {
	switch s.Type {
	case "horizontal":
		return voutput.Split{Type: voutput.SplitHorizontal, Count: s.Count}, nil
	case "vertical":
		return voutput.Split{Type: voutput.SplitVertical, Count: s.Count}, nil
	case "grid":
		return voutput.Split{Type: voutput.SplitGrid, Rows: s.Rows, Cols: s.Cols}, nil
	default:
		return voutput.Split{}, fmt.Errorf("config: unknown split type %q", s.Type)
	}
}

// WorkspaceConfig binds a workspace number (1-indexed, display name per
// spec.md §3) to the output it should default onto.
type WorkspaceConfig struct {
	Number int    `toml:"number"`
	Output string `toml:"output"`
}

// GapsConfig is the inner/outer gap declaration spec.md's config
// grammar names; Smart disables gaps when a workspace holds a single
// window.
type GapsConfig struct {
	Inner int32 `toml:"inner"`
	Outer int32 `toml:"outer"`
	Top   int32 `toml:"top"`
	Bottom int32 `toml:"bottom"`
	Left  int32 `toml:"left"`
	Right int32 `toml:"right"`
	Smart bool  `toml:"smart"`
}

// BorderConfig is the default window border width.
type BorderConfig struct {
	Width int32 `toml:"width"`
}

// DaemonConfig holds daemon-level settings: log level and an optional
// override for the command-surface socket path.
type DaemonConfig struct {
	LogLevel   string `toml:"log_level"` // debug, info, warn, error (default: info)
	SocketPath string `toml:"socket_path"`
}

// Default returns the configuration used when no config file exists:
// no declared outputs (so the daemon starts with no virtual outputs),
// zero gaps, a 1px border.
func Default() *Config {
	return &Config{
		Gaps:   GapsConfig{Inner: 0, Outer: 0},
		Border: BorderConfig{Width: 1},
		Daemon: DaemonConfig{LogLevel: "info"},
	}
}

// Load reads config.toml from the XDG config directory, falling back to
// Default if none exists. A malformed file that does exist is an error,
// not a silent fallback.
func Load() (*Config, error) {
	path, err := xdg.SearchConfigFile("stilch/config.toml")
	if err != nil {
		return Default(), nil
	}

	// #nosec G304 - path is resolved via xdg.SearchConfigFile, reading it is intentional
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects structurally invalid configuration: duplicate output
// names, a split with no meaningful count, or a workspace number out of
// the 1..10 range spec.md §3 allows (WorkspaceId 0..9 displayed as
// id+1).
func (c *Config) Validate() error {
	seen := make(map[string]bool, len(c.Output))
	for _, o := range c.Output {
		if o.Name == "" {
			return fmt.Errorf("output entry missing name")
		}
		if seen[o.Name] {
			return fmt.Errorf("duplicate output name %q", o.Name)
		}
		seen[o.Name] = true
		if o.Split != nil {
			split, err := o.Split.toVoutputSplit()
			if err != nil {
				return err
			}
			if split.Type == voutput.SplitGrid && (split.Rows < 1 || split.Cols < 1) {
				return fmt.Errorf("output %q: grid split needs rows and cols of at least 1", o.Name)
			}
			if split.Type != voutput.SplitGrid && split.Count < 1 {
				return fmt.Errorf("output %q: split count must be at least 1", o.Name)
			}
		}
	}
	for _, w := range c.Workspace {
		if w.Number < 1 || w.Number > 10 {
			return fmt.Errorf("workspace number %d out of range 1..10", w.Number)
		}
		if w.Output != "" && !seen[w.Output] {
			return fmt.Errorf("workspace %d references undeclared output %q", w.Number, w.Output)
		}
	}
	return nil
}

// ResolvedOutput is one physical output's decoded region plus its
// optional virtual-output split, ready to hand to a voutput.Manager.
type ResolvedOutput struct {
	Physical voutput.PhysicalId
	Region   geom.Rect
	Split    *voutput.Split
}

// ResolveOutputs decodes every declared output's region and split
// request into voutput.Manager-ready values.
func (c *Config) ResolveOutputs() ([]ResolvedOutput, error) {
	out := make([]ResolvedOutput, 0, len(c.Output))
	for _, o := range c.Output {
		resolved := ResolvedOutput{Physical: voutput.PhysicalId(o.Name), Region: o.Region.toRect()}
		if o.Split != nil {
			split, err := o.Split.toVoutputSplit()
			if err != nil {
				return nil, err
			}
			resolved.Split = &split
		}
		out = append(out, resolved)
	}
	return out, nil
}

// WorkspaceDefault returns the physical output name the given
// 1-indexed workspace number should start on, if configured.
func (c *Config) WorkspaceDefault(number int) (string, bool) {
	for _, w := range c.Workspace {
		if w.Number == number {
			return w.Output, w.Output != ""
		}
	}
	return "", false
}

// WorkspaceID converts a config-file 1-indexed workspace number into
// the core's 0-indexed id.WorkspaceId.
func WorkspaceID(number int) id.WorkspaceId {
	return id.WorkspaceId(number - 1)
}

// SocketPath returns the daemon's command-surface socket path: the
// config override if set, otherwise $XDG_RUNTIME_DIR/stilchd.sock.
func SocketPath(cfg *Config) (string, error) {
	if cfg.Daemon.SocketPath != "" {
		return cfg.Daemon.SocketPath, nil
	}
	runtimeDir := xdg.RuntimeDir
	if runtimeDir == "" {
		return "", fmt.Errorf("config: XDG_RUNTIME_DIR is not set")
	}
	return filepath.Join(runtimeDir, "stilchd.sock"), nil
}
