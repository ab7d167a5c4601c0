// Package config loads tablescroll settings from a TOML file.
//
// The file is optional. Every field has a default, and values present in the
// file replace the defaults one by one:
//
//	[layout]
//	height = "20"      # or "false"; empty uses each table's data-scroll
//	space = 1
//
//	[resize]
//	debounce = "100ms"
//
//	[terminal]
//	width = 100
//	scrollbar = "┃"
//	cell_padding = [0, 1]   # CSS shorthand order
//	cell_border = [0]
package config

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/tablescroll/pkg/errors"
	"github.com/matzehuels/tablescroll/pkg/measure"
	"github.com/matzehuels/tablescroll/pkg/resize"
	"github.com/matzehuels/tablescroll/pkg/scroll"
)

const appName = "tablescroll"

// Config holds every configurable setting.
type Config struct {
	Layout   Layout   `toml:"layout"`
	Resize   Resize   `toml:"resize"`
	Terminal Terminal `toml:"terminal"`
}

// Layout holds layout pass defaults.
type Layout struct {
	Height string `toml:"height"`
	Space  int    `toml:"space"`
	All    bool   `toml:"all"`
}

// Resize holds resize coordinator settings.
type Resize struct {
	Debounce time.Duration `toml:"debounce"`
}

// Terminal holds the character-cell box model settings. Width and Height of
// zero mean "ask the terminal".
type Terminal struct {
	Width       int    `toml:"width"`
	Height      int    `toml:"height"`
	Scrollbar   string `toml:"scrollbar"`
	CellPadding []int  `toml:"cell_padding"`
	CellBorder  []int  `toml:"cell_border"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Layout: Layout{Space: scroll.DefaultSpace},
		Resize: Resize{Debounce: resize.DefaultDelay},
		Terminal: Terminal{
			Scrollbar:   measure.DefaultScrollbar,
			CellPadding: []int{0, 1},
			CellBorder:  []int{0},
		},
	}
}

// DefaultPath returns the config file location using the XDG standard
// (~/.config/tablescroll/config.toml).
func DefaultPath() (string, error) {
	if home := os.Getenv("XDG_CONFIG_HOME"); home != "" {
		return filepath.Join(home, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// Load reads the config file at path, or at DefaultPath when path is empty.
// A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	md, err := toml.DecodeFile(path, cfg)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return nil, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every field.
func (c *Config) Validate() error {
	if c.Layout.Height != "" {
		if _, err := scroll.ParseHeight(c.Layout.Height); err != nil {
			return err
		}
	}
	if err := errors.ValidateSpace(c.Layout.Space); err != nil {
		return err
	}
	if c.Resize.Debounce < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "resize.debounce cannot be negative")
	}
	if c.Terminal.Width < 0 || c.Terminal.Height < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "terminal size cannot be negative")
	}
	if _, err := edges("terminal.cell_padding", c.Terminal.CellPadding); err != nil {
		return err
	}
	if _, err := edges("terminal.cell_border", c.Terminal.CellBorder); err != nil {
		return err
	}
	return nil
}

// LayoutOptions returns the layout pass options.
func (c *Config) LayoutOptions() (scroll.Options, error) {
	opts := scroll.Options{Space: c.Layout.Space}
	if c.Layout.Height != "" {
		h, err := scroll.ParseHeight(c.Layout.Height)
		if err != nil {
			return scroll.Options{}, err
		}
		opts.Height = h
	}
	return opts, nil
}

// TerminalOptions returns the terminal measurer options.
func (c *Config) TerminalOptions() measure.TerminalOptions {
	padding, _ := edges("", c.Terminal.CellPadding)
	border, _ := edges("", c.Terminal.CellBorder)
	return measure.TerminalOptions{
		CellPadding: padding,
		CellBorder:  border,
		Scrollbar:   c.Terminal.Scrollbar,
	}
}

// edges expands a 1 to 4 value CSS shorthand.
func edges(key string, v []int) (measure.Edges, error) {
	for _, n := range v {
		if n < 0 {
			return measure.Edges{}, errors.New(errors.ErrCodeInvalidConfig, "%s cannot be negative", key)
		}
	}
	switch len(v) {
	case 0:
		return measure.Edges{}, nil
	case 1:
		return measure.Edges{Top: v[0], Right: v[0], Bottom: v[0], Left: v[0]}, nil
	case 2:
		return measure.Edges{Top: v[0], Right: v[1], Bottom: v[0], Left: v[1]}, nil
	case 3:
		return measure.Edges{Top: v[0], Right: v[1], Bottom: v[2], Left: v[1]}, nil
	case 4:
		return measure.Edges{Top: v[0], Right: v[1], Bottom: v[2], Left: v[3]}, nil
	}
	return measure.Edges{}, errors.New(errors.ErrCodeInvalidConfig, "%s takes 1 to 4 values, got %d", key, len(v))
}
