// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package config holds the YAML configuration of the inkplate tool: which
// bus and pins the panel is wired to, which expander the board carries and
// how the terminal preview looks.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/GermanBionicSystems/inkplate/inkplate6color"
	"periph.io/x/conn/v3/physic"
)

// Expander kinds.
const (
	ExpanderNone      = "none"
	ExpanderPCAL6416A = "pcal6416a"
	ExpanderMCP23017  = "mcp23017"
)

// Panel describes the wiring and geometry of the e-paper panel.
type Panel struct {
	// SPI is the spireg name of the port; empty selects the first one.
	SPI  string `yaml:"spi"`
	DC   string `yaml:"dc"`
	CS   string `yaml:"cs"`
	RST  string `yaml:"rst"`
	Busy string `yaml:"busy"`

	Width    int `yaml:"width"`
	Height   int `yaml:"height"`
	Rotation int `yaml:"rotation"`

	// SPIHz is the clock of the SPI port in Hz.
	SPIHz          int64         `yaml:"spi_hz"`
	InitTimeout    time.Duration `yaml:"init_timeout"`
	RefreshTimeout time.Duration `yaml:"refresh_timeout"`
}

// Expander describes the board GPIO expander.
type Expander struct {
	// Kind is one of "pcal6416a", "mcp23017" or "none".
	Kind string `yaml:"kind"`
	// Bus is the i2creg name of the bus; empty selects the first one.
	Bus  string `yaml:"bus"`
	Addr uint16 `yaml:"addr"`
}

// Preview configures the terminal preview.
type Preview struct {
	Scale int  `yaml:"scale"`
	Mono  bool `yaml:"mono"`
}

// Config is the top-level configuration.
type Config struct {
	Panel    Panel    `yaml:"panel"`
	Expander Expander `yaml:"expander"`
	Preview  Preview  `yaml:"preview"`
}

// DefaultConfig returns the wiring of an Inkplate 6COLOR.
func DefaultConfig() *Config {
	return &Config{
		Panel: Panel{
			DC:             "GPIO33",
			CS:             "GPIO27",
			RST:            "GPIO19",
			Busy:           "GPIO32",
			Width:          inkplate6color.DefaultOpts.Width,
			Height:         inkplate6color.DefaultOpts.Height,
			SPIHz:          int64(inkplate6color.DefaultOpts.SPIFrequency / physic.Hertz),
			InitTimeout:    inkplate6color.DefaultOpts.InitTimeout,
			RefreshTimeout: inkplate6color.DefaultOpts.RefreshTimeout,
		},
		Expander: Expander{
			Kind: ExpanderPCAL6416A,
			Addr: 0x20,
		},
		Preview: Preview{
			Scale: 8,
		},
	}
}

// Normalize fills in zero values from DefaultConfig so that partial files
// still work.
func (c *Config) Normalize() {
	def := DefaultConfig()
	p := &c.Panel
	if p.DC == "" {
		p.DC = def.Panel.DC
	}
	if p.CS == "" {
		p.CS = def.Panel.CS
	}
	if p.RST == "" {
		p.RST = def.Panel.RST
	}
	if p.Busy == "" {
		p.Busy = def.Panel.Busy
	}
	if p.Width == 0 && p.Height == 0 {
		p.Width, p.Height = def.Panel.Width, def.Panel.Height
	}
	if p.SPIHz <= 0 {
		p.SPIHz = def.Panel.SPIHz
	}
	if p.InitTimeout <= 0 {
		p.InitTimeout = def.Panel.InitTimeout
	}
	if p.RefreshTimeout <= 0 {
		p.RefreshTimeout = def.Panel.RefreshTimeout
	}
	if c.Expander.Kind == "" {
		c.Expander.Kind = def.Expander.Kind
	}
	if c.Expander.Addr == 0 {
		c.Expander.Addr = def.Expander.Addr
	}
	if c.Preview.Scale <= 0 {
		c.Preview.Scale = def.Preview.Scale
	}
}

// Validate reports settings that cannot work.
func (c *Config) Validate() error {
	switch c.Expander.Kind {
	case ExpanderNone, ExpanderPCAL6416A, ExpanderMCP23017:
	default:
		return fmt.Errorf("config: unknown expander kind %q", c.Expander.Kind)
	}
	if c.Panel.Width <= 0 || c.Panel.Height <= 0 || c.Panel.Width%2 != 0 {
		return fmt.Errorf("config: invalid panel size %dx%d", c.Panel.Width, c.Panel.Height)
	}
	return nil
}

// PanelOpts returns the driver options of the panel section.
func (c *Config) PanelOpts() *inkplate6color.Opts {
	return &inkplate6color.Opts{
		Width:          c.Panel.Width,
		Height:         c.Panel.Height,
		Rotation:       c.Panel.Rotation,
		InitTimeout:    c.Panel.InitTimeout,
		RefreshTimeout: c.Panel.RefreshTimeout,
		SPIFrequency:   physic.Frequency(c.Panel.SPIHz) * physic.Hertz,
	}
}

// Load reads the configuration at path. A missing file yields DefaultConfig.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config: path is empty")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes cfg to path atomically through a temporary file in the same
// directory.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config: path is empty")
	}
	if cfg == nil {
		return errors.New("config: config is nil")
	}
	cfg.Normalize()

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".inkplate-config-*.tmp")
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("config: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
