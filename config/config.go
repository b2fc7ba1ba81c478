// SPDX-License-Identifier: MIT

// Package config loads the fwviz configuration file and builds the logger.
//
// The file is YAML (.yaml, .yml) or TOML (.toml), chosen by extension.
// It must declare version 1. Fields left out take their defaults:
//
//	version: 1
//	playback:
//	  speed: 50        # 1..100, higher is faster
//	  autoplay: true
//	canvas:
//	  width: 500
//	  height: 400
//	  margin: 50
//	graph:
//	  preset: simple   # or file: graph.json
//	  source: A
//	  target: D
//	server:
//	  addr: ":8080"
//	  allowed_origins: ["*"]
//	log:
//	  level: info      # debug, info, warn, error
//	  format: text     # text or json
//	  file: ""         # rotating file; empty logs to stderr
//	  max_size_mb: 10
//	  max_age_days: 7
//	  max_backups: 3
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/fwviz/core"
	"github.com/katalvlaran/fwviz/playback"
)

// Version is the only configuration version understood.
const Version = 1

var (
	// ErrUnsupportedVersion indicates a version other than Version.
	ErrUnsupportedVersion = errors.New("config: unsupported version")

	// ErrUnknownFormat indicates a file extension that is neither YAML nor TOML.
	ErrUnknownFormat = errors.New("config: unknown file format")
)

// Format of a configuration document.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// Config is the whole configuration file.
type Config struct {
	Version  int            `yaml:"version" toml:"version"`
	Playback PlaybackConfig `yaml:"playback" toml:"playback"`
	Canvas   core.Canvas    `yaml:"canvas" toml:"canvas"`
	Graph    GraphConfig    `yaml:"graph" toml:"graph"`
	Server   ServerConfig   `yaml:"server" toml:"server"`
	Log      LogConfig      `yaml:"log" toml:"log"`
}

// PlaybackConfig sets the initial animation behavior.
type PlaybackConfig struct {
	Speed int `yaml:"speed" toml:"speed"`
	// Autoplay is a pointer so that an explicit false survives defaulting.
	Autoplay *bool `yaml:"autoplay" toml:"autoplay"`
}

// GraphConfig selects the graph loaded at start-up and the highlighted pair.
type GraphConfig struct {
	Preset string `yaml:"preset" toml:"preset"`
	File   string `yaml:"file" toml:"file"`
	Source string `yaml:"source" toml:"source"`
	Target string `yaml:"target" toml:"target"`
}

// ServerConfig configures the HTTP host.
type ServerConfig struct {
	Addr           string   `yaml:"addr" toml:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins" toml:"allowed_origins"`
}

// LogConfig configures logging. A non-empty File sends output to a rotating
// file instead of stderr.
type LogConfig struct {
	Level      string `yaml:"level" toml:"level"`
	Format     string `yaml:"format" toml:"format"`
	File       string `yaml:"file" toml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb" toml:"max_size_mb"`
	MaxAgeDays int    `yaml:"max_age_days" toml:"max_age_days"`
	MaxBackups int    `yaml:"max_backups" toml:"max_backups"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	c := &Config{Version: Version}
	c.applyDefaults()

	return c
}

// AutoplayEnabled reports the effective autoplay setting.
func (c *Config) AutoplayEnabled() bool {
	return c.Playback.Autoplay == nil || *c.Playback.Autoplay
}

// Load reads the file at path, choosing the decoder by extension.
func Load(path string) (*Config, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := Parse(b, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	// A relative graph file is relative to the config file.
	if cfg.Graph.File != "" && !filepath.IsAbs(cfg.Graph.File) {
		cfg.Graph.File = filepath.Join(filepath.Dir(path), cfg.Graph.File)
	}

	return cfg, nil
}

// FormatOf maps a file extension to a Format.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
	}
}

// Parse decodes b, checks the version and fills in defaults.
func Parse(b []byte, format Format) (*Config, error) {
	var cfg Config
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(b))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil {
			return nil, fmt.Errorf("config: decode yaml: %w", err)
		}
	case FormatTOML:
		md, err := toml.Decode(string(b), &cfg)
		if err != nil {
			return nil, fmt.Errorf("config: decode toml: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("config: unknown toml keys %v", undecoded)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	if cfg.Version != Version {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, cfg.Version)
	}
	if cfg.Graph.Preset != "" && cfg.Graph.File != "" {
		return nil, errors.New("config: graph.preset and graph.file are mutually exclusive")
	}
	cfg.applyDefaults()

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Playback.Speed == 0 {
		c.Playback.Speed = playback.DefaultSpeed
	}
	c.Playback.Speed = playback.ClampSpeed(c.Playback.Speed)

	def := core.DefaultCanvas
	if c.Canvas.Width == 0 {
		c.Canvas.Width = def.Width
	}
	if c.Canvas.Height == 0 {
		c.Canvas.Height = def.Height
	}
	if c.Canvas.Margin == 0 {
		c.Canvas.Margin = def.Margin
	}

	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if len(c.Server.AllowedOrigins) == 0 {
		c.Server.AllowedOrigins = []string{"*"}
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.Log.MaxSizeMB == 0 {
		c.Log.MaxSizeMB = 10
	}
	if c.Log.MaxAgeDays == 0 {
		c.Log.MaxAgeDays = 7
	}
	if c.Log.MaxBackups == 0 {
		c.Log.MaxBackups = 3
	}
}
