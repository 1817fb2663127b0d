package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/sparques/manchester"
	"github.com/sparques/manchester/rc5"
)

const (
	DefaultPauseTicks = 8
	DefaultPower      = manchester.MaxPower
)

type Config struct {
	LogLevel  string     `yaml:"log_level"`
	Decoder   Decoder    `yaml:"decoder"`
	Emitter   Emitter    `yaml:"emitter"`
	Streams   []string   `yaml:"streams"`
	Datagrams []string   `yaml:"datagrams"`
	RC5       []RC5Frame `yaml:"rc5"`
}

type Decoder struct {
	Inactivity string `yaml:"inactivity"`
	Sync       string `yaml:"sync"`
	Order      string `yaml:"order"`
}

type Emitter struct {
	PauseTicks uint8 `yaml:"pause_ticks"`
	Power      uint8 `yaml:"power"`
}

type RC5Frame struct {
	Address uint8 `yaml:"address"`
	Command uint8 `yaml:"command"`
	Toggle  bool  `yaml:"toggle"`
}

// Load reads a YAML config file and fills in defaults for anything left out.
func Load(path string) (Config, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	return Parse(contents)
}

func Parse(contents []byte) (Config, error) {
	var c Config
	if err := yaml.Unmarshal(contents, &c); err != nil {
		return Config{}, fmt.Errorf("unmarshaling yaml: %w", err)
	}
	c.setDefaults()
	if _, err := c.Decoder.Manchester(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// setDefaults fills empty values with default ones
func (c *Config) setDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Decoder.Inactivity == "" {
		c.Decoder.Inactivity = manchester.InactiveHigh.String()
	}
	if c.Decoder.Sync == "" {
		c.Decoder.Sync = manchester.SyncFirstEdge.String()
	}
	if c.Decoder.Order == "" {
		c.Decoder.Order = manchester.BigEndian.String()
	}
	if c.Emitter.PauseTicks == 0 {
		c.Emitter.PauseTicks = DefaultPauseTicks
	}
	if c.Emitter.Power == 0 || c.Emitter.Power > manchester.MaxPower {
		c.Emitter.Power = DefaultPower
	}
}

// Manchester converts the decoder section into a manchester.Config.
func (d Decoder) Manchester() (manchester.Config, error) {
	var cfg manchester.Config
	switch d.Inactivity {
	case "high":
		cfg.Inactivity = manchester.InactiveHigh
	case "low":
		cfg.Inactivity = manchester.InactiveLow
	default:
		return cfg, fmt.Errorf("decoder inactivity %q: want high or low", d.Inactivity)
	}
	switch d.Sync {
	case "first":
		cfg.Sync = manchester.SyncFirstEdge
	case "second":
		cfg.Sync = manchester.SyncSecondEdge
	default:
		return cfg, fmt.Errorf("decoder sync %q: want first or second", d.Sync)
	}
	switch d.Order {
	case "big":
		cfg.Order = manchester.BigEndian
	case "little":
		cfg.Order = manchester.LittleEndian
	default:
		return cfg, fmt.Errorf("decoder order %q: want big or little", d.Order)
	}
	return cfg, nil
}

// Frame converts to an rc5.Frame, masking out-of-range fields.
func (f RC5Frame) Frame() rc5.Frame {
	return rc5.Frame{
		Address: f.Address & rc5.AddrMask,
		Command: f.Command & rc5.CmdExtMask,
		Toggle:  f.Toggle,
	}
}
