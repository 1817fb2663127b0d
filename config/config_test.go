package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sparques/manchester"
	"github.com/sparques/manchester/rc5"
)

func TestParseDefaults(t *testing.T) {
	c, err := Parse([]byte("{}"))
	if err != nil {
		t.Fatal(err)
	}
	if c.LogLevel != "info" {
		t.Errorf("log level: got %q, want info", c.LogLevel)
	}
	if c.Emitter.PauseTicks != DefaultPauseTicks || c.Emitter.Power != DefaultPower {
		t.Errorf("emitter: got %+v", c.Emitter)
	}
	cfg, err := c.Decoder.Manchester()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Inactivity != manchester.InactiveHigh || cfg.Sync != manchester.SyncFirstEdge || cfg.Order != manchester.BigEndian {
		t.Errorf("decoder defaults: got %+v", cfg)
	}
}

func TestLoad(t *testing.T) {
	contents := `
log_level: debug
decoder:
  inactivity: low
  sync: second
  order: little
emitter:
  pause_ticks: 12
  power: 90
streams:
  - "--------......---------"
datagrams:
  - "0110-1"
rc5:
  - address: 37
    command: 200
    toggle: true
`
	path := filepath.Join(t.TempDir(), "manchester.yaml")
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatal(err)
	}
	c, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if c.LogLevel != "debug" {
		t.Errorf("log level: got %q", c.LogLevel)
	}
	if c.Emitter.PauseTicks != 12 {
		t.Errorf("pause ticks: got %d, want 12", c.Emitter.PauseTicks)
	}
	if c.Emitter.Power != DefaultPower {
		t.Errorf("power above the cap: got %d, want %d", c.Emitter.Power, DefaultPower)
	}
	if len(c.Streams) != 1 || len(c.Datagrams) != 1 || len(c.RC5) != 1 {
		t.Fatalf("lists: got %d streams, %d datagrams, %d rc5 frames", len(c.Streams), len(c.Datagrams), len(c.RC5))
	}
	cfg, err := c.Decoder.Manchester()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Inactivity != manchester.InactiveLow || cfg.Sync != manchester.SyncSecondEdge || cfg.Order != manchester.LittleEndian {
		t.Errorf("decoder: got %+v", cfg)
	}
	want := rc5.Frame{Address: 5, Command: 72, Toggle: true}
	if got := c.RC5[0].Frame(); got != want {
		t.Errorf("rc5 frame: got %+v, want %+v", got, want)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected an error")
	}
}

func TestParseBadDecoder(t *testing.T) {
	for _, contents := range []string{
		"decoder: {inactivity: sideways}",
		"decoder: {sync: third}",
		"decoder: {order: middle}",
		"decoder: [",
	} {
		if _, err := Parse([]byte(contents)); err == nil {
			t.Errorf("%q: expected an error", contents)
		}
	}
}
