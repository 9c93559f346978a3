// Package config handles uvm.toml machine configuration.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/ezrec/uvm/cpu"
	"github.com/ezrec/uvm/io"
	"github.com/ezrec/uvm/translate"
)

var f = translate.From

var ErrConfig = translate.Error("invalid configuration")

// Config represents a uvm.toml configuration.
type Config struct {
	Machine Machine `toml:"machine"`
	Dump    Dump    `toml:"dump"`
}

// Machine configures the virtual machine.
type Machine struct {
	MemorySize   int    `toml:"memory-size"`
	InitialValue uint32 `toml:"initial-value"`
	StackLimit   int    `toml:"stack-limit"`
	Strict       bool   `toml:"strict"`
}

// Dump configures the memory dump output.
type Dump struct {
	Format string `toml:"format"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Machine: Machine{MemorySize: cpu.MEMORY_SIZE},
	}
}

// Load parses a configuration file. Keys missing from the file keep their
// default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", f("cannot read %s", path), err)
	}

	return Parse(string(data))
}

// Parse parses configuration text.
func Parse(text string) (*Config, error) {
	c := Default()
	if _, err := toml.Decode(text, c); err != nil {
		return nil, fmt.Errorf("%v: %w", f("parse error"), err)
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

// Validate checks the configuration values.
func (c *Config) Validate() error {
	if c.Machine.MemorySize <= 0 {
		return fmt.Errorf("%w: %v", ErrConfig, f("memory-size %d must be positive", c.Machine.MemorySize))
	}
	if c.Machine.StackLimit < 0 {
		return fmt.Errorf("%w: %v", ErrConfig, f("stack-limit %d must not be negative", c.Machine.StackLimit))
	}
	if len(c.Dump.Format) != 0 {
		if _, err := io.ParseFormat(c.Dump.Format); err != nil {
			return fmt.Errorf("%w: %w", ErrConfig, err)
		}
	}
	return nil
}

// Cpu returns the machine configuration for the CPU.
func (c *Config) Cpu() cpu.Config {
	config := cpu.Config{
		MemorySize:   c.Machine.MemorySize,
		InitialValue: c.Machine.InitialValue,
		StackLimit:   c.Machine.StackLimit,
	}
	if c.Machine.Strict {
		config.Policy = cpu.MEMORY_STRICT
	}
	return config
}

// DumpFormat returns the configured dump format, or the format implied by
// the dump file name if none is configured.
func (c *Config) DumpFormat(path string) io.Format {
	if format, err := io.ParseFormat(c.Dump.Format); err == nil {
		return format
	}
	return io.FormatOf(path)
}
