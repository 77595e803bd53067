// Package config loads the machine configuration from YAML.
package config

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ezrec/vr4300/cpu"
	"github.com/ezrec/vr4300/memory"
	"github.com/ezrec/vr4300/translate"
)

var f = translate.From

var (
	ErrInvalid = errors.New(f("invalid configuration"))
	ErrSyntax  = errors.New(f("configuration syntax"))
)

const (
	DEFAULT_RDRAM_SIZE = 8 << 20

	BYTE_ORDER_BIG    = "big"
	BYTE_ORDER_LITTLE = "little"
)

// Config describes one machine.
type Config struct {
	ByteOrder     string       `yaml:"byte_order"`
	RdramSize     int          `yaml:"rdram_size"`
	DirectVectors bool         `yaml:"direct_vectors"`
	Interpreter   Interpreter  `yaml:"interpreter"`
	Verbose       bool         `yaml:"verbose"`
	Trace         bool         `yaml:"trace"`
	TraceFile     string       `yaml:"trace_file,omitempty"`
	Breakpoints   []Breakpoint `yaml:"breakpoints,omitempty"`
	Boot          Boot         `yaml:"boot"`
}

// Interpreter selects between implementation-defined instruction behaviours.
type Interpreter struct {
	ImmediateCompare string `yaml:"immediate_compare"`
	SignalingCompare string `yaml:"signaling_compare"`
}

// Breakpoint is a debugger breakpoint. Address or Instruction must be set.
type Breakpoint struct {
	Address     uint64 `yaml:"address,omitempty"`
	Condition   string `yaml:"condition,omitempty"`
	Instruction string `yaml:"instruction,omitempty"`
}

type Boot struct {
	PifRom string `yaml:"pif_rom,omitempty"`
	Cold   bool   `yaml:"cold"`
}

// Default returns the configuration used when no file is given.
func Default() (cfg *Config) {
	cfg = &Config{}
	cfg.normalize()
	return
}

func (cfg *Config) normalize() {
	if cfg.ByteOrder == "" {
		cfg.ByteOrder = BYTE_ORDER_BIG
	}
	if cfg.RdramSize == 0 {
		cfg.RdramSize = DEFAULT_RDRAM_SIZE
	}
	if cfg.Interpreter.ImmediateCompare == "" {
		cfg.Interpreter.ImmediateCompare = cpu.SignExtend.String()
	}
	if cfg.Interpreter.SignalingCompare == "" {
		cfg.Interpreter.SignalingCompare = cpu.SignalingIEEE.String()
	}
}

// Parse decodes a YAML document, applies defaults and validates the result.
func Parse(data []byte) (cfg *Config, err error) {
	cfg = &Config{}
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrSyntax, err)
		cfg = nil
		return
	}

	cfg.normalize()

	err = cfg.Validate()
	if err != nil {
		cfg = nil
	}
	return
}

// Load reads and parses a configuration file.
func Load(path string) (cfg *Config, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}

	cfg, err = Parse(data)
	if err != nil {
		err = fmt.Errorf("%v: %w", path, err)
	}
	return
}

func invalid(field string, value any) error {
	return fmt.Errorf("%w: %v '%v'", ErrInvalid, field, value)
}

// Validate checks every field, joining all of the problems found.
func (cfg *Config) Validate() error {
	var errs []error

	if _, err := cfg.Order(); err != nil {
		errs = append(errs, err)
	}

	if cfg.RdramSize <= 0 || cfg.RdramSize > memory.RDRAM_WINDOW || cfg.RdramSize%8 != 0 {
		errs = append(errs, invalid("rdram_size", cfg.RdramSize))
	}

	if _, err := cfg.Options(); err != nil {
		errs = append(errs, err)
	}

	for n, bp := range cfg.Breakpoints {
		if bp.Address == 0 && bp.Instruction == "" {
			errs = append(errs, invalid(fmt.Sprintf("breakpoints[%d]", n), "no address or instruction"))
		}
	}

	if cfg.TraceFile != "" && !cfg.Trace {
		errs = append(errs, invalid("trace_file", cfg.TraceFile+" without trace"))
	}

	return errors.Join(errs...)
}

// Order returns the guest data byte order.
func (cfg *Config) Order() (order binary.ByteOrder, err error) {
	switch cfg.ByteOrder {
	case BYTE_ORDER_BIG:
		order = binary.BigEndian
	case BYTE_ORDER_LITTLE:
		order = binary.LittleEndian
	default:
		err = invalid("byte_order", cfg.ByteOrder)
	}
	return
}

// Options returns the interpreter options.
func (cfg *Config) Options() (opts cpu.Options, err error) {
	var errs []error

	switch cfg.Interpreter.ImmediateCompare {
	case cpu.SignExtend.String():
		opts.ImmediateCompare = cpu.SignExtend
	case cpu.ZeroExtend.String():
		opts.ImmediateCompare = cpu.ZeroExtend
	default:
		errs = append(errs, invalid("interpreter.immediate_compare", cfg.Interpreter.ImmediateCompare))
	}

	switch cfg.Interpreter.SignalingCompare {
	case cpu.SignalingIEEE.String():
		opts.SignalingCompare = cpu.SignalingIEEE
	case cpu.SignalingReject.String():
		opts.SignalingCompare = cpu.SignalingReject
	case cpu.SignalingNaNTable.String():
		opts.SignalingCompare = cpu.SignalingNaNTable
	default:
		errs = append(errs, invalid("interpreter.signaling_compare", cfg.Interpreter.SignalingCompare))
	}

	err = errors.Join(errs...)
	return
}

// Marshal encodes the configuration as YAML.
func (cfg *Config) Marshal() (data []byte, err error) {
	return yaml.Marshal(cfg)
}
