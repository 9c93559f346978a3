// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"errors"
	"fmt"
	"iter"
	"log"
	"maps"
	"strings"
)

// Status is the execution state of the CPU.
type Status int

//go:generate go tool stringer -linecomment -type=Status
const (
	RUNNING       = Status(0) // running
	HALTED_NORMAL = Status(1) // halted
	HALTED_ERROR  = Status(2) // error
)

// MemoryPolicy selects how out-of-range memory accesses are handled.
type MemoryPolicy int

//go:generate go tool stringer -linecomment -type=MemoryPolicy
const (
	MEMORY_LENIENT = MemoryPolicy(0) // lenient
	MEMORY_STRICT  = MemoryPolicy(1) // strict
)

// Config is the machine configuration.
type Config struct {
	MemorySize   int          // Number of memory cells.
	InitialValue uint32       // Initial value of every memory cell.
	StackLimit   int          // Maximum stack depth, or 0 for no limit.
	Policy       MemoryPolicy // Out-of-range memory access handling.
}

// DefaultConfig returns the standard machine configuration.
func DefaultConfig() Config {
	return Config{
		MemorySize: MEMORY_SIZE,
	}
}

var _cpu_defines = map[string]string{
	"LOAD_MAX":   fmt.Sprintf("%d", LOAD_MAX),
	"OFFSET_MAX": fmt.Sprintf("%d", OFFSET_MAX),
	"CODE_SIZE":  fmt.Sprintf("%d", CODE_SIZE),
}

// Cpu is the fetch-decode-execute engine for a Machine.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Config  Config // Machine configuration.
	Machine        // Architectural state.

	Code   []byte // Program byte stream.
	Status Status // Current execution status.
	Err    error  // Error that halted the CPU.

	Ticks  int // Executed instruction counter.
	Faults int // Recovered out-of-range memory accesses.
}

// NewCpu creates a new CPU. A non-positive memory size selects MEMORY_SIZE.
func NewCpu(config Config) (cpu *Cpu) {
	if config.MemorySize <= 0 {
		config.MemorySize = MEMORY_SIZE
	}

	cpu = &Cpu{
		Config: config,
	}
	cpu.Reset(nil)

	return
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	defines := maps.Clone(_cpu_defines)
	defines["MEMORY_SIZE"] = fmt.Sprintf("%d", cpu.Config.MemorySize)
	return maps.All(defines)
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	var stack []string
	for _, value := range cpu.Stack.Data {
		stack = append(stack, fmt.Sprintf("%d", value))
	}

	text += fmt.Sprintf("% 7s: %v\n", "status", cpu.Status)
	text += fmt.Sprintf("% 7s: %d\n", "pc", cpu.Pc)
	text += fmt.Sprintf("% 7s: [%v]\n", "stack", strings.Join(stack, " "))
	text += fmt.Sprintf("% 7s: %d\n", "ticks", cpu.Ticks)
	text += fmt.Sprintf("% 7s: %d\n", "faults", cpu.Faults)
	if cpu.Err != nil {
		text += fmt.Sprintf("% 7s: %v\n", "err", cpu.Err)
	}

	return
}

// Reset the CPU state and install a new program.
// - Sets every memory cell to the initial value.
// - Clears the stack.
// - Zeros the program counter and statistics counters.
func (cpu *Cpu) Reset(code []byte) {
	if cpu.Verbose {
		log.Printf("cpu: reset, %d bytes of code", len(code))
	}

	cpu.Machine.Reset(cpu.Config.MemorySize, cpu.Config.InitialValue)
	cpu.Stack.Limit = cpu.Config.StackLimit

	cpu.Code = code
	cpu.Status = RUNNING
	cpu.Err = nil
	cpu.Ticks = 0
	cpu.Faults = 0
}

// FetchCode decodes the instruction at the program counter.
// Returns ErrCodeShort if no complete instruction remains.
func (cpu *Cpu) FetchCode() (code Code, err error) {
	if cpu.Pc >= len(cpu.Code) {
		err = ErrCodeShort
		return
	}

	return Decode(cpu.Code[cpu.Pc:])
}

// halt stops the CPU with a fatal error at the current instruction.
func (cpu *Cpu) halt(code Code, err error) error {
	cpu.Status = HALTED_ERROR
	cpu.Err = &ErrRuntime{Pc: cpu.Pc, Code: code, Err: err}

	if cpu.Verbose {
		log.Printf("cpu: %v", cpu.Err)
	}

	return cpu.Err
}

// Tick executes a single CPU instruction cycle.
func (cpu *Cpu) Tick() (err error) {
	if cpu.Status != RUNNING {
		err = ErrHalted
		return
	}

	code, err := cpu.FetchCode()
	if errors.Is(err, ErrCodeShort) {
		if cpu.Verbose {
			log.Printf("cpu: end of program at pc %d", cpu.Pc)
		}
		cpu.Status = HALTED_NORMAL
		err = nil
		return
	}
	if err != nil {
		return cpu.halt(code, err)
	}

	err = Execute(&cpu.Machine, code)
	if errors.Is(err, ErrMemoryRange) && cpu.Config.Policy == MEMORY_LENIENT {
		log.Printf("cpu: pc %d: %v: %v", cpu.Pc, code, err)
		cpu.Faults++
		err = nil
	}
	if err != nil {
		return cpu.halt(code, err)
	}

	if cpu.Verbose {
		log.Printf("cpu: %04d: %-9v stack %v", cpu.Pc, code, cpu.Stack.Data)
	}

	cpu.Pc += CODE_SIZE
	cpu.Ticks++

	return
}

// Run executes instructions until the CPU halts.
// Returns the fatal error, if any, that halted the CPU, including when the
// CPU had already halted before the call.
func (cpu *Cpu) Run() (err error) {
	for cpu.Status == RUNNING {
		err = cpu.Tick()
		if err != nil {
			return
		}
	}

	return cpu.Err
}
