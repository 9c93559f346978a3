// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"iter"
	"log"

	"github.com/ezrec/uvm/cpu"
	"github.com/ezrec/uvm/io"
)

// Emulator state. CPU + program image.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Source listing of the program, if known.

	Rom io.Rom // Program image.
}

// NewEmulator creates a new emulator.
func NewEmulator(config cpu.Config) (emu *Emulator) {
	emu = &Emulator{
		Cpu:     cpu.NewCpu(config),
		Program: &cpu.Program{},
	}

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return emu.Cpu.Defines()
}

// Load assembles a program into the program image.
func (emu *Emulator) Load(prog *cpu.Program) (err error) {
	data, err := prog.Binary()
	if err != nil {
		return
	}

	emu.Program = prog
	emu.Rom.Data = data

	return
}

// Reset the emulator state, and restart the program image.
func (emu *Emulator) Reset() {
	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Reset(emu.Rom.Data)

	if emu.Verbose && emu.Rom.Tail() != 0 {
		log.Printf("emulator: ignoring %d trailing bytes", emu.Rom.Tail())
	}
}

// LineNo returns the current line number for the executing statement.
func (emu *Emulator) LineNo() int {
	if emu.Program == nil {
		return 0
	}

	stmt := emu.Program.Debug(emu.Cpu.Pc)
	if stmt == nil {
		return 0
	}

	return stmt.LineNo
}

// Tick performs a single tick of the emulator.
// done is set once the CPU has halted, normally or not.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	lineno := emu.LineNo()
	defer func() {
		if err != nil && lineno != 0 {
			err = &ErrRuntime{LineNo: lineno, Err: err}
		}
	}()

	err = emu.Cpu.Tick()
	done = emu.Cpu.Status != cpu.RUNNING

	return
}

// Run ticks the emulator until the CPU halts.
func (emu *Emulator) Run() (err error) {
	for done := false; !done; {
		done, err = emu.Tick()
		if err != nil {
			return
		}
	}

	return
}

// CheckRange verifies that [start, end] is a valid dump range.
func (emu *Emulator) CheckRange(start, end int) (err error) {
	size := len(emu.Cpu.Memory)
	if start < 0 || end < start || end >= size {
		err = ErrRange{Start: start, End: end, Size: size}
	}

	return
}

// Dump returns a copy of the memory cells in [start, end].
func (emu *Emulator) Dump(start, end int) (dump *io.Dump, err error) {
	err = emu.CheckRange(start, end)
	if err != nil {
		return
	}

	dump = &io.Dump{
		Start: start,
		Cells: append([]uint32(nil), emu.Cpu.Memory[start:end+1]...),
	}

	return
}
