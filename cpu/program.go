package cpu

import (
	"iter"
)

// Statement is a single assembled instruction and its source location.
type Statement struct {
	LineNo int      // Source line, or 0 if disassembled.
	Pc     int      // Byte offset in the program.
	Words  []string // Source fields.
	Code   Code     // Instruction.
}

type Program struct {
	Statements []Statement
}

// Debug returns the statement at the program counter, or nil.
func (prog *Program) Debug(pc int) *Statement {
	for n, stmt := range prog.Statements {
		if pc >= stmt.Pc && pc < stmt.Pc+CODE_SIZE {
			return &prog.Statements[n]
		}
	}

	return nil
}

// Codes iterates over the program counter and instruction of each statement.
func (prog *Program) Codes() iter.Seq2[int, Code] {
	return func(yield func(pc int, code Code) bool) {
		for _, stmt := range prog.Statements {
			if !yield(stmt.Pc, stmt.Code) {
				return
			}
		}
	}
}

// Binary encodes the program as an instruction byte stream.
// No partial stream is returned on error.
func (prog *Program) Binary() (data []byte, err error) {
	out := make([]byte, 0, len(prog.Statements)*CODE_SIZE)
	for _, code := range prog.Codes() {
		var bin [CODE_SIZE]byte
		bin, err = code.Encode()
		if err != nil {
			return
		}
		out = append(out, bin[:]...)
	}

	data = out
	return
}

// Disassemble decodes a sequence of program counter and instruction word
// pairs, such as the words of a program image, into a program.
func Disassemble(words iter.Seq2[int, []byte]) (prog *Program, err error) {
	prog = &Program{}
	for pc, word := range words {
		var code Code
		code, err = Decode(word)
		if err != nil {
			err = &ErrRuntime{Pc: pc, Code: code, Err: err}
			prog = nil
			return
		}
		prog.Statements = append(prog.Statements, Statement{Pc: pc, Code: code})
	}

	return
}
