package cpu

import (
	"github.com/ezrec/uvm/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrHalted      = translate.Error("cpu halted")
	ErrStackEmpty  = translate.Error("stack empty")
	ErrStackFull   = translate.Error("stack full")
	ErrMemoryRange = translate.Error("memory address out of range")

	// Instruction decode errors
	ErrCodeShort = translate.Error("instruction truncated")

	// Assembler errors
	ErrOpcodeExtraArgs    = translate.Error("excessive arguments")
	ErrOpcodeValueMissing = translate.Error("value missing")
	ErrOpcodeInvalid      = translate.Error("opcode invalid")
)

// ErrOpcodeUnknown is an opcode tag with no assigned operation.
type ErrOpcodeUnknown Opcode

func (eo ErrOpcodeUnknown) Error() string {
	return f("unknown opcode %d", int(eo))
}

func (eo ErrOpcodeUnknown) Is(err error) (ok bool) {
	_, ok = err.(ErrOpcodeUnknown)
	return
}

// ErrOperandRange is an operand that does not fit its instruction field.
type ErrOperandRange struct {
	Op    Opcode
	Value int64
	Max   uint32
}

func (err ErrOperandRange) Error() string {
	return f("%v operand %v out of range [0, %v]", err.Op.String(), err.Value, err.Max)
}

func (err ErrOperandRange) Is(target error) (ok bool) {
	_, ok = target.(ErrOperandRange)
	return
}

// ErrAddress is an effective memory address outside of memory.
type ErrAddress uint64

func (err ErrAddress) Error() string {
	return f("address %v", uint64(err))
}

func (err ErrAddress) Unwrap() error {
	return ErrMemoryRange
}

// ErrRuntime indicates the program counter and instruction of a fatal
// execution error.
type ErrRuntime struct {
	Pc   int
	Code Code
	Err  error
}

func (err *ErrRuntime) Error() string {
	return f("pc %d %v: %v", err.Pc, err.Code.String(), err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}
