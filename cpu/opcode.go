// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"fmt"
	"slices"
)

const (
	CODE_SIZE   = 3       // Size in bytes of an encoded instruction.
	OPCODE_BITS = 4       // Width of the opcode tag.
	OPCODE_MASK = 0xf     // Mask of the opcode tag.
	LOAD_BITS   = 18      // Width of a load constant.
	LOAD_MAX    = 0x3ffff // Largest load constant.
	OFFSET_BITS = 6       // Width of a read or gt memory offset.
	OFFSET_MAX  = 0x3f    // Largest read or gt memory offset.
)

// Opcode is the 4-bit opcode tag of an instruction.
type Opcode int

//go:generate go tool stringer -linecomment -type=Opcode
const (
	OP_LOAD  = Opcode(1)  // load
	OP_WRITE = Opcode(3)  // write
	OP_GT    = Opcode(5)  // gt
	OP_READ  = Opcode(15) // read
)

// Opcodes lists every assigned opcode, in tag order.
var Opcodes = []Opcode{OP_LOAD, OP_WRITE, OP_GT, OP_READ}

// Valid returns true if the opcode tag is assigned to an operation.
func (op Opcode) Valid() bool {
	return slices.Contains(Opcodes, op)
}

// Width returns the operand width in bits.
func (op Opcode) Width() (bits int) {
	switch op {
	case OP_LOAD:
		bits = LOAD_BITS
	case OP_READ, OP_GT:
		bits = OFFSET_BITS
	}
	return
}

// Max returns the largest operand the opcode can encode.
func (op Opcode) Max() uint32 {
	return (uint32(1) << op.Width()) - 1
}

// Code is a single decoded instruction.
type Code struct {
	Op      Opcode // Operation.
	Operand uint32 // Constant for load, memory offset for read and gt.
}

// MakeCodeLoad creates an instruction that pushes a constant.
func MakeCodeLoad(value uint32) Code {
	return Code{Op: OP_LOAD, Operand: value}
}

// MakeCodeRead creates an instruction that replaces the address on top of
// the stack with the memory cell at address+offset.
func MakeCodeRead(offset uint32) Code {
	return Code{Op: OP_READ, Operand: offset}
}

// MakeCodeWrite creates an instruction that pops a value and an address,
// and stores the value into memory.
func MakeCodeWrite() Code {
	return Code{Op: OP_WRITE}
}

// MakeCodeGt creates an instruction that pops two values and an address,
// and stores the comparison result into memory at address+offset.
func MakeCodeGt(offset uint32) Code {
	return Code{Op: OP_GT, Operand: offset}
}

// Word returns the 24-bit instruction word.
func (code Code) Word() (word uint32, err error) {
	if !code.Op.Valid() {
		err = ErrOpcodeUnknown(code.Op)
		return
	}

	if code.Operand > code.Op.Max() {
		err = ErrOperandRange{Op: code.Op, Value: int64(code.Operand), Max: code.Op.Max()}
		return
	}

	word = uint32(code.Op)&OPCODE_MASK | (code.Operand << OPCODE_BITS)
	return
}

// Encode returns the little-endian wire encoding of the instruction.
func (code Code) Encode() (data [CODE_SIZE]byte, err error) {
	word, err := code.Word()
	if err != nil {
		return
	}

	data[0] = byte(word >> 0)
	data[1] = byte(word >> 8)
	data[2] = byte(word >> 16)
	return
}

// Decode decodes the instruction at the start of data.
// Operands are masked to their field width, so only the opcode can be invalid.
func Decode(data []byte) (code Code, err error) {
	if len(data) < CODE_SIZE {
		err = ErrCodeShort
		return
	}

	word := uint32(data[0]) | (uint32(data[1]) << 8) | (uint32(data[2]) << 16)

	op := Opcode(word & OPCODE_MASK)
	switch op {
	case OP_LOAD:
		code = MakeCodeLoad((word >> OPCODE_BITS) & LOAD_MAX)
	case OP_READ:
		code = MakeCodeRead((word >> OPCODE_BITS) & OFFSET_MAX)
	case OP_WRITE:
		code = MakeCodeWrite()
	case OP_GT:
		code = MakeCodeGt((word >> OPCODE_BITS) & OFFSET_MAX)
	default:
		code = Code{Op: op}
		err = ErrOpcodeUnknown(op)
	}

	return
}

// Fields returns the raw field view of the instruction, as printed by the
// assembler listing.
func (code Code) Fields() (out string) {
	out = fmt.Sprintf("A=%d (%d bits)", int(code.Op), OPCODE_BITS)
	if width := code.Op.Width(); width > 0 {
		out += fmt.Sprintf(" B=%d (%d bits)", code.Operand, width)
	}
	return
}

// String returns the assembly language representation of this instruction.
func (code Code) String() string {
	if code.Op.Width() == 0 {
		return code.Op.String()
	}
	return fmt.Sprintf("%v %d", code.Op, code.Operand)
}
