// Package cpu implements the instruction codec, stack machine and assembler
// for the UVM system.
//
// Every instruction is a single 24-bit little-endian word: a 4-bit opcode in
// bits 0-3 followed by an operand of up to 18 bits. The machine has no
// registers; it consists of an operand stack, a flat array of memory cells,
// and a program counter indexing the instruction byte stream.
//
// The assembler reads a CSV listing of mnemonics, one instruction per record,
// and produces a Program that can be encoded to the binary stream format.
package cpu
