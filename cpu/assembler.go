// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"maps"
	"slices"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/uvm/internal"
)

// Predefined system equates
var sysEquate = map[string]string{
	"MEMORY_SIZE": fmt.Sprintf("%d", MEMORY_SIZE),
}

// Assembler translates a CSV listing into a Program.
//
// Each record is a mnemonic followed by at most one integer argument.
// Records starting with ';' are comments. An argument may be a $(...)
// expression, evaluated at assembly time against the equates.
type Assembler struct {
	Verbose   bool        // If set, verbosely logs the assembler actions.
	Statement []Statement // List of generated statements.

	predefine map[string]string // Predefines
	Equate    map[string]string // Map of equates visible to $(...) expressions.
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// opMap maps mnemonics to opcodes.
var opMap = map[string]Opcode{
	"load":  OP_LOAD,
	"read":  OP_READ,
	"write": OP_WRITE,
	"gt":    OP_GT,
}

// valueOf returns the value of a single argument.
func (asm *Assembler) valueOf(word string) (value int64, err error) {
	if strings.HasPrefix(word, "$(") && strings.HasSuffix(word, ")") {
		return asm.parenEval(word[2 : len(word)-1])
	}

	value, err = strconv.ParseInt(word, 0, 64)
	if err != nil {
		err = ErrParseNumber(word)
		return
	}

	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value int64, err error) {
	thread := starlark.Thread{Name: "asm"}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		v64, perr := strconv.ParseInt(str, 0, 64)
		if perr != nil {
			// Only integer equates are visible.
			continue
		}
		pred[key] = starlark.MakeInt64(v64)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		err = errors.Join(ErrParseExpression(expr), err)
		return
	}
	st_int, ok := dict["rc"].(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value, ok = st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	return
}

// currentPc gets the program counter of the next statement.
func (asm *Assembler) currentPc() int {
	return len(asm.Statement) * CODE_SIZE
}

// Parse parses an input stream into a Program.
// The first error aborts the whole listing; no partial program is returned.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	reader := csv.NewReader(input)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.Comment = ';'

	var record []string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: strings.Join(record, ","), Err: err}
		}
	}()

	asm.Statement = asm.Statement[:0]
	asm.Equate = internal.Merge(maps.All(sysEquate), maps.All(_cpu_defines), maps.All(asm.predefine))

	for {
		record, err = reader.Read()
		if err == io.EOF {
			err = nil
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				lineno = perr.Line
			}
			return
		}
		lineno, _ = reader.FieldPos(0)

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, record)
		}

		err = asm.parseRecord(record, lineno)
		if err != nil {
			return
		}
	}

	prog = &Program{
		Statements: slices.Clone(asm.Statement),
	}

	return
}

// parseRecord evaluates the fields of a single listing record.
func (asm *Assembler) parseRecord(record []string, lineno int) (err error) {
	var words []string
	for _, field := range record {
		field = strings.TrimSpace(field)
		if len(field) > 0 {
			words = append(words, field)
		}
	}

	// Blank record, or an indented comment.
	if len(words) == 0 || strings.HasPrefix(words[0], ";") {
		return
	}

	op, ok := opMap[strings.ToLower(words[0])]
	if !ok {
		err = ErrOpcodeInvalid
		return
	}

	args := words[1:]
	need := 0
	if op.Width() > 0 {
		need = 1
	}
	switch {
	case len(args) > need:
		err = ErrOpcodeExtraArgs
		return
	case len(args) < need:
		err = ErrOpcodeValueMissing
		return
	}

	code := Code{Op: op}
	if need > 0 {
		var value int64
		value, err = asm.valueOf(args[0])
		if err != nil {
			return
		}
		if value < 0 || value > int64(op.Max()) {
			err = ErrOperandRange{Op: op, Value: value, Max: op.Max()}
			return
		}
		code.Operand = uint32(value)
	}

	asm.Statement = append(asm.Statement, Statement{
		LineNo: lineno,
		Pc:     asm.currentPc(),
		Words:  words,
		Code:   code,
	})

	return
}
