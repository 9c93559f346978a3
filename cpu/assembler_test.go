package cpu

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssembler(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	prog, err := asm.Parse(strings.NewReader(""))
	assert.NoError(err)
	assert.Equal(0, len(prog.Statements))

	assert.Equal("1024", asm.Equate["MEMORY_SIZE"])
	assert.Equal("262143", asm.Equate["LOAD_MAX"])
	assert.Equal("63", asm.Equate["OFFSET_MAX"])
}

func TestAssembler_Parse(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"; store 100 at address 5",
		"load,5",
		"",
		"LOAD, 100",
		"write",
		" , ",
		"Load,5,",
		"read,0",
		"gt,27",
		"load,0x10b",
		"  ; indented comment, with a field",
	}

	asm := &Assembler{}
	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	require.NoError(t, err)

	expected := []Statement{
		{2, 0, []string{"load", "5"}, MakeCodeLoad(5)},
		{4, 3, []string{"LOAD", "100"}, MakeCodeLoad(100)},
		{5, 6, []string{"write"}, MakeCodeWrite()},
		{7, 9, []string{"Load", "5"}, MakeCodeLoad(5)},
		{8, 12, []string{"read", "0"}, MakeCodeRead(0)},
		{9, 15, []string{"gt", "27"}, MakeCodeGt(27)},
		{10, 18, []string{"load", "0x10b"}, MakeCodeLoad(267)},
	}
	assert.Equal(expected, prog.Statements)

	data, err := prog.Binary()
	assert.NoError(err)
	assert.Equal(len(expected)*CODE_SIZE, len(data))
	assert.Equal([]byte{0xB1, 0x10, 0x00}, data[18:])
}

func TestAssembler_Comment(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	prog, err := asm.Parse(strings.NewReader("  ; a comment\nload,1\n\t;load,2\n"))
	require.NoError(t, err)

	assert.Equal([]Statement{
		{2, 0, []string{"load", "1"}, MakeCodeLoad(1)},
	}, prog.Statements)
}

func TestAssembler_Expression(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	asm.Predefine("BASE", "0x100")

	program := []string{
		"load,$(BASE + 4)",
		"load,$(LOAD_MAX)",
		"read,$(OFFSET_MAX // 2)",
		"load,$(MEMORY_SIZE - 1)",
	}

	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	require.NoError(t, err)

	var codes []Code
	for _, code := range prog.Codes() {
		codes = append(codes, code)
	}
	assert.Equal([]Code{
		MakeCodeLoad(0x104),
		MakeCodeLoad(LOAD_MAX),
		MakeCodeRead(31),
		MakeCodeLoad(1023),
	}, codes)
}

func TestAssembler_Errors(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name   string
		source string
		lineno int
		err    error
	}){
		{"mnemonic", "load,1\njump,2", 2, ErrOpcodeInvalid},
		{"number", "load,abc", 1, ErrParseNumber("abc")},
		{"float", "load,1.5", 1, ErrParseNumber("1.5")},
		{"missing", "load,1\n\nread", 3, ErrOpcodeValueMissing},
		{"extra", "write,1", 1, ErrOpcodeExtraArgs},
		{"extra2", "load,1,2", 1, ErrOpcodeExtraArgs},
		{"load_range", "load,262144", 1, ErrOperandRange{}},
		{"read_range", "read,64", 1, ErrOperandRange{}},
		{"gt_range", "gt,64", 1, ErrOperandRange{}},
		{"negative", "load,-1", 1, ErrOperandRange{}},
		{"expression", "load,$(nope)", 1, ErrParseExpression("nope")},
		{"expression_type", "load,$('x')", 1, ErrParseExpression("'x'")},
	}

	for _, entry := range table {
		asm := &Assembler{}
		prog, err := asm.Parse(strings.NewReader(entry.source))
		assert.Nil(prog, entry.name)
		assert.ErrorIs(err, entry.err, entry.name)

		var serr *ErrSyntax
		if assert.True(errors.As(err, &serr), entry.name) {
			assert.Equal(entry.lineno, serr.LineNo, entry.name)
		}
	}
}

func TestAssembler_Reuse(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	_, err := asm.Parse(strings.NewReader("load,1\nload,2"))
	assert.NoError(err)

	prog, err := asm.Parse(strings.NewReader("write"))
	assert.NoError(err)
	assert.Equal([]Statement{{1, 0, []string{"write"}, MakeCodeWrite()}}, prog.Statements)
}
