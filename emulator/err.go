package emulator

import (
	"github.com/ezrec/uvm/translate"
)

var f = translate.From

var ErrDumpRange = translate.Error("invalid dump range")

// ErrRuntime indicates the source line of a runtime error.
type ErrRuntime struct {
	LineNo int
	Err    error
}

func (err *ErrRuntime) Error() string {
	return f("line %d %v", err.LineNo, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}

// ErrRange is a dump range outside of memory.
type ErrRange struct {
	Start, End int
	Size       int
}

func (err ErrRange) Error() string {
	return f("memory range [%d, %d] must be within [0, %d)", err.Start, err.End, err.Size)
}

func (err ErrRange) Unwrap() error {
	return ErrDumpRange
}
