package io

import (
	"github.com/ezrec/uvm/translate"
)

var f = translate.From

var (
	// Dump errors
	ErrFormat   = translate.Error("unknown dump format")
	ErrDumpKeys = translate.Error("dump addresses not contiguous")
)

// ErrDumpValue is a dump cell value that does not fit a memory cell.
type ErrDumpValue struct {
	Key   string
	Value int64
}

func (err ErrDumpValue) Error() string {
	return f("'%v' value %d out of range", err.Key, err.Value)
}

// ErrDumpAddress is a dump key that is not a decimal address.
type ErrDumpAddress string

func (err ErrDumpAddress) Error() string {
	return f("'%v' is not an address", string(err))
}
