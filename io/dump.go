package io

import (
	"bytes"
	"encoding/json"
	"io"
	"iter"
	"maps"
	"math"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/fxamacker/cbor/v2"
)

// Format is a memory dump file format.
type Format int

//go:generate go tool stringer -linecomment -type=Format
const (
	FORMAT_JSON = Format(0) // json
	FORMAT_TOML = Format(1) // toml
	FORMAT_CBOR = Format(2) // cbor
)

// ParseFormat returns the format with the given name.
func ParseFormat(name string) (format Format, err error) {
	switch strings.ToLower(name) {
	case "json":
		format = FORMAT_JSON
	case "toml":
		format = FORMAT_TOML
	case "cbor":
		format = FORMAT_CBOR
	default:
		err = ErrFormat
	}
	return
}

// FormatOf returns the format for a file name's extension, defaulting to JSON.
func FormatOf(path string) (format Format) {
	format, err := ParseFormat(strings.TrimPrefix(filepath.Ext(path), "."))
	if err != nil {
		format = FORMAT_JSON
	}
	return
}

// Dump is a contiguous range of memory cells, starting at address Start.
// It is stored as a mapping from the decimal address text to the cell value.
type Dump struct {
	Start int
	Cells []uint32
}

// End returns the last address in the dump, inclusive.
func (dump *Dump) End() int {
	return dump.Start + len(dump.Cells) - 1
}

// All iterates over the address and value of each cell.
func (dump *Dump) All() iter.Seq2[int, uint32] {
	return func(yield func(addr int, value uint32) bool) {
		for n, value := range dump.Cells {
			if !yield(dump.Start+n, value) {
				return
			}
		}
	}
}

// Map returns the dump as an address text to value mapping.
func (dump *Dump) Map() map[string]uint32 {
	cells := make(map[string]uint32, len(dump.Cells))
	for addr, value := range dump.All() {
		cells[strconv.Itoa(addr)] = value
	}
	return cells
}

// MarshalJSON writes the cells as an indented object, in address order.
func (dump *Dump) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("{")
	for addr, value := range dump.All() {
		if addr != dump.Start {
			buf.WriteString(",")
		}
		buf.WriteString("\n  \"")
		buf.WriteString(strconv.Itoa(addr))
		buf.WriteString("\": ")
		buf.WriteString(strconv.FormatUint(uint64(value), 10))
	}
	if len(dump.Cells) > 0 {
		buf.WriteString("\n")
	}
	buf.WriteString("}")
	return buf.Bytes(), nil
}

// Marshal writes the dump to a writer in the requested format.
func (dump *Dump) Marshal(file io.Writer, format Format) (err error) {
	var data []byte
	switch format {
	case FORMAT_JSON:
		data, err = dump.MarshalJSON()
	case FORMAT_TOML:
		err = toml.NewEncoder(file).Encode(dump.Map())
		return
	case FORMAT_CBOR:
		var em cbor.EncMode
		em, err = cbor.CanonicalEncOptions().EncMode()
		if err != nil {
			return
		}
		data, err = em.Marshal(dump.Map())
	default:
		err = ErrFormat
	}
	if err != nil {
		return
	}

	_, err = file.Write(data)
	return
}

// Unmarshal reads a dump in the requested format, replacing the dump contents.
// The addresses must form a contiguous range.
func (dump *Dump) Unmarshal(file io.Reader, format Format) (err error) {
	cells := map[string]uint32{}
	switch format {
	case FORMAT_JSON:
		err = json.NewDecoder(file).Decode(&cells)
	case FORMAT_TOML:
		var values map[string]int64
		_, err = toml.NewDecoder(file).Decode(&values)
		for key, value := range values {
			if value < 0 || value > math.MaxUint32 {
				err = ErrDumpValue{Key: key, Value: value}
				return
			}
			cells[key] = uint32(value)
		}
	case FORMAT_CBOR:
		err = cbor.NewDecoder(file).Decode(&cells)
	default:
		err = ErrFormat
	}
	if err != nil {
		return
	}

	byAddr := make(map[int]uint32, len(cells))
	for key, value := range cells {
		var addr int
		addr, err = strconv.Atoi(key)
		if err != nil || addr < 0 {
			err = ErrDumpAddress(key)
			return
		}
		byAddr[addr] = value
	}
	addrs := slices.Sorted(maps.Keys(byAddr))

	dump.Start = 0
	dump.Cells = nil
	if len(addrs) == 0 {
		return
	}

	if addrs[len(addrs)-1]-addrs[0]+1 != len(addrs) {
		err = ErrDumpKeys
		return
	}

	dump.Start = addrs[0]
	for _, addr := range addrs {
		dump.Cells = append(dump.Cells, byAddr[addr])
	}

	return
}
