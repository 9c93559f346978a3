package io

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	assert := assert.New(t)

	format, err := ParseFormat("TOML")
	assert.NoError(err)
	assert.Equal(FORMAT_TOML, format)

	_, err = ParseFormat("yaml")
	assert.ErrorIs(err, ErrFormat)

	assert.Equal(FORMAT_JSON, FormatOf("dump.json"))
	assert.Equal(FORMAT_TOML, FormatOf("out/dump.toml"))
	assert.Equal(FORMAT_CBOR, FormatOf("dump.CBOR"))
	assert.Equal(FORMAT_JSON, FormatOf("dump"))
	assert.Equal("cbor", FORMAT_CBOR.String())
}

func TestDump_JSON(t *testing.T) {
	assert := assert.New(t)

	dump := &Dump{Start: 8, Cells: []uint32{0, 100, 1}}
	assert.Equal(10, dump.End())
	assert.Equal(map[string]uint32{"8": 0, "9": 100, "10": 1}, dump.Map())

	var buf bytes.Buffer
	assert.NoError(dump.Marshal(&buf, FORMAT_JSON))
	assert.Equal("{\n  \"8\": 0,\n  \"9\": 100,\n  \"10\": 1\n}", buf.String())

	empty := &Dump{}
	buf.Reset()
	assert.NoError(empty.Marshal(&buf, FORMAT_JSON))
	assert.Equal("{}", buf.String())
}

func TestDump_RoundTrip(t *testing.T) {
	assert := assert.New(t)

	dump := &Dump{Start: 1020, Cells: []uint32{7, 0, 262143, 1}}

	for _, format := range []Format{FORMAT_JSON, FORMAT_TOML, FORMAT_CBOR} {
		var buf bytes.Buffer
		require.NoError(t, dump.Marshal(&buf, format), format.String())

		loaded := &Dump{}
		assert.NoError(loaded.Unmarshal(&buf, format), format.String())
		assert.Equal(dump, loaded, format.String())
	}
}

func TestDump_TOML(t *testing.T) {
	assert := assert.New(t)

	dump := &Dump{Start: 5, Cells: []uint32{100}}
	var buf bytes.Buffer
	assert.NoError(dump.Marshal(&buf, FORMAT_TOML))
	assert.Equal("5 = 100\n", buf.String())
}

func TestDump_Unmarshal_Errors(t *testing.T) {
	assert := assert.New(t)

	dump := &Dump{}
	assert.ErrorIs(dump.Unmarshal(strings.NewReader(`{"1": 1, "3": 3}`), FORMAT_JSON), ErrDumpKeys)
	assert.ErrorIs(dump.Unmarshal(strings.NewReader(`{"x": 1}`), FORMAT_JSON), ErrDumpAddress("x"))
	assert.ErrorIs(dump.Unmarshal(strings.NewReader(`{}`), Format(9)), ErrFormat)
	assert.Error(dump.Unmarshal(strings.NewReader(`{`), FORMAT_JSON))

	// Cell values must fit in 32 bits, whatever the format.
	assert.Equal(ErrDumpValue{Key: "5", Value: -1}, dump.Unmarshal(strings.NewReader("5 = -1\n"), FORMAT_TOML))
	assert.Equal(ErrDumpValue{Key: "5", Value: 4294967296}, dump.Unmarshal(strings.NewReader("5 = 4294967296\n"), FORMAT_TOML))
	assert.Error(dump.Unmarshal(strings.NewReader(`{"5": -1}`), FORMAT_JSON))
	assert.NoError(dump.Unmarshal(strings.NewReader("5 = 4294967295\n"), FORMAT_TOML))
	assert.Equal(&Dump{Start: 5, Cells: []uint32{math.MaxUint32}}, dump)

	assert.NoError(dump.Unmarshal(strings.NewReader(`{}`), FORMAT_JSON))
	assert.Equal(&Dump{}, dump)

	assert.ErrorIs((&Dump{}).Marshal(&bytes.Buffer{}, Format(9)), ErrFormat)
}
