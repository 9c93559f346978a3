package io

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRom_Unmarshal(t *testing.T) {
	assert := assert.New(t)

	rom := &Rom{Data: []byte{0xff}}
	err := rom.Unmarshal(bytes.NewReader([]byte{0xB1, 0x10, 0x00, 0x03, 0x00, 0x00}))
	assert.NoError(err)
	assert.Equal([]byte{0xB1, 0x10, 0x00, 0x03, 0x00, 0x00}, rom.Data)
	assert.Equal(0, rom.Tail())
}

type failReader struct{}

func (failReader) Read([]byte) (int, error) {
	return 0, errors.New("read failed")
}

func TestRom_Unmarshal_Error(t *testing.T) {
	assert := assert.New(t)

	rom := &Rom{Data: []byte{0x01, 0x00, 0x00}}
	assert.Error(rom.Unmarshal(failReader{}))
	assert.Equal([]byte{0x01, 0x00, 0x00}, rom.Data)
}

func TestRom_Marshal(t *testing.T) {
	assert := assert.New(t)

	rom := &Rom{Data: []byte{0x2F, 0x02, 0x00}}
	var buf bytes.Buffer
	assert.NoError(rom.Marshal(&buf))
	assert.Equal(rom.Data, buf.Bytes())
}

func TestRom_Words(t *testing.T) {
	assert := assert.New(t)

	rom := &Rom{Data: []byte{
		0xB1, 0x10, 0x00,
		0x2F, 0x02, 0x00,
		0x03, 0x00,
	}}

	var offsets []int
	var words [][]byte
	for offset, word := range rom.Words() {
		offsets = append(offsets, offset)
		words = append(words, word)
	}

	assert.Equal([]int{0, 3}, offsets)
	assert.Equal([][]byte{{0xB1, 0x10, 0x00}, {0x2F, 0x02, 0x00}}, words)
	assert.Equal(2, rom.Tail())
}

func TestRom_Words_EarlyStop(t *testing.T) {
	assert := assert.New(t)

	rom := &Rom{Data: make([]byte, 9)}
	count := 0
	for range rom.Words() {
		count++
		break
	}
	assert.Equal(1, count)
}
