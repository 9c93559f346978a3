package io

import (
	"io"
	"iter"
)

// WORD_SIZE is the size in bytes of one instruction word in a program image.
const WORD_SIZE = 3

// Rom is a binary program image: a headerless sequence of instruction words.
type Rom struct {
	Data []byte
}

// Unmarshal loads the image from a reader, replacing any existing data.
func (rom *Rom) Unmarshal(file io.Reader) (err error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return
	}

	rom.Data = data

	return
}

// Marshal writes the image to a writer.
func (rom *Rom) Marshal(file io.Writer) (err error) {
	_, err = file.Write(rom.Data)

	return
}

// Words returns an iterator over the byte offset and bytes of each complete
// instruction word.
func (rom *Rom) Words() iter.Seq2[int, []byte] {
	return func(yield func(offset int, word []byte) bool) {
		for offset := 0; offset+WORD_SIZE <= len(rom.Data); offset += WORD_SIZE {
			if !yield(offset, rom.Data[offset:offset+WORD_SIZE]) {
				return
			}
		}
	}
}

// Tail returns the number of dangling bytes after the last complete word.
func (rom *Rom) Tail() int {
	return len(rom.Data) % WORD_SIZE
}
