package isa

import (
	"encoding/binary"
)

// WordSize is the size of one machine instruction in bytes.
const WordSize = 4

// WordsToBytes converts a slice of 32-bit words to a big-endian byte slice.
func WordsToBytes(words []uint32) []byte {
	out := make([]byte, len(words)*WordSize)
	for i, w := range words {
		binary.BigEndian.PutUint32(out[i*WordSize:], w)
	}
	return out
}

// BytesToWords interprets bytes as big-endian 32-bit words.
// A trailing partial word is padded with zero bytes.
func BytesToWords(b []byte) []uint32 {
	if r := len(b) % WordSize; r != 0 {
		// Full slice expression so the pad never lands in the caller's
		// backing array.
		b = append(b[:len(b):len(b)], make([]byte, WordSize-r)...)
	}
	out := make([]uint32, len(b)/WordSize)
	for i := range out {
		out[i] = binary.BigEndian.Uint32(b[i*WordSize:])
	}
	return out
}
