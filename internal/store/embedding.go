package store

import (
	"encoding/binary"
	"math"
)

// packEmbedding serializes a float32 vector as little-endian bytes, the
// on-disk representation described in §4.3.
func packEmbedding(v []float32) []byte {
	if len(v) == 0 {
		return nil
	}
	out := make([]byte, 4*len(v))
	for i, f := range v {
		binary.LittleEndian.PutUint32(out[i*4:], math.Float32bits(f))
	}
	return out
}

// unpackEmbedding is the inverse of packEmbedding. Malformed (non-multiple-
// of-4) blobs decode to nil rather than panicking.
func unpackEmbedding(b []byte) []float32 {
	if len(b) == 0 || len(b)%4 != 0 {
		return nil
	}
	out := make([]float32, len(b)/4)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return out
}
