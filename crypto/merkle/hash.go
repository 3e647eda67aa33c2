package merkle

import (
	"github.com/spvbridge/spvbridge/crypto"
)

// TODO: make these have a large predefined capacity
var (
	leafPrefix  = []byte{0}
	innerPrefix = []byte{1}
)

// returns Checksum(0x00 || leaf)
func leafHash(leaf []byte) []byte {
	return crypto.Checksum(append(leafPrefix, leaf...))
}

// returns Checksum(0x01 || left || right)
func innerHash(left []byte, right []byte) []byte {
	data := make([]byte, len(innerPrefix)+len(left)+len(right))
	n := copy(data, innerPrefix)
	n += copy(data[n:], left)
	copy(data[n:], right)
	return crypto.Checksum(data)
}
