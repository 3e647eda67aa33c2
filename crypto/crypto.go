package crypto

import (
	"crypto/sha256"

	"github.com/spvbridge/spvbridge/libs/bytes"
)

const (
	// HashSize is the size in bytes of a Checksum digest. Header
	// fingerprints, Merkle roots and claim fingerprints are all this wide.
	HashSize = sha256.Size

	// AddressSize is the size of an account address.
	AddressSize = 20
)

// An address is a []byte, but hex-encoded even in JSON.
// []byte leaves us the option to change the address length.
// Use an alias so Unmarshal methods (with ptr receivers) are available too.
type Address = bytes.HexBytes

// AddressHash computes a truncated SHA-256 hash of bz for use as
// an account address.
func AddressHash(bz []byte) Address {
	h := sha256.Sum256(bz)
	return Address(h[:AddressSize])
}

// Checksum returns the SHA256 of the bz.
func Checksum(bz []byte) []byte {
	h := sha256.Sum256(bz)
	return h[:]
}
