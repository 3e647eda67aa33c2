package types

import (
	"fmt"

	"github.com/spvbridge/spvbridge/crypto"
)

// ValidateDigest returns an error unless d is exactly crypto.HashSize bytes.
// Digest fields in this package are mandatory, never truncated or empty.
func ValidateDigest(d []byte) error {
	if len(d) != crypto.HashSize {
		return fmt.Errorf("expected size to be %d bytes, got %d bytes",
			crypto.HashSize,
			len(d),
		)
	}
	return nil
}
