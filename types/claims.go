package types

import (
	"errors"
	"fmt"

	"github.com/spvbridge/spvbridge/crypto/merkle"
	tmbytes "github.com/spvbridge/spvbridge/libs/bytes"
)

// StateClaim asserts that the source chain's storage maps Key to Value at
// some block. Whether a given block actually backs the claim is decided by
// the Merkle oracle against that block's storage root.
type StateClaim struct {
	Key   tmbytes.HexBytes `json:"key"`
	Value tmbytes.HexBytes `json:"value"`
}

// ValidateBasic performs stateless validation on a StateClaim. The value
// may be empty; a claim that a key holds no value is still a claim.
func (c StateClaim) ValidateBasic() error {
	if len(c.Key) == 0 {
		return errors.New("empty Key")
	}
	return nil
}

// Fingerprint returns the digest handed to the Merkle oracle: the Merkle
// hash of the canonically encoded key/value pair.
func (c StateClaim) Fingerprint() tmbytes.HexBytes {
	return merkle.HashFromByteSlices([][]byte{
		cdcEncode(c.Key),
		cdcEncode(c.Value),
	})
}

func (c StateClaim) String() string {
	return fmt.Sprintf("StateClaim{%v: %v}", c.Key, c.Value)
}
