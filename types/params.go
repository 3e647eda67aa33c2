package types

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/spvbridge/spvbridge/crypto"
	tmbytes "github.com/spvbridge/spvbridge/libs/bytes"
)

// Params are the fixed parameters of a bridge instance. They are set at
// initialization and never change afterwards; in particular there is no
// difficulty retargeting.
type Params struct {
	// DifficultyThreshold is the exclusive upper bound a header fingerprint
	// must stay under, both interpreted as 256-bit big-endian unsigned
	// integers.
	DifficultyThreshold tmbytes.HexBytes `json:"difficulty_threshold"`

	// RelayFee is charged for every header submission and burned.
	RelayFee int64 `json:"relay_fee,string"`

	// VerifyFee is charged for every verification call and paid to the fee
	// recipient of the header the claim verified against.
	VerifyFee int64 `json:"verify_fee,string"`
}

// DefaultParams returns parameters suitable for tests and local
// development: every well-formed fingerprint passes the difficulty gate
// and both fees are zero.
func DefaultParams() *Params {
	return &Params{
		DifficultyThreshold: bytes.Repeat([]byte{0xff}, crypto.HashSize),
		RelayFee:            0,
		VerifyFee:           0,
	}
}

// Validate validates the Params to ensure all values are within their
// allowed limits, and returns an error if they are not.
func (params *Params) Validate() error {
	if len(params.DifficultyThreshold) != crypto.HashSize {
		return fmt.Errorf("difficultyThreshold must be %d bytes, got %d",
			crypto.HashSize,
			len(params.DifficultyThreshold),
		)
	}
	if params.RelayFee < 0 {
		return errors.New("relayFee can't be negative")
	}
	if params.VerifyFee < 0 {
		return errors.New("verifyFee can't be negative")
	}
	return nil
}
