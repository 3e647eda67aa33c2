package spv

import (
	"errors"
	"fmt"

	tmbytes "github.com/spvbridge/spvbridge/libs/bytes"
)

// ErrNegativeMinDepth is returned when a verification asks for a negative
// confirmation depth.
var ErrNegativeMinDepth = errors.New("negative minimum depth")

// ErrInsufficientFee means the fee offered with a call is below the price
// fixed at initialization. Fees are checked before anything else and nothing
// is charged on rejection.
type ErrInsufficientFee struct {
	Got      int64
	Required int64
}

func (e ErrInsufficientFee) Error() string {
	return fmt.Sprintf("insufficient fee: got %d, required %d", e.Got, e.Required)
}

// ErrInvalidHeader means the submitted header failed the basic validation.
type ErrInvalidHeader struct {
	Reason error
}

func (e ErrInvalidHeader) Error() string {
	return fmt.Sprintf("invalid header: %v", e.Reason)
}

// ErrDuplicateHeader means a header with the same fingerprint was admitted
// before.
type ErrDuplicateHeader struct {
	Fingerprint tmbytes.HexBytes
}

func (e ErrDuplicateHeader) Error() string {
	return fmt.Sprintf("header %X was submitted before", e.Fingerprint)
}

// ErrUnknownParent means the parent fingerprint does not match any admitted
// header. Headers arrive parent first; there is no orphan pool.
type ErrUnknownParent struct {
	ParentFingerprint tmbytes.HexBytes
}

func (e ErrUnknownParent) Error() string {
	return fmt.Sprintf("unknown parent %X", e.ParentFingerprint)
}

// ErrInvalidHeight means the header does not sit directly above its parent.
type ErrInvalidHeight struct {
	Got  int64
	Want int64
}

func (e ErrInvalidHeight) Error() string {
	return fmt.Sprintf("invalid height %d (want %d, one above the parent)", e.Got, e.Want)
}

// ErrProofOfWorkNotMet means the header fingerprint is not below the
// difficulty threshold.
type ErrProofOfWorkNotMet struct {
	Fingerprint tmbytes.HexBytes
	Threshold   tmbytes.HexBytes
}

func (e ErrProofOfWorkNotMet) Error() string {
	return fmt.Sprintf("fingerprint %X does not meet difficulty threshold %X",
		e.Fingerprint, e.Threshold)
}

// ErrInvalidClaim means the claim failed the basic validation, before any
// lookup was attempted.
type ErrInvalidClaim struct {
	Reason error
}

func (e ErrInvalidClaim) Error() string {
	return fmt.Sprintf("invalid claim: %v", e.Reason)
}

// ErrInvalidProof means the inclusion proof is structurally broken. A well
// formed proof the oracle rejects is a negative answer, not an error.
type ErrInvalidProof struct {
	Reason error
}

func (e ErrInvalidProof) Error() string {
	return fmt.Sprintf("invalid proof: %v", e.Reason)
}

// ErrBankFailed means a value transfer was refused or failed. The operation
// that triggered the transfer was aborted.
type ErrBankFailed struct {
	Op     string
	Amount int64
	Reason error
}

// Unwrap returns underlying reason.
func (e ErrBankFailed) Unwrap() error {
	return e.Reason
}

func (e ErrBankFailed) Error() string {
	return fmt.Sprintf("bank %s of %d failed: %v", e.Op, e.Amount, e.Reason)
}
