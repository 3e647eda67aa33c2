package types

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/spvbridge/spvbridge/crypto/merkle"
	tmbytes "github.com/spvbridge/spvbridge/libs/bytes"
)

// Header is a compact commitment to one block of the source chain. It
// carries no transactions or state, only the digests needed to anchor
// inclusion proofs and to chain headers together.
type Header struct {
	Height            int64            `json:"height,string"`
	ParentFingerprint tmbytes.HexBytes `json:"parent_fingerprint"`
	StorageRoot       tmbytes.HexBytes `json:"storage_root"`
	TxRoot            tmbytes.HexBytes `json:"tx_root"`
	PowNonce          uint64           `json:"pow_nonce,string"`
}

// ValidateBasic performs stateless validation on a Header returning an error
// if any validation fails.
func (h Header) ValidateBasic() error {
	if h.Height < 0 {
		return errors.New("negative Height")
	}

	if err := ValidateDigest(h.ParentFingerprint); err != nil {
		return fmt.Errorf("wrong ParentFingerprint: %w", err)
	}
	if err := ValidateDigest(h.StorageRoot); err != nil {
		return fmt.Errorf("wrong StorageRoot: %w", err)
	}
	if err := ValidateDigest(h.TxRoot); err != nil {
		return fmt.Errorf("wrong TxRoot: %w", err)
	}

	// The all-zero header is reserved as the absent value on the source
	// system and must never be admitted.
	if h.IsZero() {
		return errors.New("empty header")
	}

	return nil
}

// IsZero reports whether every field of the header holds its zero value.
// Digest fields count as zero when they are empty or all zero bytes.
func (h Header) IsZero() bool {
	return h.Height == 0 &&
		h.PowNonce == 0 &&
		isZeroDigest(h.ParentFingerprint) &&
		isZeroDigest(h.StorageRoot) &&
		isZeroDigest(h.TxRoot)
}

func isZeroDigest(d []byte) bool {
	for _, b := range d {
		if b != 0 {
			return false
		}
	}
	return true
}

// Fingerprint returns the identity digest of the header.
// It computes a Merkle tree from the header fields
// ordered as they appear in the Header.
// Returns nil if StorageRoot is missing,
// since a Header is not meaningful unless it commits to some state.
func (h *Header) Fingerprint() tmbytes.HexBytes {
	if h == nil || len(h.StorageRoot) == 0 {
		return nil
	}
	return merkle.HashFromByteSlices([][]byte{
		cdcEncode(h.Height),
		cdcEncode(h.ParentFingerprint),
		cdcEncode(h.StorageRoot),
		cdcEncode(h.TxRoot),
		cdcEncode(h.PowNonce),
	})
}

// MarshalZerologObject formats this object for logging purposes
func (h *Header) MarshalZerologObject(e *zerolog.Event) {
	if h == nil {
		return
	}
	e.Int64("height", h.Height)
	e.Str("fingerprint", h.Fingerprint().ShortString())
	e.Str("parent", h.ParentFingerprint.ShortString())
	e.Uint64("pow_nonce", h.PowNonce)
}

func (h *Header) String() string {
	return h.StringIndented("")
}

// StringIndented returns an indented string representation of the header.
func (h *Header) StringIndented(indent string) string {
	if h == nil {
		return "nil-Header"
	}
	return fmt.Sprintf(`Header{
%s  Height:             %v
%s  ParentFingerprint:  %v
%s  StorageRoot:        %v
%s  TxRoot:             %v
%s  PowNonce:           %v
%s}#%v`,
		indent, h.Height,
		indent, h.ParentFingerprint,
		indent, h.StorageRoot,
		indent, h.TxRoot,
		indent, h.PowNonce,
		indent, h.Fingerprint(),
	)
}
