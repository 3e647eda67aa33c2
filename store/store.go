package store

import (
	"github.com/spvbridge/spvbridge/crypto"
	tmbytes "github.com/spvbridge/spvbridge/libs/bytes"
	"github.com/spvbridge/spvbridge/types"
)

// CanonicalBinding binds a height to the fingerprint of the header the
// canonical chain holds at that height.
type CanonicalBinding struct {
	Height      int64            `json:"height,string"`
	Fingerprint tmbytes.HexBytes `json:"fingerprint"`
}

// Store is anything that can persistently store bridge state: admitted
// headers, their fee recipients, the canonical height index and the fixed
// parameters.
//
// Admitted headers are never removed, so no delete operation exists.
type Store interface {
	// Bootstrap seeds an empty store with the trusted genesis header, its
	// fee recipient and the fixed parameters. The genesis header becomes
	// canonical at its own height and the best header.
	//
	// Returns ErrAlreadyBootstrapped if the store holds parameters already.
	Bootstrap(genesis *types.Header, recipient crypto.Address, params types.Params) error

	// SaveHeader persists a header, its fee recipient, any canonical
	// rebinds and the new best height in one atomic write.
	//
	// Returns ErrHeaderExists if a header with the same fingerprint was
	// saved before.
	SaveHeader(h *types.Header, recipient crypto.Address, canon []CanonicalBinding, bestHeight int64) error

	// Header returns the header with the given fingerprint.
	//
	// If the header is not found, ErrHeaderNotFound is returned.
	Header(fingerprint []byte) (*types.Header, error)

	// HasHeader reports whether a header with the given fingerprint was
	// admitted.
	HasHeader(fingerprint []byte) (bool, error)

	// FeeRecipient returns the account credited with verification fees
	// against the header with the given fingerprint.
	//
	// If no recipient is recorded, ErrRecipientNotFound is returned.
	FeeRecipient(fingerprint []byte) (crypto.Address, error)

	// CanonicalAt returns the fingerprint the canonical chain holds at the
	// given height.
	//
	// height must be >= 0.
	//
	// If the height has no canonical binding, ErrNoCanonicalHeader is
	// returned.
	CanonicalAt(height int64) (tmbytes.HexBytes, error)

	// BestHeight returns the height of the canonical tip.
	//
	// If the store is empty, -1 and nil error are returned.
	BestHeight() (int64, error)

	// FirstCanonicalHeight returns the lowest canonically bound height,
	// which is the height of the genesis header.
	//
	// If the store is empty, -1 and nil error are returned.
	FirstCanonicalHeight() (int64, error)

	// Params returns the parameters the store was bootstrapped with.
	//
	// If the store was never bootstrapped, ErrNotBootstrapped is returned.
	Params() (*types.Params, error)
}
