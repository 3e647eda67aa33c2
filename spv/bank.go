package spv

import (
	"context"

	"github.com/spvbridge/spvbridge/crypto"
)

//go:generate mockery --case underscore --name Bank

// Bank moves value on the host ledger. The bridge never holds funds
// itself: relay fees are burned and verification fees move straight from
// the caller to the recorded fee recipient.
//
// Implementations may refuse a transfer for their own reasons
// (insufficient balance, frozen account). The bridge treats any error as
// an instruction to abort the operation that triggered the transfer.
type Bank interface {
	// Burn permanently removes amount from the from account.
	Burn(ctx context.Context, from crypto.Address, amount int64) error

	// Pay moves amount from the from account to the to account.
	Pay(ctx context.Context, from, to crypto.Address, amount int64) error
}
