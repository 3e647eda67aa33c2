package spv

import (
	"context"
	"errors"
	"fmt"

	"github.com/spvbridge/spvbridge/crypto"
	"github.com/spvbridge/spvbridge/crypto/merkle"
	tmbytes "github.com/spvbridge/spvbridge/libs/bytes"
	"github.com/spvbridge/spvbridge/store"
	"github.com/spvbridge/spvbridge/types"
)

// verifyKind selects the claim family and with it the header root claims of
// that family are checked against.
type verifyKind byte

const (
	verifyTx verifyKind = iota + 1
	verifyState
)

func (k verifyKind) String() string {
	switch k {
	case verifyTx:
		return "tx"
	case verifyState:
		return "state"
	default:
		return fmt.Sprintf("unknown kind %d", byte(k))
	}
}

// VerifyTransaction answers whether the transaction with the given hash is
// included in the header with the given fingerprint.
//
// The caller offers fee, of which the fixed verify fee is charged on every
// verdict: burned on false, paid to the header's recorded fee recipient on
// true. Probing the bridge is never free. An insufficient fee is rejected
// before anything else; input errors (a malformed hash, a negative minDepth,
// a structurally broken proof) abort free of charge.
//
// The verdict is false, not an error, whenever:
//
//	a) no header with the given fingerprint was admitted,
//	b) the header is not canonical at its height,
//	c) fewer than minDepth canonical headers sit above it (minDepth 0
//	   accepts the canonical tip itself),
//	d) the oracle rejects the proof of the claim against the header's
//	   transaction root.
//
// A burn or payout the bank refuses aborts the call with ErrBankFailed.
func (b *Bridge) VerifyTransaction(
	ctx context.Context,
	txHash tmbytes.HexBytes,
	headerFingerprint tmbytes.HexBytes,
	minDepth int64,
	proof *merkle.Proof,
	caller crypto.Address,
	fee int64) (bool, error) {

	b.mtx.Lock()
	defer b.mtx.Unlock()

	if fee < b.params.VerifyFee {
		return false, ErrInsufficientFee{Got: fee, Required: b.params.VerifyFee}
	}
	if err := types.ValidateDigest(txHash); err != nil {
		return false, ErrInvalidClaim{Reason: err}
	}

	return b.verifyInclusion(ctx, verifyTx, txHash, headerFingerprint, minDepth, proof, caller)
}

// VerifyState answers whether the given state claim (a key holding a value)
// is included in the header with the given fingerprint. The claim is checked
// against the header's storage root.
//
// Fees, input errors and false verdicts work exactly as in
// VerifyTransaction.
func (b *Bridge) VerifyState(
	ctx context.Context,
	claim types.StateClaim,
	headerFingerprint tmbytes.HexBytes,
	minDepth int64,
	proof *merkle.Proof,
	caller crypto.Address,
	fee int64) (bool, error) {

	b.mtx.Lock()
	defer b.mtx.Unlock()

	if fee < b.params.VerifyFee {
		return false, ErrInsufficientFee{Got: fee, Required: b.params.VerifyFee}
	}
	if err := claim.ValidateBasic(); err != nil {
		return false, ErrInvalidClaim{Reason: err}
	}

	return b.verifyInclusion(ctx, verifyState, claim.Fingerprint(), headerFingerprint, minDepth, proof, caller)
}

// verifyInclusion runs the shared verification path. The claim fingerprint
// is checked against the transaction root for transaction claims and against
// the storage root for state claims.
func (b *Bridge) verifyInclusion(
	ctx context.Context,
	kind verifyKind,
	claimFingerprint tmbytes.HexBytes,
	headerFingerprint tmbytes.HexBytes,
	minDepth int64,
	proof *merkle.Proof,
	caller crypto.Address) (bool, error) {

	if minDepth < 0 {
		return false, ErrNegativeMinDepth
	}
	if proof == nil {
		return false, ErrInvalidProof{Reason: errors.New("nil proof")}
	}
	if err := proof.ValidateBasic(); err != nil {
		return false, ErrInvalidProof{Reason: err}
	}

	header, err := b.store.Header(headerFingerprint)
	switch {
	case errors.Is(err, store.ErrHeaderNotFound):
		return b.refuse(ctx, kind, "unknown_header", caller)
	case err != nil:
		return false, fmt.Errorf("can't load header %X: %w", headerFingerprint, err)
	}

	bound, err := b.store.CanonicalAt(header.Height)
	if err != nil {
		return false, fmt.Errorf("can't read canonical binding at %d: %w", header.Height, err)
	}
	if !bound.Equal(headerFingerprint) {
		return b.refuse(ctx, kind, "not_canonical", caller)
	}

	if b.bestHeight-header.Height < minDepth {
		return b.refuse(ctx, kind, "insufficient_depth", caller)
	}

	root := header.TxRoot
	if kind == verifyState {
		root = header.StorageRoot
	}
	if err := b.oracle.VerifyValue(root, claimFingerprint, proof); err != nil {
		b.logger.Debug("Oracle rejected claim",
			"kind", kind.String(),
			"root", root,
			"err", err)
		return b.refuse(ctx, kind, "proof_rejected", caller)
	}

	recipient, err := b.store.FeeRecipient(headerFingerprint)
	if err != nil {
		return false, fmt.Errorf("can't load fee recipient of %X: %w", headerFingerprint, err)
	}
	if err := b.bank.Pay(ctx, caller, recipient, b.params.VerifyFee); err != nil {
		return false, ErrBankFailed{Op: "pay", Amount: b.params.VerifyFee, Reason: err}
	}

	b.metrics.Verifications.With("kind", kind.String(), "result", "true").Add(1)
	b.logger.Info("Verified claim",
		"kind", kind.String(),
		"height", header.Height,
		"fingerprint", headerFingerprint,
		"recipient", recipient)

	return true, nil
}

// refuse charges the verify fee and returns the false verdict. A refusal is
// an answer, not an error: the fee is spent on it all the same.
func (b *Bridge) refuse(
	ctx context.Context,
	kind verifyKind,
	reason string,
	caller crypto.Address) (bool, error) {

	if err := b.bank.Burn(ctx, caller, b.params.VerifyFee); err != nil {
		return false, ErrBankFailed{Op: "burn", Amount: b.params.VerifyFee, Reason: err}
	}

	b.metrics.Verifications.With("kind", kind.String(), "result", "false").Add(1)
	b.logger.Debug("Refused claim", "kind", kind.String(), "reason", reason)
	return false, nil
}
