package spv

import (
	"context"
	"errors"
	"fmt"

	"github.com/spvbridge/spvbridge/crypto"
	tmbytes "github.com/spvbridge/spvbridge/libs/bytes"
	"github.com/spvbridge/spvbridge/store"
	"github.com/spvbridge/spvbridge/types"
)

// SubmitResult reports what a successful submission did.
type SubmitResult struct {
	// Fingerprint and Height identify the admitted header.
	Fingerprint tmbytes.HexBytes
	Height      int64

	// Reorged is true when previously canonical heights were rebound.
	Reorged bool

	// Events appended by this submission, in order.
	Events []types.Event
}

// SubmitHeader admits the given header, burning the relay fee from the
// submitter and recording the submitter as the header's fee recipient.
//
// The header is checked in order:
//
//	a) the offered fee covers the relay fee, before anything else,
//	b) the header passes basic validation,
//	c) no header with the same fingerprint was admitted before,
//	d) the parent fingerprint names an admitted header,
//	e) the height sits directly above the parent,
//	f) the fingerprint meets the difficulty threshold.
//
// A failed check aborts with a typed error, leaves the bridge untouched and
// charges nothing. Once the checks pass, the relay fee is burned (a refused
// burn still aborts the admission) and the header is persisted in one atomic
// batch together with any canonical rebinds.
//
// The admitted header becomes the canonical tip iff its height exceeds the
// current best; heights are then rebound backwards along its ancestry to the
// fork point. Any other header is kept as a side branch: stored and known,
// but bound at no height.
func (b *Bridge) SubmitHeader(
	ctx context.Context,
	header *types.Header,
	submitter crypto.Address,
	fee int64) (*SubmitResult, error) {

	b.mtx.Lock()
	defer b.mtx.Unlock()

	if fee < b.params.RelayFee {
		return nil, b.reject("fee", ErrInsufficientFee{Got: fee, Required: b.params.RelayFee})
	}

	if header == nil {
		return nil, b.reject("invalid", ErrInvalidHeader{Reason: errors.New("nil header")})
	}
	if err := header.ValidateBasic(); err != nil {
		return nil, b.reject("invalid", ErrInvalidHeader{Reason: err})
	}

	fingerprint := header.Fingerprint()

	known, err := b.store.HasHeader(fingerprint)
	if err != nil {
		return nil, fmt.Errorf("can't check for duplicate %X: %w", fingerprint, err)
	}
	if known {
		return nil, b.reject("duplicate", ErrDuplicateHeader{Fingerprint: fingerprint})
	}

	parent, err := b.store.Header(header.ParentFingerprint)
	switch {
	case errors.Is(err, store.ErrHeaderNotFound):
		return nil, b.reject("unknown_parent", ErrUnknownParent{ParentFingerprint: header.ParentFingerprint})
	case err != nil:
		return nil, fmt.Errorf("can't load parent %X: %w", header.ParentFingerprint, err)
	}

	if header.Height != parent.Height+1 {
		return nil, b.reject("bad_height", ErrInvalidHeight{Got: header.Height, Want: parent.Height + 1})
	}

	if !CheckProofOfWork(fingerprint, b.params.DifficultyThreshold) {
		return nil, b.reject("pow_not_met", ErrProofOfWorkNotMet{
			Fingerprint: fingerprint,
			Threshold:   b.params.DifficultyThreshold,
		})
	}

	// The header is in. Burn the relay fee before anything is written; the
	// relay fee is an economic sink and is never paid out.
	if err := b.bank.Burn(ctx, submitter, b.params.RelayFee); err != nil {
		return nil, b.reject("burn_failed", ErrBankFailed{Op: "burn", Amount: b.params.RelayFee, Reason: err})
	}

	canon, forkHeight, err := b.rebindCanonical(header, fingerprint)
	if err != nil {
		return nil, err
	}

	newBest := b.bestHeight
	if len(canon) > 0 {
		newBest = header.Height
	}

	if err := b.store.SaveHeader(header, submitter, canon, newBest); err != nil {
		return nil, fmt.Errorf("can't save header %X: %w", fingerprint, err)
	}

	res := &SubmitResult{
		Fingerprint: fingerprint,
		Height:      header.Height,
		Events: []types.Event{types.EventHeaderSubmitted{
			Fingerprint: fingerprint,
			Height:      header.Height,
			Submitter:   submitter,
		}},
	}

	// Rebinding just the new tip is plain growth. Anything longer displaced
	// previously canonical heights.
	if len(canon) > 1 {
		depth := int64(len(canon) - 1)
		res.Reorged = true
		res.Events = append(res.Events, types.EventChainReorged{
			ForkHeight:     forkHeight,
			Depth:          depth,
			TipFingerprint: fingerprint,
			TipHeight:      header.Height,
		})

		b.metrics.Reorgs.Add(1)
		b.metrics.ReorgDepth.Observe(float64(depth))
		b.logger.Info("Canonical chain reorged",
			"forkHeight", forkHeight,
			"depth", depth,
			"tip", fingerprint)
	}

	b.bestHeight = newBest
	b.events = append(b.events, res.Events...)

	b.metrics.HeadersSubmitted.Add(1)
	b.metrics.BestHeight.Set(float64(newBest))

	b.logger.Info("Admitted header",
		"height", header.Height,
		"fingerprint", fingerprint,
		"canonical", len(canon) > 0,
		"bestHeight", newBest)

	return res, nil
}

// reject counts and logs a refused submission.
func (b *Bridge) reject(reason string, err error) error {
	b.metrics.HeadersRejected.With("reason", reason).Add(1)
	b.logger.Debug("Rejected header", "reason", reason, "err", err)
	return err
}

// rebindCanonical computes the canonical rebinds admitting the given header
// entails, without writing anything.
//
// A header above the current best becomes the new tip. The walk follows
// parent fingerprints downwards from it, rebinding every height where the
// visited header is not the bound one, and stops at the first height where
// it is. The genesis binding is never displaced, which gives the walk its
// floor. A header at or below the current best entails no rebinds at all
// and nil is returned.
//
// The returned bindings run from the tip downwards. forkHeight is the
// highest height whose binding survived; it is meaningless when no height
// below the tip was rebound.
func (b *Bridge) rebindCanonical(header *types.Header, fingerprint tmbytes.HexBytes) (
	canon []store.CanonicalBinding, forkHeight int64, err error) {

	if header.Height <= b.bestHeight {
		return nil, 0, nil
	}

	canon = []store.CanonicalBinding{{Height: header.Height, Fingerprint: fingerprint}}

	cursor := header.ParentFingerprint
	for height := header.Height - 1; ; height-- {
		bound, err := b.store.CanonicalAt(height)
		if err != nil {
			return nil, 0, fmt.Errorf("can't read canonical binding at %d: %w", height, err)
		}
		if bound.Equal(cursor) {
			return canon, height, nil
		}

		canon = append(canon, store.CanonicalBinding{Height: height, Fingerprint: cursor})

		h, err := b.store.Header(cursor)
		if err != nil {
			return nil, 0, fmt.Errorf("can't load header %X: %w", cursor, err)
		}
		cursor = h.ParentFingerprint
	}
}
