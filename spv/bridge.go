package spv

import (
	"errors"
	"fmt"
	"sync"

	"github.com/spvbridge/spvbridge/crypto"
	"github.com/spvbridge/spvbridge/crypto/merkle"
	tmbytes "github.com/spvbridge/spvbridge/libs/bytes"
	"github.com/spvbridge/spvbridge/libs/log"
	"github.com/spvbridge/spvbridge/store"
	"github.com/spvbridge/spvbridge/types"
)

// Option sets a parameter for the bridge.
type Option func(*Bridge)

// Logger option can be used to set a logger for the bridge.
func Logger(l log.Logger) Option {
	return func(b *Bridge) {
		b.logger = l
	}
}

// WithMetrics option can be used to provide metrics. No-op metrics are used
// by default.
func WithMetrics(metrics *Metrics) Option {
	return func(b *Bridge) {
		b.metrics = metrics
	}
}

// Bridge tracks the header chain of a foreign proof-of-work ledger and
// answers inclusion claims against it for a fee. Headers are pushed by
// relayers willing to pay the relay fee; the bridge never fetches anything
// itself. It maintains a single canonical path through the headers it has
// admitted and switches to a competing branch the moment that branch becomes
// strictly taller.
//
// All methods are safe for concurrent use: every operation takes the one
// mutex, so callers observe whole state transitions only.
type Bridge struct {
	chainID string
	params  types.Params

	// Guards all bridge state. The bridge is a serialized state machine:
	// interleaved submissions and verifications never observe a
	// half-applied transition.
	mtx sync.Mutex

	// Where admitted headers, fee recipients and the canonical index live.
	store store.Store
	// Moves value on the host ledger (relay fee burn, verify fee payout).
	bank Bank
	// Decides inclusion claims against a header root.
	oracle merkle.Oracle

	// Height of the canonical tip. Never decreases.
	bestHeight int64
	// Height of the initialization header. Nothing below it is ever bound.
	firstHeight int64

	// Append-only record of admissions and reorgs.
	events []types.Event

	logger  log.Logger
	metrics *Metrics
}

// NewBridge returns a new bridge seeded with the given genesis document. The
// genesis header is trusted by fiat: it is bound canonically without parent,
// height or proof-of-work checks, and its fee recipient is the initializer
// named in the document.
//
// It returns an error if the genesis document is invalid or if the store
// already holds bridge state (use NewBridgeFromStore to pick that up
// instead).
//
// See all Option(s) for the additional configuration.
func NewBridge(
	genDoc *types.GenesisDoc,
	st store.Store,
	bank Bank,
	oracle merkle.Oracle,
	options ...Option) (*Bridge, error) {

	if genDoc == nil {
		return nil, errors.New("nil genesis doc")
	}
	if err := genDoc.ValidateAndComplete(); err != nil {
		return nil, fmt.Errorf("invalid genesis doc: %w", err)
	}

	if err := st.Bootstrap(genDoc.GenesisHeader, genDoc.FeeRecipient, *genDoc.Params); err != nil {
		return nil, fmt.Errorf("can't bootstrap store: %w", err)
	}

	b, err := NewBridgeFromStore(genDoc.ChainID, st, bank, oracle, options...)
	if err != nil {
		return nil, err
	}

	b.logger.Info("Seeded genesis header", "header", genDoc.GenesisHeader)

	return b, nil
}

// NewBridgeFromStore initializes an existing bridge from the store. The
// chain ID is not persisted, so the caller supplies it.
//
// See NewBridge
func NewBridgeFromStore(
	chainID string,
	st store.Store,
	bank Bank,
	oracle merkle.Oracle,
	options ...Option) (*Bridge, error) {

	b := &Bridge{
		chainID: chainID,
		store:   st,
		bank:    bank,
		oracle:  oracle,
		logger:  log.NewNopLogger(),
		metrics: NopMetrics(),
	}

	for _, o := range options {
		o(b)
	}

	if b.chainID == "" {
		return nil, errors.New("empty chain ID")
	}
	if b.store == nil {
		return nil, errors.New("nil store")
	}
	if b.bank == nil {
		return nil, errors.New("nil bank")
	}
	if b.oracle == nil {
		return nil, errors.New("nil proof oracle")
	}

	if err := b.restoreState(); err != nil {
		return nil, err
	}

	return b, nil
}

// restoreState loads the parameters and the canonical extent from the store.
func (b *Bridge) restoreState() error {
	params, err := b.store.Params()
	if err != nil {
		return fmt.Errorf("can't restore params: %w", err)
	}
	b.params = *params

	first, err := b.store.FirstCanonicalHeight()
	if err != nil {
		return fmt.Errorf("can't restore first canonical height: %w", err)
	}
	best, err := b.store.BestHeight()
	if err != nil {
		return fmt.Errorf("can't restore best height: %w", err)
	}
	b.firstHeight = first
	b.bestHeight = best
	b.metrics.BestHeight.Set(float64(best))

	b.logger.Info("Restored bridge state", "firstHeight", first, "bestHeight", best)

	return nil
}

// ChainID returns the chain ID the bridge was configured with.
//
// Safe for concurrent use by multiple goroutines.
func (b *Bridge) ChainID() string {
	return b.chainID
}

// Params returns the parameters fixed at initialization.
func (b *Bridge) Params() types.Params {
	return b.params
}

// FirstHeight returns the height of the initialization header. No canonical
// binding exists below it.
func (b *Bridge) FirstHeight() int64 {
	return b.firstHeight
}

// BestHeight returns the height of the canonical tip.
//
// Safe for concurrent use by multiple goroutines.
func (b *Bridge) BestHeight() int64 {
	b.mtx.Lock()
	defer b.mtx.Unlock()
	return b.bestHeight
}

// IsHeaderKnown reports whether a header with the given fingerprint was
// admitted, canonically bound or not.
func (b *Bridge) IsHeaderKnown(fingerprint tmbytes.HexBytes) (bool, error) {
	b.mtx.Lock()
	defer b.mtx.Unlock()
	return b.store.HasHeader(fingerprint)
}

// IsCanonical reports whether the header with the given fingerprint is bound
// at its height. An unknown fingerprint is not an error, just not canonical.
func (b *Bridge) IsCanonical(fingerprint tmbytes.HexBytes) (bool, error) {
	b.mtx.Lock()
	defer b.mtx.Unlock()
	return b.isCanonical(fingerprint)
}

func (b *Bridge) isCanonical(fingerprint tmbytes.HexBytes) (bool, error) {
	h, err := b.store.Header(fingerprint)
	switch {
	case errors.Is(err, store.ErrHeaderNotFound):
		return false, nil
	case err != nil:
		return false, err
	}

	bound, err := b.store.CanonicalAt(h.Height)
	if err != nil {
		return false, fmt.Errorf("can't read canonical binding at %d: %w", h.Height, err)
	}
	return bound.Equal(fingerprint), nil
}

// Header returns the admitted header with the given fingerprint.
//
// It returns store.ErrHeaderNotFound if no such header was admitted.
func (b *Bridge) Header(fingerprint tmbytes.HexBytes) (*types.Header, error) {
	b.mtx.Lock()
	defer b.mtx.Unlock()
	return b.store.Header(fingerprint)
}

// FeeRecipient returns the account credited when claims against the header
// with the given fingerprint verify. For the genesis header this is the
// initializer.
//
// It returns store.ErrRecipientNotFound if no such header was admitted.
func (b *Bridge) FeeRecipient(fingerprint tmbytes.HexBytes) (crypto.Address, error) {
	b.mtx.Lock()
	defer b.mtx.Unlock()
	return b.store.FeeRecipient(fingerprint)
}

// Events returns every event appended so far, oldest first. The returned
// slice is a copy and safe to retain.
func (b *Bridge) Events() []types.Event {
	b.mtx.Lock()
	defer b.mtx.Unlock()

	events := make([]types.Event, len(b.events))
	copy(events, b.events)
	return events
}

// CanonicalAt returns the fingerprint bound at the given height, or
// store.ErrNoCanonicalHeader if the height is outside the canonical extent.
func (b *Bridge) CanonicalAt(height int64) (tmbytes.HexBytes, error) {
	b.mtx.Lock()
	defer b.mtx.Unlock()
	return b.store.CanonicalAt(height)
}
