package db

import (
	"github.com/pkg/errors"
	"github.com/tendermint/go-amino"
	dbm "github.com/tendermint/tm-db"

	"github.com/spvbridge/spvbridge/crypto"
	tmbytes "github.com/spvbridge/spvbridge/libs/bytes"
	"github.com/spvbridge/spvbridge/store"
	"github.com/spvbridge/spvbridge/types"
)

type dbs struct {
	db dbm.DB

	cdc *amino.Codec
}

// New returns a Store that wraps any DB (with an optional prefix in case
// you want to use one DB with many bridges).
//
// Objects are marshalled using amino (github.com/tendermint/go-amino)
//
// NOTE: loading methods panic if they cannot read or decode stored data,
// indicating probable corruption on disk.
func New(db dbm.DB, prefix string) store.Store {
	if prefix != "" {
		db = dbm.NewPrefixDB(db, []byte(prefix))
	}

	return &dbs{db: db, cdc: amino.NewCodec()}
}

// Bootstrap seeds an empty store with the genesis header, its fee
// recipient and the fixed parameters in one atomic write.
//
// Safe for concurrent use by multiple goroutines.
func (s *dbs) Bootstrap(genesis *types.Header, recipient crypto.Address, params types.Params) error {
	if genesis == nil {
		panic("trying to bootstrap with a nil header")
	}
	if genesis.Height < 0 {
		panic("negative height")
	}

	ok, err := s.db.Has(paramsKey())
	if err != nil {
		panic(err)
	}
	if ok {
		return store.ErrAlreadyBootstrapped
	}

	fingerprint := genesis.Fingerprint()

	headerBz, err := s.cdc.MarshalBinaryLengthPrefixed(genesis)
	if err != nil {
		return errors.Wrap(err, "marshalling header")
	}
	recipientBz, err := s.cdc.MarshalBinaryLengthPrefixed(recipient)
	if err != nil {
		return errors.Wrap(err, "marshalling fee recipient")
	}
	fingerprintBz, err := s.cdc.MarshalBinaryLengthPrefixed(fingerprint)
	if err != nil {
		return errors.Wrap(err, "marshalling fingerprint")
	}
	heightBz, err := s.cdc.MarshalBinaryLengthPrefixed(genesis.Height)
	if err != nil {
		return errors.Wrap(err, "marshalling best height")
	}
	paramsBz, err := s.cdc.MarshalBinaryLengthPrefixed(&params)
	if err != nil {
		return errors.Wrap(err, "marshalling params")
	}

	b := s.db.NewBatch()
	defer b.Close()

	if err := b.Set(headerKey(fingerprint), headerBz); err != nil {
		return err
	}
	if err := b.Set(feeRecipientKey(fingerprint), recipientBz); err != nil {
		return err
	}
	if err := b.Set(canonicalKey(genesis.Height), fingerprintBz); err != nil {
		return err
	}
	if err := b.Set(bestHeightKey(), heightBz); err != nil {
		return err
	}
	if err := b.Set(paramsKey(), paramsBz); err != nil {
		return err
	}

	return b.WriteSync()
}

// SaveHeader persists a header, its fee recipient, any canonical rebinds
// and the new best height in one atomic write.
//
// Safe for concurrent use by multiple goroutines.
func (s *dbs) SaveHeader(h *types.Header, recipient crypto.Address, canon []store.CanonicalBinding, bestHeight int64) error {
	if h == nil {
		panic("trying to save a nil header")
	}
	if h.Height < 0 || bestHeight < 0 {
		panic("negative height")
	}

	fingerprint := h.Fingerprint()

	ok, err := s.db.Has(headerKey(fingerprint))
	if err != nil {
		panic(err)
	}
	if ok {
		return store.ErrHeaderExists
	}

	headerBz, err := s.cdc.MarshalBinaryLengthPrefixed(h)
	if err != nil {
		return errors.Wrap(err, "marshalling header")
	}
	recipientBz, err := s.cdc.MarshalBinaryLengthPrefixed(recipient)
	if err != nil {
		return errors.Wrap(err, "marshalling fee recipient")
	}
	heightBz, err := s.cdc.MarshalBinaryLengthPrefixed(bestHeight)
	if err != nil {
		return errors.Wrap(err, "marshalling best height")
	}

	b := s.db.NewBatch()
	defer b.Close()

	if err := b.Set(headerKey(fingerprint), headerBz); err != nil {
		return err
	}
	if err := b.Set(feeRecipientKey(fingerprint), recipientBz); err != nil {
		return err
	}
	for _, binding := range canon {
		bindingBz, err := s.cdc.MarshalBinaryLengthPrefixed(binding.Fingerprint)
		if err != nil {
			return errors.Wrap(err, "marshalling canonical binding")
		}
		if err := b.Set(canonicalKey(binding.Height), bindingBz); err != nil {
			return err
		}
	}
	if err := b.Set(bestHeightKey(), heightBz); err != nil {
		return err
	}

	return b.WriteSync()
}

// Header loads the header with the given fingerprint.
//
// Safe for concurrent use by multiple goroutines.
func (s *dbs) Header(fingerprint []byte) (*types.Header, error) {
	bz, err := s.db.Get(headerKey(fingerprint))
	if err != nil {
		panic(err)
	}
	if len(bz) == 0 {
		return nil, store.ErrHeaderNotFound
	}

	var header *types.Header
	err = s.cdc.UnmarshalBinaryLengthPrefixed(bz, &header)
	return header, err
}

// HasHeader reports whether a header with the given fingerprint was
// admitted.
//
// Safe for concurrent use by multiple goroutines.
func (s *dbs) HasHeader(fingerprint []byte) (bool, error) {
	ok, err := s.db.Has(headerKey(fingerprint))
	if err != nil {
		panic(err)
	}
	return ok, nil
}

// FeeRecipient loads the fee recipient recorded for the header with the
// given fingerprint.
//
// Safe for concurrent use by multiple goroutines.
func (s *dbs) FeeRecipient(fingerprint []byte) (crypto.Address, error) {
	bz, err := s.db.Get(feeRecipientKey(fingerprint))
	if err != nil {
		panic(err)
	}
	if len(bz) == 0 {
		return nil, store.ErrRecipientNotFound
	}

	var recipient crypto.Address
	err = s.cdc.UnmarshalBinaryLengthPrefixed(bz, &recipient)
	return recipient, err
}

// CanonicalAt loads the fingerprint bound canonically at the given height.
//
// Safe for concurrent use by multiple goroutines.
func (s *dbs) CanonicalAt(height int64) (tmbytes.HexBytes, error) {
	if height < 0 {
		panic("negative height")
	}

	bz, err := s.db.Get(canonicalKey(height))
	if err != nil {
		panic(err)
	}
	if len(bz) == 0 {
		return nil, store.ErrNoCanonicalHeader
	}

	var fingerprint tmbytes.HexBytes
	err = s.cdc.UnmarshalBinaryLengthPrefixed(bz, &fingerprint)
	return fingerprint, err
}

// BestHeight returns the height of the canonical tip, or -1 for empty
// stores.
//
// Safe for concurrent use by multiple goroutines.
func (s *dbs) BestHeight() (int64, error) {
	bz, err := s.db.Get(bestHeightKey())
	if err != nil {
		panic(err)
	}
	if len(bz) == 0 {
		return -1, nil
	}

	var height int64
	err = s.cdc.UnmarshalBinaryLengthPrefixed(bz, &height)
	return height, err
}

// FirstCanonicalHeight returns the lowest canonically bound height, or -1
// for empty stores.
//
// Safe for concurrent use by multiple goroutines.
func (s *dbs) FirstCanonicalHeight() (int64, error) {
	itr, err := s.db.Iterator(
		canonicalKey(0),
		append(canonicalKey(1<<63-1), byte(0x00)),
	)
	if err != nil {
		panic(err)
	}
	defer itr.Close()

	for itr.Valid() {
		height, err := decodeCanonicalKey(itr.Key())
		if err == nil {
			return height, nil
		}
		itr.Next()
	}

	return -1, nil
}

// Params loads the parameters the store was bootstrapped with.
//
// Safe for concurrent use by multiple goroutines.
func (s *dbs) Params() (*types.Params, error) {
	bz, err := s.db.Get(paramsKey())
	if err != nil {
		panic(err)
	}
	if len(bz) == 0 {
		return nil, store.ErrNotBootstrapped
	}

	var params *types.Params
	err = s.cdc.UnmarshalBinaryLengthPrefixed(bz, &params)
	return params, err
}
