package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dbm "github.com/tendermint/tm-db"

	"github.com/spvbridge/spvbridge/crypto"
	tmbytes "github.com/spvbridge/spvbridge/libs/bytes"
	"github.com/spvbridge/spvbridge/store"
	"github.com/spvbridge/spvbridge/types"
)

func testDigest(b byte) tmbytes.HexBytes {
	d := make([]byte, crypto.HashSize)
	for i := range d {
		d[i] = b
	}
	return d
}

func testHeader(height int64, parent tmbytes.HexBytes, nonce uint64) *types.Header {
	return &types.Header{
		Height:            height,
		ParentFingerprint: parent,
		StorageRoot:       testDigest(0xaa),
		TxRoot:            testDigest(0xbb),
		PowNonce:          nonce,
	}
}

func testParams() types.Params {
	return types.Params{
		DifficultyThreshold: testDigest(0xff),
		RelayFee:            10,
		VerifyFee:           3,
	}
}

func Test_Bootstrap(t *testing.T) {
	dbStore := New(dbm.NewMemDB(), "Test_Bootstrap")

	// Empty store
	_, err := dbStore.Params()
	require.ErrorIs(t, err, store.ErrNotBootstrapped)

	height, err := dbStore.BestHeight()
	require.NoError(t, err)
	assert.EqualValues(t, -1, height)

	// Bootstrapped store
	genesis := testHeader(100, testDigest(0), 7)
	recipient := crypto.AddressHash([]byte("deployer"))
	require.NoError(t, dbStore.Bootstrap(genesis, recipient, testParams()))

	h, err := dbStore.Header(genesis.Fingerprint())
	require.NoError(t, err)
	require.NotNil(t, h)
	assert.Equal(t, genesis.Fingerprint(), h.Fingerprint())

	r, err := dbStore.FeeRecipient(genesis.Fingerprint())
	require.NoError(t, err)
	assert.Equal(t, recipient, r)

	fp, err := dbStore.CanonicalAt(100)
	require.NoError(t, err)
	assert.Equal(t, genesis.Fingerprint(), fp)

	height, err = dbStore.BestHeight()
	require.NoError(t, err)
	assert.EqualValues(t, 100, height)

	params, err := dbStore.Params()
	require.NoError(t, err)
	require.NotNil(t, params)
	assert.EqualValues(t, 10, params.RelayFee)
	assert.EqualValues(t, 3, params.VerifyFee)
	assert.Equal(t, testDigest(0xff), params.DifficultyThreshold)

	// Bootstrapping twice must fail.
	err = dbStore.Bootstrap(genesis, recipient, testParams())
	require.ErrorIs(t, err, store.ErrAlreadyBootstrapped)
}

func Test_SaveHeader(t *testing.T) {
	dbStore := New(dbm.NewMemDB(), "Test_SaveHeader")

	genesis := testHeader(100, testDigest(0), 7)
	recipient := crypto.AddressHash([]byte("deployer"))
	require.NoError(t, dbStore.Bootstrap(genesis, recipient, testParams()))

	// Unknown header
	_, err := dbStore.Header(testDigest(0x01))
	require.ErrorIs(t, err, store.ErrHeaderNotFound)

	ok, err := dbStore.HasHeader(testDigest(0x01))
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = dbStore.FeeRecipient(testDigest(0x01))
	require.ErrorIs(t, err, store.ErrRecipientNotFound)

	// 1 header
	child := testHeader(101, genesis.Fingerprint(), 8)
	submitter := crypto.AddressHash([]byte("relayer"))
	err = dbStore.SaveHeader(child, submitter, []store.CanonicalBinding{
		{Height: 101, Fingerprint: child.Fingerprint()},
	}, 101)
	require.NoError(t, err)

	h, err := dbStore.Header(child.Fingerprint())
	require.NoError(t, err)
	require.NotNil(t, h)
	assert.EqualValues(t, 101, h.Height)
	assert.Equal(t, genesis.Fingerprint(), h.ParentFingerprint)

	ok, err = dbStore.HasHeader(child.Fingerprint())
	require.NoError(t, err)
	assert.True(t, ok)

	r, err := dbStore.FeeRecipient(child.Fingerprint())
	require.NoError(t, err)
	assert.Equal(t, submitter, r)

	fp, err := dbStore.CanonicalAt(101)
	require.NoError(t, err)
	assert.Equal(t, child.Fingerprint(), fp)

	height, err := dbStore.BestHeight()
	require.NoError(t, err)
	assert.EqualValues(t, 101, height)

	// Saving the same header twice must fail.
	err = dbStore.SaveHeader(child, submitter, nil, 101)
	require.ErrorIs(t, err, store.ErrHeaderExists)

	assert.Panics(t, func() {
		_ = dbStore.SaveHeader(nil, submitter, nil, 101)
	})
	assert.Panics(t, func() {
		_ = dbStore.SaveHeader(testHeader(-1, genesis.Fingerprint(), 0), submitter, nil, 101)
	})
}

func Test_CanonicalRebinds(t *testing.T) {
	dbStore := New(dbm.NewMemDB(), "Test_CanonicalRebinds")

	genesis := testHeader(100, testDigest(0), 7)
	recipient := crypto.AddressHash([]byte("deployer"))
	require.NoError(t, dbStore.Bootstrap(genesis, recipient, testParams()))

	// A side header saved without bindings leaves the index untouched.
	side := testHeader(101, genesis.Fingerprint(), 1)
	require.NoError(t, dbStore.SaveHeader(side, recipient, nil, 100))

	_, err := dbStore.CanonicalAt(101)
	require.ErrorIs(t, err, store.ErrNoCanonicalHeader)

	// Rebinds overwrite previous bindings for the same height.
	canon := testHeader(101, genesis.Fingerprint(), 2)
	require.NoError(t, dbStore.SaveHeader(canon, recipient, []store.CanonicalBinding{
		{Height: 101, Fingerprint: canon.Fingerprint()},
	}, 101))

	replacement := testHeader(101, genesis.Fingerprint(), 3)
	require.NoError(t, dbStore.SaveHeader(replacement, recipient, []store.CanonicalBinding{
		{Height: 101, Fingerprint: replacement.Fingerprint()},
	}, 101))

	fp, err := dbStore.CanonicalAt(101)
	require.NoError(t, err)
	assert.Equal(t, replacement.Fingerprint(), fp)

	// Bindings below the fork point are untouched.
	fp, err = dbStore.CanonicalAt(100)
	require.NoError(t, err)
	assert.Equal(t, genesis.Fingerprint(), fp)
}

func TestBestHeight_FirstCanonicalHeight(t *testing.T) {
	dbStore := New(dbm.NewMemDB(), "TestBestHeight_FirstCanonicalHeight")

	// Empty store
	height, err := dbStore.BestHeight()
	require.NoError(t, err)
	assert.EqualValues(t, -1, height)

	height, err = dbStore.FirstCanonicalHeight()
	require.NoError(t, err)
	assert.EqualValues(t, -1, height)

	// 1 key
	genesis := testHeader(100, testDigest(0), 7)
	require.NoError(t, dbStore.Bootstrap(genesis, crypto.AddressHash([]byte("deployer")), testParams()))

	height, err = dbStore.BestHeight()
	require.NoError(t, err)
	assert.EqualValues(t, 100, height)

	height, err = dbStore.FirstCanonicalHeight()
	require.NoError(t, err)
	assert.EqualValues(t, 100, height)

	// Extending the chain moves the best height, not the first.
	child := testHeader(101, genesis.Fingerprint(), 8)
	require.NoError(t, dbStore.SaveHeader(child, crypto.AddressHash([]byte("relayer")), []store.CanonicalBinding{
		{Height: 101, Fingerprint: child.Fingerprint()},
	}, 101))

	height, err = dbStore.BestHeight()
	require.NoError(t, err)
	assert.EqualValues(t, 101, height)

	height, err = dbStore.FirstCanonicalHeight()
	require.NoError(t, err)
	assert.EqualValues(t, 100, height)
}

func Test_Prefixes(t *testing.T) {
	memDB := dbm.NewMemDB()
	store1 := New(memDB, "bridge-1")
	store2 := New(memDB, "bridge-2")

	genesis := testHeader(100, testDigest(0), 7)
	require.NoError(t, store1.Bootstrap(genesis, crypto.AddressHash([]byte("deployer")), testParams()))

	// The second bridge sharing the DB sees none of it.
	_, err := store2.Header(genesis.Fingerprint())
	require.ErrorIs(t, err, store.ErrHeaderNotFound)

	_, err = store2.Params()
	require.ErrorIs(t, err, store.ErrNotBootstrapped)

	height, err := store2.BestHeight()
	require.NoError(t, err)
	assert.EqualValues(t, -1, height)
}
