package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spvbridge/spvbridge/crypto"
	tmbytes "github.com/spvbridge/spvbridge/libs/bytes"
)

func makeDigest(b byte) tmbytes.HexBytes {
	d := make([]byte, crypto.HashSize)
	for i := range d {
		d[i] = b
	}
	return d
}

func makeHeader(height int64, parent tmbytes.HexBytes, nonce uint64) *Header {
	return &Header{
		Height:            height,
		ParentFingerprint: parent,
		StorageRoot:       makeDigest(0xaa),
		TxRoot:            makeDigest(0xbb),
		PowNonce:          nonce,
	}
}

func TestHeaderValidateBasic(t *testing.T) {
	testCases := []struct {
		testName string
		malleate func(*Header)
		expErr   bool
	}{
		{"Make Header", func(h *Header) {}, false},
		{"Height 0", func(h *Header) { h.Height = 0 }, false},
		{"Negative Height", func(h *Header) { h.Height = -1 }, true},
		{"Short ParentFingerprint", func(h *Header) { h.ParentFingerprint = []byte{1, 2, 3} }, true},
		{"Nil ParentFingerprint", func(h *Header) { h.ParentFingerprint = nil }, true},
		{"Short StorageRoot", func(h *Header) { h.StorageRoot = h.StorageRoot[:8] }, true},
		{"Long TxRoot", func(h *Header) { h.TxRoot = append(h.TxRoot, 0x01) }, true},
		{
			"All-zero header", func(h *Header) {
				*h = Header{
					Height:            0,
					ParentFingerprint: makeDigest(0),
					StorageRoot:       makeDigest(0),
					TxRoot:            makeDigest(0),
					PowNonce:          0,
				}
			},
			true,
		},
	}
	for i, tc := range testCases {
		tc := tc
		t.Run(tc.testName, func(t *testing.T) {
			header := makeHeader(7, makeDigest(0x01), 42)
			tc.malleate(header)
			err := header.ValidateBasic()
			assert.Equal(t, tc.expErr, err != nil, "#%d: %v", i, err)
		})
	}
}

func TestHeaderFingerprint(t *testing.T) {
	base := makeHeader(7, makeDigest(0x01), 42)
	fp := base.Fingerprint()
	require.Len(t, []byte(fp), crypto.HashSize)

	// Fingerprints are deterministic.
	require.Equal(t, fp, makeHeader(7, makeDigest(0x01), 42).Fingerprint())

	// Every field is committed to.
	for name, other := range map[string]*Header{
		"height": makeHeader(8, makeDigest(0x01), 42),
		"parent": makeHeader(7, makeDigest(0x02), 42),
		"nonce":  makeHeader(7, makeDigest(0x01), 43),
	} {
		require.NotEqual(t, fp, other.Fingerprint(), "field %q not committed", name)
	}

	withRoot := makeHeader(7, makeDigest(0x01), 42)
	withRoot.StorageRoot = makeDigest(0xcc)
	require.NotEqual(t, fp, withRoot.Fingerprint())

	withTxs := makeHeader(7, makeDigest(0x01), 42)
	withTxs.TxRoot = makeDigest(0xdd)
	require.NotEqual(t, fp, withTxs.Fingerprint())

	// Nil and incomplete headers have no fingerprint.
	var nilHeader *Header
	require.Nil(t, nilHeader.Fingerprint())
	require.Nil(t, (&Header{Height: 1}).Fingerprint())
}

func TestHeaderIsZero(t *testing.T) {
	require.True(t, Header{}.IsZero())
	require.True(t, Header{
		ParentFingerprint: makeDigest(0),
		StorageRoot:       makeDigest(0),
		TxRoot:            makeDigest(0),
	}.IsZero())
	require.False(t, makeHeader(0, makeDigest(0), 0).IsZero())
	require.False(t, Header{PowNonce: 1}.IsZero())
}
