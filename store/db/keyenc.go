package db

import (
	"fmt"

	"github.com/google/orderedcode"
)

const (
	// prefixes are unique across all bridge db's
	prefixHeader       = int64(0)
	prefixFeeRecipient = int64(1)
	prefixCanonical    = int64(2)
	prefixBestHeight   = int64(3)
	prefixParams       = int64(4)
)

func headerKey(fingerprint []byte) []byte {
	key, err := orderedcode.Append(nil, prefixHeader, string(fingerprint))
	if err != nil {
		panic(err)
	}
	return key
}

func feeRecipientKey(fingerprint []byte) []byte {
	key, err := orderedcode.Append(nil, prefixFeeRecipient, string(fingerprint))
	if err != nil {
		panic(err)
	}
	return key
}

func canonicalKey(height int64) []byte {
	key, err := orderedcode.Append(nil, prefixCanonical, height)
	if err != nil {
		panic(err)
	}
	return key
}

func decodeCanonicalKey(key []byte) (height int64, err error) {
	var prefix int64
	remaining, err := orderedcode.Parse(string(key), &prefix, &height)
	if err != nil {
		return
	}
	if len(remaining) != 0 {
		return -1, fmt.Errorf("expected complete key but got remainder: %s", remaining)
	}
	if prefix != prefixCanonical {
		return -1, fmt.Errorf("incorrect prefix. Expected %v, got %v", prefixCanonical, prefix)
	}
	return
}

func bestHeightKey() []byte {
	key, err := orderedcode.Append(nil, prefixBestHeight)
	if err != nil {
		panic(err)
	}
	return key
}

func paramsKey() []byte {
	key, err := orderedcode.Append(nil, prefixParams)
	if err != nil {
		panic(err)
	}
	return key
}
