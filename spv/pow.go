package spv

import (
	"bytes"

	tmbytes "github.com/spvbridge/spvbridge/libs/bytes"
)

// CheckProofOfWork reports whether fingerprint meets threshold. Both are
// interpreted as big-endian unsigned integers of the same width and the
// fingerprint must be strictly below the threshold. The threshold is fixed
// at initialization; there is no retargeting.
func CheckProofOfWork(fingerprint, threshold tmbytes.HexBytes) bool {
	if len(fingerprint) != len(threshold) {
		return false
	}
	return bytes.Compare(fingerprint, threshold) < 0
}
