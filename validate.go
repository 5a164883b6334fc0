package cid

import (
	"errors"
	"fmt"

	mh "github.com/multiformats/go-multihash"
)

var (
	// ErrPossiblyInsecureHashFunction means the multihash uses a function
	// outside the secure set.
	ErrPossiblyInsecureHashFunction = errors.New("potentially insecure hash functions not allowed")

	// ErrBelowMinimumHashLength means the digest is shorter than the
	// policy minimum.
	ErrBelowMinimumHashLength = errors.New("hash below the minimum digest length")
)

// HashPolicy decides which multihashes are acceptable inside a Cid. It is
// applied by a Decoder whose Hashes field is set, and by ValidateCid.
type HashPolicy struct {
	// MinDigestLength is the shortest digest accepted. Identity hashes
	// carry content inline and are exempt.
	MinDigestLength int

	// AllowInsecure accepts hash functions for which IsGoodHash is false.
	AllowInsecure bool
}

// DefaultHashPolicy requires a secure hash function and digests of at
// least 20 bytes.
var DefaultHashPolicy = HashPolicy{MinDigestLength: 20}

// Check returns nil when the multihash of c satisfies the policy.
func (p HashPolicy) Check(c Cid) error {
	pref := c.Prefix()
	if !p.AllowInsecure && !IsGoodHash(pref.MhType) {
		return fmt.Errorf("%w: %s", ErrPossiblyInsecureHashFunction, hashName(pref.MhType))
	}

	if pref.MhType != mh.IDENTITY && pref.MhLength < p.MinDigestLength {
		return fmt.Errorf("%w: %s digest of %d bytes, need %d",
			ErrBelowMinimumHashLength, hashName(pref.MhType), pref.MhLength, p.MinDigestLength)
	}

	return nil
}

// ValidateCid checks c against DefaultHashPolicy.
func ValidateCid(c Cid) error {
	return DefaultHashPolicy.Check(c)
}

// IsGoodHash reports whether code names a hash function considered safe
// for content addressing. Truncated blake2 variants below 160 bits are not.
func IsGoodHash(code uint64) bool {
	switch code {
	case mh.SHA2_256, mh.SHA2_512,
		mh.SHA3_224, mh.SHA3_256, mh.SHA3_384, mh.SHA3_512, mh.SHAKE_256,
		mh.DBL_SHA2_256,
		mh.KECCAK_224, mh.KECCAK_256, mh.KECCAK_384, mh.KECCAK_512,
		mh.BLAKE3, mh.IDENTITY:
		return true
	case mh.SHA1, mh.MURMUR3X64_64:
		return false
	}

	switch {
	case code >= mh.BLAKE2B_MIN+19 && code <= mh.BLAKE2B_MAX:
		return true
	case code >= mh.BLAKE2S_MIN+19 && code <= mh.BLAKE2S_MAX:
		return true
	}
	return false
}

func hashName(code uint64) string {
	if name, ok := mh.Codes[code]; ok {
		return name
	}
	return fmt.Sprintf("0x%x", code)
}
