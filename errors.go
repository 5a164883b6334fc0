package cid

import (
	"errors"
	"fmt"

	varint "github.com/multiformats/go-varint"
)

var (
	// ErrUnknownVersion means the version number is neither 0 nor 1.
	ErrUnknownVersion = errors.New("unknown cid version")

	// ErrInvalidCidV0Version means a self-describing buffer carried an
	// explicit version of 0. CIDv0 is never framed with a version.
	ErrInvalidCidV0Version = errors.New("cidv0 cannot carry an explicit version prefix")

	// ErrInvalidCidV0Base means a CIDv0 was asked to be encoded in a base
	// other than base58btc.
	ErrInvalidCidV0Base = errors.New("cidv0 can only be encoded in base58btc")

	// ErrVarintDecode means a varint could not be read, or the input ended
	// before a declared length was satisfied.
	ErrVarintDecode = errors.New("failed to decode unsigned varint")

	// ErrTruncated is the ErrVarintDecode case where input ran out.
	ErrTruncated = fmt.Errorf("%w: input truncated", ErrVarintDecode)

	// ErrInvalidV0Cid means a CIDv0 was requested with a codec other than
	// DagProtobuf or a multihash other than sha2-256 of 32 bytes.
	ErrInvalidV0Cid = errors.New("cidv0 accepts only dag-pb with sha2-256 hashes of standard length")

	// ErrUnknownBase means the multibase prefix of a string is not known.
	ErrUnknownBase = errors.New("unknown multibase")

	// ErrCidTooShort means that the cid passed to decode was not long
	// enough to be a valid Cid
	ErrCidTooShort = errors.New("cid too short")

	// ErrTrailingBytes is returned by strict decoders when bytes follow
	// the multihash.
	ErrTrailingBytes = errors.New("trailing bytes after cid")

	// ErrDigestTooLarge means a streamed multihash declared a digest
	// larger than CidFromReader is willing to allocate.
	ErrDigestTooLarge = errors.New("digest too large")

	// ErrDigestLength means a digest does not have the length a Prefix
	// or Builder requires.
	ErrDigestLength = errors.New("digest length mismatch")

	// ErrUnsupportedInput means Parse was given a type it cannot read a
	// Cid from.
	ErrUnsupportedInput = errors.New("can't parse value as cid")

	// ErrInvalidJSONLink means a JSON value is not a {"/": "<cid>"} link.
	ErrInvalidJSONLink = errors.New("invalid cid json link")

	// ErrInsufficientCapacity means a caller supplied buffer cannot hold
	// the result. It is not a format error.
	ErrInsufficientCapacity = errors.New("insufficient buffer capacity")
)

// varintErr classifies an error from the varint primitive. Underflow is
// reported as truncation; the original error stays reachable.
func varintErr(err error) error {
	if errors.Is(err, varint.ErrUnderflow) {
		return fmt.Errorf("%w: %w", ErrTruncated, err)
	}
	return fmt.Errorf("%w: %w", ErrVarintDecode, err)
}

func truncatedErr(need, have uint64) error {
	return fmt.Errorf("%w: need %d bytes, have %d", ErrTruncated, need, have)
}

func capacityErr(need, have int) error {
	return fmt.Errorf("%w: need %d bytes, have %d", ErrInsufficientCapacity, need, have)
}
