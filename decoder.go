package cid

import "fmt"

// TrailingPolicy says what a Decoder does with bytes left after the
// multihash of a decoded Cid.
type TrailingPolicy int

const (
	// AllowTrailing ignores bytes after the multihash.
	AllowTrailing TrailingPolicy = iota
	// RejectTrailing fails with ErrTrailingBytes.
	RejectTrailing
)

// Decoder turns binary or string input into Cids. The zero value is the
// tolerant DefaultDecoder.
type Decoder struct {
	Trailing TrailingPolicy

	// Hashes, when set, is checked against every decoded Cid.
	Hashes *HashPolicy
}

var (
	// DefaultDecoder tolerates trailing bytes. It backs Cast and Decode.
	DefaultDecoder = Decoder{Trailing: AllowTrailing}

	// StrictDecoder requires the input to be exactly one Cid.
	StrictDecoder = Decoder{Trailing: RejectTrailing}
)

// Cast takes a Cid data slice, parses it and returns a Cid.
// For CidV1, the data buffer is in the form:
//
//	<version><codec-type><multihash>
//
// CidV0 are also supported. In particular, data buffers starting
// with length 34 bytes, which starts with bytes [18,32...] are considered
// binary multihashes.
func (d Decoder) Cast(data []byte) (Cid, error) {
	nr, c, err := CidFromBytes(data)
	if err != nil {
		return Undef, err
	}

	if nr != len(data) && d.Trailing == RejectTrailing {
		return Undef, fmt.Errorf("%w: %d bytes", ErrTrailingBytes, len(data)-nr)
	}

	if d.Hashes != nil {
		if err := d.Hashes.Check(c); err != nil {
			return Undef, err
		}
	}

	return c, nil
}

// Decode parses a Cid-encoded string and returns a Cid object.
// For CidV1, a Cid-encoded string is primarily a multibase string:
//
//	<multibase-type-code><base-encoded-string>
//
// The base-encoded string represents a:
//
//	<version><codec-type><multihash>
//
// Decode will also detect and parse CidV0 strings. Strings
// starting with "Qm" are considered CidV0 and treated directly
// as B58-encoded multihashes.
func (d Decoder) Decode(v string) (Cid, error) {
	data, err := decodeText(v)
	if err != nil {
		return Undef, err
	}
	return d.Cast(data)
}

// Cast is DefaultDecoder.Cast.
//
// Please use Decode when parsing a regular Cid string, as Cast does not
// expect multibase-encoded data. Cast accepts the output of Cid.Bytes().
func Cast(data []byte) (Cid, error) {
	return DefaultDecoder.Cast(data)
}

// Decode is DefaultDecoder.Decode.
func Decode(v string) (Cid, error) {
	return DefaultDecoder.Decode(v)
}
