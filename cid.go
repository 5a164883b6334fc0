// Package cid implements Content IDentifiers in Go. CIDs are
// self-describing content-addressed identifiers: a version, a
// multicodec-packed content type and a multihash.
//
// CIDs have two versions. A CIDv0 is a bare sha2-256 multihash of
// DagProtobuf content, kept for compatibility with identifiers already in
// use. A CIDv1 has four parts:
//
//	<cidv1> ::= <multibase-prefix><cid-version><multicodec-packed-content-type><multihash-content-address>
//
// The multibase prefix only exists in the string form. The binary form of
// a CIDv1 starts with the version varint, the binary form of a CIDv0 is the
// multihash itself.
package cid

import (
	"cmp"
	"fmt"
	"strings"

	mh "github.com/multiformats/go-multihash"
	varint "github.com/multiformats/go-varint"
)

// UnsupportedVersionString just holds an error message
const UnsupportedVersionString = "<unsupported cid version>"

// These are multicodec-packed content types. They should match
// the codes described in the authoritative document:
// https://github.com/multiformats/multicodec/blob/master/table.csv
const (
	Raw = 0x55

	DagProtobuf = 0x70
	DagCBOR     = 0x71
	Libp2pKey   = 0x72

	GitRaw = 0x78

	DagJOSE            = 0x85
	EthBlock           = 0x90
	EthBlockList       = 0x91
	EthTxTrie          = 0x92
	EthTx              = 0x93
	EthTxReceiptTrie   = 0x94
	EthTxReceipt       = 0x95
	EthStateTrie       = 0x96
	EthAccountSnapshot = 0x97
	EthStorageTrie     = 0x98
	BitcoinBlock       = 0xb0
	BitcoinTx          = 0xb1
	ZcashBlock         = 0xc0
	ZcashTx            = 0xc1

	DagJSON = 0x0129
)

const (
	// v0DigestLength is the sha2-256 digest size of every CIDv0.
	v0DigestLength = 32
	// v0Length is the byte length of a CIDv0: code, length, digest.
	v0Length = 2 + v0DigestLength
)

// Cid represents a self-describing content addressed
// identifier. It is formed by a Version, a Codec (which indicates
// a multicodec-packed content type) and a Multihash.
//
// A Cid holds its binary form in an immutable string, so values can be
// copied, compared with == and used as map keys.
type Cid struct{ str string }

// Undef can be used to represent a nil or undefined Cid, using Cid{}
// directly is also acceptable.
var Undef = Cid{}

// New validates and builds a Cid of the given version.
//
// A CIDv0 must use the DagProtobuf codec and a sha2-256 multihash of 32
// bytes, anything else fails with ErrInvalidV0Cid. A CIDv1 accepts any
// codec the varint encoding can carry and any well-formed multihash.
func New(v Version, codec uint64, hash mh.Multihash) (Cid, error) {
	switch v {
	case V0:
		if codec != DagProtobuf {
			return Undef, fmt.Errorf("%w: codec 0x%x", ErrInvalidV0Cid, codec)
		}
		return NewCidV0(hash)
	case V1:
		if codec > varint.MaxValueUvarint63 {
			return Undef, fmt.Errorf("codec 0x%x: %w", codec, varint.ErrOverflow)
		}
		if _, err := mh.Cast(hash); err != nil {
			return Undef, err
		}
		return NewCidV1(codec, hash), nil
	default:
		return Undef, fmt.Errorf("%w: %d", ErrUnknownVersion, uint64(v))
	}
}

// NewCidV0 returns a Cid-wrapped multihash.
// They exist to allow IPFS to work with Cids while keeping
// compatibility with the plain-multihash format used in IPFS.
// NewCidV1 should be used preferentially.
func NewCidV0(mhash mh.Multihash) (Cid, error) {
	dec, err := mh.Decode(mhash)
	if err != nil {
		return Undef, err
	}
	if dec.Code != mh.SHA2_256 || dec.Length != v0DigestLength {
		return Undef, fmt.Errorf("%w: got %d-%d", ErrInvalidV0Cid, dec.Code, dec.Length)
	}
	return Cid{string(mhash)}, nil
}

// NewCidV0FromDigest builds a CIDv0 from a raw sha2-256 digest. The legacy
// shape is fixed by the argument type, so it cannot fail.
func NewCidV0FromDigest(digest [v0DigestLength]byte) Cid {
	buf := make([]byte, v0Length)
	buf[0] = mh.SHA2_256
	buf[1] = v0DigestLength
	copy(buf[2:], digest[:])
	return Cid{string(buf)}
}

// NewCidV1 returns a new Cid using the given multicodec-packed
// content type. The multihash is not validated, use New for that.
// It panics if codecType does not fit in a 63 bit varint.
func NewCidV1(codecType uint64, mhash mh.Multihash) Cid {
	if codecType > varint.MaxValueUvarint63 {
		panic(fmt.Sprintf("codec 0x%x does not fit in a 63 bit varint", codecType))
	}
	hashlen := len(mhash)
	buf := make([]byte, varint.UvarintSize(uint64(V1))+varint.UvarintSize(codecType)+hashlen)
	n := varint.PutUvarint(buf, uint64(V1))
	n += varint.PutUvarint(buf[n:], codecType)
	cn := copy(buf[n:], mhash)
	if cn != hashlen {
		panic("copy hash length is inconsistent")
	}

	return Cid{string(buf[:n+hashlen])}
}

// Defined returns true if a Cid is defined
// Calling any other methods on an undefined Cid will result in
// undefined behavior.
func (c Cid) Defined() bool {
	return c.str != ""
}

// Version returns the Cid version.
func (c Cid) Version() Version {
	if isV0String(c.str) {
		return V0
	}
	return V1
}

// Type returns the multicodec-packed content type of a Cid.
func (c Cid) Type() uint64 {
	if c.Version() == V0 {
		return DagProtobuf
	}
	_, n, _ := uvarint(c.str)
	codec, _, _ := uvarint(c.str[n:])
	return codec
}

// Hash returns the multihash contained by a Cid.
func (c Cid) Hash() mh.Multihash {
	return mh.Multihash(c.str[c.hashOffset():])
}

// hashOffset is the index of the multihash in the binary form.
func (c Cid) hashOffset() int {
	if c.Version() == V0 {
		return 0
	}
	_, n1, _ := uvarint(c.str)
	_, n2, _ := uvarint(c.str[n1:])
	return n1 + n2
}

// Equals checks that two Cids are the same.
// In order for two Cids to be considered equal, the
// Version, the Codec and the Multihash must match.
func (c Cid) Equals(o Cid) bool {
	return c == o
}

// Compare orders Cids by version, then codec, then multihash bytes. It
// returns -1, 0 or +1.
func (c Cid) Compare(o Cid) int {
	if r := cmp.Compare(c.Version(), o.Version()); r != 0 {
		return r
	}
	if r := cmp.Compare(c.Type(), o.Type()); r != 0 {
		return r
	}
	return strings.Compare(c.str[c.hashOffset():], o.str[o.hashOffset():])
}

// KeyString returns the binary representation of the Cid as a string
func (c Cid) KeyString() string {
	return c.str
}

// Loggable returns a Loggable (as defined by
// https://godoc.org/github.com/ipfs/go-log).
func (c Cid) Loggable() map[string]interface{} {
	return map[string]interface{}{
		"cid": c,
	}
}

// isV0String reports whether a binary form has the fixed CIDv0 shape.
func isV0String(s string) bool {
	return len(s) == v0Length && s[0] == mh.SHA2_256 && s[1] == v0DigestLength
}
