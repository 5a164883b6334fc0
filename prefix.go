package cid

import (
	"bytes"
	"fmt"

	mh "github.com/multiformats/go-multihash"
	varint "github.com/multiformats/go-varint"
)

// Prefix represents all the metadata of a Cid,
// that is, the Version, the Codec, the Multihash type
// and the Multihash length. It does not contains
// any actual content information.
type Prefix struct {
	Version  Version
	Codec    uint64
	MhType   uint64
	MhLength int
}

// Prefix builds and returns a Prefix out of a Cid.
func (c Cid) Prefix() Prefix {
	if c.Version() == V0 {
		return v0CidPrefix
	}

	offset := 0
	_, n, _ := uvarint(c.str[offset:])
	offset += n
	codec, n, _ := uvarint(c.str[offset:])
	offset += n
	mhtype, n, _ := uvarint(c.str[offset:])
	offset += n
	mhlen, _, _ := uvarint(c.str[offset:])

	return Prefix{
		MhType:   mhtype,
		MhLength: int(mhlen),
		Version:  V1,
		Codec:    codec,
	}
}

// WithDigest wraps an already computed digest into a multihash of the
// prefix's type and returns the resulting Cid. The digest length must match
// MhLength unless MhLength is negative.
func (p Prefix) WithDigest(digest []byte) (Cid, error) {
	if p.MhLength >= 0 && len(digest) != p.MhLength {
		return Undef, fmt.Errorf("%w: got %d bytes, prefix wants %d", ErrDigestLength, len(digest), p.MhLength)
	}
	hash, err := mh.Encode(digest, p.MhType)
	if err != nil {
		return Undef, err
	}
	return New(p.Version, p.Codec, hash)
}

// GetCodec returns the codec of the prefix.
func (p Prefix) GetCodec() uint64 {
	return p.Codec
}

// WithCodec returns a copy of the prefix with the codec replaced.
func (p Prefix) WithCodec(c uint64) Builder {
	if c == p.Codec {
		return p
	}
	p.Codec = c
	if c != DagProtobuf {
		p.Version = V1
	}
	return p
}

// Bytes returns a byte representation of a Prefix. It looks like:
//
//	<version><codec><mh-type><mh-length>
func (p Prefix) Bytes() []byte {
	size := varint.UvarintSize(uint64(p.Version))
	size += varint.UvarintSize(p.Codec)
	size += varint.UvarintSize(p.MhType)
	size += varint.UvarintSize(uint64(p.MhLength))

	buf := make([]byte, size)
	n := varint.PutUvarint(buf, uint64(p.Version))
	n += varint.PutUvarint(buf[n:], p.Codec)
	n += varint.PutUvarint(buf[n:], p.MhType)
	n += varint.PutUvarint(buf[n:], uint64(p.MhLength))
	if n != size {
		panic("size mismatch")
	}
	return buf
}

// PrefixFromBytes parses a Prefix-byte representation onto a
// Prefix.
func PrefixFromBytes(buf []byte) (Prefix, error) {
	r := bytes.NewReader(buf)
	vers, err := varint.ReadUvarint(r)
	if err != nil {
		return Prefix{}, readerErr(err)
	}
	version, err := VersionFromUint64(vers)
	if err != nil {
		return Prefix{}, err
	}

	codec, err := varint.ReadUvarint(r)
	if err != nil {
		return Prefix{}, readerErr(err)
	}

	mhtype, err := varint.ReadUvarint(r)
	if err != nil {
		return Prefix{}, readerErr(err)
	}

	mhlen, err := varint.ReadUvarint(r)
	if err != nil {
		return Prefix{}, readerErr(err)
	}

	return Prefix{
		Version:  version,
		Codec:    codec,
		MhType:   mhtype,
		MhLength: int(mhlen),
	}, nil
}

var v0CidPrefix = Prefix{
	Codec:    DagProtobuf,
	MhLength: v0DigestLength,
	MhType:   mh.SHA2_256,
	Version:  V0,
}

var v1CidPrefix = Prefix{
	Codec:    DagProtobuf,
	MhLength: v0DigestLength,
	MhType:   mh.SHA2_256,
	Version:  V1,
}

// V0CidPrefix returns a prefix for CIDv0
func V0CidPrefix() Prefix { return v0CidPrefix }

// V1CidPrefix returns a prefix for CIDv1 with the default settings
func V1CidPrefix() Prefix { return v1CidPrefix }

// PrefixForCidVersion returns the Protobuf prefix for a given CID version
func PrefixForCidVersion(version int) (Prefix, error) {
	switch version {
	case 0:
		return v0CidPrefix, nil
	case 1:
		return v1CidPrefix, nil
	default:
		return Prefix{}, fmt.Errorf("%w: %d", ErrUnknownVersion, version)
	}
}
