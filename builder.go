package cid

import (
	"fmt"

	mh "github.com/multiformats/go-multihash"
)

// Builder turns an already computed digest into a Cid of a fixed shape.
type Builder interface {
	WithDigest(digest []byte) (Cid, error)
	GetCodec() uint64
	WithCodec(uint64) Builder
}

// V0Builder builds CIDv0s from sha2-256 digests.
type V0Builder struct{}

// V1Builder builds CIDv1s with the given codec and multihash type.
type V1Builder struct {
	Codec  uint64
	MhType uint64
}

func (p V0Builder) WithDigest(digest []byte) (Cid, error) {
	if len(digest) != v0DigestLength {
		return Undef, fmt.Errorf("%w: %w: got %d bytes", ErrInvalidV0Cid, ErrDigestLength, len(digest))
	}
	var d [v0DigestLength]byte
	copy(d[:], digest)
	return NewCidV0FromDigest(d), nil
}

func (p V0Builder) GetCodec() uint64 {
	return DagProtobuf
}

func (p V0Builder) WithCodec(c uint64) Builder {
	if c == DagProtobuf {
		return p
	}
	return V1Builder{Codec: c, MhType: mh.SHA2_256}
}

func (p V1Builder) WithDigest(digest []byte) (Cid, error) {
	hash, err := mh.Encode(digest, p.MhType)
	if err != nil {
		return Undef, err
	}
	return New(V1, p.Codec, hash)
}

func (p V1Builder) GetCodec() uint64 {
	return p.Codec
}

func (p V1Builder) WithCodec(c uint64) Builder {
	p.Codec = c
	return p
}
