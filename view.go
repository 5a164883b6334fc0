package cid

import (
	mh "github.com/multiformats/go-multihash"
	varint "github.com/multiformats/go-varint"
)

// View is a decoded Cid whose multihash lives in a caller supplied buffer.
// It is produced by DecodeInto for callers that cannot allocate per
// decode. A View is only valid while that buffer is left untouched.
type View struct {
	version Version
	codec   uint64
	hash    []byte
}

// DecodeInto decodes the Cid at the start of data, copying its multihash
// into dst. dst is never grown: if cap(dst) is smaller than the multihash
// it fails with ErrInsufficientCapacity and dst is not written. It returns
// the number of bytes of data consumed.
func DecodeInto(dst, data []byte) (View, int, error) {
	f, err := readFrame(data)
	if err != nil {
		return View{}, 0, err
	}

	mhl := f.end - f.hashOff
	if cap(dst) < mhl {
		return View{}, 0, capacityErr(mhl, cap(dst))
	}
	hash := dst[:mhl]
	copy(hash, data[f.hashOff:f.end])

	return View{version: f.version, codec: f.codec, hash: hash}, f.end, nil
}

// Version returns the version of the decoded Cid.
func (v View) Version() Version { return v.version }

// Type returns the multicodec-packed content type of the decoded Cid.
func (v View) Type() uint64 { return v.codec }

// Hash returns the multihash. It aliases the buffer given to DecodeInto.
func (v View) Hash() mh.Multihash { return mh.Multihash(v.hash) }

// ByteLen returns the length of the binary form of the Cid.
func (v View) ByteLen() int {
	if v.version == V0 {
		return len(v.hash)
	}
	return varint.UvarintSize(uint64(V1)) + varint.UvarintSize(v.codec) + len(v.hash)
}

// PutBytes writes the binary form of the Cid into dst.
func (v View) PutBytes(dst []byte) (int, error) {
	size := v.ByteLen()
	if len(dst) < size {
		return 0, capacityErr(size, len(dst))
	}
	n := 0
	if v.version == V1 {
		n += varint.PutUvarint(dst, uint64(V1))
		n += varint.PutUvarint(dst[n:], v.codec)
	}
	n += copy(dst[n:], v.hash)
	return n, nil
}

// Cid copies the View into an owned Cid.
func (v View) Cid() Cid {
	buf := make([]byte, v.ByteLen())
	n, _ := v.PutBytes(buf)
	return Cid{string(buf[:n])}
}
