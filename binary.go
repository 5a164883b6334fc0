package cid

import (
	"encoding"
	"errors"
	"fmt"
	"io"

	mh "github.com/multiformats/go-multihash"
	varint "github.com/multiformats/go-varint"
)

var (
	_ encoding.BinaryMarshaler   = Cid{}
	_ encoding.BinaryUnmarshaler = (*Cid)(nil)
)

// Bytes returns the byte representation of a Cid.
// The output of bytes can be parsed back into a Cid
// with Cast().
func (c Cid) Bytes() []byte {
	return []byte(c.str)
}

// ByteLen returns the length of the CID in bytes.
// It's equivalent to `len(c.Bytes())`, but works without an allocation,
// and should therefore be preferred.
func (c Cid) ByteLen() int {
	return len(c.str)
}

// WriteBytes writes the CID bytes to the given writer.
// This method works without incurring any allocation.
func (c Cid) WriteBytes(w io.Writer) (int, error) {
	n, err := io.WriteString(w, c.str)
	if err != nil {
		return n, err
	}
	if n != len(c.str) {
		return n, fmt.Errorf("cid: wrote %d of %d bytes: %w", n, len(c.str), io.ErrShortWrite)
	}
	return n, nil
}

// PutBytes writes the CID bytes into dst and returns the number of bytes
// written. It fails with ErrInsufficientCapacity if dst is shorter than
// ByteLen and never writes past len(dst).
func (c Cid) PutBytes(dst []byte) (int, error) {
	if len(dst) < len(c.str) {
		return 0, capacityErr(len(c.str), len(dst))
	}
	return copy(dst, c.str), nil
}

// MarshalBinary is equivalent to Bytes(). It implements the
// encoding.BinaryMarshaler interface.
func (c Cid) MarshalBinary() ([]byte, error) {
	return c.Bytes(), nil
}

// UnmarshalBinary is equivalent to StrictDecoder.Cast(). It implements the
// encoding.BinaryUnmarshaler interface.
func (c *Cid) UnmarshalBinary(data []byte) error {
	casted, err := StrictDecoder.Cast(data)
	if err != nil {
		return err
	}
	c.str = casted.str
	return nil
}

// frame locates the parts of a binary Cid at the start of a buffer.
type frame struct {
	version Version
	codec   uint64
	hashOff int
	end     int
}

// readFrame parses the binary Cid at the start of data. Bytes past the
// multihash are ignored.
//
// A buffer starting with the sha2-256 multihash prefix 0x12 0x20 is a
// CIDv0: it has no version varint and is exactly 34 bytes long. Anything
// else must carry version 1; an explicit version 0 never appears on the
// wire.
func readFrame(data []byte) (frame, error) {
	if len(data) == 0 {
		return frame{}, fmt.Errorf("%w: empty input", ErrTruncated)
	}

	if data[0] == mh.SHA2_256 && (len(data) == 1 || data[1] == v0DigestLength) {
		if len(data) < v0Length {
			return frame{}, truncatedErr(v0Length, uint64(len(data)))
		}
		return frame{version: V0, codec: DagProtobuf, end: v0Length}, nil
	}

	vers, n, err := readUvarint(data)
	if err != nil {
		return frame{}, err
	}
	switch vers {
	case 0:
		return frame{}, ErrInvalidCidV0Version
	case 1:
	default:
		return frame{}, fmt.Errorf("%w: %d", ErrUnknownVersion, vers)
	}

	codec, cn, err := readUvarint(data[n:])
	if err != nil {
		return frame{}, err
	}

	off := n + cn
	mhl, err := multihashLen(data[off:])
	if err != nil {
		return frame{}, err
	}

	// The multihash decoder has the last word on its own framing.
	if _, _, err := mh.MHFromBytes(data[off : off+mhl]); err != nil {
		return frame{}, err
	}

	return frame{version: V1, codec: codec, hashOff: off, end: off + mhl}, nil
}

// CidFromBytes reads a Cid from the start of data. It returns the number
// of bytes consumed; bytes after the Cid are left for the caller.
func CidFromBytes(data []byte) (int, Cid, error) {
	f, err := readFrame(data)
	if err != nil {
		return 0, Undef, err
	}
	return f.end, Cid{string(data[:f.end])}, nil
}

func toBufByteReader(r io.Reader, dst []byte) *bufByteReader {
	// If the reader already implements ByteReader, use it directly.
	// Otherwise, use a fallback that does 1-byte Reads.
	if br, ok := r.(io.ByteReader); ok {
		return &bufByteReader{direct: br, dst: dst}
	}
	return &bufByteReader{fallback: r, dst: dst}
}

type bufByteReader struct {
	direct   io.ByteReader
	fallback io.Reader

	dst []byte
}

func (r *bufByteReader) ReadByte() (byte, error) {
	if br := r.direct; br != nil {
		b, err := br.ReadByte()
		if err != nil {
			return 0, err
		}
		r.dst = append(r.dst, b)
		return b, nil
	}

	var p [1]byte
	if _, err := io.ReadFull(r.fallback, p[:]); err != nil {
		return 0, err
	}
	r.dst = append(r.dst, p[0])
	return p[0], nil
}

// readerErr classifies errors from reading a Cid off a stream.
func readerErr(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: %w", ErrTruncated, err)
	}
	if errors.Is(err, varint.ErrOverflow) || errors.Is(err, varint.ErrNotMinimal) {
		return fmt.Errorf("%w: %w", ErrVarintDecode, err)
	}
	return err
}

// maxDigestAlloc bounds the digest allocation of CidFromReader.
const maxDigestAlloc = 32 << 20 // 32MiB

// CidFromReader reads a precise number of bytes for a CID from a given reader.
// It returns the number of bytes read, the CID, and any error encountered.
// The number of bytes read is accurate even if a non-nil error is returned.
//
// It's recommended to supply a reader that buffers and implements io.ByteReader,
// as CidFromReader has to do many single-byte reads to decode varints.
func CidFromReader(r io.Reader) (int, Cid, error) {
	// 64 bytes is enough for any CIDv0,
	// and it's enough for most CIDv1s in practice.
	br := toBufByteReader(r, make([]byte, 0, 64))

	vers, err := varint.ReadUvarint(br)
	if err != nil {
		return len(br.dst), Undef, readerErr(err)
	}

	if vers == mh.SHA2_256 {
		l, err := br.ReadByte()
		if err != nil {
			return len(br.dst), Undef, readerErr(err)
		}
		if l != v0DigestLength {
			return len(br.dst), Undef, fmt.Errorf("%w: %d", ErrUnknownVersion, vers)
		}
		br.dst = br.dst[:v0Length]
		if n, err := io.ReadFull(r, br.dst[2:]); err != nil {
			return 2 + n, Undef, readerErr(err)
		}
		return v0Length, Cid{string(br.dst)}, nil
	}

	switch vers {
	case 0:
		return len(br.dst), Undef, ErrInvalidCidV0Version
	case 1:
	default:
		return len(br.dst), Undef, fmt.Errorf("%w: %d", ErrUnknownVersion, vers)
	}

	// CID block encoding multicodec.
	if _, err := varint.ReadUvarint(br); err != nil {
		return len(br.dst), Undef, readerErr(err)
	}

	mhStart := len(br.dst)

	// Multihash hash function code.
	if _, err := varint.ReadUvarint(br); err != nil {
		return len(br.dst), Undef, readerErr(err)
	}

	// Multihash digest length.
	mhl, err := varint.ReadUvarint(br)
	if err != nil {
		return len(br.dst), Undef, readerErr(err)
	}

	// Refuse to make large allocations to prevent OOMs due to bugs.
	if mhl > maxDigestAlloc {
		return len(br.dst), Undef, fmt.Errorf("%w: refusing to allocate %d bytes", ErrDigestTooLarge, mhl)
	}

	prefixLength := len(br.dst)
	cidLength := prefixLength + int(mhl)
	if cidLength > cap(br.dst) {
		br.dst = append(br.dst, make([]byte, cidLength-len(br.dst))...)
	} else {
		br.dst = br.dst[:cidLength]
	}

	if n, err := io.ReadFull(r, br.dst[prefixLength:cidLength]); err != nil {
		// We can't use len(br.dst) here,
		// as we've only read n bytes past prefixLength.
		return prefixLength + n, Undef, readerErr(err)
	}

	if _, _, err := mh.MHFromBytes(br.dst[mhStart:]); err != nil {
		return len(br.dst), Undef, err
	}

	return len(br.dst), Cid{string(br.dst)}, nil
}
