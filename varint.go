package cid

import (
	varint "github.com/multiformats/go-varint"
)

// uvarint is a varint.FromUvarint over a string, so Cid fields can be read
// without copying the underlying bytes.
func uvarint(buf string) (uint64, int, error) {
	var x uint64
	var s uint
	// we have a binary string so we can't use a range loop
	for i := 0; i < len(buf); i++ {
		b := buf[i]
		if (i == 8 && b >= 0x80) || i >= varint.MaxLenUvarint63 {
			return 0, 0, varint.ErrOverflow
		}
		if b < 0x80 {
			if b == 0 && s > 0 {
				return 0, 0, varint.ErrNotMinimal
			}
			return x | uint64(b)<<s, i + 1, nil
		}
		x |= uint64(b&0x7f) << s
		s += 7
	}
	return 0, 0, varint.ErrUnderflow
}

// readUvarint reads one varint from data, classifying failures.
func readUvarint(data []byte) (uint64, int, error) {
	v, n, err := varint.FromUvarint(data)
	if err != nil {
		return 0, 0, varintErr(err)
	}
	return v, n, nil
}

// multihashLen returns the framed length of the multihash at the start of
// data: code varint, length varint and digest. It fails with ErrTruncated
// when data is shorter than the declared digest.
func multihashLen(data []byte) (int, error) {
	_, n, err := readUvarint(data)
	if err != nil {
		return 0, err
	}
	dlen, ln, err := readUvarint(data[n:])
	if err != nil {
		return 0, err
	}
	n += ln
	avail := uint64(len(data) - n)
	if dlen > avail {
		return 0, truncatedErr(dlen, avail)
	}
	return n + int(dlen), nil
}
