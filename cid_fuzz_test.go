package cid

import (
	"bytes"
	"testing"

	mh "github.com/multiformats/go-multihash"
)

func FuzzCidFromBytes(f *testing.F) {
	f.Add(NewCidV0FromDigest([32]byte{1}).Bytes())
	if hash, err := mh.Sum([]byte("seed"), mh.SHA2_256, -1); err == nil {
		f.Add(NewCidV1(DagCBOR, hash).Bytes())
		f.Add(NewCidV1(DagJSON, hash).Bytes())
	}
	f.Add([]byte{0x01, 0x55, 0x00, 0x00})
	f.Add([]byte{0x12})

	f.Fuzz(func(t *testing.T, data []byte) {
		n, c, err := CidFromBytes(data)
		if err != nil {
			return
		}
		if n > len(data) {
			t.Fatal("consumed more bytes than given")
		}
		if !bytes.Equal(c.Bytes(), data[:n]) {
			t.Fatal("decoded cid does not re-encode to its input")
		}

		c2, err := Decode(c.String())
		if err != nil {
			t.Fatal(err)
		}
		if c2 != c {
			t.Fatal("string roundtrip failed")
		}

		dst := make([]byte, 0, n)
		v, vn, err := DecodeInto(dst, data)
		if err != nil || vn != n || v.Cid() != c {
			t.Fatal("DecodeInto disagrees with CidFromBytes")
		}
	})
}

func FuzzDecode(f *testing.F) {
	f.Add("QmdfTbBqBPQ7VNxZEYEj14VmRuZBkqFbiwReogJgS1zR1n")
	f.Add("bafkreieq5jui4j25lacwomsqgjeswwl3y5zcdrresptwgmfylxo2depppq")
	f.Add("mAVUSICwmtGto/8aP+ZtFPB0wQTQTQi1wZIO/oPmKXohiZueu")

	f.Fuzz(func(t *testing.T, s string) {
		c, err := Decode(s)
		if err != nil {
			return
		}
		if _, err := Cast(c.Bytes()); err != nil {
			t.Fatal(err)
		}
	})
}
