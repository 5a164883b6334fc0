package cid

import (
	"errors"
	"testing"

	"github.com/multiformats/go-varint"
)

func TestUvarintRoundTrip(t *testing.T) {
	testCases := []uint64{0, 1, 2, 127, 128, 129, 255, 256, 257, 1<<63 - 1}
	for _, tc := range testCases {
		t.Log("testing", tc)
		buf := make([]byte, 16)
		varint.PutUvarint(buf, tc)
		v, l1, err := uvarint(string(buf))
		if err != nil {
			t.Fatalf("%v: %s", buf, err)
		}
		_, l2, err := varint.FromUvarint(buf)
		if err != nil {
			t.Fatal(err)
		}
		if tc != v {
			t.Errorf("roundtrip failed expected %d but got %d", tc, v)
		}
		if l1 != l2 {
			t.Errorf("length incorrect expected %d but got %d", l2, l1)
		}
	}
}

func TestUvarintEdges(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  error
	}{
		{"ErrNotMinimal", []byte{0x01 | 0x80, 0}, varint.ErrNotMinimal},
		{"ErrOverflow", []byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x01}, varint.ErrOverflow},
		{"ErrUnderflow", []byte{0x80}, varint.ErrUnderflow},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			v, l1, err := uvarint(string(test.input))
			if err != test.want {
				t.Fatalf("error case (%v) should return varint.%s (got: %v)", test.input, test.name, err)
			}
			if v != 0 {
				t.Fatalf("error case (%v) should return 0 value (got %d)", test.input, v)
			}
			if l1 != 0 {
				t.Fatalf("error case (%v) should return 0 length (got %d)", test.input, l1)
			}
		})
	}
}

func TestReadUvarintClassification(t *testing.T) {
	tests := []struct {
		name      string
		input     []byte
		truncated bool
		cause     error
	}{
		{"empty", nil, true, varint.ErrUnderflow},
		{"unterminated", []byte{0xff, 0xff}, true, varint.ErrUnderflow},
		{"not minimal", []byte{0x81, 0x00}, false, varint.ErrNotMinimal},
		{"overflow", []byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x01}, false, varint.ErrOverflow},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, _, err := readUvarint(test.input)
			if !errors.Is(err, ErrVarintDecode) {
				t.Fatalf("expected a varint decode error, got %v", err)
			}
			if errors.Is(err, ErrTruncated) != test.truncated {
				t.Fatalf("truncation mismatch for %v", err)
			}
			if !errors.Is(err, test.cause) {
				t.Fatalf("expected %v to stay reachable, got %v", test.cause, err)
			}
		})
	}
}

func TestMultihashLen(t *testing.T) {
	hash := append([]byte{0x12, 0x20}, make([]byte, 32)...)
	n, err := multihashLen(append(hash, 0xaa))
	if err != nil {
		t.Fatal(err)
	}
	if n != len(hash) {
		t.Fatalf("expected %d, got %d", len(hash), n)
	}

	if _, err := multihashLen(hash[:20]); !errors.Is(err, ErrTruncated) {
		t.Fatalf("expected truncation, got %v", err)
	}
}
