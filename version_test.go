package cid

import (
	"errors"
	"testing"
)

func TestVersion(t *testing.T) {
	for _, n := range []uint64{0, 1} {
		v, err := VersionFromUint64(n)
		if err != nil {
			t.Fatal(err)
		}
		if v.Uint64() != n {
			t.Fatalf("version %d did not roundtrip", n)
		}
	}

	if _, err := VersionFromUint64(2); !errors.Is(err, ErrUnknownVersion) {
		t.Fatalf("expected ErrUnknownVersion, got %v", err)
	}

	if V0.String() != "v0" || V1.String() != "v1" {
		t.Fatal("unexpected version names")
	}
}
