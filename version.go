package cid

import "fmt"

// Version is the format of a Cid. Only two formats exist: the legacy
// CIDv0, which is a bare sha2-256 multihash, and the self-describing CIDv1.
type Version uint64

const (
	V0 Version = 0
	V1 Version = 1
)

// VersionFromUint64 maps a decoded version number to a Version.
func VersionFromUint64(v uint64) (Version, error) {
	switch v {
	case 0:
		return V0, nil
	case 1:
		return V1, nil
	default:
		return 0, fmt.Errorf("%w: %d", ErrUnknownVersion, v)
	}
}

// Uint64 returns the number written for this version on the wire.
func (v Version) Uint64() uint64 {
	return uint64(v)
}

func (v Version) String() string {
	switch v {
	case V0:
		return "v0"
	case V1:
		return "v1"
	default:
		return fmt.Sprintf("v?%d", uint64(v))
	}
}
