package cid

import (
	"encoding"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/mr-tron/base58/base58"
	mbase "github.com/multiformats/go-multibase"
	mh "github.com/multiformats/go-multihash"
)

var (
	_ encoding.TextMarshaler   = Cid{}
	_ encoding.TextUnmarshaler = (*Cid)(nil)
)

// ipfsPathPrefix may precede a Cid string given to Parse.
const ipfsPathPrefix = "/ipfs/"

// v0TextLength is the length of every base58btc CIDv0 string.
const v0TextLength = 46

// String returns the default string representation of a
// Cid. Currently, Base32 is used for CIDV1 as the encoding for the
// multibase string, Base58 is used for CIDV0.
func (c Cid) String() string {
	switch c.Version() {
	case V0:
		return base58.Encode([]byte(c.str))
	case V1:
		mbstr, err := mbase.Encode(mbase.Base32, c.Bytes())
		if err != nil {
			panic("should not error with hardcoded mbase: " + err.Error())
		}

		return mbstr
	default:
		return UnsupportedVersionString
	}
}

// StringOfBase returns the string representation of a Cid
// encoded is selected base. A CIDv0 has no multibase prefix and
// only accepts base58btc.
func (c Cid) StringOfBase(base mbase.Encoding) (string, error) {
	switch c.Version() {
	case V0:
		if base != mbase.Base58BTC {
			return "", ErrInvalidCidV0Base
		}
		return base58.Encode([]byte(c.str)), nil
	case V1:
		s, err := mbase.Encode(base, c.Bytes())
		if errors.Is(err, mbase.ErrUnsupportedEncoding) {
			return "", fmt.Errorf("%w: %w", ErrUnknownBase, err)
		}
		return s, err
	default:
		return "", fmt.Errorf("%w: %d", ErrUnknownVersion, uint64(c.Version()))
	}
}

// Encode return the string representation of a Cid in a given base
// when applicable.  Version 0 Cid's are always in Base58 as they do
// not take a multibase prefix.
func (c Cid) Encode(base mbase.Encoder) string {
	if c.Version() == V0 {
		return base58.Encode([]byte(c.str))
	}
	return base.Encode(c.Bytes())
}

// MarshalText is equivalent to String(). It implements the
// encoding.TextMarshaler interface.
func (c Cid) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText is equivalent to StrictDecoder.Decode(). It implements the
// encoding.TextUnmarshaler interface.
func (c *Cid) UnmarshalText(text []byte) error {
	decodedCid, err := StrictDecoder.Decode(string(text))
	if err != nil {
		return err
	}
	c.str = decodedCid.str
	return nil
}

// isV0Text reports whether s has the shape of a base58btc CIDv0.
func isV0Text(s string) bool {
	return len(s) == v0TextLength && strings.HasPrefix(s, "Qm")
}

// decodeText turns a Cid string into its binary form.
func decodeText(v string) ([]byte, error) {
	if len(v) < 2 {
		return nil, ErrCidTooShort
	}

	if isV0Text(v) {
		data, err := base58.Decode(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidCidV0Base, err)
		}
		if !isV0String(string(data)) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidV0Cid, v)
		}
		return data, nil
	}

	enc, err := ExtractEncoding(v)
	if err != nil {
		return nil, err
	}

	_, data, err := mbase.Decode(v)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", mbase.EncodingToStr[enc], err)
	}
	return data, nil
}

// ExtractEncoding returns the encoding of a Cid string. If Decode on the
// same string did not return an error neither will this function.
func ExtractEncoding(v string) (mbase.Encoding, error) {
	if len(v) < 2 {
		return -1, ErrCidTooShort
	}

	if isV0Text(v) {
		return mbase.Base58BTC, nil
	}

	r, _ := utf8.DecodeRuneInString(v)
	encoding := mbase.Encoding(r)
	if _, ok := mbase.EncodingToStr[encoding]; !ok {
		return -1, fmt.Errorf("%w: %q", ErrUnknownBase, r)
	}

	return encoding, nil
}

// Parse is a short-hand function to perform Decode, Cast etc... on
// a generic interface{} type.
func Parse(v interface{}) (Cid, error) {
	switch v2 := v.(type) {
	case string:
		if _, after, found := strings.Cut(v2, ipfsPathPrefix); found {
			return Decode(after)
		}
		return Decode(v2)
	case []byte:
		return Cast(v2)
	case mh.Multihash:
		return NewCidV0(v2)
	case Cid:
		return v2, nil
	default:
		return Undef, fmt.Errorf("%w: %T", ErrUnsupportedInput, v2)
	}
}

// UnmarshalJSON parses the JSON representation of a Cid.
func (c *Cid) UnmarshalJSON(b []byte) error {
	if len(b) < 2 {
		return fmt.Errorf("%w: %q", ErrInvalidJSONLink, b)
	}
	obj := struct {
		CidTarget string `json:"/"`
	}{}
	objptr := &obj
	err := json.Unmarshal(b, &objptr)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidJSONLink, err)
	}
	if objptr == nil {
		*c = Cid{}
		return nil
	}

	if obj.CidTarget == "" {
		return fmt.Errorf("%w: empty link target", ErrInvalidJSONLink)
	}

	out, err := StrictDecoder.Decode(obj.CidTarget)
	if err != nil {
		return err
	}

	*c = out

	return nil
}

// MarshalJSON produces a JSON representation of a Cid, which looks as follows:
//
//	{ "/": "<cid-string>" }
//
// Note that this formatting comes from the IPLD DAG-JSON link form.
func (c Cid) MarshalJSON() ([]byte, error) {
	if !c.Defined() {
		return []byte("null"), nil
	}
	return []byte(fmt.Sprintf("{\"/\":\"%s\"}", c.String())), nil
}
