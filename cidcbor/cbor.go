// Package cidcbor encodes Cids as DAG-CBOR links: CBOR tag 42 wrapping a
// byte string of the identity multibase prefix (0x00) followed by the
// binary Cid.
//
//	data, err := cidcbor.EncodeLink(c)
//	c, err = cidcbor.DecodeLink(data)
//
// Structs carrying links use CborCid fields with Marshal and Unmarshal,
// which share the same Core Deterministic encoder configuration.
package cidcbor

import (
	"errors"
	"fmt"

	"github.com/fxamacker/cbor/v2"

	cid "github.com/contentid/go-cid"
)

// LinkTag is the CBOR tag number registered for IPLD links.
const LinkTag = 42

// identityPrefix is the multibase code of raw binary data.
const identityPrefix = 0x00

// CBOR major type 6 (tag) and the encoding of null.
const (
	majorTypeTag = 6
	cborNull     = 0xf6
)

var (
	// ErrMissingIdentityPrefix means the tagged byte string does not start
	// with the 0x00 identity multibase prefix.
	ErrMissingIdentityPrefix = errors.New("cid link is missing the identity multibase prefix")

	// ErrUnexpectedTag means the item is not a tag 42 link.
	ErrUnexpectedTag = errors.New("expected cbor tag 42")
)

// encMode uses Core Deterministic Encoding (RFC 8949 §4.2) so a link
// always encodes to the same bytes.
var encMode cbor.EncMode

var decMode cbor.DecMode

func init() {
	var err error

	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("cidcbor: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{}.DecMode()
	if err != nil {
		panic("cidcbor: CBOR decoder initialization failed: " + err.Error())
	}
}

// CborCid is a Cid that marshals as a DAG-CBOR link. An undefined Cid
// encodes as CBOR null.
type CborCid cid.Cid

// Cid returns the wrapped Cid.
func (c CborCid) Cid() cid.Cid {
	return cid.Cid(c)
}

// MarshalCBOR implements cbor.Marshaler.
func (c CborCid) MarshalCBOR() ([]byte, error) {
	cc := cid.Cid(c)
	if !cc.Defined() {
		return []byte{cborNull}, nil
	}

	content := make([]byte, 1+cc.ByteLen())
	content[0] = identityPrefix
	if _, err := cc.PutBytes(content[1:]); err != nil {
		return nil, err
	}
	return encMode.Marshal(cbor.Tag{Number: LinkTag, Content: content})
}

// UnmarshalCBOR implements cbor.Unmarshaler. The tagged bytes must hold
// exactly one Cid.
func (c *CborCid) UnmarshalCBOR(data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("cidcbor: empty input")
	}
	if data[0] == cborNull {
		*c = CborCid(cid.Undef)
		return nil
	}
	if data[0]>>5 != majorTypeTag {
		return fmt.Errorf("%w: got major type %d", ErrUnexpectedTag, data[0]>>5)
	}

	var raw cbor.RawTag
	if err := decMode.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Number != LinkTag {
		return fmt.Errorf("%w: got tag %d", ErrUnexpectedTag, raw.Number)
	}

	var content []byte
	if err := decMode.Unmarshal(raw.Content, &content); err != nil {
		return fmt.Errorf("cidcbor: link content: %w", err)
	}
	if len(content) == 0 || content[0] != identityPrefix {
		return ErrMissingIdentityPrefix
	}

	out, err := cid.StrictDecoder.Cast(content[1:])
	if err != nil {
		return err
	}
	*c = CborCid(out)
	return nil
}

// EncodeLink encodes c as a DAG-CBOR link.
func EncodeLink(c cid.Cid) ([]byte, error) {
	return CborCid(c).MarshalCBOR()
}

// DecodeLink decodes a single DAG-CBOR link. Bytes after the link are an
// error.
func DecodeLink(data []byte) (cid.Cid, error) {
	var c CborCid
	if err := Unmarshal(data, &c); err != nil {
		return cid.Undef, err
	}
	return cid.Cid(c), nil
}

// Marshal encodes v to CBOR using Core Deterministic Encoding.
func Marshal(v any) ([]byte, error) {
	return encMode.Marshal(v)
}

// Unmarshal decodes CBOR data into v.
func Unmarshal(data []byte, v any) error {
	return decMode.Unmarshal(data, v)
}
