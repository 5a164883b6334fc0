// cid-fmt inspects and re-encodes Cids.
//
//	cid-fmt prefix CID...
//	cid-fmt decode [--strict] [--validate [--min-digest N]] CID...
//	cid-fmt encode [--version auto|v0|v1] [--codec dag-pb] [--base base32] MULTIHASH-HEX...
//	cid-fmt convert [--base base32] [--upgrade] CID...
package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/spf13/pflag"

	c "github.com/contentid/go-cid"
	mbase "github.com/multiformats/go-multibase"
	"github.com/multiformats/go-multicodec"
	mh "github.com/multiformats/go-multihash"
)

const usage = `usage: cid-fmt <command> [flags] ARG...

commands:
  prefix   print the prefix of each CID
  decode   print the version, codec and multihash of each CID
  encode   build CIDs from hex encoded multihashes
  convert  re-encode CIDs in another multibase
`

var errUsage = errors.New("invalid usage")

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprint(os.Stderr, usage)
		}
		if !errors.Is(err, pflag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	if len(args) < 1 {
		return errUsage
	}
	switch args[0] {
	case "prefix":
		return prefixCmd(args[1:], out)
	case "decode":
		return decodeCmd(args[1:], out)
	case "encode":
		return encodeCmd(args[1:], out)
	case "convert":
		return convertCmd(args[1:], out)
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, args[0])
	}
}

func prefixCmd(args []string, out io.Writer) error {
	flags := pflag.NewFlagSet("prefix", pflag.ContinueOnError)
	if err := flags.Parse(args); err != nil {
		return err
	}
	for _, cid := range flags.Args() {
		p, err := prefix(cid)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s\n", p)
	}
	return nil
}

func prefix(str string) (string, error) {
	cid, err := c.Decode(str)
	if err != nil {
		return "", err
	}
	p := cid.Prefix()
	return fmt.Sprintf("cid%s-%s-%s-%d",
		p.Version,
		codecToStr(p.Codec),
		mhToStr(p.MhType),
		p.MhLength,
	), nil
}

func decodeCmd(args []string, out io.Writer) error {
	flags := pflag.NewFlagSet("decode", pflag.ContinueOnError)
	strict := flags.Bool("strict", false, "reject CIDs followed by extra bytes")
	validate := flags.Bool("validate", false, "reject insecure hash functions and short digests")
	minDigest := flags.Int("min-digest", c.DefaultHashPolicy.MinDigestLength, "shortest digest accepted by --validate")
	if err := flags.Parse(args); err != nil {
		return err
	}

	decoder := c.DefaultDecoder
	if *strict {
		decoder = c.StrictDecoder
	}
	if *validate {
		policy := c.DefaultHashPolicy
		policy.MinDigestLength = *minDigest
		decoder.Hashes = &policy
	}
	for _, str := range flags.Args() {
		cid, err := decoder.Decode(str)
		if err != nil {
			return fmt.Errorf("%s: %w", str, err)
		}
		base, err := c.ExtractEncoding(str)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s\t%s\t%s\t%s\t%s\n",
			str,
			mbase.EncodingToStr[base],
			cid.Version(),
			codecToStr(cid.Type()),
			cid.Hash().B58String(),
		)
	}
	return nil
}

func encodeCmd(args []string, out io.Writer) error {
	codec := multicodec.DagPb
	flags := pflag.NewFlagSet("encode", pflag.ContinueOnError)
	version := flags.String("version", "auto", "cid version: auto, v0 or v1")
	flags.Var(&codecValue{&codec}, "codec", "multicodec name of the content")
	baseName := flags.String("base", "base32", "multibase used for CIDv1 output")
	if err := flags.Parse(args); err != nil {
		return err
	}

	base, err := parseBase(*baseName)
	if err != nil {
		return err
	}
	if _, err := pickVersion(*version, uint64(codec), nil); err != nil {
		return err
	}

	for _, arg := range flags.Args() {
		buf, err := hex.DecodeString(arg)
		if err != nil {
			return fmt.Errorf("%s: %w", arg, err)
		}
		hash, err := mh.Cast(buf)
		if err != nil {
			return fmt.Errorf("%s: %w", arg, err)
		}

		v, err := pickVersion(*version, uint64(codec), hash)
		if err != nil {
			return err
		}
		cid, err := c.New(v, uint64(codec), hash)
		if err != nil {
			return err
		}

		var str string
		switch {
		case v == c.V0 && !flags.Changed("base"):
			str = cid.String()
		default:
			str, err = cid.StringOfBase(base)
			if err != nil {
				return err
			}
		}
		fmt.Fprintf(out, "%s\n", str)
	}
	return nil
}

// pickVersion resolves the --version flag. auto selects CIDv0 whenever
// the codec and hash allow it.
func pickVersion(name string, codec uint64, hash mh.Multihash) (c.Version, error) {
	switch name {
	case "v0", "0":
		return c.V0, nil
	case "v1", "1":
		return c.V1, nil
	case "auto":
		if codec != c.DagProtobuf {
			return c.V1, nil
		}
		if _, err := c.NewCidV0(hash); err != nil {
			return c.V1, nil
		}
		return c.V0, nil
	default:
		return 0, fmt.Errorf("%w: version %q", errUsage, name)
	}
}

func convertCmd(args []string, out io.Writer) error {
	flags := pflag.NewFlagSet("convert", pflag.ContinueOnError)
	baseName := flags.String("base", "base32", "target multibase")
	upgrade := flags.Bool("upgrade", false, "convert CIDv0 to CIDv1 when the target base is not base58btc")
	if err := flags.Parse(args); err != nil {
		return err
	}

	base, err := parseBase(*baseName)
	if err != nil {
		return err
	}

	for _, str := range flags.Args() {
		cid, err := c.Decode(str)
		if err != nil {
			return fmt.Errorf("%s: %w", str, err)
		}
		if cid.Version() == c.V0 && base != mbase.Base58BTC && *upgrade {
			cid = c.NewCidV1(cid.Type(), cid.Hash())
		}
		res, err := cid.StringOfBase(base)
		if err != nil {
			return fmt.Errorf("%s: %w", str, err)
		}
		fmt.Fprintf(out, "%s\n", res)
	}
	return nil
}

func parseBase(name string) (mbase.Encoding, error) {
	base, ok := mbase.Encodings[name]
	if !ok || base == mbase.Identity {
		names := make([]string, 0, len(mbase.Encodings))
		for n, e := range mbase.Encodings {
			if e != mbase.Identity {
				names = append(names, n)
			}
		}
		sort.Strings(names)
		return 0, fmt.Errorf("%w: %q (known: %s)", c.ErrUnknownBase, name, strings.Join(names, ", "))
	}
	return base, nil
}

// codecValue adapts multicodec.Code to pflag.Value.
type codecValue struct{ code *multicodec.Code }

func (v *codecValue) String() string {
	if v.code == nil {
		return ""
	}
	return v.code.String()
}

func (v *codecValue) Set(s string) error { return v.code.Set(s) }

func (v *codecValue) Type() string { return "codec" }

func codecToStr(num uint64) string {
	name := multicodec.Code(num).String()
	if strings.HasPrefix(name, "Code(") {
		return fmt.Sprintf("c?%d", num)
	}
	return name
}

func mhToStr(num uint64) string {
	name, ok := mh.Codes[num]
	if !ok {
		return fmt.Sprintf("h?%d", num)
	}
	return name
}
