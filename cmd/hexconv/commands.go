package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"
	"github.com/oy3o/hexutil"
	"github.com/oy3o/hexutil/format"
	"go.uber.org/zap"
)

// value holds the bytes of whatever the user converts. Its metadata comes from
// the name and length settings.
type value struct {
	meta hexutil.Metadata
	b    []byte
}

func newValue(name string, n int) *value {
	if n > 0 {
		return &value{meta: hexutil.FixedMetadata(name, n)}
	}
	return &value{meta: hexutil.VariableMetadata(name)}
}

func (v *value) Bytes() []byte { return v.b }

func (v *value) SetBytes(b []byte) error {
	if v.meta.Fixed && len(b) != v.meta.Len {
		return hexutil.InvalidLength(len(b))
	}
	v.b = append(v.b[:0], b...)
	return nil
}

func (v *value) HexMetadata() hexutil.Metadata { return v.meta }

func runEncode(e *env, args []string) error {
	fs := e.flags("encode")
	in := fs.String("in", "", "read raw bytes from `file` instead of stdin")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var (
		data []byte
		err  error
	)
	if *in != "" {
		data, err = os.ReadFile(*in)
	} else {
		data, err = io.ReadAll(e.stdin)
	}
	if err != nil {
		return errors.Wrap(err, "read input")
	}
	e.log.Debug("encode", zap.Int("bytes", len(data)))

	if _, err := hexutil.WriteHex(e.stdout, hexutil.Bytes(data)); err != nil {
		return err
	}
	_, err = io.WriteString(e.stdout, "\n")
	return err
}

func runDecode(e *env, args []string) error {
	fs := e.flags("decode")
	n := fs.Int("len", e.cfg.Len, "expected length in `bytes` (0 for any)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("expected exactly one hex argument")
	}

	v := newValue(e.cfg.Name, *n)
	if err := hexutil.ParseString(fs.Arg(0), v); err != nil {
		return err
	}
	e.log.Debug("decode", zap.Int("bytes", len(v.b)))
	_, err := e.stdout.Write(v.b)
	return err
}

// readValue reads one value in format from from stdin.
func (e *env) readValue(from string, v *value) error {
	f, err := format.Lookup(from)
	if err != nil {
		return err
	}
	data, err := io.ReadAll(e.stdin)
	if err != nil {
		return errors.Wrap(err, "read input")
	}
	if f.HumanReadable() {
		data = bytes.TrimSpace(data)
	}
	e.log.Debug("read", zap.String("format", from), zap.Int("bytes", len(data)))
	return errors.Wrapf(f.Unmarshal(data, v), "decode %s", from)
}

func runConvert(e *env, args []string) error {
	fs := e.flags("convert")
	from := fs.String("from", e.cfg.From, "input `format`")
	to := fs.String("to", e.cfg.To, "output `format`")
	n := fs.Int("len", e.cfg.Len, "value length in `bytes` (0 for any)")
	name := fs.String("name", e.cfg.Name, "type `name` written on binary records")
	if err := fs.Parse(args); err != nil {
		return err
	}

	out, err := format.Lookup(*to)
	if err != nil {
		return err
	}
	v := newValue(*name, *n)
	if err := e.readValue(*from, v); err != nil {
		return err
	}

	data, err := out.Marshal(v)
	if err != nil {
		return errors.Wrapf(err, "encode %s", *to)
	}
	e.log.Debug("write", zap.String("format", *to), zap.Int("bytes", len(data)))
	if out.HumanReadable() {
		data = append(data, '\n')
	}
	_, err = e.stdout.Write(data)
	return err
}

type report struct {
	Name      string            `json:"name"`
	Len       int               `json:"len"`
	Fixed     bool              `json:"fixed"`
	Hex       string            `json:"hex"`
	Encodings map[string]string `json:"encodings"`
}

func runInspect(e *env, args []string) error {
	fs := e.flags("inspect")
	from := fs.String("from", e.cfg.From, "input `format`")
	n := fs.Int("len", e.cfg.Len, "value length in `bytes` (0 for any)")
	name := fs.String("name", e.cfg.Name, "type `name`")
	if err := fs.Parse(args); err != nil {
		return err
	}

	v := newValue(*name, *n)
	if err := e.readValue(*from, v); err != nil {
		return err
	}

	r := report{
		Name:      v.meta.Name,
		Len:       len(v.b),
		Fixed:     v.meta.Fixed,
		Hex:       hexutil.String(v),
		Encodings: make(map[string]string),
	}
	for _, fname := range format.Names() {
		f, err := format.Lookup(fname)
		if err != nil {
			return err
		}
		data, err := f.Marshal(v)
		if err != nil {
			return errors.Wrapf(err, "encode %s", fname)
		}
		if f.HumanReadable() {
			r.Encodings[fname] = string(data)
		} else {
			r.Encodings[fname] = hexutil.EncodeToString(data)
		}
	}

	out, err := sonic.ConfigStd.MarshalIndent(&r, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encode report")
	}
	_, err = fmt.Fprintf(e.stdout, "%s\n", out)
	return err
}

func runFormats(e *env, args []string) error {
	fs := e.flags("formats")
	if err := fs.Parse(args); err != nil {
		return err
	}
	for _, name := range format.Names() {
		if _, err := fmt.Fprintln(e.stdout, name); err != nil {
			return err
		}
	}
	return nil
}
