package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/oy3o/hexutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runCLI runs the command with stdin and returns what it wrote to stdout.
func runCLI(t *testing.T, stdin string, args ...string) ([]byte, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := run(args, strings.NewReader(stdin), &stdout, &stderr)
	return stdout.Bytes(), err
}

func TestEncode(t *testing.T) {
	out, err := runCLI(t, "\x12\x34", "encode")
	require.NoError(t, err)
	assert.Equal(t, "1234\n", string(out))

	path := filepath.Join(t.TempDir(), "raw.bin")
	require.NoError(t, os.WriteFile(path, []byte{0xde, 0xad}, 0o600))
	out, err = runCLI(t, "", "encode", "-in", path)
	require.NoError(t, err)
	assert.Equal(t, "dead\n", string(out))
}

func TestDecode(t *testing.T) {
	out, err := runCLI(t, "", "decode", "-len", "2", "3412")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x34, 0x12}, out)

	_, err = runCLI(t, "", "decode", "-len", "2", "341")
	assert.ErrorIs(t, err, hexutil.ErrInvalidLength)

	_, err = runCLI(t, "", "decode", "34g2")
	assert.ErrorIs(t, err, hexutil.ErrInvalidHexCharacter)
	assert.Contains(t, err.Error(), "invalid hex character at 2")

	_, err = runCLI(t, "", "decode")
	assert.Error(t, err)
}

func TestConvert(t *testing.T) {
	out, err := runCLI(t, "3412\n", "convert", "-from", "hex", "-to", "json")
	require.NoError(t, err)
	assert.Equal(t, "\"3412\"\n", string(out))

	packed, err := runCLI(t, `"3412"`, "convert", "-from", "json", "-to", "msgpack", "-len", "2")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x92, 0x34, 0x12}, packed)

	out, err = runCLI(t, string(packed), "convert", "-from", "msgpack", "-to", "hex", "-len", "2")
	require.NoError(t, err)
	assert.Equal(t, "3412\n", string(out))
}

func TestConvertBinaryNeedsLength(t *testing.T) {
	_, err := runCLI(t, "[52,18]", "convert", "-from", "json-binary", "-to", "hex", "-name", "Key")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "the type Key does not have a known length")

	_, err = runCLI(t, "[52,18,0]", "convert", "-from", "json-binary", "-to", "hex", "-len", "2", "-name", "Key")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid length 2, expected a valid Key (2 bytes of data)")
}

func TestConvertUnknownFormat(t *testing.T) {
	_, err := runCLI(t, "00", "convert", "-to", "yaml")
	assert.Error(t, err)
}

func TestInspect(t *testing.T) {
	out, err := runCLI(t, "3412", "inspect", "-len", "2", "-name", "Key")
	require.NoError(t, err)

	var r report
	require.NoError(t, sonic.Unmarshal(out, &r))
	assert.Equal(t, "Key", r.Name)
	assert.Equal(t, 2, r.Len)
	assert.True(t, r.Fixed)
	assert.Equal(t, "3412", r.Hex)
	assert.Equal(t, `"3412"`, r.Encodings["json"])
	assert.Equal(t, hexutil.EncodeToString([]byte("[52,18]")), r.Encodings["json-binary"])
	assert.Equal(t, "3412", r.Encodings["compact"])
	assert.Equal(t, "923412", r.Encodings["msgpack"])
	assert.Len(t, r.Encodings, 6)
}

func TestFormats(t *testing.T) {
	out, err := runCLI(t, "", "formats")
	require.NoError(t, err)
	assert.Equal(t, "cbor\ncompact\nhex\njson\njson-binary\nmsgpack\n", string(out))
}

func TestCommandErrors(t *testing.T) {
	_, err := runCLI(t, "")
	assert.ErrorContains(t, err, "missing command")

	_, err = runCLI(t, "", "frobnicate")
	assert.ErrorContains(t, err, `unknown command "frobnicate"`)

	_, err = runCLI(t, "", "-config", filepath.Join(t.TempDir(), "missing.toml"), "formats")
	assert.ErrorContains(t, err, "load config")
}

func TestConfigDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hexconv.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
name = "Key"
len = 2
from = "hex"
to = "json-binary"
`), 0o600))

	out, err := runCLI(t, "3412", "-config", path, "convert")
	require.NoError(t, err)
	assert.Equal(t, "[52,18]", string(out))

	out, err = runCLI(t, "3412", "-config", path, "convert", "-to", "json")
	require.NoError(t, err)
	assert.Equal(t, "\"3412\"\n", string(out))
}

func TestLogFile(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "hexconv.log")
	path := filepath.Join(dir, "hexconv.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
log_level = "debug"
log_file = "`+filepath.ToSlash(logPath)+`"
`), 0o600))

	_, err := runCLI(t, "", "-config", path, "formats")
	require.NoError(t, err)

	logged, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(logged), "formats")
}
