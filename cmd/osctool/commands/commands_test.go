package commands

import (
	"bytes"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cab/go-osc/osc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	volHex    = "2f766f6c000000002c69000000000003"
	bundleHex = "2362756e646c65000000000000000001" + "00000010" + volHex
	nestedHex = "2362756e646c65000000000000000001" + "00000024" + bundleHex
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestMsg(t *testing.T) {
	out, err := run(t, "", "msg", "/vol", "i:3", "--hex")
	require.NoError(t, err)
	assert.Equal(t, volHex+"\n", out)

	out, err = run(t, "", "msg", "/ping")
	require.NoError(t, err)
	assert.Equal(t, "/ping\x00\x00\x00,\x00\x00\x00", out)

	out, err = run(t, "", "msg", "/vol", "i:3", "--hex", "--stream")
	require.NoError(t, err)
	assert.Equal(t, "00000010"+volHex+"\n", out)

	_, err = run(t, "", "msg", "/vol", "x:3")
	assert.Error(t, err)

	_, err = run(t, "", "msg")
	assert.Error(t, err)
}

func TestDecode(t *testing.T) {
	t.Run("text", func(t *testing.T) {
		out, err := run(t, volHex, "decode", "--hex")
		require.NoError(t, err)
		assert.Equal(t, "/vol ,i 3\n", out)
	})

	t.Run("bundle_text", func(t *testing.T) {
		out, err := run(t, bundleHex, "decode", "--hex")
		require.NoError(t, err)
		assert.Equal(t, "#bundle 0x0000000000000001 (1 elements)\n  /vol ,i 3\n", out)
	})

	t.Run("json", func(t *testing.T) {
		out, err := run(t, volHex, "decode", "--hex", "-o", "json")
		require.NoError(t, err)
		assert.JSONEq(t, `{"message":{"address":"/vol","args":["i:3"]}}`, out)
	})

	t.Run("raw_file", func(t *testing.T) {
		raw, err := hex.DecodeString(volHex)
		require.NoError(t, err)
		path := filepath.Join(t.TempDir(), "vol.bin")
		require.NoError(t, os.WriteFile(path, raw, 0o644))

		out, err := run(t, "", "decode", path)
		require.NoError(t, err)
		assert.Equal(t, "/vol ,i 3\n", out)
	})

	t.Run("stream", func(t *testing.T) {
		in := "00000010" + volHex + "00000010" + volHex
		out, err := run(t, in, "decode", "--hex", "--stream")
		require.NoError(t, err)
		assert.Equal(t, "/vol ,i 3\n/vol ,i 3\n", out)
	})

	t.Run("truncated", func(t *testing.T) {
		_, err := run(t, volHex[:len(volHex)-2], "decode", "--hex")
		assert.ErrorIs(t, err, osc.ErrUnexpectedEOF)
	})

	t.Run("invalid_utf8", func(t *testing.T) {
		_, err := run(t, "2f610000"+"2c730000"+"ff000000", "decode", "--hex", "-o", "json")
		assert.ErrorIs(t, err, osc.ErrInvalidString)
	})

	t.Run("nested_text", func(t *testing.T) {
		out, err := run(t, nestedHex, "decode", "--hex")
		require.NoError(t, err)
		assert.Equal(t, "#bundle 0x0000000000000001 (1 elements)\n  #bundle 0x0000000000000001 (1 elements)\n    /vol ,i 3\n", out)
	})

	t.Run("max_depth", func(t *testing.T) {
		_, err := run(t, nestedHex, "decode", "--hex", "--max-depth", "1")
		assert.ErrorIs(t, err, osc.ErrMaxDepthExceeded)
	})

	t.Run("bad_hex", func(t *testing.T) {
		_, err := run(t, "zz", "decode", "--hex")
		assert.Error(t, err)
	})

	t.Run("bad_output", func(t *testing.T) {
		_, err := run(t, volHex, "decode", "--hex", "-o", "xml")
		assert.Error(t, err)
	})
}

func TestEncode(t *testing.T) {
	doc := `bundle:
  timetag: 1
  elements:
    - message:
        address: /vol
        args: ["i:3"]
`
	out, err := run(t, doc, "encode", "--hex")
	require.NoError(t, err)
	assert.Equal(t, bundleHex+"\n", out)

	path := filepath.Join(t.TempDir(), "vol.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"message":{"address":"/vol","args":["i:3"]}}`), 0o644))
	out, err = run(t, "", "encode", path, "--hex")
	require.NoError(t, err)
	assert.Equal(t, volHex+"\n", out)

	_, err = run(t, "{}", "encode", "-i", "json")
	assert.Error(t, err)
}

func TestEncodeDecodeConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "osctool.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output: yaml\nmax_depth: 1\n"), 0o644))

	out, err := run(t, volHex, "decode", "--hex", "--config", path)
	require.NoError(t, err)
	assert.YAMLEq(t, "message: {address: /vol, args: [\"i:3\"]}", out)

	_, err = run(t, nestedHex, "decode", "--hex", "--config", path)
	assert.ErrorIs(t, err, osc.ErrMaxDepthExceeded)
}

func TestVersion(t *testing.T) {
	out, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "osctool dev (commit none, built unknown)\n", out)
}
