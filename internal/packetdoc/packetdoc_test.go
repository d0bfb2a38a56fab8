package packetdoc

import (
	"testing"

	"github.com/cab/go-osc/osc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePacket() osc.Packet {
	return &osc.Bundle{Timetag: 42, Elements: []osc.Packet{
		osc.NewMessage("/mixer/ch/1", osc.Int32(-7), osc.Float32(0.1), osc.String("a:b c"), osc.Blob{0xde, 0xad}),
		&osc.Bundle{Timetag: 1, Elements: []osc.Packet{
			osc.NewMessage("/empty"),
			osc.NewMessage("/blob", osc.Blob{}),
		}},
	}}
}

func TestRoundTrip(t *testing.T) {
	for _, format := range []string{FormatJSON, FormatYAML, FormatCBOR} {
		t.Run(format, func(t *testing.T) {
			want := samplePacket()

			n, err := FromPacket(want)
			require.NoError(t, err)

			data, err := Marshal(n, format)
			require.NoError(t, err)

			decoded, err := Unmarshal(data, format)
			require.NoError(t, err)
			assert.Equal(t, n, decoded)

			got, err := decoded.Packet()
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestUnmarshalYAML(t *testing.T) {
	doc := `
bundle:
  timetag: 1
  elements:
    - message:
        address: /vol
        args: ["i:3", "s:hello"]
    - message:
        address: /raw
        args: ["b:0102"]
`
	n, err := Unmarshal([]byte(doc), FormatYAML)
	require.NoError(t, err)

	p, err := n.Packet()
	require.NoError(t, err)

	want := osc.NewBundle(
		osc.NewMessage("/vol", osc.Int32(3), osc.String("hello")),
		osc.NewMessage("/raw", osc.Blob{1, 2}),
	)
	assert.Equal(t, want, p)
}

func TestParseArgument(t *testing.T) {
	tests := []struct {
		in      string
		want    osc.Argument
		wantErr bool
	}{
		{"i:3", osc.Int32(3), false},
		{"i:0x10", osc.Int32(16), false},
		{"i:-2147483648", osc.Int32(-2147483648), false},
		{"i:2147483648", nil, true},
		{"f:1.5", osc.Float32(1.5), false},
		{"f:abc", nil, true},
		{"s:", osc.String(""), false},
		{"s:with:colons", osc.String("with:colons"), false},
		{"b:cafe", osc.Blob{0xca, 0xfe}, false},
		{"b:xyz", nil, true},
		{"T:", nil, true},
		{"int:3", nil, true},
		{"nocolon", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseArgument(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			if tt.in != "i:0x10" {
				assert.Equal(t, tt.in, FormatArgument(got))
			}
		})
	}
}

func TestPacketInvalidNode(t *testing.T) {
	_, err := Node{}.Packet()
	assert.ErrorIs(t, err, ErrInvalidNode)

	_, err = Node{Message: &MessageNode{}, Bundle: &BundleNode{}}.Packet()
	assert.ErrorIs(t, err, ErrInvalidNode)

	_, err = Node{Bundle: &BundleNode{Elements: []Node{{}}}}.Packet()
	assert.ErrorIs(t, err, ErrInvalidNode)
}

func TestText(t *testing.T) {
	want := "#bundle 0x000000000000002a (2 elements)\n" +
		"  /mixer/ch/1 ,ifsb -7 0.1 \"a:b c\" blob[2]\n" +
		"  #bundle 0x0000000000000001 (2 elements)\n" +
		"    /empty ,\n" +
		"    /blob ,b blob[0]\n"
	assert.Equal(t, want, Text(samplePacket()))
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, FormatJSON, FormatFromPath("a/b.JSON", FormatYAML))
	assert.Equal(t, FormatYAML, FormatFromPath("p.yml", FormatJSON))
	assert.Equal(t, FormatCBOR, FormatFromPath("p.cbor", FormatJSON))
	assert.Equal(t, FormatYAML, FormatFromPath("-", FormatYAML))
}
