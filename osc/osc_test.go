package osc

import (
	"encoding/binary"
	"strings"
)

const zero = string(byte(0))

// nulls returns a string of `i` nulls.
func nulls(i int) string {
	return strings.Repeat(zero, i)
}

// be32 returns the big-endian encoding of v as a string.
func be32(v uint32) string {
	b := make([]byte, 4)
	binary.BigEndian.PutUint32(b, v)
	return string(b)
}

// makePacket creates a fake Message Packet.
func makePacket(addr string, args []string) Packet {
	msg := NewMessage(addr)
	for _, arg := range args {
		msg.Append(String(arg))
	}
	return msg
}

// nestedBundle returns depth bundles, each holding the next, with a message at
// the bottom.
func nestedBundle(depth int) *Bundle {
	var p Packet = NewMessage("/leaf", Int32(int32(depth)))
	var b *Bundle
	for i := 0; i < depth; i++ {
		b = &Bundle{Timetag: Timetag(i + 1), Elements: []Packet{p}}
		p = b
	}
	return b
}

type testCase struct {
	name    string
	obj     Packet
	raw     []byte
	wantErr bool
}

var messageTestCases = []testCase{
	{
		"vol",
		NewMessage("/vol", Int32(3)),
		[]byte("/vol" + nulls(4) + ",i" + nulls(2) + be32(3)),
		false,
	},
	{
		"no_arguments",
		NewMessage("/a"),
		[]byte("/a" + nulls(2) + "," + nulls(3)),
		false,
	},
	{
		"string",
		NewMessage("/s", String("hello")),
		[]byte("/s" + nulls(2) + ",s" + nulls(2) + "hello" + nulls(3)),
		false,
	},
	{
		"aligned_string",
		NewMessage("/abc", String("1234")),
		[]byte("/abc" + nulls(4) + ",s" + nulls(2) + "1234" + nulls(4)),
		false,
	},
	{
		"float32",
		NewMessage("/f", Float32(1)),
		[]byte("/f" + nulls(2) + ",f" + nulls(2) + be32(0x3f800000)),
		false,
	},
	{
		"negative_int32",
		NewMessage("/n", Int32(-2)),
		[]byte("/n" + nulls(2) + ",i" + nulls(2) + be32(0xfffffffe)),
		false,
	},
	{
		"blob",
		NewMessage("/b", Blob{1, 2, 3}),
		[]byte("/b" + nulls(2) + ",b" + nulls(2) + be32(3) + "\x01\x02\x03" + nulls(1)),
		false,
	},
	{
		"mixed",
		NewMessage("/audio/play", Int32(1), Float32(0.5), Blob{0xde, 0xad, 0xbe, 0xef}),
		[]byte("/audio/play" + nulls(1) + ",ifb" + nulls(4) + be32(1) + be32(0x3f000000) + be32(4) + "\xde\xad\xbe\xef"),
		false,
	},
	{
		"empty_string_and_blob",
		NewMessage("/e", String(""), Blob{}),
		[]byte("/e" + nulls(2) + ",sb" + nulls(1) + nulls(4) + be32(0)),
		false,
	},
	{
		"utf8",
		NewMessage("/ü", String("grüße")),
		[]byte("/ü" + nulls(1) + ",s" + nulls(2) + "grüße" + nulls(1)),
		false,
	},
}

var bundleHeader = "#bundle" + nulls(1)

var bundleTestCases = []testCase{
	{
		"empty_bundle",
		&Bundle{Timetag: 1},
		[]byte(bundleHeader + nulls(7) + "\x01"),
		false,
	},
	{
		"one_message",
		NewBundle(NewMessage("/a", Int32(1))),
		[]byte(bundleHeader + nulls(7) + "\x01" + be32(12) + "/a" + nulls(2) + ",i" + nulls(2) + be32(1)),
		false,
	},
	{
		"two_messages",
		&Bundle{Timetag: 0x0102030405060708, Elements: []Packet{
			NewMessage("/a", String("x")),
			NewMessage("/b"),
		}},
		[]byte(bundleHeader + "\x01\x02\x03\x04\x05\x06\x07\x08" +
			be32(12) + "/a" + nulls(2) + ",s" + nulls(2) + "x" + nulls(3) +
			be32(8) + "/b" + nulls(2) + "," + nulls(3)),
		false,
	},
	{
		"nested",
		&Bundle{Timetag: 5, Elements: []Packet{
			&Bundle{Timetag: 1, Elements: []Packet{NewMessage("/a", Int32(7))}},
			NewMessage("/b"),
		}},
		[]byte(bundleHeader + nulls(7) + "\x05" +
			be32(32) + bundleHeader + nulls(7) + "\x01" + be32(12) + "/a" + nulls(2) + ",i" + nulls(2) + be32(7) +
			be32(8) + "/b" + nulls(2) + "," + nulls(3)),
		false,
	},
}
