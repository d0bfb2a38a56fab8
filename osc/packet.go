package osc

import (
	"encoding"
	"fmt"
)

const (
	// DefaultMaxDepth is the bundle nesting limit used when Codec.MaxDepth is
	// zero. The top-level bundle counts as level 1.
	DefaultMaxDepth = 32
	// DefaultMaxPacketSize bounds the size prefix accepted by ReadPacket when
	// Codec.MaxPacketSize is zero.
	DefaultMaxPacketSize = 1 << 20
)

// Packet is the interface for Message and Bundle.
type Packet interface {
	encoding.BinaryMarshaler
	appendPacket(b []byte, depth, maxDepth int) ([]byte, error)
}

// Codec encodes and decodes OSC packets. The zero value is ready to use and
// applies the package defaults. A Codec holds no state, so a single value may
// be shared between goroutines.
type Codec struct {
	// MaxDepth limits bundle nesting on encode and decode.
	MaxDepth int
	// MaxPacketSize limits the packet size accepted from streams.
	MaxPacketSize int
}

func (c Codec) maxDepth() int {
	if c.MaxDepth <= 0 {
		return DefaultMaxDepth
	}
	return c.MaxDepth
}

func (c Codec) maxPacketSize() int {
	if c.MaxPacketSize <= 0 {
		return DefaultMaxPacketSize
	}
	return c.MaxPacketSize
}

// Encode serializes p.
func (c Codec) Encode(p Packet) ([]byte, error) {
	return c.Append(nil, p)
}

// Append appends the serialized p to b.
func (c Codec) Append(b []byte, p Packet) ([]byte, error) {
	return appendElement(b, p, 0, c.maxDepth())
}

// Decode parses a single top-level packet from data. The returned packet does
// not reference data.
func (c Codec) Decode(data []byte) (Packet, error) {
	return decodePacket(newReader(data, 0), 1, c.maxDepth())
}

// EncodePacket serializes p with the default Codec.
func EncodePacket(p Packet) ([]byte, error) {
	return Codec{}.Encode(p)
}

// ParsePacket parses the given data and returns either a *Message or a
// *Bundle, using the default Codec.
func ParsePacket(data []byte) (Packet, error) {
	return Codec{}.Decode(data)
}

// appendElement encodes p as a packet nested inside a bundle at level depth.
func appendElement(b []byte, p Packet, depth, maxDepth int) ([]byte, error) {
	switch t := p.(type) {
	case *Message:
		if t == nil {
			break
		}
		return t.appendPacket(b, depth+1, maxDepth)
	case *Bundle:
		if t == nil {
			break
		}
		return t.appendPacket(b, depth+1, maxDepth)
	}
	return b, newError("encode", -1, ErrUnsupportedType, fmt.Sprintf("packet %T", p))
}

// isBundle reports whether data starts with the bundle marker. This is the
// only place a message is told apart from a bundle, so a message whose address
// is "#bundle" is read as a bundle.
func isBundle(data []byte) bool {
	return len(data) >= len(bundleMarker) && string(data[:len(bundleMarker)]) == bundleMarker
}

// decodePacket decodes the packet held by r, which would be a bundle at level
// depth.
func decodePacket(r *reader, depth, maxDepth int) (Packet, error) {
	if isBundle(r.data[r.pos:]) {
		b := &Bundle{}
		if err := b.decode(r, depth, maxDepth); err != nil {
			return nil, err
		}
		return b, nil
	}

	m := &Message{}
	if err := m.decode(r); err != nil {
		return nil, err
	}
	return m, nil
}
