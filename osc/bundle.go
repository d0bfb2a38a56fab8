package osc

import (
	"encoding/binary"
	"fmt"
	"strconv"
	"time"
)

const (
	bundleTagString = "#bundle"
	// bundleMarker is the OSC-string "#bundle" as it appears on the wire.
	bundleMarker = bundleTagString + "\x00"
	// bundleHeaderSize is the marker plus the time tag.
	bundleHeaderSize = len(bundleMarker) + bit64Size
)

// Bundle represents an OSC bundle. It consists of the OSC-string "#bundle"
// followed by an OSC Time Tag, followed by zero or more OSC bundle/message
// elements. The OSC-timetag is a 64-bit fixed point time tag. See
// http://opensoundcontrol.org/spec-1_0.html for more information.
type Bundle struct {
	Timetag  Timetag
	Elements []Packet
}

// Verify that Bundle implements the Packet interface.
var _ Packet = (*Bundle)(nil)

// NewBundle returns a Bundle to be processed immediately, holding the given
// elements.
func NewBundle(elems ...Packet) *Bundle {
	return &Bundle{Timetag: NewImmediateTimetag(), Elements: elems}
}

// NewBundleWithTime returns an empty OSC Bundle with a time tag for t.
func NewBundleWithTime(t time.Time) *Bundle {
	return &Bundle{Timetag: NewTimetagFromTime(t)}
}

// Append appends an OSC bundle or OSC message to the bundle.
func (b *Bundle) Append(pck Packet) error {
	switch t := pck.(type) {
	default:
		return newError("append", -1, ErrUnsupportedType, fmt.Sprintf("%T is not a *Message or *Bundle", pck))

	case *Bundle:
		if t == nil {
			return newError("append", -1, ErrUnsupportedType, "nil *Bundle")
		}
	case *Message:
		if t == nil {
			return newError("append", -1, ErrUnsupportedType, "nil *Message")
		}
	}

	b.Elements = append(b.Elements, pck)
	return nil
}

// Equals reports whether o has the same time tag and equal elements, compared
// with Message.Equals and Bundle.Equals.
func (b *Bundle) Equals(o *Bundle) bool {
	if b == nil || o == nil {
		return b == o
	}
	if b.Timetag != o.Timetag || len(b.Elements) != len(o.Elements) {
		return false
	}
	for i, e := range b.Elements {
		if !PacketsEqual(e, o.Elements[i]) {
			return false
		}
	}
	return true
}

// PacketsEqual reports whether a and b are the same kind of packet with equal
// contents.
func PacketsEqual(a, b Packet) bool {
	switch a := a.(type) {
	case *Message:
		o, ok := b.(*Message)
		return ok && a.Equals(o)
	case *Bundle:
		o, ok := b.(*Bundle)
		return ok && a.Equals(o)
	}
	return a == nil && b == nil
}

// MarshalBinary serializes the OSC bundle to a byte array with the following
// format:
// 1. Bundle string: '#bundle'
// 2. OSC timetag
// 3. Length of first OSC bundle element
// 4. First bundle element
// 5. Length of n OSC bundle element
// 6. n bundle element
func (b *Bundle) MarshalBinary() ([]byte, error) {
	return b.AppendBinary(nil)
}

// AppendBinary appends the encoded bundle to buf, nesting at most
// DefaultMaxDepth levels.
func (b *Bundle) AppendBinary(buf []byte) ([]byte, error) {
	return b.appendPacket(buf, 1, DefaultMaxDepth)
}

func (b *Bundle) appendPacket(buf []byte, depth, maxDepth int) ([]byte, error) {
	if depth > maxDepth {
		return buf, newError("encode", -1, ErrMaxDepthExceeded, "limit "+strconv.Itoa(maxDepth))
	}

	buf = append(buf, bundleMarker...)
	buf = binary.BigEndian.AppendUint64(buf, uint64(b.Timetag))

	for i, elem := range b.Elements {
		if elem == nil {
			return buf, withElement(newError("encode", -1, ErrUnsupportedType, "nil element"), i)
		}

		// Reserve the size of the element and fill it in once it is known.
		sizeAt := len(buf)
		buf = append(buf, 0, 0, 0, 0)

		var err error
		if buf, err = appendElement(buf, elem, depth, maxDepth); err != nil {
			return buf, withElement(err, i)
		}
		size := len(buf) - sizeAt - bit32Size
		if err = checkSize(uint64(size), "element"); err != nil {
			return buf, withElement(err, i)
		}
		binary.BigEndian.PutUint32(buf[sizeAt:], uint32(size))
	}

	return buf, nil
}

// NewBundleFromData returns a new OSC bundle created from the parsed data.
func NewBundleFromData(data []byte) (*Bundle, error) {
	b := &Bundle{}
	if err := b.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	return b, nil
}

// UnmarshalBinary implements the encoding.BinaryUnmarshaler interface. Nested
// bundles are limited to DefaultMaxDepth levels; use Codec for another limit.
func (b *Bundle) UnmarshalBinary(data []byte) error {
	return b.decode(newReader(data, 0), 1, DefaultMaxDepth)
}

// decode reads a bundle at nesting level depth, where the top-level bundle is
// level 1.
func (b *Bundle) decode(r *reader, depth, maxDepth int) error {
	if depth > maxDepth {
		return r.fail(ErrMaxDepthExceeded, "limit "+strconv.Itoa(maxDepth))
	}

	// Read the '#bundle' OSC string
	marker, err := r.next(len(bundleMarker), "bundle marker")
	if err != nil {
		return err
	}
	if string(marker) != bundleMarker {
		return newError("decode", r.offset()-len(marker), ErrInvalidBundleMarker, strconv.Quote(string(marker)))
	}

	tt, err := r.readUint64("time tag")
	if err != nil {
		return err
	}
	var elems []Packet

	// Read until the end of the buffer
	for i := 0; r.remaining() > 0; i++ {
		// Read the size of the bundle element
		length, err := r.readUint32("element size")
		if err != nil {
			return withElement(err, i)
		}
		if uint64(length) > uint64(r.remaining()) {
			return withElement(r.fail(ErrUnexpectedEOF, fmt.Sprintf("element size %d exceeds remaining %d", length, r.remaining())), i)
		}

		sub := newReader(r.data[r.pos:r.pos+int(length)], r.offset())
		r.pos += int(length)

		p, err := decodePacket(sub, depth+1, maxDepth)
		if err != nil {
			return withElement(err, i)
		}
		elems = append(elems, p)
	}

	b.Timetag = Timetag(tt)
	b.Elements = elems
	return nil
}
