package osc

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strings"
)

// Message represents a single OSC message. An OSC message consists of an OSC
// address pattern and zero or more arguments.
type Message struct {
	Address   string
	Arguments []Argument
}

// Verify that Messages implements the Packet interface.
var _ Packet = (*Message)(nil)

// NewMessage returns a new Message. The address parameter is the OSC address.
func NewMessage(addr string, args ...Argument) *Message {
	return &Message{Address: addr, Arguments: args}
}

// Append appends the given arguments to the arguments list. Nil arguments are
// rejected.
func (m *Message) Append(args ...Argument) error {
	for i, a := range args {
		if a == nil {
			err := newError("append", -1, ErrUnsupportedType, "nil argument")
			err.Argument = len(m.Arguments) + i
			return err
		}
	}
	m.Arguments = append(m.Arguments, args...)
	return nil
}

// Clear removes the address and all arguments.
func (m *Message) Clear() {
	m.Address = ""
	m.Arguments = m.Arguments[:0]
}

// Equals returns true if the given OSC Message `o` has the same address and
// arguments as m. Arguments compare by value: a nil and an empty blob are
// equal, and floats compare by their bit pattern so equal NaNs match.
func (m *Message) Equals(o *Message) bool {
	if m == nil || o == nil {
		return m == o
	}
	if m.Address != o.Address || len(m.Arguments) != len(o.Arguments) {
		return false
	}
	for i, a := range m.Arguments {
		if !argumentsEqual(a, o.Arguments[i]) {
			return false
		}
	}
	return true
}

func argumentsEqual(a, b Argument) bool {
	switch a := a.(type) {
	case Int32:
		v, ok := b.(Int32)
		return ok && a == v
	case Float32:
		v, ok := b.(Float32)
		return ok && math.Float32bits(float32(a)) == math.Float32bits(float32(v))
	case String:
		v, ok := b.(String)
		return ok && a == v
	case Blob:
		v, ok := b.(Blob)
		return ok && bytes.Equal(a, v)
	}
	return a == nil && b == nil
}

// TypeTags returns the type tag string.
func (m *Message) TypeTags() (string, error) {
	if m == nil {
		return "", newError("encode", -1, ErrUnsupportedType, "nil *Message")
	}
	return GetTypeTag(m.Arguments)
}

// String implements the fmt.Stringer interface.
func (m *Message) String() string {
	if m == nil {
		return ""
	}

	tags, err := m.TypeTags()
	if err != nil {
		return m.Address + " <invalid>"
	}

	var sb strings.Builder
	sb.WriteString(m.Address)
	sb.WriteByte(' ')
	sb.WriteString(tags)

	for _, arg := range m.Arguments {
		switch arg := arg.(type) {
		case Int32, Float32:
			fmt.Fprintf(&sb, " %v", arg)
		case String:
			fmt.Fprintf(&sb, " %q", string(arg))
		case Blob:
			fmt.Fprintf(&sb, " blob[%d]", len(arg))
		}
	}

	return sb.String()
}

// MarshalBinary serializes the OSC message to a byte buffer. The byte buffer
// has the following format:
// 1. OSC Address Pattern
// 2. OSC Type Tag String
// 3. OSC Arguments
func (m *Message) MarshalBinary() ([]byte, error) {
	return m.AppendBinary(nil)
}

// AppendBinary appends the encoded message to b.
func (m *Message) AppendBinary(b []byte) ([]byte, error) {
	return m.appendPacket(b, 0, DefaultMaxDepth)
}

func (m *Message) appendPacket(b []byte, _, _ int) ([]byte, error) {
	typetags, err := m.TypeTags()
	if err != nil {
		return b, err
	}

	if b, err = appendPaddedString(b, m.Address); err != nil {
		return b, err
	}
	if b, err = appendPaddedString(b, typetags); err != nil {
		return b, err
	}

	// Write the payload (OSC arguments)
	for i, arg := range m.Arguments {
		if b, err = arg.appendPayload(b); err != nil {
			return b, withArgument(err, i)
		}
	}

	return b, nil
}

// NewMessageFromData returns a new OSC message created from the parsed data.
func NewMessageFromData(data []byte) (*Message, error) {
	m := &Message{}
	if err := m.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	return m, nil
}

// UnmarshalBinary implements the encoding.BinaryUnmarshaler interface. data
// must hold exactly one message.
func (m *Message) UnmarshalBinary(data []byte) error {
	return m.decode(newReader(data, 0))
}

func (m *Message) decode(r *reader) error {
	// First, read the OSC address
	addr, err := r.readText("address")
	if err != nil {
		return err
	}

	args, err := readArguments(r)
	if err != nil {
		return err
	}

	if r.remaining() > 0 {
		return r.fail(ErrTrailingData, fmt.Sprintf("%d bytes", r.remaining()))
	}

	m.Address = addr
	m.Arguments = args
	return nil
}

// readArguments reads the type tag string and all arguments from r. It
// returns nil for a message without arguments.
func readArguments(r *reader) ([]Argument, error) {
	start := r.offset()
	typetags, err := r.readPaddedString("type tag string")
	if err != nil {
		var e *Error
		if errors.As(err, &e) && e.Err == ErrMalformedPadding {
			e.Err = ErrInvalidTypeTagString
		}
		return nil, err
	}

	// If the typetag doesn't start with ',', it's not valid
	if len(typetags) == 0 || typetags[0] != ',' {
		return nil, newError("decode", start, ErrInvalidTypeTagString, fmt.Sprintf("%q does not start with ','", typetags))
	}

	if len(typetags) == 1 {
		return nil, nil
	}

	args := make([]Argument, 0, len(typetags)-1)
	for i := 1; i < len(typetags); i++ {
		arg, err := decodeValue(typetags[i], r)
		if err != nil {
			return nil, withArgument(err, i-1)
		}
		args = append(args, arg)
	}

	return args, nil
}
