// Package packetdoc converts OSC packets to and from a document tree that can
// be written as JSON, YAML or CBOR.
//
// Arguments are written as "<tag>:<value>" strings:
//
//	i:42        Int32, decimal or 0x-prefixed
//	f:0.5       Float32
//	s:hello     String, everything after the first ':'
//	b:deadbeef  Blob, hex encoded
package packetdoc

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/cab/go-osc/osc"
)

// Node is either a message or a bundle. Exactly one field is set.
type Node struct {
	Message *MessageNode `json:"message,omitempty" yaml:"message,omitempty" cbor:"message,omitempty"`
	Bundle  *BundleNode  `json:"bundle,omitempty" yaml:"bundle,omitempty" cbor:"bundle,omitempty"`
}

type MessageNode struct {
	Address string   `json:"address" yaml:"address" cbor:"address"`
	Args    []string `json:"args,omitempty" yaml:"args,omitempty" cbor:"args,omitempty"`
}

type BundleNode struct {
	Timetag  uint64 `json:"timetag" yaml:"timetag" cbor:"timetag"`
	Elements []Node `json:"elements,omitempty" yaml:"elements,omitempty" cbor:"elements,omitempty"`
}

var ErrInvalidNode = errors.New("node must hold exactly one of message or bundle")

// FromPacket builds the document tree for p.
func FromPacket(p osc.Packet) (Node, error) {
	switch p := p.(type) {
	case *osc.Message:
		m := &MessageNode{Address: p.Address}
		for _, a := range p.Arguments {
			m.Args = append(m.Args, FormatArgument(a))
		}
		return Node{Message: m}, nil

	case *osc.Bundle:
		b := &BundleNode{Timetag: p.Timetag.TimeTag()}
		for i, e := range p.Elements {
			n, err := FromPacket(e)
			if err != nil {
				return Node{}, fmt.Errorf("element %d: %w", i, err)
			}
			b.Elements = append(b.Elements, n)
		}
		return Node{Bundle: b}, nil

	default:
		return Node{}, fmt.Errorf("unsupported packet %T", p)
	}
}

// Packet builds the OSC packet described by n.
func (n Node) Packet() (osc.Packet, error) {
	switch {
	case n.Message != nil && n.Bundle == nil:
		m := osc.NewMessage(n.Message.Address)
		for i, s := range n.Message.Args {
			a, err := ParseArgument(s)
			if err != nil {
				return nil, fmt.Errorf("%s argument %d: %w", n.Message.Address, i, err)
			}
			if err = m.Append(a); err != nil {
				return nil, err
			}
		}
		return m, nil

	case n.Bundle != nil && n.Message == nil:
		b := &osc.Bundle{Timetag: osc.Timetag(n.Bundle.Timetag)}
		for i, e := range n.Bundle.Elements {
			p, err := e.Packet()
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			if err = b.Append(p); err != nil {
				return nil, err
			}
		}
		return b, nil

	default:
		return nil, ErrInvalidNode
	}
}

// FormatArgument renders a as "<tag>:<value>".
func FormatArgument(a osc.Argument) string {
	switch a := a.(type) {
	case osc.Int32:
		return "i:" + a.String()
	case osc.Float32:
		return "f:" + a.String()
	case osc.String:
		return "s:" + string(a)
	case osc.Blob:
		return "b:" + hex.EncodeToString(a)
	default:
		return "?"
	}
}

// ParseArgument parses an argument written by FormatArgument.
func ParseArgument(s string) (osc.Argument, error) {
	tag, value, ok := strings.Cut(s, ":")
	if !ok || len(tag) != 1 {
		return nil, fmt.Errorf("argument %q: want <tag>:<value>", s)
	}

	switch osc.TypeTag(tag[0]) {
	case osc.TypeInt32:
		i, err := strconv.ParseInt(value, 0, 32)
		if err != nil {
			return nil, fmt.Errorf("argument %q: %w", s, err)
		}
		return osc.AsInt32(i), nil

	case osc.TypeFloat32:
		f, err := strconv.ParseFloat(value, 32)
		if err != nil {
			return nil, fmt.Errorf("argument %q: %w", s, err)
		}
		return osc.AsFloat32(f), nil

	case osc.TypeString:
		return osc.String(value), nil

	case osc.TypeBlob:
		b, err := hex.DecodeString(value)
		if err != nil {
			return nil, fmt.Errorf("argument %q: %w", s, err)
		}
		return osc.Blob(b), nil

	default:
		return nil, fmt.Errorf("argument %q: %w", s, osc.ErrUnsupportedType)
	}
}
