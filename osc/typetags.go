package osc

import (
	"encoding/binary"
	"math"
	"strconv"

	"golang.org/x/exp/constraints"
)

type TypeTag rune

const (
	TypeString  TypeTag = 's'
	TypeInt32   TypeTag = 'i'
	TypeFloat32 TypeTag = 'f'
	TypeBlob    TypeTag = 'b'
	TypeInvalid TypeTag = 0
)

// String returns the tag character, or "invalid" for TypeInvalid.
func (t TypeTag) String() string {
	if t == TypeInvalid {
		return "invalid"
	}
	return string(rune(t))
}

// Argument is a single OSC argument. It is implemented by Int32, Float32,
// String and Blob only.
type Argument interface {
	TypeTag() TypeTag
	appendPayload(b []byte) ([]byte, error)
}

type (
	// Int32 is a 32-bit big-endian two's complement integer, tag 'i'.
	Int32 int32
	// Float32 is a 32-bit big-endian IEEE 754 float, tag 'f'.
	Float32 float32
	// String is a NUL terminated OSC-string, tag 's'.
	String string
	// Blob is a size-prefixed byte array, tag 'b'.
	Blob []byte
)

var (
	_ Argument = Int32(0)
	_ Argument = Float32(0)
	_ Argument = String("")
	_ Argument = Blob(nil)
)

func (Int32) TypeTag() TypeTag   { return TypeInt32 }
func (Float32) TypeTag() TypeTag { return TypeFloat32 }
func (String) TypeTag() TypeTag  { return TypeString }
func (Blob) TypeTag() TypeTag    { return TypeBlob }

func (i Int32) appendPayload(b []byte) ([]byte, error) {
	return binary.BigEndian.AppendUint32(b, uint32(i)), nil
}

func (f Float32) appendPayload(b []byte) ([]byte, error) {
	return binary.BigEndian.AppendUint32(b, math.Float32bits(float32(f))), nil
}

func (s String) appendPayload(b []byte) ([]byte, error) {
	return appendPaddedString(b, string(s))
}

func (bl Blob) appendPayload(b []byte) ([]byte, error) {
	return appendBlob(b, bl)
}

func (i Int32) String() string   { return strconv.FormatInt(int64(i), 10) }
func (f Float32) String() string { return strconv.FormatFloat(float64(f), 'g', -1, 32) }

// AsInt32 converts any integer to an Int32 argument. Values outside the int32
// range are truncated.
func AsInt32[T constraints.Integer](i T) Int32 {
	return Int32(i)
}

// AsFloat32 converts any float to a Float32 argument.
func AsFloat32[T constraints.Float](f T) Float32 {
	return Float32(f)
}

// ToTypeTag returns the OSC TypeTag for the given argument.
// Returns TypeInvalid if the argument is nil.
func ToTypeTag(arg Argument) TypeTag {
	if arg == nil {
		return TypeInvalid
	}
	return arg.TypeTag()
}

// GetTypeTag returns the OSC type tag string, including the leading ',', for
// the given arguments.
func GetTypeTag(args []Argument) (string, error) {
	tt := make([]byte, 0, len(args)+1)
	tt = append(tt, ',')
	for i, arg := range args {
		t := ToTypeTag(arg)
		if t == TypeInvalid {
			err := newError("encode", -1, ErrUnsupportedType, "nil argument")
			err.Argument = i
			return "", err
		}
		tt = append(tt, byte(t))
	}
	return string(tt), nil
}

// decodeValue reads the payload for a single type tag from r.
func decodeValue(tag byte, r *reader) (Argument, error) {
	switch TypeTag(tag) {
	case TypeInt32:
		v, err := r.readUint32("int32")
		if err != nil {
			return nil, err
		}
		return Int32(v), nil

	case TypeFloat32:
		v, err := r.readUint32("float32")
		if err != nil {
			return nil, err
		}
		return Float32(math.Float32frombits(v)), nil

	case TypeString:
		s, err := r.readText("string")
		if err != nil {
			return nil, err
		}
		return String(s), nil

	case TypeBlob:
		bl, err := r.readBlob()
		if err != nil {
			return nil, err
		}
		return Blob(bl), nil

	default:
		return nil, r.fail(ErrUnsupportedType, "type tag "+strconv.QuoteRune(rune(tag)))
	}
}
