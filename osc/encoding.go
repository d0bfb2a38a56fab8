package osc

import (
	"bytes"
	"encoding/binary"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	bit32Size = 4
	bit64Size = 8
)

////
// De/Encoding functions
////

// reader is a cursor over a byte slice. base is the offset of data within the
// top-level buffer, so errors report absolute positions.
type reader struct {
	data []byte
	pos  int
	base int
}

func newReader(data []byte, base int) *reader {
	return &reader{data: data, base: base}
}

func (r *reader) offset() int { return r.base + r.pos }

func (r *reader) remaining() int { return len(r.data) - r.pos }

func (r *reader) fail(kind error, detail string) *Error {
	return newError("decode", r.offset(), kind, detail)
}

// next returns the next n bytes and advances the cursor.
func (r *reader) next(n int, field string) ([]byte, error) {
	if n < 0 || n > r.remaining() {
		return nil, r.fail(ErrUnexpectedEOF, field+": need "+strconv.Itoa(n)+" bytes, have "+strconv.Itoa(r.remaining()))
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

func (r *reader) readUint32(field string) (uint32, error) {
	b, err := r.next(bit32Size, field)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

func (r *reader) readUint64(field string) (uint64, error) {
	b, err := r.next(bit64Size, field)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b), nil
}

// skipPadding consumes the zero bytes that align a region of n bytes to the
// next 4 byte boundary.
func (r *reader) skipPadding(n int, field string) error {
	start := r.offset()
	pad, err := r.next(padBytesNeeded(n), field+" padding")
	if err != nil {
		return err
	}
	for i, c := range pad {
		if c != 0 {
			return newError("decode", start+i, ErrMalformedPadding, field+": non-zero padding byte")
		}
	}
	return nil
}

// readPaddedString reads a NUL terminated, 4 byte aligned OSC-string. The
// terminator and padding are consumed but not returned.
func (r *reader) readPaddedString(field string) (string, error) {
	rest := r.data[r.pos:]
	pos := bytes.IndexByte(rest, 0)
	if pos == -1 {
		return "", r.fail(ErrUnexpectedEOF, field+": missing NUL terminator")
	}
	n := pos + 1 + padBytesNeeded(pos+1)
	if n > len(rest) {
		return "", r.fail(ErrUnexpectedEOF, field+": padding truncated")
	}
	for i, c := range rest[pos+1 : n] {
		if c != 0 {
			return "", newError("decode", r.offset()+pos+1+i, ErrMalformedPadding, field+": non-zero padding byte")
		}
	}
	str := string(rest[:pos])
	r.pos += n
	return str, nil
}

// readText reads an OSC-string that must hold valid UTF-8.
func (r *reader) readText(field string) (string, error) {
	start := r.offset()
	str, err := r.readPaddedString(field)
	if err != nil {
		return "", err
	}
	if !utf8.ValidString(str) {
		return "", newError("decode", start, ErrInvalidString, field+": invalid UTF-8")
	}
	return str, nil
}

// readBlob reads an OSC blob. The returned slice is a copy of the payload.
func (r *reader) readBlob() ([]byte, error) {
	// First, get the length
	l, err := r.readUint32("blob length")
	if err != nil {
		return nil, err
	}
	if uint64(l) > uint64(r.remaining()) {
		return nil, r.fail(ErrUnexpectedEOF, "blob length "+strconv.FormatUint(uint64(l), 10)+" exceeds remaining "+strconv.Itoa(r.remaining()))
	}
	data, _ := r.next(int(l), "blob")
	if err = r.skipPadding(int(l), "blob"); err != nil {
		return nil, err
	}
	return append(make([]byte, 0, len(data)), data...), nil
}

// appendPaddedString appends str as an OSC-string to b: the string bytes, a
// NUL terminator and up to three further NULs. str must be valid UTF-8.
func appendPaddedString(b []byte, str string) ([]byte, error) {
	if strings.IndexByte(str, 0) >= 0 {
		return b, newError("encode", -1, ErrInvalidString, "NUL byte in "+strconv.Quote(str))
	}
	if !utf8.ValidString(str) {
		return b, newError("encode", -1, ErrInvalidString, "invalid UTF-8 in "+strconv.Quote(str))
	}
	if err := checkSize(uint64(len(str)), "string"); err != nil {
		return b, err
	}
	b = append(b, str...)
	return appendZeros(b, 1+padBytesNeeded(len(str)+1)), nil
}

// appendBlob appends data as an OSC blob to b. If the length of data isn't
// 32-bit aligned, padding bytes will be added.
func appendBlob(b []byte, data []byte) ([]byte, error) {
	if err := checkSize(uint64(len(data)), "blob"); err != nil {
		return b, err
	}
	b = binary.BigEndian.AppendUint32(b, uint32(len(data)))
	b = append(b, data...)
	return appendZeros(b, padBytesNeeded(len(data))), nil
}

// checkSize rejects lengths that don't fit the signed 32-bit size fields of
// OSC.
func checkSize(n uint64, what string) error {
	if n > math.MaxInt32 {
		return newError("encode", -1, ErrTooLarge, what+" of "+strconv.FormatUint(n, 10)+" bytes")
	}
	return nil
}

func appendZeros(b []byte, n int) []byte {
	for i := 0; i < n; i++ {
		b = append(b, 0)
	}
	return b
}

// padBytesNeeded determines how many bytes are needed to fill up to the next 4
// byte length.
func padBytesNeeded(elementLen int) int {
	return (4 - (elementLen % 4)) % 4
}
