package osc

import (
	"encoding/binary"
	"errors"
	"io"
	"math"
	"strconv"
)

// Stream-oriented transports frame each OSC packet with its size as a 32-bit
// big-endian integer. These helpers apply that framing to any io.Reader or
// io.Writer.

// WritePacket writes p to w, preceded by its size, using the default Codec.
func WritePacket(w io.Writer, p Packet) error {
	return Codec{}.WritePacket(w, p)
}

// ReadPacket reads one size-prefixed packet from r using the default Codec.
func ReadPacket(r io.Reader) (Packet, error) {
	return Codec{}.ReadPacket(r)
}

// WritePacket writes p to w, preceded by its size.
func (c Codec) WritePacket(w io.Writer, p Packet) error {
	buf, err := c.Append(make([]byte, bit32Size, 64), p)
	if err != nil {
		return err
	}
	size := len(buf) - bit32Size
	if err = checkSize(uint64(size), "packet"); err != nil {
		return err
	}
	if size > c.maxPacketSize() {
		return newError("encode", -1, ErrTooLarge, "packet of "+strconv.Itoa(size)+" bytes")
	}
	binary.BigEndian.PutUint32(buf, uint32(size))
	_, err = w.Write(buf)
	return err
}

// ReadPacket reads one size-prefixed packet from r. It returns io.EOF if r is
// exhausted before the size prefix starts.
func (c Codec) ReadPacket(r io.Reader) (Packet, error) {
	var prefix [bit32Size]byte
	if _, err := io.ReadFull(r, prefix[:]); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, newError("read", -1, ErrUnexpectedEOF, "size prefix")
		}
		return nil, err
	}

	size := binary.BigEndian.Uint32(prefix[:])
	if size > math.MaxInt32 || uint64(size) > uint64(c.maxPacketSize()) {
		return nil, newError("read", -1, ErrTooLarge, "packet size "+strconv.FormatUint(uint64(size), 10))
	}

	data := make([]byte, size)
	if _, err := io.ReadFull(r, data); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, newError("read", -1, ErrUnexpectedEOF, "packet body")
		}
		return nil, err
	}

	return c.Decode(data)
}
