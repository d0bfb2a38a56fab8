package osc

import (
	"encoding/binary"
	"time"
)

const (
	// ImmediateTimetag is the special time tag meaning "immediately": 63 zero
	// bits followed by a one in the least significant bit.
	ImmediateTimetag = Timetag(1)

	secondsFrom1900To1970 = 2208988800
	nanosPerSecond        = 1e9
)

// Timetag represents an OSC Time Tag.
// An OSC Time Tag is defined as follows:
// Time tags are represented by a 64 bit fixed point number. The first 32 bits
// specify the number of seconds since midnight on January 1, 1900, and the
// last 32 bits specify fractional parts of a second to a precision of about
// 200 picoseconds. This is the representation used by Internet NTP timestamps.
//
// The codec carries time tags through bundles untouched.
type Timetag uint64

// NewTimetag returns a time tag for the current time.
func NewTimetag() Timetag {
	return NewTimetagFromTime(time.Now())
}

// NewImmediateTimetag returns the time tag meaning "immediately".
func NewImmediateTimetag() Timetag {
	return ImmediateTimetag
}

// NewTimetagFromTime returns a new OSC time tag object from a time.Time.
func NewTimetagFromTime(timeStamp time.Time) Timetag {
	return Timetag(timeToTimetag(timeStamp))
}

// NewTimetagFromParts builds a time tag from its seconds and fraction halves.
func NewTimetagFromParts(seconds, fraction uint32) Timetag {
	return Timetag(uint64(seconds)<<32 | uint64(fraction))
}

// Time returns the time.
func (t Timetag) Time() time.Time {
	return timetagToTime(t)
}

// FractionalSecond returns the last 32 bits of the OSC time tag. Specifies the
// fractional part of a second.
func (t Timetag) FractionalSecond() uint32 {
	return uint32(t)
}

// SecondsSinceEpoch returns the first 32 bits (the number of seconds since the
// midnight 1900) from the OSC time tag.
func (t Timetag) SecondsSinceEpoch() uint32 {
	return uint32(t >> 32)
}

// TimeTag returns the time tag value
func (t Timetag) TimeTag() uint64 {
	return uint64(t)
}

// MarshalBinary converts the OSC time tag to a byte array.
func (t Timetag) MarshalBinary() ([]byte, error) {
	return binary.BigEndian.AppendUint64(make([]byte, 0, bit64Size), uint64(t)), nil
}

// UnmarshalBinary reads an 8 byte big-endian time tag.
func (t *Timetag) UnmarshalBinary(data []byte) error {
	r := newReader(data, 0)
	v, err := r.readUint64("time tag")
	if err != nil {
		return err
	}
	if r.remaining() > 0 {
		return r.fail(ErrTrailingData, "time tag")
	}
	*t = Timetag(v)
	return nil
}

// SetTime sets the value of the OSC time tag.
func (t *Timetag) SetTime(time time.Time) {
	*t = Timetag(timeToTimetag(time))
}

// ExpiresIn calculates the number of seconds until the current time is the
// same as the value of the time tag. It returns zero if the value of the
// time tag is in the past.
func (t Timetag) ExpiresIn() time.Duration {
	if t <= ImmediateTimetag {
		return 0
	}

	d := time.Until(timetagToTime(t))
	if d <= 0 {
		return 0
	}

	return d
}

// timeToTimetag converts the given time to an OSC time tag.
func timeToTimetag(t time.Time) uint64 {
	secs := uint64(t.Unix()+secondsFrom1900To1970) << 32
	frac := uint64(t.Nanosecond()) << 32 / nanosPerSecond
	return secs | frac
}

// timetagToTime converts the given timetag to a time object.
func timetagToTime(timetag Timetag) time.Time {
	nanos := (uint64(timetag.FractionalSecond())*nanosPerSecond + 1<<31) >> 32
	return time.Unix(int64(timetag.SecondsSinceEpoch())-secondsFrom1900To1970, int64(nanos))
}
