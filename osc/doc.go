// Package osc encodes and decodes OpenSoundControl packets.
//
// This implementation is based on the Open Sound Control 1.0 Specification (http://opensoundcontrol.org/spec-1_0.html).
//
// Open Sound Control (OSC) is an open, transport-independent, message-based protocol developed for communication among computers,
// sound synthesizers, and other multimedia devices. This package only deals with the binary packet format; sending and
// receiving packets is left to the caller.
//
// Features
//
// - Supports OSC messages with the following TypeTags:
//
//	'i' (Int32)
//	'f' (Float32)
//	's' (String)
//	'b' (Blob)
//
// - Supports OSC bundles, including TimeTags, nested up to a configurable depth
//
// - Size-prefixed framing for stream transports
//
// Packets
//
// The unit of transmission of OSC is an OSC Packet.
// An OSC packet consists of its contents, a contiguous block of binary data.
// The size of an OSC packet is always 32-bit aligned.
//
// OSC packets come in two flavors:
//
// OSC Messages: An OSC message consists of an OSC address pattern and zero or more OSC arguments.
//
// OSC Bundles: An OSC Bundle consists of an OSC Timetag, followed by zero or more OSC bundle elements.
// Each bundle element can be another OSC bundle (note this recursive definition: a bundle may contain bundles) or OSC message.
//
// A packet whose first eight bytes are "#bundle\x00" is always a bundle, so "#bundle" must not be used as a message address.
//
// Usage
//
// Encoding:
//
//	msg := osc.NewMessage("/osc/address", osc.Int32(111), osc.String("hello"))
//	data, err := osc.EncodePacket(osc.NewBundle(msg))
//
// Decoding:
//
//	p, err := osc.ParsePacket(data)
//	if err != nil {
//		var oerr *osc.Error
//		if errors.As(err, &oerr) {
//			fmt.Println(oerr.Offset, oerr.Path, oerr.Argument)
//		}
//	}
//	switch p := p.(type) {
//	case *osc.Message:
//		fmt.Println(p.Address, p.Arguments)
//	case *osc.Bundle:
//		fmt.Println(p.Timetag.Time(), len(p.Elements))
//	}
package osc
