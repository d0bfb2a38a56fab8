package packetdoc

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/cab/go-osc/osc"
	"github.com/fxamacker/cbor/v2"
	"gopkg.in/yaml.v3"
)

// Supported document formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatCBOR = "cbor"
)

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error

	encMode, err = cbor.EncOptions{
		Sort:        cbor.SortCanonical,
		IndefLength: cbor.IndefLengthForbidden,
	}.EncMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create CBOR encoder mode: %v", err))
	}

	decMode, err = cbor.DecOptions{
		DupMapKey: cbor.DupMapKeyEnforcedAPF,
	}.DecMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create CBOR decoder mode: %v", err))
	}
}

// FormatFromPath guesses the document format from a file extension, falling
// back to def.
func FormatFromPath(path, def string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	case ".cbor":
		return FormatCBOR
	default:
		return def
	}
}

// Marshal writes n in the given format.
func Marshal(n Node, format string) ([]byte, error) {
	switch format {
	case FormatJSON:
		b, err := json.MarshalIndent(n, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(b, '\n'), nil
	case FormatYAML:
		return yaml.Marshal(n)
	case FormatCBOR:
		return encMode.Marshal(n)
	case FormatText:
		p, err := n.Packet()
		if err != nil {
			return nil, err
		}
		return []byte(Text(p)), nil
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}

// Unmarshal reads a document in the given format. Text is write-only.
func Unmarshal(data []byte, format string) (Node, error) {
	var n Node
	var err error
	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, &n)
	case FormatYAML:
		err = yaml.Unmarshal(data, &n)
	case FormatCBOR:
		err = decMode.Unmarshal(data, &n)
	default:
		return n, fmt.Errorf("cannot read format %q", format)
	}
	if err != nil {
		return n, fmt.Errorf("parse %s document: %w", format, err)
	}
	return n, nil
}

// Text renders p as an indented tree, one packet per line.
func Text(p osc.Packet) string {
	var sb strings.Builder
	writeText(&sb, p, 0)
	return sb.String()
}

func writeText(sb *strings.Builder, p osc.Packet, indent int) {
	sb.WriteString(strings.Repeat("  ", indent))
	switch p := p.(type) {
	case *osc.Message:
		sb.WriteString(p.String())
		sb.WriteByte('\n')
	case *osc.Bundle:
		fmt.Fprintf(sb, "#bundle 0x%016x (%d elements)\n", p.Timetag.TimeTag(), len(p.Elements))
		for _, e := range p.Elements {
			writeText(sb, e, indent+1)
		}
	}
}
