package commands

import (
	"bytes"

	"github.com/cab/go-osc/internal/packetdoc"
	"github.com/cab/go-osc/osc"
	"github.com/spf13/cobra"
)

func newEncodeCmd(a *app) *cobra.Command {
	var (
		inputFormat string
		hexOutput   bool
		stream      bool
	)

	cmd := &cobra.Command{
		Use:   "encode [file]",
		Short: "Encode a packet description to binary OSC",
		Long: `Encode a packet description (YAML, JSON or CBOR) read from a file or
stdin. The format is taken from --input or the file extension, YAML otherwise.

Example document:

  bundle:
    timetag: 1
    elements:
      - message:
          address: /vol
          args: ["i:3"]`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, path, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			format := inputFormat
			if format == "" {
				format = packetdoc.FormatFromPath(path, packetdoc.FormatYAML)
			}

			n, err := packetdoc.Unmarshal(data, format)
			if err != nil {
				return err
			}
			p, err := n.Packet()
			if err != nil {
				return err
			}

			out, err := a.encode(p, stream)
			if err != nil {
				return err
			}
			return writeOutput(cmd, out, hexOutput)
		},
	}

	cmd.Flags().StringVarP(&inputFormat, "input", "i", "", "Input format (yaml|json|cbor)")
	cmd.Flags().BoolVar(&hexOutput, "hex", false, "Write hex instead of raw bytes")
	cmd.Flags().BoolVar(&stream, "stream", false, "Prefix the packet with its size")

	return cmd
}

// encode serializes p with the configured codec.
func (a *app) encode(p osc.Packet, stream bool) ([]byte, error) {
	codec := a.cfg.Codec()

	var out []byte
	var err error
	if stream {
		var buf bytes.Buffer
		err = codec.WritePacket(&buf, p)
		out = buf.Bytes()
	} else {
		out, err = codec.Encode(p)
	}
	if err != nil {
		a.logCodecError("encode failed", err)
		return nil, err
	}

	a.log.Debug("encoded packet", "bytes", len(out), "stream", stream)
	return out, nil
}
