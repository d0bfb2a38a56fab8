package commands

import (
	"bytes"
	"fmt"
	"io"

	"github.com/cab/go-osc/internal/packetdoc"
	"github.com/cab/go-osc/osc"
	"github.com/spf13/cobra"
)

func newDecodeCmd(a *app) *cobra.Command {
	var hexInput, stream bool

	cmd := &cobra.Command{
		Use:   "decode [file]",
		Short: "Decode OSC packets",
		Long: `Decode a binary OSC packet read from a file or stdin and print it.

With --stream the input is a sequence of packets, each preceded by its size
as a 32-bit big-endian integer.`,
		Example: `  osctool decode packet.bin
  printf '2f766f6c000000002c69000000000003' | osctool decode --hex -o yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, _, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			if hexInput {
				if data, err = decodeHex(data); err != nil {
					return err
				}
			}

			codec := a.cfg.Codec()
			var packets []osc.Packet
			if stream {
				r := bytes.NewReader(data)
				for {
					p, err := codec.ReadPacket(r)
					if err == io.EOF {
						break
					}
					if err != nil {
						a.logCodecError("decode failed", err)
						return fmt.Errorf("packet %d: %w", len(packets), err)
					}
					packets = append(packets, p)
				}
			} else {
				p, err := codec.Decode(data)
				if err != nil {
					a.logCodecError("decode failed", err)
					return err
				}
				packets = append(packets, p)
			}
			a.log.Debug("decoded input", "bytes", len(data), "packets", len(packets))

			return renderPackets(cmd, packets, a.cfg.Output)
		},
	}

	cmd.Flags().StringP("output", "o", packetdoc.FormatText, "Output format (text|json|yaml|cbor)")
	cmd.Flags().BoolVar(&hexInput, "hex", false, "Input is hex encoded")
	cmd.Flags().BoolVar(&stream, "stream", false, "Input is a sequence of size-prefixed packets")

	return cmd
}

func renderPackets(cmd *cobra.Command, packets []osc.Packet, format string) error {
	w := cmd.OutOrStdout()
	for _, p := range packets {
		var out []byte
		if format == packetdoc.FormatText {
			out = []byte(packetdoc.Text(p))
		} else {
			n, err := packetdoc.FromPacket(p)
			if err != nil {
				return err
			}
			if out, err = packetdoc.Marshal(n, format); err != nil {
				return err
			}
			if format == packetdoc.FormatYAML && len(packets) > 1 {
				out = append([]byte("---\n"), out...)
			}
		}
		if _, err := w.Write(out); err != nil {
			return err
		}
	}
	return nil
}
