package commands

import (
	"github.com/cab/go-osc/internal/packetdoc"
	"github.com/spf13/cobra"
)

func newMsgCmd(a *app) *cobra.Command {
	var hexOutput, stream bool

	cmd := &cobra.Command{
		Use:   "msg ADDRESS [ARG...]",
		Short: "Encode a single OSC message",
		Example: `  osctool msg /vol i:3 --hex
  osctool msg /synth/1 s:saw f:440 b:01ff > note.bin`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n := packetdoc.Node{Message: &packetdoc.MessageNode{Address: args[0], Args: args[1:]}}
			if len(args) == 1 {
				n.Message.Args = nil
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

	cmd.Flags().BoolVar(&hexOutput, "hex", false, "Write hex instead of raw bytes")
	cmd.Flags().BoolVar(&stream, "stream", false, "Prefix the packet with its size")

	return cmd
}
