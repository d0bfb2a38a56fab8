// Command osctool encodes and decodes Open Sound Control packets.
//
// Usage:
//
//	osctool <command> [flags]
//
// Commands:
//
//	decode   Decode binary OSC packets and print them as text, JSON, YAML or CBOR
//	encode   Encode a YAML, JSON or CBOR packet description to binary OSC
//	msg      Encode a single message from command-line arguments
//	version  Print version information
package main

import (
	"fmt"
	"os"

	"github.com/cab/go-osc/cmd/osctool/commands"
)

// Build-time variables injected via ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.Version = version
	commands.Commit = commit
	commands.Date = date

	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
