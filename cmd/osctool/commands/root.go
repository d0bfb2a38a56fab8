// Package commands implements the osctool CLI commands.
package commands

import (
	"errors"
	"log/slog"

	"github.com/cab/go-osc/internal/config"
	"github.com/cab/go-osc/internal/logger"
	"github.com/cab/go-osc/osc"
	"github.com/spf13/cobra"
)

var (
	// Version information injected at build time.
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// app carries the state shared by all subcommands of one invocation.
type app struct {
	cfg *config.Config
	log *slog.Logger
}

// Execute runs the root command with the process arguments.
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd returns a fresh command tree.
func NewRootCmd() *cobra.Command {
	a := &app{log: logger.Discard()}

	rootCmd := &cobra.Command{
		Use:   "osctool",
		Short: "Encode and decode Open Sound Control packets",
		Long: `osctool converts between the OSC 1.0 binary format and a readable
packet description.

Arguments are written as <tag>:<value>, for example i:3, f:0.5, s:hello or
b:deadbeef (hex blob).

Settings can also come from a YAML file (--config) or OSCTOOL_* environment
variables, e.g. OSCTOOL_MAX_DEPTH=8.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			cfg, err := config.Load(configPath, cmd.Flags())
			if err != nil {
				return err
			}
			log, err := logger.New(logger.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format}, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			a.cfg, a.log = cfg, log
			return nil
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Path to a YAML configuration file")
	pf.Int("max-depth", osc.DefaultMaxDepth, "Maximum bundle nesting depth")
	pf.Int("max-packet-size", osc.DefaultMaxPacketSize, "Maximum size of a size-prefixed packet")
	pf.String("log-level", "INFO", "Log level (DEBUG|INFO|WARN|ERROR)")
	pf.String("log-format", "text", "Log format (text|json)")

	rootCmd.AddCommand(newDecodeCmd(a))
	rootCmd.AddCommand(newEncodeCmd(a))
	rootCmd.AddCommand(newMsgCmd(a))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// logCodecError logs the position details of a codec error.
func (a *app) logCodecError(msg string, err error) {
	var oerr *osc.Error
	if !errors.As(err, &oerr) {
		a.log.Error(msg, "error", err)
		return
	}
	a.log.Error(msg,
		"error", oerr.Err,
		"offset", oerr.Offset,
		"path", oerr.Path,
		"depth", oerr.Depth(),
		"argument", oerr.Argument,
	)
}
