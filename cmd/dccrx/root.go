package main

import (
	"github.com/spf13/cobra"

	"github.com/okdcc-go/dccrx/internal/dccconfig"
)

var configPath string

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "dccrx",
		Short:         "dccrx decodes NMRA DCC track signals into typed command packets",
		SilenceErrors: false,
		SilenceUsage:  true,
	}
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a dccrx config file (YAML, TOML, or JSON)")

	cmd.AddCommand(newGPIOCommand())
	cmd.AddCommand(newSerialCommand())
	cmd.AddCommand(newDecodeCommand())
	cmd.AddCommand(newMonitorCommand())

	return cmd
}

func loadConfig() (dccconfig.Config, error) {
	return dccconfig.Load(configPath)
}
