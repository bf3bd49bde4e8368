//go:build !linux

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSerialCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serial",
		Short: "Decode DCC track packets from a serial timestamp capture device (Linux only)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return fmt.Errorf("dccrx: serial edge source is only available on linux")
		},
	}
}
