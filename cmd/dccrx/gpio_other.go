//go:build !linux

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newGPIOCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "gpio",
		Short: "Decode DCC track packets from a GPIO line's edges (Linux only)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return fmt.Errorf("dccrx: gpio edge source is only available on linux")
		},
	}
}
