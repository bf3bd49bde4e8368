//go:build linux

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/okdcc-go/dccrx/internal/dcc"
	"github.com/okdcc-go/dccrx/internal/edgesource"
)

func newGPIOCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "gpio",
		Short: "Decode DCC track packets from a GPIO line's edges",
		RunE:  runGPIO,
	}
}

func runGPIO(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	rt := newRuntime(cfg)

	source, err := edgesource.OpenGPIO(cfg.GPIO.Chip, cfg.GPIO.Line, rt.ring)
	if err != nil {
		return fmt.Errorf("dccrx: opening gpio: %w", err)
	}
	defer source.Close()

	ctx, cancel := signalContext()
	defer cancel()

	if rt.monitor != nil {
		go func() {
			if err := rt.monitor.ListenAndServe(); err != nil {
				rt.log.Warn("monitor server stopped", "error", err)
			}
		}()
	}

	rt.log.Info("watching gpio line", "chip", cfg.GPIO.Chip, "line", cfg.GPIO.Line)
	rt.log.Debug("ring buffer ready", "ring", dcc.RenderRingBuffer(rt.ring))
	rt.drain(ctx)

	if dropped := source.Dropped(); dropped > 0 {
		rt.log.Warn("edges dropped", "count", dropped)
	}
	return nil
}
