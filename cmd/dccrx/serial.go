//go:build linux

package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/okdcc-go/dccrx/internal/dcc"
	"github.com/okdcc-go/dccrx/internal/edgesource"
)

func newSerialCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serial",
		Short: "Decode DCC track packets from a serial timestamp capture device",
		RunE:  runSerial,
	}
}

func runSerial(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	rt := newRuntime(cfg)

	source, err := edgesource.OpenSerial(cfg.Serial.Device, cfg.Serial.BaudRate, rt.ring)
	if err != nil {
		return fmt.Errorf("dccrx: opening serial device: %w", err)
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

	readErr := make(chan error, 1)
	go func() {
		readErr <- source.Run()
	}()

	rt.log.Info("reading serial capture device", "device", cfg.Serial.Device, "baud", cfg.Serial.BaudRate)
	rt.log.Debug("ring buffer ready", "ring", dcc.RenderRingBuffer(rt.ring))

	go rt.drain(ctx)

	select {
	case <-ctx.Done():
	case err := <-readErr:
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("dccrx: serial read failed: %w", err)
		}
	}

	if dropped := source.Dropped(); dropped > 0 {
		rt.log.Warn("timestamps dropped", "count", dropped)
	}
	return nil
}
