package main

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/okdcc-go/dccrx/internal/dcclog"
	"github.com/okdcc-go/dccrx/internal/monitor"
)

func newMonitorCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "monitor",
		Short: "Run the diagnostic monitor server standalone, without a live edge source",
		RunE:  runMonitor,
	}
}

func runMonitor(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := dcclog.New(cfg.LogLevel)

	reg := prometheus.NewRegistry()
	monitor.NewMetrics(reg)
	hub := monitor.NewHub()
	srv := monitor.NewServer(cfg.Monitor.ListenAddress, cfg.Monitor.MetricsPath, hub, reg)

	ctx, cancel := signalContext()
	defer cancel()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	log.Info("monitor server listening", "server", srv.String())

	select {
	case <-ctx.Done():
		return srv.Shutdown(context.Background())
	case err := <-errCh:
		return err
	}
}
