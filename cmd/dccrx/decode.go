package main

import (
	"bufio"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/okdcc-go/dccrx/internal/dcc"
	"github.com/okdcc-go/dccrx/internal/dcclog"
)

func newDecodeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "decode",
		Short: "Decode a newline-separated stream of edge-microsecond timestamps from stdin",
		RunE:  runDecode,
	}
}

func runDecode(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := dcclog.New(cfg.LogLevel)
	hooks := dcclog.Hooks{Log: log}
	decoder := dcc.NewDecoder(dcc.WithErrorHook(hooks), dcc.WithDebugHook(hooks), dcc.WithFLMode(cfg.FLMode))

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		us, err := strconv.ParseUint(line, 10, 32)
		if err != nil {
			log.Warn("skipping unparsable line", "line", line, "error", err)
			continue
		}
		status, packet := decoder.Decode(dcc.Timestamp(us))
		if status == dcc.StatusSuccess {
			fmt.Fprintln(cmd.OutOrStdout(), dcc.RenderPacket(packet))
		}
	}
	return scanner.Err()
}
