package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nullrouted/peerd/internal/bgp"
	"github.com/nullrouted/peerd/internal/metrics"
	"github.com/nullrouted/peerd/internal/peerlog"
	"github.com/nullrouted/peerd/internal/routesource"
	"github.com/nullrouted/peerd/internal/supervisor"
)

var runCmd = &cobra.Command{
	Use:   "run [config-line...]",
	Short: "Start the speaker and drive its peer sessions",
	RunE:  runRun,
}

func runRun(cmd *cobra.Command, args []string) error {
	level, err := parseLogLevel(logLevel)
	if err != nil {
		return err
	}
	log, err := newLogger(level)
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	defer log.Sync()

	configs, err := loadConfigs(args)
	if err != nil {
		return err
	}

	source, err := newRouteSource(routeSource)
	if err != nil {
		return err
	}

	notify := bgp.MultiNotify{peerlog.New(log), metrics.Notify{}}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if metricsListen != "" {
		go func() {
			if err := metrics.Serve(ctx, metricsListen); err != nil {
				log.Error("metrics server stopped", zap.Error(err))
			}
		}()
	}

	log.Info("starting peerd", zap.Int("peers", len(configs)))
	results := supervisor.Run(ctx, configs, source, notify)

	var failed bool
	for _, r := range results {
		if r.Err != nil {
			failed = true
			log.Error("peer session ended with error",
				zap.Uint32("remote_as", uint32(r.Config.RemoteAS)),
				zap.Error(r.Err),
			)
		}
	}
	if failed {
		return fmt.Errorf("one or more peer sessions failed")
	}
	return nil
}

func newRouteSource(name string) (bgp.RouteSource, error) {
	switch name {
	case "netlink":
		return routesource.New(), nil
	case "static":
		return bgp.StaticRouteSource{}, nil
	default:
		return nil, fmt.Errorf("unknown --route-source %q: want netlink or static", name)
	}
}
