package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	logLevel      string
	metricsListen string
	routeSource   string
	configFile    string

	version = "dev"
)

var rootCmd = &cobra.Command{
	Use:   "peerd",
	Short: "A minimal BGP-4 speaker",
	Long: `peerd establishes a TCP session with one or more configured peers,
negotiates the session via the BGP finite-state machine, and advertises
IPv4 routes drawn from the host's kernel routing table.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&metricsListen, "metrics-listen", "", "address to serve Prometheus metrics on, e.g. :9179 (disabled if empty)")
	rootCmd.PersistentFlags().StringVar(&routeSource, "route-source", "netlink", "route source: netlink or static")
	rootCmd.PersistentFlags().StringVar(&configFile, "config-file", "", "read the peer configuration line from this file instead of argv")

	rootCmd.AddCommand(runCmd, validateCmd, versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
