package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [config-line...]",
	Short: "Parse a peer configuration and print it without starting a session",
	RunE:  runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	configs, err := loadConfigs(args)
	if err != nil {
		return err
	}

	for _, cfg := range configs {
		fmt.Printf("local_as=%d local_ip=%d.%d.%d.%d remote_as=%d remote_ip=%d.%d.%d.%d mode=%s networks=%v\n",
			cfg.LocalAS,
			cfg.LocalIP[0], cfg.LocalIP[1], cfg.LocalIP[2], cfg.LocalIP[3],
			cfg.RemoteAS,
			cfg.RemoteIP[0], cfg.RemoteIP[1], cfg.RemoteIP[2], cfg.RemoteIP[3],
			cfg.Mode,
			cfg.Networks,
		)
	}
	return nil
}
