package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/nullrouted/peerd/internal/bgp"
)

// loadConfigs resolves the peer configuration lines from either
// --config-file or positional arguments, one PeerConfig per line.
func loadConfigs(args []string) ([]bgp.PeerConfig, error) {
	var lines []string

	if configFile != "" {
		data, err := os.ReadFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("reading --config-file: %w", err)
		}
		for _, line := range strings.Split(string(data), "\n") {
			if strings.TrimSpace(line) != "" {
				lines = append(lines, line)
			}
		}
	} else {
		lines = args
	}

	if len(lines) == 0 {
		return nil, fmt.Errorf("no peer configuration supplied: pass a config line as an argument or via --config-file")
	}

	configs := make([]bgp.PeerConfig, 0, len(lines))
	for _, line := range lines {
		cfg, err := bgp.ParsePeerConfig(line)
		if err != nil {
			return nil, fmt.Errorf("parsing %q: %w", line, err)
		}
		configs = append(configs, cfg)
	}
	return configs, nil
}

func parseLogLevel(s string) (string, error) {
	switch strings.ToLower(s) {
	case "debug", "info", "warn", "error":
		return strings.ToLower(s), nil
	default:
		return "", fmt.Errorf("unknown log level %q", s)
	}
}
