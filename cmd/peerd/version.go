package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the peerd version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("peerd %s\n", version)
	},
}
