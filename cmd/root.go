package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tbruckner/dMQ/cmd/perf"
	"github.com/tbruckner/dMQ/cmd/send"
	"github.com/tbruckner/dMQ/cmd/util"
)

const (
	Version = "0.3.1"
)

var (

	// RootCmd represents the base command when called without any subcommands
	RootCmd = &cobra.Command{
		Use:   "dmq",
		Short: "message-broker cluster client",
		Long: fmt.Sprintf(`dMQ (v%s)

A client-side transport layer for a distributed message-broker cluster,
with connection pooling, round-robin endpoint selection, request signing
and failover across endpoints.`, Version),
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of dMQ",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("dMQ v%s\n", Version)
		},
	}
)

func init() {
	// Add Commands
	RootCmd.AddCommand(send.SendCmd)
	RootCmd.AddCommand(perf.PerfCmd)
	RootCmd.AddCommand(versionCmd)

	// Add Flags
	key := "codec"
	RootCmd.PersistentFlags().String(key, "json", util.WrapString("codec to use (json, gob)"))
	util.SetupClientFlags(RootCmd)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
