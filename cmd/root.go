package cmd

import (
	"fmt"
	"os"

	"github.com/ValentinKolb/pMap/cmd/freq"
	"github.com/ValentinKolb/pMap/cmd/perf"
	"github.com/ValentinKolb/pMap/cmd/topo"
	"github.com/ValentinKolb/pMap/cmd/util"
	"github.com/spf13/cobra"
)

const (
	Version = "1.0.0"
)

var (

	// RootCmd represents the base command when called without any subcommands
	RootCmd = &cobra.Command{
		Use:   "pmap",
		Short: "priority map toolkit",
		Long: fmt.Sprintf(`pMap (v%s)

A priority map library for Go: keys mapped to numeric priorities with
constant-time access to the extreme value, plus tools built on top of it.`, Version),
	}
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of pMap",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("pMap v%s\n", Version)
		},
	}
)

func init() {
	// Add Commands
	RootCmd.AddCommand(perf.PerfCmd)
	RootCmd.AddCommand(freq.FreqCmd)
	RootCmd.AddCommand(topo.TopoCmd)
	RootCmd.AddCommand(versionCmd)

	// Add Flags
	key := "engine"
	RootCmd.PersistentFlags().String(key, "bucketlist", util.WrapString("map engine to use (bucketlist, mapheap)"))
	key = "order"
	RootCmd.PersistentFlags().String(key, "max", util.WrapString("ordering of priorities (max, min)"))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
