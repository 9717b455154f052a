package cli

import (
	"fmt"
	"runtime"

	"github.com/klauspost/cpuid/v2"
	"github.com/spf13/cobra"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "neuralnet %s (%s, %s/%s, %d physical cores)\n",
				Version, runtime.Version(), runtime.GOOS, runtime.GOARCH, cpuid.CPU.PhysicalCores)
		},
	}
}
