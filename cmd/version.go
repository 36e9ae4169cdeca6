package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/hsinyuc/talentsift/internal/scoring"
)

// version is injected at build time via -ldflags.
var version = "unknown"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version and scoring configuration generation",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Printf("%s version: %s (scoring %s, %s)\n",
			app, version, scoring.ConfigVersion, runtime.Version())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
