// Package cmd contains the adlens CLI commands.
package cmd

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool

	// Version info set by main package.
	versionInfo struct {
		Version   string
		Commit    string
		BuildDate string
	}
)

var rootCmd = &cobra.Command{
	Use:   "adlens",
	Short: "Ad copy generation and grading service",
	Long: `adlens serves two JSON endpoints backed by a language-model provider:
POST /generate writes ad copy variations from a campaign brief, and
POST /inspect grades a submitted advertisement. Both sit behind a shared
Redis-backed rate limiter and response cache.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersionInfo records build identification injected from main.
func SetVersionInfo(version, commit, buildDate string) {
	versionInfo.Version = version
	versionInfo.Commit = commit
	versionInfo.BuildDate = buildDate
	rootCmd.Version = version
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path (optional)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}
