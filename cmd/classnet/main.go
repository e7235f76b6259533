package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kwatanabe/classnet/internal/store"
)

var (
	version = "0.1.0-dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "classnet",
		Short: "Classroom social interaction simulator",
		Long: `classnet generates synthetic classroom sessions: stochastic pairwise
interactions driven by personality, academic profile, and session
context, with social-network metrics and per-participant engagement
scoring over the result.`,
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON")
	rootCmd.PersistentFlags().String("root", ".", "Directory holding the session archive")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: info, debug, or trace")

	rootCmd.AddCommand(
		newVersionCmd(),
		newGenerateCmd(),
		newEngagementCmd(),
		newSessionsCmd(),
	)

	return rootCmd
}

// openArchive opens the session archive under root/.classnet.
func openArchive(root string) (*store.SessionStore, error) {
	return store.Open(filepath.Join(root, ".classnet"))
}
