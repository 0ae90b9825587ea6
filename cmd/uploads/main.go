package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "uploads",
		Short: "Multipart file upload demo service",
		Long: `uploads serves three equivalent multipart upload endpoints:

  POST /           streaming transfer (409 on failure)
  POST /completed  fully buffered upload (400 on failure)
  POST /bytes      raw bytes with a separate fileName field (400 on failure)

Uploaded files are written to a path equal to the client-supplied name.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		serveCmd(),
		sendCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
