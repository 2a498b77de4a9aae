package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	var cfgPath string
	root := &cobra.Command{
		Use:           "resume-renderer",
		Short:         "LaTeX resume renderer with instant previews",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", "", "path to config file (json or yaml)")

	serve := serveCmd(&cfgPath)
	root.AddCommand(serve, migrateCmd(&cfgPath), previewCmd(&cfgPath))
	// bare invocation starts the server
	root.RunE = serve.RunE

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
