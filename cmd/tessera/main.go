package main

import (
	"os"

	"github.com/spf13/cobra"

	"tessera/internal/interfaces/cli/migrate"
	"tessera/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "tessera",
		Short: "Tessera - subscription and download entitlement engine",
		Long:  `Tessera manages subscription lifecycles and download entitlements for a digital asset marketplace.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
