package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var envFile string

	root := &cobra.Command{
		Use:   "barberd",
		Short: "Barbershop booking API.",
		Long: `barberd serves the booking API of a single barbershop: catalog,
availability, appointments and barber absences.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "optional dotenv file loaded before the environment")

	serve := newServeCommand(&envFile)
	root.AddCommand(serve)
	root.AddCommand(newSeedCommand(&envFile))

	// Running the binary without a subcommand starts the server.
	root.RunE = serve.RunE

	return root
}
