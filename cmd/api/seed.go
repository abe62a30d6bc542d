package main

import (
	"github.com/spf13/cobra"

	"github.com/BruksfildServices01/barber-booking/internal/config"
	"github.com/BruksfildServices01/barber-booking/internal/logger"
	"github.com/BruksfildServices01/barber-booking/internal/seed"
)

func newSeedCommand(envFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Reset the catalog to the default services and barbers",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*envFile)
			if err != nil {
				return err
			}

			log, logCloser := logger.New(cfg.Log)
			defer logCloser.Close()

			if cfg.DB.Driver == config.DriverMemory {
				log.Warn("seeding in-memory storage has no lasting effect")
			}

			store, err := openStorage(cfg.DB, log)
			if err != nil {
				return err
			}
			defer store.Close()

			res, err := seed.Run(cmd.Context(), store.catalog, log)
			if err != nil {
				return err
			}

			cmd.Printf("seeded %d services and %d barbers\n", res.Services, res.Barbers)
			return nil
		},
	}
}
