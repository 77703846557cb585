package main

import (
	"fmt"

	"github.com/spf13/cobra"

	mongodb "github.com/guardian-ae/fleetwatch/internal/infrastructure/db/mongo"
	"github.com/guardian-ae/fleetwatch/internal/infrastructure/memory"
	"github.com/guardian-ae/fleetwatch/pkg/logger"
)

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed-registry",
		Short: "Upsert the built-in accounts into the MongoDB credential registry",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg, err := setup(ctx)
			if err != nil {
				return err
			}
			log := logger.Get()

			client, db, err := mongodb.Connect(ctx, mongodb.Config{
				URI:      cfg.Mongo.URI,
				Database: cfg.Mongo.Database,
			})
			if err != nil {
				return err
			}
			defer func() { _ = client.Disconnect(ctx) }()

			records, err := memory.HashSeed(memory.DefaultSeed, cfg.Session.BcryptCost)
			if err != nil {
				return err
			}
			n, err := mongodb.NewUserRepository(db).Seed(ctx, records)
			if err != nil {
				return fmt.Errorf("seed registry: %w", err)
			}

			log.Info().Int("accounts", len(records)).Int("written", n).Msg("credential registry seeded")
			return nil
		},
	}
}
