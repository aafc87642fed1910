package main

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"

	cartmigrations "github.com/dwikikusuma/storefront/internal/cart/infra/postgres/migrations"
	catalogmigrations "github.com/dwikikusuma/storefront/internal/catalog/infra/postgres/migrations"
	ordermigrations "github.com/dwikikusuma/storefront/internal/order/infra/postgres/migrations"
	"github.com/dwikikusuma/storefront/pkg/postgres"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func migrateCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the embedded Postgres schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			db, err := postgres.Open(ctx, postgres.Config{DSN: rt.cfg.PostgresDSN})
			if err != nil {
				return err
			}
			defer db.Close()

			return migrate(ctx, db, rt.log)
		},
	}
}

// migrate applies the catalog, cart and order schemas in that order.
func migrate(ctx context.Context, db *sql.DB, log *zap.Logger) error {
	scopes := []struct {
		name string
		fsys fs.FS
	}{
		{name: "catalog", fsys: catalogmigrations.FS},
		{name: "cart", fsys: cartmigrations.FS},
		{name: "order", fsys: ordermigrations.FS},
	}
	for _, s := range scopes {
		applied, err := postgres.Migrate(ctx, db, s.name, s.fsys)
		if err != nil {
			return fmt.Errorf("migrate %s: %w", s.name, err)
		}
		log.Info("migrations applied", zap.String("scope", s.name), zap.Strings("files", applied))
	}
	return nil
}
