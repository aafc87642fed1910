package main

import (
	"github.com/dwikikusuma/storefront/pkg/config"
	"github.com/dwikikusuma/storefront/pkg/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type runtime struct {
	cfg config.Config
	log *zap.Logger
}

func newRootCmd() *cobra.Command {
	rt := &runtime{}

	root := &cobra.Command{
		Use:           "storefront",
		Short:         "Catalog, cart, checkout and order gRPC services",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log, err := logger.New(logger.Options{Service: "storefront", Env: cfg.AppEnv, Level: cfg.LogLevel, AddSource: true})
			if err != nil {
				return err
			}
			rt.cfg = cfg
			rt.log = log
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if rt.log != nil {
				_ = rt.log.Sync()
			}
		},
	}

	root.AddCommand(serveCmd(rt), migrateCmd(rt))
	return root
}
