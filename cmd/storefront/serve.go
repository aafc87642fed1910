package main

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"time"

	cartapp "github.com/dwikikusuma/storefront/internal/cart/app"
	cartgrpc "github.com/dwikikusuma/storefront/internal/cart/grpc"
	cartadapter "github.com/dwikikusuma/storefront/internal/cart/infra/adapter"
	cartmemory "github.com/dwikikusuma/storefront/internal/cart/infra/memory"
	cartpg "github.com/dwikikusuma/storefront/internal/cart/infra/postgres"
	cartredis "github.com/dwikikusuma/storefront/internal/cart/infra/redis"

	catalogapp "github.com/dwikikusuma/storefront/internal/catalog/app"
	cgrpc "github.com/dwikikusuma/storefront/internal/catalog/grpc"
	catalogmemory "github.com/dwikikusuma/storefront/internal/catalog/infra/memory"
	cpg "github.com/dwikikusuma/storefront/internal/catalog/infra/postgres"

	checkoutapp "github.com/dwikikusuma/storefront/internal/checkout/app"
	checkoutgrpc "github.com/dwikikusuma/storefront/internal/checkout/grpc"
	checkoutadapter "github.com/dwikikusuma/storefront/internal/checkout/infra/adapter"
	checkoutamqp "github.com/dwikikusuma/storefront/internal/checkout/infra/amqp"
	"github.com/dwikikusuma/storefront/internal/checkout/infra/whatsapp"

	orderapp "github.com/dwikikusuma/storefront/internal/order/app"
	ordergrpc "github.com/dwikikusuma/storefront/internal/order/grpc"
	ordermemory "github.com/dwikikusuma/storefront/internal/order/infra/memory"
	orderpg "github.com/dwikikusuma/storefront/internal/order/infra/postgres"

	"github.com/dwikikusuma/storefront/pkg/config"
	"github.com/dwikikusuma/storefront/pkg/postgres"
	"github.com/dwikikusuma/storefront/pkg/redis"
	"github.com/dwikikusuma/storefront/pkg/shutdown"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
	"google.golang.org/grpc"
)

type serveOptions struct {
	memory  bool
	migrate bool
}

func serveCmd(rt *runtime) *cobra.Command {
	var opts serveOptions
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the storefront gRPC services",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), rt, opts)
		},
	}
	cmd.Flags().BoolVar(&opts.memory, "memory", false, "keep catalog, carts and orders in memory instead of Postgres/Redis")
	cmd.Flags().BoolVar(&opts.migrate, "migrate", false, "apply the Postgres schema before serving")
	return cmd
}

func serve(parent context.Context, rt *runtime, opts serveOptions) error {
	cfg, log := rt.cfg, rt.log

	ctx, cancel := shutdown.WithSignals(parent)
	defer cancel()

	var closers []func() error
	defer func() {
		for i := len(closers) - 1; i >= 0; i-- {
			_ = closers[i]()
		}
	}()

	// Storage
	var (
		productRepo interface {
			catalogapp.ProductRepo
			catalogapp.CategoryRepo
		}
		cartRepo  cartapp.CartRepo
		orderRepo orderapp.OrderRepo
		db        *sql.DB
	)
	if opts.memory {
		productRepo = catalogmemory.NewProductRepo(catalogmemory.SeedCategories)
		cartRepo = cartmemory.NewCartRepo()
		orderRepo = ordermemory.NewOrderRepo()
		log.Warn("serving from memory, data is lost on restart")
	} else {
		var err error
		db, err = postgres.Open(ctx, postgres.Config{DSN: cfg.PostgresDSN, MaxOpenConns: 20, ConnMaxLifetime: 30 * time.Minute})
		if err != nil {
			return err
		}
		closers = append(closers, db.Close)
		if opts.migrate {
			if err := migrate(ctx, db, log); err != nil {
				return err
			}
		}
		productRepo = cpg.NewProductRepo(db)
		orderRepo = orderpg.NewOrderRepo(db)

		cartRepo, err = openCartRepo(ctx, cfg, db, &closers)
		if err != nil {
			return err
		}
	}

	// Catalog
	catalogSvc := catalogapp.NewService(productRepo, productRepo, cfg.Currency)

	// Cart
	cartSvc := cartapp.NewService(cartRepo, cartadapter.NewCatalogServiceReader(catalogSvc))

	// Orders
	orderSvc := orderapp.NewService(orderRepo)

	// Checkout (adapters)
	channel, err := openChannel(cfg, &closers)
	if err != nil {
		return err
	}
	locale, err := language.Parse(cfg.Locale)
	if err != nil {
		return fmt.Errorf("parse LOCALE: %w", err)
	}
	checkoutSvc := checkoutapp.NewService(
		checkoutadapter.NewCartServiceAccess(cartSvc),
		channel,
		checkoutapp.NewFormatter(locale),
		log,
	)
	checkoutSvc.Orders = checkoutadapter.NewOrderServiceLog(orderSvc)

	addr := fmt.Sprintf(":%d", cfg.GRPCPort)
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}

	grpcServer := grpc.NewServer(grpc.ChainUnaryInterceptor(unaryLogger(log)))
	cgrpc.NewServer(catalogSvc, cfg.CatalogPageSize, log).Register(grpcServer)
	cartgrpc.NewServer(cartSvc, log).Register(grpcServer)
	checkoutgrpc.NewServer(checkoutSvc, log).Register(grpcServer)
	ordergrpc.NewServer(orderSvc, log).Register(grpcServer)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("grpc starting", zap.String("addr", addr), zap.String("checkout_channel", channel.Name()))
		if err := grpcServer.Serve(lis); err != nil {
			return fmt.Errorf("grpc serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutdown requested")
		gracefulStop(grpcServer, 10*time.Second, log)
		return nil
	})

	err = g.Wait()
	log.Info("bye")
	return err
}

func openCartRepo(ctx context.Context, cfg config.Config, db *sql.DB, closers *[]func() error) (cartapp.CartRepo, error) {
	if cfg.RedisAddr == "" {
		return cartpg.NewCartRepo(db), nil
	}
	rdb, err := redis.Open(ctx, redis.Config{Addr: cfg.RedisAddr})
	if err != nil {
		return nil, err
	}
	*closers = append(*closers, rdb.Close)
	return cartredis.NewCartRepo(rdb, cfg.CartTTL), nil
}

func openChannel(cfg config.Config, closers *[]func() error) (checkoutapp.Channel, error) {
	switch cfg.CheckoutChannel {
	case config.ChannelAMQP:
		conn, err := amqp.Dial(cfg.RabbitMQURI)
		if err != nil {
			return nil, fmt.Errorf("dial rabbitmq: %w", err)
		}
		*closers = append(*closers, conn.Close)

		ch, err := conn.Channel()
		if err != nil {
			return nil, fmt.Errorf("open rabbitmq channel: %w", err)
		}
		*closers = append(*closers, ch.Close)

		if err := checkoutamqp.DeclareQueue(ch, cfg.RabbitMQQueue); err != nil {
			return nil, err
		}
		return checkoutamqp.NewChannel(ch, cfg.RabbitMQQueue)
	default:
		return whatsapp.NewChannel(cfg.WhatsAppPhone)
	}
}

func gracefulStop(s *grpc.Server, timeout time.Duration, log *zap.Logger) {
	stopped := make(chan struct{})
	go func() {
		s.GracefulStop()
		close(stopped)
	}()

	select {
	case <-time.After(timeout):
		log.Warn("graceful stop timeout, forcing stop")
		s.Stop()
	case <-stopped:
	}
}
