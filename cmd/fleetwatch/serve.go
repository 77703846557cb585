package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/guardian-ae/fleetwatch/internal/api"
	"github.com/guardian-ae/fleetwatch/internal/api/handler"
	"github.com/guardian-ae/fleetwatch/internal/api/metrics"
	"github.com/guardian-ae/fleetwatch/internal/core/ports"
	"github.com/guardian-ae/fleetwatch/internal/core/service"
	"github.com/guardian-ae/fleetwatch/internal/infrastructure/db/influx"
	mongodb "github.com/guardian-ae/fleetwatch/internal/infrastructure/db/mongo"
	redisdb "github.com/guardian-ae/fleetwatch/internal/infrastructure/db/redis"
	"github.com/guardian-ae/fleetwatch/internal/infrastructure/memory"
	"github.com/guardian-ae/fleetwatch/internal/infrastructure/queue"
	"github.com/guardian-ae/fleetwatch/internal/pkg/config"
	"github.com/guardian-ae/fleetwatch/internal/telemetry"
	"github.com/guardian-ae/fleetwatch/pkg/logger"
)

const (
	shutdownTimeout = 15 * time.Second
	sweepInterval   = time.Minute
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg, err := setup(ctx)
			if err != nil {
				return err
			}
			return serve(ctx, cfg, logger.Get())
		},
	}
}

// backends collects the adapters chosen by the configuration, plus the
// cleanup of whatever connections were opened.
type backends struct {
	stores    ports.KeyValueStores
	users     ports.UserRepository
	notifier  ports.Notifier
	claimer   ports.TagClaimer
	history   ports.HealthHistory
	snapshots *queue.Dispatcher
	checks    map[string]handler.Check
	closers   []func()
}

func (b *backends) close() {
	for i := len(b.closers) - 1; i >= 0; i-- {
		b.closers[i]()
	}
}

func openBackends(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*backends, error) {
	b := &backends{
		stores:   memory.NewStores(),
		notifier: memory.NewLogNotifier(log),
		claimer:  memory.NewTagClaimer(),
		history:  telemetry.NewSyntheticHistory(),
		checks:   make(map[string]handler.Check),
	}

	if cfg.Session.Backend == config.BackendRedis {
		rdb, err := redisdb.Connect(ctx, redisdb.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			b.close()
			return nil, err
		}
		b.closers = append(b.closers, func() { _ = rdb.Close() })
		b.stores = redisdb.NewStores(rdb, cfg.Session.TTL)
		b.notifier = redisdb.NewNotifier(rdb)
		b.claimer = redisdb.NewTagClaimer(rdb)
		b.checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
		log.Info().Str("addr", cfg.Redis.Addr).Msg("sessions stored in redis")
	}

	switch cfg.Session.Registry {
	case config.BackendMongo:
		client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			b.close()
			return nil, err
		}
		b.closers = append(b.closers, func() {
			dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = client.Disconnect(dctx)
		})
		b.users = mongodb.NewUserRepository(db)
		b.checks["mongodb"] = func(ctx context.Context) error { return client.Ping(ctx, nil) }
		log.Info().Str("database", cfg.Mongo.Database).Msg("credential registry in mongodb")
	default:
		records, err := memory.HashSeed(memory.DefaultSeed, cfg.Session.BcryptCost)
		if err != nil {
			b.close()
			return nil, err
		}
		b.users = memory.NewUserRegistry(records)
	}

	if cfg.InfluxEnabled() {
		client, err := influx.Connect(ctx, influx.Config{
			URL:    cfg.Influx.URL,
			Token:  cfg.Influx.Token,
			Org:    cfg.Influx.Org,
			Bucket: cfg.Influx.Bucket,
		})
		if err != nil {
			b.close()
			return nil, err
		}
		b.closers = append(b.closers, client.Close)
		store := influx.NewSnapshotStore(client, cfg.Influx.Org, cfg.Influx.Bucket)
		b.history = store
		b.snapshots = queue.NewDispatcher(cfg.Telemetry.Workers, store, log)
		b.checks["influxdb"] = func(ctx context.Context) error {
			ok, err := client.Ping(ctx)
			if err == nil && !ok {
				err = errors.New("ping failed")
			}
			return err
		}
		log.Info().Str("bucket", cfg.Influx.Bucket).Msg("telemetry history in influxdb")
	}

	return b, nil
}

func serve(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	b, err := openBackends(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer b.close()

	validator := service.NewCredentialValidator(b.users, cfg.Session.LoginLatency)
	provider := service.NewAuthProvider(b.stores, validator, log)
	notifications := service.NewNotificationService(b.notifier, b.claimer, cfg.Session.NoticeWindow, log)

	deps := api.Dependencies{
		DeviceSecret: cfg.JWTSecret,
		Log:          log,
		Provider:     provider,
		Widgets: telemetry.NewFactory(telemetry.Intervals{
			Health:     cfg.Telemetry.HealthInterval,
			Connection: cfg.Telemetry.ConnectionInterval,
			Alerts:     cfg.Telemetry.AlertInterval,
		}),
		History:  b.history,
		Notifier: notifications,
		Checks:   b.checks,
	}
	if b.snapshots != nil {
		deps.Sink = b.snapshots
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           api.NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("addr", srv.Addr).Str("env", cfg.Env).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		log.Info().Msg("shutting down")
		return srv.Shutdown(sctx)
	})

	g.Go(func() error {
		sweepSessions(gctx, provider, cfg.Session.IdleTimeout, log)
		return nil
	})

	if b.snapshots != nil {
		g.Go(func() error { return b.snapshots.Run(gctx) })
	}

	return g.Wait()
}

// sweepSessions evicts idle device sessions until ctx is cancelled.
func sweepSessions(ctx context.Context, provider *service.AuthProvider, idle time.Duration, log zerolog.Logger) {
	t := time.NewTicker(sweepInterval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := provider.Sweep(idle); n > 0 {
				log.Debug().Int("evicted", n).Msg("idle auth sessions evicted")
			}
			metrics.ActiveAuthSessions.Set(float64(provider.Len()))
		}
	}
}
