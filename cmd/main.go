package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/PayeTonKawa-EPSI-2025/Shop-V2/internal/apperr"
	"github.com/PayeTonKawa-EPSI-2025/Shop-V2/internal/config"
	"github.com/PayeTonKawa-EPSI-2025/Shop-V2/internal/db"
	"github.com/PayeTonKawa-EPSI-2025/Shop-V2/internal/logger"
	"github.com/PayeTonKawa-EPSI-2025/Shop-V2/internal/metrics"
	"github.com/PayeTonKawa-EPSI-2025/Shop-V2/internal/operation"
	"github.com/PayeTonKawa-EPSI-2025/Shop-V2/internal/rabbitmq"
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/danielgtaylor/huma/v2/humacli"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// Options for the CLI.
type Options struct {
	Port int `help:"Port to listen on" short:"p" default:"8080"`
}

func newRouter(log zerolog.Logger, dbConn *gorm.DB, ch *amqp.Channel) http.Handler {
	router := chi.NewMux()

	router.Use(middleware.RequestID)
	router.Use(logger.Middleware(log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))

	httpMetrics := metrics.NewHTTP(prometheus.DefaultRegisterer)
	router.Use(httpMetrics.Middleware)
	router.Handle("/metrics", promhttp.Handler())

	configs := huma.DefaultConfig("Paye Ton Kawa - Shop", "1.0.0")
	api := humachi.New(router, configs)
	operation.RegisterRoutes(api, dbConn, ch)

	return router
}

// setup loads the configuration and installs the service-wide logger and
// error format. It runs once a command actually needs them, so --help works
// without any SHOP_* variable set.
func setup() (*config.Config, zerolog.Logger) {
	cfg, err := config.Load()
	if err != nil {
		fatal := zerolog.New(os.Stderr)
		fatal.Fatal().Err(err).Msg("load configuration")
	}

	log := logger.New(os.Stdout, cfg.Logging).With().Str("env", cfg.Primary.Env).Logger()
	zerolog.DefaultContextLogger = &log
	zlog.Logger = log
	apperr.Install()

	return cfg, log
}

// seed migrates the schema and inserts the demo catalogue.
func seed(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	dbConn, err := db.Init(cfg.Database, cfg.Logging, log)
	if err != nil {
		return fmt.Errorf("initialise database: %w", err)
	}
	sqlDB, err := dbConn.DB()
	if err != nil {
		return fmt.Errorf("database handle: %w", err)
	}
	defer sqlDB.Close()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN)
	if err != nil {
		return fmt.Errorf("open pgx pool: %w", err)
	}
	defer pool.Close()

	inserted, err := db.SeedProducts(ctx, pool, db.DemoProducts)
	if err != nil {
		return err
	}
	log.Info().Int64("inserted", inserted).Msg("demo catalogue seeded")
	return nil
}

func newCLI() humacli.CLI {
	// Create a CLI app which takes a port option.
	cli := humacli.New(func(hooks humacli.Hooks, options *Options) {
		var (
			log    zerolog.Logger
			server *http.Server
			dbConn *gorm.DB
			conn   *amqp.Connection
			ch     *amqp.Channel
		)

		// Tell the CLI how to start your router.
		hooks.OnStart(func() {
			var (
				cfg *config.Config
				err error
			)
			cfg, log = setup()

			dbConn, err = db.Init(cfg.Database, cfg.Logging, log)
			if err != nil {
				log.Fatal().Err(err).Msg("initialise database")
			}

			if cfg.RabbitMQ.URL == "" {
				log.Warn().Msg("SHOP_RABBITMQ_URL not set, domain events disabled")
			} else {
				conn, ch, err = rabbitmq.Connect(cfg.RabbitMQ.URL)
				if err != nil {
					log.Fatal().Err(err).Msg("connect to rabbitmq")
				}
			}

			server = &http.Server{
				Addr:              fmt.Sprintf(":%d", options.Port),
				Handler:           newRouter(log, dbConn, ch),
				ReadHeaderTimeout: 10 * time.Second,
			}

			log.Info().Int("port", options.Port).Msg("starting server")
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Fatal().Err(err).Msg("server failed")
			}
		})

		// Tell the CLI how to stop your server.
		hooks.OnStop(func() {
			// Give the server 5 seconds to gracefully shut down, then give up.
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if server != nil {
				if err := server.Shutdown(ctx); err != nil {
					log.Error().Err(err).Msg("shutdown server")
				}
			}

			if ch != nil {
				ch.Close()
				conn.Close()
			}
			if dbConn != nil {
				if sqlDB, err := dbConn.DB(); err == nil {
					sqlDB.Close()
				}
			}
		})
	})

	cli.Root().AddCommand(&cobra.Command{
		Use:   "seed",
		Short: "Migrate the schema and insert the demo product catalogue",
		Run: func(cmd *cobra.Command, args []string) {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			cfg, log := setup()
			if err := seed(ctx, cfg, log); err != nil {
				log.Fatal().Err(err).Msg("seed products")
			}
		},
	})

	return cli
}

func main() {
	_ = godotenv.Load()

	// Run the CLI. When passed no commands, it starts the server.
	newCLI().Run()
}
