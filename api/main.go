package api

import (
	"context"
	"fmt"

	"github.com/brpaz/echozap"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/nocturne-org/nocturne/config"
	"github.com/nocturne-org/nocturne/decompose"
	"github.com/nocturne-org/nocturne/errors"
	"github.com/nocturne-org/nocturne/legacy"
	"github.com/nocturne-org/nocturne/logger"
	"github.com/nocturne-org/nocturne/normalized"
	"github.com/nocturne-org/nocturne/spans"
	"github.com/nocturne-org/nocturne/store"
)

func Start(e *echo.Echo, cfg *config.Config, lifecycle fx.Lifecycle) {
	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := e.Start(fmt.Sprintf(":%v", cfg.HttpPort)); err != nil {
					fmt.Println(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return e.Shutdown(ctx)
		},
	})
}

func SetReady(healthCheck *HealthCheck, db *mongo.Database, lifecycle fx.Lifecycle) {
	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := db.Client().Ping(ctx, nil); err != nil {
				return err
			}

			// It's important this is set after mongo is initialized, which is ensured
			// by taking a dependency on mongo in the constructor, because lifecycle hooks
			// are executed in topological order
			healthCheck.SetReady(true)
			return nil
		},
		OnStop: nil,
	})
}

func NewServer(handler *Handler, healthCheck *HealthCheck, zapLogger *zap.Logger) (*echo.Echo, error) {
	e := echo.New()

	// Skip request logging for the readiness probe
	skipper := RouteSkipper([]string{"/ready"})
	requestLogger := echozap.ZapLogger(zapLogger)

	e.Use(middleware.Recover())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		logged := requestLogger(next)
		return func(c echo.Context) error {
			if skipper(c) {
				return next(c)
			}
			return logged(c)
		}
	})

	e.HTTPErrorHandler = errors.CustomHTTPErrorHandler

	e.GET("/ready", healthCheck.Ready)
	handler.RegisterRoutes(e)

	return e, nil
}

// Dependencies is the service dependency graph. It is shared between the
// server and the maintenance CLIs.
func Dependencies() []fx.Option {
	return []fx.Option{
		fx.Provide(
			logger.NewProductionLogger,
			logger.Suggar,
			config.NewFromEnv,
			store.NewConfig,
			store.GetConnectionString,
			store.NewClient,
			store.NewDatabase,
			legacy.NewEntriesRepository,
			legacy.NewTreatmentsRepository,
			legacy.NewDeviceStatusRepository,
			normalized.NewRepositories,
			spans.NewService,
			decompose.NewEntryDecomposer,
			decompose.NewTreatmentDecomposer,
			decompose.NewDeviceStatusDecomposer,
			NewHealthCheck,
			NewHandler,
			NewServer,
		),
	}
}

func MainLoop() {
	options := append(
		Dependencies(),
		fx.Invoke(SetReady),
		fx.Invoke(Start),
	)
	fx.New(options...).Run()
}
