// Package app assembles the storefront from its configuration.
package app

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/gorilla/mux"
	"github.com/raywall/storefront/dyndb"
	"github.com/raywall/storefront/pkg/config"
	"github.com/raywall/storefront/pkg/logger"
	"github.com/raywall/storefront/pkg/metrics"
	"github.com/raywall/storefront/pkg/observability"
	"github.com/raywall/storefront/pkg/transport"
	"github.com/raywall/storefront/shop"
	"github.com/rs/zerolog"
)

// App holds everything built at boot time.
type App struct {
	Config   *config.ServiceConfig
	Logger   zerolog.Logger
	Table    dyndb.Table
	Services *shop.Services
	Metrics  *metrics.Processor

	closer observability.Closer
}

// New configures logging and metrics, opens the table and wires the services.
func New(ctx context.Context, cfg *config.ServiceConfig) (*App, error) {
	l := logger.Configure(cfg.Logging, cfg.Service.Name)

	closer, err := observability.SetupMetrics(cfg.Metrics, cfg.Service.Name)
	if err != nil {
		return nil, err
	}
	processor := metrics.NewProcessor(closer)

	table, err := OpenTable(ctx, cfg.Store)
	if err != nil {
		_ = closer.Close()
		return nil, err
	}

	l.Info().
		Str("runtime", cfg.Service.Runtime).
		Str("backend", cfg.Store.Backend).
		Str("table", cfg.Store.Table).
		Msg("storefront initialized")

	return &App{
		Config:   cfg,
		Logger:   l,
		Table:    table,
		Services: shop.New(table, processor),
		Metrics:  processor,
		closer:   closer,
	}, nil
}

// Router returns the HTTP routes of the services.
func (a *App) Router() *mux.Router {
	return transport.NewRouter(a.Services, transport.RouterOptions{
		Timeout: a.Config.Service.Timeout,
		Metrics: a.Metrics,
	})
}

// Close flushes the metrics client.
func (a *App) Close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer.Close()
}

// OpenTable returns the table named by cfg on the configured backend.
func OpenTable(ctx context.Context, cfg config.StoreConf) (dyndb.Table, error) {
	switch cfg.Backend {
	case "memory":
		return dyndb.NewMemoryTable(), nil
	case "dynamodb", "":
		awsCfg, err := AWSConfig(ctx, cfg.Region)
		if err != nil {
			return nil, err
		}
		client := dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
			if cfg.Endpoint != "" {
				o.BaseEndpoint = aws.String(cfg.Endpoint)
			}
		})
		return dyndb.New(client, dyndb.TableConfig{
			TableName:       cfg.Table,
			ConsistentReads: cfg.ConsistentReads,
		}), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}

// AWSConfig loads the default credential chain, pinned to region when set.
func AWSConfig(ctx context.Context, region string) (aws.Config, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("load AWS config: %w", err)
	}
	return awsCfg, nil
}
