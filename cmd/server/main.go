package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/raywall/storefront/pkg/app"
	"github.com/raywall/storefront/pkg/config"
	"github.com/raywall/storefront/pkg/transport"
	"github.com/rs/zerolog/log"
)

var (
	configPath string
	// replaced in tests
	serverStarter = transport.StartHTTPServer
	lambdaStarter = lambda.Start
)

func init() {
	configPath = os.Getenv("CONFIG_FILE_PATH")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, configPath); err != nil {
		log.Fatal().Err(err).Msg("storefront stopped")
	}
}

// run loads the configuration and serves on the configured runtime. An empty
// cfgPath uses defaults and environment only.
func run(ctx context.Context, cfgPath string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	a, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	switch cfg.Service.Runtime {
	case "local":
		return serverStarter(ctx, cfg.Service.Port, a.Router(), a.Logger)
	case "lambda":
		handler := transport.NewLambdaHandler(a.Router())
		lambdaStarter(handler.Handle)
		return nil
	default:
		return fmt.Errorf("unknown runtime %q", cfg.Service.Runtime)
	}
}
