package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/raywall/storefront/pkg/app"
	"github.com/raywall/storefront/pkg/config"
	"github.com/raywall/storefront/pkg/seed"
	"github.com/raywall/storefront/shop"
)

const usage = "usage: toolkit <validate|reset|cleanup> [-config path] [flags]"

// replaced in tests
var newS3Client = func(ctx context.Context, region string) (seed.S3Downloader, error) {
	awsCfg, err := app.AWSConfig(ctx, region)
	if err != nil {
		return nil, err
	}
	return s3.NewFromConfig(awsCfg), nil
}

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	if len(args) < 1 {
		return errors.New(usage)
	}

	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)
	fs.SetOutput(out)
	cfgPath := fs.String("config", os.Getenv("CONFIG_FILE_PATH"), "YAML configuration file")
	source := fs.String("source", "", "seed file: local path or s3://bucket/key (reset only)")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		return err
	}

	switch args[0] {
	case "validate":
		return runValidate(cfg, out)
	case "reset":
		src := *source
		if src == "" {
			src = cfg.Seed.Source
		}
		if src == "" {
			return errors.New("reset: -source is required when seed.source is not configured")
		}
		return runReset(ctx, cfg, src, out)
	case "cleanup":
		return runCleanup(ctx, cfg, out)
	default:
		return fmt.Errorf("unknown command %q\n%s", args[0], usage)
	}
}

func runValidate(cfg *config.ServiceConfig, out io.Writer) error {
	if os.Getenv("OUTPUT_FORMAT") == "json" {
		return json.NewEncoder(out).Encode(map[string]any{"valid": true, "config": cfg})
	}
	fmt.Fprintf(out, "configuration valid: service %s on %s, %s table %q\n",
		cfg.Service.Name, cfg.Service.Runtime, cfg.Store.Backend, cfg.Store.Table)
	return nil
}

func runReset(ctx context.Context, cfg *config.ServiceConfig, source string, out io.Writer) error {
	a, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	var client seed.S3Downloader
	if strings.HasPrefix(source, "s3://") {
		if client, err = newS3Client(ctx, cfg.Store.Region); err != nil {
			return err
		}
	}

	summary, err := seed.New(a.Table, a.Services, client).Run(ctx, source)
	if err != nil {
		return err
	}
	written := 0
	for _, n := range summary.Written {
		written += n
	}
	fmt.Fprintf(out, "reset %s: %d records deleted, %d written\n", cfg.Store.Table, summary.Deleted, written)
	return nil
}

func runCleanup(ctx context.Context, cfg *config.ServiceConfig, out io.Writer) error {
	a, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	return cleanup(ctx, a.Services, out)
}

func cleanup(ctx context.Context, svc *shop.Services, out io.Writer) error {
	deleted, err := svc.Carts.CleanupCarts(ctx)
	if err != nil {
		return err
	}
	for _, k := range deleted {
		fmt.Fprintf(out, "deleted %s\n", k)
	}
	fmt.Fprintf(out, "cleanup: %d invalid cart records removed\n", len(deleted))
	return nil
}
