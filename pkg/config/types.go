package config

import "time"

// ServiceConfig is the root of the service configuration file.
type ServiceConfig struct {
	Service ServiceDetails `yaml:"service"`
	Logging LoggingConf    `yaml:"logging"`
	Store   StoreConf      `yaml:"store"`
	Metrics MetricsConf    `yaml:"metrics"`
	Seed    SeedConf       `yaml:"seed"`
}

// ServiceDetails holds the runtime settings of the service.
type ServiceDetails struct {
	Name    string        `yaml:"name" env:"SERVICE_NAME" envDefault:"storefront" validate:"required,hostname_rfc1123"`
	Runtime string        `yaml:"runtime" env:"SERVICE_RUNTIME" envDefault:"local" validate:"required,oneof=local lambda"`
	Port    int           `yaml:"port" env:"PORT" envDefault:"8080" validate:"required_if=Runtime local,gte=0,lte=65535"`
	Timeout time.Duration `yaml:"timeout" env:"SERVICE_TIMEOUT" envDefault:"5s" validate:"gt=0"` // ex: 500ms, 2s
}

type LoggingConf struct {
	Enabled bool   `yaml:"enabled" env:"LOG_ENABLED"`
	Level   string `yaml:"level" env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`
	Format  string `yaml:"format" env:"LOG_FORMAT" envDefault:"json" validate:"oneof=json console"`
}

// StoreConf selects and configures the table backend.
type StoreConf struct {
	Backend         string `yaml:"backend" env:"STORE_BACKEND" envDefault:"dynamodb" validate:"oneof=dynamodb memory"`
	Table           string `yaml:"table" env:"DYNAMODB_TABLE_NAME" envDefault:"storefront" validate:"required"`
	Region          string `yaml:"region" env:"AWS_REGION"`
	Endpoint        string `yaml:"endpoint" env:"DYNAMODB_ENDPOINT" validate:"omitempty,url"` // DynamoDB Local
	ConsistentReads bool   `yaml:"consistent_reads" env:"DYNAMODB_CONSISTENT_READS"`
}

type MetricsConf struct {
	Datadog DatadogConf `yaml:"datadog"`
}

type DatadogConf struct {
	Enabled   bool     `yaml:"enabled" env:"DD_ENABLED"`
	Addr      string   `yaml:"addr" env:"DD_AGENT_HOST" validate:"required_if=Enabled true"`
	Namespace string   `yaml:"namespace" env:"DD_NAMESPACE"`
	Tags      []string `yaml:"tags" env:"DD_TAGS"`
}

// SeedConf points at the records loaded by the reset tool.
type SeedConf struct {
	Source string `yaml:"source" env:"SEED_SOURCE"` // local path or s3://bucket/key
}

// Defaults returns the values a missing file and empty environment produce.
func Defaults() *ServiceConfig {
	return &ServiceConfig{
		Service: ServiceDetails{
			Name:    "storefront",
			Runtime: "local",
			Port:    8080,
			Timeout: 5 * time.Second,
		},
		Logging: LoggingConf{Enabled: true, Level: "info", Format: "json"},
		Store: StoreConf{
			Backend:         "dynamodb",
			Table:           "storefront",
			ConsistentReads: true,
		},
	}
}
