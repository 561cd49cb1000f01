package config

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Error lists every problem found in a configuration.
type Error struct {
	Problems []string
}

func (e *Error) Error() string {
	return "invalid configuration:\n- " + strings.Join(e.Problems, "\n- ")
}

type ConfigValidator struct {
	validate *validator.Validate
}

// NewValidator creates the configuration validator. Problems are reported
// with the YAML path of the field, e.g. "store.endpoint".
func NewValidator() *ConfigValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("yaml"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return &ConfigValidator{validate: v}
}

// Validate runs the tag checks and the cross-section rules, and reports all
// problems at once.
func (cv *ConfigValidator) Validate(cfg *ServiceConfig) error {
	var problems []string

	if err := cv.validate.Struct(cfg); err != nil {
		verrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		for _, fe := range verrs {
			problems = append(problems, fieldPath(fe)+": "+rule(fe))
		}
	}
	problems = append(problems, semantics(cfg)...)

	if len(problems) > 0 {
		return &Error{Problems: problems}
	}
	return nil
}

// fieldPath drops the root struct name from the namespace.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}

func rule(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_if":
		return "is required"
	case "oneof":
		return "must be one of " + fe.Param()
	case "url":
		return "must be a URL"
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	case "hostname_rfc1123":
		return "must be a lowercase DNS label"
	default:
		return "failed rule " + fe.Tag()
	}
}

func semantics(cfg *ServiceConfig) []string {
	var problems []string

	// every lambda instance would hold its own empty table
	if cfg.Service.Runtime == "lambda" && cfg.Store.Backend == "memory" {
		problems = append(problems, "store.backend: memory cannot run on the lambda runtime")
	}

	if src := cfg.Seed.Source; strings.HasPrefix(src, "s3://") {
		bucket, key, ok := strings.Cut(strings.TrimPrefix(src, "s3://"), "/")
		if !ok || bucket == "" || key == "" {
			problems = append(problems, fmt.Sprintf("seed.source: %q must look like s3://bucket/key", src))
		}
	}
	return problems
}
