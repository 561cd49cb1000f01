// Copyright 2025 Raywall Malheiros de Souza
// Licensed under the Mozilla Public License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	https://www.mozilla.org/en-US/MPL/2.0/
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package validation parses untrusted input and stored records into typed
// entities. Rules live in `validate` struct tags (go-playground/validator);
// failures are reported as one apperr.Issue per offending field, named after
// the field's JSON name.
package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/raywall/storefront/pkg/apperr"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	return v
}

// Result is the non-failing outcome of SafeParse.
type Result[T any] struct {
	OK     bool
	Value  *T
	Issues []apperr.Issue
}

// Parse decodes raw JSON into T and validates it.
func Parse[T any](raw []byte) (*T, error) {
	var out T
	var issues []apperr.Issue

	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, apperr.Validation("request body is required")
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		var typeErr *json.UnmarshalTypeError
		if !errors.As(err, &typeErr) {
			return nil, apperr.Validation("malformed JSON: " + err.Error())
		}
		issues = append(issues, typeIssue(typeErr))
	}

	if err := Check(&out); err != nil {
		var ae *apperr.Error
		if !errors.As(err, &ae) {
			return nil, err
		}
		issues = merge(issues, ae.Issues)
	}
	if len(issues) > 0 {
		return nil, apperr.Validation("invalid input", issues...)
	}
	return &out, nil
}

// SafeParse is Parse for call sites that branch on the outcome instead of an error.
func SafeParse[T any](raw []byte) Result[T] {
	v, err := Parse[T](raw)
	if err != nil {
		var ae *apperr.Error
		if errors.As(err, &ae) && len(ae.Issues) > 0 {
			return Result[T]{Issues: ae.Issues}
		}
		return Result[T]{Issues: []apperr.Issue{{Field: "", Message: err.Error()}}}
	}
	return Result[T]{OK: true, Value: v}
}

// Check validates an already typed value, e.g. a record read back from storage.
func Check(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperr.Validation(err.Error())
	}
	issues := make([]apperr.Issue, 0, len(verrs))
	for _, fe := range verrs {
		issues = append(issues, apperr.Issue{Field: fe.Field(), Message: message(fe)})
	}
	return apperr.Validation("invalid input", issues...)
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "lte":
		return "must be less than or equal to " + fe.Param()
	case "notblank":
		return "must not be blank"
	case "url":
		return "must be a valid URL"
	default:
		return fmt.Sprintf("failed rule %q", fe.Tag())
	}
}

func typeIssue(e *json.UnmarshalTypeError) apperr.Issue {
	field := e.Field
	if field == "" {
		field = "body"
	}
	switch e.Type.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if strings.HasPrefix(e.Value, "number") {
			return apperr.Issue{Field: field, Message: "must be an integer"}
		}
		return apperr.Issue{Field: field, Message: "must be a number"}
	case reflect.Float32, reflect.Float64:
		return apperr.Issue{Field: field, Message: "must be a number"}
	case reflect.String:
		return apperr.Issue{Field: field, Message: "must be a string"}
	default:
		return apperr.Issue{Field: field, Message: "has the wrong type"}
	}
}

// merge appends extra issues whose field is not already reported.
func merge(issues, extra []apperr.Issue) []apperr.Issue {
	seen := make(map[string]bool, len(issues))
	for _, is := range issues {
		seen[is.Field] = true
	}
	for _, is := range extra {
		if !seen[is.Field] {
			issues = append(issues, is)
		}
	}
	return issues
}
