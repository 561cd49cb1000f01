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

// Package apperr defines the error taxonomy shared by every storefront component.
//
// Every failure returned by the core is an *Error carrying one of five kinds.
// The transport layer maps the kind to an HTTP status; callers test the kind
// with errors.Is against the package sentinels:
//
//	if errors.Is(err, apperr.ErrNotFound) { ... }
package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Kind classifies an Error.
type Kind string

const (
	KindValidation    Kind = "VALIDATION"
	KindNotFound      Kind = "NOT_FOUND"
	KindConflict      Kind = "CONFLICT"
	KindStorage       Kind = "STORAGE"
	KindDataIntegrity Kind = "DATA_INTEGRITY"
)

// Issue is a single field-level problem found during validation.
type Issue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is the application error type.
type Error struct {
	Kind    Kind    `json:"kind"`
	Message string  `json:"message"`
	Issues  []Issue `json:"issues,omitempty"`
	Cause   error   `json:"-"`
}

// Sentinels used as errors.Is targets. They match any *Error of the same kind.
var (
	ErrValidation    = &Error{Kind: KindValidation}
	ErrNotFound      = &Error{Kind: KindNotFound}
	ErrConflict      = &Error{Kind: KindConflict}
	ErrStorage       = &Error{Kind: KindStorage}
	ErrDataIntegrity = &Error{Kind: KindDataIntegrity}
)

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Kind))
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	for i, is := range e.Issues {
		if i == 0 {
			b.WriteString(" (")
		} else {
			b.WriteString("; ")
		}
		fmt.Fprintf(&b, "%s %s", is.Field, is.Message)
		if i == len(e.Issues)-1 {
			b.WriteString(")")
		}
	}
	if e.Cause != nil {
		fmt.Fprintf(&b, ": %v", e.Cause)
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is a bare sentinel of the same kind, or the same pointer.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t == e {
		return true
	}
	return t.Kind == e.Kind && t.Message == "" && len(t.Issues) == 0 && t.Cause == nil
}

// Validation creates a validation error with optional field issues.
func Validation(message string, issues ...Issue) *Error {
	return &Error{Kind: KindValidation, Message: message, Issues: issues}
}

// NotFound creates a not-found error for the given resource description.
func NotFound(resource string) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf("%s not found", resource)}
}

// Conflict creates an error for a create that hit an existing identity.
func Conflict(resource string) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf("%s already exists", resource)}
}

// Storage wraps a backend or transport failure.
func Storage(op string, cause error) *Error {
	return &Error{Kind: KindStorage, Message: op, Cause: cause}
}

// DataIntegrity reports a stored record that does not satisfy its schema.
func DataIntegrity(resource string, cause error) *Error {
	e := &Error{Kind: KindDataIntegrity, Message: fmt.Sprintf("stored %s is malformed", resource), Cause: cause}
	var ae *Error
	if errors.As(cause, &ae) {
		e.Issues = ae.Issues
	}
	return e
}

// KindOf returns the kind of err. Errors outside the taxonomy are Storage.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindStorage
}

// HTTPStatus maps err to the status code the API responds with.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// From converts err into an *Error, wrapping unknown errors as Storage failures.
func From(err error) *Error {
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return Storage("internal error", err)
}
