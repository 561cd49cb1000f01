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
package envloader

import (
	"fmt"
	"reflect"
)

// InvalidConfigError is returned when Load receives something other than a
// pointer to a struct.
type InvalidConfigError struct {
	// Value is the type that was passed.
	Value reflect.Type
}

func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("envloader: Load needs a pointer to struct, got %s", e.Value)
}

// FieldError reports a value that could not be converted into its field.
// FieldName is the dotted path from the root struct, e.g. "Store.Table".
type FieldError struct {
	FieldName string
	EnvVar    string
	Value     string
	Err       error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("envloader: cannot set %s from %s=%q: %v", e.FieldName, e.EnvVar, e.Value, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// UnsupportedTypeError is returned for field types Load cannot convert to
// (maps, interfaces, slices of anything but strings).
type UnsupportedTypeError struct {
	Type reflect.Type
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("envloader: cannot load fields of type %s", e.Type)
}

// MissingEnvError reports an envRequired field left without a value.
type MissingEnvError struct {
	FieldName string
	EnvVar    string
}

func (e *MissingEnvError) Error() string {
	return fmt.Sprintf("envloader: %s requires %s to be set", e.FieldName, e.EnvVar)
}
