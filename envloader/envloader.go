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
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// Load fills config from the environment following the env, envDefault and
// envRequired tags. Nested structs and pointers to structs are walked; a nil
// pointer is allocated.
//
// A set, non-empty variable always overrides the field. envDefault is used
// only while the field still holds its zero value, so values decoded earlier
// (e.g. from YAML) survive. envRequired fails when neither the variable nor
// the field provide a value.
func Load(config interface{}) error {
	val := reflect.ValueOf(config)
	if val.Kind() != reflect.Ptr || val.Elem().Kind() != reflect.Struct {
		return &InvalidConfigError{Value: val.Type()}
	}
	return walk(val.Elem(), "")
}

// MustLoad is Load that panics on error.
func MustLoad(config interface{}) {
	if err := Load(config); err != nil {
		panic(err)
	}
}

func walk(val reflect.Value, prefix string) error {
	typ := val.Type()
	for i := 0; i < typ.NumField(); i++ {
		sf, fv := typ.Field(i), val.Field(i)
		if !fv.CanSet() {
			continue
		}
		path := prefix + sf.Name

		switch {
		case fv.Kind() == reflect.Struct:
			if err := walk(fv, path+"."); err != nil {
				return err
			}
		case fv.Kind() == reflect.Ptr && fv.Type().Elem().Kind() == reflect.Struct:
			if fv.IsNil() {
				fv.Set(reflect.New(fv.Type().Elem()))
			}
			if err := walk(fv.Elem(), path+"."); err != nil {
				return err
			}
		default:
			if err := bind(fv, sf, path); err != nil {
				return err
			}
		}
	}
	return nil
}

// bind resolves the value of one tagged field and stores it.
func bind(fv reflect.Value, sf reflect.StructField, path string) error {
	name := sf.Tag.Get("env")
	if name == "" {
		return nil
	}

	raw := os.Getenv(name)
	if raw == "" {
		if !fv.IsZero() {
			return nil
		}
		raw = sf.Tag.Get("envDefault")
	}
	if raw == "" {
		if sf.Tag.Get("envRequired") == "true" {
			return &MissingEnvError{FieldName: path, EnvVar: name}
		}
		return nil
	}

	if err := assign(fv, raw); err != nil {
		return &FieldError{FieldName: path, EnvVar: name, Value: raw, Err: err}
	}
	return nil
}

var durationType = reflect.TypeOf(time.Duration(0))

func assign(fv reflect.Value, raw string) error {
	t := fv.Type()
	if t == durationType {
		d, err := time.ParseDuration(raw)
		if err == nil {
			fv.SetInt(int64(d))
		}
		return err
	}

	var err error
	switch t.Kind() {
	case reflect.String:
		fv.SetString(raw)
	case reflect.Bool:
		var b bool
		if b, err = strconv.ParseBool(strings.ToLower(raw)); err == nil {
			fv.SetBool(b)
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		var n int64
		if n, err = strconv.ParseInt(raw, 10, t.Bits()); err == nil {
			fv.SetInt(n)
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		var n uint64
		if n, err = strconv.ParseUint(raw, 10, t.Bits()); err == nil {
			fv.SetUint(n)
		}
	case reflect.Float32, reflect.Float64:
		var f float64
		if f, err = strconv.ParseFloat(raw, t.Bits()); err == nil {
			fv.SetFloat(f)
		}
	case reflect.Slice:
		if t.Elem().Kind() != reflect.String {
			return &UnsupportedTypeError{Type: t}
		}
		fv.Set(splitList(t, raw))
	default:
		return &UnsupportedTypeError{Type: t}
	}
	return err
}

// splitList parses a comma-separated list, ignoring blank entries.
func splitList(t reflect.Type, raw string) reflect.Value {
	out := reflect.MakeSlice(t, 0, strings.Count(raw, ",")+1)
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = reflect.Append(out, reflect.ValueOf(part).Convert(t.Elem()))
		}
	}
	return out
}
