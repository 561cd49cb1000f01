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
//
// Package envloader fills configuration structs from environment variables.
//
// Fields are mapped with tags:
//
//	env:"NAME"          variable to read
//	envDefault:"value"  used when NAME is unset and the field is still zero
//	envRequired:"true"  fail when NAME is unset and the field is still zero
//
// A set variable always wins, so Load can run after a YAML decode and act as
// the override layer. Supported field types are string, the int, uint, bool
// and float families, time.Duration and []string (comma separated). Nested
// structs and pointers to structs are walked recursively.
//
//	type StoreConf struct {
//		Table   string        `env:"STORE_TABLE" envDefault:"storefront"`
//		Timeout time.Duration `env:"STORE_TIMEOUT" envDefault:"3s"`
//	}
//
//	var cfg StoreConf
//	if err := envloader.Load(&cfg); err != nil {
//		log.Fatal(err)
//	}
package envloader
