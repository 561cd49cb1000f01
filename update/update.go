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

// Package update synthesizes partial updates against the shared table.
//
// Build turns whatever subset of fields a client sent into a Plan: a list of
// "set attribute to value" assignments with deterministic aliases
// (#k1/:v1, #k2/:v2, ...). The plan says nothing about the backend; dyndb
// renders it as an UpdateItem call and the in-memory table applies it directly.
package update

import (
	"encoding/json"
	"fmt"
	"math"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/raywall/storefront/keys"
	"github.com/raywall/storefront/pkg/apperr"
)

// MaxInteger is the largest integer attribute a plan may set. Larger values
// do not survive a float64 round trip.
const MaxInteger = 1 << 53

// ErrNothingToUpdate is returned when no mutable field survives filtering.
// Callers must not issue a mutation in that case.
var ErrNothingToUpdate = apperr.Validation("nothing to update")

// Assignment sets one attribute.
type Assignment struct {
	Field      string
	NameAlias  string
	ValueAlias string
	Value      any
}

// Plan is a validated, backend-agnostic partial update of one record.
type Plan struct {
	Entity      keys.EntityType
	Key         keys.Key
	Assignments []Assignment
}

// Expression renders the plan as a SET clause list.
func (p *Plan) Expression() string {
	clauses := make([]string, 0, len(p.Assignments))
	for _, a := range p.Assignments {
		clauses = append(clauses, a.NameAlias+" = "+a.ValueAlias)
	}
	return "SET " + strings.Join(clauses, ", ")
}

// Names maps name aliases to attribute names.
func (p *Plan) Names() map[string]string {
	out := make(map[string]string, len(p.Assignments))
	for _, a := range p.Assignments {
		out[a.NameAlias] = a.Field
	}
	return out
}

// Values maps value aliases to normalized values.
func (p *Plan) Values() map[string]any {
	out := make(map[string]any, len(p.Assignments))
	for _, a := range p.Assignments {
		out[a.ValueAlias] = a.Value
	}
	return out
}

// Build validates candidate against the mutable fields of t and returns the
// resulting plan for key.
//
// Identity fields and nil or blank values are dropped. Fields outside the
// entity's mutable set and values that fail coercion are validation errors.
// When nothing survives, Build returns ErrNothingToUpdate.
func Build(t keys.EntityType, key keys.Key, candidate map[string]any) (*Plan, error) {
	s, ok := schemas[t]
	if !ok {
		return nil, apperr.Validation(fmt.Sprintf("%s records cannot be updated", t))
	}

	var issues []apperr.Issue
	accepted := make(map[string]any, len(candidate))

	names := make([]string, 0, len(candidate))
	for name := range candidate {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		raw := candidate[name]
		if s.isIdentity(name) || blank(raw) {
			continue
		}
		f, ok := s.field(name)
		if !ok {
			issues = append(issues, apperr.Issue{Field: name, Message: "is not an updatable field"})
			continue
		}
		v, err := normalize(f, raw)
		if err != nil {
			issues = append(issues, apperr.Issue{Field: name, Message: err.Error()})
			continue
		}
		accepted[name] = v
	}

	if len(issues) > 0 {
		return nil, apperr.Validation("invalid update", issues...)
	}
	if len(accepted) == 0 {
		return nil, ErrNothingToUpdate
	}

	plan := &Plan{Entity: t, Key: key}
	for _, f := range s.mutable {
		v, ok := accepted[f.Name]
		if !ok {
			continue
		}
		n := len(plan.Assignments) + 1
		plan.Assignments = append(plan.Assignments, Assignment{
			Field:      f.Name,
			NameAlias:  "#k" + strconv.Itoa(n),
			ValueAlias: ":v" + strconv.Itoa(n),
			Value:      v,
		})
	}
	return plan, nil
}

// Set builds a plan assigning one field. The same rules as Build apply.
func Set(t keys.EntityType, key keys.Key, field string, value any) (*Plan, error) {
	return Build(t, key, map[string]any{field: value})
}

func blank(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(x) == ""
	default:
		return false
	}
}

func normalize(f Field, raw any) (any, error) {
	switch f.Kind {
	case KindString:
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("must be a string")
		}
		return strings.TrimSpace(s), nil

	case KindURL:
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("must be a string")
		}
		u, err := url.Parse(strings.TrimSpace(s))
		if err != nil || u.Scheme == "" || u.Host == "" {
			return nil, fmt.Errorf("must be a valid URL")
		}
		return u.String(), nil

	case KindNumber, KindInteger:
		n, err := toFloat(raw)
		if err != nil {
			return nil, err
		}
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return nil, fmt.Errorf("must be a number")
		}
		if n < f.Min {
			return nil, fmt.Errorf("must be greater than or equal to %s", strconv.FormatFloat(f.Min, 'f', -1, 64))
		}
		if f.Kind == KindInteger {
			if n != math.Trunc(n) {
				return nil, fmt.Errorf("must be an integer")
			}
			if n > MaxInteger {
				return nil, fmt.Errorf("must be less than or equal to %d", MaxInteger)
			}
			return int(n), nil
		}
		return n, nil
	}
	return nil, fmt.Errorf("unsupported field kind")
}

// toFloat accepts JSON numbers and numeric strings (e.g. stock sent as "5").
func toFloat(raw any) (float64, error) {
	switch x := raw.(type) {
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case int:
		return float64(x), nil
	case int32:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case json.Number:
		return parseNumber(string(x))
	case string:
		return parseNumber(x)
	default:
		return 0, fmt.Errorf("must be a number")
	}
}

func parseNumber(s string) (float64, error) {
	n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("must be a number")
	}
	return n, nil
}
