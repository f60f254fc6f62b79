/*
Copyright 2026 the TeamCity API Tests Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package generator builds randomized, internally consistent test models.
//
// Models are described statically by a models.Schema.  Required fields are
// filled by the rule registered for their semantic type, optional fields are
// only filled on request, and references are resolved against the models that
// were generated before, most recent first.
package generator

import (
	"fmt"
	"sync"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/teamcity-api-tests/apitests/pkg/models"
)

// Context is the ordered set of models already generated that new models may
// refer to.
type Context []models.Model

// Add returns the context with m appended.
func (c Context) Add(m models.Model) Context {
	return append(c, m)
}

// Latest returns the most recently added model of the given kind.
func (c Context) Latest(kind models.Kind) (models.Model, bool) {
	for i := len(c) - 1; i >= 0; i-- {
		if c[i] != nil && c[i].Kind() == kind {
			return c[i], true
		}
	}

	return nil, false
}

// Generator produces models.  It is safe for concurrent use.
type Generator struct {
	lock     sync.Mutex
	schema   *models.Schema
	faker    *gofakeit.Faker
	rules    map[models.Semantic]Rule
	prefix   string
	optional bool
}

// Option configures a Generator.
type Option func(g *Generator)

// WithSchema replaces the default schema.
func WithSchema(schema *models.Schema) Option {
	return func(g *Generator) {
		g.schema = schema
	}
}

// WithSeed makes generation reproducible.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.faker = gofakeit.New(seed)
	}
}

// WithOptionalFields populates optional fields too.
func WithOptionalFields(include bool) Option {
	return func(g *Generator) {
		g.optional = include
	}
}

// WithPrefix sets the prefix of generated names and identifiers.
func WithPrefix(prefix string) Option {
	return func(g *Generator) {
		g.prefix = prefix
	}
}

// WithRule registers or overrides the rule for a semantic type.
func WithRule(semantic models.Semantic, rule Rule) Option {
	return func(g *Generator) {
		g.rules[semantic] = rule
	}
}

// New returns a generator over the default schema and rules.
func New(options ...Option) *Generator {
	g := &Generator{
		schema: models.DefaultSchema(),
		faker:  gofakeit.New(0),
		prefix: DefaultPrefix,
	}

	g.rules = defaultRules(func() string { return g.prefix })

	for _, o := range options {
		o(g)
	}

	return g
}

// Generate builds a model of the given kind, resolving references from ctx.
func (g *Generator) Generate(ctx Context, kind models.Kind) (models.Model, error) {
	g.lock.Lock()
	defer g.lock.Unlock()

	return g.generate(ctx, kind)
}

func (g *Generator) generate(ctx Context, kind models.Kind) (models.Model, error) {
	descriptor, ok := g.schema.Lookup(kind)
	if !ok {
		return nil, &GenerationError{Kind: kind, Reason: "kind is not registered"}
	}

	m := descriptor.New()

	for i := range descriptor.Fields {
		field := &descriptor.Fields[i]

		if field.Role == models.Optional && !g.optional {
			continue
		}

		if field.IsReference() {
			// No compatible model simply leaves the reference unset.
			if ref, ok := ctx.Latest(field.Target); ok {
				field.Link(m, ref)
			}

			continue
		}

		rule, ok := g.rules[field.Semantic]
		if !ok {
			return nil, &GenerationError{Kind: kind, Field: field.Name, Reason: "no rule for semantic type " + string(field.Semantic)}
		}

		if err := assign(kind, field, m, rule(g.faker)); err != nil {
			return nil, err
		}
	}

	if missing := descriptor.MissingRequired(m); len(missing) > 0 {
		return nil, &GenerationError{Kind: kind, Field: missing[0], Reason: "rule produced an empty value"}
	}

	return m, nil
}

// assign stores a rule's value, a value of the wrong type for the field
// being reported rather than raised.
func assign(kind models.Kind, field *models.Field, m models.Model, value any) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &GenerationError{Kind: kind, Field: field.Name, Reason: fmt.Sprintf("rule produced %T", value)}
		}
	}()

	field.Set(m, value)

	return nil
}

// GenerateBundle generates the kinds in order, each one able to refer to
// those generated before it.
func (g *Generator) GenerateBundle(kinds ...models.Kind) ([]models.Model, error) {
	g.lock.Lock()
	defer g.lock.Unlock()

	ctx := make(Context, 0, len(kinds))

	for _, kind := range kinds {
		m, err := g.generate(ctx, kind)
		if err != nil {
			return nil, err
		}

		ctx = ctx.Add(m)
	}

	return ctx, nil
}

// One generates a single model of type T.
func One[T models.Model](g *Generator, ctx Context) (T, error) {
	var zero T

	m, err := g.Generate(ctx, zero.Kind())
	if err != nil {
		return zero, err
	}

	t, ok := m.(T)
	if !ok {
		return zero, &GenerationError{Kind: zero.Kind(), Reason: "descriptor constructs a different type"}
	}

	return t, nil
}
