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

package models

import (
	"fmt"
	"strconv"
)

// Kind names a registered model type.
type Kind string

const (
	KindProject       Kind = "Project"
	KindBuildType     Kind = "BuildType"
	KindUser          Kind = "User"
	KindParentProject Kind = "ParentProject"
	KindSourceProject Kind = "SourceProject"
)

// Model is implemented by every generated resource.
type Model interface {
	Kind() Kind
}

// Role describes how a field is populated.
type Role int

const (
	// Required fields always receive a random value.
	Required Role = iota
	// Optional fields are only populated on request.
	Optional
)

// Semantic is the meaning of a scalar field, it selects the randomization
// rule used to fill it.
type Semantic string

const (
	SemanticIdentifier Semantic = "identifier"
	SemanticName       Semantic = "name"
	SemanticUsername   Semantic = "username"
	SemanticPassword   Semantic = "password"
	SemanticEmail      Semantic = "email"
	SemanticLocator    Semantic = "locator"
	SemanticFlag       Semantic = "flag"
	SemanticRoles      Semantic = "roles"
)

// Field is the static description of one model field.
//
// A field with a Target is a reference: it is resolved from already generated
// models of the target kind via Link rather than randomized via Set.
type Field struct {
	Name     string
	Role     Role
	Semantic Semantic
	Target   Kind

	Set  func(m Model, value any)
	Link func(m, ref Model)
	Get  func(m Model) any
}

// IsReference tells whether the field links another model.
func (f *Field) IsReference() bool {
	return f.Target != ""
}

// IsSet reports whether the field currently holds a non-zero value.
func (f *Field) IsSet(m Model) bool {
	if f.Get == nil {
		return false
	}

	switch v := f.Get(m).(type) {
	case nil:
		return false
	case string:
		return v != ""
	case *bool:
		return v != nil
	case *Roles:
		return v != nil && len(v.Role) > 0
	case *Project:
		return v != nil
	case *ParentProject:
		return v != nil
	case *SourceProject:
		return v != nil
	}

	return true
}

// Descriptor is the static metadata of a model kind.
type Descriptor struct {
	Kind Kind
	// Category is empty for kinds that are only ever embedded.
	Category Category
	New      func() Model
	Fields   []Field
	// ID and Locator extract the identity, either may be nil.
	ID      func(m Model) string
	Locator func(m Model) string
}

// Identity returns the id of the model if it has one, its locator otherwise.
func (d *Descriptor) Identity(m Model) string {
	if d.ID != nil {
		if id := d.ID(m); id != "" {
			return id
		}
	}

	if d.Locator != nil {
		return d.Locator(m)
	}

	return ""
}

// MissingRequired lists the required scalar fields that are unset.
func (d *Descriptor) MissingRequired(m Model) []string {
	var missing []string

	for i := range d.Fields {
		f := &d.Fields[i]

		if f.Role != Required || f.IsReference() {
			continue
		}

		if !f.IsSet(m) {
			missing = append(missing, f.Name)
		}
	}

	return missing
}

// Schema is a closed set of descriptors.
type Schema struct {
	descriptors map[Kind]*Descriptor
	order       []Kind
}

// NewSchema returns an empty schema.
func NewSchema() *Schema {
	return &Schema{
		descriptors: map[Kind]*Descriptor{},
	}
}

// Register adds a descriptor, each kind may only be registered once.
func (s *Schema) Register(d *Descriptor) error {
	if d.Kind == "" || d.New == nil {
		return fmt.Errorf("%w: descriptor needs a kind and constructor", ErrInvalidDescriptor)
	}

	if _, ok := s.descriptors[d.Kind]; ok {
		return fmt.Errorf("%w: kind %s already registered", ErrInvalidDescriptor, d.Kind)
	}

	s.descriptors[d.Kind] = d
	s.order = append(s.order, d.Kind)

	return nil
}

// MustRegister is Register for static tables.
func (s *Schema) MustRegister(descriptors ...*Descriptor) *Schema {
	for _, d := range descriptors {
		if err := s.Register(d); err != nil {
			panic(err)
		}
	}

	return s
}

// Lookup returns the descriptor of a kind.
func (s *Schema) Lookup(kind Kind) (*Descriptor, bool) {
	d, ok := s.descriptors[kind]

	return d, ok
}

// Kinds returns the registered kinds in registration order.
func (s *Schema) Kinds() []Kind {
	return append([]Kind(nil), s.order...)
}

// Identity resolves the identity of a model through its descriptor.
func (s *Schema) Identity(m Model) (string, bool) {
	if m == nil {
		return "", false
	}

	d, ok := s.descriptors[m.Kind()]
	if !ok {
		return "", false
	}

	identity := d.Identity(m)

	return identity, identity != ""
}

// DefaultSchema returns the descriptors of every resource the suites use.
func DefaultSchema() *Schema {
	return NewSchema().MustRegister(
		projectDescriptor(),
		buildTypeDescriptor(),
		userDescriptor(),
		parentProjectDescriptor(),
		sourceProjectDescriptor(),
	)
}

func projectDescriptor() *Descriptor {
	return &Descriptor{
		Kind:     KindProject,
		Category: Projects,
		New:      func() Model { return &Project{} },
		Fields: []Field{
			{
				Name:     "id",
				Semantic: SemanticIdentifier,
				Set:      func(m Model, v any) { m.(*Project).ID = v.(string) },
				Get:      func(m Model) any { return m.(*Project).ID },
			},
			{
				Name:     "name",
				Semantic: SemanticName,
				Set:      func(m Model, v any) { m.(*Project).Name = v.(string) },
				Get:      func(m Model) any { return m.(*Project).Name },
			},
			{
				Name:     "copyAllAssociatedSettings",
				Role:     Optional,
				Semantic: SemanticFlag,
				Set:      func(m Model, v any) { m.(*Project).CopyAllAssociatedSettings = v.(*bool) },
				Get:      func(m Model) any { return m.(*Project).CopyAllAssociatedSettings },
			},
			{
				Name:   "sourceProject",
				Role:   Optional,
				Target: KindProject,
				Link: func(m, ref Model) {
					m.(*Project).SourceProject = &SourceProject{Locator: Locator(ref.(*Project).ID)}
				},
				Get: func(m Model) any { return m.(*Project).SourceProject },
			},
			{
				Name:   "parentProject",
				Role:   Optional,
				Target: KindProject,
				Link: func(m, ref Model) {
					m.(*Project).ParentProject = &ParentProject{Locator: Locator(ref.(*Project).ID)}
				},
				Get: func(m Model) any { return m.(*Project).ParentProject },
			},
		},
		ID: func(m Model) string {
			if p, _ := m.(*Project); p != nil {
				return p.ID
			}

			return ""
		},
	}
}

func buildTypeDescriptor() *Descriptor {
	return &Descriptor{
		Kind:     KindBuildType,
		Category: BuildTypes,
		New:      func() Model { return &BuildType{} },
		Fields: []Field{
			{
				Name:     "id",
				Semantic: SemanticIdentifier,
				Set:      func(m Model, v any) { m.(*BuildType).ID = v.(string) },
				Get:      func(m Model) any { return m.(*BuildType).ID },
			},
			{
				Name:     "name",
				Semantic: SemanticName,
				Set:      func(m Model, v any) { m.(*BuildType).Name = v.(string) },
				Get:      func(m Model) any { return m.(*BuildType).Name },
			},
			{
				Name:   "project",
				Target: KindProject,
				Link:   func(m, ref Model) { m.(*BuildType).Project = ref.(*Project) },
				Get:    func(m Model) any { return m.(*BuildType).Project },
			},
		},
		ID: func(m Model) string {
			if b, _ := m.(*BuildType); b != nil {
				return b.ID
			}

			return ""
		},
	}
}

func userDescriptor() *Descriptor {
	return &Descriptor{
		Kind:     KindUser,
		Category: Users,
		New:      func() Model { return &User{} },
		Fields: []Field{
			{
				Name:     "username",
				Semantic: SemanticUsername,
				Set:      func(m Model, v any) { m.(*User).Username = v.(string) },
				Get:      func(m Model) any { return m.(*User).Username },
			},
			{
				Name:     "password",
				Semantic: SemanticPassword,
				Set:      func(m Model, v any) { m.(*User).Password = v.(string) },
				Get:      func(m Model) any { return m.(*User).Password },
			},
			{
				Name:     "roles",
				Semantic: SemanticRoles,
				Set:      func(m Model, v any) { m.(*User).Roles = v.(*Roles) },
				Get:      func(m Model) any { return m.(*User).Roles },
			},
			{
				Name:     "email",
				Role:     Optional,
				Semantic: SemanticEmail,
				Set:      func(m Model, v any) { m.(*User).Email = v.(string) },
				Get:      func(m Model) any { return m.(*User).Email },
			},
		},
		// Ids are assigned by the server, before that a user is addressed by
		// its user name.
		ID: func(m Model) string {
			if u, _ := m.(*User); u != nil && u.ID != 0 {
				return strconv.FormatInt(u.ID, 10)
			}

			return ""
		},
		Locator: func(m Model) string {
			if u, _ := m.(*User); u != nil && u.Username != "" {
				return "username:" + u.Username
			}

			return ""
		},
	}
}

func parentProjectDescriptor() *Descriptor {
	return &Descriptor{
		Kind: KindParentProject,
		New:  func() Model { return &ParentProject{} },
		Fields: []Field{
			{
				Name:     "locator",
				Role:     Optional,
				Semantic: SemanticLocator,
				Set:      func(m Model, v any) { m.(*ParentProject).Locator = v.(string) },
				Get:      func(m Model) any { return m.(*ParentProject).Locator },
			},
		},
		ID: func(m Model) string {
			if p, _ := m.(*ParentProject); p != nil {
				return p.ID
			}

			return ""
		},
		Locator: func(m Model) string {
			if p, _ := m.(*ParentProject); p != nil {
				return p.Locator
			}

			return ""
		},
	}
}

func sourceProjectDescriptor() *Descriptor {
	return &Descriptor{
		Kind: KindSourceProject,
		New:  func() Model { return &SourceProject{} },
		Fields: []Field{
			{
				Name:     "locator",
				Semantic: SemanticLocator,
				Set:      func(m Model, v any) { m.(*SourceProject).Locator = v.(string) },
				Get:      func(m Model) any { return m.(*SourceProject).Locator },
			},
		},
		Locator: func(m Model) string {
			if p, _ := m.(*SourceProject); p != nil {
				return p.Locator
			}

			return ""
		},
	}
}
