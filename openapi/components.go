package openapi

import (
	"encoding/json"
	"fmt"
	"maps"
	"reflect"
	"slices"
)

type bucket struct {
	names []string
	defs  map[string]Definition
}

// Components is the registry of every named component of a document. It
// keeps one bucket per Kind and an index from Go type to schema reference
// used to convert each type only once.
//
// Components is not safe for concurrent mutation. Once sealed it is
// read-only and may be read from any goroutine.
//
// See: https://spec.openapis.org/oas/v3.0.3#components-object
type Components struct {
	buckets         [len(kindNames)]bucket
	types           map[reflect.Type]*Reference
	securitySchemes map[string]*SecurityScheme
	sealed          bool
}

// NewComponents creates an empty registry.
func NewComponents() *Components {
	c := &Components{types: make(map[reflect.Type]*Reference)}
	for i := range c.buckets {
		c.buckets[i].defs = make(map[string]Definition)
	}
	return c
}

// Add stores def in the bucket of its kind and returns its reference. When
// the bucket already holds a definition under the same name the stored one
// is kept and its reference returned. Schema definitions derived from a Go
// type are indexed for SchemaRef.
func (c *Components) Add(def Definition) (*Reference, error) {
	if c.sealed {
		return nil, fmt.Errorf("%w: add %s", ErrLateMutation, def.ID())
	}

	b := &c.buckets[def.Kind()]
	if existing, ok := b.defs[def.Name()]; ok {
		return existing.CreateRef(), nil
	}

	b.defs[def.Name()] = def
	b.names = append(b.names, def.Name())
	def.base().registered = true

	ref := def.CreateRef()
	if sd, ok := def.(*SchemaDef); ok && sd.Type != nil {
		if _, indexed := c.types[sd.Type]; !indexed {
			c.types[sd.Type] = ref
		}
	}

	return ref, nil
}

// AddRef makes sure the target of ref is registered and, for alias
// references, that the alias name resolves to the same target.
func (c *Components) AddRef(ref *Reference) error {
	if c.sealed {
		return fmt.Errorf("%w: add reference %s", ErrLateMutation, ref.Ref())
	}

	target := ref.Target()
	if _, err := c.Add(target); err != nil {
		return err
	}
	if ref.Name() == target.Name() {
		return nil
	}

	b := &c.buckets[target.Kind()]
	if _, ok := b.defs[ref.Name()]; !ok {
		b.defs[ref.Name()] = target
		b.names = append(b.names, ref.Name())
	}
	return nil
}

// SchemaRef returns the reference of the schema previously derived from t,
// or nil.
func (c *Components) SchemaRef(t reflect.Type) *Reference {
	return c.types[t]
}

// Lookup returns the definition stored under name.
func (c *Components) Lookup(kind Kind, name string) (Definition, bool) {
	def, ok := c.buckets[kind].defs[name]
	return def, ok
}

// Schema returns the schema definition stored under name.
func (c *Components) Schema(name string) (*SchemaDef, bool) {
	def, ok := c.Lookup(KindSchema, name)
	if !ok {
		return nil, false
	}
	sd, ok := def.(*SchemaDef)
	return sd, ok
}

// Len returns the number of names registered for kind, aliases included.
func (c *Components) Len(kind Kind) int {
	return len(c.buckets[kind].names)
}

// Names returns the names registered for kind in registration order.
func (c *Components) Names(kind Kind) []string {
	return slices.Clone(c.buckets[kind].names)
}

// AddSecurityScheme registers a security scheme.
//
// See: https://spec.openapis.org/oas/v3.0.3#security-scheme-object
func (c *Components) AddSecurityScheme(name string, scheme *SecurityScheme) error {
	if c.sealed {
		return fmt.Errorf("%w: add security scheme %s", ErrLateMutation, name)
	}
	if c.securitySchemes == nil {
		c.securitySchemes = make(map[string]*SecurityScheme)
	}
	c.securitySchemes[name] = scheme
	return nil
}

// SecuritySchemes returns a copy of the registered security schemes.
func (c *Components) SecuritySchemes() map[string]*SecurityScheme {
	return maps.Clone(c.securitySchemes)
}

// Seal makes the registry read-only.
func (c *Components) Seal() {
	c.sealed = true
}

// Sealed reports whether Seal was called.
func (c *Components) Sealed() bool {
	return c.sealed
}

// empty reports whether nothing was registered.
func (c *Components) empty() bool {
	for i := range c.buckets {
		if len(c.buckets[i].names) > 0 {
			return false
		}
	}
	return len(c.securitySchemes) == 0
}

type componentsView struct {
	Schemas         map[string]any             `json:"schemas,omitempty"`
	Responses       map[string]any             `json:"responses,omitempty"`
	Parameters      map[string]any             `json:"parameters,omitempty"`
	Examples        map[string]any             `json:"examples,omitempty"`
	RequestBodies   map[string]any             `json:"requestBodies,omitempty"`
	Headers         map[string]any             `json:"headers,omitempty"`
	SecuritySchemes map[string]*SecurityScheme `json:"securitySchemes,omitempty"`
}

func (c *Components) view(kind Kind) map[string]any {
	b := c.buckets[kind]
	if len(b.names) == 0 {
		return nil
	}
	out := make(map[string]any, len(b.names))
	for _, name := range b.names {
		out[name] = b.defs[name].body()
	}
	return out
}

// MarshalJSON encodes the registry as an OpenAPI Components Object.
func (c *Components) MarshalJSON() ([]byte, error) {
	return json.Marshal(componentsView{
		Schemas:         c.view(KindSchema),
		Responses:       c.view(KindResponse),
		Parameters:      c.view(KindParameter),
		Examples:        c.view(KindExample),
		RequestBodies:   c.view(KindRequestBody),
		Headers:         c.view(KindHeader),
		SecuritySchemes: c.securitySchemes,
	})
}
