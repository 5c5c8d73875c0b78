package openapi

import (
	"fmt"
	"maps"
	"reflect"
)

// Kind selects the components bucket a Definition is registered in.
//
// See: https://spec.openapis.org/oas/v3.0.3#components-object
type Kind int

// Component kinds, in the order their buckets appear in a document.
const (
	KindSchema Kind = iota
	KindParameter
	KindHeader
	KindRequestBody
	KindResponse
	KindExample
)

var kindNames = [...]string{
	KindSchema:      "schemas",
	KindParameter:   "parameters",
	KindHeader:      "headers",
	KindRequestBody: "requestBodies",
	KindResponse:    "responses",
	KindExample:     "examples",
}

// Kinds lists every component kind.
var Kinds = []Kind{KindSchema, KindParameter, KindHeader, KindRequestBody, KindResponse, KindExample}

// String returns the components field name of the kind.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Definition is a named, referenceable component body. Two definitions
// with the same ID describe the same component.
type Definition interface {
	Kind() Kind
	Name() string
	// RefName is the name the primary reference points at.
	RefName() string
	// ID returns "/{kind}/{name}".
	ID() string
	// CreateRef returns the cached reference to the definition, creating it
	// on the first call. With an alias it returns an additional reference
	// under that name.
	CreateRef(alias ...string) *Reference
	// Reference returns the primary reference, failing with
	// ErrReferenceNotInitialized when CreateRef was never called.
	Reference() (*Reference, error)
	// Registered reports whether the definition is stored in a Components.
	Registered() bool

	base() *definition
	body() any
}

// definition is the state shared by every Definition implementation.
type definition struct {
	self    Definition
	kind    Kind
	name    string
	ref     *Reference
	aliases map[string]*Reference

	// registered is set once the definition is stored in a Components.
	registered bool
}

func (d *definition) Kind() Kind      { return d.kind }
func (d *definition) Name() string    { return d.name }
func (d *definition) RefName() string { return d.name }
func (d *definition) ID() string      { return "/" + d.kind.String() + "/" + d.name }

func (d *definition) Registered() bool { return d.registered }

func (d *definition) base() *definition { return d }

func (d *definition) CreateRef(alias ...string) *Reference {
	if len(alias) > 0 && alias[0] != "" && alias[0] != d.name {
		if r, ok := d.aliases[alias[0]]; ok {
			return r
		}
		if d.aliases == nil {
			d.aliases = make(map[string]*Reference)
		}
		r := &Reference{name: alias[0], target: d.self}
		d.aliases[alias[0]] = r
		return r
	}

	if d.ref == nil {
		d.ref = &Reference{name: d.name, target: d.self}
	}
	return d.ref
}

func (d *definition) Reference() (*Reference, error) {
	if d.ref == nil {
		return nil, fmt.Errorf("%w: %s", ErrReferenceNotInitialized, d.ID())
	}
	return d.ref, nil
}

// Reference points at a Definition by name. It only needs the name of its
// target, so it can be embedded before the target body is complete.
//
// See: https://spec.openapis.org/oas/v3.0.3#reference-object
type Reference struct {
	name   string
	target Definition
}

// Name returns the component name the reference points at.
func (r *Reference) Name() string { return r.name }

// Target returns the referenced definition.
func (r *Reference) Target() Definition { return r.target }

// Ref returns the JSON pointer of the reference, for example
// "#/components/schemas/User".
func (r *Reference) Ref() string {
	return "#/components/" + r.target.Kind().String() + "/" + r.name
}

// Schema returns the reference as a schema.
func (r *Reference) Schema() *Schema { return &Schema{Ref: r.Ref()} }

// Parameter returns the reference as a parameter.
func (r *Reference) Parameter() *Parameter { return &Parameter{Ref: r.Ref()} }

// Header returns the reference as a header.
func (r *Reference) Header() *Header { return &Header{Ref: r.Ref()} }

// RequestBody returns the reference as a request body.
func (r *Reference) RequestBody() *RequestBody { return &RequestBody{Ref: r.Ref()} }

// Response returns the reference as a response.
func (r *Reference) Response() *Response { return &Response{Ref: r.Ref()} }

// Example returns the reference as an example.
func (r *Reference) Example() *Example { return &Example{Ref: r.Ref()} }

// MarshalJSON encodes the reference as a Reference Object.
func (r *Reference) MarshalJSON() ([]byte, error) {
	return marshalRef(r.Ref())
}

// Property is one property of an object schema. Parent is the schema that
// owns it.
type Property struct {
	Name     string
	Schema   *Schema
	Required bool
	Parent   *SchemaDef
}

// Path renders the property as "Owner.name".
func (p *Property) Path() string {
	if p.Parent == nil {
		return p.Name
	}
	return p.Parent.Name() + "." + p.Name
}

// SchemaDef is a schema component. Type is the Go type the schema was
// derived from; it is nil for synthesized schemas such as envelopes.
type SchemaDef struct {
	definition
	Type   reflect.Type
	Schema *Schema

	props []*Property
}

// NewSchemaDef creates a schema definition.
func NewSchemaDef(name string, t reflect.Type, s *Schema) *SchemaDef {
	d := &SchemaDef{Type: t, Schema: s}
	d.definition = definition{self: d, kind: KindSchema, name: name}
	return d
}

func (d *SchemaDef) body() any { return d.Schema }

// Properties returns the properties in declaration order.
func (d *SchemaDef) Properties() []*Property { return d.props }

// Property returns the named property.
func (d *SchemaDef) Property(name string) (*Property, bool) {
	for _, p := range d.props {
		if p.Name == name {
			return p, true
		}
	}
	return nil, false
}

// AddProperty appends a property to the object schema.
func (d *SchemaDef) AddProperty(name string, s *Schema, required bool) *Property {
	if d.Schema.Properties == nil {
		d.Schema.Properties = make(map[string]*Schema)
	}
	d.Schema.Properties[name] = s
	if required {
		d.Schema.Required = append(d.Schema.Required, name)
	}

	p := &Property{Name: name, Schema: s, Required: required, Parent: d}
	d.props = append(d.props, p)
	return p
}

// Use returns the schema to embed wherever this definition is used: a
// reference once the definition is registered, a copy of the body otherwise.
func (d *SchemaDef) Use() *Schema {
	if d.registered {
		return d.CreateRef().Schema()
	}
	return d.Schema.clone()
}

// ParameterDef is a parameter component.
type ParameterDef struct {
	definition
	Parameter *Parameter
}

// NewParameterDef creates a parameter definition.
func NewParameterDef(name string, p *Parameter) *ParameterDef {
	d := &ParameterDef{Parameter: p}
	d.definition = definition{self: d, kind: KindParameter, name: name}
	return d
}

func (d *ParameterDef) body() any { return d.Parameter }

// HeaderDef is a header component.
type HeaderDef struct {
	definition
	Header *Header
}

// NewHeaderDef creates a header definition.
func NewHeaderDef(name string, h *Header) *HeaderDef {
	d := &HeaderDef{Header: h}
	d.definition = definition{self: d, kind: KindHeader, name: name}
	return d
}

func (d *HeaderDef) body() any { return d.Header }

// RequestBodyDef is a request body component.
type RequestBodyDef struct {
	definition
	RequestBody *RequestBody
}

// NewRequestBodyDef creates a request body definition.
func NewRequestBodyDef(name string, rb *RequestBody) *RequestBodyDef {
	d := &RequestBodyDef{RequestBody: rb}
	d.definition = definition{self: d, kind: KindRequestBody, name: name}
	return d
}

func (d *RequestBodyDef) body() any { return d.RequestBody }

// Use returns a reference once the definition is registered, a copy of the
// body otherwise.
func (d *RequestBodyDef) Use() *RequestBody {
	if d.registered {
		return d.CreateRef().RequestBody()
	}
	c := *d.RequestBody
	c.Content = maps.Clone(d.RequestBody.Content)
	return &c
}

// ResponseDef is a response component.
type ResponseDef struct {
	definition
	Response *Response
}

// NewResponseDef creates a response definition.
func NewResponseDef(name string, r *Response) *ResponseDef {
	d := &ResponseDef{Response: r}
	d.definition = definition{self: d, kind: KindResponse, name: name}
	return d
}

func (d *ResponseDef) body() any { return d.Response }

// Use returns a reference once the definition is registered, a copy of the
// body otherwise.
func (d *ResponseDef) Use() *Response {
	if d.registered {
		return d.CreateRef().Response()
	}
	return d.Response.clone()
}

// ExampleDef is an example component.
type ExampleDef struct {
	definition
	Example *Example
}

// NewExampleDef creates an example definition.
func NewExampleDef(name string, e *Example) *ExampleDef {
	d := &ExampleDef{Example: e}
	d.definition = definition{self: d, kind: KindExample, name: name}
	return d
}

func (d *ExampleDef) body() any { return d.Example }
