package openapi

import (
	"strings"

	"github.com/vitalvas/baasdoc/respcode"
)

// moduleDefaults holds the metadata a Module applies to every operation it
// creates.
type moduleDefaults struct {
	security     []SecurityRequirement
	securitySet  bool
	deprecated   bool
	parameters   []*Parameter
	errors       []respcode.Code
	externalDocs *ExternalDocs
}

// Module is a group of operations sharing one tag. Its tag is declared on
// the document as soon as the module is created; it only survives Complete
// when at least one operation of the document uses it.
type Module struct {
	spec     *Spec
	tag      string
	prefix   string
	defaults moduleDefaults
}

// Tag returns the name of the module tag.
func (m *Module) Tag() string {
	return m.tag
}

// Prefix sets a path prefix prepended to the path of every operation
// created through the module.
func (m *Module) Prefix(prefix string) *Module {
	m.prefix = strings.TrimSuffix(prefix, "/")
	return m
}

// Security sets the module-level security requirements. Operations inherit
// them unless they call Security themselves. Call with no arguments to mark
// the module as public.
func (m *Module) Security(reqs ...SecurityRequirement) *Module {
	if reqs == nil {
		reqs = []SecurityRequirement{}
	}
	m.defaults.security = reqs
	m.defaults.securitySet = true
	return m
}

// Deprecated marks all operations of the module as deprecated.
func (m *Module) Deprecated() *Module {
	m.defaults.deprecated = true
	return m
}

// Parameter adds a parameter shared by every operation of the module.
func (m *Module) Parameter(param *Parameter) *Module {
	m.defaults.parameters = append(m.defaults.parameters, param)
	return m
}

// Errors declares response codes every operation of the module may fail
// with.
func (m *Module) Errors(codes ...respcode.Code) *Module {
	m.defaults.errors = append(m.defaults.errors, codes...)
	return m
}

// ExternalDocs sets external documentation inherited by the operations of
// the module.
func (m *Module) ExternalDocs(url, description string) *Module {
	m.defaults.externalDocs = &ExternalDocs{URL: url, Description: description}
	return m
}

// Op returns an OperationBuilder for method and path, pre-populated with
// the module defaults.
func (m *Module) Op(method, path string) *OperationBuilder {
	b := NewOperation(method, m.prefix+path)
	b.Tags(m.tag)

	if m.defaults.securitySet {
		b.Security(m.defaults.security...)
	}
	if m.defaults.deprecated {
		b.meta.deprecated = true
	}
	b.meta.parameters = append(b.meta.parameters, m.defaults.parameters...)
	b.meta.errors = append(b.meta.errors, m.defaults.errors...)
	if m.defaults.externalDocs != nil {
		b.meta.externalDocs = m.defaults.externalDocs
	}

	return b
}

// Register registers an operation built from Op.
func (m *Module) Register(b *OperationBuilder) (*Operation, error) {
	return m.spec.Register(b)
}
