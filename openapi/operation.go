package openapi

import (
	"net/http"
	"reflect"
	"slices"
	"strings"

	"github.com/vitalvas/baasdoc/respcode"
)

// operationMeta stores metadata collected via the fluent builder before the
// operation is registered. Fields correspond to the Operation Object.
//
// See: https://spec.openapis.org/oas/v3.0.3#operation-object
type operationMeta struct {
	method       string
	path         string
	operationID  string
	summary      string
	description  string
	tags         []string
	deprecated   bool
	parameters   []*Parameter
	security     []SecurityRequirement
	securitySet  bool
	externalDocs *ExternalDocs

	request            reflect.Type
	requestDescription string
	requestExamples    []namedExample

	response         reflect.Type
	status           int
	paged            bool
	responseExamples []namedExample

	errors  []respcode.Code
	queries []queryParam
}

type queryParam struct {
	name        string
	description string
	typ         reflect.Type
}

type namedExample struct {
	name  string
	value any
}

// OperationBuilder provides a fluent API for declaring one operation: its
// request and response types, declared error codes and documentation.
//
// See: https://spec.openapis.org/oas/v3.0.3#operation-object
type OperationBuilder struct {
	meta *operationMeta
}

// NewOperation starts the declaration of the operation served at path with
// method. Path may use chi patterns such as "/users/{id}" or
// "/users/{id:[0-9]+}".
func NewOperation(method, path string) *OperationBuilder {
	return &OperationBuilder{
		meta: &operationMeta{
			method: strings.ToUpper(method),
			path:   path,
			status: http.StatusOK,
		},
	}
}

// Method returns the HTTP method of the operation.
func (b *OperationBuilder) Method() string { return b.meta.method }

// Path returns the route pattern of the operation.
func (b *OperationBuilder) Path() string { return b.meta.path }

// OperationID sets the operation ID.
//
// See: https://spec.openapis.org/oas/v3.0.3#operation-object (operationId)
func (b *OperationBuilder) OperationID(id string) *OperationBuilder {
	b.meta.operationID = id
	return b
}

// Summary sets the operation summary.
//
// See: https://spec.openapis.org/oas/v3.0.3#operation-object (summary)
func (b *OperationBuilder) Summary(s string) *OperationBuilder {
	b.meta.summary = s
	return b
}

// Description sets the operation description. The description of declared
// error codes is appended to it.
//
// See: https://spec.openapis.org/oas/v3.0.3#operation-object (description)
func (b *OperationBuilder) Description(d string) *OperationBuilder {
	b.meta.description = d
	return b
}

// Tags adds one or more tags to the operation.
//
// See: https://spec.openapis.org/oas/v3.0.3#operation-object (tags)
func (b *OperationBuilder) Tags(tags ...string) *OperationBuilder {
	for _, tag := range tags {
		if !slices.Contains(b.meta.tags, tag) {
			b.meta.tags = append(b.meta.tags, tag)
		}
	}
	return b
}

// Deprecated marks the operation as deprecated.
//
// See: https://spec.openapis.org/oas/v3.0.3#operation-object (deprecated)
func (b *OperationBuilder) Deprecated() *OperationBuilder {
	b.meta.deprecated = true
	return b
}

// Request declares the JSON request body type. v is a value or a
// reflect.Type.
//
// See: https://spec.openapis.org/oas/v3.0.3#request-body-object
func (b *OperationBuilder) Request(v any) *OperationBuilder {
	b.meta.request = typeOf(v)
	return b
}

// RequestDescription sets the description of the request body.
//
// See: https://spec.openapis.org/oas/v3.0.3#request-body-object (description)
func (b *OperationBuilder) RequestDescription(desc string) *OperationBuilder {
	b.meta.requestDescription = desc
	return b
}

// RequestExample adds a named request body example.
//
// See: https://spec.openapis.org/oas/v3.0.3#media-type-object (examples)
func (b *OperationBuilder) RequestExample(name string, value any) *OperationBuilder {
	b.meta.requestExamples = append(b.meta.requestExamples, namedExample{name: name, value: value})
	return b
}

// Response declares the type of the data the operation returns in the
// response envelope. v is a value or a reflect.Type; model.Unit declares
// an operation without data.
//
// See: https://spec.openapis.org/oas/v3.0.3#response-object
func (b *OperationBuilder) Response(v any) *OperationBuilder {
	b.meta.response = typeOf(v)
	b.meta.paged = false
	return b
}

// Paged declares that the operation returns a page of items of type v and
// accepts the paging query parameters.
func (b *OperationBuilder) Paged(v any) *OperationBuilder {
	b.meta.response = typeOf(v)
	b.meta.paged = true
	return b
}

// Status sets the HTTP status of the successful response. Defaults to 200.
//
// See: https://spec.openapis.org/oas/v3.0.3#responses-object
func (b *OperationBuilder) Status(code int) *OperationBuilder {
	b.meta.status = code
	return b
}

// ResponseExample adds a named example of the response data. It is wrapped
// in a successful envelope.
//
// See: https://spec.openapis.org/oas/v3.0.3#media-type-object (examples)
func (b *OperationBuilder) ResponseExample(name string, data any) *OperationBuilder {
	b.meta.responseExamples = append(b.meta.responseExamples, namedExample{name: name, value: data})
	return b
}

// Errors declares the response codes the operation may fail with.
func (b *OperationBuilder) Errors(codes ...respcode.Code) *OperationBuilder {
	b.meta.errors = append(b.meta.errors, codes...)
	return b
}

// Parameter adds a parameter to the operation. A parameter with the same
// name and location as a path parameter replaces it.
//
// See: https://spec.openapis.org/oas/v3.0.3#parameter-object
func (b *OperationBuilder) Parameter(param *Parameter) *OperationBuilder {
	b.meta.parameters = append(b.meta.parameters, param)
	return b
}

// Query adds an optional query parameter whose schema is derived from v.
//
// See: https://spec.openapis.org/oas/v3.0.3#parameter-object
func (b *OperationBuilder) Query(name, description string, v any) *OperationBuilder {
	b.meta.queries = append(b.meta.queries, queryParam{name: name, description: description, typ: typeOf(v)})
	return b
}

// Security sets operation-level security requirements. Call with no
// arguments to mark the operation as unauthenticated.
//
// See: https://spec.openapis.org/oas/v3.0.3#security-requirement-object
func (b *OperationBuilder) Security(reqs ...SecurityRequirement) *OperationBuilder {
	if reqs == nil {
		reqs = []SecurityRequirement{}
	}
	b.meta.security = reqs
	b.meta.securitySet = true
	return b
}

// ExternalDocs sets external documentation for the operation.
//
// See: https://spec.openapis.org/oas/v3.0.3#external-documentation-object
func (b *OperationBuilder) ExternalDocs(url, description string) *OperationBuilder {
	b.meta.externalDocs = &ExternalDocs{URL: url, Description: description}
	return b
}

// mergeParameters combines path parameters with custom parameters. Custom
// parameters with the same name and location replace path parameters.
//
// See: https://spec.openapis.org/oas/v3.0.3#operation-object (parameters)
func mergeParameters(auto, custom []*Parameter) []*Parameter {
	if len(auto) == 0 && len(custom) == 0 {
		return nil
	}

	overrides := make(map[[2]string]struct{}, len(custom))
	for _, p := range custom {
		if p.Ref == "" {
			overrides[[2]string{p.Name, p.In}] = struct{}{}
		}
	}

	var merged []*Parameter
	for _, p := range auto {
		if _, ok := overrides[[2]string{p.Name, p.In}]; !ok {
			merged = append(merged, p)
		}
	}

	return append(merged, custom...)
}

// assignOperation places op on the path item field of method. It reports
// false for unknown methods.
func assignOperation(item *PathItem, method string, op *Operation) bool {
	var slot **Operation
	switch method {
	case http.MethodGet:
		slot = &item.Get
	case http.MethodPut:
		slot = &item.Put
	case http.MethodPost:
		slot = &item.Post
	case http.MethodDelete:
		slot = &item.Delete
	case http.MethodOptions:
		slot = &item.Options
	case http.MethodHead:
		slot = &item.Head
	case http.MethodPatch:
		slot = &item.Patch
	case http.MethodTrace:
		slot = &item.Trace
	default:
		return false
	}
	*slot = op
	return true
}

// operationAt returns the operation stored for method.
func operationAt(item *PathItem, method string) *Operation {
	switch method {
	case http.MethodGet:
		return item.Get
	case http.MethodPut:
		return item.Put
	case http.MethodPost:
		return item.Post
	case http.MethodDelete:
		return item.Delete
	case http.MethodOptions:
		return item.Options
	case http.MethodHead:
		return item.Head
	case http.MethodPatch:
		return item.Patch
	case http.MethodTrace:
		return item.Trace
	}
	return nil
}
