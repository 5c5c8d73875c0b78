package openapi

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"reflect"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/vitalvas/baasdoc/model"
)

// State is the lifecycle state of a Spec.
type State int

const (
	// StateEmpty is a spec with no operation yet.
	StateEmpty State = iota
	// StateAccumulating is a spec receiving operations.
	StateAccumulating
	// StateCompleted is a spec whose document was produced. It accepts no
	// further changes.
	StateCompleted
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateAccumulating:
		return "accumulating"
	case StateCompleted:
		return "completed"
	}
	return "State(" + strconv.Itoa(int(s)) + ")"
}

// Spec accumulates operations during startup and produces the document once.
//
// A Spec is not safe for concurrent use: register every operation from one
// goroutine, then call Complete. The returned Document is read-only and may
// be shared freely.
type Spec struct {
	info            Info
	servers         []Server
	security        []SecurityRequirement
	externalDocs    *ExternalDocs
	tags            []Tag
	requestIDHeader string

	paths        map[string]*PathItem
	pathOrder    []string
	operationIDs map[string]string

	components *Components
	conv       *Converter
	env        *Envelope
	logger     *slog.Logger
	printer    *message.Printer

	state State
	errs  []error
}

// NewSpec creates a spec for a document with the given info.
func NewSpec(info Info, opts ...Option) *Spec {
	s := &Spec{
		info:            info,
		requestIDHeader: DefaultRequestIDHeader,
		paths:           make(map[string]*PathItem),
		operationIDs:    make(map[string]string),
		components:      NewComponents(),
		logger:          slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.conv = NewConverter(s.components, s.logger)

	var requestID *Reference
	if s.requestIDHeader != "" {
		requestID, _ = s.components.Add(NewHeaderDef(s.requestIDHeader, &Header{
			Description: s.translate("Request identifier, echoed from the request or generated"),
			Schema:      &Schema{Type: "string", Format: "uuid"},
		}))
	}
	s.env = NewEnvelope(s.conv, s.printer, requestID)

	return s
}

// State returns the lifecycle state.
func (s *Spec) State() State {
	return s.state
}

// Components returns the component registry of the document.
func (s *Spec) Components() *Components {
	return s.components
}

// Converter returns the converter registering into the spec components.
func (s *Spec) Converter() *Converter {
	return s.conv
}

// Envelope returns the envelope builder of the spec.
func (s *Spec) Envelope() *Envelope {
	return s.env
}

// Err returns every registration error recorded so far, joined.
func (s *Spec) Err() error {
	return errors.Join(s.errs...)
}

// AddServer adds a server to the document.
func (s *Spec) AddServer(server Server) *Spec {
	s.servers = append(s.servers, server)
	return s
}

// SetSecurity sets the document-level security requirements.
func (s *Spec) SetSecurity(reqs ...SecurityRequirement) *Spec {
	s.security = reqs
	return s
}

// SetExternalDocs sets the document-level external documentation link.
func (s *Spec) SetExternalDocs(url, description string) *Spec {
	s.externalDocs = &ExternalDocs{URL: url, Description: description}
	return s
}

// AddSecurityScheme registers a security scheme in components.
func (s *Spec) AddSecurityScheme(name string, scheme *SecurityScheme) *Spec {
	if err := s.components.AddSecurityScheme(name, scheme); err != nil {
		s.fail(err)
	}
	return s
}

// DeclareTag declares a tag. Declaring a name twice keeps the first
// declaration.
func (s *Spec) DeclareTag(tag Tag) *Spec {
	if !slices.ContainsFunc(s.tags, func(t Tag) bool { return t.Name == tag.Name }) {
		s.tags = append(s.tags, tag)
	}
	return s
}

// Module declares tag and returns a module whose operations carry it.
func (s *Spec) Module(tag Tag) *Module {
	s.DeclareTag(tag)
	return &Module{spec: s, tag: tag.Name}
}

// Schema returns the schema of v, registering the components it needs.
func (s *Spec) Schema(v any) (*Schema, error) {
	if s.state == StateCompleted {
		return nil, ErrLateMutation
	}
	schema, err := s.conv.Schema(v)
	if err != nil {
		return nil, s.fail(err)
	}
	return schema, nil
}

// Alias exposes the registered schema of v under an additional name.
func (s *Spec) Alias(v any, name string) (*Reference, error) {
	if s.state == StateCompleted {
		return nil, fmt.Errorf("%w: alias %s", ErrLateMutation, name)
	}
	def, err := s.conv.Convert(typeOf(v))
	if err != nil {
		return nil, s.fail(err)
	}
	if !def.Registered() {
		return nil, s.fail(fmt.Errorf("openapi: alias %q: schema %s is not a component", name, def.Name()))
	}
	if err := s.conv.claim(name, def.Type); err != nil {
		return nil, s.fail(err)
	}

	ref := def.CreateRef(name)
	if err := s.components.AddRef(ref); err != nil {
		return nil, s.fail(err)
	}
	return ref, nil
}

// AddPath places op in the path table under path and method.
func (s *Spec) AddPath(path, method string, op *Operation) error {
	method = strings.ToUpper(method)
	if s.state == StateCompleted {
		return fmt.Errorf("%w: %s %s", ErrLateMutation, method, path)
	}
	if op == nil {
		return s.fail(&OperationError{Method: method, Path: path, Message: "nil operation"})
	}

	opErr := func(msg string) error {
		return s.fail(&OperationError{Method: method, Path: path, OperationID: op.OperationID, Message: msg})
	}

	item, ok := s.paths[path]
	if !ok {
		item = &PathItem{}
	}
	if operationAt(item, method) != nil {
		return opErr("duplicate operation")
	}
	if prev, dup := s.operationIDs[op.OperationID]; dup && op.OperationID != "" {
		return opErr("operationId already used by " + prev)
	}
	if !assignOperation(item, method, op) {
		return opErr("unsupported method")
	}

	if !ok {
		s.paths[path] = item
		s.pathOrder = append(s.pathOrder, path)
	}
	if op.OperationID != "" {
		s.operationIDs[op.OperationID] = method + " " + path
	}
	s.state = StateAccumulating
	s.logger.Debug("operation added", "method", method, "path", path, "operation_id", op.OperationID)

	return nil
}

// Register converts the declarations of b into an operation and adds it to
// the document.
func (s *Spec) Register(b *OperationBuilder) (*Operation, error) {
	m := b.meta
	if s.state == StateCompleted {
		return nil, fmt.Errorf("%w: %s %s", ErrLateMutation, m.method, m.path)
	}

	path, pathParams, err := parsePath(m.path)
	if err != nil {
		return nil, s.fail(&OperationError{Method: m.method, Path: m.path, OperationID: m.operationID, Cause: err})
	}

	op, err := s.buildOperation(m, path, pathParams)
	if err != nil {
		return nil, s.fail(&OperationError{Method: m.method, Path: path, OperationID: op.OperationID, Cause: err})
	}

	if err := s.AddPath(path, m.method, op); err != nil {
		return nil, err
	}
	return op, nil
}

// buildOperation always returns an operation carrying at least its id so
// errors can name it.
func (s *Spec) buildOperation(m *operationMeta, path string, pathParams []*Parameter) (*Operation, error) {
	op := &Operation{
		OperationID:  m.operationID,
		Summary:      m.summary,
		Description:  m.description,
		Tags:         slices.Clone(m.tags),
		Deprecated:   m.deprecated,
		ExternalDocs: m.externalDocs,
		Responses:    make(map[string]*Response),
	}
	if op.OperationID == "" {
		op.OperationID = defaultOperationID(m.method, path)
	}
	if m.securitySet {
		op.Security = m.security
	}

	params := mergeParameters(pathParams, m.parameters)
	for _, q := range m.queries {
		schema, err := s.conv.Schema(q.typ)
		if err != nil {
			return op, fmt.Errorf("query parameter %s: %w", q.name, err)
		}
		params = append(params, &Parameter{Name: q.name, In: "query", Description: q.description, Schema: schema})
	}
	if m.paged {
		refs, err := s.pagingParameters()
		if err != nil {
			return op, err
		}
		params = append(params, refs...)
	}
	op.Parameters = params

	if m.request != nil {
		rb, err := s.requestBody(op.OperationID, m)
		if err != nil {
			return op, fmt.Errorf("request: %w", err)
		}
		op.RequestBody = rb
	}

	resp, err := s.response(op.OperationID, m)
	if err != nil {
		return op, fmt.Errorf("response: %w", err)
	}
	op.Responses[strconv.Itoa(m.status)] = resp

	errResps, codesText, err := s.env.ErrorResponses(m.errors)
	if err != nil {
		return op, fmt.Errorf("error responses: %w", err)
	}
	for status, r := range errResps {
		if _, taken := op.Responses[status]; !taken {
			op.Responses[status] = r
		}
	}
	if codesText != "" {
		if op.Description != "" {
			op.Description += "\n\n"
		}
		op.Description += codesText
	}

	return op, nil
}

func (s *Spec) requestBody(operationID string, m *operationMeta) (*RequestBody, error) {
	def, err := s.conv.Convert(m.request)
	if err != nil {
		return nil, err
	}
	def, named, err := s.env.canonical(def)
	if err != nil {
		return nil, err
	}

	name := def.Name() + "-Request"
	rbDef := NewRequestBodyDef(name, &RequestBody{
		Required: true,
		Content: map[string]*MediaType{
			contentTypeJSON: {Schema: def.Use()},
		},
	})
	if named {
		seen, err := s.env.derived(name, def)
		if err != nil {
			return nil, err
		}
		if seen {
			rbDef, _ = s.lookupRequestBody(name)
		} else {
			if _, err := s.components.Add(rbDef); err != nil {
				return nil, err
			}
			s.env.owners[name] = def
		}
	}

	if m.requestDescription == "" && len(m.requestExamples) == 0 {
		return rbDef.Use(), nil
	}

	examples, err := s.examples(operationID, m.requestExamples, func(v any) any { return v })
	if err != nil {
		return nil, err
	}
	return &RequestBody{
		Description: m.requestDescription,
		Required:    true,
		Content: map[string]*MediaType{
			contentTypeJSON: {Schema: def.Use(), Examples: examples},
		},
	}, nil
}

func (s *Spec) lookupRequestBody(name string) (*RequestBodyDef, bool) {
	def, ok := s.components.Lookup(KindRequestBody, name)
	if !ok {
		return nil, false
	}
	rb, ok := def.(*RequestBodyDef)
	return rb, ok
}

func (s *Spec) response(operationID string, m *operationMeta) (*Response, error) {
	t := m.response
	if t == nil {
		t = reflect.TypeFor[model.Unit]()
	}

	data, err := s.conv.Convert(t)
	if err != nil {
		return nil, err
	}

	var def *ResponseDef
	if m.paged {
		def, err = s.env.PagedResponse(data)
	} else {
		def, err = s.env.DataResponse(data)
	}
	if err != nil {
		return nil, err
	}

	if len(m.responseExamples) == 0 {
		return def.Use(), nil
	}

	wrap := func(v any) any { return model.OK(v) }
	if data == UnitSchema {
		wrap = func(any) any { return model.Done{Code: model.CodeOK} }
	}
	examples, err := s.examples(operationID, m.responseExamples, wrap)
	if err != nil {
		return nil, err
	}

	inline := def.Response.clone()
	inline.Content[contentTypeJSON].Examples = examples
	return inline, nil
}

// examples registers each example as the component "<operationId>.<name>".
func (s *Spec) examples(operationID string, examples []namedExample, wrap func(any) any) (map[string]*Example, error) {
	out := make(map[string]*Example, len(examples))
	for _, ex := range examples {
		ref, err := s.components.Add(NewExampleDef(operationID+"."+ex.name, &Example{
			Summary: ex.name,
			Value:   wrap(ex.value),
		}))
		if err != nil {
			return nil, err
		}
		out[ex.name] = ref.Example()
	}
	return out, nil
}

// pagingParameters returns references to the PageNo and PageSize parameter
// components.
func (s *Spec) pagingParameters() ([]*Parameter, error) {
	one, hundred := 1.0, 100.0
	defs := []*ParameterDef{
		NewParameterDef("PageNo", &Parameter{
			Name:        "pageNo",
			In:          "query",
			Description: s.translate("Page number, starting at 1"),
			Schema:      &Schema{Type: "integer", Format: "int32", Minimum: &one, Default: 1},
		}),
		NewParameterDef("PageSize", &Parameter{
			Name:        "pageSize",
			In:          "query",
			Description: s.translate("Number of items per page"),
			Schema:      &Schema{Type: "integer", Format: "int32", Minimum: &one, Maximum: &hundred, Default: 20},
		}),
	}

	refs := make([]*Parameter, 0, len(defs))
	for _, def := range defs {
		ref, err := s.components.Add(def)
		if err != nil {
			return nil, err
		}
		refs = append(refs, ref.Parameter())
	}
	return refs, nil
}

// Complete finalizes the document: unused tags are pruned and the
// components are sealed. It must be called exactly once, after every
// operation was registered. Registration errors recorded so far are
// returned joined, and no document is produced.
func (s *Spec) Complete() (*Document, error) {
	if s.state == StateCompleted {
		return nil, ErrAlreadyCompleted
	}
	s.state = StateCompleted
	s.components.Seal()

	if err := s.Err(); err != nil {
		s.logger.Error("document incomplete", "errors", len(s.errs), "error", err)
		return nil, err
	}

	doc := &Document{
		OpenAPI:      Version,
		Info:         s.info,
		Servers:      s.servers,
		Paths:        s.paths,
		Tags:         s.pruneTags(),
		Security:     s.security,
		ExternalDocs: s.externalDocs,
	}
	if !s.components.empty() {
		doc.Components = s.components
	}

	s.logger.Info("document completed",
		"paths", len(s.paths),
		"schemas", s.components.Len(KindSchema),
		"tags", len(doc.Tags),
	)

	return doc, nil
}

// pruneTags keeps the declared tags used by at least one operation, in
// declaration order, followed by used tags that were never declared.
func (s *Spec) pruneTags() []Tag {
	var used []string
	for _, path := range s.pathOrder {
		for _, op := range s.paths[path].operations() {
			for _, tag := range op.Tags {
				if !slices.Contains(used, tag) {
					used = append(used, tag)
				}
			}
		}
	}

	var tags []Tag
	for _, tag := range s.tags {
		if slices.Contains(used, tag.Name) {
			tags = append(tags, tag)
		} else {
			s.logger.Debug("tag pruned", "tag", tag.Name)
		}
	}
	for _, name := range used {
		if !slices.ContainsFunc(tags, func(t Tag) bool { return t.Name == name }) {
			tags = append(tags, Tag{Name: name})
		}
	}

	return tags
}

func (s *Spec) fail(err error) error {
	s.errs = append(s.errs, err)
	s.logger.Error("registration failed", "error", err)
	return err
}

func (s *Spec) translate(msg string) string {
	if s.printer == nil {
		return msg
	}
	return s.printer.Sprintf(msg)
}

var (
	digitsPattern = regexp.MustCompile(`^\^?(\[0-9\]|\\d)(\+|\*|\{\d+(,\d*)?\})\$?$`)
	uuidPattern   = regexp.MustCompile(`\{8\}-.*\{12\}`)
)

// parsePath converts a chi route pattern to an OpenAPI path and its path
// parameters. "{id}" is a string parameter; "{id:regexp}" infers an
// integer for digit patterns, a uuid for uuid patterns and a constrained
// string otherwise.
//
// See: https://spec.openapis.org/oas/v3.0.3#path-templating
func parsePath(pattern string) (string, []*Parameter, error) {
	var (
		b      strings.Builder
		params []*Parameter
	)

	for i := 0; i < len(pattern); i++ {
		if pattern[i] != '{' {
			b.WriteByte(pattern[i])
			continue
		}

		depth, end := 0, -1
		for j := i; j < len(pattern); j++ {
			if pattern[j] == '{' {
				depth++
			} else if pattern[j] == '}' {
				depth--
				if depth == 0 {
					end = j
					break
				}
			}
		}
		if end < 0 {
			return "", nil, fmt.Errorf("unbalanced braces in %q", pattern)
		}

		name, re, hasRe := strings.Cut(pattern[i+1:end], ":")
		if name == "" {
			return "", nil, fmt.Errorf("empty parameter name in %q", pattern)
		}

		schema := &Schema{Type: "string"}
		switch {
		case !hasRe:
		case digitsPattern.MatchString(re):
			schema = &Schema{Type: "integer", Format: "int64"}
		case uuidPattern.MatchString(re):
			schema = &Schema{Type: "string", Format: "uuid"}
		default:
			schema.Pattern = re
		}

		params = append(params, &Parameter{Name: name, In: "path", Required: true, Schema: schema})
		b.WriteString("{" + name + "}")
		i = end
	}

	return b.String(), params, nil
}

// defaultOperationID derives an operation ID such as "getUsersId" from the
// method and path.
func defaultOperationID(method, path string) string {
	caser := cases.Title(language.Und)
	var b strings.Builder
	b.WriteString(strings.ToLower(method))
	for _, seg := range strings.FieldsFunc(path, func(r rune) bool {
		return r == '/' || r == '{' || r == '}' || r == '-' || r == '_' || r == '.'
	}) {
		b.WriteString(caser.String(seg))
	}
	return b.String()
}
