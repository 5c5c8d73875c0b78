package openapi

import (
	"reflect"
	"strconv"

	"golang.org/x/text/message"

	"github.com/vitalvas/baasdoc/model"
	"github.com/vitalvas/baasdoc/respcode"
)

const (
	contentTypeJSON = "application/json"

	// ResponseSuffix is appended to the data schema name to name its
	// envelope.
	ResponseSuffix = "-Response"
)

// Envelope wraps data schemas in the response envelope every handler
// writes: {"code": ..., "data": ...}.
type Envelope struct {
	conv      *Converter
	printer   *message.Printer
	requestID *Reference

	// owners maps each component name derived from a data schema to that
	// schema.
	owners map[string]*SchemaDef
}

// NewEnvelope creates an envelope builder. Responses carry the header
// referenced by requestID when it is non-nil; descriptions are translated
// with p when it is non-nil.
func NewEnvelope(conv *Converter, p *message.Printer, requestID *Reference) *Envelope {
	return &Envelope{conv: conv, printer: p, requestID: requestID, owners: make(map[string]*SchemaDef)}
}

func (e *Envelope) headers() map[string]*Header {
	if e.requestID == nil {
		return nil
	}
	return map[string]*Header{e.requestID.Name(): e.requestID.Header()}
}

// canonical returns the definition whose name identifies data: data itself
// when it is a component or a built-in schema, the element definition for a
// pointer to one. The flag is false for derived shapes such as anonymous
// structs, maps and arrays of inline elements, whose names are not unique.
func (e *Envelope) canonical(data *SchemaDef) (*SchemaDef, bool, error) {
	for !data.Registered() && !fixedSchemas[data] {
		if data.Type == nil || data.Type.Kind() != reflect.Pointer {
			return data, false, nil
		}
		elem, err := e.conv.Convert(data.Type.Elem())
		if err != nil {
			return nil, false, err
		}
		data = elem
	}
	return data, true, nil
}

// derived reports whether the component name was already derived from
// data and fails when it was derived from another schema.
func (e *Envelope) derived(name string, data *SchemaDef) (bool, error) {
	prev, ok := e.owners[name]
	if !ok {
		return false, nil
	}
	if prev != data {
		err := &SchemaCollisionError{Name: name, Existing: prev.Type, Incoming: data.Type}
		e.conv.logger.Error("component name collision", "name", name, "error", err)
		return false, err
	}
	return true, nil
}

// DataResponse registers the envelope of data as the schema and response
// "<data>-Response". Unit data yields an envelope with only a code. Data
// without a unique name gets an unregistered definition to embed inline.
//
// See: https://spec.openapis.org/oas/v3.0.3#response-object
func (e *Envelope) DataResponse(data *SchemaDef) (*ResponseDef, error) {
	data, named, err := e.canonical(data)
	if err != nil {
		return nil, err
	}

	name := data.Name() + ResponseSuffix
	comps := e.conv.Components()

	if named {
		seen, err := e.derived(name, data)
		if err != nil {
			return nil, err
		}
		if seen {
			def, _ := comps.Lookup(KindResponse, name)
			return def.(*ResponseDef), nil
		}
	}

	env := NewSchemaDef(name, nil, &Schema{Type: "object"})
	env.AddProperty("code", ResponseCodeSchema.Use(), true)
	if data != UnitSchema {
		env.AddProperty("data", data.Use(), true)
	}

	if named {
		if err := e.conv.claim(name, nil); err != nil {
			return nil, err
		}
		if _, err := comps.Add(env); err != nil {
			return nil, err
		}
	}

	resp := NewResponseDef(name, &Response{
		Description: e.translate("Successful response"),
		Headers:     e.headers(),
		Content: map[string]*MediaType{
			contentTypeJSON: {Schema: env.Use()},
		},
	})
	if !named {
		return resp, nil
	}
	if _, err := comps.Add(resp); err != nil {
		return nil, err
	}
	e.owners[name] = data
	e.conv.logger.Debug("envelope registered", "name", name)

	return resp, nil
}

// PagedResponse registers the page schema "<item>Page" and its envelope.
// Items without a unique name get an inline page.
func (e *Envelope) PagedResponse(item *SchemaDef) (*ResponseDef, error) {
	item, named, err := e.canonical(item)
	if err != nil {
		return nil, err
	}

	name := item.Name() + "Page"
	comps := e.conv.Components()

	if named {
		seen, err := e.derived(name, item)
		if err != nil {
			return nil, err
		}
		if seen {
			page, _ := comps.Schema(name)
			return e.DataResponse(page)
		}
	}

	items, err := e.itemsOf(item)
	if err != nil {
		return nil, err
	}

	page := NewSchemaDef(name, nil, &Schema{Type: "object"})
	page.AddProperty("items", items.Use(), true)
	page.AddProperty("total", longSchema.Use(), true)
	page.AddProperty("pageNo", integerSchema.Use(), true)
	page.AddProperty("pageSize", integerSchema.Use(), true)

	if named {
		if err := e.conv.claim(name, nil); err != nil {
			return nil, err
		}
		if _, err := comps.Add(page); err != nil {
			return nil, err
		}
		e.owners[name] = item
	}

	return e.DataResponse(page)
}

func (e *Envelope) itemsOf(item *SchemaDef) (*SchemaDef, error) {
	if item.Type != nil {
		return e.conv.Convert(reflect.SliceOf(item.Type))
	}
	return NewSchemaDef(item.Name()+"Array", nil, &Schema{Type: "array", Items: item.Use()}), nil
}

// ErrorResponses returns one response per HTTP status used by codes, each
// describing the codes sent with it, and the description of all codes
// grouped by category.
//
// See: https://spec.openapis.org/oas/v3.0.3#responses-object
func (e *Envelope) ErrorResponses(codes []respcode.Code) (map[string]*Response, string, error) {
	if len(codes) == 0 {
		return nil, "", nil
	}

	body, err := e.errorBody()
	if err != nil {
		return nil, "", err
	}

	statuses, byStatus := respcode.ByStatus(codes)
	out := make(map[string]*Response, len(statuses))
	for _, status := range statuses {
		out[strconv.Itoa(status)] = &Response{
			Description: respcode.Describe(byStatus[status], e.printer),
			Headers:     e.headers(),
			Content: map[string]*MediaType{
				contentTypeJSON: {Schema: body.Use()},
			},
		}
	}

	return out, respcode.Describe(codes, e.printer), nil
}

func (e *Envelope) errorBody() (*SchemaDef, error) {
	return e.conv.Convert(reflect.TypeFor[model.ErrorBody]())
}

// Response returns the response for a handler returning t. With a non-nil
// code it returns a one-off error response for that code instead.
func (e *Envelope) Response(t reflect.Type, code *respcode.Code) (*Response, error) {
	if code != nil {
		body, err := e.errorBody()
		if err != nil {
			return nil, err
		}
		return &Response{
			Description: respcode.Text(*code, e.printer),
			Headers:     e.headers(),
			Content: map[string]*MediaType{
				contentTypeJSON: {
					Schema:  body.Use(),
					Example: model.ErrorBody{Code: code.Value, Message: respcode.Text(*code, e.printer)},
				},
			},
		}, nil
	}

	data, err := e.conv.Convert(t)
	if err != nil {
		return nil, err
	}
	def, err := e.DataResponse(data)
	if err != nil {
		return nil, err
	}
	return def.Use(), nil
}

func (e *Envelope) translate(msg string) string {
	if e.printer == nil {
		return msg
	}
	return e.printer.Sprintf(msg)
}
