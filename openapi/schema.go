package openapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vitalvas/baasdoc/model"
)

// Exampler can be implemented by types to provide an example value for
// their component schema.
//
//	func (u User) OpenAPIExample() any {
//	    return User{ID: 1, Name: "Alice"}
//	}
//
// See: https://spec.openapis.org/oas/v3.0.3#schema-object (example)
type Exampler interface {
	OpenAPIExample() any
}

// Enumer can be implemented by named non-struct types to restrict their
// schema to a fixed set of values. Such types become schema components.
//
// See: https://spec.openapis.org/oas/v3.0.3#schema-object (enum)
type Enumer interface {
	EnumValues() []any
}

// Built-in schemas. They are never registered; every use embeds a copy.
var (
	UnitSchema     = NewSchemaDef("Unit", reflect.TypeFor[model.Unit](), &Schema{Type: "object", Description: "no content"})
	LongIDSchema   = NewSchemaDef("LongId", reflect.TypeFor[model.LongID](), idObject(&Schema{Type: "integer", Format: "int64"}))
	StringIDSchema = NewSchemaDef("StringId", reflect.TypeFor[model.StringID](), idObject(&Schema{Type: "string"}))
	UUIDIDSchema   = NewSchemaDef("UUIDId", reflect.TypeFor[model.UUIDID](), idObject(&Schema{Type: "string", Format: "uuid"}))
	AnySchema      = NewSchemaDef("Any", reflect.TypeFor[model.Any](), &Schema{Type: "object", Description: "free-form object"})

	// ResponseCodeSchema is the type of the "code" property of every
	// response envelope.
	ResponseCodeSchema = NewSchemaDef("ResponseCode", nil, &Schema{
		Type:        "string",
		Description: "response code",
		Example:     model.CodeOK,
	})
)

var (
	booleanSchema  = NewSchemaDef("Boolean", nil, &Schema{Type: "boolean"})
	integerSchema  = NewSchemaDef("Integer", nil, &Schema{Type: "integer", Format: "int32"})
	longSchema     = NewSchemaDef("Long", nil, &Schema{Type: "integer", Format: "int64"})
	floatSchema    = NewSchemaDef("Float", nil, &Schema{Type: "number", Format: "float"})
	doubleSchema   = NewSchemaDef("Double", nil, &Schema{Type: "number", Format: "double"})
	stringSchema   = NewSchemaDef("String", nil, &Schema{Type: "string"})
	dateTimeSchema = NewSchemaDef("DateTime", nil, &Schema{Type: "string", Format: "date-time"})
	uuidSchema     = NewSchemaDef("UUID", nil, &Schema{Type: "string", Format: "uuid"})
	bytesSchema    = NewSchemaDef("Bytes", nil, &Schema{Type: "string", Format: "byte"})
	objectSchema   = NewSchemaDef("Object", nil, &Schema{Type: "object"})
)

var builtins = map[reflect.Type]*SchemaDef{
	UnitSchema.Type:                    UnitSchema,
	LongIDSchema.Type:                  LongIDSchema,
	StringIDSchema.Type:                StringIDSchema,
	UUIDIDSchema.Type:                  UUIDIDSchema,
	AnySchema.Type:                     AnySchema,
	reflect.TypeFor[any]():             AnySchema,
	reflect.TypeFor[json.RawMessage](): AnySchema,
	reflect.TypeFor[time.Time]():       dateTimeSchema,
	reflect.TypeFor[uuid.UUID]():       uuidSchema,
	reflect.TypeFor[[]byte]():          bytesSchema,
}

// fixedSchemas are the package-level schemas. Each name always denotes
// the same body.
var fixedSchemas = map[*SchemaDef]bool{
	UnitSchema: true, LongIDSchema: true, StringIDSchema: true, UUIDIDSchema: true, AnySchema: true,
	booleanSchema: true, integerSchema: true, longSchema: true, floatSchema: true, doubleSchema: true,
	stringSchema: true, dateTimeSchema: true, uuidSchema: true, bytesSchema: true, objectSchema: true,
}

func idObject(id *Schema) *Schema {
	return &Schema{
		Type:       "object",
		Properties: map[string]*Schema{"id": id},
		Required:   []string{"id"},
	}
}

// IsBuiltin reports whether def is one of the built-in schemas.
func IsBuiltin(def *SchemaDef) bool {
	switch def {
	case UnitSchema, LongIDSchema, StringIDSchema, UUIDIDSchema, AnySchema:
		return true
	}
	return false
}

// Converter derives schemas from Go types and registers every named type
// it meets in a Components registry, exactly once per type.
//
// Named struct and enum types become schema components referenced by $ref.
// A component is registered before its properties are converted, so a
// property that leads back to a type under conversion resolves to a
// reference instead of recursing.
//
// See: https://spec.openapis.org/oas/v3.0.3#schema-object
type Converter struct {
	components *Components
	logger     *slog.Logger

	// names maps every claimed schema name to the type that claimed it.
	names map[string]reflect.Type
	// path is the chain of properties under conversion.
	path []string
}

// NewConverter creates a converter registering into c. A nil logger
// discards output.
func NewConverter(c *Components, logger *slog.Logger) *Converter {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Converter{
		components: c,
		logger:     logger,
		names:      make(map[string]reflect.Type),
	}
}

// Components returns the registry the converter writes to.
func (c *Converter) Components() *Components {
	return c.components
}

// Schema returns the schema to embed for v, which is either a value or a
// reflect.Type.
func (c *Converter) Schema(v any) (*Schema, error) {
	t := typeOf(v)
	if t == nil {
		return nil, fmt.Errorf("%w: nil", ErrUnsupportedType)
	}
	def, err := c.Convert(t)
	if err != nil {
		return nil, err
	}
	return def.Use(), nil
}

// Convert returns the schema definition of t. Named types are registered on
// first use and looked up afterwards.
func (c *Converter) Convert(t reflect.Type) (*SchemaDef, error) {
	if def, ok := builtins[t]; ok {
		return def, nil
	}

	switch t.Kind() {
	case reflect.Pointer:
		inner, err := c.Convert(t.Elem())
		if err != nil {
			return nil, err
		}
		return NewSchemaDef(inner.Name(), t, nullable(inner.Use())), nil

	case reflect.Slice, reflect.Array:
		return c.convertArray(t)

	case reflect.Map:
		return c.convertMap(t)

	case reflect.Struct:
		if t.Name() == "" {
			return c.convertAnonymous(t)
		}
		return c.convertNamed(t, c.populateStruct)

	case reflect.Interface:
		return AnySchema, nil
	}

	prim, ok := primitive(t.Kind())
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, t)
	}
	if t.Name() != "" && t.PkgPath() != "" {
		if _, isEnum := reflect.New(t).Interface().(Enumer); isEnum {
			return c.convertNamed(t, func(def *SchemaDef) error {
				values := reflect.New(t).Interface().(Enumer).EnumValues()
				def.Schema.Enum = values
				return nil
			})
		}
	}
	return prim, nil
}

func primitive(k reflect.Kind) (*SchemaDef, bool) {
	switch k {
	case reflect.Bool:
		return booleanSchema, true
	case reflect.Int8, reflect.Int16, reflect.Int32,
		reflect.Uint8, reflect.Uint16, reflect.Uint32:
		return integerSchema, true
	case reflect.Int, reflect.Int64, reflect.Uint, reflect.Uint64:
		return longSchema, true
	case reflect.Float32:
		return floatSchema, true
	case reflect.Float64:
		return doubleSchema, true
	case reflect.String:
		return stringSchema, true
	}
	return nil, false
}

// convertNamed registers the component for t before populate fills it in.
func (c *Converter) convertNamed(t reflect.Type, populate func(*SchemaDef) error) (*SchemaDef, error) {
	if ref := c.components.SchemaRef(t); ref != nil {
		return ref.Target().(*SchemaDef), nil
	}

	name := schemaName(t)
	if err := c.claim(name, t); err != nil {
		return nil, err
	}

	var body *Schema
	if t.Kind() == reflect.Struct {
		body = &Schema{Type: "object"}
	} else {
		prim, _ := primitive(t.Kind())
		body = prim.Schema.clone()
	}

	def := NewSchemaDef(name, t, body)
	if _, err := c.components.Add(def); err != nil {
		return nil, err
	}
	c.logger.Debug("schema registered", "name", name, "type", qualifiedName(t))

	if err := populate(def); err != nil {
		return nil, err
	}

	if ex, ok := reflect.New(t).Interface().(Exampler); ok {
		def.Schema.Example = ex.OpenAPIExample()
	}

	return def, nil
}

// claim reserves name for t. A name may only ever be claimed by one type.
func (c *Converter) claim(name string, t reflect.Type) error {
	existing, ok := c.names[name]
	if !ok {
		if def, taken := c.components.Schema(name); taken {
			existing, ok = def.Type, true
		}
	}
	if ok && (existing != t || t == nil) {
		err := &SchemaCollisionError{
			Name:     name,
			Existing: existing,
			Incoming: t,
			Path:     append([]string(nil), c.path...),
		}
		c.logger.Error("schema name collision", "name", name, "error", err)
		return err
	}

	c.names[name] = t
	return nil
}

func (c *Converter) convertArray(t reflect.Type) (*SchemaDef, error) {
	elemType := t.Elem()
	if t.Kind() == reflect.Slice && elemType.Kind() == reflect.Uint8 {
		return bytesSchema, nil
	}

	st := reflect.SliceOf(elemType)
	if ref := c.components.SchemaRef(st); ref != nil {
		return ref.Target().(*SchemaDef), nil
	}

	elem, err := c.Convert(elemType)
	if err != nil {
		return nil, err
	}

	// Converting the element may have registered this array already.
	if ref := c.components.SchemaRef(st); ref != nil {
		return ref.Target().(*SchemaDef), nil
	}

	def := NewSchemaDef(elem.Name()+"Array", st, &Schema{Type: "array", Items: elem.Use()})
	if !elem.registered {
		return def, nil
	}

	if err := c.claim(def.Name(), st); err != nil {
		return nil, err
	}
	if _, err := c.components.Add(def); err != nil {
		return nil, err
	}
	c.logger.Debug("schema registered", "name", def.Name(), "type", st.String())

	return def, nil
}

func (c *Converter) convertMap(t reflect.Type) (*SchemaDef, error) {
	if t.Key().Kind() != reflect.String {
		return objectSchema, nil
	}

	value, err := c.Convert(t.Elem())
	if err != nil {
		return nil, err
	}

	return NewSchemaDef(value.Name()+"Map", t, &Schema{
		Type:                 "object",
		AdditionalProperties: value.Use(),
	}), nil
}

func (c *Converter) convertAnonymous(t reflect.Type) (*SchemaDef, error) {
	def := NewSchemaDef(objectSchema.Name(), t, &Schema{Type: "object"})
	if err := c.populateStruct(def); err != nil {
		return nil, err
	}
	return def, nil
}

func (c *Converter) populateStruct(def *SchemaDef) error {
	return c.collectFields(def, def.Type, false, make(map[reflect.Type]bool))
}

// collectFields adds the exported fields of t to def. Embedded structs
// without a json name are inlined; when embedded by pointer all their
// fields become optional.
func (c *Converter) collectFields(def *SchemaDef, t reflect.Type, allOptional bool, seen map[reflect.Type]bool) error {
	if seen[t] {
		return nil
	}
	seen[t] = true

	for i := range t.NumField() {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		if field.Anonymous {
			jsonName, _ := parseJSONTag(field.Tag.Get("json"))
			if jsonName == "" {
				ft := field.Type
				isPtr := ft.Kind() == reflect.Pointer
				if isPtr {
					ft = ft.Elem()
				}
				if ft.Kind() == reflect.Struct {
					if err := c.collectFields(def, ft, allOptional || isPtr, seen); err != nil {
						return err
					}
					continue
				}
			}
		}

		jsonTag := field.Tag.Get("json")
		if jsonTag == "-" {
			continue
		}
		name, opts := parseJSONTag(jsonTag)
		if name == "" {
			name = field.Name
		}

		s, err := c.fieldSchema(def.Name()+"."+name, field.Type)
		if errors.Is(err, ErrUnsupportedType) {
			c.logger.Debug("field skipped", "field", def.Name()+"."+name, "type", field.Type.String())
			continue
		}
		if err != nil {
			return err
		}

		if tag := field.Tag.Get("openapi"); tag != "" {
			if s.Ref != "" {
				s = &Schema{AllOf: []*Schema{s}}
			}
			applyOpenAPITag(s, tag)
		}
		if opts.stringEncode && s.Ref == "" && len(s.AllOf) == 0 {
			s.Type = "string"
			s.Format = ""
		}

		def.AddProperty(name, s, !opts.omitempty && !allOptional)
	}

	return nil
}

func (c *Converter) fieldSchema(path string, t reflect.Type) (*Schema, error) {
	c.path = append(c.path, path)
	defer func() { c.path = c.path[:len(c.path)-1] }()

	def, err := c.Convert(t)
	if err != nil {
		return nil, err
	}
	return def.Use(), nil
}

// nullable marks s as accepting null. A reference cannot carry siblings in
// OpenAPI 3.0, so it is wrapped in allOf.
//
// See: https://spec.openapis.org/oas/v3.0.3#schema-object (nullable)
func nullable(s *Schema) *Schema {
	if s.Ref != "" {
		return &Schema{AllOf: []*Schema{s}, Nullable: true}
	}
	s.Nullable = true
	return s
}

type jsonTagOpts struct {
	omitempty    bool
	stringEncode bool
}

func parseJSONTag(tag string) (string, jsonTagOpts) {
	if tag == "" {
		return "", jsonTagOpts{}
	}
	name, rest, _ := strings.Cut(tag, ",")
	var opts jsonTagOpts
	for opt := range strings.SplitSeq(rest, ",") {
		switch opt {
		case "omitempty", "omitzero":
			opts.omitempty = true
		case "string":
			opts.stringEncode = true
		}
	}
	return name, opts
}

// applyOpenAPITag parses the `openapi` struct tag and applies its keywords
// to the schema.
//
// See: https://spec.openapis.org/oas/v3.0.3#properties
func applyOpenAPITag(schema *Schema, tag string) {
	for part := range strings.SplitSeq(tag, ",") {
		key, value, _ := strings.Cut(part, "=")
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		switch key {
		case "description":
			schema.Description = value
		case "example":
			schema.Example = parseTagValue(schema, value)
		case "default":
			schema.Default = parseTagValue(schema, value)
		case "format":
			schema.Format = value
		case "title":
			schema.Title = value
		case "pattern":
			schema.Pattern = value
		case "minimum":
			schema.Minimum = parseFloat(value)
		case "maximum":
			schema.Maximum = parseFloat(value)
		case "exclusiveMinimum":
			schema.Minimum = parseFloat(value)
			schema.ExclusiveMinimum = schema.Minimum != nil
		case "exclusiveMaximum":
			schema.Maximum = parseFloat(value)
			schema.ExclusiveMaximum = schema.Maximum != nil
		case "multipleOf":
			schema.MultipleOf = parseFloat(value)
		case "minLength":
			schema.MinLength = parseInt(value)
		case "maxLength":
			schema.MaxLength = parseInt(value)
		case "minItems":
			schema.MinItems = parseInt(value)
		case "maxItems":
			schema.MaxItems = parseInt(value)
		case "minProperties":
			schema.MinProperties = parseInt(value)
		case "maxProperties":
			schema.MaxProperties = parseInt(value)
		case "uniqueItems":
			schema.UniqueItems = true
		case "enum":
			values := strings.Split(value, "|")
			schema.Enum = make([]any, len(values))
			for i, v := range values {
				schema.Enum[i] = parseTagValue(schema, v)
			}
		case "deprecated":
			schema.Deprecated = true
		case "readOnly":
			schema.ReadOnly = true
		case "writeOnly":
			schema.WriteOnly = true
		case "nullable":
			schema.Nullable = true
		}
	}
}

// parseTagValue converts a tag value to the Go type matching the schema type.
func parseTagValue(schema *Schema, value string) any {
	switch schema.Type {
	case "integer":
		if v, err := strconv.ParseInt(value, 10, 64); err == nil {
			return v
		}
	case "number":
		if v, err := strconv.ParseFloat(value, 64); err == nil {
			return v
		}
	case "boolean":
		if v, err := strconv.ParseBool(value); err == nil {
			return v
		}
	}
	return value
}

func parseFloat(value string) *float64 {
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil
	}
	return &v
}

func parseInt(value string) *int {
	v, err := strconv.Atoi(value)
	if err != nil {
		return nil
	}
	return &v
}
