// Package openapi builds an OpenAPI v3.0.3 document from Go types at
// application startup.
//
// See: https://spec.openapis.org/oas/v3.0.3
//
// # Spec
//
// A Spec collects operations while routes are set up and produces the
// document once:
//
//	spec := openapi.NewSpec(openapi.Info{Title: "BaaS API", Version: "1.0.0"},
//	    openapi.WithLogger(logger),
//	)
//
//	users := spec.Module(openapi.Tag{Name: "users"}).
//	    Prefix("/api/v1").
//	    Errors(codes.Unauthorized)
//
//	users.Register(users.Op(http.MethodGet, "/users/{id:[0-9]+}").
//	    OperationID("getUser").
//	    Summary("Get a user").
//	    Response(User{}).
//	    Errors(codes.UserNotFound))
//
//	doc, err := spec.Complete()
//
// Complete may be called once. It prunes declared tags that no operation
// uses, seals the components and returns every registration error joined.
// Nothing can be added afterwards.
//
// # Components
//
// Every named component lives in a Components registry, one bucket per
// Kind. Components are Definitions: SchemaDef, ParameterDef, HeaderDef,
// RequestBodyDef, ResponseDef and ExampleDef. A Definition is identified by
// its ID, "/{kind}/{name}", and is referenced through a Reference created on
// first use and cached afterwards.
//
// See: https://spec.openapis.org/oas/v3.0.3#components-object
//
// # Schemas
//
// The Converter maps Go types to schemas:
//
//	bool                        -> boolean
//	int8..int32, uint8..uint32  -> integer (int32)
//	int, int64, uint, uint64    -> integer (int64)
//	float32, float64            -> number (float, double)
//	string                      -> string
//	time.Time                   -> string (date-time)
//	uuid.UUID                   -> string (uuid)
//	[]byte                      -> string (byte)
//	[]T, [N]T                   -> array, named "<T>Array"
//	map[string]T                -> object with additionalProperties
//	*T                          -> T with nullable: true
//	named struct                -> component, referenced by $ref
//	named type with EnumValues  -> enum component
//	any                         -> free-form object
//
// Named types are converted once: the registry indexes every component by
// its reflect.Type. A component is registered before its fields are
// converted, so self-referencing and mutually referencing types resolve
// to $ref instead of recursing.
//
// Schema names are the bare type names, with generic instantiations
// flattened: Page[User] becomes "PageUser". Two different types mapping to
// the same name fail with a *SchemaCollisionError.
//
// Struct fields are named by their json tag. The openapi tag adds schema
// keywords:
//
//	type CreateUser struct {
//	    Name  string `json:"name" openapi:"description=Display name,minLength=1,maxLength=64"`
//	    Email string `json:"email" openapi:"format=email,example=alice@example.com"`
//	    Role  string `json:"role,omitempty" openapi:"enum=admin|member"`
//	}
//
// Supported keys: description, example, default, format, title, pattern,
// minimum, maximum, exclusiveMinimum, exclusiveMaximum, multipleOf,
// minLength, maxLength, minItems, maxItems, minProperties, maxProperties,
// uniqueItems, enum, deprecated, readOnly, writeOnly, nullable.
//
// # Envelope
//
// Successful responses wrap their data in {"code": "OK", "data": ...}. For
// a data schema named User the envelope is registered as the schema and
// response "User-Response", and a request body of type User becomes the
// request body component "User-Request". Only components and built-in
// schemas name these components: data of a derived shape, such as an
// anonymous struct, a map or a slice of pointers, is embedded inline.
// Two schemas deriving the same component name fail with a
// SchemaCollisionError. Declared error codes become one response per
// HTTP status, described by the codes sent with it.
//
// # Serving
//
// Document.Handle serves the completed document as JSON and YAML and an
// interactive docs page (Swagger UI, RapiDoc or Redoc) on a chi router.
package openapi
