package openapi

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

var (
	// ErrReferenceNotInitialized is returned when a reference is requested
	// from a definition before one was created.
	ErrReferenceNotInitialized = errors.New("openapi: reference not initialized")

	// ErrSchemaCollision is returned when two distinct types map to the same
	// schema name.
	ErrSchemaCollision = errors.New("openapi: schema name collision")

	// ErrLateMutation is returned when the document or its components are
	// modified after completion.
	ErrLateMutation = errors.New("openapi: document already completed")

	// ErrAlreadyCompleted is returned by a second call to Complete.
	ErrAlreadyCompleted = errors.New("openapi: complete called twice")

	// ErrInvalidOperation is returned for operations that cannot be placed
	// in the document.
	ErrInvalidOperation = errors.New("openapi: invalid operation")

	// ErrUnsupportedType is returned for Go types with no schema
	// representation, such as channels and functions.
	ErrUnsupportedType = errors.New("openapi: unsupported type")
)

// SchemaCollisionError names the two types that claimed the same schema name.
// Existing is nil when the name belongs to a synthesized schema.
type SchemaCollisionError struct {
	Name     string
	Existing reflect.Type
	Incoming reflect.Type
	// Path is the chain of properties that led to Incoming.
	Path []string
}

func (e *SchemaCollisionError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "openapi: schema name %q claimed by %s and %s",
		e.Name, qualifiedName(e.Existing), qualifiedName(e.Incoming))
	if len(e.Path) > 0 {
		b.WriteString(" (via ")
		b.WriteString(strings.Join(e.Path, " > "))
		b.WriteString(")")
	}
	return b.String()
}

// Is reports whether target is ErrSchemaCollision.
func (e *SchemaCollisionError) Is(target error) bool {
	return target == ErrSchemaCollision
}

// OperationError describes an operation that could not be registered.
type OperationError struct {
	Method      string
	Path        string
	OperationID string
	Message     string
	Cause       error
}

func (e *OperationError) Error() string {
	var b strings.Builder
	b.WriteString("openapi: ")
	b.WriteString(e.Method)
	b.WriteString(" ")
	b.WriteString(e.Path)
	if e.OperationID != "" {
		fmt.Fprintf(&b, " (%s)", e.OperationID)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying cause.
func (e *OperationError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is ErrInvalidOperation.
func (e *OperationError) Is(target error) bool {
	return target == ErrInvalidOperation
}

func qualifiedName(t reflect.Type) string {
	if t == nil {
		return "<synthesized>"
	}
	if t.PkgPath() == "" {
		return t.String()
	}
	return t.PkgPath() + "." + t.Name()
}
