package openapi

import (
	"reflect"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// schemaName returns the component name of a named type. Generic
// instantiations drop package paths and brackets: "Page[pkg.User]" becomes
// "PageUser" and "Page[[]pkg.User]" becomes "PageUserList".
//
// See: https://spec.openapis.org/oas/v3.0.3#components-object (fixed fields)
func schemaName(t reflect.Type) string {
	return sanitizeName(sanitizeSchemaName(t.Name()))
}

func sanitizeSchemaName(name string) string {
	idx := strings.IndexByte(name, '[')
	if idx < 0 || !strings.HasSuffix(name, "]") {
		return name
	}

	var b strings.Builder
	b.WriteString(name[:idx])
	for _, arg := range splitTypeArgs(name[idx+1 : len(name)-1]) {
		b.WriteString(typeArgName(arg))
	}
	return b.String()
}

// splitTypeArgs splits a type argument list on its top-level commas.
func splitTypeArgs(s string) []string {
	var (
		args  []string
		depth int
		start int
	)
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '[':
			depth++
		case ']':
			depth--
		case ',':
			if depth == 0 {
				args = append(args, s[start:i])
				start = i + 1
			}
		}
	}
	return append(args, s[start:])
}

func typeArgName(arg string) string {
	arg = strings.TrimSpace(arg)

	var suffix string
	for strings.HasPrefix(arg, "[]") {
		arg = arg[2:]
		suffix += "List"
	}
	arg = strings.TrimLeft(arg, "*")

	head := arg
	if i := strings.IndexByte(arg, '['); i >= 0 {
		head = arg[:i]
	}
	if dot := strings.LastIndexByte(head, '.'); dot >= 0 {
		arg = arg[dot+1:]
	}

	return cases.Title(language.Und, cases.NoLower).String(sanitizeSchemaName(arg)) + suffix
}

// sanitizeName drops every character not allowed in a component name.
//
// See: https://spec.openapis.org/oas/v3.0.3#components-object (fixed fields)
func sanitizeName(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		}
		return -1
	}, name)
}

// TypeOf returns the reflect.Type of T. Use it for interface types, which
// cannot be passed as values.
func TypeOf[T any]() reflect.Type {
	return reflect.TypeFor[T]()
}

// typeOf accepts a reflect.Type or a value.
func typeOf(v any) reflect.Type {
	if t, ok := v.(reflect.Type); ok {
		return t
	}
	return reflect.TypeOf(v)
}
