package openapi

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComponentsAdd(t *testing.T) {
	t.Run("returns the reference", func(t *testing.T) {
		c := NewComponents()
		d := NewSchemaDef("User", nil, &Schema{Type: "object"})

		ref, err := c.Add(d)
		require.NoError(t, err)
		assert.Same(t, d.CreateRef(), ref)
		assert.True(t, d.Registered())
		assert.Equal(t, 1, c.Len(KindSchema))
	})

	t.Run("keeps the first definition of a name", func(t *testing.T) {
		c := NewComponents()
		first := NewSchemaDef("User", nil, &Schema{Type: "object"})
		second := NewSchemaDef("User", nil, &Schema{Type: "object"})

		_, err := c.Add(first)
		require.NoError(t, err)
		ref, err := c.Add(second)
		require.NoError(t, err)

		assert.Same(t, first, ref.Target())
		assert.Equal(t, 1, c.Len(KindSchema))
	})

	t.Run("same name in different kinds", func(t *testing.T) {
		c := NewComponents()
		_, err := c.Add(NewSchemaDef("User-Response", nil, &Schema{}))
		require.NoError(t, err)
		_, err = c.Add(NewResponseDef("User-Response", &Response{}))
		require.NoError(t, err)

		assert.Equal(t, 1, c.Len(KindSchema))
		assert.Equal(t, 1, c.Len(KindResponse))
	})

	t.Run("indexes types", func(t *testing.T) {
		c := NewComponents()
		typ := reflect.TypeFor[User]()
		d := NewSchemaDef("User", typ, &Schema{Type: "object"})

		assert.Nil(t, c.SchemaRef(typ))
		ref, err := c.Add(d)
		require.NoError(t, err)
		assert.Same(t, ref, c.SchemaRef(typ))
	})
}

func TestComponentsAddRef(t *testing.T) {
	c := NewComponents()
	d := NewSchemaDef("User", nil, &Schema{Type: "object"})

	t.Run("registers the target", func(t *testing.T) {
		require.NoError(t, c.AddRef(d.CreateRef()))
		found, ok := c.Lookup(KindSchema, "User")
		require.True(t, ok)
		assert.Same(t, d, found)
	})

	t.Run("registers aliases", func(t *testing.T) {
		require.NoError(t, c.AddRef(d.CreateRef("Member")))
		found, ok := c.Lookup(KindSchema, "Member")
		require.True(t, ok)
		assert.Same(t, d, found)
		assert.Equal(t, []string{"User", "Member"}, c.Names(KindSchema))
	})

	t.Run("idempotent", func(t *testing.T) {
		require.NoError(t, c.AddRef(d.CreateRef("Member")))
		assert.Equal(t, 2, c.Len(KindSchema))
	})
}

func TestComponentsSeal(t *testing.T) {
	c := NewComponents()
	d := NewSchemaDef("User", nil, &Schema{})
	_, err := c.Add(d)
	require.NoError(t, err)

	c.Seal()
	assert.True(t, c.Sealed())

	_, err = c.Add(NewSchemaDef("Team", nil, &Schema{}))
	assert.ErrorIs(t, err, ErrLateMutation)

	err = c.AddRef(d.CreateRef("Member"))
	assert.ErrorIs(t, err, ErrLateMutation)

	err = c.AddSecurityScheme("bearer", &SecurityScheme{Type: "http", Scheme: "bearer"})
	assert.ErrorIs(t, err, ErrLateMutation)

	_, ok := c.Lookup(KindSchema, "User")
	assert.True(t, ok)
}

func TestComponentsLookup(t *testing.T) {
	c := NewComponents()
	_, err := c.Add(NewParameterDef("PageNo", &Parameter{Name: "pageNo", In: "query"}))
	require.NoError(t, err)

	_, ok := c.Lookup(KindParameter, "PageNo")
	assert.True(t, ok)

	_, ok = c.Lookup(KindSchema, "PageNo")
	assert.False(t, ok)

	_, ok = c.Schema("PageNo")
	assert.False(t, ok)
}

func TestComponentsMarshalJSON(t *testing.T) {
	c := NewComponents()
	_, err := c.Add(NewSchemaDef("User", nil, &Schema{Type: "object"}))
	require.NoError(t, err)
	_, err = c.Add(NewHeaderDef("X-Request-ID", &Header{Schema: &Schema{Type: "string"}}))
	require.NoError(t, err)
	require.NoError(t, c.AddSecurityScheme("bearer", &SecurityScheme{Type: "http", Scheme: "bearer"}))

	data, err := json.Marshal(c)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"schemas": {"User": {"type": "object"}},
		"headers": {"X-Request-ID": {"schema": {"type": "string"}}},
		"securitySchemes": {"bearer": {"type": "http", "scheme": "bearer"}}
	}`, string(data))
}
