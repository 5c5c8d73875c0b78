package openapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitalvas/baasdoc/model"
)

type CreateUser struct {
	Name  string `json:"name" openapi:"minLength=1"`
	Email string `json:"email" openapi:"format=email"`
}

func newSpec() *Spec {
	return NewSpec(Info{Title: "Test API", Version: "1.0.0"})
}

func TestSpecLifecycle(t *testing.T) {
	spec := newSpec()
	assert.Equal(t, StateEmpty, spec.State())

	_, err := spec.Register(NewOperation(http.MethodGet, "/ping"))
	require.NoError(t, err)
	assert.Equal(t, StateAccumulating, spec.State())

	doc, err := spec.Complete()
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Equal(t, StateCompleted, spec.State())
	assert.True(t, spec.Components().Sealed())

	t.Run("complete twice", func(t *testing.T) {
		doc, err := spec.Complete()
		assert.Nil(t, doc)
		assert.ErrorIs(t, err, ErrAlreadyCompleted)
	})

	t.Run("register after complete", func(t *testing.T) {
		_, err := spec.Register(NewOperation(http.MethodGet, "/late"))
		assert.ErrorIs(t, err, ErrLateMutation)
	})

	t.Run("add path after complete", func(t *testing.T) {
		err := spec.AddPath("/late", http.MethodGet, &Operation{})
		assert.ErrorIs(t, err, ErrLateMutation)
	})

	t.Run("add component after complete", func(t *testing.T) {
		_, err := spec.Components().Add(NewSchemaDef("Late", nil, &Schema{}))
		assert.ErrorIs(t, err, ErrLateMutation)
	})

	t.Run("schema after complete", func(t *testing.T) {
		_, err := spec.Schema(Address{})
		assert.ErrorIs(t, err, ErrLateMutation)
	})

	t.Run("alias after complete", func(t *testing.T) {
		_, err := spec.Alias(Address{}, "Place")
		assert.ErrorIs(t, err, ErrLateMutation)
		assert.NotContains(t, spec.conv.names, "Place")
	})

	t.Run("document unchanged", func(t *testing.T) {
		assert.Len(t, doc.Paths, 1)
		assert.NotContains(t, doc.Paths, "/late")
	})
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "empty", StateEmpty.String())
	assert.Equal(t, "accumulating", StateAccumulating.String())
	assert.Equal(t, "completed", StateCompleted.String())
	assert.Equal(t, "State(7)", State(7).String())
}

func TestSpecEmpty(t *testing.T) {
	doc, err := newSpec().Complete()
	require.NoError(t, err)

	data, err := doc.JSON()
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, Version, out["openapi"])
	assert.Equal(t, map[string]any{}, out["paths"])
	assert.NotContains(t, out, "tags")
}

func TestSpecTags(t *testing.T) {
	t.Run("unused tags are pruned", func(t *testing.T) {
		spec := newSpec()
		spec.DeclareTag(Tag{Name: "A", Description: "first"})
		spec.DeclareTag(Tag{Name: "B"})
		spec.DeclareTag(Tag{Name: "C"})

		_, err := spec.Register(NewOperation(http.MethodGet, "/c").Tags("C"))
		require.NoError(t, err)
		_, err = spec.Register(NewOperation(http.MethodGet, "/a").Tags("A"))
		require.NoError(t, err)

		doc, err := spec.Complete()
		require.NoError(t, err)
		assert.Equal(t, []Tag{{Name: "A", Description: "first"}, {Name: "C"}}, doc.Tags)
	})

	t.Run("undeclared tags are appended", func(t *testing.T) {
		spec := newSpec()
		spec.DeclareTag(Tag{Name: "A"})

		_, err := spec.Register(NewOperation(http.MethodGet, "/x").Tags("X", "A"))
		require.NoError(t, err)

		doc, err := spec.Complete()
		require.NoError(t, err)
		assert.Equal(t, []Tag{{Name: "A"}, {Name: "X"}}, doc.Tags)
	})

	t.Run("first declaration wins", func(t *testing.T) {
		spec := newSpec()
		spec.DeclareTag(Tag{Name: "A", Description: "first"})
		spec.DeclareTag(Tag{Name: "A", Description: "second"})

		_, err := spec.Register(NewOperation(http.MethodGet, "/a").Tags("A"))
		require.NoError(t, err)

		doc, err := spec.Complete()
		require.NoError(t, err)
		assert.Equal(t, []Tag{{Name: "A", Description: "first"}}, doc.Tags)
	})
}

func TestSpecRegister(t *testing.T) {
	spec := newSpec()

	get, err := spec.Register(NewOperation(http.MethodGet, "/users/{id:[0-9]+}").
		Summary("Get a user").
		Description("Returns one user.").
		Response(User{}).
		Errors(codeNotFound))
	require.NoError(t, err)

	create, err := spec.Register(NewOperation(http.MethodPost, "/users").
		OperationID("createUser").
		Request(CreateUser{}).
		RequestExample("alice", CreateUser{Name: "alice", Email: "alice@example.com"}).
		Status(http.StatusCreated).
		Response(model.LongID{}).
		Errors(codeBadRequest, codeDevErr))
	require.NoError(t, err)

	list, err := spec.Register(NewOperation(http.MethodGet, "/users").
		Paged(User{}).
		Query("q", "search term", ""))
	require.NoError(t, err)

	update, err := spec.Register(NewOperation(http.MethodPut, "/users/{id:[0-9]+}").
		OperationID("updateUser").
		Request(CreateUser{}).
		Response(User{}).
		ResponseExample("updated", User{ID: 1, Name: "bob"}))
	require.NoError(t, err)

	doc, err := spec.Complete()
	require.NoError(t, err)

	t.Run("path template", func(t *testing.T) {
		item := doc.Paths["/users/{id}"]
		require.NotNil(t, item)
		assert.Same(t, get, item.Get)
		assert.Same(t, update, item.Put)
		assert.Same(t, create, doc.Paths["/users"].Post)
		assert.Same(t, list, doc.Paths["/users"].Get)
	})

	t.Run("default operation id", func(t *testing.T) {
		assert.Equal(t, "getUsersId", get.OperationID)
		assert.Equal(t, "getUsers", list.OperationID)
	})

	t.Run("path parameters", func(t *testing.T) {
		require.Len(t, get.Parameters, 1)
		p := get.Parameters[0]
		assert.Equal(t, "id", p.Name)
		assert.Equal(t, "path", p.In)
		assert.True(t, p.Required)
		assert.Equal(t, &Schema{Type: "integer", Format: "int64"}, p.Schema)
	})

	t.Run("data response", func(t *testing.T) {
		assert.Equal(t, "#/components/responses/User-Response", get.Responses["200"].Ref)
		assert.Equal(t, "#/components/responses/LongId-Response", create.Responses["201"].Ref)
		assert.NotContains(t, create.Responses, "200")
	})

	t.Run("error responses", func(t *testing.T) {
		require.Contains(t, get.Responses, "404")
		assert.Equal(t, "Client:\n- 404: Not found", get.Responses["404"].Description)
		assert.Equal(t, "Returns one user.\n\nClient:\n- 404: Not found", get.Description)

		assert.Contains(t, create.Responses, "400")
		assert.Contains(t, create.Responses, "500")
		assert.Equal(t, "Client:\n- 400: Bad request\nSystem:\n- DEV_ERR: Developer error", create.Description)
	})

	t.Run("request body", func(t *testing.T) {
		rb := create.RequestBody
		require.NotNil(t, rb)
		assert.True(t, rb.Required)

		media := rb.Content["application/json"]
		assert.Equal(t, "#/components/schemas/CreateUser", media.Schema.Ref)
		assert.Equal(t, "#/components/examples/createUser.alice", media.Examples["alice"].Ref)

		assert.Equal(t, "#/components/requestBodies/CreateUser-Request", update.RequestBody.Ref)

		ex, ok := spec.Components().Lookup(KindExample, "createUser.alice")
		require.True(t, ok)
		assert.Equal(t, CreateUser{Name: "alice", Email: "alice@example.com"}, ex.(*ExampleDef).Example.Value)
	})

	t.Run("response examples", func(t *testing.T) {
		resp := update.Responses["200"]
		assert.Empty(t, resp.Ref)
		media := resp.Content["application/json"]
		assert.Equal(t, "#/components/schemas/User-Response", media.Schema.Ref)
		assert.Equal(t, "#/components/examples/updateUser.updated", media.Examples["updated"].Ref)

		ex, ok := spec.Components().Lookup(KindExample, "updateUser.updated")
		require.True(t, ok)
		assert.Equal(t, model.OK[any](User{ID: 1, Name: "bob"}), ex.(*ExampleDef).Example.Value)

		shared, ok := spec.Components().Lookup(KindResponse, "User-Response")
		require.True(t, ok)
		assert.Nil(t, shared.(*ResponseDef).Response.Content["application/json"].Examples)
	})

	t.Run("paged", func(t *testing.T) {
		assert.Equal(t, "#/components/responses/UserPage-Response", list.Responses["200"].Ref)

		require.Len(t, list.Parameters, 3)
		assert.Equal(t, "q", list.Parameters[0].Name)
		assert.Equal(t, "query", list.Parameters[0].In)
		assert.Equal(t, &Schema{Type: "string"}, list.Parameters[0].Schema)
		assert.Equal(t, "#/components/parameters/PageNo", list.Parameters[1].Ref)
		assert.Equal(t, "#/components/parameters/PageSize", list.Parameters[2].Ref)
	})

	t.Run("unit response", func(t *testing.T) {
		_, ok := spec.Components().Lookup(KindResponse, "Unit-Response")
		assert.False(t, ok)
	})
}

func TestSpecRegisterErrors(t *testing.T) {
	t.Run("duplicate operation", func(t *testing.T) {
		spec := newSpec()
		_, err := spec.Register(NewOperation(http.MethodGet, "/a"))
		require.NoError(t, err)

		_, err = spec.Register(NewOperation(http.MethodGet, "/a").OperationID("other"))
		require.ErrorIs(t, err, ErrInvalidOperation)
		assert.Contains(t, err.Error(), "duplicate operation")

		doc, err := spec.Complete()
		assert.Nil(t, doc)
		assert.ErrorIs(t, err, ErrInvalidOperation)
	})

	t.Run("duplicate operation id", func(t *testing.T) {
		spec := newSpec()
		_, err := spec.Register(NewOperation(http.MethodGet, "/a").OperationID("op"))
		require.NoError(t, err)

		_, err = spec.Register(NewOperation(http.MethodGet, "/b").OperationID("op"))
		require.ErrorIs(t, err, ErrInvalidOperation)
		assert.Contains(t, err.Error(), "GET /a")
	})

	t.Run("unsupported method", func(t *testing.T) {
		spec := newSpec()
		_, err := spec.Register(NewOperation(http.MethodConnect, "/a"))
		assert.ErrorIs(t, err, ErrInvalidOperation)
	})

	t.Run("nil operation", func(t *testing.T) {
		spec := newSpec()
		err := spec.AddPath("/a", http.MethodGet, nil)
		assert.ErrorIs(t, err, ErrInvalidOperation)
	})

	t.Run("invalid path", func(t *testing.T) {
		spec := newSpec()
		_, err := spec.Register(NewOperation(http.MethodGet, "/a/{id"))
		require.ErrorIs(t, err, ErrInvalidOperation)
		assert.Contains(t, err.Error(), "unbalanced")
		assert.Equal(t, StateEmpty, spec.State())
	})

	t.Run("unsupported response type", func(t *testing.T) {
		spec := newSpec()
		_, err := spec.Register(NewOperation(http.MethodGet, "/a").Response(make(chan int)))
		assert.ErrorIs(t, err, ErrUnsupportedType)
		assert.ErrorIs(t, err, ErrInvalidOperation)
	})

	t.Run("schema collision", func(t *testing.T) {
		type User struct {
			Email string `json:"email"`
		}

		spec := newSpec()
		_, err := spec.Schema(TypeOf[Team]())
		require.NoError(t, err)

		_, err = spec.Register(NewOperation(http.MethodGet, "/other").Response(User{}))
		require.ErrorIs(t, err, ErrSchemaCollision)

		doc, err := spec.Complete()
		assert.Nil(t, doc)
		assert.ErrorIs(t, err, ErrSchemaCollision)
	})

	t.Run("every error is reported", func(t *testing.T) {
		spec := newSpec()
		_, _ = spec.Register(NewOperation(http.MethodGet, "/a/{"))
		_, _ = spec.Register(NewOperation(http.MethodGet, "/b").Response(func() {}))

		_, err := spec.Complete()
		require.Error(t, err)

		var joined interface{ Unwrap() []error }
		require.True(t, errors.As(err, &joined))
		assert.Len(t, joined.Unwrap(), 2)
	})
}

func TestSpecAlias(t *testing.T) {
	t.Run("alias", func(t *testing.T) {
		spec := newSpec()
		ref, err := spec.Alias(User{}, "Member")
		require.NoError(t, err)
		assert.Equal(t, "#/components/schemas/Member", ref.Ref())

		member, ok := spec.Components().Lookup(KindSchema, "Member")
		require.True(t, ok)
		user, ok := spec.Components().Lookup(KindSchema, "User")
		require.True(t, ok)
		assert.Same(t, user, member)
	})

	t.Run("not a component", func(t *testing.T) {
		spec := newSpec()
		_, err := spec.Alias("", "Text")
		assert.Error(t, err)
		assert.Equal(t, 0, spec.Components().Len(KindSchema))
	})

	t.Run("name taken", func(t *testing.T) {
		spec := newSpec()
		_, err := spec.Schema(User{})
		require.NoError(t, err)

		_, err = spec.Alias(Address{}, "User")
		assert.ErrorIs(t, err, ErrSchemaCollision)
	})
}

func TestSpecDerivedBodies(t *testing.T) {
	spec := newSpec()

	getA, err := spec.Register(NewOperation(http.MethodGet, "/a").Response(struct {
		A int `json:"a"`
	}{}))
	require.NoError(t, err)
	getB, err := spec.Register(NewOperation(http.MethodGet, "/b").Response(struct {
		B string `json:"b"`
	}{}))
	require.NoError(t, err)

	postA, err := spec.Register(NewOperation(http.MethodPost, "/a").Request(struct {
		A int `json:"a"`
	}{}))
	require.NoError(t, err)
	postB, err := spec.Register(NewOperation(http.MethodPost, "/b").Request(map[string]string{}))
	require.NoError(t, err)

	postIDs, err := spec.Register(NewOperation(http.MethodPost, "/ids").Request(map[int]string{}))
	require.NoError(t, err)
	putIDs, err := spec.Register(NewOperation(http.MethodPut, "/ids").Request(map[int]int{}))
	require.NoError(t, err)

	doc, err := spec.Complete()
	require.NoError(t, err)

	t.Run("anonymous responses inline", func(t *testing.T) {
		a, b := getA.Responses["200"], getB.Responses["200"]
		assert.Empty(t, a.Ref)
		assert.Empty(t, b.Ref)

		dataA := a.Content["application/json"].Schema.Properties["data"]
		dataB := b.Content["application/json"].Schema.Properties["data"]
		assert.Contains(t, dataA.Properties, "a")
		assert.Contains(t, dataB.Properties, "b")
		assert.NotContains(t, dataB.Properties, "a")
	})

	t.Run("derived request bodies inline", func(t *testing.T) {
		assert.Empty(t, postA.RequestBody.Ref)
		assert.Empty(t, postB.RequestBody.Ref)
		assert.Contains(t, postA.RequestBody.Content["application/json"].Schema.Properties, "a")
		assert.Equal(t, &Schema{Type: "string"}, postB.RequestBody.Content["application/json"].Schema.AdditionalProperties)
	})

	t.Run("free-form object shared", func(t *testing.T) {
		assert.Equal(t, "#/components/requestBodies/Object-Request", postIDs.RequestBody.Ref)
		assert.Equal(t, postIDs.RequestBody.Ref, putIDs.RequestBody.Ref)
	})

	t.Run("no derived components", func(t *testing.T) {
		assert.NotContains(t, doc.Components.Names(KindResponse), "Object-Response")
		assert.NotContains(t, doc.Components.Names(KindRequestBody), "StringMap-Request")
	})
}

func TestSpecNullableArrayResponses(t *testing.T) {
	tests := []struct {
		name  string
		order []any
	}{
		{"nullable first", []any{[]*Address{}, []Address{}}},
		{"plain first", []any{[]Address{}, []*Address{}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := newSpec()
			ops := make(map[string]*Operation)
			for i, v := range tt.order {
				op, err := spec.Register(NewOperation(http.MethodGet, "/"+strconv.Itoa(i)).Response(v))
				require.NoError(t, err)
				ops[reflect.TypeOf(v).String()] = op
			}
			_, err := spec.Complete()
			require.NoError(t, err)

			plain := ops["[]openapi.Address"].Responses["200"]
			assert.Equal(t, "#/components/responses/AddressArray-Response", plain.Ref)
			env, ok := spec.Components().Schema("AddressArray-Response")
			require.True(t, ok)
			assert.Equal(t, "#/components/schemas/AddressArray", env.Schema.Properties["data"].Ref)

			nullable := ops["[]*openapi.Address"].Responses["200"]
			assert.Empty(t, nullable.Ref)
			items := nullable.Content["application/json"].Schema.Properties["data"].Items
			require.NotNil(t, items)
			assert.True(t, items.Nullable)
			assert.Equal(t, "#/components/schemas/Address", items.AllOf[0].Ref)
		})
	}
}

func TestSpecModule(t *testing.T) {
	spec := newSpec()
	spec.AddSecurityScheme("bearer", &SecurityScheme{Type: "http", Scheme: "bearer"})

	users := spec.Module(Tag{Name: "users", Description: "User management"}).
		Prefix("/api/v1/").
		Security(SecurityRequirement{"bearer": {}}).
		Errors(codeBadRequest)

	spec.Module(Tag{Name: "unused"})

	get, err := users.Register(users.Op(http.MethodGet, "/users/{id}").Errors(codeNotFound))
	require.NoError(t, err)

	public, err := users.Register(users.Op(http.MethodPost, "/login").Security())
	require.NoError(t, err)

	doc, err := spec.Complete()
	require.NoError(t, err)

	t.Run("prefix", func(t *testing.T) {
		assert.Contains(t, doc.Paths, "/api/v1/users/{id}")
		assert.Contains(t, doc.Paths, "/api/v1/login")
	})

	t.Run("tag", func(t *testing.T) {
		assert.Equal(t, "users", users.Tag())
		assert.Equal(t, []string{"users"}, get.Tags)
		assert.Equal(t, []Tag{{Name: "users", Description: "User management"}}, doc.Tags)
	})

	t.Run("errors", func(t *testing.T) {
		assert.Contains(t, get.Responses, "400")
		assert.Contains(t, get.Responses, "404")
		assert.Contains(t, public.Responses, "400")
	})

	t.Run("security", func(t *testing.T) {
		assert.Equal(t, []SecurityRequirement{{"bearer": {}}}, get.Security)

		data, err := json.Marshal(public)
		require.NoError(t, err)

		var out map[string]any
		require.NoError(t, json.Unmarshal(data, &out))
		assert.Equal(t, []any{}, out["security"])
	})

	t.Run("security schemes", func(t *testing.T) {
		assert.Contains(t, doc.Components.SecuritySchemes(), "bearer")
	})
}

func TestSpecRefClosure(t *testing.T) {
	spec := NewSpec(Info{Title: "Test API", Version: "1.0.0"},
		WithServers(Server{URL: "https://api.example.com"}),
	)

	users := spec.Module(Tag{Name: "users"}).Errors(codeDevErr)
	_, err := users.Register(users.Op(http.MethodGet, "/users").Paged(User{}))
	require.NoError(t, err)
	_, err = users.Register(users.Op(http.MethodGet, "/users/{id:[0-9]+}").
		Response(User{}).
		ResponseExample("alice", User{ID: 1, Name: "alice"}).
		Errors(codeNotFound, codeGone))
	require.NoError(t, err)
	_, err = users.Register(users.Op(http.MethodPost, "/users").
		Request(CreateUser{}).
		RequestDescription("new user").
		Response(model.UUIDID{}))
	require.NoError(t, err)
	_, err = users.Register(users.Op(http.MethodDelete, "/users/{id:[0-9]+}"))
	require.NoError(t, err)
	_, err = spec.Register(NewOperation(http.MethodGet, "/articles").Response([]Article{}))
	require.NoError(t, err)
	_, err = spec.Alias(Team{}, "Squad")
	require.NoError(t, err)

	doc, err := spec.Complete()
	require.NoError(t, err)

	refs, err := doc.Refs()
	require.NoError(t, err)
	require.NotEmpty(t, refs)

	for _, ref := range refs {
		assert.True(t, doc.Resolve(ref), "unresolved %s", ref)
	}

	t.Run("schemas", func(t *testing.T) {
		for _, name := range []string{
			"User", "Team", "UserArray", "UserPage", "UserPage-Response",
			"User-Response", "CreateUser", "ErrorBody", "Unit-Response",
			"UUIDId-Response", "Article", "ArticleArray", "ArticleArray-Response",
			"Address", "Role", "Squad",
		} {
			_, ok := doc.Components.Lookup(KindSchema, name)
			assert.True(t, ok, name)
		}
	})

	t.Run("resolve", func(t *testing.T) {
		assert.False(t, doc.Resolve("#/components/schemas/Missing"))
		assert.False(t, doc.Resolve("#/components/unknown/User"))
		assert.False(t, doc.Resolve("#/definitions/User"))
		assert.False(t, doc.Resolve("#/components/schemas"))
	})
}

func TestParsePath(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		path    string
		params  []*Parameter
	}{
		{
			name:    "static",
			pattern: "/health",
			path:    "/health",
		},
		{
			name:    "plain",
			pattern: "/users/{id}",
			path:    "/users/{id}",
			params:  []*Parameter{{Name: "id", In: "path", Required: true, Schema: &Schema{Type: "string"}}},
		},
		{
			name:    "digits",
			pattern: "/users/{id:[0-9]+}",
			path:    "/users/{id}",
			params:  []*Parameter{{Name: "id", In: "path", Required: true, Schema: &Schema{Type: "integer", Format: "int64"}}},
		},
		{
			name:    "escaped digits",
			pattern: `/users/{id:\d+}`,
			path:    "/users/{id}",
			params:  []*Parameter{{Name: "id", In: "path", Required: true, Schema: &Schema{Type: "integer", Format: "int64"}}},
		},
		{
			name:    "uuid",
			pattern: "/keys/{key:[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}}",
			path:    "/keys/{key}",
			params:  []*Parameter{{Name: "key", In: "path", Required: true, Schema: &Schema{Type: "string", Format: "uuid"}}},
		},
		{
			name:    "pattern",
			pattern: "/files/{code:[a-z]{3}}/raw",
			path:    "/files/{code}/raw",
			params:  []*Parameter{{Name: "code", In: "path", Required: true, Schema: &Schema{Type: "string", Pattern: "[a-z]{3}"}}},
		},
		{
			name:    "several",
			pattern: "/teams/{team}/users/{id:[0-9]+}",
			path:    "/teams/{team}/users/{id}",
			params: []*Parameter{
				{Name: "team", In: "path", Required: true, Schema: &Schema{Type: "string"}},
				{Name: "id", In: "path", Required: true, Schema: &Schema{Type: "integer", Format: "int64"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, params, err := parsePath(tt.pattern)
			require.NoError(t, err)
			assert.Equal(t, tt.path, path)
			assert.Equal(t, tt.params, params)
		})
	}

	t.Run("errors", func(t *testing.T) {
		for _, pattern := range []string{"/users/{id", "/users/{}", "/users/{:[0-9]+}"} {
			_, _, err := parsePath(pattern)
			assert.Error(t, err, pattern)
		}
	})
}

func TestDefaultOperationID(t *testing.T) {
	tests := []struct {
		method string
		path   string
		want   string
	}{
		{"GET", "/users", "getUsers"},
		{"GET", "/users/{id}", "getUsersId"},
		{"POST", "/api/v1/users", "postApiV1Users"},
		{"DELETE", "/user-groups/{group_id}", "deleteUserGroupsGroupId"},
		{"GET", "/", "get"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, defaultOperationID(tt.method, tt.path))
		})
	}
}
