package server

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/vitalvas/baasdoc/openapi"
	"github.com/vitalvas/baasdoc/render"
)

// ErrUndocumentedRoute is returned by CheckRoutes when the router and the
// document disagree.
var ErrUndocumentedRoute = errors.New("server: route and document mismatch")

// endpoints registers an operation in the document and its handler in the
// router from a single declaration.
type endpoints struct {
	router chi.Router
	module *openapi.Module
}

func (e *endpoints) add(b *openapi.OperationBuilder, h http.HandlerFunc) {
	// Registration errors are recorded by Spec and returned by Complete.
	if _, err := e.module.Register(b); err != nil {
		return
	}
	e.router.Method(b.Method(), b.Path(), h)
}

// bearerAuth rejects requests without the configured bearer token.
func bearerAuth(token string) func(http.Handler) http.Handler {
	want := []byte(token)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || subtle.ConstantTimeCompare([]byte(got), want) != 1 {
				w.Header().Set("WWW-Authenticate", `Bearer realm="baasdoc"`)
				render.Error(w, r, CodeUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

// paging reads the pageNo and pageSize query parameters.
func paging(r *http.Request) (pageNo, pageSize int, ok bool) {
	pageNo, pageSize = 1, 20
	q := r.URL.Query()

	if v := q.Get("pageNo"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return 0, 0, false
		}
		pageNo = n
	}
	if v := q.Get("pageSize"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 100 {
			return 0, 0, false
		}
		pageSize = n
	}
	return pageNo, pageSize, true
}

// bind decodes the JSON body into v and answers the matching error code
// when it fails.
func bind(w http.ResponseWriter, r *http.Request, v any) bool {
	err := render.BindJSON(r, v)
	if err == nil {
		return true
	}

	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		render.Error(w, r, CodeTooLarge)
	} else {
		render.Error(w, r, CodeInvalidBody)
	}
	return false
}

var routeParam = regexp.MustCompile(`\{([^{}:]+):[^{}]*\}`)

// CheckRoutes walks the router and verifies that every documented
// operation is routed and every routed API operation under prefix is
// documented.
func CheckRoutes(r chi.Routes, doc *openapi.Document, prefix string) error {
	routed := make(map[string]bool)
	err := chi.Walk(r, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		if strings.HasPrefix(route, prefix) {
			routed[method+" "+routeParam.ReplaceAllString(route, "{$1}")] = true
		}
		return nil
	})
	if err != nil {
		return err
	}

	documented := make(map[string]bool)
	for path, item := range doc.Paths {
		for method, op := range map[string]*openapi.Operation{
			http.MethodGet:    item.Get,
			http.MethodPut:    item.Put,
			http.MethodPost:   item.Post,
			http.MethodDelete: item.Delete,
			http.MethodPatch:  item.Patch,
		} {
			if op != nil {
				documented[method+" "+path] = true
			}
		}
	}

	var problems []string
	for key := range documented {
		if !routed[key] {
			problems = append(problems, "not routed: "+key)
		}
	}
	for key := range routed {
		if !documented[key] {
			problems = append(problems, "not documented: "+key)
		}
	}
	if len(problems) == 0 {
		return nil
	}

	slices.Sort(problems)
	return fmt.Errorf("%w: %s", ErrUndocumentedRoute, strings.Join(problems, ", "))
}
