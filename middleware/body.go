package middleware

import (
	"errors"
	"mime"
	"net/http"
	"strings"

	"github.com/vitalvas/baasdoc/render"
	"github.com/vitalvas/baasdoc/respcode"
)

var (
	// ErrNoAllowedTypes is returned when ContentTypeCheckConfig lists no
	// media type.
	ErrNoAllowedTypes = errors.New("middleware: at least one allowed content type is required")

	// ErrInvalidMaxSize is returned when the body limit is not positive.
	ErrInvalidMaxSize = errors.New("middleware: max body size must be greater than zero")
)

// CodeUnsupportedMediaType is answered by ContentTypeCheck unless another
// code is configured.
var CodeUnsupportedMediaType = respcode.New(respcode.Client, 415, http.StatusUnsupportedMediaType, "Unsupported media type")

var defaultCheckedMethods = []string{
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
}

// ContentTypeCheckConfig configures ContentTypeCheck.
type ContentTypeCheckConfig struct {
	// AllowedTypes are matched case-insensitively, ignoring parameters.
	AllowedTypes []string

	// Methods defaults to POST, PUT and PATCH.
	Methods []string

	Code *respcode.Code
}

// ContentTypeCheck rejects requests of the checked methods whose
// Content-Type is missing or not allowed.
func ContentTypeCheck(cfg ContentTypeCheckConfig) (func(http.Handler) http.Handler, error) {
	if len(cfg.AllowedTypes) == 0 {
		return nil, ErrNoAllowedTypes
	}

	methods := cfg.Methods
	if methods == nil {
		methods = defaultCheckedMethods
	}
	methodSet := make(map[string]struct{}, len(methods))
	for _, m := range methods {
		methodSet[m] = struct{}{}
	}

	allowed := make(map[string]struct{}, len(cfg.AllowedTypes))
	for _, t := range cfg.AllowedTypes {
		allowed[strings.ToLower(strings.TrimSpace(t))] = struct{}{}
	}

	code := CodeUnsupportedMediaType
	if cfg.Code != nil {
		code = *cfg.Code
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, check := methodSet[r.Method]; check {
				mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
				if err != nil {
					render.Error(w, r, code)
					return
				}
				if _, ok := allowed[strings.ToLower(mediaType)]; !ok {
					render.Error(w, r, code)
					return
				}
			}

			next.ServeHTTP(w, r)
		})
	}, nil
}

// RequestSizeLimit wraps request bodies in http.MaxBytesReader.
func RequestSizeLimit(maxBytes int64) (func(http.Handler) http.Handler, error) {
	if maxBytes <= 0 {
		return nil, ErrInvalidMaxSize
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}, nil
}
