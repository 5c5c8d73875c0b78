package openapi

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"html"
	"net/http"
	"sort"
	"strings"

	"github.com/go-chi/chi/v5"
)

// DocsUI selects which interactive documentation UI to serve.
type DocsUI int

const (
	DocsSwaggerUI DocsUI = iota
	DocsRapiDoc
	DocsRedoc
)

// ParseDocsUI maps "swagger", "rapidoc" or "redoc" to a DocsUI.
func ParseDocsUI(name string) (DocsUI, error) {
	switch strings.ToLower(name) {
	case "", "swagger", "swagger-ui":
		return DocsSwaggerUI, nil
	case "rapidoc":
		return DocsRapiDoc, nil
	case "redoc":
		return DocsRedoc, nil
	}
	return 0, fmt.Errorf("openapi: unknown docs ui %q", name)
}

// HandleConfig configures the endpoints registered by Handle.
type HandleConfig struct {
	// UI selects the interactive docs UI (default: DocsSwaggerUI).
	UI DocsUI

	// Title overrides the HTML page title (default: info.title).
	Title string

	// DocsPath is the path of the docs UI (default: "/docs"). Set to "-"
	// to disable.
	DocsPath string

	// JSONPath is the path of the JSON document (default: "/openapi.json").
	// Set to "-" to disable.
	JSONPath string

	// YAMLPath is the path of the YAML document (default: "/openapi.yaml").
	// Set to "-" to disable.
	YAMLPath string

	// SwaggerUIConfig provides additional SwaggerUIBundle options, rendered
	// as JavaScript object properties next to url and dom_id.
	//
	// See: https://swagger.io/docs/open-source-tools/swagger-ui/usage/configuration/
	SwaggerUIConfig map[string]any
}

func pathOr(path, def string) string {
	if path == "" {
		return def
	}
	return path
}

// Handle registers the document endpoints on r. The document is serialized
// once, before any route is registered, so every request is served from
// the same bytes.
//
//	/openapi.json  - document as JSON
//	/openapi.yaml  - document as YAML
//	/docs          - interactive HTML docs
//
// See: https://spec.openapis.org/oas/v3.0.3#format
func (d *Document) Handle(r chi.Router, cfg *HandleConfig) error {
	if cfg == nil {
		cfg = &HandleConfig{}
	}

	jsonPath := pathOr(cfg.JSONPath, "/openapi.json")
	yamlPath := pathOr(cfg.YAMLPath, "/openapi.yaml")
	docsPath := pathOr(cfg.DocsPath, "/docs")

	if jsonPath != "-" {
		data, err := d.JSON()
		if err != nil {
			return err
		}
		r.Get(jsonPath, serveBytes("application/json", data))
	}

	if yamlPath != "-" {
		data, err := d.YAML()
		if err != nil {
			return err
		}
		r.Get(yamlPath, serveBytes("application/yaml", data))
	}

	if docsPath == "-" {
		return nil
	}

	specURL := jsonPath
	if specURL == "-" {
		specURL = yamlPath
	}
	if specURL == "-" {
		return nil
	}

	title := cfg.Title
	if title == "" {
		title = d.Info.Title
	}

	var page string
	switch cfg.UI {
	case DocsRapiDoc:
		page = rapidocTemplate(title, specURL)
	case DocsRedoc:
		page = redocTemplate(title, specURL)
	default:
		page = swaggerUITemplate(title, specURL, cfg.SwaggerUIConfig)
	}

	docsPath = strings.TrimRight(docsPath, "/")
	if docsPath == "" {
		r.Get("/", serveBytes("text/html; charset=utf-8", []byte(page)))
		return nil
	}
	r.Get(docsPath, serveBytes("text/html; charset=utf-8", []byte(page)))
	r.Get(docsPath+"/", serveBytes("text/html; charset=utf-8", []byte(page)))

	return nil
}

// documentCacheControl lets clients keep the document but revalidate it,
// so a restarted server with a changed document is picked up.
const documentCacheControl = "public, max-age=0, must-revalidate"

// serveBytes serves immutable bytes with a strong ETag and answers 304 to
// a matching If-None-Match.
func serveBytes(contentType string, data []byte) http.HandlerFunc {
	sum := sha256.Sum256(data)
	etag := `"` + hex.EncodeToString(sum[:16]) + `"`

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("ETag", etag)
		w.Header().Set("Cache-Control", documentCacheControl)

		if match := r.Header.Get("If-None-Match"); match != "" && etagMatches(match, etag) {
			w.WriteHeader(http.StatusNotModified)
			return
		}

		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}

func etagMatches(header, etag string) bool {
	for candidate := range strings.SplitSeq(header, ",") {
		candidate = strings.TrimPrefix(strings.TrimSpace(candidate), "W/")
		if candidate == "*" || candidate == etag {
			return true
		}
	}
	return false
}

func swaggerUITemplate(title, specPath string, config map[string]any) string {
	var extra string
	if len(config) > 0 {
		keys := make([]string, 0, len(config))
		for k := range config {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		var buf strings.Builder
		for _, k := range keys {
			v, err := json.Marshal(config[k])
			if err != nil {
				continue
			}
			fmt.Fprintf(&buf, ", %s: %s", k, v)
		}
		extra = buf.String()
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>%s</title>
<link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist/swagger-ui.css">
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist/swagger-ui-bundle.js"></script>
<script>
SwaggerUIBundle({url: %q, dom_id: "#swagger-ui"%s});
</script>
</body>
</html>`, html.EscapeString(title), specPath, extra)
}

func rapidocTemplate(title, specPath string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>%s</title>
<script type="module" src="https://unpkg.com/rapidoc/dist/rapidoc-min.js"></script>
</head>
<body>
<rapi-doc spec-url=%q render-style="read"></rapi-doc>
</body>
</html>`, html.EscapeString(title), specPath)
}

func redocTemplate(title, specPath string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>%s</title>
</head>
<body>
<redoc spec-url=%q></redoc>
<script src="https://cdn.redoc.ly/redoc/latest/bundles/redoc.standalone.js"></script>
</body>
</html>`, html.EscapeString(title), specPath)
}
