// Package swaggerkit mounts the swagger UI and the JSON spec
package swaggerkit

import (
	"net/http"

	phttp "introspect/internal/platform/net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

// Options controls what Mount serves
type Options struct {
	Enabled     bool
	TitleSuffix string
	Mutators    []SpecMutator
}

// Mount the Swagger UI and JSON spec if enabled
func Mount(r phttp.Router, o Options) {
	if !o.Enabled {
		return
	}
	r.Get("/api/docs", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/api/docs/", http.StatusPermanentRedirect)
	})
	r.Get("/api/docs/doc.json", serveDocJSON(o.TitleSuffix, o.Mutators...))
	r.Handle("/api/docs/*", httpSwagger.Handler(
		httpSwagger.URL("/api/docs/doc.json"),
	))
}
