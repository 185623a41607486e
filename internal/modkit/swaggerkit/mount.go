// Package swaggerkit serves the OpenAPI document and the swagger UI
package swaggerkit

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	phttp "chatguard/internal/platform/net/http"
)

// Base is where the UI and the document live
const Base = "/api/docs"

// Mount serves the UI under Base and the patched document at Base/doc.json
// disabled leaves the router untouched
func Mount(r phttp.Router, enabled bool) {
	if !enabled {
		return
	}
	ui := httpSwagger.Handler(
		httpSwagger.URL(Base+"/doc.json"),
		httpSwagger.DocExpansion("list"),
		httpSwagger.DeepLinking(true),
		httpSwagger.PersistAuthorization(true),
	)
	r.Get(Base, func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, Base+"/index.html", http.StatusFound)
	})
	r.Get(Base+"/doc.json", serveDocJSON())
	r.Handle(Base+"/*", ui)
}
