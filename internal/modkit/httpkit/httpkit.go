// Package httpkit is what service modules mount routes with
// Modules import it instead of the platform http package
package httpkit

import (
	"net/http"
	"strings"

	phttp "chatguard/internal/platform/net/http"
)

type (
	// Router is the platform router
	Router = phttp.Router
	// Handler is a plain handler func
	Handler = phttp.Handler
	// Envelope is the response body, referenced by the swagger annotations
	Envelope = phttp.Envelope
)

// Get mounts a bodyless GET returning data or an error
func Get(r Router, path string, h func(*http.Request) (any, error)) { r.Get(path, phttp.Call(h)) }

// Post mounts a bodyless POST returning data or an error
func Post(r Router, path string, h func(*http.Request) (any, error)) { r.Post(path, phttp.Call(h)) }

// PostJSON mounts a POST whose body is decoded and validated into T
func PostJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	r.Post(path, phttp.JSONHandler(h))
}

// MountUnder mounts routes at prefix behind mw
func MountUnder(r Router, prefix string, mw []func(http.Handler) http.Handler, mount func(Router)) {
	r.Route(prefix, func(sub Router) {
		if len(mw) > 0 {
			sub.Use(mw...)
		}
		mount(sub)
	})
}

// MountAPI mounts routes at /api/{version} behind mw
//
//	httpkit.MountAPI(r, "v1", httpkit.CommonStack(httpkit.StackOptions{}), func(api httpkit.Router) {
//		guard.MountRoutes(api)
//	})
func MountAPI(r Router, version string, mw []func(http.Handler) http.Handler, mount func(Router)) {
	MountUnder(r, "/api/"+strings.TrimPrefix(version, "/"), mw, mount)
}

// MountAPIV1 is MountAPI for v1
func MountAPIV1(r Router, mw []func(http.Handler) http.Handler, mount func(Router)) {
	MountAPI(r, "v1", mw, mount)
}
