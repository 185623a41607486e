package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Handler is the plain net/http handler func routes take
type Handler = func(http.ResponseWriter, *http.Request)

// Router is what modules mount routes on, chi stays behind it
type Router interface {
	Get(path string, h Handler)
	Post(path string, h Handler)
	Put(path string, h Handler)
	Delete(path string, h Handler)

	Handle(path string, h http.Handler)
	Use(mw ...func(http.Handler) http.Handler)
	Group(fn func(Router))
	Route(prefix string, fn func(Router))

	Mux() http.Handler
}

// AdaptChi wraps a chi mux as a Router
func AdaptChi(m *chi.Mux) Router { return chiRouter{m} }

type chiRouter struct{ r chi.Router }

func (c chiRouter) method(verb, path string, h Handler) { c.r.Method(verb, path, http.HandlerFunc(h)) }

func (c chiRouter) Get(path string, h Handler)    { c.method(http.MethodGet, path, h) }
func (c chiRouter) Post(path string, h Handler)   { c.method(http.MethodPost, path, h) }
func (c chiRouter) Put(path string, h Handler)    { c.method(http.MethodPut, path, h) }
func (c chiRouter) Delete(path string, h Handler) { c.method(http.MethodDelete, path, h) }

func (c chiRouter) Handle(path string, h http.Handler)        { c.r.Handle(path, h) }
func (c chiRouter) Use(mw ...func(http.Handler) http.Handler) { c.r.Use(mw...) }

func (c chiRouter) Group(fn func(Router)) {
	c.r.Group(func(sub chi.Router) { fn(chiRouter{sub}) })
}

func (c chiRouter) Route(prefix string, fn func(Router)) {
	c.r.Route(prefix, func(sub chi.Router) { fn(chiRouter{sub}) })
}

// Mux is the underlying handler, a sub router serves only its own routes
func (c chiRouter) Mux() http.Handler { return c.r }
