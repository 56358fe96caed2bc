package router

import (
	"log/slog"
	"net/http"
	"slices"
	"sync"

	"github.com/ferdiebergado/goexpress"
)

type goexpressRouter struct {
	mux *goexpress.Router

	mu     sync.Mutex
	routes []Route
}

var _ Router = (*goexpressRouter)(nil)

// NewGoexpressRouter adapts goexpress to Router. Middlewares added with Use
// wrap every route.
func NewGoexpressRouter() Router {
	return &goexpressRouter{mux: goexpress.New()}
}

func (r *goexpressRouter) record(method, pattern string) {
	r.mu.Lock()
	r.routes = append(r.routes, Route{Method: method, Pattern: pattern})
	r.mu.Unlock()
	slog.Debug("route mounted", "method", method, "pattern", pattern)
}

func (r *goexpressRouter) Get(pattern string, handler http.HandlerFunc, middlewares ...Middleware) {
	r.record(http.MethodGet, pattern)
	r.mux.Get(pattern, handler, middlewares...)
}

func (r *goexpressRouter) Post(pattern string, handler http.HandlerFunc, middlewares ...Middleware) {
	r.record(http.MethodPost, pattern)
	r.mux.Post(pattern, handler, middlewares...)
}

func (r *goexpressRouter) Options(pattern string, handler http.HandlerFunc, middlewares ...Middleware) {
	r.record(http.MethodOptions, pattern)
	r.mux.Options(pattern, handler, middlewares...)
}

func (r *goexpressRouter) Use(middleware Middleware) {
	r.mux.Use(middleware)
}

func (r *goexpressRouter) Routes() []Route {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.routes)
}

func (r *goexpressRouter) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}
