package router

import "net/http"

type Middleware = func(next http.Handler) http.Handler

// Route is one registered method and pattern.
type Route struct {
	Method  string
	Pattern string
}

// Router registers handlers by method and pattern. Patterns follow
// net/http.ServeMux, so wildcards are read with Request.PathValue.
type Router interface {
	http.Handler

	Use(middleware Middleware)
	Get(pattern string, handlerFunc http.HandlerFunc, middlewares ...Middleware)
	Post(pattern string, handlerFunc http.HandlerFunc, middlewares ...Middleware)
	Options(pattern string, handlerFunc http.HandlerFunc, middlewares ...Middleware)

	// Routes lists what has been registered, in registration order.
	Routes() []Route
}
