package main

import (
	"github.com/julienschmidt/httprouter"
)

// SetupBookRoutes injects the public catalog endpoints.
func (api *APIHandler) SetupBookRoutes(router *httprouter.Router, m *MiddlewareMap) *httprouter.Router {
	router.RedirectTrailingSlash = true
	router.GET("/", m.public(api.Index))
	router.GET("/health", m.public(api.Health))
	router.GET("/api/books", m.public(api.GetAllBooks))
	router.POST("/api/books", m.public(api.AddBook))
	router.GET("/api/books/:isbn", m.public(api.GetOneBook))
	return router
}
