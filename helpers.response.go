package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
)

// CustomResponseWriter is a wrapper for http.ResponseWriter. It is used
// to record response details like status code and body size so the
// stats middleware can account for each served request.
type CustomResponseWriter struct {
	http.ResponseWriter
	code  int
	bytes int
	wrote bool
}

// NewCustomResponseWriter provides CustomResponseWriter with 200 as status code.
func NewCustomResponseWriter(rw http.ResponseWriter) *CustomResponseWriter {
	return &CustomResponseWriter{
		ResponseWriter: rw,
		code:           200,
	}
}

// WriteHeader implements http.WriteHeader interface.
func (cw *CustomResponseWriter) WriteHeader(code int) {
	if !cw.wrote {
		cw.code = code
		cw.wrote = true
		cw.ResponseWriter.WriteHeader(code)
	}
}

// Write implements http.Write interface.
func (cw *CustomResponseWriter) Write(bytes []byte) (int, error) {
	if !cw.wrote {
		cw.WriteHeader(cw.code)
	}

	n, err := cw.ResponseWriter.Write(bytes)
	cw.bytes += n
	return n, err
}

// Status returns the written status code.
func (cw *CustomResponseWriter) Status() int {
	return cw.code
}

// Bytes returns bytes written as response body.
func (cw *CustomResponseWriter) Bytes() int {
	return cw.bytes
}

// Unwrap returns native response writer and used by
// the http.ResponseController during its operation.
func (cw *CustomResponseWriter) Unwrap() http.ResponseWriter {
	return cw.ResponseWriter
}

// HealthResponse is the data model sent when the health endpoint is called.
type HealthResponse struct {
	Status string `json:"status"`
}

// BookResponse is the data model sent when a single book request succeed.
type BookResponse struct {
	Success bool     `json:"success"`
	Book    BookView `json:"book"`
}

// BooksResponse is the data model sent when listing the catalog.
type BooksResponse struct {
	Success bool       `json:"success"`
	Count   int        `json:"count"`
	Books   []BookView `json:"books"`
}

// APIError is the data model sent when an error occurred during request
// processing. The error string always names the faulty field or condition.
type APIError struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func NewAPIError(message string) *APIError {
	return &APIError{Success: false, Error: message}
}

func NewBookResponse(book Book) *BookResponse {
	return &BookResponse{Success: true, Book: Serialize(book)}
}

func NewBooksResponse(books []Book) *BooksResponse {
	views := SerializeAll(books)
	return &BooksResponse{Success: true, Count: len(views), Books: views}
}

// WriteResponse is used to send an api response to client. It sets the status
// code to 499 in case client cancelled the request, and to 504 if the request
// processing timed out. In both cases nothing is written since the timeout
// handler already answered.
func WriteResponse(ctx context.Context, w http.ResponseWriter, status int, payload interface{}) error {
	if err := ctx.Err(); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			w.WriteHeader(http.StatusGatewayTimeout)
		} else {
			w.WriteHeader(499)
		}
		return ctx.Err()
	}
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(payload)
}

// WriteErrorResponse is used to send a failure response to client with the
// structured `success:false` envelope.
func WriteErrorResponse(ctx context.Context, w http.ResponseWriter, status int, message string) error {
	return WriteResponse(ctx, w, status, NewAPIError(message))
}
