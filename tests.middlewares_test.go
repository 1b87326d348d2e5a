package main

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// TestMiddlewaresStacks ensures we get both public and ops middlewares
// stacks with exact number of elements in those stacks.
func TestMiddlewaresStacks(t *testing.T) {
	api := NewAPIHandler(zap.NewNop(), &Config{}, &Statistics{started: time.Now()}, NewMockClocker(), NewMockUIDHandler("test"), nil)
	pub, ops := api.MiddlewaresStacks()
	assert.Equal(t, 7, len(*pub))
	assert.Equal(t, 6, len(*ops))
}

// TestChain ensures each middleware in the stack is called as well the handler.
func TestChain(t *testing.T) {
	var ca, cb, cc, ch bool
	queue := make(chan int, 4)

	middlewareA := func(next httprouter.Handle) httprouter.Handle {
		return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
			queue <- 1
			ca = true
			next(w, r, ps)
		}
	}
	middlewareB := func(next httprouter.Handle) httprouter.Handle {
		return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
			queue <- 2
			cb = true
			next(w, r, ps)
		}
	}
	middlewareC := func(next httprouter.Handle) httprouter.Handle {
		return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
			queue <- 3
			cc = true
			next(w, r, ps)
		}
	}
	middlewares := Middlewares{
		middlewareA,
		middlewareB,
		middlewareC,
	}

	handler := func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		queue <- 4
		ch = true
	}

	chained := (&middlewares).Chain(handler)
	req := httptest.NewRequest("GET", "/api/books", nil)
	w := httptest.NewRecorder()
	chained(w, req, nil)

	t.Run("check calling", func(t *testing.T) {
		assert.Equal(t, true, ca)
		assert.Equal(t, true, cb)
		assert.Equal(t, true, cc)
		assert.Equal(t, true, ch)
	})

	t.Run("check ordering", func(t *testing.T) {
		assert.Equal(t, 1, <-queue)
		assert.Equal(t, 2, <-queue)
		assert.Equal(t, 3, <-queue)
		assert.Equal(t, 4, <-queue)
	})
}

// TestRequestsCounterMiddleware ensures the request counter increment.
func TestRequestsCounterMiddleware(t *testing.T) {
	api := NewAPIHandler(zap.NewNop(), &Config{}, &Statistics{started: time.Now(), called: 0}, NewMockClocker(), NewMockUIDHandler("test"), nil)
	req := httptest.NewRequest("GET", "/api/books", nil)
	w := httptest.NewRecorder()
	var called bool
	handler := func(w http.ResponseWriter, req *http.Request, ps httprouter.Params) {
		called = true
		assert.Equal(t, uint64(1), GetRequestNumberFromContext(req.Context()))
	}
	wrapped := api.RequestsCounterMiddleware(handler)
	wrapped(w, req, nil)
	assert.Equal(t, true, called)
	assert.Equal(t, uint64(1), api.stats.called)
}

// TestRequestIDMiddleware ensures each request gets a unique id into
// its context and mirrored into the response headers.
func TestRequestIDMiddleware(t *testing.T) {
	api := NewAPIHandler(zap.NewNop(), &Config{}, &Statistics{started: time.Now()}, NewMockClocker(), NewMockUIDHandler("abc"), nil)
	req := httptest.NewRequest("GET", "/api/books", nil)
	w := httptest.NewRecorder()
	handler := func(w http.ResponseWriter, req *http.Request, ps httprouter.Params) {
		assert.Equal(t, "r:abc", GetValueFromContext(req.Context(), RequestIDContextKey))
	}
	wrapped := api.RequestIDMiddleware(handler)
	wrapped(w, req, nil)
	assert.Equal(t, "r:abc", w.Header().Get("X-Request-ID"))
}

// TestMaintenanceModeMiddleware ensures public requests are rejected
// with 503 only while the maintenance mode is enabled.
func TestMaintenanceModeMiddleware(t *testing.T) {
	api := NewAPIHandler(zap.NewNop(), &Config{}, &Statistics{started: time.Now()}, NewMockClocker(), NewMockUIDHandler("test"), nil)
	var called bool
	handler := func(w http.ResponseWriter, req *http.Request, ps httprouter.Params) {
		called = true
	}
	wrapped := api.MaintenanceModeMiddleware(handler)

	t.Run("mode disabled", func(t *testing.T) {
		called = false
		req := httptest.NewRequest("GET", "/api/books", nil)
		w := httptest.NewRecorder()
		wrapped(w, req, nil)
		assert.Equal(t, true, called)
	})

	t.Run("mode enabled", func(t *testing.T) {
		called = false
		api.mode.message = "upgrading the catalog"
		api.mode.enabled.Store(true)
		req := httptest.NewRequest("GET", "/api/books", nil)
		w := httptest.NewRecorder()
		wrapped(w, req, nil)
		res := w.Result()
		defer res.Body.Close()
		assert.Equal(t, false, called)
		assert.Equal(t, http.StatusServiceUnavailable, res.StatusCode)
		data, err := io.ReadAll(res.Body)
		assert.NoError(t, err)
		assert.JSONEq(t, `{"success":false, "error":"service currently unavailable: upgrading the catalog"}`, string(data))
	})
}

// TestStatusRecorderMiddleware ensures served statuses are accounted in the stats.
func TestStatusRecorderMiddleware(t *testing.T) {
	api := NewAPIHandler(zap.NewNop(), &Config{}, &Statistics{started: time.Now()}, NewMockClocker(), NewMockUIDHandler("test"), nil)
	handler := func(w http.ResponseWriter, req *http.Request, ps httprouter.Params) {
		w.WriteHeader(http.StatusCreated)
	}
	wrapped := api.StatusRecorderMiddleware(handler)
	req := httptest.NewRequest("POST", "/api/books", nil)
	w := httptest.NewRecorder()
	wrapped(w, req, nil)
	wrapped(w, req, nil)
	api.stats.mu.RLock()
	defer api.stats.mu.RUnlock()
	assert.Equal(t, uint64(2), api.stats.status[http.StatusCreated])
}

// TestPanicRecoveryMiddleware ensures a panicking handler still answers with 500.
func TestPanicRecoveryMiddleware(t *testing.T) {
	api := NewAPIHandler(zap.NewNop(), &Config{}, &Statistics{started: time.Now()}, NewMockClocker(), NewMockUIDHandler("test"), nil)
	handler := func(w http.ResponseWriter, req *http.Request, ps httprouter.Params) {
		panic("boom")
	}
	wrapped := api.PanicRecoveryMiddleware(handler)
	req := httptest.NewRequest("GET", "/api/books", nil)
	w := httptest.NewRecorder()
	assert.NotPanics(t, func() { wrapped(w, req, nil) })
	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusInternalServerError, res.StatusCode)
	data, err := io.ReadAll(res.Body)
	assert.NoError(t, err)
	assert.JSONEq(t, `{"success":false, "error":"failed to process the request"}`, string(data))
}
