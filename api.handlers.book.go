package main

import (
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"
)

// AddBook godoc
// @Summary      Add a book to the catalog
// @Description  Validates the payload, rejects duplicate isbn, inserts the book.
// @Accept       json
// @Produce      json
// @Param        book body CreateBookRequest true "book to add"
// @Success      201 {object} BookResponse
// @Failure      400 {object} APIError
// @Failure      409 {object} APIError
// @Router       /api/books [post]
func (api *APIHandler) AddBook(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	req := CreateBookRequest{}
	requestID := GetValueFromContext(r.Context(), RequestIDContextKey)
	err := DecodeCreateBookRequestBody(r, &req)
	if err != nil {
		api.logger.Error("failed to decode add book request", zap.String("request.id", requestID), zap.Error(err))
		if err = WriteErrorResponse(r.Context(), w, http.StatusBadRequest, "invalid request body"); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}

	// Fail-fast field checks: the message names the first missing field.
	err = ValidateCreateBookRequestBody(&req)
	if err != nil {
		api.logger.Error("failed to validate add book request", zap.String("request.id", requestID), zap.Error(err))
		if err = WriteErrorResponse(r.Context(), w, http.StatusBadRequest, err.Error()); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}

	book, err := api.bookService.Add(r.Context(), req.Draft())
	if errors.Is(err, ErrDuplicateISBN) {
		api.logger.Error("book already exists", zap.String("book.isbn", req.ISBN), zap.String("request.id", requestID))
		if err = WriteErrorResponse(r.Context(), w, http.StatusConflict, "book with isbn "+req.ISBN+" already exists"); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}
	if err != nil {
		api.logger.Error("failed to add book", zap.String("request.id", requestID), zap.Error(err))
		if err = WriteErrorResponse(r.Context(), w, http.StatusInternalServerError, "failed to add the book"); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}
	api.logger.Info("success to add book", zap.Int64("book.id", book.ID), zap.String("book.isbn", book.ISBN), zap.String("request.id", requestID))
	if err = WriteResponse(r.Context(), w, http.StatusCreated, NewBookResponse(book)); err != nil {
		api.logger.Error("failed to send response", zap.String("request.id", requestID), zap.Error(err))
	}
}

// GetAllBooks godoc
// @Summary      List all books
// @Produce      json
// @Success      200 {object} BooksResponse
// @Router       /api/books [get]
func (api *APIHandler) GetAllBooks(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), RequestIDContextKey)
	books, err := api.bookService.GetAll(r.Context())
	if err != nil {
		api.logger.Error("failed to get all books", zap.String("request.id", requestID), zap.Error(err))
		if err = WriteErrorResponse(r.Context(), w, http.StatusInternalServerError, "failed to get all books"); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}
	api.logger.Info("success to get all books", zap.Int("books.count", len(books)), zap.String("request.id", requestID))
	if err = WriteResponse(r.Context(), w, http.StatusOK, NewBooksResponse(books)); err != nil {
		api.logger.Error("failed to send response", zap.Error(err))
	}
}

// GetOneBook godoc
// @Summary      Fetch a single book by its isbn
// @Produce      json
// @Param        isbn path string true "book isbn"
// @Success      200 {object} BookResponse
// @Failure      404 {object} APIError
// @Router       /api/books/{isbn} [get]
func (api *APIHandler) GetOneBook(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), RequestIDContextKey)
	isbn := ps.ByName("isbn")
	book, err := api.bookService.GetByISBN(r.Context(), isbn)
	if errors.Is(err, ErrBookNotFound) {
		api.logger.Error("book does not exist", zap.String("book.isbn", isbn), zap.String("request.id", requestID))
		if err = WriteErrorResponse(r.Context(), w, http.StatusNotFound, "book with isbn "+isbn+" does not exist"); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}
	if err != nil {
		api.logger.Error("failed to get book", zap.String("book.isbn", isbn), zap.String("request.id", requestID), zap.Error(err))
		if err = WriteErrorResponse(r.Context(), w, http.StatusInternalServerError, "failed to get the book"); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}
	api.logger.Info("success to get book", zap.String("book.isbn", isbn), zap.String("request.id", requestID))
	if err = WriteResponse(r.Context(), w, http.StatusOK, NewBookResponse(book)); err != nil {
		api.logger.Error("failed to send response", zap.String("request.id", requestID), zap.Error(err))
	}
}
