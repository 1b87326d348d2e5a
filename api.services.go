package main

import (
	"context"
	"errors"

	"go.uber.org/zap"
)

// BookServiceProvider describes the business operations over the catalog.
type BookServiceProvider interface {
	Add(ctx context.Context, draft BookDraft) (Book, error)
	GetAll(ctx context.Context) ([]Book, error)
	GetByISBN(ctx context.Context, isbn string) (Book, error)
}

type BookService struct {
	logger  *zap.Logger
	config  *Config
	storage BookStorage
}

func NewBookService(logger *zap.Logger, config *Config, storage BookStorage) BookServiceProvider {
	return &BookService{
		logger:  logger,
		config:  config,
		storage: storage,
	}
}

// Add inserts a new book after rejecting isbn duplicates. The existence
// check is only a fast path for a friendly error: two concurrent
// submissions of the same isbn can both pass it, so a unique constraint
// hit at insert time is reported as the same duplicate outcome.
func (bs *BookService) Add(ctx context.Context, draft BookDraft) (Book, error) {
	exists, err := bs.storage.ExistsByISBN(ctx, draft.ISBN)
	if err != nil {
		return Book{}, err
	}
	if exists {
		return Book{}, ErrDuplicateISBN
	}

	book, err := bs.storage.Insert(ctx, draft)
	if errors.Is(err, ErrDuplicateISBN) {
		bs.logger.Warn("service: lost duplicate race at insert", zap.String("book.isbn", draft.ISBN))
		return Book{}, ErrDuplicateISBN
	}
	return book, err
}

func (bs *BookService) GetAll(ctx context.Context) ([]Book, error) {
	books, err := bs.storage.GetAll(ctx)
	return books, err
}

func (bs *BookService) GetByISBN(ctx context.Context, isbn string) (Book, error) {
	book, err := bs.storage.GetByISBN(ctx, isbn)
	return book, err
}
