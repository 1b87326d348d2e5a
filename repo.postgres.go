package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// books table definition. The UNIQUE constraint on isbn is the
// authoritative duplicate guard: the service pre-check only exists to
// produce a friendly error without hitting the constraint.
const booksSchema = `
CREATE TABLE IF NOT EXISTS books (
	id             BIGSERIAL PRIMARY KEY,
	title          TEXT NOT NULL,
	author         TEXT NOT NULL,
	isbn           VARCHAR(20) NOT NULL UNIQUE,
	published_year INTEGER,
	available      BOOLEAN NOT NULL DEFAULT TRUE,
	created_at     TIMESTAMPTZ NOT NULL
)`

type postgresBookStorage struct {
	logger *zap.Logger
	pool   *pgxpool.Pool
	clock  Clocker
}

// GetPostgresPool provides a ready to use postgres connections pool.
func GetPostgresPool(ctx context.Context, config *Config) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(config.Postgres.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse the connection string: %v", err)
	}
	if config.Postgres.MaxConns > 0 {
		poolConfig.MaxConns = config.Postgres.MaxConns
	}
	if config.Postgres.ConnectTimeout > 0 {
		poolConfig.ConnConfig.ConnectTimeout = config.Postgres.ConnectTimeout
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to build the connections pool: %v", err)
	}

	// test connection.
	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("test connection failed: %v", err)
	}
	return pool, nil
}

// SetupBooksSchema creates the books table when it does not exist yet.
func SetupBooksSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, booksSchema); err != nil {
		return fmt.Errorf("failed to set up books schema: %v", err)
	}
	return nil
}

// NewPostgresBookStorage provides an instance of postgres-based book storage.
// The clock stamps each new record at insert time.
func NewPostgresBookStorage(logger *zap.Logger, pool *pgxpool.Pool, clock Clocker) BookStorage {
	return &postgresBookStorage{
		logger: logger,
		pool:   pool,
		clock:  clock,
	}
}

// Insert materializes a draft into a new book record. The id comes back
// from the database and created_at is assigned here, not by a column
// default. A unique constraint hit on isbn maps to ErrDuplicateISBN.
func (ps *postgresBookStorage) Insert(ctx context.Context, draft BookDraft) (Book, error) {
	book := Book{
		Title:         draft.Title,
		Author:        draft.Author,
		ISBN:          draft.ISBN,
		PublishedYear: draft.PublishedYear,
		Available:     draft.Available,
		CreatedAt:     ps.clock.Now().UTC(),
	}

	const q = `
INSERT INTO books (title, author, isbn, published_year, available, created_at)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id`
	err := ps.pool.QueryRow(ctx, q, book.Title, book.Author, book.ISBN,
		book.PublishedYear, book.Available, book.CreatedAt).Scan(&book.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return Book{}, ErrDuplicateISBN
		}
		return Book{}, err
	}
	return book, nil
}

// GetAll retrieves a snapshot of all books ordered by insertion.
func (ps *postgresBookStorage) GetAll(ctx context.Context) ([]Book, error) {
	const q = `
SELECT id, title, author, isbn, published_year, available, created_at
FROM books
ORDER BY id`
	rows, err := ps.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	books := []Book{}
	for rows.Next() {
		var book Book
		if err = rows.Scan(&book.ID, &book.Title, &book.Author, &book.ISBN,
			&book.PublishedYear, &book.Available, &book.CreatedAt); err != nil {
			return nil, err
		}
		books = append(books, book)
	}
	return books, rows.Err()
}

// GetByISBN retrieves a book record based on its isbn.
func (ps *postgresBookStorage) GetByISBN(ctx context.Context, isbn string) (Book, error) {
	const q = `
SELECT id, title, author, isbn, published_year, available, created_at
FROM books
WHERE isbn = $1`
	var book Book
	err := ps.pool.QueryRow(ctx, q, isbn).Scan(&book.ID, &book.Title, &book.Author,
		&book.ISBN, &book.PublishedYear, &book.Available, &book.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Book{}, ErrBookNotFound
	}
	if err != nil {
		return Book{}, err
	}
	return book, nil
}

// ExistsByISBN reports whether a book with the given isbn is already stored.
func (ps *postgresBookStorage) ExistsByISBN(ctx context.Context, isbn string) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM books WHERE isbn = $1)`
	var exists bool
	err := ps.pool.QueryRow(ctx, q, isbn).Scan(&exists)
	return exists, err
}
