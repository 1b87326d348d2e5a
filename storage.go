package main

import "context"

// BookStorage defines possible operations on the books store. Insert is
// the only write path: it materializes a draft into a full record with
// a fresh id and creation timestamp, and fails with ErrDuplicateISBN
// when the isbn is already taken.
type BookStorage interface {
	Insert(ctx context.Context, draft BookDraft) (Book, error)
	GetAll(ctx context.Context) ([]Book, error)
	GetByISBN(ctx context.Context, isbn string) (Book, error)
	ExistsByISBN(ctx context.Context, isbn string) (bool, error)
}
