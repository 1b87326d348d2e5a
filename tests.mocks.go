package main

import (
	"context"
	"time"
)

// This file contains mocks definitions needed to perform unit tests.

type MockBookStorage struct {
	InsertFunc       func(ctx context.Context, draft BookDraft) (Book, error)
	GetAllFunc       func(ctx context.Context) ([]Book, error)
	GetByISBNFunc    func(ctx context.Context, isbn string) (Book, error)
	ExistsByISBNFunc func(ctx context.Context, isbn string) (bool, error)
}

// Insert mocks the behavior of book creation by the repository.
func (m *MockBookStorage) Insert(ctx context.Context, draft BookDraft) (Book, error) {
	return m.InsertFunc(ctx, draft)
}

// GetAll mocks the behavior of retrieving all books by the repository.
func (m *MockBookStorage) GetAll(ctx context.Context) ([]Book, error) {
	return m.GetAllFunc(ctx)
}

// GetByISBN mocks the behavior of retrieving a book by the repository.
func (m *MockBookStorage) GetByISBN(ctx context.Context, isbn string) (Book, error) {
	return m.GetByISBNFunc(ctx, isbn)
}

// ExistsByISBN mocks the isbn existence fast path of the repository.
func (m *MockBookStorage) ExistsByISBN(ctx context.Context, isbn string) (bool, error) {
	return m.ExistsByISBNFunc(ctx, isbn)
}

// MockClocker implements a fake Clocker.
type MockClocker struct {
	MockNow time.Time
}

// NewMockClocker returns a mocked instance with fixed time.
func NewMockClocker() *MockClocker {
	return &MockClocker{time.Date(2024, 0o1, 0o2, 0o0, 0o0, 0o0, 0o00000000, time.UTC)}
}

// Now returns an already defined time to be used as mock. This
// equals to `Tue, 02 Jan 2024 00:00:00 UTC` in time.RFC1123 format.
func (mck *MockClocker) Now() time.Time {
	return mck.MockNow
}

// MockUIDHandler implements a fake UIDHandler.
type MockUIDHandler struct {
	MockedUID string
}

// NewMockUIDHandler returns a mocked instance with predictable id.
func NewMockUIDHandler(id string) *MockUIDHandler {
	return &MockUIDHandler{MockedUID: id}
}

// Generate constructs a predictable id to be used as mock.
func (muid *MockUIDHandler) Generate(prefix string) string {
	return prefix + ":" + muid.MockedUID
}
