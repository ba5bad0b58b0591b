package repository

import (
	"context"
	"database/sql"

	"workoutLists/models"
)

// UserRepositoryI defines operations on User credentials.
type UserRepositoryI interface {
	Create(ctx context.Context, username, password string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Authenticate(ctx context.Context, username, password string) (bool, error)
}

// ListRepositoryI defines the owner-scoped operations on lists and their entries.
// A nil result or false means the ids did not resolve under the owner; errors are
// reserved for storage failures.
type ListRepositoryI interface {
	Owner() string
	AllLists(ctx context.Context) ([]models.List, error)
	GetList(ctx context.Context, listID int64) (*models.List, error)
	SortedEntries(ctx context.Context, listID int64) ([]models.Entry, error)
	GetEntry(ctx context.Context, listID, entryID int64) (*models.Entry, error)
	ToggleEntry(ctx context.Context, listID, entryID int64) (bool, error)
	DeleteEntry(ctx context.Context, listID, entryID int64) (bool, error)
	CompleteAllEntries(ctx context.Context, listID int64) (bool, error)
	CompleteAllEntriesOutcome(ctx context.Context, listID int64) (CompleteOutcome, error)
	CreateEntry(ctx context.Context, listID int64, title string, attrs models.EntryAttrs) (bool, error)
	DeleteList(ctx context.Context, listID int64) (bool, error)
	RenameList(ctx context.Context, listID int64, title string) (bool, error)
	ListTitleExists(ctx context.Context, title string) (bool, error)
	CreateList(ctx context.Context, title string) (bool, error)
}

// ListScope builds a ListRepositoryI bound to owner. Transports call it once per request.
type ListScope func(owner string) ListRepositoryI

// ScopedLists returns a ListScope backed by d.
func ScopedLists(d *sql.DB) ListScope {
	return func(owner string) ListRepositoryI {
		return NewListRepository(d, owner)
	}
}

var (
	_ ListRepositoryI = (*ListRepository)(nil)
	_ UserRepositoryI = (*UserRepository)(nil)
)
