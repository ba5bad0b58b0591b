package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	"workoutLists/internal/db"
	"workoutLists/models"
)

// ListRepository is the owner-scoped data access layer for lists and entries.
// Every statement filters on owner, so ids belonging to another user behave
// exactly like ids that do not exist.
type ListRepository struct {
	db    *sql.DB
	owner string
}

// NewListRepository returns a repository bound to owner. Construct one per request.
func NewListRepository(db *sql.DB, owner string) *ListRepository {
	return &ListRepository{db: db, owner: owner}
}

// Owner returns the identity the repository is scoped to.
func (r *ListRepository) Owner() string {
	return r.owner
}

// AllLists returns every list of the owner with its entries (unsorted).
// Lists are ordered by case-insensitive title, then partitioned so that all
// incomplete lists precede all complete ones.
func (r *ListRepository) AllLists(ctx context.Context) ([]models.List, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `SELECT id, title, owner FROM lists WHERE owner = ? ORDER BY lower(title) ASC, id ASC`, r.owner)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var lists []models.List
	index := map[int64]int{}
	for rows.Next() {
		var l models.List
		if err := rows.Scan(&l.ID, &l.Title, &l.Owner); err != nil {
			return nil, err
		}
		l.Entries = []models.Entry{}
		index[l.ID] = len(lists)
		lists = append(lists, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(lists) == 0 {
		return []models.List{}, nil
	}

	erows, err := r.db.QueryContext(ctx, `SELECT `+entryColumns+` FROM entries WHERE owner = ? ORDER BY id`, r.owner)
	if err != nil {
		return nil, err
	}
	defer erows.Close()
	entries, err := scanEntryRows(erows)
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		if i, ok := index[e.ListID]; ok {
			lists[i].Entries = append(lists[i].Entries, e)
		}
	}
	return models.PartitionByCompletion(lists), nil
}

// GetList returns the list with its entries (unsorted), or nil if the owner has no such list.
// The header and the entries are fetched concurrently.
func (r *ListRepository) GetList(ctx context.Context, listID int64) (*models.List, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var (
		list    *models.List
		entries []models.Entry
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		list, err = r.listHeader(gctx, listID)
		return err
	})
	g.Go(func() error {
		rows, err := r.db.QueryContext(gctx, `SELECT `+entryColumns+` FROM entries WHERE list_id = ? AND owner = ?`, listID, r.owner)
		if err != nil {
			return err
		}
		defer rows.Close()
		entries, err = scanEntryRows(rows)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if list == nil {
		return nil, nil
	}
	list.Entries = entries
	return list, nil
}

func (r *ListRepository) listHeader(ctx context.Context, listID int64) (*models.List, error) {
	var l models.List
	err := r.db.QueryRowContext(ctx, `SELECT id, title, owner FROM lists WHERE id = ? AND owner = ?`, listID, r.owner).Scan(&l.ID, &l.Title, &l.Owner)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &l, nil
}

// DeleteList removes the list; its entries go with it through the foreign key cascade.
func (r *ListRepository) DeleteList(ctx context.Context, listID int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return execAffected(ctx, r.db, `DELETE FROM lists WHERE id = ? AND owner = ?`, listID, r.owner)
}

// RenameList sets a new title. It does not check uniqueness itself: callers check
// ListTitleExists first and classify a racing violation with db.IsUniqueViolation.
func (r *ListRepository) RenameList(ctx context.Context, listID int64, title string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return execAffected(ctx, r.db, `UPDATE lists SET title = ? WHERE id = ? AND owner = ?`, title, listID, r.owner)
}

// ListTitleExists reports whether the owner already has a list with this title, ignoring case.
func (r *ListRepository) ListTitleExists(ctx context.Context, title string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	var one int
	err := r.db.QueryRowContext(ctx, `SELECT 1 FROM lists WHERE owner = ? AND lower(title) = lower(?) LIMIT 1`, r.owner, title).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// CreateList inserts a new list for the owner. A uniqueness violation (the owner
// already has this exact title) yields false with a nil error; any other storage
// failure is returned unchanged.
func (r *ListRepository) CreateList(ctx context.Context, title string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	ok, err := execAffected(ctx, r.db, `INSERT INTO lists (title, owner) VALUES (?, ?)`, title, r.owner)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return false, nil
		}
		return false, err
	}
	return ok, nil
}

// execAffected runs a statement and reports whether it touched at least one row.
func execAffected(ctx context.Context, d *sql.DB, query string, args ...any) (bool, error) {
	res, err := d.ExecContext(ctx, query, args...)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
