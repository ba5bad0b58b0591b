package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"workoutLists/models"
)

// CompleteOutcome distinguishes the results CompleteAllEntries folds into one boolean.
type CompleteOutcome int

const (
	CompleteNotFound CompleteOutcome = iota // list does not resolve under the owner
	CompleteNoOp                            // list is owned but has no undone entries
	CompleteUpdated                         // at least one entry was marked done
)

func (o CompleteOutcome) String() string {
	switch o {
	case CompleteNoOp:
		return "noop"
	case CompleteUpdated:
		return "updated"
	default:
		return "not found"
	}
}

const entryColumns = `id, title, list_id, done, sets, reps, duration, weight, owner`

// SortedEntries returns the entries of an owned list: undone first, then by sets
// (entries without sets last), then by case-insensitive title. An unknown list
// yields an empty slice.
func (r *ListRepository) SortedEntries(ctx context.Context, listID int64) ([]models.Entry, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, `
SELECT `+entryColumns+`
FROM entries
WHERE list_id = ? AND owner = ?
ORDER BY done ASC, sets IS NULL ASC, sets ASC, lower(title) ASC, id ASC`, listID, r.owner)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEntryRows(rows)
}

// GetEntry returns the entry, or nil if either id does not resolve under the owner.
func (r *ListRepository) GetEntry(ctx context.Context, listID, entryID int64) (*models.Entry, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	row := r.db.QueryRowContext(ctx, `SELECT `+entryColumns+` FROM entries WHERE list_id = ? AND id = ? AND owner = ?`, listID, entryID, r.owner)
	e, err := scanEntry(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return e, nil
}

// ToggleEntry flips the done flag of one entry.
func (r *ListRepository) ToggleEntry(ctx context.Context, listID, entryID int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return execAffected(ctx, r.db, `UPDATE entries SET done = NOT done WHERE list_id = ? AND id = ? AND owner = ?`, listID, entryID, r.owner)
}

// DeleteEntry removes one entry.
func (r *ListRepository) DeleteEntry(ctx context.Context, listID, entryID int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return execAffected(ctx, r.db, `DELETE FROM entries WHERE list_id = ? AND id = ? AND owner = ?`, listID, entryID, r.owner)
}

// CompleteAllEntries marks every undone entry of the list as done. It returns true
// only when at least one row changed: an owned list that is already complete
// reports false, the same as a list that does not resolve.
// Use CompleteAllEntriesOutcome to tell the two apart.
func (r *ListRepository) CompleteAllEntries(ctx context.Context, listID int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return execAffected(ctx, r.db, `UPDATE entries SET done = TRUE WHERE list_id = ? AND owner = ? AND NOT done`, listID, r.owner)
}

// CompleteAllEntriesOutcome is CompleteAllEntries with a three-way result.
func (r *ListRepository) CompleteAllEntriesOutcome(ctx context.Context, listID int64) (CompleteOutcome, error) {
	updated, err := r.CompleteAllEntries(ctx, listID)
	if err != nil {
		return CompleteNotFound, err
	}
	if updated {
		return CompleteUpdated, nil
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	l, err := r.listHeader(ctx, listID)
	if err != nil {
		return CompleteNotFound, err
	}
	if l == nil {
		return CompleteNotFound, nil
	}
	return CompleteNoOp, nil
}

// CreateEntry inserts a new undone entry under an owned list. It returns false
// when the list does not resolve under the owner.
func (r *ListRepository) CreateEntry(ctx context.Context, listID int64, title string, attrs models.EntryAttrs) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	// INSERT ... SELECT keeps the ownership check and the insert in one statement.
	return execAffected(ctx, r.db, `
INSERT INTO entries (title, list_id, sets, reps, duration, weight, owner)
SELECT ?, id, ?, ?, ?, ?, owner FROM lists WHERE id = ? AND owner = ?`,
		title, attrs.Sets, attrs.Reps, attrs.Duration, attrs.Weight, listID, r.owner)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(s rowScanner) (*models.Entry, error) {
	var e models.Entry
	var sets, reps sql.NullInt64
	var duration, weight sql.NullFloat64
	if err := s.Scan(&e.ID, &e.Title, &e.ListID, &e.Done, &sets, &reps, &duration, &weight, &e.Owner); err != nil {
		return nil, err
	}
	if sets.Valid {
		v := sets.Int64
		e.Sets = &v
	}
	if reps.Valid {
		v := reps.Int64
		e.Reps = &v
	}
	if duration.Valid {
		v := duration.Float64
		e.Duration = &v
	}
	if weight.Valid {
		v := weight.Float64
		e.Weight = &v
	}
	return &e, nil
}

// scanEntryRows is a helper to scan rows into Entry values. It never returns a nil slice.
func scanEntryRows(rows *sql.Rows) ([]models.Entry, error) {
	out := []models.Entry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
