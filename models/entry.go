package models

import (
	"errors"
	"math"
)

// Entry is a single trackable item within a List.
// The numeric attributes are nullable in the DB; pointers distinguish null from zero.
type Entry struct {
	ID       int64    `db:"id" json:"id"`
	Title    string   `db:"title" json:"title"`
	ListID   int64    `db:"list_id" json:"list_id"`
	Done     bool     `db:"done" json:"done"`
	Sets     *int64   `db:"sets" json:"sets,omitempty"`
	Reps     *int64   `db:"reps" json:"reps,omitempty"`
	Duration *float64 `db:"duration" json:"duration,omitempty"`
	Weight   *float64 `db:"weight" json:"weight,omitempty"`
	Owner    string   `db:"owner" json:"owner"`
}

// EntryAttrs carries the optional numeric attributes of a new entry.
type EntryAttrs struct {
	Sets     *int64   `json:"sets,omitempty"`
	Reps     *int64   `json:"reps,omitempty"`
	Duration *float64 `json:"duration,omitempty"`
	Weight   *float64 `json:"weight,omitempty"`
}

// ErrInvalidAttribute wraps every error returned by EntryAttrs.Validate.
var ErrInvalidAttribute = errors.New("invalid entry attribute")

type attrError struct {
	field, reason string
}

func (e *attrError) Error() string { return e.field + " " + e.reason + "." }

func (e *attrError) Unwrap() error { return ErrInvalidAttribute }

// Validate rejects negative counts and negative or non-finite measurements.
// Absent attributes are always valid.
func (a EntryAttrs) Validate() error {
	for _, c := range []struct {
		field string
		v     *int64
	}{{"Sets", a.Sets}, {"Reps", a.Reps}} {
		if c.v != nil && *c.v < 0 {
			return &attrError{c.field, "must not be negative"}
		}
	}
	for _, c := range []struct {
		field string
		v     *float64
	}{{"Duration", a.Duration}, {"Weight", a.Weight}} {
		if c.v != nil && (*c.v < 0 || math.IsNaN(*c.v) || math.IsInf(*c.v, 0)) {
			return &attrError{c.field, "must be a non-negative number"}
		}
	}
	return nil
}
