// Package store holds the in-memory expense collection for the active
// session. It owns records for at most one user at a time; switching
// users goes through Load and Clear so collections never leak between
// accounts.
package store

import (
	"context"

	"github.com/pkg/errors"

	"github.com/pranusri1903/expense-tracker/internal/entity/expense"
)

type persistence interface {
	LoadExpenses(ctx context.Context, username string) ([]expense.Record, error)
	SaveExpenses(ctx context.Context, username string, records []expense.Record) error
}

var ErrNoActiveUser = errors.New("no active user")

type Store struct {
	persistence persistence
	username    string
	records     []expense.Record
	nextID      int64
}

func New(persistence persistence) *Store {
	return &Store{
		persistence: persistence,
		records:     make([]expense.Record, 0),
		nextID:      1,
	}
}

// Add appends the record, assigns it a session-scoped ID and rewrites the
// active user's persisted collection. Structurally identical duplicates
// are permitted; the IDs keep them distinguishable. The record stays in
// memory even when the save fails so the caller can surface the failure
// as a notification and carry on.
func (s *Store) Add(ctx context.Context, rec expense.Record) (expense.Record, error) {
	if s.username == "" {
		return expense.Record{}, ErrNoActiveUser
	}
	rec.ID = s.nextID
	s.nextID++
	s.records = append(s.records, rec)
	return rec, errors.Wrap(s.Save(ctx), "add record")
}

// Delete removes the record with the given ID and rewrites the persisted
// collection. An unknown ID is a no-op reported through the bool result.
func (s *Store) Delete(ctx context.Context, id int64) (bool, error) {
	if s.username == "" {
		return false, ErrNoActiveUser
	}
	for i, rec := range s.records {
		if rec.ID == id {
			s.records = append(s.records[:i], s.records[i+1:]...)
			return true, errors.Wrap(s.Save(ctx), "delete record")
		}
	}
	return false, nil
}

// All returns a snapshot of the collection in insertion order. Mutating
// the snapshot does not affect the store.
func (s *Store) All() []expense.Record {
	snapshot := make([]expense.Record, len(s.records))
	copy(snapshot, s.records)
	return snapshot
}

// ByCategory returns the records of one category, preserving insertion order.
func (s *Store) ByCategory(category expense.Category) []expense.Record {
	res := make([]expense.Record, 0)
	for _, rec := range s.records {
		if rec.Category == category {
			res = append(res, rec)
		}
	}
	return res
}

// Load replaces the collection with the named user's persisted records
// and binds the store to that user. Records get fresh session IDs. A
// persistence failure leaves the store bound with an empty collection;
// the error is returned so the caller can notify, but the session stays
// usable.
func (s *Store) Load(ctx context.Context, username string) error {
	s.username = username
	s.records = make([]expense.Record, 0)
	s.nextID = 1

	records, err := s.persistence.LoadExpenses(ctx, username)
	if err != nil {
		return errors.Wrap(err, "load records")
	}
	for _, rec := range records {
		rec.ID = s.nextID
		s.nextID++
		s.records = append(s.records, rec)
	}
	return nil
}

// Save rewrites the active user's whole persisted collection.
func (s *Store) Save(ctx context.Context) error {
	if s.username == "" {
		return ErrNoActiveUser
	}
	return errors.Wrap(s.persistence.SaveExpenses(ctx, s.username, s.records), "save records")
}

// Clear empties the collection and unbinds the user without touching
// persisted state.
func (s *Store) Clear() {
	s.username = ""
	s.records = make([]expense.Record, 0)
	s.nextID = 1
}

func (s *Store) Len() int {
	return len(s.records)
}
