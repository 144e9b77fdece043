// Package memory provides an in-memory implementation of storage.Store.
// It backs tests and ephemeral runs; nothing survives a restart.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jperaza/divvy/internal/models"
	"github.com/jperaza/divvy/internal/storage"
)

var _ storage.Store = (*Store)(nil)

// Store holds people and expenses in slices, preserving insertion order,
// guarded by a single mutex. Reads return copies so callers can never
// mutate internal state.
type Store struct {
	mu       sync.Mutex
	people   []models.Person
	expenses []models.Expense
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{}
}

// ListPeople returns a copy of all people in insertion order.
func (s *Store) ListPeople(ctx context.Context) ([]models.Person, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Person, len(s.people))
	copy(out, s.people)
	return out, nil
}

// GetPerson retrieves a person by id.
func (s *Store) GetPerson(ctx context.Context, id string) (*models.Person, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.people {
		if s.people[i].ID == id {
			p := s.people[i]
			return &p, nil
		}
	}
	return nil, fmt.Errorf("person %s: %w", id, storage.ErrNotFound)
}

// CreatePerson appends a new person, assigning ID and CreatedAt if unset.
func (s *Store) CreatePerson(ctx context.Context, person *models.Person) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if person.ID == "" {
		person.ID = uuid.New().String()
	}
	if person.CreatedAt == 0 {
		person.CreatedAt = time.Now().Unix()
	}
	s.people = append(s.people, *person)
	return nil
}

// UpdatePerson replaces the stored fields of an existing person.
func (s *Store) UpdatePerson(ctx context.Context, person *models.Person) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.people {
		if s.people[i].ID == person.ID {
			person.CreatedAt = s.people[i].CreatedAt
			s.people[i] = *person
			return nil
		}
	}
	return fmt.Errorf("person %s: %w", person.ID, storage.ErrNotFound)
}

// DeletePerson removes a person by id.
func (s *Store) DeletePerson(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.people {
		if s.people[i].ID == id {
			s.people = append(s.people[:i], s.people[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("person %s: %w", id, storage.ErrNotFound)
}

// ListExpenses returns a copy of all expenses in insertion order.
func (s *Store) ListExpenses(ctx context.Context) ([]models.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Expense, len(s.expenses))
	copy(out, s.expenses)
	for i := range out {
		split := make([]string, len(out[i].SplitBetween))
		copy(split, out[i].SplitBetween)
		out[i].SplitBetween = split
	}
	return out, nil
}

// CreateExpense appends a new expense, assigning ID and CreatedAt if unset.
func (s *Store) CreateExpense(ctx context.Context, expense *models.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}
	s.expenses = append(s.expenses, *expense)
	return nil
}

// DeleteExpense removes an expense by id.
func (s *Store) DeleteExpense(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.expenses {
		if s.expenses[i].ID == id {
			s.expenses = append(s.expenses[:i], s.expenses[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("expense %s: %w", id, storage.ErrNotFound)
}

// Close is a no-op for the in-memory store.
func (s *Store) Close() error {
	return nil
}
