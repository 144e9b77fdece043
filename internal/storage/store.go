// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/jperaza/divvy/internal/models"
)

// ErrNotFound is returned when a person or expense id does not exist.
var ErrNotFound = errors.New("record not found")

// Store defines the interface for the people/expense record store.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL,
// in-memory) without changing the service layer.
//
// Stores own id and timestamp generation: Create* populates the record's
// ID and CreatedAt fields when they are unset. Settlements are never
// stored; they are derived state owned by the settlement engine.
type Store interface {
	// ListPeople returns all people in insertion order.
	ListPeople(ctx context.Context) ([]models.Person, error)

	// GetPerson retrieves a person by id. Returns ErrNotFound if absent.
	GetPerson(ctx context.Context, id string) (*models.Person, error)

	// CreatePerson persists a new person, assigning ID and CreatedAt.
	CreatePerson(ctx context.Context, person *models.Person) error

	// UpdatePerson replaces the stored fields of an existing person.
	// Returns ErrNotFound if the id is unknown.
	UpdatePerson(ctx context.Context, person *models.Person) error

	// DeletePerson removes a person by id. Returns ErrNotFound if absent.
	// Expenses referencing the person are left alone; cascading is the
	// service layer's decision.
	DeletePerson(ctx context.Context, id string) error

	// ListExpenses returns all expenses in insertion order.
	ListExpenses(ctx context.Context) ([]models.Expense, error)

	// CreateExpense persists a new expense, assigning ID and CreatedAt.
	CreateExpense(ctx context.Context, expense *models.Expense) error

	// DeleteExpense removes an expense by id. Returns ErrNotFound if absent.
	DeleteExpense(ctx context.Context, id string) error

	// Close releases any resources held by the store.
	Close() error
}
