// Package service orchestrates the record store and the settlement engine.
// Every mutation reruns the engine over the full current data set and
// atomically replaces the cached settlement list — there is no incremental
// update path.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jperaza/divvy/internal/events"
	"github.com/jperaza/divvy/internal/models"
	"github.com/jperaza/divvy/internal/settlement"
	"github.com/jperaza/divvy/internal/storage"
)

// ErrInvalidInput marks validation failures on incoming records. Transports
// map it to a 400-class response.
var ErrInvalidInput = errors.New("invalid input")

// Service owns the authoritative people/expense records and the derived
// settlement list.
type Service struct {
	store  storage.Store
	events events.Publisher

	mu          sync.RWMutex
	settlements []models.Settlement
}

// New creates a Service and computes the initial settlement list from
// whatever the store already holds.
func New(ctx context.Context, store storage.Store, publisher events.Publisher) (*Service, error) {
	s := &Service{store: store, events: publisher}
	if _, err := s.recalculate(ctx); err != nil {
		return nil, fmt.Errorf("initial settlement calculation: %w", err)
	}
	return s, nil
}

// Settlements returns a copy of the current settlement list.
func (s *Service) Settlements() []models.Settlement {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Settlement, len(s.settlements))
	copy(out, s.settlements)
	return out
}

// ListPeople returns all people.
func (s *Service) ListPeople(ctx context.Context) ([]models.Person, error) {
	return s.store.ListPeople(ctx)
}

// GetPerson returns one person by id.
func (s *Service) GetPerson(ctx context.Context, id string) (*models.Person, error) {
	return s.store.GetPerson(ctx, id)
}

// ListExpenses returns all expenses.
func (s *Service) ListExpenses(ctx context.Context) ([]models.Expense, error) {
	return s.store.ListExpenses(ctx)
}

// AddPerson validates and persists a new person, then recalculates.
func (s *Service) AddPerson(ctx context.Context, person *models.Person) error {
	if person.FullName == "" {
		return fmt.Errorf("%w: full name is required", ErrInvalidInput)
	}
	if err := s.store.CreatePerson(ctx, person); err != nil {
		return err
	}
	s.refresh(ctx, events.KindPersonCreated, person.ID)
	return nil
}

// UpdatePerson replaces a person's stored fields, then recalculates.
// A PartnerID pointing at a missing person is accepted; the engine treats
// it as "no partner".
func (s *Service) UpdatePerson(ctx context.Context, person *models.Person) error {
	if person.FullName == "" {
		return fmt.Errorf("%w: full name is required", ErrInvalidInput)
	}
	if err := s.store.UpdatePerson(ctx, person); err != nil {
		return err
	}
	s.refresh(ctx, events.KindPersonUpdated, person.ID)
	return nil
}

// DeletePerson removes a person and every expense they paid or shared,
// then recalculates. Partner references to the deleted person stay behind
// as dangling hints, which the engine tolerates.
func (s *Service) DeletePerson(ctx context.Context, id string) error {
	expenses, err := s.store.ListExpenses(ctx)
	if err != nil {
		return err
	}
	for _, e := range expenses {
		if !references(e, id) {
			continue
		}
		if err := s.store.DeleteExpense(ctx, e.ID); err != nil {
			return fmt.Errorf("cascade delete of expense %s: %w", e.ID, err)
		}
	}
	if err := s.store.DeletePerson(ctx, id); err != nil {
		return err
	}
	s.refresh(ctx, events.KindPersonDeleted, id)
	return nil
}

// AddExpense validates and persists a new expense, then recalculates.
func (s *Service) AddExpense(ctx context.Context, expense *models.Expense) error {
	if expense.Description == "" {
		return fmt.Errorf("%w: description is required", ErrInvalidInput)
	}
	if !expense.Amount.IsPositive() {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}
	if expense.PaidByID == "" {
		return fmt.Errorf("%w: paid_by_id is required", ErrInvalidInput)
	}
	if len(expense.SplitBetween) == 0 {
		return fmt.Errorf("%w: split_between must not be empty", ErrInvalidInput)
	}
	if err := s.store.CreateExpense(ctx, expense); err != nil {
		return err
	}
	s.refresh(ctx, events.KindExpenseCreated, expense.ID)
	return nil
}

// DeleteExpense removes an expense, then recalculates.
func (s *Service) DeleteExpense(ctx context.Context, id string) error {
	if err := s.store.DeleteExpense(ctx, id); err != nil {
		return err
	}
	s.refresh(ctx, events.KindExpenseDeleted, id)
	return nil
}

// references reports whether the expense involves the given person, as
// payer or participant.
func references(e models.Expense, personID string) bool {
	if e.PaidByID == personID {
		return true
	}
	for _, id := range e.SplitBetween {
		if id == personID {
			return true
		}
	}
	return false
}

// recalculate reruns the engine over the full data set and swaps the cache.
func (s *Service) recalculate(ctx context.Context) (int, error) {
	people, err := s.store.ListPeople(ctx)
	if err != nil {
		return 0, err
	}
	expenses, err := s.store.ListExpenses(ctx)
	if err != nil {
		return 0, err
	}

	settlements, err := settlement.Settle(expenses, people)
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	s.settlements = settlements
	s.mu.Unlock()
	return len(settlements), nil
}

// refresh recalculates after a successful mutation and publishes the
// outcome. The mutation itself already succeeded, so failures here are
// logged rather than surfaced to the caller.
func (s *Service) refresh(ctx context.Context, kind, recordID string) {
	count, err := s.recalculate(ctx)
	if err != nil {
		slog.Error("settlement recalculation failed", "kind", kind, "record_id", recordID, "error", err)
		return
	}

	event := events.Recalculated{
		Kind:            kind,
		RecordID:        recordID,
		SettlementCount: count,
		OccurredAt:      time.Now().UTC(),
	}
	if err := s.events.Publish(ctx, event); err != nil {
		slog.Warn("failed to publish recalculation event", "kind", kind, "error", err)
	}
}
