// Package postgres provides a PostgreSQL-backed implementation of the
// storage.Store interface, for deployments that outgrow the single-file
// SQLite default.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq" // Postgres driver
	"github.com/shopspring/decimal"

	"github.com/jperaza/divvy/internal/models"
	"github.com/jperaza/divvy/internal/storage"
)

var _ storage.Store = (*PostgresStore)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS people (
    id TEXT PRIMARY KEY,
    full_name TEXT NOT NULL,
    bank_name TEXT NOT NULL,
    account_number TEXT NOT NULL,
    partner_id TEXT,
    created_at BIGINT NOT NULL
);

CREATE TABLE IF NOT EXISTS expenses (
    id TEXT PRIMARY KEY,
    description TEXT NOT NULL,
    amount NUMERIC(12,4) NOT NULL,
    paid_by_id TEXT NOT NULL,
    created_at BIGINT NOT NULL
);

CREATE TABLE IF NOT EXISTS expense_participants (
    expense_id TEXT NOT NULL REFERENCES expenses(id) ON DELETE CASCADE,
    person_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    PRIMARY KEY (expense_id, person_id)
);
`

// PostgresStore implements storage.Store using PostgreSQL via lib/pq.
type PostgresStore struct {
	db *sql.DB
}

// New opens a connection with the given DSN and ensures the schema exists.
func New(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres connection: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

// Close closes the database connection.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// CreatePerson persists a new person, generating ID and CreatedAt if unset.
func (s *PostgresStore) CreatePerson(ctx context.Context, person *models.Person) error {
	if person.ID == "" {
		person.ID = uuid.New().String()
	}
	if person.CreatedAt == 0 {
		person.CreatedAt = time.Now().Unix()
	}

	var partnerID interface{}
	if person.PartnerID != "" {
		partnerID = person.PartnerID
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO people (id, full_name, bank_name, account_number, partner_id, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		person.ID, person.FullName, person.BankName, person.AccountNumber, partnerID, person.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert person: %w", err)
	}
	return nil
}

// GetPerson retrieves a person by id.
func (s *PostgresStore) GetPerson(ctx context.Context, id string) (*models.Person, error) {
	person := &models.Person{}
	var partnerID sql.NullString

	err := s.db.QueryRowContext(ctx,
		`SELECT id, full_name, bank_name, account_number, partner_id, created_at
		 FROM people WHERE id = $1`,
		id,
	).Scan(&person.ID, &person.FullName, &person.BankName, &person.AccountNumber, &partnerID, &person.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("person %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get person: %w", err)
	}

	if partnerID.Valid {
		person.PartnerID = partnerID.String
	}
	return person, nil
}

// ListPeople returns all people ordered by insertion time.
func (s *PostgresStore) ListPeople(ctx context.Context) ([]models.Person, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, full_name, bank_name, account_number, partner_id, created_at
		 FROM people ORDER BY created_at, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list people: %w", err)
	}
	defer rows.Close()

	var people []models.Person
	for rows.Next() {
		var person models.Person
		var partnerID sql.NullString
		if err := rows.Scan(&person.ID, &person.FullName, &person.BankName,
			&person.AccountNumber, &partnerID, &person.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan person: %w", err)
		}
		if partnerID.Valid {
			person.PartnerID = partnerID.String
		}
		people = append(people, person)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate people: %w", err)
	}
	return people, nil
}

// UpdatePerson replaces the stored fields of an existing person.
func (s *PostgresStore) UpdatePerson(ctx context.Context, person *models.Person) error {
	var partnerID interface{}
	if person.PartnerID != "" {
		partnerID = person.PartnerID
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE people SET full_name = $1, bank_name = $2, account_number = $3, partner_id = $4
		 WHERE id = $5`,
		person.FullName, person.BankName, person.AccountNumber, partnerID, person.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update person: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("person %s: %w", person.ID, storage.ErrNotFound)
	}
	return nil
}

// DeletePerson removes a person by id.
func (s *PostgresStore) DeletePerson(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM people WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete person: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("person %s: %w", id, storage.ErrNotFound)
	}
	return nil
}

// CreateExpense persists a new expense and its participant list in one
// transaction, generating ID and CreatedAt if unset.
func (s *PostgresStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO expenses (id, description, amount, paid_by_id, created_at) VALUES ($1, $2, $3, $4, $5)",
		expense.ID, expense.Description, expense.Amount.String(), expense.PaidByID, expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	for i, personID := range expense.SplitBetween {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO expense_participants (expense_id, person_id, position) VALUES ($1, $2, $3)",
			expense.ID, personID, i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert expense participant: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ListExpenses returns all expenses with their participant lists, ordered by
// insertion time.
func (s *PostgresStore) ListExpenses(ctx context.Context) ([]models.Expense, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, description, amount, paid_by_id, created_at FROM expenses ORDER BY created_at, id",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []models.Expense
	for rows.Next() {
		var expense models.Expense
		var amount string
		if err := rows.Scan(&expense.ID, &expense.Description, &amount,
			&expense.PaidByID, &expense.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expense.Amount, err = decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("failed to parse amount for expense %s: %w", expense.ID, err)
		}
		expenses = append(expenses, expense)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	for i := range expenses {
		participants, err := s.expenseParticipants(ctx, expenses[i].ID)
		if err != nil {
			return nil, err
		}
		expenses[i].SplitBetween = participants
	}
	return expenses, nil
}

func (s *PostgresStore) expenseParticipants(ctx context.Context, expenseID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT person_id FROM expense_participants WHERE expense_id = $1 ORDER BY position",
		expenseID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get expense participants: %w", err)
	}
	defer rows.Close()

	var participants []string
	for rows.Next() {
		var personID string
		if err := rows.Scan(&personID); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		participants = append(participants, personID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate participants: %w", err)
	}
	return participants, nil
}

// DeleteExpense removes an expense by id; participant rows cascade.
func (s *PostgresStore) DeleteExpense(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM expenses WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("expense %s: %w", id, storage.ErrNotFound)
	}
	return nil
}
