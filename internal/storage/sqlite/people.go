package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jperaza/divvy/internal/models"
	"github.com/jperaza/divvy/internal/storage"
)

// CreatePerson persists a new person, generating ID and CreatedAt if unset.
func (s *SQLiteStore) CreatePerson(ctx context.Context, person *models.Person) error {
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
		 VALUES (?, ?, ?, ?, ?, ?)`,
		person.ID, person.FullName, person.BankName, person.AccountNumber, partnerID, person.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert person: %w", err)
	}
	return nil
}

// GetPerson retrieves a person by id.
func (s *SQLiteStore) GetPerson(ctx context.Context, id string) (*models.Person, error) {
	person := &models.Person{}
	var partnerID sql.NullString

	err := s.db.QueryRowContext(ctx,
		`SELECT id, full_name, bank_name, account_number, partner_id, created_at
		 FROM people WHERE id = ?`,
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
func (s *SQLiteStore) ListPeople(ctx context.Context) ([]models.Person, error) {
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
func (s *SQLiteStore) UpdatePerson(ctx context.Context, person *models.Person) error {
	var partnerID interface{}
	if person.PartnerID != "" {
		partnerID = person.PartnerID
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE people SET full_name = ?, bank_name = ?, account_number = ?, partner_id = ?
		 WHERE id = ?`,
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
func (s *SQLiteStore) DeletePerson(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM people WHERE id = ?", id)
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
