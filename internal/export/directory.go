// Package export renders the current expense and settlement state as a
// shareable text summary or a PDF receipt. It is read-only presentation:
// ids are resolved to display names via the people list, and any id that no
// longer resolves gets a placeholder instead of failing.
package export

import (
	"fmt"

	"github.com/jperaza/divvy/internal/models"
)

// Placeholder is shown for ids that don't resolve to a known person.
const Placeholder = "Unknown"

// Directory resolves person ids to display metadata.
type Directory struct {
	people map[string]models.Person
}

// NewDirectory indexes the people list by id.
func NewDirectory(people []models.Person) Directory {
	idx := make(map[string]models.Person, len(people))
	for _, p := range people {
		idx[p.ID] = p
	}
	return Directory{people: idx}
}

// Name returns the person's display name, or Placeholder if unknown.
func (d Directory) Name(id string) string {
	if p, ok := d.people[id]; ok {
		return p.FullName
	}
	return Placeholder
}

// PaymentDetails returns "bank - account" for the person, or empty if the
// id is unknown.
func (d Directory) PaymentDetails(id string) string {
	p, ok := d.people[id]
	if !ok {
		return ""
	}
	return fmt.Sprintf("%s - %s", p.BankName, p.AccountNumber)
}
