package settlement

import (
	"testing"

	"github.com/jperaza/divvy/internal/models"
)

func TestAccumulate(t *testing.T) {
	tests := []struct {
		name     string
		people   []models.Person
		expenses []models.Expense
		validate func(t *testing.T, sheet *balanceSheet)
	}{
		{
			name:   "payer in split nets own share",
			people: []models.Person{person("A", ""), person("B", "")},
			expenses: []models.Expense{
				expense("100.00", "A", "A", "B"),
			},
			validate: func(t *testing.T, sheet *balanceSheet) {
				if got := sheet.totals["A"]; !got.Equal(dec("50")) {
					t.Errorf("A balance = %s, want 50", got)
				}
				if got := sheet.totals["B"]; !got.Equal(dec("-50")) {
					t.Errorf("B balance = %s, want -50", got)
				}
			},
		},
		{
			name:   "person with no expenses keeps zero balance",
			people: []models.Person{person("A", ""), person("B", ""), person("idle", "")},
			expenses: []models.Expense{
				expense("20.00", "A", "B"),
			},
			validate: func(t *testing.T, sheet *balanceSheet) {
				got, ok := sheet.totals["idle"]
				if !ok {
					t.Fatal("idle person missing from sheet")
				}
				if !got.IsZero() {
					t.Errorf("idle balance = %s, want 0", got)
				}
			},
		},
		{
			name:   "unknown ids appended after known people in first-seen order",
			people: []models.Person{person("A", "")},
			expenses: []models.Expense{
				expense("30.00", "A", "A", "zeta", "alpha"),
			},
			validate: func(t *testing.T, sheet *balanceSheet) {
				want := []string{"A", "zeta", "alpha"}
				entries := sheet.entries()
				if len(entries) != len(want) {
					t.Fatalf("sheet has %d entries, want %d", len(entries), len(want))
				}
				for i, id := range want {
					if entries[i].id != id {
						t.Errorf("entries[%d].id = %s, want %s", i, entries[i].id, id)
					}
				}
			},
		},
		{
			name:   "payer outside split carries full credit",
			people: []models.Person{person("A", ""), person("B", ""), person("C", "")},
			expenses: []models.Expense{
				expense("60.00", "A", "B", "C"),
			},
			validate: func(t *testing.T, sheet *balanceSheet) {
				if got := sheet.totals["A"]; !got.Equal(dec("60")) {
					t.Errorf("A balance = %s, want 60", got)
				}
				if got := sheet.totals["B"]; !got.Equal(dec("-30")) {
					t.Errorf("B balance = %s, want -30", got)
				}
				if got := sheet.totals["C"]; !got.Equal(dec("-30")) {
					t.Errorf("C balance = %s, want -30", got)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sheet, err := accumulate(tt.expenses, tt.people)
			if err != nil {
				t.Fatalf("accumulate() error = %v", err)
			}
			tt.validate(t, sheet)
		})
	}
}

func TestBalanceSheetEnsureIsIdempotent(t *testing.T) {
	sheet := newBalanceSheet(nil)
	sheet.add("X", dec("5"))
	sheet.add("X", dec("-2"))
	sheet.ensure("X")

	if len(sheet.order) != 1 {
		t.Fatalf("order has %d entries, want 1", len(sheet.order))
	}
	if got := sheet.totals["X"]; !got.Equal(dec("3")) {
		t.Errorf("X balance = %s, want 3", got)
	}
}
