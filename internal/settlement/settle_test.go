package settlement

import (
	"errors"
	"reflect"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/jperaza/divvy/internal/models"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func person(id string, partnerID string) models.Person {
	return models.Person{ID: id, FullName: "Person " + id, PartnerID: partnerID}
}

func expense(amount, paidBy string, split ...string) models.Expense {
	return models.Expense{
		ID:           "exp-" + amount + "-" + paidBy,
		Description:  "expense",
		Amount:       dec(amount),
		PaidByID:     paidBy,
		SplitBetween: split,
	}
}

func TestSettle(t *testing.T) {
	tests := []struct {
		name     string
		people   []models.Person
		expenses []models.Expense
		want     []models.Settlement
	}{
		{
			name:   "one payer three-way split",
			people: []models.Person{person("A", ""), person("B", ""), person("C", "")},
			expenses: []models.Expense{
				expense("90.00", "A", "A", "B", "C"),
			},
			want: []models.Settlement{
				{From: "B", To: "A", Amount: dec("30")},
				{From: "C", To: "A", Amount: dec("30")},
			},
		},
		{
			name:   "mutual expenses net out",
			people: []models.Person{person("A", ""), person("B", "")},
			expenses: []models.Expense{
				expense("100.00", "A", "A", "B"),
				expense("40.00", "B", "A", "B"),
			},
			want: []models.Settlement{
				{From: "B", To: "A", Amount: dec("30")},
			},
		},
		{
			name:     "single person self-paid expense",
			people:   []models.Person{person("A", "")},
			expenses: []models.Expense{expense("25.00", "A", "A")},
			want:     nil,
		},
		{
			name:     "no expenses",
			people:   []models.Person{person("A", ""), person("B", "")},
			expenses: nil,
			want:     nil,
		},
		{
			name:   "partner payment listed before larger non-partner payment",
			people: []models.Person{person("A", ""), person("B", "C"), person("C", ""), person("D", "")},
			expenses: []models.Expense{
				expense("10.00", "C", "B"),
				expense("50.00", "A", "D"),
			},
			want: []models.Settlement{
				{From: "B", To: "C", Amount: dec("10")},
				{From: "D", To: "A", Amount: dec("50")},
			},
		},
		{
			name:   "partner gets debtor's first payment on uneven split",
			people: []models.Person{person("A", ""), person("B", "A"), person("C", "")},
			expenses: []models.Expense{
				expense("50.00", "A", "A", "B", "C"),
				expense("50.00", "C", "A", "B", "C"),
			},
			want: []models.Settlement{
				{From: "B", To: "A", Amount: dec("16.67")},
				{From: "B", To: "C", Amount: dec("16.66")},
			},
		},
		{
			name:   "unknown participant id still settles",
			people: []models.Person{person("A", ""), person("B", "")},
			expenses: []models.Expense{
				expense("30.00", "A", "A", "B", "ghost"),
			},
			want: []models.Settlement{
				{From: "B", To: "A", Amount: dec("10")},
				{From: "ghost", To: "A", Amount: dec("10")},
			},
		},
		{
			name:   "sub-cent imbalance dropped silently",
			people: []models.Person{person("A", ""), person("B", ""), person("C", "")},
			expenses: []models.Expense{
				expense("0.01", "A", "A", "B", "C"),
			},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Settle(tt.expenses, tt.people)
			if err != nil {
				t.Fatalf("Settle() error = %v", err)
			}
			assertSettlements(t, got, tt.want)
		})
	}
}

func assertSettlements(t *testing.T, got, want []models.Settlement) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("settlements = %v, want %v", got, want)
	}
	for i := range want {
		if got[i].From != want[i].From || got[i].To != want[i].To {
			t.Errorf("settlement[%d] = %s->%s, want %s->%s",
				i, got[i].From, got[i].To, want[i].From, want[i].To)
		}
		if !got[i].Amount.Equal(want[i].Amount) {
			t.Errorf("settlement[%d] amount = %s, want %s",
				i, got[i].Amount, want[i].Amount)
		}
	}
}

func TestSettleEmptySplitIsInvalidExpense(t *testing.T) {
	people := []models.Person{person("A", "")}
	expenses := []models.Expense{expense("10.00", "A")}

	_, err := Settle(expenses, people)
	if !errors.Is(err, ErrNoParticipants) {
		t.Fatalf("Settle() error = %v, want ErrNoParticipants", err)
	}
}

func TestSettleDeterministic(t *testing.T) {
	people := []models.Person{
		person("A", "B"), person("B", "A"), person("C", ""), person("D", ""), person("E", ""),
	}
	expenses := []models.Expense{
		expense("73.50", "A", "A", "B", "C", "D", "E"),
		expense("19.99", "C", "A", "C"),
		expense("120.00", "E", "B", "C", "D", "E"),
		expense("5.25", "B", "A", "B", "D"),
	}

	first, err := Settle(expenses, people)
	if err != nil {
		t.Fatalf("Settle() error = %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := Settle(expenses, people)
		if err != nil {
			t.Fatalf("Settle() error = %v", err)
		}
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d differs: %v vs %v", i, again, first)
		}
	}
}

// TestSettleInvariants checks the engine's global guarantees on a fixture
// with uneven splits, partners, and an unknown id: every emitted payment is
// at least a cent, nobody pays themselves, and applying all payments drives
// every balance to within a cent of zero.
func TestSettleInvariants(t *testing.T) {
	people := []models.Person{
		person("A", "B"), person("B", "A"), person("C", ""), person("D", ""),
	}
	expenses := []models.Expense{
		expense("100.00", "A", "A", "B", "C"),
		expense("33.33", "B", "B", "C", "D", "ghost"),
		expense("7.77", "D", "A", "D"),
		expense("250.10", "C", "A", "B", "C", "D"),
	}

	settlements, err := Settle(expenses, people)
	if err != nil {
		t.Fatalf("Settle() error = %v", err)
	}
	if len(settlements) == 0 {
		t.Fatal("expected settlements for unbalanced fixture")
	}

	sheet, err := accumulate(expenses, people)
	if err != nil {
		t.Fatalf("accumulate() error = %v", err)
	}

	// Conservation: positive balances mirror negative ones before matching.
	sum := decimal.Zero
	for _, e := range sheet.entries() {
		sum = sum.Add(e.balance.Round(2))
	}
	if sum.Abs().GreaterThanOrEqual(centThreshold) {
		t.Errorf("rounded balances sum to %s, want within a cent of zero", sum)
	}

	residual := make(map[string]decimal.Decimal)
	for _, e := range sheet.entries() {
		residual[e.id] = e.balance.Round(2)
	}
	for i, s := range settlements {
		if s.From == s.To {
			t.Errorf("settlement[%d] is a self-payment: %v", i, s)
		}
		if s.Amount.LessThan(centThreshold) {
			t.Errorf("settlement[%d] amount %s below threshold", i, s.Amount)
		}
		if s.Amount.IsNegative() {
			t.Errorf("settlement[%d] amount %s is negative", i, s.Amount)
		}
		residual[s.From] = residual[s.From].Add(s.Amount)
		residual[s.To] = residual[s.To].Sub(s.Amount)
	}
	for id, balance := range residual {
		if balance.Abs().GreaterThan(centThreshold) {
			t.Errorf("person %s left with balance %s after applying settlements", id, balance)
		}
	}
}

func TestSettleDanglingPartnerIgnored(t *testing.T) {
	people := []models.Person{person("A", ""), person("B", "deleted-person")}
	expenses := []models.Expense{expense("40.00", "A", "A", "B")}

	got, err := Settle(expenses, people)
	if err != nil {
		t.Fatalf("Settle() error = %v", err)
	}
	assertSettlements(t, got, []models.Settlement{
		{From: "B", To: "A", Amount: dec("20")},
	})
}
