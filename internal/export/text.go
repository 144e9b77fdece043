package export

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jperaza/divvy/internal/models"
)

// Text renders a plain-text summary suitable for pasting into a group chat:
// the expense breakdown followed by the required payments with the payee's
// payment details.
func Text(expenses []models.Expense, people []models.Person, settlements []models.Settlement) string {
	directory := NewDirectory(people)
	var b strings.Builder

	b.WriteString("💰 *Expense Summary* 💰\n\n")

	b.WriteString("*Expense Breakdown:*\n")
	for i, expense := range expenses {
		b.WriteString(fmt.Sprintf("\n%d. %s\n", i+1, expense.Description))
		b.WriteString(fmt.Sprintf("   Amount: $%s\n", expense.Amount.StringFixed(2)))
		b.WriteString(fmt.Sprintf("   Paid by: %s\n", directory.Name(expense.PaidByID)))
		names := make([]string, len(expense.SplitBetween))
		for j, id := range expense.SplitBetween {
			names[j] = directory.Name(id)
		}
		b.WriteString(fmt.Sprintf("   Split between: %s\n", strings.Join(names, ", ")))
		if share, ok := perPersonShare(expense); ok {
			b.WriteString(fmt.Sprintf("   Each person pays: $%s\n", share.StringFixed(2)))
		}
	}

	b.WriteString("\n*Required Payments:*\n")
	for i, settlement := range settlements {
		b.WriteString(fmt.Sprintf("\n%d. %s → %s\n",
			i+1, directory.Name(settlement.From), directory.Name(settlement.To)))
		b.WriteString(fmt.Sprintf("   Amount: $%s\n", settlement.Amount.StringFixed(2)))
		b.WriteString(fmt.Sprintf("   Payment details: %s\n", directory.PaymentDetails(settlement.To)))
	}

	return b.String()
}

// perPersonShare returns the equal share for one expense. ok is false for a
// participant-less expense, which the store should never hand us.
func perPersonShare(expense models.Expense) (decimal.Decimal, bool) {
	if len(expense.SplitBetween) == 0 {
		return decimal.Zero, false
	}
	return expense.Amount.Div(decimal.NewFromInt(int64(len(expense.SplitBetween)))), true
}
