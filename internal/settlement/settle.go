// Package settlement implements the debt-netting engine: given the current
// people and expense lists it computes the list of point-to-point payments
// that bring every net balance to zero.
//
// Algorithm:
//   - accumulate net balances per person (payer +amount, each participant
//     -share)
//   - round to two decimals and drop anyone within a cent of zero
//   - greedily match the biggest debtor against the biggest creditor with a
//     two-cursor scan, emitting a payment per step
//   - re-sort the output so partner-routed payments come first, then by
//     amount descending
//
// The greedy pass tends to minimize the number of payments but does not
// solve the NP-hard minimum-transaction problem exactly. The whole
// computation is pure and deterministic: no I/O, no shared state, identical
// input yields identical output.
package settlement

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jperaza/divvy/internal/models"
)

// centThreshold is the monetary epsilon. Balances and payments under one
// cent are treated as settled noise and never emitted.
var centThreshold = decimal.New(1, -2)

// Settle computes the settlement list for the given expenses and people.
// Both slices are read-only inputs; the engine holds no state between calls
// and is safe to invoke concurrently with different snapshots.
//
// Ids referenced by expenses but missing from people still take part in
// matching with an implicit zero-starting balance; resolving them to display
// metadata (or a placeholder) is the presentation layer's concern.
func Settle(expenses []models.Expense, people []models.Person) ([]models.Settlement, error) {
	sheet, err := accumulate(expenses, people)
	if err != nil {
		return nil, err
	}

	debtors, creditors := partition(sheet)
	settlements := match(debtors, creditors)
	orderByPartner(settlements, people)
	return settlements, nil
}

// partition rounds every balance to two decimals, discards anyone within a
// cent of zero, and splits the rest into debtors (most negative first) and
// creditors (most positive first). Stable sorts keep sheet insertion order
// on equal balances, which is what makes ties reproducible.
func partition(sheet *balanceSheet) (debtors, creditors []entry) {
	for _, e := range sheet.entries() {
		rounded := e.balance.Round(2)
		if rounded.Abs().LessThan(centThreshold) {
			continue
		}
		if rounded.IsNegative() {
			debtors = append(debtors, entry{id: e.id, balance: rounded})
		} else {
			creditors = append(creditors, entry{id: e.id, balance: rounded})
		}
	}
	sort.SliceStable(debtors, func(i, j int) bool {
		return debtors[i].balance.LessThan(debtors[j].balance)
	})
	sort.SliceStable(creditors, func(i, j int) bool {
		return creditors[i].balance.GreaterThan(creditors[j].balance)
	})
	return debtors, creditors
}

// match walks both sorted lists with independent cursors. Each step settles
// min(debt, credit) between the current pair and advances whichever side
// dropped below a cent; an exact match advances both. Since total debt
// equals total credit by construction, every step exhausts at least one
// side and the loop terminates in at most len(debtors)+len(creditors)-1
// iterations.
func match(debtors, creditors []entry) []models.Settlement {
	var settlements []models.Settlement
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		debtor, creditor := &debtors[i], &creditors[j]

		amount := decimal.Min(debtor.balance.Neg(), creditor.balance)
		if amount.GreaterThanOrEqual(centThreshold) {
			settlements = append(settlements, models.Settlement{
				From:   debtor.id,
				To:     creditor.id,
				Amount: amount.Round(2),
			})
		}

		debtor.balance = debtor.balance.Add(amount)
		creditor.balance = creditor.balance.Sub(amount)

		if debtor.balance.Abs().LessThan(centThreshold) {
			i++
		}
		if creditor.balance.Abs().LessThan(centThreshold) {
			j++
		}
	}
	return settlements
}

// orderByPartner re-sorts the finished settlement list: payments where the
// payer's declared partner is the payee come first, then amount descending
// within each bucket. Pure presentation ordering; who pays whom and how
// much is already fixed by match.
func orderByPartner(settlements []models.Settlement, people []models.Person) {
	partners := make(map[string]string, len(people))
	for _, p := range people {
		if p.PartnerID != "" {
			partners[p.ID] = p.PartnerID
		}
	}

	sort.SliceStable(settlements, func(i, j int) bool {
		a, b := settlements[i], settlements[j]
		aPartner := partners[a.From] == a.To
		bPartner := partners[b.From] == b.To
		if aPartner != bPartner {
			return aPartner
		}
		return a.Amount.GreaterThan(b.Amount)
	})
}
