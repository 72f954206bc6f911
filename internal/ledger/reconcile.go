package ledger

import "github.com/shopspring/decimal"

// Reconcile computes the tri-state balance verdict. It returns nil when
// either balance is missing (insufficient data to judge), otherwise whether
// startingBalance plus the sum of all transaction amounts equals
// endingBalance.
//
// Both sides are rounded to 2 decimal places before comparison, using
// decimal half-away-from-zero rounding (the shopspring default). Summation
// is exact decimal arithmetic throughout; binary floats never enter the
// comparison.
func Reconcile(startingBalance, endingBalance *decimal.Decimal, txs []Transaction) *bool {
	if startingBalance == nil || endingBalance == nil {
		return nil
	}

	sum := decimal.Zero
	for _, tx := range txs {
		sum = sum.Add(tx.Amount)
	}

	verdict := startingBalance.Add(sum).Round(2).Equal(endingBalance.Round(2))
	return &verdict
}
