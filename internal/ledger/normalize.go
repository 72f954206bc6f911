package ledger

import (
	"strings"

	"github.com/shopspring/decimal"
)

// NormalizeEntries converts raw transcription entries of unknown shape into
// canonical transactions, preserving source order. The policy is
// permissive-drop: entries that cannot be resolved to a single signed amount
// are excluded silently and the call itself never fails.
//
// statementCurrency is the statement-level default used when an entry has no
// currency of its own; pass nil when the statement did not declare one.
func NormalizeEntries(raw []any, statementCurrency *string) []Transaction {
	txs := make([]Transaction, 0, len(raw))
	for _, item := range raw {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		tx, ok := normalizeEntry(entry, statementCurrency)
		if !ok {
			continue
		}
		txs = append(txs, tx)
	}
	return txs
}

func normalizeEntry(entry map[string]any, statementCurrency *string) (Transaction, bool) {
	// Date and description must both be strings; no partial salvage.
	rawDate, ok := entry["date"].(string)
	if !ok {
		return Transaction{}, false
	}
	rawDesc, ok := entry["description"].(string)
	if !ok {
		return Transaction{}, false
	}

	date := strings.TrimSpace(rawDate)
	if date == "" {
		return Transaction{}, false
	}

	moneyIn := numberOrZero(entry["moneyIn"])
	moneyOut := numberOrZero(entry["moneyOut"])

	// Both sides positive: the direction cannot be determined.
	if moneyIn > 0 && moneyOut > 0 {
		return Transaction{}, false
	}
	// Negative magnitudes are not permitted in either column.
	if moneyIn < 0 || moneyOut < 0 {
		return Transaction{}, false
	}

	amount := decimal.NewFromFloat(-moneyOut)
	if moneyIn > 0 {
		amount = decimal.NewFromFloat(moneyIn)
	}

	desc := strings.TrimSpace(rawDesc)
	if desc == "" {
		desc = PlaceholderDescription
	}

	return Transaction{
		Date:        date,
		Description: desc,
		Amount:      amount,
		Currency:    resolveEntryCurrency(entry["currency"], statementCurrency),
	}, true
}

// numberOrZero resolves a value to a number if and only if its type is
// numeric; anything else (absent, null, string, bool) counts as zero.
func numberOrZero(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int: // encoding/json never produces this, but callers can
		return float64(n)
	default:
		return 0
	}
}

// resolveEntryCurrency applies the fallback chain: entry-level currency,
// then the statement-level default, then the default symbol.
func resolveEntryCurrency(v any, statementCurrency *string) string {
	if c, ok := v.(string); ok {
		if trimmed := strings.TrimSpace(c); trimmed != "" {
			return trimmed
		}
	}
	if statementCurrency != nil && *statementCurrency != "" {
		return *statementCurrency
	}
	return DefaultCurrency
}
