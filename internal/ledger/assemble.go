package ledger

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// DecodeStatement parses the cleaned transcription text into the generic
// statement shape. This is the single validation boundary: past it, the raw
// object is handed to Assemble and every field is coerced individually.
// Empty input, non-JSON content, or a top-level value that is not an object
// all fail here.
func DecodeStatement(text string) (map[string]any, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, fmt.Errorf("empty transcription response")
	}

	var parsed any
	if err := json.Unmarshal([]byte(trimmed), &parsed); err != nil {
		return nil, fmt.Errorf("transcription response is not valid JSON: %w", err)
	}

	obj, ok := parsed.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("transcription response is %T, want a JSON object", parsed)
	}
	return obj, nil
}

// Assemble builds a Ledger from a decoded statement object. Header fields of
// the wrong type coerce to nil, a missing or non-array transactions field
// counts as empty, and the statement currency resolves through the fallback
// chain (explicit currency → first transaction's currency → default symbol).
// Assemble cannot fail: all entry-level problems are resolved by dropping.
func Assemble(raw map[string]any) *Ledger {
	led := &Ledger{
		Name:            stringField(raw, "name"),
		Address:         stringField(raw, "address"),
		Date:            stringField(raw, "date"),
		StartingBalance: decimalField(raw, "startingBalance"),
		EndingBalance:   decimalField(raw, "endingBalance"),
	}

	statementCurrency := stringField(raw, "currency")
	entries, _ := raw["transactions"].([]any)
	led.Transactions = NormalizeEntries(entries, statementCurrency)

	led.Currency = resolveStatementCurrency(statementCurrency, led.Transactions)
	led.Reconciles = Reconcile(led.StartingBalance, led.EndingBalance, led.Transactions)
	return led
}

func resolveStatementCurrency(statementCurrency *string, txs []Transaction) string {
	if statementCurrency != nil && *statementCurrency != "" {
		return *statementCurrency
	}
	if len(txs) > 0 && txs[0].Currency != "" {
		return txs[0].Currency
	}
	return DefaultCurrency
}

// stringField returns the field as *string when it is a non-blank string,
// nil for anything else.
func stringField(m map[string]any, key string) *string {
	s, ok := m[key].(string)
	if !ok {
		return nil
	}
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// decimalField returns the field as *decimal.Decimal when it is a number,
// nil for anything else.
func decimalField(m map[string]any, key string) *decimal.Decimal {
	switch n := m[key].(type) {
	case float64:
		d := decimal.NewFromFloat(n)
		return &d
	case int:
		d := decimal.NewFromInt(int64(n))
		return &d
	default:
		return nil
	}
}
