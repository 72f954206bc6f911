package ledger

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeStatement(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantErr bool
	}{
		{"valid object", `{"currency":"GBP","transactions":[]}`, false},
		{"empty input", "", true},
		{"whitespace only", "  \n\t ", true},
		{"not JSON at all", "I could not read the statement, sorry.", true},
		{"top-level array", `[{"date":"01-01-2024"}]`, true},
		{"top-level string", `"GBP"`, true},
		{"truncated JSON", `{"currency":"GBP","transactions":[`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obj, err := DecodeStatement(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, obj)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, obj)
			}
		})
	}
}

func decodeRaw(t *testing.T, text string) map[string]any {
	t.Helper()
	var raw map[string]any
	require.NoError(t, json.Unmarshal([]byte(text), &raw))
	return raw
}

func TestAssemble_FullStatement(t *testing.T) {
	raw := decodeRaw(t, `{
		"name": "J Smith",
		"address": "1 High Street, London",
		"date": "31-01-2024",
		"startingBalance": 100.00,
		"endingBalance": 75.00,
		"currency": "GBP",
		"transactions": [
			{"date": "01-01-2024", "description": "Coffee Shop", "moneyOut": 3.50},
			{"date": "02-01-2024", "description": "Refund", "moneyIn": 10.00},
			{"date": "03-01-2024", "description": "Groceries", "moneyOut": 31.50}
		]
	}`)

	led := Assemble(raw)

	require.NotNil(t, led.Name)
	assert.Equal(t, "J Smith", *led.Name)
	require.NotNil(t, led.Address)
	assert.Equal(t, "1 High Street, London", *led.Address)
	require.NotNil(t, led.Date)
	assert.Equal(t, "31-01-2024", *led.Date)

	require.NotNil(t, led.StartingBalance)
	assert.Equal(t, "100.00", led.StartingBalance.StringFixed(2))
	require.NotNil(t, led.EndingBalance)
	assert.Equal(t, "75.00", led.EndingBalance.StringFixed(2))

	assert.Equal(t, "GBP", led.Currency)
	require.Len(t, led.Transactions, 3)
	assert.Equal(t, "-3.50", led.Transactions[0].Amount.StringFixed(2))
	assert.Equal(t, "10.00", led.Transactions[1].Amount.StringFixed(2))

	require.NotNil(t, led.Reconciles)
	assert.True(t, *led.Reconciles)
}

func TestAssemble_HeaderCoercion(t *testing.T) {
	raw := decodeRaw(t, `{
		"name": 42,
		"address": null,
		"date": "   ",
		"startingBalance": "100.00",
		"endingBalance": true,
		"transactions": []
	}`)

	led := Assemble(raw)

	assert.Nil(t, led.Name, "non-string name coerces to nil")
	assert.Nil(t, led.Address)
	assert.Nil(t, led.Date, "blank date coerces to nil")
	assert.Nil(t, led.StartingBalance, "string balance coerces to nil")
	assert.Nil(t, led.EndingBalance)
	assert.Nil(t, led.Reconciles, "missing balances leave the verdict indeterminate")
	assert.Empty(t, led.Transactions)
}

func TestAssemble_TransactionsFieldShapes(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"missing transactions field", `{"currency":"GBP"}`},
		{"transactions is not an array", `{"currency":"GBP","transactions":"none"}`},
		{"transactions is null", `{"currency":"GBP","transactions":null}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			led := Assemble(decodeRaw(t, tt.in))
			assert.NotNil(t, led.Transactions)
			assert.Empty(t, led.Transactions)
		})
	}
}

func TestAssemble_CurrencyFallback(t *testing.T) {
	t.Run("explicit statement currency", func(t *testing.T) {
		led := Assemble(decodeRaw(t, `{"currency":"EUR","transactions":[]}`))
		assert.Equal(t, "EUR", led.Currency)
	})

	t.Run("first transaction's currency", func(t *testing.T) {
		led := Assemble(decodeRaw(t, `{
			"transactions": [
				{"date":"01-01-2024","description":"a","moneyIn":1,"currency":"USD"},
				{"date":"02-01-2024","description":"b","moneyIn":1,"currency":"EUR"}
			]
		}`))
		assert.Equal(t, "USD", led.Currency)
	})

	t.Run("default symbol", func(t *testing.T) {
		led := Assemble(decodeRaw(t, `{"transactions":[]}`))
		assert.Equal(t, DefaultCurrency, led.Currency)
	})
}

func TestEmptyLedger(t *testing.T) {
	led := EmptyLedger()

	assert.Nil(t, led.Name)
	assert.Nil(t, led.Address)
	assert.Nil(t, led.Date)
	assert.Nil(t, led.StartingBalance)
	assert.Nil(t, led.EndingBalance)
	assert.Nil(t, led.Reconciles)
	assert.Equal(t, DefaultCurrency, led.Currency)
	assert.NotNil(t, led.Transactions)
	assert.Empty(t, led.Transactions)
}

func TestToResponse(t *testing.T) {
	raw := decodeRaw(t, `{
		"name": "J Smith",
		"startingBalance": 100,
		"endingBalance": 96.50,
		"currency": "GBP",
		"transactions": [
			{"date":"01-01-2024","description":"Coffee Shop","moneyOut":3.5}
		]
	}`)

	resp := Assemble(raw).ToResponse("")
	body, err := json.Marshal(resp)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(body, &decoded))

	assert.Equal(t, "J Smith", decoded["name"])
	assert.Nil(t, decoded["address"])
	assert.Equal(t, 100.0, decoded["startingBalance"], "balances serialize as numbers")
	assert.Equal(t, true, decoded["reconciles"])
	assert.NotContains(t, decoded, "error", "error field omitted on success")

	txs, ok := decoded["transactions"].([]any)
	require.True(t, ok)
	require.Len(t, txs, 1)
	tx := txs[0].(map[string]any)
	assert.Equal(t, "Coffee Shop", tx["desc"])
	assert.Equal(t, -3.5, tx["amount"])
}

func TestToResponse_ErrorPath(t *testing.T) {
	resp := EmptyLedger().ToResponse("extraction failed at decode stage: empty transcription response")

	body, err := json.Marshal(resp)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(body, &decoded))

	assert.Nil(t, decoded["name"])
	assert.Nil(t, decoded["reconciles"])
	assert.Equal(t, []any{}, decoded["transactions"])
	assert.Contains(t, decoded["error"], "decode stage")
}
