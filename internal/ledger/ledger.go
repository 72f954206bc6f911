// Package ledger holds the core of the service: the transaction normalizer,
// the balance reconciliation check, the statement assembler and the
// search/pagination view. Everything in this package is pure (no I/O, no
// clocks, no model calls) so it can be tested without any collaborator.
package ledger

import (
	"github.com/shopspring/decimal"
)

const (
	// DefaultCurrency is used when neither the statement nor any transaction
	// carries a currency.
	DefaultCurrency = "£"

	// PlaceholderDescription is substituted when a transaction description
	// trims down to nothing.
	PlaceholderDescription = "(no description)"
)

// Transaction is one validated movement of funds. Amount is signed:
// positive means money in (credit), negative means money out (debit).
type Transaction struct {
	Date        string
	Description string
	Amount      decimal.Decimal
	Currency    string
}

// Ledger is the full validated statement: header metadata, resolved
// currency, the normalized transaction list in source order, and the
// reconciliation verdict. A Ledger is built once per statement and is
// immutable afterwards.
type Ledger struct {
	Name            *string
	Address         *string
	Date            *string
	StartingBalance *decimal.Decimal
	EndingBalance   *decimal.Decimal
	Currency        string
	Transactions    []Transaction
	// Reconciles is tri-state: nil means the balances were missing and the
	// verdict is indeterminate, which is distinct from false.
	Reconciles *bool
}

// EmptyLedger returns the defaulted ledger shape used on the failure path,
// so consumers never have to special-case a missing ledger structurally.
func EmptyLedger() *Ledger {
	return &Ledger{
		Currency:     DefaultCurrency,
		Transactions: []Transaction{},
	}
}

// TransactionResponse is the wire form of a Transaction. The amount becomes
// a plain JSON number; decimals live only inside the core.
type TransactionResponse struct {
	Date     string  `json:"date"`
	Desc     string  `json:"desc"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// Response is the wire form of a Ledger. Error is empty on success and
// carries the failure message on the extraction-error path.
type Response struct {
	Name            *string               `json:"name"`
	Address         *string               `json:"address"`
	Date            *string               `json:"date"`
	StartingBalance *float64              `json:"startingBalance"`
	EndingBalance   *float64              `json:"endingBalance"`
	Currency        string                `json:"currency"`
	Transactions    []TransactionResponse `json:"transactions"`
	Reconciles      *bool                 `json:"reconciles"`
	Error           string                `json:"error,omitempty"`
}

// ToResponse converts the ledger into its wire form. errMsg is set on the
// failure path and left empty otherwise.
func (l *Ledger) ToResponse(errMsg string) Response {
	resp := Response{
		Name:            l.Name,
		Address:         l.Address,
		Date:            l.Date,
		StartingBalance: decimalToFloat(l.StartingBalance),
		EndingBalance:   decimalToFloat(l.EndingBalance),
		Currency:        l.Currency,
		Transactions:    make([]TransactionResponse, 0, len(l.Transactions)),
		Reconciles:      l.Reconciles,
		Error:           errMsg,
	}
	for _, tx := range l.Transactions {
		resp.Transactions = append(resp.Transactions, tx.toResponse())
	}
	return resp
}

func (t Transaction) toResponse() TransactionResponse {
	return TransactionResponse{
		Date:     t.Date,
		Desc:     t.Description,
		Amount:   t.Amount.InexactFloat64(),
		Currency: t.Currency,
	}
}

// PageResponse is the wire form of a Page.
type PageResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Page         int                   `json:"page"`
	PageCount    int                   `json:"pageCount"`
	TotalCount   int                   `json:"totalCount"`
}

// ToResponse converts the page into its wire form.
func (p Page) ToResponse() PageResponse {
	resp := PageResponse{
		Transactions: make([]TransactionResponse, 0, len(p.Transactions)),
		Page:         p.Page,
		PageCount:    p.PageCount,
		TotalCount:   p.TotalCount,
	}
	for _, tx := range p.Transactions {
		resp.Transactions = append(resp.Transactions, tx.toResponse())
	}
	return resp
}

func decimalToFloat(d *decimal.Decimal) *float64 {
	if d == nil {
		return nil
	}
	f := d.InexactFloat64()
	return &f
}
