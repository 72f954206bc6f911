package ledger

import "strings"

// DefaultPageSize is the page size used when a consumer does not ask for
// a specific one.
const DefaultPageSize = 10

// Page is one filtered, paginated slice of a ledger's transactions plus the
// metadata an interactive consumer needs to render paging controls.
type Page struct {
	Transactions []Transaction
	Page         int // 1-based, after clamping
	PageCount    int // always >= 1, even for an empty result
	TotalCount   int // size of the filtered set before pagination
}

// SearchTransactions returns the transactions whose date, description, or
// amount formatted to exactly two decimal places contains term
// (case-insensitive). An empty term matches everything. Source order is
// preserved and the input slice is never mutated.
func SearchTransactions(txs []Transaction, term string) []Transaction {
	needle := strings.ToLower(strings.TrimSpace(term))
	if needle == "" {
		return txs
	}

	matched := make([]Transaction, 0)
	for _, tx := range txs {
		if tx.matches(needle) {
			matched = append(matched, tx)
		}
	}
	return matched
}

func (t Transaction) matches(needle string) bool {
	if strings.Contains(strings.ToLower(t.Date), needle) {
		return true
	}
	if strings.Contains(strings.ToLower(t.Description), needle) {
		return true
	}
	// An amount of -3.5 is rendered "-3.50", so both "3.50" and "-3.50" hit.
	return strings.Contains(t.Amount.StringFixed(2), needle)
}

// Paginate slices txs into the requested page. pageSize and page are floored
// at 1, and page is clamped to the last available page so a shrunk result
// set still yields a valid (possibly empty) page 1.
func Paginate(txs []Transaction, page, pageSize int) Page {
	if pageSize < 1 {
		pageSize = 1
	}
	if page < 1 {
		page = 1
	}

	total := len(txs)
	pageCount := (total + pageSize - 1) / pageSize
	if pageCount < 1 {
		pageCount = 1
	}
	if page > pageCount {
		page = pageCount
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return Page{
		Transactions: txs[start:end],
		Page:         page,
		PageCount:    pageCount,
		TotalCount:   total,
	}
}

// ViewState tracks an interactive consumer's browsing position over one
// ledger. Changing the search term or the page size resets the page to 1 so
// a shrinking filtered set can never leave the view on a page that no longer
// exists. The state never touches the ledger itself.
type ViewState struct {
	search   string
	page     int
	pageSize int
}

// NewViewState starts at page 1 with no search term.
func NewViewState(pageSize int) *ViewState {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return &ViewState{page: 1, pageSize: pageSize}
}

// SetSearch updates the search term; a changed term resets the page to 1.
func (v *ViewState) SetSearch(term string) {
	if term == v.search {
		return
	}
	v.search = term
	v.page = 1
}

// SetPageSize updates the page size; a changed size resets the page to 1.
func (v *ViewState) SetPageSize(pageSize int) {
	if pageSize < 1 || pageSize == v.pageSize {
		return
	}
	v.pageSize = pageSize
	v.page = 1
}

// SetPage moves to the given page; values below 1 are floored at 1.
// Clamping against the filtered set happens in Compute.
func (v *ViewState) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	v.page = page
}

// Compute derives the current page from the transaction list. Identical
// state and input always produce the identical page.
func (v *ViewState) Compute(txs []Transaction) Page {
	return Paginate(SearchTransactions(txs, v.search), v.page, v.pageSize)
}
