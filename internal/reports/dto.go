package reports

// SummaryResponse aggregates money flow for a date range.
type SummaryResponse struct {
	Income                 int64            `json:"income"`
	Expenses               int64            `json:"expenses"`
	Profit                 int64            `json:"profit"`
	ExpensesByCategory     map[string]int64 `json:"expenses_by_category"`
	OutstandingReceivables int64            `json:"outstanding_receivables"`
}

// MonthlyRow is one month's income, expenses, and profit.
type MonthlyRow struct {
	Month    string `json:"month"`
	Income   int64  `json:"income"`
	Expenses int64  `json:"expenses"`
	Profit   int64  `json:"profit"`
}

// MonthlyResponse covers one calendar year, every month present.
type MonthlyResponse struct {
	Year   int          `json:"year"`
	Months []MonthlyRow `json:"months"`
}
