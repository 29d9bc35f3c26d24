package domain

import "time"

const (
	FinancialStatusPaid          = "paid"
	FinancialStatusPartiallyPaid = "partially_paid"
)

type Order struct {
	ID              int64     `json:"id"`
	CreatedAt       time.Time `json:"created_at"`
	Currency        string    `json:"currency"`
	TotalPrice      string    `json:"total_price"`
	FinancialStatus string    `json:"financial_status"`
	Refunds         []Refund  `json:"refunds"`
}

// Paid indica se o pedido conta como receita realizada
func (o Order) Paid() bool {
	return o.FinancialStatus == FinancialStatusPaid ||
		o.FinancialStatus == FinancialStatusPartiallyPaid
}

type Refund struct {
	ID           int64               `json:"id"`
	CreatedAt    time.Time           `json:"created_at"`
	Transactions []RefundTransaction `json:"transactions"`
}

type RefundTransaction struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
	Kind     string `json:"kind"`
	Status   string `json:"status"`
}
