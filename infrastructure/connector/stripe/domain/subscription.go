package domain

import (
	"github.com/shopspring/decimal"
)

const SubscriptionStatusActive = "active"

type Plan struct {
	Amount        int64  `json:"amount"`
	Currency      string `json:"currency"`
	Interval      string `json:"interval"`
	IntervalCount int64  `json:"interval_count"`
}

type SubscriptionItem struct {
	ID       string `json:"id"`
	Quantity int64  `json:"quantity"`
	Plan     Plan   `json:"plan"`
}

type Subscription struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Items  struct {
		Data []SubscriptionItem `json:"data"`
	} `json:"items"`
}

// Fatores de normalização da receita recorrente para base mensal
var (
	daysPerMonth  = decimal.NewFromInt(30)
	weeksPerMonth = decimal.NewFromFloat(4.33)
	monthsPerYear = decimal.NewFromInt(12)
)

// MonthlyValue normaliza o valor da assinatura para receita mensal
// recorrente, independente do intervalo de cobrança do plano
func (s Subscription) MonthlyValue() decimal.Decimal {
	total := decimal.Zero

	for _, item := range s.Items.Data {
		quantity := item.Quantity
		if quantity <= 0 {
			quantity = 1
		}

		intervalCount := item.Plan.IntervalCount
		if intervalCount <= 0 {
			intervalCount = 1
		}

		amount := decimal.New(item.Plan.Amount, -2).
			Mul(decimal.NewFromInt(quantity)).
			Div(decimal.NewFromInt(intervalCount))

		switch item.Plan.Interval {
		case "day":
			amount = amount.Mul(daysPerMonth)
		case "week":
			amount = amount.Mul(weeksPerMonth)
		case "month":
			// já está em base mensal
		case "year":
			amount = amount.Div(monthsPerYear)
		default:
			continue
		}

		total = total.Add(amount)
	}

	return total
}
