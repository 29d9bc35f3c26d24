package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func subscriptionWith(items ...SubscriptionItem) Subscription {
	sub := Subscription{ID: "sub_1", Status: SubscriptionStatusActive}
	sub.Items.Data = items
	return sub
}

func TestSubscriptionMonthlyValue(t *testing.T) {
	tests := []struct {
		name         string
		subscription Subscription
		expected     string
	}{
		{
			name: "Plano mensal mantém o valor",
			subscription: subscriptionWith(SubscriptionItem{
				Quantity: 1,
				Plan:     Plan{Amount: 5000, Interval: "month", IntervalCount: 1},
			}),
			expected: "50",
		},
		{
			name: "Plano semanal multiplica por 4.33",
			subscription: subscriptionWith(SubscriptionItem{
				Quantity: 1,
				Plan:     Plan{Amount: 7000, Interval: "week", IntervalCount: 1},
			}),
			expected: "303.1",
		},
		{
			name: "Plano anual divide por 12",
			subscription: subscriptionWith(SubscriptionItem{
				Quantity: 1,
				Plan:     Plan{Amount: 120000, Interval: "year", IntervalCount: 1},
			}),
			expected: "100",
		},
		{
			name: "Plano diário multiplica por 30",
			subscription: subscriptionWith(SubscriptionItem{
				Quantity: 1,
				Plan:     Plan{Amount: 200, Interval: "day", IntervalCount: 1},
			}),
			expected: "60",
		},
		{
			name: "Quantidade multiplica e intervalo composto divide",
			subscription: subscriptionWith(SubscriptionItem{
				Quantity: 3,
				Plan:     Plan{Amount: 10000, Interval: "month", IntervalCount: 2},
			}),
			expected: "150",
		},
		{
			name: "Intervalo desconhecido é ignorado",
			subscription: subscriptionWith(
				SubscriptionItem{Quantity: 1, Plan: Plan{Amount: 5000, Interval: "quinzena", IntervalCount: 1}},
				SubscriptionItem{Quantity: 1, Plan: Plan{Amount: 3000, Interval: "month", IntervalCount: 1}},
			),
			expected: "30",
		},
		{
			name: "Quantidade e intervalo zerados assumem 1",
			subscription: subscriptionWith(SubscriptionItem{
				Quantity: 0,
				Plan:     Plan{Amount: 2500, Interval: "month", IntervalCount: 0},
			}),
			expected: "25",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expected, err := decimal.NewFromString(tt.expected)
			assert.NoError(t, err)
			assert.True(t, tt.subscription.MonthlyValue().Equal(expected),
				"esperado %s, obtido %s", tt.expected, tt.subscription.MonthlyValue())
		})
	}
}
