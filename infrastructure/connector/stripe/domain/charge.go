package domain

import "time"

const (
	ChargeStatusSucceeded = "succeeded"
	ChargeStatusFailed    = "failed"
)

type Charge struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Status   string `json:"status"`
	Created  int64  `json:"created"`
}

// CreatedAt converte o timestamp unix da cobrança para UTC
func (c Charge) CreatedAt() time.Time {
	return time.Unix(c.Created, 0).UTC()
}

type Refund struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Status   string `json:"status"`
	Created  int64  `json:"created"`
}

func (r Refund) CreatedAt() time.Time {
	return time.Unix(r.Created, 0).UTC()
}
