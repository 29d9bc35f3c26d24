package domain

import "time"

type Customer struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Created int64  `json:"created"`
}

func (c Customer) CreatedAt() time.Time {
	return time.Unix(c.Created, 0).UTC()
}
