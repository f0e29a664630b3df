package domain

import "time"

// Purchase records a completed sale. Rows are immutable once created; the unit
// price is snapshotted at purchase time so history totals survive later price
// changes.
type Purchase struct {
	TransactionID int64     `json:"transaction_id"`
	PersonID      int64     `json:"person_id"`
	ProductID     string    `json:"product_id"`
	Quantity      int       `json:"quantity"`
	UnitPrice     float64   `json:"unit_price"`
	PurchasedAt   time.Time `json:"purchased_at"`
}

// Total returns the line total for this purchase.
func (p *Purchase) Total() float64 {
	return p.UnitPrice * float64(p.Quantity)
}
