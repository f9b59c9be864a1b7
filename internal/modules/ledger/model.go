package ledger

import (
	"time"

	"github.com/google/uuid"
)

// Transaction is one sold line of a checkout. Immutable once appended;
// price and owner are copied from the part at time of sale, never
// re-read later.
type Transaction struct {
	ID         uuid.UUID `json:"id"`
	BuyerID    string    `json:"buyerId"`
	OwnerID    string    `json:"ownerId,omitempty"`
	PartNumber string    `json:"partNumber"`
	Price      float64   `json:"price"`
	Qty        int       `json:"qty"`
	Date       time.Time `json:"date"`
	ReceiptID  uuid.UUID `json:"receiptId"`
}

// ReceiptItem is a by-value snapshot of a cart line at checkout.
type ReceiptItem struct {
	PartNumber string  `json:"partNumber"`
	PartName   string  `json:"partName"`
	OwnerID    string  `json:"ownerId,omitempty"`
	Price      float64 `json:"price"`
	Qty        int     `json:"qty"`
}

// Receipt groups one checkout event.
type Receipt struct {
	ID      uuid.UUID     `json:"id"`
	BuyerID string        `json:"buyerId"`
	Items   []ReceiptItem `json:"items"`
	Total   float64       `json:"total"`
	Date    time.Time     `json:"date"`
}
