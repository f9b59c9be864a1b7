package cart

// Line is one cart entry. Name, owner and price are snapshots taken
// when the line was added; checkout re-reads the live part, the cart
// never does.
type Line struct {
	PartNumber string  `json:"partNumber"`
	PartName   string  `json:"partName"`
	OwnerID    string  `json:"ownerId,omitempty"`
	Price      float64 `json:"price"`
	Qty        int     `json:"qty"`
}

// GuestScope is the cart scope used when no user is signed in.
const GuestScope = "guest"
