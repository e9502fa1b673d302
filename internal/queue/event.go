package queue

// RequestDecidedEvent is published when a barter or purchase request is
// accepted or rejected. It carries enough context for downstream
// consumers to notify both parties without querying the primary
// database.
type RequestDecidedEvent struct {
	Kind          string  `json:"kind"` // "barter" or "purchase"
	RequestID     uint64  `json:"request_id"`
	RequesterID   uint64  `json:"requester_id"` // proposer / buyer
	RecipientID   uint64  `json:"recipient_id"` // machine owner / crop seller
	RequesterName string  `json:"requester_name"`
	RecipientName string  `json:"recipient_name"`
	ListingName   string  `json:"listing_name"`  // requested machine or crop
	OfferedName   string  `json:"offered_name"`  // offered machine, empty for purchases
	TotalPrice    float64 `json:"total_price"`   // purchases only
	Status        string  `json:"status"`        // accepted or rejected
	DecidedAt     string  `json:"decided_at"`
}
