package model

import "time"

// Request status vocabulary shared by barter requests and crop purchase
// requests. A request starts pending and moves to exactly one of the
// terminal states; there is no path back out of accepted or rejected.
const (
	StatusPending  = "pending"
	StatusAccepted = "accepted"
	StatusRejected = "rejected"
)

// BarterRequest is a proposal to swap one machine for another, stored
// in the `barter_requests` table.
//
// Invariants enforced above the store:
//  - RequesterID never equals OwnerID (no self-barter).
//  - RequestingMachineID is owned by OwnerID, OfferedMachineID by
//    RequesterID, checked at proposal time.
//  - Status transitions pending→accepted or pending→rejected at most
//    once, guarded by a conditional update in the repository.
//
// Fields:
//  ID                  – primary key identifier.
//  RequesterID         – farmer proposing the exchange.
//  OwnerID             – owner of the machine being requested.
//  RequestingMachineID – the machine the requester wants.
//  OfferedMachineID    – the machine the requester puts up.
//  Status              – pending | accepted | rejected.
//  CreatedAt           – creation timestamp.
//  UpdatedAt           – last status change.
type BarterRequest struct {
	ID                  uint64    // barter_requests.id
	RequesterID         uint64    // barter_requests.requester_id
	OwnerID             uint64    // barter_requests.owner_id
	RequestingMachineID uint64    // barter_requests.requesting_machine_id
	OfferedMachineID    uint64    // barter_requests.offered_machine_id
	Status              string    // barter_requests.status
	CreatedAt           time.Time // barter_requests.created_at
	UpdatedAt           time.Time // barter_requests.updated_at
}
