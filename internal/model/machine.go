package model

import "time"

// Machine is a piece of farming equipment offered for barter, as stored
// in the `machines` table. A machine belongs to exactly one owner for
// its whole lifetime; ownership is never reassigned, the row is simply
// deleted when the owner withdraws the listing.
//
// Fields:
//  ID          – primary key identifier.
//  OwnerID     – references users.id of the listing owner.
//  Name        – short equipment name ("Rotavator").
//  Description – free-form condition and usage notes.
//  Value       – owner-estimated value in rupees, must be positive.
//  Condition   – one of the MachineConditions values.
//  ImageURL    – hosted photo of the equipment.
//  CreatedAt   – set once at insert, immutable.
//  UpdatedAt   – bumped on every owner edit.
type Machine struct {
	ID          uint64    // machines.id
	OwnerID     uint64    // machines.owner_id
	Name        string    // machines.name
	Description string    // machines.description
	Value       float64   // machines.value_rupees
	Condition   string    // machines.condition
	ImageURL    string    // machines.image_url
	CreatedAt   time.Time // machines.created_at
	UpdatedAt   time.Time // machines.updated_at
}

// MachineConditions is the allowed condition vocabulary. Anything else
// is rejected at validation time.
var MachineConditions = map[string]bool{
	"New":          true,
	"Good":         true,
	"Used":         true,
	"Needs Repair": true,
}
