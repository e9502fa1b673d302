package model

import "time"

// Profile holds the public identity of a farmer as stored in the
// `profiles` table. A profile is created together with its user row at
// registration and is read-only afterwards as far as the marketplace is
// concerned. Listings and requests reference profiles through the
// shared user ID, so UserID doubles as the profile key.
//
// Fields:
//  UserID    – primary key, references users.id.
//  FullName  – display name shown on listings.
//  Location  – free-form "city, state" string.
//  Phone     – optional contact number.
//  CreatedAt – timestamp of creation.
type Profile struct {
	UserID    uint64    // profiles.user_id
	FullName  string    // profiles.full_name
	Location  string    // profiles.location
	Phone     *string   // profiles.phone (nullable)
	CreatedAt time.Time // profiles.created_at
}

// PublicProfile is the subset of profile fields embedded in listing and
// request responses. Phone is included because buyers contact sellers
// directly; there is no in-app messaging.
type PublicProfile struct {
	UserID   uint64  `json:"user_id"`
	FullName string  `json:"full_name"`
	Location string  `json:"location"`
	Phone    *string `json:"phone,omitempty"`
}
