package model

import "time"

// Crop is a harvested-produce listing as stored in the `crops` table.
// Crops are sold for money rather than bartered, so they carry a per
// quintal price and a quantity string instead of an equipment value.
//
// Fields:
//  ID          – primary key identifier.
//  SellerID    – references users.id of the selling farmer.
//  Name        – produce name ("Organic Wheat").
//  Description – free-form notes; defaulted when the seller leaves it blank.
//  Quantity    – human-readable amount on offer ("2 Tonnes").
//  Price       – asking price per quintal in rupees, must be positive.
//  Quality     – one of the CropQualities values.
//  ImageURL    – hosted photo of the produce.
//  CreatedAt   – set once at insert, immutable.
//  UpdatedAt   – bumped on every seller edit.
type Crop struct {
	ID          uint64    // crops.id
	SellerID    uint64    // crops.seller_id
	Name        string    // crops.name
	Description string    // crops.description
	Quantity    string    // crops.quantity
	Price       float64   // crops.price_rupees
	Quality     string    // crops.quality
	ImageURL    string    // crops.image_url
	CreatedAt   time.Time // crops.created_at
	UpdatedAt   time.Time // crops.updated_at
}

// CropQualities is the allowed quality vocabulary for crop listings.
var CropQualities = map[string]bool{
	"Premium":  true,
	"Standard": true,
}

// DefaultCropImageURL is used when a seller lists a crop without a
// photo, matching the long-standing placeholder shown in the web UI.
const DefaultCropImageURL = "https://images.unsplash.com/photo-1574323347407-f5e1c0cf4b7e?q=80&w=1000&auto=format&fit=crop"
