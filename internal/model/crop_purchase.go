package model

import "time"

// CropPurchase is a buyer's request to purchase a crop listing at its
// stated price, stored in the `crop_purchases` table. It follows the
// same pending/accepted/rejected lifecycle as BarterRequest but has no
// counter-offer item: the buyer simply asks and the seller decides.
//
// Fields:
//  ID                – primary key identifier.
//  BuyerID           – farmer asking to buy.
//  SellerID          – owner of the crop listing.
//  CropID            – the listing being bought.
//  Status            – pending | accepted | rejected.
//  QuantityRequested – amount asked for; defaults to the listed quantity.
//  TotalPrice        – agreed total in rupees at request time.
//  CreatedAt         – creation timestamp.
//  UpdatedAt         – last status change.
type CropPurchase struct {
	ID                uint64    // crop_purchases.id
	BuyerID           uint64    // crop_purchases.buyer_id
	SellerID          uint64    // crop_purchases.seller_id
	CropID            uint64    // crop_purchases.crop_id
	Status            string    // crop_purchases.status
	QuantityRequested string    // crop_purchases.quantity_requested
	TotalPrice        float64   // crop_purchases.total_price
	CreatedAt         time.Time // crop_purchases.created_at
	UpdatedAt         time.Time // crop_purchases.updated_at
}
