package models

import "time"

const (
	BoatTypeLuxuryYacht = "luxuryYacht"
	BoatTypeSpeedboat   = "speedboat"
	BoatTypeSailboat    = "sailboat"
	BoatTypePartyBoat   = "partyBoat"
)

// Boat is a rentable vessel. Capacity and PricePerHour are the only fields the
// booking engine reads; price changes never retroactively affect bookings.
type Boat struct {
	ID           string    `bson:"id" json:"id"`
	BoatName     string    `bson:"boat_name" json:"boatName"`
	CompanyName  string    `bson:"company_name" json:"companyName"`
	BoatType     string    `bson:"boat_type" json:"boatType"`
	Description  string    `bson:"description" json:"description"`
	Location     string    `bson:"location" json:"location"`
	Capacity     int       `bson:"capacity" json:"capacity"`
	Amenities    []string  `bson:"amenities,omitempty" json:"amenities,omitempty"`
	PricePerHour float64   `bson:"price_per_hour" json:"pricePerHour"`
	IsAvailable  bool      `bson:"is_available" json:"isAvailable"`
	CreatedAt    time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updatedAt"`
}
