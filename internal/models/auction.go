package models

import "time"

type Auction struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	Title        string    `gorm:"type:varchar(150);not null" json:"title"`
	Description  string    `gorm:"type:text;not null" json:"description"`
	StartingBid  float64   `gorm:"not null" json:"starting_bid"`
	CurrentBid   float64   `gorm:"not null" json:"current_bid"`
	AuctioneerID uint64    `gorm:"not null;index" json:"auctioneer_id"`
	EndTime      time.Time `gorm:"not null;index" json:"end_time"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	Auctioneer User  `gorm:"foreignKey:AuctioneerID" json:"auctioneer,omitempty"`
	Bids       []Bid `gorm:"foreignKey:AuctionID" json:"bids,omitempty"`
}

// IsOpen reports whether the auction ends strictly after now.
func (a Auction) IsOpen(now time.Time) bool {
	return a.EndTime.After(now)
}
