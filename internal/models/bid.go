package models

import "time"

type Bid struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Amount    float64   `gorm:"not null" json:"amount"`
	BidderID  uint64    `gorm:"not null;index" json:"bidder_id"`
	AuctionID uint64    `gorm:"not null;index:idx_bids_auction_timestamp,priority:1" json:"auction_id"`
	Timestamp time.Time `gorm:"not null;index:idx_bids_auction_timestamp,priority:2" json:"timestamp"`

	// Relations
	Bidder  User    `gorm:"foreignKey:BidderID" json:"bidder,omitempty"`
	Auction Auction `gorm:"foreignKey:AuctionID" json:"-"`
}
