package dto

import (
	"time"

	"github.com/yukikurage/auction-house/internal/constants"
	"github.com/yukikurage/auction-house/internal/models"
)

// UserDTO represents a user in rendered pages
type UserDTO struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
}

// AuctionDTO represents an auction in rendered pages
type AuctionDTO struct {
	ID          uint64   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	StartingBid float64  `json:"starting_bid"`
	CurrentBid  float64  `json:"current_bid"`
	EndTime     string   `json:"end_time"`
	Open        bool     `json:"open"`
	Auctioneer  *UserDTO `json:"auctioneer,omitempty"`
}

// BidDTO represents a bid in an auction's history
type BidDTO struct {
	ID        uint64   `json:"id"`
	Amount    float64  `json:"amount"`
	Timestamp string   `json:"timestamp"`
	Bidder    *UserDTO `json:"bidder,omitempty"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:       user.ID,
		Username: user.Username,
	}
}

// ToAuctionDTO converts an Auction model to AuctionDTO
func ToAuctionDTO(auction models.Auction, now time.Time) AuctionDTO {
	dto := AuctionDTO{
		ID:          auction.ID,
		Title:       auction.Title,
		Description: auction.Description,
		StartingBid: auction.StartingBid,
		CurrentBid:  auction.CurrentBid,
		EndTime:     auction.EndTime.UTC().Format(constants.EndTimeLayout),
		Open:        auction.IsOpen(now),
	}

	// Include auctioneer if preloaded
	if auction.Auctioneer.ID != 0 {
		auctioneer := ToUserDTO(auction.Auctioneer)
		dto.Auctioneer = &auctioneer
	}

	return dto
}

// ToAuctionDTOs converts a slice of auctions
func ToAuctionDTOs(auctions []models.Auction, now time.Time) []AuctionDTO {
	items := make([]AuctionDTO, len(auctions))
	for i, auction := range auctions {
		items[i] = ToAuctionDTO(auction, now)
	}
	return items
}

// ToBidDTOs converts an auction's bid history
func ToBidDTOs(bids []models.Bid) []BidDTO {
	items := make([]BidDTO, len(bids))
	for i, bid := range bids {
		items[i] = BidDTO{
			ID:        bid.ID,
			Amount:    bid.Amount,
			Timestamp: bid.Timestamp.UTC().Format(constants.EndTimeLayout),
		}
		if bid.Bidder.ID != 0 {
			bidder := ToUserDTO(bid.Bidder)
			items[i].Bidder = &bidder
		}
	}
	return items
}
