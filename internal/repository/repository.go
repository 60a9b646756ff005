package repository

import (
	"time"

	"github.com/yukikurage/auction-house/internal/models"
)

// AuctionRepository defines the interface for auction and bid data access
type AuctionRepository interface {
	// Create inserts a new auction
	Create(auction *models.Auction) error

	// FindByID finds an auction by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Auction, error)

	// ListEndingAfter lists auctions whose end time is strictly after t, in insertion order
	ListEndingAfter(t time.Time) ([]models.Auction, error)

	// PlaceBid records bid and raises the auction's current bid when bid.Amount
	// exceeds it. It returns the auction's current bid after the attempt.
	PlaceBid(bid *models.Bid) (float64, error)

	// BidsForAuction lists an auction's bids ordered by timestamp
	BidsForAuction(auctionID uint64) ([]models.Bid, error)
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)
}
