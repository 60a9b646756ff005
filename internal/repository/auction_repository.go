package repository

import (
	"errors"
	"time"

	"github.com/yukikurage/auction-house/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrBidNotHigher is returned by PlaceBid when the bid does not exceed the current bid.
var ErrBidNotHigher = errors.New("auction repository: bid does not exceed current bid")

// GormAuctionRepository is a GORM implementation of AuctionRepository
type GormAuctionRepository struct {
	db *gorm.DB
}

// NewAuctionRepository creates a new AuctionRepository
func NewAuctionRepository(db *gorm.DB) AuctionRepository {
	return &GormAuctionRepository{db: db}
}

// Create inserts a new auction
func (r *GormAuctionRepository) Create(auction *models.Auction) error {
	return r.db.Create(auction).Error
}

// FindByID finds an auction by ID with optional preloading
func (r *GormAuctionRepository) FindByID(id uint64, preload ...string) (*models.Auction, error) {
	var auction models.Auction
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&auction, id).Error; err != nil {
		return nil, err
	}

	return &auction, nil
}

// ListEndingAfter lists auctions whose end time is strictly after t.
// End times are stored in UTC, so t is compared in UTC as well.
func (r *GormAuctionRepository) ListEndingAfter(t time.Time) ([]models.Auction, error) {
	var auctions []models.Auction
	if err := r.db.Preload("Auctioneer").
		Where("end_time > ?", t.UTC()).
		Order("id ASC").
		Find(&auctions).Error; err != nil {
		return nil, err
	}
	return auctions, nil
}

// PlaceBid accepts bid only if its amount exceeds the stored current bid.
//
// The read and the conditional update run in one transaction, and the update
// itself re-checks current_bid < amount, so two concurrent bids cannot both
// win against the same current bid. The losing side gets ErrBidNotHigher
// together with the current bid it lost to.
func (r *GormAuctionRepository) PlaceBid(bid *models.Bid) (float64, error) {
	var current float64

	err := r.db.Transaction(func(tx *gorm.DB) error {
		value, err := currentBid(tx, bid.AuctionID)
		if err != nil {
			return err
		}
		current = value

		if !(bid.Amount > current) {
			return ErrBidNotHigher
		}

		result := tx.Model(&models.Auction{}).
			Where("id = ? AND current_bid < ?", bid.AuctionID, bid.Amount).
			Update("current_bid", bid.Amount)
		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected == 0 {
			// Another bid raised the price between our read and the update.
			value, err := currentBid(tx, bid.AuctionID)
			if err != nil {
				return err
			}
			current = value
			return ErrBidNotHigher
		}

		if err := tx.Create(bid).Error; err != nil {
			return err
		}

		current = bid.Amount
		return nil
	})

	return current, err
}

// BidsForAuction lists an auction's bids ordered by timestamp
func (r *GormAuctionRepository) BidsForAuction(auctionID uint64) ([]models.Bid, error) {
	var bids []models.Bid
	if err := r.db.Preload("Bidder").
		Where("auction_id = ?", auctionID).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "timestamp"}}).
		Order("id ASC").
		Find(&bids).Error; err != nil {
		return nil, err
	}
	return bids, nil
}

func currentBid(tx *gorm.DB, auctionID uint64) (float64, error) {
	var auction models.Auction
	if err := tx.Select("id", "current_bid").First(&auction, auctionID).Error; err != nil {
		return 0, err
	}
	return auction.CurrentBid, nil
}
