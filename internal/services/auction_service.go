package services

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/yukikurage/auction-house/internal/logger"
	"github.com/yukikurage/auction-house/internal/models"
	"github.com/yukikurage/auction-house/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrAuctionNotFound    = errors.New("auction not found")
	ErrOwnerRequired      = errors.New("auction owner is required")
	ErrTitleRequired      = errors.New("title is required")
	ErrInvalidStartingBid = errors.New("starting bid must be a non-negative number")
	ErrInvalidEndTime     = errors.New("end time is required")
	ErrInvalidBidAmount   = errors.New("bid amount must be a number")
	ErrBidTooLow          = errors.New("bid amount must be higher than the current bid")
	ErrAuctionClosed      = errors.New("auction has ended")
)

// BidRejectedError reports a bid that did not beat the current bid.
// It unwraps to ErrBidTooLow.
type BidRejectedError struct {
	CurrentBid float64
}

func (e *BidRejectedError) Error() string {
	return fmt.Sprintf("%s (current bid %.2f)", ErrBidTooLow, e.CurrentBid)
}

func (e *BidRejectedError) Unwrap() error {
	return ErrBidTooLow
}

// AuctionServiceConfig holds bidding policy switches.
type AuctionServiceConfig struct {
	// RejectExpiredBids refuses bids once an auction's end time has passed.
	// Off by default: bids are accepted regardless of expiry.
	RejectExpiredBids bool
}

// AuctionService handles auction creation, bidding and listing.
type AuctionService struct {
	auctionRepo repository.AuctionRepository
	cfg         AuctionServiceConfig
	now         func() time.Time
}

// NewAuctionService creates a new AuctionService
func NewAuctionService(auctionRepo repository.AuctionRepository, cfg AuctionServiceConfig) *AuctionService {
	return &AuctionService{
		auctionRepo: auctionRepo,
		cfg:         cfg,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Now returns the service clock's current time.
func (s *AuctionService) Now() time.Time {
	return s.now()
}

// CreateAuctionInput represents input for creating an auction
type CreateAuctionInput struct {
	OwnerID     uint64
	Title       string
	Description string
	StartingBid float64
	EndTime     time.Time
}

// PlaceBidInput represents a bid attempt
type PlaceBidInput struct {
	AuctionID uint64
	BidderID  uint64
	Amount    float64
}

// CreateAuction validates input and stores a new auction whose current bid
// starts at the starting bid.
func (s *AuctionService) CreateAuction(input CreateAuctionInput) (*models.Auction, error) {
	if input.OwnerID == 0 {
		return nil, ErrOwnerRequired
	}
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	if !isFinite(input.StartingBid) || input.StartingBid < 0 {
		return nil, ErrInvalidStartingBid
	}
	if input.EndTime.IsZero() {
		return nil, ErrInvalidEndTime
	}

	auction := &models.Auction{
		Title:        title,
		Description:  input.Description,
		StartingBid:  input.StartingBid,
		CurrentBid:   input.StartingBid,
		AuctioneerID: input.OwnerID,
		EndTime:      input.EndTime.UTC(),
	}

	if err := s.auctionRepo.Create(auction); err != nil {
		return nil, fmt.Errorf("failed to create auction: %w", err)
	}

	logger.Info("Auction created", map[string]any{
		"auction_id":   auction.ID,
		"owner_id":     auction.AuctioneerID,
		"starting_bid": auction.StartingBid,
		"end_time":     auction.EndTime,
	})

	return auction, nil
}

// PlaceBid records a bid when its amount strictly exceeds the auction's
// current bid. A low bid returns a *BidRejectedError carrying the current bid
// and writes nothing.
func (s *AuctionService) PlaceBid(input PlaceBidInput) (*models.Bid, error) {
	if !isFinite(input.Amount) {
		return nil, ErrInvalidBidAmount
	}

	now := s.now()

	if s.cfg.RejectExpiredBids {
		auction, err := s.GetAuction(input.AuctionID)
		if err != nil {
			return nil, err
		}
		if !auction.IsOpen(now) {
			return nil, ErrAuctionClosed
		}
	}

	bid := &models.Bid{
		Amount:    input.Amount,
		BidderID:  input.BidderID,
		AuctionID: input.AuctionID,
		Timestamp: now,
	}

	current, err := s.auctionRepo.PlaceBid(bid)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, ErrAuctionNotFound
		case errors.Is(err, repository.ErrBidNotHigher):
			logger.Info("Bid rejected", map[string]any{
				"auction_id":  input.AuctionID,
				"bidder_id":   input.BidderID,
				"amount":      input.Amount,
				"current_bid": current,
			})
			return nil, &BidRejectedError{CurrentBid: current}
		default:
			return nil, fmt.Errorf("failed to place bid on auction %d: %w", input.AuctionID, err)
		}
	}

	logger.Info("Bid accepted", map[string]any{
		"auction_id": bid.AuctionID,
		"bidder_id":  bid.BidderID,
		"bid_id":     bid.ID,
		"amount":     bid.Amount,
	})

	return bid, nil
}

// ListOpenAuctions returns every auction whose end time is strictly after now.
func (s *AuctionService) ListOpenAuctions(now time.Time) ([]models.Auction, error) {
	auctions, err := s.auctionRepo.ListEndingAfter(now.UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to list auctions: %w", err)
	}
	return auctions, nil
}

// GetAuction returns an auction with its auctioneer.
func (s *AuctionService) GetAuction(auctionID uint64) (*models.Auction, error) {
	auction, err := s.auctionRepo.FindByID(auctionID, "Auctioneer")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAuctionNotFound
		}
		return nil, fmt.Errorf("failed to find auction: %w", err)
	}
	return auction, nil
}

// BidsForAuction returns the auction's bid history, oldest first.
func (s *AuctionService) BidsForAuction(auctionID uint64) ([]models.Bid, error) {
	if _, err := s.GetAuction(auctionID); err != nil {
		return nil, err
	}

	bids, err := s.auctionRepo.BidsForAuction(auctionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bids for auction %d: %w", auctionID, err)
	}
	return bids, nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
