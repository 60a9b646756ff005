package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/auction-house/internal/constants"
	"github.com/yukikurage/auction-house/internal/dto"
	apierrors "github.com/yukikurage/auction-house/internal/errors"
	"github.com/yukikurage/auction-house/internal/logger"
	"github.com/yukikurage/auction-house/internal/middleware"
	"github.com/yukikurage/auction-house/internal/services"
	"github.com/yukikurage/auction-house/internal/utils"
)

type AuctionHandler struct {
	auctionService *services.AuctionService
}

func NewAuctionHandler(auctionService *services.AuctionService) *AuctionHandler {
	return &AuctionHandler{
		auctionService: auctionService,
	}
}

type createAuctionForm struct {
	Title       string `form:"title"`
	Description string `form:"description"`
	StartingBid string `form:"starting_bid"`
	EndTime     string `form:"end_time"`
}

type bidForm struct {
	BidAmount string `form:"bid_amount"`
}

// Dashboard lists auctions that have not ended yet.
func (h *AuctionHandler) Dashboard(c *gin.Context) {
	now := h.auctionService.Now()

	auctions, err := h.auctionService.ListOpenAuctions(now)
	if err != nil {
		logger.Error("Failed to list auctions", map[string]any{"error": err.Error()})
		apierrors.InternalError(c, "Failed to fetch auctions")
		return
	}

	render(c, http.StatusOK, "dashboard.html", gin.H{
		"Title":    "Dashboard",
		"Auctions": dto.ToAuctionDTOs(auctions, now),
	})
}

// CreateAuctionPage shows the auction form.
func (h *AuctionHandler) CreateAuctionPage(c *gin.Context) {
	renderCreateAuction(c, http.StatusOK, createAuctionForm{}, nil)
}

// CreateAuction creates an auction owned by the current user.
func (h *AuctionHandler) CreateAuction(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.Redirect(http.StatusFound, middleware.LoginPath)
		return
	}

	var form createAuctionForm
	if err := c.ShouldBind(&form); err != nil {
		renderCreateAuction(c, http.StatusBadRequest, form, invalidInput("Invalid form submission"))
		return
	}

	startingBid, err := utils.ParseAmount(form.StartingBid)
	if err != nil {
		renderCreateAuction(c, http.StatusBadRequest, form, invalidInput("Starting bid must be a number"))
		return
	}

	endTime, err := utils.ParseEndTime(form.EndTime)
	if err != nil {
		renderCreateAuction(c, http.StatusBadRequest, form,
			invalidInput("End time must use the format YYYY-MM-DD HH:MM:SS"))
		return
	}

	_, err = h.auctionService.CreateAuction(services.CreateAuctionInput{
		OwnerID:     userID,
		Title:       form.Title,
		Description: form.Description,
		StartingBid: startingBid,
		EndTime:     endTime,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTitleRequired),
			errors.Is(err, services.ErrInvalidStartingBid),
			errors.Is(err, services.ErrInvalidEndTime),
			errors.Is(err, services.ErrOwnerRequired):
			renderCreateAuction(c, http.StatusBadRequest, form, invalidInput(capitalize(err.Error())))
		default:
			logger.Error("Failed to create auction", map[string]any{
				"error":      err.Error(),
				"user_id":    userID,
				"request_id": middleware.RequestIDFromContext(c),
			})
			apierrors.InternalError(c, "Failed to create auction")
		}
		return
	}

	if err := middleware.AddFlash(c, constants.FlashSuccess, "Auction created successfully!"); err != nil {
		apierrors.InternalError(c, "Failed to save session")
		return
	}
	c.Redirect(http.StatusFound, "/dashboard")
}

// PlaceBid submits a bid and reports the outcome as a flash on the dashboard.
func (h *AuctionHandler) PlaceBid(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.Redirect(http.StatusFound, middleware.LoginPath)
		return
	}

	auctionID, ok := utils.ParseID(c.Param("auction_id"))
	if !ok {
		apierrors.NotFound(c, "Auction not found")
		return
	}

	var form bidForm
	if err := c.ShouldBind(&form); err != nil {
		apierrors.BadRequest(c, "Invalid form submission")
		return
	}

	amount, err := utils.ParseAmount(form.BidAmount)
	if err != nil {
		apierrors.BadRequest(c, "Bid amount must be a number")
		return
	}

	category, message := constants.FlashSuccess, "Bid placed successfully!"

	_, err = h.auctionService.PlaceBid(services.PlaceBidInput{
		AuctionID: auctionID,
		BidderID:  userID,
		Amount:    amount,
	})
	if err != nil {
		var rejected *services.BidRejectedError
		switch {
		case errors.As(err, &rejected):
			category = constants.FlashDanger
			message = fmt.Sprintf("Bid amount must be higher than the current bid (%.2f).", rejected.CurrentBid)
		case errors.Is(err, services.ErrAuctionClosed):
			category, message = constants.FlashDanger, "This auction has ended."
		case errors.Is(err, services.ErrAuctionNotFound):
			apierrors.NotFound(c, "Auction not found")
			return
		case errors.Is(err, services.ErrInvalidBidAmount):
			apierrors.BadRequest(c, "Bid amount must be a number")
			return
		default:
			logger.Error("Failed to place bid", map[string]any{
				"error":      err.Error(),
				"auction_id": auctionID,
				"request_id": middleware.RequestIDFromContext(c),
			})
			apierrors.InternalError(c, "Failed to place bid")
			return
		}
	}

	if err := middleware.AddFlash(c, category, message); err != nil {
		apierrors.InternalError(c, "Failed to save session")
		return
	}
	c.Redirect(http.StatusFound, "/dashboard")
}

// ShowAuction renders an auction with its bid history.
func (h *AuctionHandler) ShowAuction(c *gin.Context) {
	auctionID, ok := utils.ParseID(c.Param("auction_id"))
	if !ok {
		apierrors.NotFound(c, "Auction not found")
		return
	}

	auction, err := h.auctionService.GetAuction(auctionID)
	if err != nil {
		if errors.Is(err, services.ErrAuctionNotFound) {
			apierrors.NotFound(c, "Auction not found")
			return
		}
		apierrors.InternalError(c, "Failed to fetch auction")
		return
	}

	bids, err := h.auctionService.BidsForAuction(auctionID)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch bids")
		return
	}

	render(c, http.StatusOK, "auction.html", gin.H{
		"Title":   auction.Title,
		"Auction": dto.ToAuctionDTO(*auction, h.auctionService.Now()),
		"Bids":    dto.ToBidDTOs(bids),
	})
}

func renderCreateAuction(c *gin.Context, status int, form createAuctionForm, formErr *apierrors.APIError) {
	render(c, status, "create_auction.html", gin.H{
		"Title": "Create auction",
		"Form":  form,
		"Error": formErr,
	})
}

func invalidInput(message string) *apierrors.APIError {
	return apierrors.NewAPIError(apierrors.ErrCodeInvalidInput, message)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
