package handlers

import (
	"fmt"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/auction-house/internal/models"
)

func TestAuctionHandler_DashboardRequiresLogin(t *testing.T) {
	env := setupHandlerTestEnv(t)

	w := env.do(http.MethodGet, "/dashboard", nil)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestAuctionHandler_DashboardListsOpenAuctionsOnly(t *testing.T) {
	env := setupHandlerTestEnv(t)
	owner := env.register(t, "owner", "owner@example.com", "supersecret")
	now := time.Now().UTC()
	env.createAuction(t, owner.ID, "Vintage Lamp", 100, now.Add(24*time.Hour))
	env.createAuction(t, owner.ID, "Old Radio", 10, now.Add(-time.Hour))
	env.login(t, "owner@example.com", "supersecret")

	w := env.do(http.MethodGet, "/dashboard", nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Vintage Lamp")
	assert.Contains(t, body, "100.00")
	assert.NotContains(t, body, "Old Radio")
}

func TestAuctionHandler_CreateAuction(t *testing.T) {
	env := setupHandlerTestEnv(t)
	env.register(t, "seller", "seller@example.com", "supersecret")
	env.login(t, "seller@example.com", "supersecret")

	page := env.do(http.MethodGet, "/create-auction", nil)
	require.Equal(t, http.StatusOK, page.Code)
	assert.Contains(t, page.Body.String(), `name="starting_bid"`)

	endTime := time.Now().UTC().Add(48 * time.Hour).Format("2006-01-02 15:04:05")
	w := env.do(http.MethodPost, "/create-auction", url.Values{
		"title":        {"Vintage Lamp"},
		"description":  {"Brass, 1950s"},
		"starting_bid": {"100"},
		"end_time":     {endTime},
	})

	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/dashboard", w.Header().Get("Location"))

	var auction models.Auction
	require.NoError(t, env.db.Where("title = ?", "Vintage Lamp").First(&auction).Error)
	assert.Equal(t, 100.0, auction.StartingBid)
	assert.Equal(t, 100.0, auction.CurrentBid)
	assert.Equal(t, endTime, auction.EndTime.UTC().Format("2006-01-02 15:04:05"))

	dashboard := env.do(http.MethodGet, "/dashboard", nil)
	assert.Contains(t, dashboard.Body.String(), "Auction created successfully!")
	assert.Contains(t, dashboard.Body.String(), "Vintage Lamp")
}

func TestAuctionHandler_CreateAuctionInvalidInput(t *testing.T) {
	env := setupHandlerTestEnv(t)
	env.register(t, "seller", "seller@example.com", "supersecret")
	env.login(t, "seller@example.com", "supersecret")

	tests := []struct {
		name    string
		form    url.Values
		message string
	}{
		{
			name:    "non numeric starting bid",
			form:    url.Values{"title": {"Lamp"}, "starting_bid": {"cheap"}, "end_time": {"2030-01-01 00:00:00"}},
			message: "Starting bid must be a number",
		},
		{
			name:    "bad end time",
			form:    url.Values{"title": {"Lamp"}, "starting_bid": {"10"}, "end_time": {"tomorrow"}},
			message: "End time must use the format",
		},
		{
			name:    "missing title",
			form:    url.Values{"title": {"  "}, "starting_bid": {"10"}, "end_time": {"2030-01-01 00:00:00"}},
			message: "Title is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(http.MethodPost, "/create-auction", tt.form)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), tt.message)
		})
	}

	var count int64
	require.NoError(t, env.db.Model(&models.Auction{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestAuctionHandler_PlaceBidScenario(t *testing.T) {
	env := setupHandlerTestEnv(t)
	owner := env.register(t, "owner", "owner@example.com", "supersecret")
	env.register(t, "bidder", "bidder@example.com", "supersecret")
	auction := env.createAuction(t, owner.ID, "Vintage Lamp", 100, time.Now().UTC().Add(24*time.Hour))
	env.login(t, "bidder@example.com", "supersecret")
	env.do(http.MethodGet, "/dashboard", nil)

	bidPath := fmt.Sprintf("/bid/%d", auction.ID)
	steps := []struct {
		amount  string
		message string
		current float64
	}{
		{"50", "Bid amount must be higher than the current bid (100.00).", 100},
		{"150", "Bid placed successfully!", 150},
		{"120", "Bid amount must be higher than the current bid (150.00).", 150},
	}

	for _, step := range steps {
		w := env.do(http.MethodPost, bidPath, url.Values{"bid_amount": {step.amount}})
		require.Equal(t, http.StatusFound, w.Code, "bid %s", step.amount)
		assert.Equal(t, "/dashboard", w.Header().Get("Location"))

		dashboard := env.do(http.MethodGet, "/dashboard", nil)
		assert.Contains(t, dashboard.Body.String(), step.message, "bid %s", step.amount)

		var stored models.Auction
		require.NoError(t, env.db.First(&stored, auction.ID).Error)
		assert.Equal(t, step.current, stored.CurrentBid, "bid %s", step.amount)
	}

	var bids []models.Bid
	require.NoError(t, env.db.Where("auction_id = ?", auction.ID).Find(&bids).Error)
	require.Len(t, bids, 1)
	assert.Equal(t, 150.0, bids[0].Amount)
}

func TestAuctionHandler_PlaceBidErrors(t *testing.T) {
	env := setupHandlerTestEnv(t)
	owner := env.register(t, "owner", "owner@example.com", "supersecret")
	auction := env.createAuction(t, owner.ID, "Vintage Lamp", 100, time.Now().UTC().Add(24*time.Hour))
	env.login(t, "owner@example.com", "supersecret")

	w := env.do(http.MethodPost, "/bid/9999", url.Values{"bid_amount": {"500"}})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(http.MethodPost, "/bid/abc", url.Values{"bid_amount": {"500"}})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(http.MethodPost, fmt.Sprintf("/bid/%d", auction.ID), url.Values{"bid_amount": {"lots"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Bid amount must be a number")
}

func TestAuctionHandler_ShowAuction(t *testing.T) {
	env := setupHandlerTestEnv(t)
	owner := env.register(t, "owner", "owner@example.com", "supersecret")
	env.register(t, "bidder", "bidder@example.com", "supersecret")
	auction := env.createAuction(t, owner.ID, "Vintage Lamp", 100, time.Now().UTC().Add(24*time.Hour))
	env.login(t, "bidder@example.com", "supersecret")

	env.do(http.MethodPost, fmt.Sprintf("/bid/%d", auction.ID), url.Values{"bid_amount": {"125.5"}})

	w := env.do(http.MethodGet, fmt.Sprintf("/auction/%d", auction.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Vintage Lamp")
	assert.Contains(t, body, "125.50")
	assert.Contains(t, body, "bidder")

	missing := env.do(http.MethodGet, "/auction/424242", nil)
	assert.Equal(t, http.StatusNotFound, missing.Code)
}
