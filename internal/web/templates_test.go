package web

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplates_AllPagesParse(t *testing.T) {
	tmpl, err := Templates()
	require.NoError(t, err)

	for _, name := range []string{"register.html", "login.html", "dashboard.html", "create_auction.html", "auction.html", "error.html"} {
		assert.NotNil(t, tmpl.Lookup(name), name)
	}
}

func TestTemplates_MoneyFormatting(t *testing.T) {
	tmpl := MustTemplates()

	var buf bytes.Buffer
	err := tmpl.ExecuteTemplate(&buf, "dashboard.html", map[string]any{
		"UserID": uint64(1),
		"Auctions": []map[string]any{
			{"ID": 1, "Title": "Clock", "Description": "old", "CurrentBid": 150.0, "EndTime": "2026-10-20 12:00:00"},
		},
	})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "150.00")
	assert.Contains(t, buf.String(), `action="/bid/1"`)
}
