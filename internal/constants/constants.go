package constants

const (
	// ContextKeyUserID is used both as the session key and the gin context key.
	ContextKeyUserID = "user_id"
	ContextKeyUser   = "user"

	SessionCookieName = "auction_session"
	SessionMaxAge     = 86400 * 7

	MinPasswordLength = 6

	// EndTimeLayout is the form layout for auction end times.
	EndTimeLayout = "2006-01-02 15:04:05"
)

// Flash categories
const (
	FlashSuccess = "success"
	FlashDanger  = "danger"
	FlashInfo    = "info"
)
