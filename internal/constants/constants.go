package constants

// Context keys shared between middleware and handlers.
const (
	ContextKeyUser  = "current_user"
	ContextKeyAdmin = "current_admin"
)

const (
	MinPasswordLength    = 6
	MaxTitleLength       = 200
	MaxDescriptionLength = 1000
)

// WeekStartLayout is the wire format for week-bucket values.
const WeekStartLayout = "2006-01-02"
