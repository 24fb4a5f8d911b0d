package constants

// Static route constants
const (
	MediaRoute  = "/media"
	PublicRoute = "/"
	// Media path without leading slash for file system access
	MediaPath = "media"
)
