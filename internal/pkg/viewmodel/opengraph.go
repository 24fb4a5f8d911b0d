package viewmodel

// OpenGraph holds the meta tags rendered in the page head.
type OpenGraph struct {
	Title       string
	Description string
	Image       string
	URL         string
}
