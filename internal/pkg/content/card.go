package content

import (
	"time"

	"github.com/enfantsenjoie/eejsite/app/models"
)

// Slide is one carousel entry on a card or detail page.
type Slide struct {
	Kind    string // image or video
	URL     string
	Caption string
}

// Card is the list/search projection of a news item. Missing images
// degrade to the first attached media, then to nothing; templates render
// a placeholder for empty URLs.
type Card struct {
	Kind        string
	Title       string
	Slug        string
	Date        time.Time
	DateEnd     *time.Time
	EventStatus string
	Location    string
	ImageURL    string
	MediaKind   string
	MediaURL    string
	Slides      []Slide
}

// BuildCard derives the card projection for one item at the given time.
func BuildCard(item *models.NewsItem, now time.Time) Card {
	card := Card{
		Kind:  item.Kind,
		Title: item.Title,
		Slug:  item.Slug,
		Date:  item.DateForOrder(),
	}

	if item.Kind == models.NewsKindEvent {
		card.DateEnd = item.EventEnd
		card.EventStatus = item.EventDisplayStatus(now)
		card.Location = item.Location
	}

	card.ImageURL = item.CoverImagePath
	if card.ImageURL == "" {
		for i := range item.Media {
			m := &item.Media[i]
			if m.MediaKind == models.MediaKindImage || m.MediaKind == models.MediaKindVideo {
				card.MediaKind = m.MediaKind
				card.MediaURL = m.FilePath
				break
			}
		}
	}

	if card.ImageURL != "" {
		card.Slides = append(card.Slides, Slide{Kind: models.MediaKindImage, URL: card.ImageURL})
	}
	for i := range item.Media {
		m := &item.Media[i]
		if m.FilePath == "" {
			continue
		}
		if m.MediaKind == models.MediaKindImage || m.MediaKind == models.MediaKindVideo {
			card.Slides = append(card.Slides, Slide{Kind: m.MediaKind, URL: m.FilePath, Caption: m.Caption})
		}
	}

	return card
}
