package controllers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/enfantsenjoie/eejsite/internal/pkg/content"
	"github.com/enfantsenjoie/eejsite/internal/pkg/viewmodel"
)

// HandleNewsIndex renders the public news/events page. Filters: ?type=post|event,
// ?f=upcoming (events not yet started, soonest first), ?cat=<slug or name>.
func HandleNewsIndex(c *fiber.Ctx) error {
	filter := content.ListFilter{
		Category: c.Query("cat"),
		Upcoming: c.Query("f") == "upcoming",
	}
	switch c.Query("type") {
	case "post", "event":
		filter.Kind = c.Query("type")
	}

	listing, err := contentService.List(filter)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("Failed to fetch news")
	}

	og := &viewmodel.OpenGraph{
		Title:       "Actualités - ONG Enfants En Joie",
		Description: "Actualités et événements de l'ONG Enfants En Joie",
		Image:       "/img/eej-logo.png",
		URL:         "/actualites",
	}
	return render(c, "pages/news_index", "Actualités", og, fiber.Map{
		"Cards":              listing.Cards,
		"Categories":         listing.Categories,
		"ActiveCategory":     listing.ActiveCategory,
		"ActiveCategorySlug": listing.ActiveCategorySlug,
		"Kind":               filter.Kind,
		"Upcoming":           filter.Upcoming,
	})
}

// HandleNewsShow renders a single published news item.
func HandleNewsShow(c *fiber.Ctx) error {
	slug := c.Params("slug")

	item, err := repos.News.GetPublishedBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).SendString("Article introuvable")
		}
		return c.Status(fiber.StatusInternalServerError).SendString("Failed to fetch article")
	}

	now := time.Now()
	card := content.BuildCard(item, now)

	related, err := repos.News.ListRelated(item.ID, 3)
	if err != nil {
		related = nil
	}
	relatedCards := make([]content.Card, 0, len(related))
	for i := range related {
		relatedCards = append(relatedCards, content.BuildCard(&related[i], now))
	}

	previous, err := repos.News.GetPreviousPublished(item.CreatedAt)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		previous = nil
	}
	next, err := repos.News.GetNextPublished(item.CreatedAt)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		next = nil
	}

	og := &viewmodel.OpenGraph{
		Title:       item.Title + " - ONG Enfants En Joie",
		Description: stripHTMLAndTruncate(item.Body, 150),
		Image:       item.CoverImagePath,
		URL:         "/actualites/" + item.Slug,
	}
	return render(c, "pages/news_show", item.Title, og, fiber.Map{
		"Item":     item,
		"Card":     card,
		"ReadTime": content.ReadTime(item.Body),
		"Related":  relatedCards,
		"Previous": previous,
		"Next":     next,
	})
}

// HandleSearch renders the search results page for ?q=.
func HandleSearch(c *fiber.Ctx) error {
	query := c.Query("q")

	var cards []content.Card
	if query != "" {
		var err error
		cards, err = contentService.Search(query)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).SendString("Search failed")
		}
	}

	og := &viewmodel.OpenGraph{
		Title:       "Recherche - ONG Enfants En Joie",
		Description: "Rechercher dans les actualités",
		Image:       "/img/eej-logo.png",
		URL:         "/recherche",
	}
	return render(c, "pages/search", "Recherche", og, fiber.Map{
		"Query": query,
		"Cards": cards,
	})
}
