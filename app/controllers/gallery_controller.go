package controllers

import (
	"sort"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/enfantsenjoie/eejsite/app/models"
	"github.com/enfantsenjoie/eejsite/internal/pkg/constants"
	"github.com/enfantsenjoie/eejsite/internal/pkg/viewmodel"
)

// GalleryPageSize is the number of media per gallery page.
const GalleryPageSize = 32

// galleryItem is the flattened gallery projection rendered by the template.
type galleryItem struct {
	FilePath  string
	MediaKind string
	Album     string
	CreatedAt time.Time
}

// HandleGallery renders the public gallery: every collection flattened into
// one stream, newest first, with an optional ?type=image|video filter.
// Sites without collections fall back to the media attached to published
// news items.
func HandleGallery(c *fiber.Ctx) error {
	kindFilter := c.Query("type")
	if kindFilter != models.MediaKindImage && kindFilter != models.MediaKindVideo {
		kindFilter = ""
	}

	items, err := galleryStream()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("Failed to load gallery")
	}

	if kindFilter != "" {
		filtered := items[:0]
		for _, item := range items {
			if item.MediaKind == kindFilter {
				filtered = append(filtered, item)
			}
		}
		items = filtered
	}

	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	totalPages := (len(items) + GalleryPageSize - 1) / GalleryPageSize
	if totalPages == 0 {
		totalPages = 1
	}
	if page > totalPages {
		page = totalPages
	}
	start := (page - 1) * GalleryPageSize
	end := start + GalleryPageSize
	if end > len(items) {
		end = len(items)
	}

	og := &viewmodel.OpenGraph{
		Title:       "Galerie - ONG Enfants En Joie",
		Description: "Photos et vidéos de nos activités",
		Image:       "/img/eej-logo.png",
		URL:         "/galerie",
	}
	return render(c, "pages/gallery", "Galerie", og, fiber.Map{
		"Items":      items[start:end],
		"TypeFilter": kindFilter,
		"Page":       page,
		"PrevPage":   page - 1,
		"NextPage":   page + 1,
		"TotalPages": totalPages,
		"HasPrev":    page > 1,
		"HasNext":    page < totalPages,
	})
}

func galleryStream() ([]galleryItem, error) {
	hasCollections, err := repos.Gallery.HasCollections()
	if err != nil {
		return nil, err
	}

	var items []galleryItem
	if hasCollections {
		collections, err := repos.Gallery.ListCollectionsWithMedia()
		if err != nil {
			return nil, err
		}
		for i := range collections {
			for _, m := range collections[i].Media {
				items = append(items, galleryItem{
					FilePath:  constants.MediaRoute + "/" + m.FilePath,
					MediaKind: m.MediaKind,
					Album:     collections[i].Name,
					CreatedAt: m.CreatedAt,
				})
			}
		}
	} else {
		media, err := repos.News.ListPublishedMedia()
		if err != nil {
			return nil, err
		}
		for _, m := range media {
			if m.MediaKind != models.MediaKindImage && m.MediaKind != models.MediaKindVideo {
				continue
			}
			items = append(items, galleryItem{
				FilePath:  m.FilePath,
				MediaKind: m.MediaKind,
				CreatedAt: m.CreatedAt,
			})
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}
