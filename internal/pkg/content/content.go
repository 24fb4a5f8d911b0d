package content

import (
	"errors"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/enfantsenjoie/eejsite/app/models"
	"github.com/enfantsenjoie/eejsite/app/repository"
	"github.com/enfantsenjoie/eejsite/internal/pkg/slugify"
)

// Service composes read-only projections of the content store for the
// public pages. The only write it ever performs is the lazy category slug
// backfill.
type Service struct {
	news       repository.NewsRepository
	categories repository.CategoryRepository
	Now        func() time.Time
}

// NewService creates a content service.
func NewService(news repository.NewsRepository, categories repository.CategoryRepository) *Service {
	return &Service{news: news, categories: categories, Now: time.Now}
}

// ResolveCategory maps a ?cat= parameter to a category. Resolution order:
// slug match, case-insensitive exact name match, then a computed-slug
// match against every category (covers legacy links) — first hit wins.
// A resolved category missing its slug gets it backfilled.
func (s *Service) ResolveCategory(cat string) (*models.Category, error) {
	cat = strings.TrimSpace(cat)
	if cat == "" {
		return nil, nil
	}

	category, err := s.categories.GetBySlug(cat)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if category == nil {
		category, err = s.categories.GetByNameFold(cat)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	if category == nil {
		all, err := s.categories.GetAll()
		if err != nil {
			return nil, err
		}
		for i := range all {
			if slugify.Slugify(all[i].Name) == cat {
				category = &all[i]
				break
			}
		}
	}

	if category == nil {
		return nil, nil
	}

	if category.Slug == "" && category.Name != "" {
		if err := s.backfillSlug(category); err != nil {
			// Backfill failing must not break the page.
			category.Slug = ""
		}
	}
	return category, nil
}

func (s *Service) backfillSlug(category *models.Category) error {
	slug, err := slugify.MakeUnique(slugify.Slugify(category.Name), 120, s.categories.SlugExists)
	if err != nil {
		return err
	}
	category.Slug = slug
	return s.categories.Update(category)
}

// ListFilter captures the query parameters of the news list page.
type ListFilter struct {
	Kind     string // "post", "event" or ""
	Upcoming bool   // events not yet started, soonest first
	Category string // raw ?cat= value
}

// Listing is the resolved list page projection.
type Listing struct {
	Cards              []Card
	ActiveCategory     string
	ActiveCategorySlug string
	Categories         []models.Category
}

// List applies the filter rules of the news/events page.
func (s *Service) List(filter ListFilter) (*Listing, error) {
	now := s.Now()

	category, err := s.ResolveCategory(filter.Category)
	if err != nil {
		return nil, err
	}
	var categoryID *uint
	if category != nil {
		categoryID = &category.ID
	}

	var items []models.NewsItem
	if filter.Upcoming {
		items, err = s.news.ListUpcomingEvents(now, categoryID)
	} else {
		items, err = s.news.ListPublished(filter.Kind, categoryID)
	}
	if err != nil {
		return nil, err
	}

	cards := make([]Card, 0, len(items))
	for i := range items {
		cards = append(cards, BuildCard(&items[i], now))
	}
	if filter.Upcoming {
		sort.SliceStable(cards, func(i, j int) bool { return cards[i].Date.Before(cards[j].Date) })
	} else {
		sort.SliceStable(cards, func(i, j int) bool { return cards[i].Date.After(cards[j].Date) })
	}

	categories, err := s.news.CategoriesWithPublished(filter.Kind)
	if err != nil {
		return nil, err
	}
	for i := range categories {
		if categories[i].Slug == "" && categories[i].Name != "" {
			_ = s.backfillSlug(&categories[i])
		}
	}

	listing := &Listing{Cards: cards, Categories: categories}
	if category != nil {
		listing.ActiveCategory = category.Name
		listing.ActiveCategorySlug = category.Slug
	}
	return listing, nil
}

// Highlights returns the newest published items of both kinds, ordered by
// their chronological ordering key, for the home page.
func (s *Service) Highlights(limit int) ([]Card, error) {
	items, err := s.news.ListPublished("", nil)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].DateForOrder().After(items[j].DateForOrder())
	})
	if len(items) > limit {
		items = items[:limit]
	}

	cards := make([]Card, 0, len(items))
	for i := range items {
		cards = append(cards, BuildCard(&items[i], now))
	}
	return cards, nil
}

// LatestPosts returns the newest published posts for the home page.
func (s *Service) LatestPosts(limit int) ([]Card, error) {
	items, err := s.news.ListRecentPublished(models.NewsKindPost, limit)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	cards := make([]Card, 0, len(items))
	for i := range items {
		cards = append(cards, BuildCard(&items[i], now))
	}
	return cards, nil
}

// Search matches a case-insensitive substring over title, body and
// location, newest first.
func (s *Service) Search(query string) ([]Card, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	items, err := s.news.Search(query)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	cards := make([]Card, 0, len(items))
	for i := range items {
		cards = append(cards, BuildCard(&items[i], now))
	}
	sort.SliceStable(cards, func(i, j int) bool { return cards[i].Date.After(cards[j].Date) })
	return cards, nil
}

// ReadTime estimates reading time in minutes at 200 words per minute,
// never under one minute.
func ReadTime(body string) int {
	words := len(strings.Fields(body))
	if words == 0 {
		return 1
	}
	minutes := (words + 100) / 200 // round to nearest
	if minutes < 1 {
		return 1
	}
	return minutes
}
