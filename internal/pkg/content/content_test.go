package content

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/enfantsenjoie/eejsite/app/models"
)

// fakeCategoryRepo backs ResolveCategory tests.
type fakeCategoryRepo struct {
	categories []models.Category
	updated    []models.Category
}

func (f *fakeCategoryRepo) Create(c *models.Category) error { return nil }

func (f *fakeCategoryRepo) GetByID(id uint) (*models.Category, error) {
	for i := range f.categories {
		if f.categories[i].ID == id {
			return &f.categories[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCategoryRepo) GetBySlug(slug string) (*models.Category, error) {
	for i := range f.categories {
		if f.categories[i].Slug == slug && slug != "" {
			return &f.categories[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCategoryRepo) GetByNameFold(name string) (*models.Category, error) {
	for i := range f.categories {
		if strings.EqualFold(f.categories[i].Name, name) {
			return &f.categories[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCategoryRepo) GetAll() ([]models.Category, error) {
	return append([]models.Category(nil), f.categories...), nil
}

func (f *fakeCategoryRepo) Update(c *models.Category) error {
	f.updated = append(f.updated, *c)
	for i := range f.categories {
		if f.categories[i].ID == c.ID {
			f.categories[i] = *c
		}
	}
	return nil
}

func (f *fakeCategoryRepo) Delete(id uint) error { return nil }

func (f *fakeCategoryRepo) SlugExists(slug string) (bool, error) {
	for i := range f.categories {
		if f.categories[i].Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func TestResolveCategory_Order(t *testing.T) {
	repo := &fakeCategoryRepo{categories: []models.Category{
		{ID: 1, Name: "Santé", Slug: "sante"},
		{ID: 2, Name: "Éducation & Tech", Slug: ""},
		{ID: 3, Name: "Sport", Slug: "sport"},
	}}
	svc := NewService(nil, repo)

	t.Run("slug match wins", func(t *testing.T) {
		c, err := svc.ResolveCategory("sante")
		assert.NoError(t, err)
		assert.Equal(t, uint(1), c.ID)
	})

	t.Run("case-insensitive name fallback", func(t *testing.T) {
		c, err := svc.ResolveCategory("SPORT")
		assert.NoError(t, err)
		assert.Equal(t, uint(3), c.ID)
	})

	t.Run("computed slug covers legacy links and backfills", func(t *testing.T) {
		c, err := svc.ResolveCategory("education-tech")
		assert.NoError(t, err)
		assert.Equal(t, uint(2), c.ID)
		assert.Equal(t, "education-tech", c.Slug)
		assert.NotEmpty(t, repo.updated)
	})

	t.Run("no match yields nil", func(t *testing.T) {
		c, err := svc.ResolveCategory("unknown")
		assert.NoError(t, err)
		assert.Nil(t, c)
	})

	t.Run("empty parameter is no filter", func(t *testing.T) {
		c, err := svc.ResolveCategory("  ")
		assert.NoError(t, err)
		assert.Nil(t, c)
	})
}

func TestBuildCard_EventFields(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	start := now.Add(24 * time.Hour)
	end := start.Add(2 * time.Hour)

	item := &models.NewsItem{
		Title:      "Journée santé",
		Slug:       "journee-sante",
		Kind:       models.NewsKindEvent,
		EventStart: &start,
		EventEnd:   &end,
		Location:   "Cotonou",
		Media: []models.NewsMedia{
			{FilePath: "/media/news/a.jpg", MediaKind: models.MediaKindImage},
			{FilePath: "/media/news/b.mp4", MediaKind: models.MediaKindVideo},
			{FilePath: "/media/news/c.pdf", MediaKind: models.MediaKindFile},
		},
	}

	card := BuildCard(item, now)
	assert.Equal(t, models.EventUpcoming, card.EventStatus)
	assert.Equal(t, "Cotonou", card.Location)
	assert.Equal(t, start, card.Date)
	// No cover image: first image/video media becomes the card medium.
	assert.Equal(t, models.MediaKindImage, card.MediaKind)
	assert.Equal(t, "/media/news/a.jpg", card.MediaURL)
	// Files are excluded from slides.
	assert.Len(t, card.Slides, 2)
}

func TestBuildCard_PostUsesCreatedAt(t *testing.T) {
	now := time.Now()
	created := now.Add(-48 * time.Hour)
	item := &models.NewsItem{
		Title:     "Article",
		Kind:      models.NewsKindPost,
		CreatedAt: created,
		Location:  "should-not-appear",
	}

	card := BuildCard(item, now)
	assert.Equal(t, created, card.Date)
	assert.Empty(t, card.EventStatus)
	assert.Empty(t, card.Location)
}

func TestReadTime(t *testing.T) {
	assert.Equal(t, 1, ReadTime(""))
	assert.Equal(t, 1, ReadTime("quelques mots seulement"))
	assert.Equal(t, 2, ReadTime(strings.Repeat("mot ", 400)))
}
