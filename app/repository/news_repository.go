package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/enfantsenjoie/eejsite/app/models"
)

// newsRepository implements the NewsRepository interface
type newsRepository struct {
	db *gorm.DB
}

// NewNewsRepository creates a new news repository instance
func NewNewsRepository(db *gorm.DB) NewsRepository {
	return &newsRepository{db: db}
}

// Create creates a new news item in the database
func (r *newsRepository) Create(item *models.NewsItem) error {
	return r.db.Create(item).Error
}

// GetByID retrieves a news item by its ID
func (r *newsRepository) GetByID(id uint) (*models.NewsItem, error) {
	var item models.NewsItem
	err := r.db.Preload("Category").Preload("Media", mediaOrder).First(&item, id).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// GetBySlug retrieves a news item by its slug regardless of status
func (r *newsRepository) GetBySlug(slug string) (*models.NewsItem, error) {
	var item models.NewsItem
	err := r.db.Preload("Category").Preload("Media", mediaOrder).
		Where("slug = ?", slug).First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// GetPublishedBySlug retrieves a published news item by its slug
func (r *newsRepository) GetPublishedBySlug(slug string) (*models.NewsItem, error) {
	var item models.NewsItem
	err := r.db.Preload("Category").Preload("Media", mediaOrder).
		Where("slug = ? AND status = ?", slug, models.NewsStatusPublished).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func mediaOrder(db *gorm.DB) *gorm.DB {
	return db.Order("display_order, id")
}

// ListPublished retrieves published items, optionally filtered by kind and
// category
func (r *newsRepository) ListPublished(kind string, categoryID *uint) ([]models.NewsItem, error) {
	q := r.db.Preload("Category").Preload("Media", mediaOrder).
		Where("status = ?", models.NewsStatusPublished)
	if kind != "" {
		q = q.Where("kind = ?", kind)
	}
	if categoryID != nil {
		q = q.Where("category_id = ?", *categoryID)
	}
	var items []models.NewsItem
	err := q.Order("created_at DESC").Find(&items).Error
	return items, err
}

// ListRecentPublished retrieves the newest published items of one kind
func (r *newsRepository) ListRecentPublished(kind string, limit int) ([]models.NewsItem, error) {
	q := r.db.Preload("Media", mediaOrder).
		Where("status = ?", models.NewsStatusPublished)
	if kind != "" {
		q = q.Where("kind = ?", kind)
	}
	var items []models.NewsItem
	err := q.Order("created_at DESC").Limit(limit).Find(&items).Error
	return items, err
}

// ListUpcomingEvents retrieves published events whose effective start (start
// field, legacy instant as fallback) has not passed yet, soonest first
func (r *newsRepository) ListUpcomingEvents(now time.Time, categoryID *uint) ([]models.NewsItem, error) {
	q := r.db.Preload("Category").Preload("Media", mediaOrder).
		Where("status = ? AND kind = ?", models.NewsStatusPublished, models.NewsKindEvent).
		Where("(event_start IS NOT NULL AND event_start >= ?) OR (event_start IS NULL AND date_event >= ?)", now, now)
	if categoryID != nil {
		q = q.Where("category_id = ?", *categoryID)
	}
	var items []models.NewsItem
	err := q.Order("event_start, date_event").Find(&items).Error
	return items, err
}

// ListRelated retrieves published items other than the given one
func (r *newsRepository) ListRelated(excludeID uint, limit int) ([]models.NewsItem, error) {
	var items []models.NewsItem
	err := r.db.Where("status = ? AND id != ?", models.NewsStatusPublished, excludeID).
		Order("created_at DESC").Limit(limit).Find(&items).Error
	return items, err
}

// GetPreviousPublished returns the next older published item by creation time
func (r *newsRepository) GetPreviousPublished(createdAt time.Time) (*models.NewsItem, error) {
	var item models.NewsItem
	err := r.db.Where("status = ? AND created_at < ?", models.NewsStatusPublished, createdAt).
		Order("created_at DESC").First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// GetNextPublished returns the next newer published item by creation time
func (r *newsRepository) GetNextPublished(createdAt time.Time) (*models.NewsItem, error) {
	var item models.NewsItem
	err := r.db.Where("status = ? AND created_at > ?", models.NewsStatusPublished, createdAt).
		Order("created_at ASC").First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Search matches a case-insensitive substring over title, body and location
func (r *newsRepository) Search(query string) ([]models.NewsItem, error) {
	like := "%" + query + "%"
	var items []models.NewsItem
	err := r.db.Preload("Media", mediaOrder).
		Where("status = ?", models.NewsStatusPublished).
		Where("LOWER(title) LIKE LOWER(?) OR LOWER(body) LIKE LOWER(?) OR LOWER(location) LIKE LOWER(?)", like, like, like).
		Order("created_at DESC").Find(&items).Error
	return items, err
}

// ListAll retrieves all items with pagination for the admin surface
func (r *newsRepository) ListAll(offset, limit int) ([]models.NewsItem, error) {
	var items []models.NewsItem
	err := r.db.Preload("Category").Order("created_at DESC").
		Offset(offset).Limit(limit).Find(&items).Error
	return items, err
}

// Update updates an existing news item in the database
func (r *newsRepository) Update(item *models.NewsItem) error {
	return r.db.Save(item).Error
}

// Delete removes a news item and its attached media
func (r *newsRepository) Delete(id uint) error {
	return r.db.Select("Media").Delete(&models.NewsItem{ID: id}).Error
}

// Count returns the total number of news items
func (r *newsRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.NewsItem{}).Count(&count).Error
	return count, err
}

// CountPublished returns the number of published news items
func (r *newsRepository) CountPublished() (int64, error) {
	var count int64
	err := r.db.Model(&models.NewsItem{}).
		Where("status = ?", models.NewsStatusPublished).Count(&count).Error
	return count, err
}

// CountFutureEvents counts published events still relevant now: end not
// passed when known, otherwise start not passed, otherwise the legacy
// instant not passed
func (r *newsRepository) CountFutureEvents(now time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.NewsItem{}).
		Where("kind = ? AND status = ?", models.NewsKindEvent, models.NewsStatusPublished).
		Where("(event_end IS NOT NULL AND event_end >= ?)"+
			" OR (event_end IS NULL AND event_start IS NOT NULL AND event_start >= ?)"+
			" OR (event_end IS NULL AND event_start IS NULL AND date_event >= ?)", now, now, now).
		Count(&count).Error
	return count, err
}

// SlugExists checks if a slug already exists
func (r *newsRepository) SlugExists(slug string) (bool, error) {
	var count int64
	err := r.db.Model(&models.NewsItem{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

// SlugExistsExceptID checks if a slug exists excluding a specific ID
func (r *newsRepository) SlugExistsExceptID(slug string, id uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.NewsItem{}).Where("slug = ? AND id != ?", slug, id).Count(&count).Error
	return count > 0, err
}

// AddMedia attaches a media file to a news item
func (r *newsRepository) AddMedia(media *models.NewsMedia) error {
	return r.db.Create(media).Error
}

func (r *newsRepository) ListPublishedMedia() ([]models.NewsMedia, error) {
	var media []models.NewsMedia
	err := r.db.
		Joins("JOIN news_items ON news_items.id = news_media.news_item_id").
		Where("news_items.status = ?", models.NewsStatusPublished).
		Order("news_media.created_at DESC, news_media.id DESC").
		Find(&media).Error
	return media, err
}

// DeleteMedia removes one attached media entry
func (r *newsRepository) DeleteMedia(id uint) error {
	return r.db.Delete(&models.NewsMedia{}, id).Error
}

// CategoriesWithPublished returns categories that have at least one
// published item (optionally of one kind), for the category menu
func (r *newsRepository) CategoriesWithPublished(kind string) ([]models.Category, error) {
	q := r.db.Model(&models.Category{}).
		Joins("JOIN news_items ON news_items.category_id = categories.id").
		Where("news_items.status = ?", models.NewsStatusPublished)
	if kind != "" {
		q = q.Where("news_items.kind = ?", kind)
	}
	var categories []models.Category
	err := q.Distinct().Order("categories.name").Find(&categories).Error
	return categories, err
}
