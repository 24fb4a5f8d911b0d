package repository

import (
	"gorm.io/gorm"

	"github.com/enfantsenjoie/eejsite/app/models"
)

// galleryRepository implements the GalleryRepository interface
type galleryRepository struct {
	db *gorm.DB
}

// NewGalleryRepository creates a new gallery repository instance
func NewGalleryRepository(db *gorm.DB) GalleryRepository {
	return &galleryRepository{db: db}
}

// CreateCollection creates a new gallery collection
func (r *galleryRepository) CreateCollection(collection *models.GalleryCollection) error {
	return r.db.Create(collection).Error
}

// GetCollectionByID retrieves a collection with its media
func (r *galleryRepository) GetCollectionByID(id uint) (*models.GalleryCollection, error) {
	var collection models.GalleryCollection
	err := r.db.Preload("Media").First(&collection, id).Error
	if err != nil {
		return nil, err
	}
	return &collection, nil
}

// ListCollectionsWithMedia retrieves all collections with media, newest
// collection first
func (r *galleryRepository) ListCollectionsWithMedia() ([]models.GalleryCollection, error) {
	var collections []models.GalleryCollection
	err := r.db.Preload("Media").Order("created_at DESC").Find(&collections).Error
	return collections, err
}

// CollectionSlugExists checks if a collection slug already exists
func (r *galleryRepository) CollectionSlugExists(slug string) (bool, error) {
	var count int64
	err := r.db.Model(&models.GalleryCollection{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

// MediaExists reports whether the collection already holds a media entry
// for the given file path. Import idempotence rests on this check.
func (r *galleryRepository) MediaExists(collectionID uint, filePath string) (bool, error) {
	var count int64
	err := r.db.Model(&models.GalleryMedia{}).
		Where("collection_id = ? AND file_path = ?", collectionID, filePath).
		Count(&count).Error
	return count > 0, err
}

// CreateMedia inserts one gallery media entry
func (r *galleryRepository) CreateMedia(media *models.GalleryMedia) error {
	return r.db.Create(media).Error
}

// HasCollections reports whether any gallery collection exists
func (r *galleryRepository) HasCollections() (bool, error) {
	var count int64
	err := r.db.Model(&models.GalleryCollection{}).Count(&count).Error
	return count > 0, err
}
